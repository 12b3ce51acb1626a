/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest reads package.json files and finds the one that owns a
// given path.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	rscfs "bennypowers.dev/rsclocate/fs"
)

// FileName is the package manifest file name.
const FileName = "package.json"

// ErrInvalidManifest indicates a package.json that could not be read or decoded.
var ErrInvalidManifest = errors.New("invalid package manifest")

var utf8BOM = []byte("\xef\xbb\xbf")

// Manifest is the subset of package.json that rsclocate reads.
type Manifest struct {
	// Name is the package name, e.g. "@microsoft/rush-stack-compiler-3.9".
	Name string `json:"name"`

	// Version is the package version, informational only.
	Version string `json:"version"`

	// Main is the entry point relative to the package directory.
	Main string `json:"main"`

	// Path is the absolute path of the package.json file.
	Path string `json:"-"`
}

// Dir returns the package directory.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Load reads and decodes the package.json at path.
func Load(filesystem rscfs.FileSystem, path string) (*Manifest, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}

	m := &Manifest{}
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}
	m.Path = path

	return m, nil
}

// LoadDir reads the package.json inside dir.
func LoadDir(filesystem rscfs.FileSystem, dir string) (*Manifest, error) {
	return Load(filesystem, filepath.Join(dir, FileName))
}
