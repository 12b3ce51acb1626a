/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tsconfig reads the inheritance reference out of tsconfig.json files.
//
// Only "extends" is decoded. Files are parsed in the tsconfig dialect of
// JSON, which allows comments and trailing commas.
package tsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"

	rscfs "bennypowers.dev/rsclocate/fs"
)

// FileName is the conventional project configuration file name.
const FileName = "tsconfig.json"

// ErrExtendsNotString indicates an "extends" value that is not a single string.
var ErrExtendsNotString = errors.New(`"extends" must be a string`)

// Config is a parsed tsconfig file.
type Config struct {
	// Path is the absolute path the file was read from.
	Path string

	// Extends is the raw inheritance reference, empty when absent.
	Extends string
}

// HasExtends reports whether the file names a parent configuration.
func (c *Config) HasExtends() bool {
	return c.Extends != ""
}

// utf8BOM is tolerated at the start of a file, as tsc does.
var utf8BOM = []byte("\xef\xbb\xbf")

type rawConfig struct {
	Extends json.RawMessage `json:"extends"`
}

// Parse decodes tsconfig content. path is only recorded on the result.
func Parse(data []byte, path string) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM)), &raw); err != nil {
		return nil, err
	}

	cfg := &Config{Path: path}
	if len(raw.Extends) == 0 || string(raw.Extends) == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw.Extends, &cfg.Extends); err != nil {
		return nil, fmt.Errorf("%w, got %s", ErrExtendsNotString, raw.Extends)
	}
	return cfg, nil
}

// Load reads and parses the tsconfig at path. Read errors are returned
// unwrapped so callers can test them with errors.Is(err, fs.ErrNotExist).
func Load(filesystem rscfs.FileSystem, path string) (*Config, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}
