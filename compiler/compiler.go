/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package compiler loads a resolved compiler package and checks that its
// entry point provides what callers need.
package compiler

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	rscfs "bennypowers.dev/rsclocate/fs"
	"bennypowers.dev/rsclocate/internal/logger"
	"bennypowers.dev/rsclocate/manifest"
)

// DefaultRequiredExports is the contract used when none is configured.
var DefaultRequiredExports = []string{"TypescriptCompiler"}

// entryExtensions are tried when "main" omits the extension.
var entryExtensions = []string{".js", ".cjs", ".mjs"}

// Contract lists the names a compiler entry point must export.
type Contract struct {
	RequiredExports []string
}

// Missing returns the required exports that exports lacks.
func (c Contract) Missing(exports []string) []string {
	var missing []string
	for _, name := range c.RequiredExports {
		if !slices.Contains(exports, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Handle describes a loaded compiler module.
type Handle struct {
	// Name is the compiler package name.
	Name string `json:"name"`

	// Version is the compiler package version.
	Version string `json:"version,omitempty"`

	// PackagePath is the compiler package directory.
	PackagePath string `json:"packagePath"`

	// EntryPoint is the absolute path of the module named by "main".
	EntryPoint string `json:"entryPoint"`

	// Exports are the names the entry point exports, sorted.
	Exports []string `json:"exports"`
}

// Has reports whether the module exports name.
func (h *Handle) Has(name string) bool {
	_, found := slices.BinarySearch(h.Exports, name)
	return found
}

// Loader turns compiler package directories into handles.
type Loader struct {
	fs       rscfs.FileSystem
	contract Contract
}

// NewLoader creates a loader. A nil RequiredExports uses
// DefaultRequiredExports; an empty, non-nil one accepts any module.
func NewLoader(filesystem rscfs.FileSystem, contract Contract) *Loader {
	if contract.RequiredExports == nil {
		contract.RequiredExports = DefaultRequiredExports
	}
	return &Loader{fs: filesystem, contract: contract}
}

// Load reads the package.json in packagePath, parses the module named by
// its "main" field and validates the module against the loader's contract.
// Names re-exported wholesale from relative modules count as exports.
func (l *Loader) Load(packagePath string) (*Handle, error) {
	m, err := manifest.LoadDir(l.fs, packagePath)
	if err != nil {
		return nil, err
	}
	if m.Main == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingEntryPoint, m.Path)
	}

	entry := filepath.Join(packagePath, m.Main)
	resolved, ok := l.findEntry(entry)
	if !ok {
		return nil, fmt.Errorf("%w: %s: entry point %s does not exist", ErrModuleLoad, packagePath, entry)
	}

	exports, err := l.readExports(resolved, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	if missing := l.contract.Missing(exports); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s does not export %s", ErrModuleLoad, resolved, strings.Join(missing, ", "))
	}

	if m.Version == "" {
		logger.Warn("compiler package %s at %s has no version", m.Name, packagePath)
	}

	return &Handle{
		Name:        m.Name,
		Version:     m.Version,
		PackagePath: packagePath,
		EntryPoint:  resolved,
		Exports:     exports,
	}, nil
}

// readExports parses the module at path and merges in the names of the
// relative modules it re-exports wholesale. Package re-exports are not
// followed.
func (l *Loader) readExports(path string, visited map[string]bool) ([]string, error) {
	visited[path] = true

	source, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModuleLoad, path, err)
	}
	mod, err := ParseModule(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModuleLoad, path, err)
	}

	exports := slices.Clone(mod.Exports)
	for _, spec := range mod.StarSources {
		if !strings.HasPrefix(spec, ".") {
			continue
		}
		target, ok := l.findEntry(filepath.Join(filepath.Dir(path), spec))
		if !ok {
			return nil, fmt.Errorf("%w: %s: re-exported module %s does not exist", ErrModuleLoad, path, spec)
		}
		if visited[target] {
			continue
		}
		inner, err := l.readExports(target, visited)
		if err != nil {
			return nil, err
		}
		for _, name := range inner {
			// export * never forwards the default export
			if name != "default" {
				exports = append(exports, name)
			}
		}
	}

	slices.Sort(exports)
	return slices.Compact(exports), nil
}

func (l *Loader) findEntry(entry string) (string, bool) {
	if l.fs.IsFile(entry) {
		return entry, true
	}
	for _, ext := range entryExtensions {
		if l.fs.IsFile(entry + ext) {
			return entry + ext, true
		}
	}
	index := filepath.Join(entry, "index.js")
	if l.fs.IsFile(index) {
		return index, true
	}
	return "", false
}
