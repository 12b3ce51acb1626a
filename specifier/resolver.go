/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "errors"

// ErrPackageNotFound indicates a package specifier that no node_modules
// directory above the base directory can satisfy.
var ErrPackageNotFound = errors.New("package not found")

// Target selects what a bare package specifier resolves to.
type Target int

const (
	// TargetMain resolves a bare package to its main entry point, the
	// standard module resolution result.
	TargetMain Target = iota
	// TargetManifest resolves a bare package to its package.json.
	TargetManifest
)

// ResolvedFile preserves both the original specifier and the resolved filesystem path.
type ResolvedFile struct {
	// Specifier is the original specifier (e.g., "@acme/base-config/tsconfig.json").
	Specifier string
	// Path is the resolved filesystem path (e.g., "/node_modules/@acme/base-config/tsconfig.json").
	Path string
	// PackageDir is the installed package directory that satisfied the specifier.
	PackageDir string
}

// Resolver resolves package specifiers to filesystem paths.
type Resolver interface {
	// Resolve resolves spec as if it were required from a file in baseDir.
	Resolve(spec, baseDir string, target Target) (*ResolvedFile, error)
}
