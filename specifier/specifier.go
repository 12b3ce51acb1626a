/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies tsconfig "extends" references and resolves
// package specifiers through node_modules.
package specifier

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Kind indicates the type of an extends reference.
type Kind int

const (
	// KindAbsolute is an absolute filesystem path.
	KindAbsolute Kind = iota
	// KindRelative starts with "." and is relative to the referencing file.
	KindRelative
	// KindPackage is a package specifier resolved through node_modules.
	KindPackage
)

// String describes the kind the way the chain trace reports it.
func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "an absolute path"
	case KindRelative:
		return "a relative path"
	case KindPackage:
		return "a package path"
	default:
		return "an unknown reference"
	}
}

// Specifier represents a parsed extends reference.
type Specifier struct {
	// Kind is the type of reference (absolute, relative, package).
	Kind Kind

	// Package is the package name (e.g., "@scope/pkg" or "pkg").
	// Empty unless Kind is KindPackage.
	Package string

	// File is the path within the package, empty for a bare package.
	// For absolute and relative references it is the reference itself.
	File string

	// Raw is the original reference string.
	Raw string
}

// packagePattern matches @scope/pkg/path, pkg/path, or a bare pkg.
var packagePattern = regexp.MustCompile(`^(@[^/]+/[^/]+|[^/@][^/]*)(/.*)?$`)

// Classify returns the kind of reference without parsing the package name.
func Classify(ref string) Kind {
	switch {
	case filepath.IsAbs(ref):
		return KindAbsolute
	case strings.HasPrefix(ref, "."):
		return KindRelative
	default:
		return KindPackage
	}
}

// Parse parses an extends reference into a Specifier.
// A package reference that does not look like a package name keeps an
// empty Package; resolving it fails with ErrPackageNotFound.
func Parse(ref string) *Specifier {
	kind := Classify(ref)
	if kind != KindPackage {
		return &Specifier{
			Kind: kind,
			File: ref,
			Raw:  ref,
		}
	}

	spec := &Specifier{
		Kind: KindPackage,
		Raw:  ref,
	}
	if matches := packagePattern.FindStringSubmatch(ref); len(matches) == 3 {
		spec.Package = matches[1]
		spec.File = strings.TrimPrefix(matches[2], "/")
	}
	return spec
}

// IsBare returns true for a package reference with no file component.
func (s *Specifier) IsBare() bool {
	return s.Kind == KindPackage && s.File == ""
}
