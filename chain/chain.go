/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package chain finds the compiler package for a project by following
// tsconfig "extends" references.
//
// A project's tsconfig.json rarely names the compiler directly. It extends a
// shared base config, which may extend another, until one of the configs
// lives inside the compiler package itself. That package is the result.
package chain

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	rscfs "bennypowers.dev/rsclocate/fs"
	"bennypowers.dev/rsclocate/internal/logger"
	"bennypowers.dev/rsclocate/manifest"
	"bennypowers.dev/rsclocate/specifier"
	"bennypowers.dev/rsclocate/tsconfig"
)

// DefaultCompilerPackage is the package name that ends a chain when no
// other names are configured.
const DefaultCompilerPackage = "@microsoft/rush-stack-compiler"

// DefaultMaxChainLength bounds the number of files visited in one walk.
const DefaultMaxChainLength = 64

// ManifestLocator finds the package.json enclosing a path.
// It returns nil, nil when there is none.
type ManifestLocator interface {
	FindNearest(path string) (*manifest.Manifest, error)
}

// Options configures a Resolver.
type Options struct {
	// BuildRoot is the base directory for package specifiers.
	// Defaults to the directory of the first config file.
	BuildRoot string

	// CompilerPackages are the package names that end the chain.
	// Defaults to DefaultCompilerPackage.
	CompilerPackages []string

	// MaxChainLength defaults to DefaultMaxChainLength.
	MaxChainLength int

	// Tracef receives one line per step. Defaults to logger.Debug.
	Tracef func(format string, args ...any)
}

// Step records one evaluation of a config file during a walk.
type Step struct {
	// ConfigPath is the file examined.
	ConfigPath string

	// Package is the name of the enclosing package, if any.
	Package string

	// PackageDir is the directory of the enclosing package, if any.
	PackageDir string

	// Compiler is true when ConfigPath is inside the compiler package.
	Compiler bool

	// Extends is the raw extends value, empty on the final step.
	Extends string

	// Kind classifies Extends.
	Kind specifier.Kind

	// Next is the resolved path of Extends.
	Next string
}

// Resolver walks extends chains.
type Resolver struct {
	fs        rscfs.FileSystem
	manifests ManifestLocator
	packages  specifier.Resolver
	opts      Options
}

// New creates a Resolver.
func New(filesystem rscfs.FileSystem, manifests ManifestLocator, packages specifier.Resolver, opts Options) *Resolver {
	if len(opts.CompilerPackages) == 0 {
		opts.CompilerPackages = []string{DefaultCompilerPackage}
	}
	if opts.MaxChainLength <= 0 {
		opts.MaxChainLength = DefaultMaxChainLength
	}
	if opts.Tracef == nil {
		opts.Tracef = logger.Debug
	}
	return &Resolver{
		fs:        filesystem,
		manifests: manifests,
		packages:  packages,
		opts:      opts,
	}
}

// Resolve returns the compiler package directory for the chain starting at configPath.
func (r *Resolver) Resolve(configPath string) (string, error) {
	_, packageDir, err := r.Walk(configPath)
	return packageDir, err
}

// Walk follows the chain from configPath and returns every step taken along
// with the compiler package directory. On error the steps up to and
// including the failing one are still returned.
func (r *Resolver) Walk(configPath string) ([]Step, string, error) {
	buildRoot := r.opts.BuildRoot
	if buildRoot == "" {
		buildRoot = filepath.Dir(configPath)
	}

	var steps []Step
	visited := make(map[string]int)
	var order []string

	current := configPath
	for {
		key := r.fs.Canonical(current)
		if i, seen := visited[key]; seen {
			cycle := append(slices.Clone(order[i:]), current)
			return steps, "", fmt.Errorf("%w: %s", ErrCyclicExtends, strings.Join(cycle, " -> "))
		}
		if len(order) >= r.opts.MaxChainLength {
			return steps, "", fmt.Errorf("%w: more than %d files after %s", ErrChainTooLong, r.opts.MaxChainLength, current)
		}
		visited[key] = len(order)
		order = append(order, current)

		step, err := r.step(current, buildRoot)
		steps = append(steps, step)
		if err != nil {
			return steps, "", err
		}
		if step.Compiler {
			return steps, step.PackageDir, nil
		}
		current = step.Next
	}
}

func (r *Resolver) step(configPath, buildRoot string) (Step, error) {
	r.opts.Tracef("Examining %s", configPath)
	step := Step{ConfigPath: configPath}

	// First, see if the package we're in is the compiler
	m, err := r.manifests.FindNearest(configPath)
	if err != nil {
		return step, err
	}
	if m != nil {
		step.Package = m.Name
		step.PackageDir = m.Dir()
		if slices.Contains(r.opts.CompilerPackages, m.Name) {
			step.Compiler = true
			r.opts.Tracef("Found compiler package %s at %s/", m.Name, m.Dir())
			return step, nil
		}
	}

	if !r.fs.IsFile(configPath) {
		return step, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	cfg, err := tsconfig.Load(r.fs, configPath)
	if err != nil {
		return step, fmt.Errorf("%w %s: %w", ErrConfigParse, configPath, err)
	}

	if !cfg.HasExtends() {
		return step, fmt.Errorf(
			"%w: the compiler is found by following \"extends\" in tsconfig.json until it reaches "+
				"a folder inside one of %s; this lookup failed at %s",
			ErrMissingExtends, strings.Join(r.opts.CompilerPackages, ", "), configPath)
	}

	step.Extends = cfg.Extends
	step.Kind = specifier.Classify(cfg.Extends)
	switch step.Kind {
	case specifier.KindAbsolute:
		step.Next = filepath.Clean(cfg.Extends)
	case specifier.KindRelative:
		step.Next = filepath.Join(filepath.Dir(configPath), cfg.Extends)
	default:
		resolved, err := r.packages.Resolve(cfg.Extends, buildRoot, specifier.TargetManifest)
		if err != nil {
			return step, fmt.Errorf("resolving extends %q in %s: %w", cfg.Extends, configPath, err)
		}
		step.Next = resolved.Path
	}

	r.opts.Tracef("Found tsconfig.extends property %s. It appears to be %s. Resolved to %s",
		step.Extends, step.Kind, step.Next)
	return step, nil
}

// IsChainError reports whether err came from a broken chain rather than
// from the filesystem or a manifest.
func IsChainError(err error) bool {
	for _, target := range []error{
		ErrConfigNotFound,
		ErrConfigParse,
		ErrMissingExtends,
		ErrCyclicExtends,
		ErrChainTooLong,
		specifier.ErrPackageNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
