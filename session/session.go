/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session ties chain resolution, caching and compiler loading
// together for one build.
package session

import (
	"fmt"
	"path/filepath"

	"bennypowers.dev/rsclocate/cache"
	"bennypowers.dev/rsclocate/chain"
	"bennypowers.dev/rsclocate/compiler"
	"bennypowers.dev/rsclocate/fs"
	"bennypowers.dev/rsclocate/manifest"
	"bennypowers.dev/rsclocate/specifier"
	"bennypowers.dev/rsclocate/tsconfig"
)

// Options configures a Session.
type Options struct {
	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Tsconfig is the project config file name inside each build root.
	// Defaults to tsconfig.FileName.
	Tsconfig string

	// CompilerPackages are the package names that end a chain.
	CompilerPackages []string

	// RequiredExports is the compiler module contract. Nil uses
	// compiler.DefaultRequiredExports.
	RequiredExports []string

	// MaxChainLength bounds each walk. Zero uses chain.DefaultMaxChainLength.
	MaxChainLength int

	// Tracef receives the chain trace. Defaults to logger.Debug.
	Tracef func(format string, args ...any)
}

// Session resolves compilers for any number of build roots and remembers
// each answer for its own lifetime.
type Session struct {
	opts      Options
	fs        fs.FileSystem
	cache     *cache.Cache
	manifests *manifest.Locator
	packages  specifier.Resolver
	loader    *compiler.Loader
}

// New creates a Session with an empty cache.
func New(opts Options) *Session {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}
	if opts.Tsconfig == "" {
		opts.Tsconfig = tsconfig.FileName
	}
	return &Session{
		opts:      opts,
		fs:        filesystem,
		cache:     cache.New(),
		manifests: manifest.NewLocator(filesystem),
		packages:  specifier.NewNodeResolver(filesystem),
		loader:    compiler.NewLoader(filesystem, compiler.Contract{RequiredExports: opts.RequiredExports}),
	}
}

// PackagePath returns the compiler package directory for buildRoot,
// walking the chain from <buildRoot>/tsconfig.json on the first request.
func (s *Session) PackagePath(buildRoot string) (string, error) {
	root, err := absolute(buildRoot)
	if err != nil {
		return "", err
	}
	return s.cache.GetOrResolve(root, func() (string, error) {
		return s.resolver(root).Resolve(s.ConfigPath(root))
	})
}

// Compiler resolves and loads the compiler for buildRoot. The handle is
// built fresh on each call; only the package path is cached.
func (s *Session) Compiler(buildRoot string) (*compiler.Handle, error) {
	packagePath, err := s.PackagePath(buildRoot)
	if err != nil {
		return nil, err
	}
	return s.loader.Load(packagePath)
}

// Trace walks the chain for buildRoot without consulting or filling the cache.
func (s *Session) Trace(buildRoot string) ([]chain.Step, string, error) {
	root, err := absolute(buildRoot)
	if err != nil {
		return nil, "", err
	}
	return s.resolver(root).Walk(s.ConfigPath(root))
}

// ConfigPath returns the project config path for buildRoot.
func (s *Session) ConfigPath(buildRoot string) string {
	return filepath.Join(buildRoot, s.opts.Tsconfig)
}

// Cached reports how many build roots have a stored answer.
func (s *Session) Cached() int {
	return s.cache.Len()
}

func (s *Session) resolver(buildRoot string) *chain.Resolver {
	return chain.New(s.fs, s.manifests, s.packages, chain.Options{
		BuildRoot:        buildRoot,
		CompilerPackages: s.opts.CompilerPackages,
		MaxChainLength:   s.opts.MaxChainLength,
		Tracef:           s.opts.Tracef,
	})
}

func absolute(buildRoot string) (string, error) {
	if filepath.IsAbs(buildRoot) {
		return filepath.Clean(buildRoot), nil
	}
	abs, err := filepath.Abs(buildRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve build root %s: %w", buildRoot, err)
	}
	return abs, nil
}
