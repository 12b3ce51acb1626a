/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package common builds the session shared by rsclocate commands.
package common

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"bennypowers.dev/rsclocate/config"
	"bennypowers.dev/rsclocate/fs"
	"bennypowers.dev/rsclocate/session"
	"bennypowers.dev/rsclocate/tsconfig"
)

// Workspace is the loaded configuration plus the session built from it.
type Workspace struct {
	Root    string
	FS      fs.FileSystem
	Config  *config.Config
	Session *session.Session
}

// Open loads .config/rsclocate.* from the --root directory and applies
// flag and environment overrides, which take precedence over the file.
func Open() (*Workspace, error) {
	root, err := filepath.Abs(viper.GetString("root"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	filesystem := fs.NewOSFileSystem()
	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	opts := cfg.SessionOptions()
	opts.FS = filesystem
	if packages := viper.GetStringSlice("compiler-package"); len(packages) > 0 {
		opts.CompilerPackages = packages
	}
	if exports := viper.GetStringSlice("require-export"); len(exports) > 0 {
		opts.RequiredExports = exports
	}
	if name := viper.GetString("tsconfig"); name != "" {
		opts.Tsconfig = name
	}

	return &Workspace{
		Root:    root,
		FS:      filesystem,
		Config:  cfg,
		Session: session.New(opts),
	}, nil
}

// BuildRoots returns args, or the configured projects, or the workspace root.
func (w *Workspace) BuildRoots(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	name := viper.GetString("tsconfig")
	if name == "" {
		name = w.Config.Tsconfig
	}
	if name == "" {
		name = tsconfig.FileName
	}

	roots, err := w.Config.ExpandProjects(w.FS, w.Root, name)
	if err != nil {
		return nil, fmt.Errorf("error expanding config projects: %w", err)
	}
	if len(roots) == 0 {
		return []string{w.Root}, nil
	}
	return roots, nil
}
