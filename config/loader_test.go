/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"slices"
	"testing"

	"bennypowers.dev/rsclocate/internal/mapfs"
	"bennypowers.dev/rsclocate/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	want := []string{"@microsoft/rush-stack-compiler-3.9", "@microsoft/rush-stack-compiler-4.7"}
	if !slices.Equal(cfg.CompilerPackages, want) {
		t.Errorf("expected compiler packages %v, got %v", want, cfg.CompilerPackages)
	}
	if !slices.Equal(cfg.RequiredExports, []string{"TypescriptCompiler"}) {
		t.Errorf("expected scalar requiredExports to become a list, got %v", cfg.RequiredExports)
	}
	if cfg.Tsconfig != "tsconfig.build.json" {
		t.Errorf("expected tsconfig 'tsconfig.build.json', got %q", cfg.Tsconfig)
	}
	if cfg.MaxChainLength != 16 {
		t.Errorf("expected maxChainLength 16, got %d", cfg.MaxChainLength)
	}
	if len(cfg.Projects) != 3 {
		t.Errorf("expected 3 projects, got %v", cfg.Projects)
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/json", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if !slices.Equal(cfg.CompilerPackages, []string{"@acme/rush-stack-compiler"}) {
		t.Errorf("expected single compiler package, got %v", cfg.CompilerPackages)
	}
	if cfg.RequiredExports == nil || len(cfg.RequiredExports) != 0 {
		t.Errorf("expected explicit empty requiredExports, got %#v", cfg.RequiredExports)
	}

	opts := cfg.SessionOptions()
	if opts.RequiredExports == nil {
		t.Error("expected empty contract to reach the session options")
	}
}

func TestLoad_NotFound(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tsconfig.json", `{}`, 0o644)

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config when not found, got %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/.config/rsclocate.yaml", "compilerPackages: [unterminated", 0o644)

	if _, err := Load(mfs, "/project"); err == nil {
		t.Fatal("expected error for invalid yaml")
	}

	cfg := LoadOrDefault(mfs, "/project")
	if cfg == nil || len(cfg.CompilerPackages) != 0 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestConfig_SessionOptions_Defaults(t *testing.T) {
	opts := Default().SessionOptions()

	if opts.RequiredExports != nil {
		t.Errorf("expected nil contract so the loader default applies, got %v", opts.RequiredExports)
	}
	if opts.Tsconfig != "" || opts.MaxChainLength != 0 || len(opts.CompilerPackages) != 0 {
		t.Errorf("expected zero options, got %+v", opts)
	}
}

func TestConfig_ExpandProjects(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/repo/apps/web/tsconfig.json":                 `{}`,
		"/repo/apps/docs/tsconfig.json":                `{}`,
		"/repo/apps/scratch/README.md":                 ``,
		"/repo/libraries/core/tsconfig.json":           `{}`,
		"/repo/libraries/nested/util/tsconfig.json":    `{}`,
		"/repo/libraries/node_modules/x/tsconfig.json": `{}`,
	})

	cfg := &Config{Projects: StringList{"apps/*", "libraries/**", "apps/web", "tools/generator"}}

	got, err := cfg.ExpandProjects(mfs, "/repo", "tsconfig.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"/repo/apps/docs",
		"/repo/apps/web",
		"/repo/libraries/core",
		"/repo/libraries/nested/util",
		"/repo/tools/generator",
	}
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
