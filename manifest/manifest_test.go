/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"errors"
	"testing"

	"bennypowers.dev/rsclocate/internal/mapfs"
)

func TestLoad(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/pkg/package.json", `{"name":"@acme/pkg","version":"1.2.3","main":"lib/index.js","scripts":{}}`, 0o644)

	m, err := Load(mfs, "/pkg/package.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "@acme/pkg" || m.Version != "1.2.3" || m.Main != "lib/index.js" {
		t.Errorf("unexpected manifest %+v", m)
	}
	if m.Dir() != "/pkg" {
		t.Errorf("expected Dir /pkg, got %s", m.Dir())
	}
}

func TestLoad_Invalid(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/pkg/package.json", `{"name":`, 0o644)

	_, err := Load(mfs, "/pkg/package.json")
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest, got %v", err)
	}

	_, err = LoadDir(mfs, "/missing")
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("expected ErrInvalidManifest for missing file, got %v", err)
	}
}

func TestLocator_FindNearest(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/repo/package.json":                 `{"name":"repo"}`,
		"/repo/packages/a/package.json":      `{"name":"a"}`,
		"/repo/packages/a/src/tsconfig.json": `{}`,
		"/repo/tools/tsconfig.json":          `{}`,
	})
	locator := NewLocator(mfs)

	tests := []struct {
		path string
		want string
	}{
		{"/repo/packages/a/src/tsconfig.json", "a"},
		{"/repo/packages/a/package.json", "a"},
		{"/repo/packages/a", "a"},
		{"/repo/tools/tsconfig.json", "repo"},
		{"/repo/tools/missing.json", "repo"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := locator.FindNearest(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m == nil {
				t.Fatal("expected a manifest")
			}
			if m.Name != tt.want {
				t.Errorf("FindNearest(%s) = %s, want %s", tt.path, m.Name, tt.want)
			}
		})
	}
}

func TestLocator_None(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/shared/tsconfig.json", `{}`, 0o644)

	m, err := NewLocator(mfs).FindNearest("/shared/tsconfig.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Errorf("expected no manifest, got %+v", m)
	}
}

func TestLocator_Memoizes(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/repo/package.json", `{"name":"repo"}`, 0o644)
	locator := NewLocator(mfs)

	first, ok := locator.FindNearestPath("/repo/a/b/tsconfig.json")
	if !ok || first != "/repo/package.json" {
		t.Fatalf("unexpected first lookup %q %v", first, ok)
	}

	// The answer is remembered per directory even if the tree changes.
	mfs.AddFile("/repo/a/package.json", `{"name":"late"}`, 0o644)
	second, _ := locator.FindNearestPath("/repo/a/b/tsconfig.json")
	if second != first {
		t.Errorf("expected memoized %q, got %q", first, second)
	}
}

func TestLoad_ByteOrderMark(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/pkg/package.json", "\ufeff{\"name\":\"@acme/pkg\",\"main\":\"index.js\"}", 0o644)

	m, err := Load(mfs, "/pkg/package.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "@acme/pkg" {
		t.Errorf("expected name @acme/pkg, got %q", m.Name)
	}
}
