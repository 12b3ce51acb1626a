/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	rscfs "bennypowers.dev/rsclocate/fs"
	"bennypowers.dev/rsclocate/manifest"
)

// extensions are tried in order when a specifier names a file without one.
var extensions = []string{".json", ".js", ".cjs"}

// NodeResolver resolves package specifiers with the node_modules ancestor
// search. Conditional "exports" maps are not consulted.
type NodeResolver struct {
	fs rscfs.FileSystem
}

// NewNodeResolver creates a resolver for package specifiers.
func NewNodeResolver(fs rscfs.FileSystem) *NodeResolver {
	return &NodeResolver{fs: fs}
}

// Resolve resolves spec starting from baseDir and walking up the directory
// tree looking for node_modules/<package>.
//
// A specifier with a file component ("pkg/includes/tsconfig.json") resolves
// to that file. A bare specifier resolves to the package's package.json when
// target is TargetManifest, or to its main entry point for TargetMain.
func (r *NodeResolver) Resolve(spec, baseDir string, target Target) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindPackage || parsed.Package == "" {
		return nil, fmt.Errorf("%w: %q is not a package specifier", ErrPackageNotFound, spec)
	}

	dir := baseDir
	if !filepath.IsAbs(dir) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", dir, err)
		}
		dir = absDir
	}
	startDir := dir

	for {
		nodeModulesBase := filepath.Join(dir, "node_modules")
		if filepath.Base(dir) == "node_modules" {
			// node_modules/node_modules is never searched
			nodeModulesBase = ""
		}

		if nodeModulesBase != "" {
			packageDir := filepath.Join(nodeModulesBase, parsed.Package)
			if !isInsideDir(packageDir, nodeModulesBase) {
				return nil, fmt.Errorf("path traversal detected in specifier: %s", spec)
			}

			path, err := r.resolveInPackage(parsed, packageDir, target)
			if err != nil {
				return nil, err
			}
			if path != "" {
				return &ResolvedFile{
					Specifier:  spec,
					Path:       path,
					PackageDir: packageDir,
				}, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("%w: %s (looked in node_modules starting from %s)", ErrPackageNotFound, spec, startDir)
}

// resolveInPackage returns "" when packageDir cannot satisfy the specifier,
// so the caller keeps walking up.
func (r *NodeResolver) resolveInPackage(parsed *Specifier, packageDir string, target Target) (string, error) {
	if !r.fs.Exists(packageDir) {
		return "", nil
	}

	if !parsed.IsBare() {
		candidate := filepath.Join(packageDir, parsed.File)
		if !isInsideDir(candidate, packageDir) {
			return "", fmt.Errorf("path traversal detected in specifier: %s", parsed.Raw)
		}
		return r.resolveFile(candidate), nil
	}

	manifestPath := filepath.Join(packageDir, manifest.FileName)
	if target == TargetManifest {
		if r.fs.IsFile(manifestPath) {
			return manifestPath, nil
		}
		return "", nil
	}

	main := "index"
	if r.fs.IsFile(manifestPath) {
		m, err := manifest.Load(r.fs, manifestPath)
		if err != nil {
			return "", err
		}
		if m.Main != "" {
			main = m.Main
		}
	}
	return r.resolveFile(filepath.Join(packageDir, main)), nil
}

// resolveFile applies the file, extension and directory index lookups.
func (r *NodeResolver) resolveFile(candidate string) string {
	if r.fs.IsFile(candidate) {
		return candidate
	}
	for _, ext := range extensions {
		if r.fs.IsFile(candidate + ext) {
			return candidate + ext
		}
	}
	for _, ext := range extensions {
		index := filepath.Join(candidate, "index"+ext)
		if r.fs.IsFile(index) {
			return index
		}
	}
	return ""
}

// isInsideDir reports whether path is dir or below it after cleaning.
func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
