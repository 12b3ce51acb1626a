/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"path/filepath"
	"sync"

	rscfs "bennypowers.dev/rsclocate/fs"
)

// Locator finds the nearest package.json enclosing a path.
// Directory lookups are memoized, so walking many files in the same
// package only probes the filesystem once per ancestor.
type Locator struct {
	fs rscfs.FileSystem

	mu sync.Mutex
	// owner maps a directory to the package.json that governs it, or ""
	// when no ancestor has one.
	owner map[string]string
}

// NewLocator creates a manifest locator over filesystem.
func NewLocator(filesystem rscfs.FileSystem) *Locator {
	return &Locator{
		fs:    filesystem,
		owner: make(map[string]string),
	}
}

// FindNearestPath returns the path of the package.json governing path.
// The search starts at path itself, so a package directory finds its own
// manifest, and walks up to the filesystem root.
// The second result is false when there is no enclosing package.
func (l *Locator) FindNearestPath(path string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	found := l.lookupLocked(filepath.Clean(path))
	return found, found != ""
}

// FindNearest loads the package.json governing path.
// Returns nil, nil when there is no enclosing package.
func (l *Locator) FindNearest(path string) (*Manifest, error) {
	manifestPath, ok := l.FindNearestPath(path)
	if !ok {
		return nil, nil
	}
	return Load(l.fs, manifestPath)
}

func (l *Locator) lookupLocked(dir string) string {
	if found, ok := l.owner[dir]; ok {
		return found
	}

	var found string
	candidate := filepath.Join(dir, FileName)
	if l.fs.IsFile(candidate) {
		found = candidate
	} else if parent := filepath.Dir(dir); parent != dir {
		found = l.lookupLocked(parent)
	}

	l.owner[dir] = found
	return found
}
