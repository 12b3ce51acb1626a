/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cache memoizes the compiler package path per build root.
package cache

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ResolveFunc computes the compiler package path for a build root.
type ResolveFunc func() (string, error)

// Cache maps build roots to compiler package directories.
// Entries are added once and never replaced or evicted; a Cache lives as
// long as the build session that owns it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string

	requestGroup singleflight.Group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the stored path for buildRoot.
func (c *Cache) Get(buildRoot string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.entries[filepath.Clean(buildRoot)]
	return path, ok
}

// GetOrResolve returns the stored path for buildRoot, calling resolve only
// when there is none. Concurrent first calls for the same build root share
// one call to resolve. Errors are returned to every waiting caller and are
// not stored, so a later call tries again.
func (c *Cache) GetOrResolve(buildRoot string, resolve ResolveFunc) (string, error) {
	key := filepath.Clean(buildRoot)
	if path, ok := c.Get(key); ok {
		return path, nil
	}

	result, err, _ := c.requestGroup.Do(key, func() (any, error) {
		// Another caller may have finished between Get and Do.
		if path, ok := c.Get(key); ok {
			return path, nil
		}

		path, err := resolve()
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.entries[key]; ok {
			return existing, nil
		}
		c.entries[key] = path
		return path, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Len returns the number of stored build roots.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
