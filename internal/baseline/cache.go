// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-baseline-resolver R4 (session caches).
package baseline

import (
	"sync"

	"github.com/petar-djukic/go-impact/pkg/types"
)

// snapshotCache maps file paths to the last content seen as "saved". It
// lives for the resolver's lifetime and is cleared only on explicit request.
type snapshotCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{entries: make(map[string]string)}
}

func (c *snapshotCache) get(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[path]
	return text, ok
}

func (c *snapshotCache) put(path, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = text
}

func (c *snapshotCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

// refKey identifies one resolved VCS baseline.
type refKey struct {
	repoRoot  string
	filePath  string
	mode      Mode
	targetRef string
}

// refEntry caches the text resolved for a key at a specific HEAD commit.
// A different current HEAD invalidates the entry (cheap staleness check).
type refEntry struct {
	headID     string
	text       string
	resolution types.BaselineResolution
}

// refCache maps refKey to the last resolved commit content.
type refCache struct {
	mu      sync.Mutex
	entries map[refKey]refEntry
}

func newRefCache() *refCache {
	return &refCache{entries: make(map[refKey]refEntry)}
}

// get returns the cached entry only when headID still matches.
func (c *refCache) get(key refKey, headID string) (refEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.headID != headID {
		return refEntry{}, false
	}
	return e, true
}

func (c *refCache) put(key refKey, e refEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

func (c *refCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[refKey]refEntry)
}
