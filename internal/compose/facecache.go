// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"cmp"
	"errors"
	"slices"

	"golang.org/x/image/font"
)

// faceCacheLimit bounds the number of open faces. Pages rarely use more
// than a couple of family and size pairs.
const faceCacheLimit = 16

// faceCache keeps rasterizing faces with a soft limit; when it is exceeded
// the least recently used quarter is closed and dropped. Not safe for
// concurrent use; the Compositor lock guards it.
type faceCache struct {
	entries   map[faceKey]*faceEntry
	softLimit int
	tick      int64
}

type faceEntry struct {
	face  font.Face
	atime int64
}

func newFaceCache(softLimit int) *faceCache {
	return &faceCache{entries: make(map[faceKey]*faceEntry), softLimit: softLimit}
}

// getOrCreate returns the cached face for key or stores the one create
// returns.
func (c *faceCache) getOrCreate(key faceKey, create func() font.Face) font.Face {
	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		return e.face
	}
	f := create()
	c.entries[key] = &faceEntry{face: f, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return f
}

func (c *faceCache) len() int {
	return len(c.entries)
}

// evictOldest closes entries until three quarters of the soft limit remain.
func (c *faceCache) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}
	type aged struct {
		key   faceKey
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })
	for _, a := range all[:n] {
		_ = c.entries[a.key].face.Close()
		delete(c.entries, a.key)
	}
}

// clear closes every face.
func (c *faceCache) clear() error {
	var errs []error
	for k, e := range c.entries {
		errs = append(errs, e.face.Close())
		delete(c.entries, k)
	}
	c.tick = 0
	return errors.Join(errs...)
}
