// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type countingFace struct {
	closed *int
}

func (f countingFace) Close() error { *f.closed++; return nil }

func (countingFace) Glyph(fixed.Point26_6, rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rectangle{}, nil, image.Point{}, 0, false
}

func (countingFace) GlyphBounds(rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.Rectangle26_6{}, 0, false
}

func (countingFace) GlyphAdvance(rune) (fixed.Int26_6, bool) { return 0, false }

func (countingFace) Kern(rune, rune) fixed.Int26_6 { return 0 }

func (countingFace) Metrics() font.Metrics { return font.Metrics{} }

func TestFaceCacheReuse(t *testing.T) {
	closed := 0
	c := newFaceCache(4)
	created := 0
	create := func() font.Face {
		created++
		return countingFace{&closed}
	}
	key := faceKey{mono: true, size: 14}
	c.getOrCreate(key, create)
	c.getOrCreate(key, create)
	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}
}

func TestFaceCacheEvictsOldest(t *testing.T) {
	closed := 0
	c := newFaceCache(4)
	create := func() font.Face { return countingFace{&closed} }
	for size := 1; size <= 4; size++ {
		c.getOrCreate(faceKey{size: float64(size)}, create)
	}
	// Touch size 1 so sizes 2 and 3 are the oldest.
	c.getOrCreate(faceKey{size: 1}, create)
	c.getOrCreate(faceKey{size: 5}, create)

	if c.len() != 3 {
		t.Fatalf("len = %d, want 3", c.len())
	}
	if closed != 2 {
		t.Errorf("closed = %d, want 2", closed)
	}
	for _, size := range []float64{1, 4, 5} {
		if _, ok := c.entries[faceKey{size: size}]; !ok {
			t.Errorf("size %v was evicted", size)
		}
	}

	if err := c.clear(); err != nil {
		t.Fatal(err)
	}
	if c.len() != 0 || closed != 5 {
		t.Errorf("after clear len = %d closed = %d", c.len(), closed)
	}
}
