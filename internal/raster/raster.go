// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts triangles in window coordinates into fragments.
//
// Coverage is sampled at pixel centres with edge functions. Pixels whose
// centre lies exactly on an edge are owned by the triangle for which that
// edge is a top or left edge, so triangles sharing an edge never write the
// same pixel twice. Window coordinates have their origin at the bottom-left
// corner, as in GL.
package raster

import (
	"image"
	"math"
)

// Vertex is a vertex after perspective division and the viewport
// transform.
type Vertex struct {
	X, Y float64
	Z    float64
	// InvW is 1/w of the clip-space position.
	InvW     float64
	Varyings []float64
}

// Fragment is produced for every covered pixel. Varyings is reused between
// calls and is only valid during the emit callback.
type Fragment struct {
	X, Y        int
	FragCoord   [4]float64
	FrontFacing bool
	Varyings    []float64
}

// Rasterizer scan-converts triangles into a clip rectangle.
type Rasterizer struct {
	clip image.Rectangle
	flat []bool
	frag Fragment
}

// NewRasterizer creates a rasterizer that emits fragments inside clip.
func NewRasterizer(clip image.Rectangle) *Rasterizer {
	return &Rasterizer{clip: clip}
}

// SetClip replaces the clip rectangle.
func (r *Rasterizer) SetClip(clip image.Rectangle) {
	r.clip = clip
}

// SetFlat marks varying components that take the provoking vertex value
// instead of being interpolated.
func (r *Rasterizer) SetFlat(flat []bool) {
	r.flat = flat
}

// edge is twice the signed area of triangle (a, b, p). It is positive when
// p lies to the left of a→b.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether a→b is a top or left edge of a counter-clockwise
// triangle in y-up coordinates.
func topLeft(a, b *Vertex) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dy < 0 || (dy == 0 && dx < 0)
}

func covered(w float64, a, b *Vertex) bool {
	return w > 0 || (w == 0 && topLeft(a, b))
}

// Triangle rasterizes v. The provoking vertex for flat varyings is v[2].
// Counter-clockwise triangles are front facing. Degenerate triangles
// produce no fragments. Rasterization stops at the first error returned
// by emit.
func (r *Rasterizer) Triangle(v [3]*Vertex, emit func(*Fragment) error) error {
	provoking := v[2]
	v0, v1, v2 := v[0], v[1], v[2]
	for _, p := range v {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil
		}
	}

	area := edge(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	if area == 0 {
		return nil
	}
	front := area > 0
	if !front {
		v1, v2 = v2, v1
		area = -area
	}

	minX := math.Floor(min(v0.X, v1.X, v2.X))
	maxX := math.Ceil(max(v0.X, v1.X, v2.X))
	minY := math.Floor(min(v0.Y, v1.Y, v2.Y))
	maxY := math.Ceil(max(v0.Y, v1.Y, v2.Y))
	box := image.Rect(
		int(math.Max(minX, float64(r.clip.Min.X))),
		int(math.Max(minY, float64(r.clip.Min.Y))),
		int(math.Min(maxX+1, float64(r.clip.Max.X))),
		int(math.Min(maxY+1, float64(r.clip.Max.Y))),
	).Intersect(r.clip)
	if box.Empty() {
		return nil
	}

	n := len(provoking.Varyings)
	if cap(r.frag.Varyings) < n {
		r.frag.Varyings = make([]float64, n)
	}
	r.frag.Varyings = r.frag.Varyings[:n]
	r.frag.FrontFacing = front

	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			px := float64(x) + 0.5
			w0 := edge(v1.X, v1.Y, v2.X, v2.Y, px, py)
			w1 := edge(v2.X, v2.Y, v0.X, v0.Y, px, py)
			w2 := edge(v0.X, v0.Y, v1.X, v1.Y, px, py)
			if !covered(w0, v1, v2) || !covered(w1, v2, v0) || !covered(w2, v0, v1) {
				continue
			}

			b0, b1, b2 := w0/area, w1/area, w2/area
			invW := b0*v0.InvW + b1*v1.InvW + b2*v2.InvW
			p0, p1, p2 := b0, b1, b2
			if invW != 0 {
				p0 = b0 * v0.InvW / invW
				p1 = b1 * v1.InvW / invW
				p2 = b2 * v2.InvW / invW
			}

			f := &r.frag
			f.X, f.Y = x, y
			f.FragCoord = [4]float64{px, py, b0*v0.Z + b1*v1.Z + b2*v2.Z, invW}
			for i := range f.Varyings {
				if i < len(r.flat) && r.flat[i] {
					f.Varyings[i] = provoking.Varyings[i]
					continue
				}
				f.Varyings[i] = p0*v0.Varyings[i] + p1*v1.Varyings[i] + p2*v2.Varyings[i]
			}
			if err := emit(f); err != nil {
				return err
			}
		}
	}
	return nil
}
