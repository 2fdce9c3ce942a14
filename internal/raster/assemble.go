// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Mode is a triangle primitive topology.
type Mode uint8

const (
	Triangles Mode = iota
	TriangleStrip
	TriangleFan
)

// Assemble returns the vertex indices of every triangle formed by n
// vertices in the given topology. Each triangle lists its provoking vertex
// last. Strip triangles alternate order so that all of them share the
// winding of the first.
func Assemble(mode Mode, n int) [][3]int {
	if n < 3 {
		return nil
	}
	switch mode {
	case Triangles:
		tris := make([][3]int, 0, n/3)
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]int{i, i + 1, i + 2})
		}
		return tris
	case TriangleStrip:
		tris := make([][3]int, 0, n-2)
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				tris = append(tris, [3]int{i, i + 1, i + 2})
			} else {
				tris = append(tris, [3]int{i + 1, i, i + 2})
			}
		}
		return tris
	case TriangleFan:
		tris := make([][3]int, 0, n-2)
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
		return tris
	default:
		return nil
	}
}
