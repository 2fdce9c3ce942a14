// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"fmt"

	"github.com/gogpu/glex/internal/raster"
	"github.com/gogpu/glex/internal/shade"
)

func (m DrawMode) topology() (raster.Mode, bool) {
	switch m {
	case Triangles:
		return raster.Triangles, true
	case TriangleStrip:
		return raster.TriangleStrip, true
	case TriangleFan:
		return raster.TriangleFan, true
	default:
		return 0, false
	}
}

// DrawArrays draws count vertices starting at first.
func (c *RenderingContext) DrawArrays(mode DrawMode, first, count int) {
	const op = "DrawArrays"
	topo, ok := c.checkDraw(op, mode, count)
	if !ok {
		return
	}
	if first < 0 {
		c.fail(InvalidValue, op, fmt.Errorf("first %d", first))
		return
	}
	ids := make([]int, count)
	for i := range ids {
		ids[i] = first + i
	}
	c.draw(op, topo, ids)
}

// DrawElements draws count vertices whose indices are read from the bound
// element array buffer, starting offset bytes in.
func (c *RenderingContext) DrawElements(mode DrawMode, count int, typ DataType, offset int) {
	const op = "DrawElements"
	topo, ok := c.checkDraw(op, mode, count)
	if !ok {
		return
	}
	if typ != UnsignedByte && typ != UnsignedShort && typ != UnsignedInt {
		c.fail(InvalidEnum, op, fmt.Errorf("index type 0x%04X: %w", uint32(typ), ErrUnsupported))
		return
	}
	if offset < 0 {
		c.fail(InvalidValue, op, fmt.Errorf("offset %d", offset))
		return
	}
	if offset%typ.size() != 0 {
		c.fail(InvalidOperation, op, fmt.Errorf("offset %d is not a multiple of the index size", offset))
		return
	}
	eb := c.vao.elements
	if eb == nil || eb.deleted {
		c.fail(InvalidOperation, op, ErrNoBuffer)
		return
	}
	if offset+count*typ.size() > len(eb.data) {
		c.fail(InvalidOperation, op, fmt.Errorf("indices: %w", ErrOutOfRange))
		return
	}
	data := eb.data[offset:]
	ids := make([]int, count)
	for i := range ids {
		ids[i] = readIndex(data, typ, i)
	}
	c.draw(op, topo, ids)
}

func (c *RenderingContext) checkDraw(op string, mode DrawMode, count int) (raster.Mode, bool) {
	if mode > TriangleFan {
		c.fail(InvalidEnum, op, fmt.Errorf("mode %s: %w", mode, ErrUnsupported))
		return 0, false
	}
	topo, ok := mode.topology()
	if !ok {
		c.fail(InvalidEnum, op, fmt.Errorf("points and lines are not rasterized: %w", ErrUnsupported))
		return 0, false
	}
	if count < 0 {
		c.fail(InvalidValue, op, fmt.Errorf("count %d", count))
		return 0, false
	}
	if c.program == nil {
		c.fail(InvalidOperation, op, ErrNoProgram)
		return 0, false
	}
	return topo, true
}

type shadedVertex struct {
	v      raster.Vertex
	culled bool
}

// draw runs the vertex stage once per distinct vertex, assembles
// primitives, and shades every covered fragment.
func (c *RenderingContext) draw(op string, topo raster.Mode, ids []int) {
	prog := c.program.linked
	tris := raster.Assemble(topo, len(ids))
	if len(tris) == 0 {
		return
	}

	vp := c.viewport
	halfW := float64(vp.Dx()) / 2
	halfH := float64(vp.Dy()) / 2

	cache := make(map[int]*shadedVertex, len(ids))
	attribs := make([][4]float64, MaxVertexAttribs)
	shadeVertex := func(id int) (*shadedVertex, error) {
		if sv, ok := cache[id]; ok {
			return sv, nil
		}
		for i := range attribs {
			a := &c.vao.attribs[i]
			if !a.enabled {
				attribs[i] = c.generic[i]
				continue
			}
			if err := a.fetch(id, &attribs[i]); err != nil {
				return nil, fmt.Errorf("attribute %d: %w", i, err)
			}
		}
		out, err := prog.RunVertex(attribs, id)
		if err != nil {
			return nil, err
		}
		sv := &shadedVertex{}
		w := out.Position[3]
		if !(w > 0) {
			// Geometry behind the eye is not clipped against the near
			// plane; triangles touching it are dropped.
			sv.culled = true
		} else {
			inv := 1 / w
			sv.v = raster.Vertex{
				X:        float64(vp.Min.X) + (out.Position[0]*inv+1)*halfW,
				Y:        float64(vp.Min.Y) + (out.Position[1]*inv+1)*halfH,
				Z:        out.Position[2] * inv,
				InvW:     inv,
				Varyings: out.Varyings,
			}
		}
		cache[id] = sv
		return sv, nil
	}

	flat := make([]bool, prog.VaryingComponents())
	for _, vy := range prog.Varyings() {
		for k := range vy.Components {
			flat[vy.Offset+k] = vy.Flat
		}
	}
	c.rast.SetFlat(flat)
	c.rast.SetClip(c.writeRect(true))

	emit := func(f *raster.Fragment) error {
		color, discarded, err := prog.RunFragment(shade.FragmentInput{
			FragCoord:   f.FragCoord,
			FrontFacing: f.FrontFacing,
			Varyings:    f.Varyings,
		})
		if err != nil || discarded {
			return err
		}
		c.fb.SetPixel(f.X, f.Y, RGBA{R: color[0], G: color[1], B: color[2], A: color[3]})
		return nil
	}

	for _, tri := range tris {
		var vs [3]*raster.Vertex
		culled := false
		for k, idx := range tri {
			sv, err := shadeVertex(ids[idx])
			if err != nil {
				c.shaderFailed(op, err)
				return
			}
			culled = culled || sv.culled
			vs[k] = &sv.v
		}
		if culled {
			continue
		}
		if err := c.rast.Triangle(vs, emit); err != nil {
			c.shaderFailed(op, err)
			return
		}
	}
}

func (c *RenderingContext) shaderFailed(op string, err error) {
	Logger().Error("glex: draw aborted", "op", op, "err", err)
	c.fail(InvalidOperation, op, err)
}
