// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"

	"github.com/gogpu/naga/ir"
)

// DefaultAttribute is the value of a vertex attribute with no enabled
// array.
var DefaultAttribute = [4]float64{0, 0, 0, 1}

// VertexOutput is the result of one vertex shader invocation.
type VertexOutput struct {
	// Position is the clip-space position.
	Position [4]float64
	// Varyings holds Program.VaryingComponents values, laid out as
	// described by Program.Varyings.
	Varyings []float64
}

// FragmentInput carries the per-fragment builtins and interpolated
// varyings.
type FragmentInput struct {
	// FragCoord is (x, y, z, 1/w) in window coordinates, with x and y at
	// the pixel centre.
	FragCoord   [4]float64
	FrontFacing bool
	Varyings    []float64
}

// RunVertex executes the vertex stage for one vertex. attribs is indexed
// by location; missing locations read DefaultAttribute.
func (p *Program) RunVertex(attribs [][4]float64, vertexIndex int) (VertexOutput, error) {
	if p.vsInv == nil {
		p.vsInv = newInvocation(p.vs, p, &p.vs.entry.Function, nil, make(map[ir.GlobalVariableHandle]*value), 0)
	}
	args, err := p.vs.args(p.vsIn, func(s slot) (value, error) {
		switch b := s.binding.(type) {
		case ir.LocationBinding:
			a := DefaultAttribute
			if int(b.Location) < len(attribs) {
				a = attribs[b.Location]
			}
			c := make([]float64, s.comps)
			copy(c, a[:])
			return value{c: c}, nil
		case ir.BuiltinBinding:
			if b.Builtin == ir.BuiltinVertexIndex {
				return scalar(float64(vertexIndex)), nil
			}
			return scalar(0), nil
		default:
			return value{}, fmt.Errorf("unsupported binding %T", b)
		}
	})
	if err != nil {
		return VertexOutput{}, err
	}

	p.vsInv.reset(args)
	ret, _, err := p.vsInv.run()
	if err != nil {
		return VertexOutput{}, err
	}

	var out VertexOutput
	pos, err := output(ret, findBuiltin(p.vsOut, ir.BuiltinPosition))
	if err != nil {
		return VertexOutput{}, err
	}
	copy(out.Position[:], pos.c)
	out.Varyings = make([]float64, p.stride)
	for _, vy := range p.varyings {
		v, err := output(ret, findLocation(p.vsOut, vy.Location))
		if err != nil {
			return VertexOutput{}, err
		}
		copy(out.Varyings[vy.Offset:vy.Offset+vy.Components], v.c)
	}
	return out, nil
}

// RunFragment executes the fragment stage for one fragment and returns
// the @location(0) color. Missing color components read as 0 except alpha,
// which reads as 1.
func (p *Program) RunFragment(in FragmentInput) (color [4]float64, discarded bool, err error) {
	if p.fsInv == nil {
		p.fsInv = newInvocation(p.fs, p, &p.fs.entry.Function, nil, make(map[ir.GlobalVariableHandle]*value), 0)
	}
	args, err := p.fs.args(p.fsIn, func(s slot) (value, error) {
		switch b := s.binding.(type) {
		case ir.LocationBinding:
			for _, vy := range p.varyings {
				if vy.Location == b.Location {
					c := make([]float64, vy.Components)
					copy(c, in.Varyings[vy.Offset:])
					return value{c: c}, nil
				}
			}
			return value{}, fmt.Errorf("no varying at @location(%d)", b.Location)
		case ir.BuiltinBinding:
			switch b.Builtin {
			case ir.BuiltinPosition:
				return value{c: append([]float64(nil), in.FragCoord[:]...)}, nil
			case ir.BuiltinFrontFacing:
				return scalar(boolf(in.FrontFacing)), nil
			default:
				return scalar(0), nil
			}
		default:
			return value{}, fmt.Errorf("unsupported binding %T", b)
		}
	})
	if err != nil {
		return color, false, err
	}

	p.fsInv.reset(args)
	ret, killed, err := p.fsInv.run()
	if err != nil || killed {
		return color, killed, err
	}
	v, err := output(ret, findLocation(p.fsOut, 0))
	if err != nil {
		return color, false, err
	}
	color = [4]float64{0, 0, 0, 1}
	copy(color[:], v.c)
	return color, false, nil
}

// args builds the entry point arguments, filling every bound slot from
// fill.
func (m *Module) args(slots []slot, fill func(slot) (value, error)) ([]value, error) {
	fnArgs := m.entry.Function.Arguments
	out := make([]value, len(fnArgs))
	for i, a := range fnArgs {
		if a.Binding == nil {
			z, err := m.zero(a.Type)
			if err != nil {
				return nil, err
			}
			out[i] = z
		}
	}
	for _, s := range slots {
		v, err := fill(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		if s.member < 0 {
			out[s.arg] = v
		} else {
			out[s.arg].f[s.member] = v
		}
	}
	return out, nil
}

func output(ret value, s *slot) (value, error) {
	if s == nil {
		return value{}, fmt.Errorf("missing entry point output")
	}
	if s.member < 0 {
		return ret, nil
	}
	if s.member >= len(ret.f) {
		return value{}, fmt.Errorf("output member %d missing", s.member)
	}
	return ret.f[s.member], nil
}
