// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"errors"
	"fmt"
)

// value is the runtime representation of every IR expression result.
//
// Scalars and vectors keep their components in c. Structs, arrays and
// matrices (as columns) keep their members in f. Pointer expressions
// (globals, locals, and accesses through them) carry p.
type value struct {
	c []float64
	f []value
	p *pointer
}

var errNotAPointer = errors.New("shade: value is not a pointer")

func scalar(x float64) value {
	return value{c: []float64{x}}
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (v value) clone() value {
	out := value{p: v.p}
	if v.c != nil {
		out.c = append([]float64(nil), v.c...)
	}
	if v.f != nil {
		out.f = make([]value, len(v.f))
		for i := range v.f {
			out.f[i] = v.f[i].clone()
		}
	}
	return out
}

func (v value) truthy() bool {
	return len(v.c) > 0 && v.c[0] != 0
}

// pointer addresses a storage cell or a component inside it.
type pointer struct {
	base *value
	path []int
}

func (p *pointer) child(i int) *pointer {
	path := make([]int, len(p.path)+1)
	copy(path, p.path)
	path[len(p.path)] = i
	return &pointer{base: p.base, path: path}
}

// resolve walks the path. It returns the addressed cell and, when the last
// step selects a vector component, that component's index (else -1).
func (p *pointer) resolve() (*value, int, error) {
	cur := p.base
	for i, idx := range p.path {
		switch {
		case cur.f != nil:
			if idx < 0 || idx >= len(cur.f) {
				return nil, -1, fmt.Errorf("shade: index %d out of bounds (len %d)", idx, len(cur.f))
			}
			cur = &cur.f[idx]
		case i == len(p.path)-1:
			if idx < 0 || idx >= len(cur.c) {
				return nil, -1, fmt.Errorf("shade: component %d out of bounds (len %d)", idx, len(cur.c))
			}
			return cur, idx, nil
		default:
			return nil, -1, fmt.Errorf("shade: cannot index into scalar at depth %d", i)
		}
	}
	return cur, -1, nil
}

func (p *pointer) load() (value, error) {
	cell, comp, err := p.resolve()
	if err != nil {
		return value{}, err
	}
	if comp >= 0 {
		return scalar(cell.c[comp]), nil
	}
	return cell.clone(), nil
}

func (p *pointer) store(v value) error {
	cell, comp, err := p.resolve()
	if err != nil {
		return err
	}
	if comp >= 0 {
		if len(v.c) != 1 {
			return fmt.Errorf("shade: storing %d components into a scalar", len(v.c))
		}
		cell.c[comp] = v.c[0]
		return nil
	}
	*cell = v.clone()
	return nil
}

// index selects member or component i of v, producing a pointer when v is
// itself a pointer.
func index(v value, i int) (value, error) {
	switch {
	case v.p != nil:
		return value{p: v.p.child(i)}, nil
	case v.f != nil:
		if i < 0 || i >= len(v.f) {
			return value{}, fmt.Errorf("shade: index %d out of bounds (len %d)", i, len(v.f))
		}
		return v.f[i], nil
	default:
		if i < 0 || i >= len(v.c) {
			return value{}, fmt.Errorf("shade: component %d out of bounds (len %d)", i, len(v.c))
		}
		return scalar(v.c[i]), nil
	}
}
