// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"
	"math"

	"github.com/gogpu/naga/ir"
)

var f32 = ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}

func (m *Module) inner(th ir.TypeHandle) (ir.TypeInner, error) {
	if int(th) >= len(m.ir.Types) {
		return nil, fmt.Errorf("type handle %d out of range", th)
	}
	return m.ir.Types[th].Inner, nil
}

// scalarOf returns the scalar type underlying a scalar, vector or matrix
// type, defaulting to f32.
func (m *Module) scalarOf(th ir.TypeHandle) ir.ScalarType {
	t, err := m.inner(th)
	if err != nil {
		return f32
	}
	return scalarOfInner(t)
}

func scalarOfInner(t ir.TypeInner) ir.ScalarType {
	switch t := t.(type) {
	case ir.ScalarType:
		return t
	case ir.VectorType:
		return t.Scalar
	case ir.MatrixType:
		return t.Scalar
	case ir.AtomicType:
		return t.Scalar
	default:
		return f32
	}
}

// components returns the component count of a scalar or vector type and
// 0 for anything else.
func (m *Module) components(th ir.TypeHandle) int {
	t, err := m.inner(th)
	if err != nil {
		return 0
	}
	switch t := t.(type) {
	case ir.ScalarType:
		return 1
	case ir.VectorType:
		return int(t.Size)
	default:
		return 0
	}
}

// zero builds the zero value of a constructible type.
func (m *Module) zero(th ir.TypeHandle) (value, error) {
	t, err := m.inner(th)
	if err != nil {
		return value{}, err
	}
	switch t := t.(type) {
	case ir.ScalarType, ir.AtomicType:
		return scalar(0), nil
	case ir.VectorType:
		return value{c: make([]float64, t.Size)}, nil
	case ir.MatrixType:
		cols := make([]value, t.Columns)
		for i := range cols {
			cols[i] = value{c: make([]float64, t.Rows)}
		}
		return value{f: cols}, nil
	case ir.ArrayType:
		if t.Size.Constant == nil {
			return value{}, fmt.Errorf("runtime-sized array has no zero value")
		}
		n := int(*t.Size.Constant)
		elems := make([]value, n)
		for i := range elems {
			e, err := m.zero(t.Base)
			if err != nil {
				return value{}, err
			}
			elems[i] = e
		}
		return value{f: elems}, nil
	case ir.StructType:
		members := make([]value, len(t.Members))
		for i, mem := range t.Members {
			v, err := m.zero(mem.Type)
			if err != nil {
				return value{}, err
			}
			members[i] = v
		}
		return value{f: members}, nil
	default:
		return value{}, fmt.Errorf("type %T has no zero value", t)
	}
}

// compose builds a value of type th from its parts. Vector parts are
// flattened; matrices accept either columns or a flat list of scalars.
func (m *Module) compose(th ir.TypeHandle, parts []value) (value, error) {
	t, err := m.inner(th)
	if err != nil {
		return value{}, err
	}
	switch t := t.(type) {
	case ir.VectorType:
		c := make([]float64, 0, t.Size)
		for _, p := range parts {
			c = append(c, p.c...)
		}
		if len(c) != int(t.Size) {
			return value{}, fmt.Errorf("vec%d composed from %d components", t.Size, len(c))
		}
		return value{c: c}, nil
	case ir.MatrixType:
		if len(parts) == int(t.Columns) {
			return value{f: parts}, nil
		}
		flat := make([]float64, 0, int(t.Columns)*int(t.Rows))
		for _, p := range parts {
			flat = append(flat, p.c...)
		}
		if len(flat) != int(t.Columns)*int(t.Rows) {
			return value{}, fmt.Errorf("mat%dx%d composed from %d scalars", t.Columns, t.Rows, len(flat))
		}
		cols := make([]value, t.Columns)
		for i := range cols {
			cols[i] = value{c: flat[i*int(t.Rows) : (i+1)*int(t.Rows)]}
		}
		return value{f: cols}, nil
	case ir.ScalarType:
		if len(parts) != 1 || len(parts[0].c) != 1 {
			return value{}, fmt.Errorf("scalar composed from %d parts", len(parts))
		}
		return parts[0], nil
	default:
		return value{f: parts}, nil
	}
}

// scalarBits decodes the bit pattern of a constant scalar.
func scalarBits(v ir.ScalarValue, width uint8) float64 {
	switch v.Kind {
	case ir.ScalarFloat:
		if width == 8 {
			return math.Float64frombits(v.Bits)
		}
		return float64(math.Float32frombits(uint32(v.Bits)))
	case ir.ScalarAbstractFloat:
		return math.Float64frombits(v.Bits)
	case ir.ScalarSint:
		if width == 8 {
			return float64(int64(v.Bits))
		}
		return float64(int32(uint32(v.Bits)))
	case ir.ScalarAbstractInt:
		return float64(int64(v.Bits))
	case ir.ScalarBool:
		return boolf(v.Bits != 0)
	default:
		return float64(v.Bits)
	}
}

// wrap brings an arithmetic result back into the range of its scalar kind.
func wrap(kind ir.ScalarKind, x float64) float64 {
	switch kind {
	case ir.ScalarSint:
		return float64(int32(int64(math.Trunc(x))))
	case ir.ScalarUint:
		return float64(uint32(int64(math.Trunc(x))))
	case ir.ScalarBool:
		return boolf(x != 0)
	default:
		return x
	}
}

func isInt(kind ir.ScalarKind) bool {
	return kind == ir.ScalarSint || kind == ir.ScalarUint || kind == ir.ScalarAbstractInt
}
