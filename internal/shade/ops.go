// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"
	"math"

	"github.com/gogpu/naga/ir"
)

func mapc(v value, f func(float64) float64) value {
	if v.f != nil {
		cols := make([]value, len(v.f))
		for i := range v.f {
			cols[i] = mapc(v.f[i], f)
		}
		return value{f: cols}
	}
	c := make([]float64, len(v.c))
	for i, x := range v.c {
		c[i] = f(x)
	}
	return value{c: c}
}

// zip applies f componentwise, broadcasting a scalar operand.
func zip(a, b value, f func(x, y float64) float64) (value, error) {
	if a.f != nil || b.f != nil {
		if len(a.f) != len(b.f) {
			return value{}, fmt.Errorf("matrix shape mismatch")
		}
		cols := make([]value, len(a.f))
		for i := range a.f {
			col, err := zip(a.f[i], b.f[i], f)
			if err != nil {
				return value{}, err
			}
			cols[i] = col
		}
		return value{f: cols}, nil
	}
	n := max(len(a.c), len(b.c))
	if (len(a.c) != n && len(a.c) != 1) || (len(b.c) != n && len(b.c) != 1) {
		return value{}, fmt.Errorf("operand sizes %d and %d do not match", len(a.c), len(b.c))
	}
	c := make([]float64, n)
	for i := range c {
		c[i] = f(comp(a, i), comp(b, i))
	}
	return value{c: c}, nil
}

func comp(v value, i int) float64 {
	if len(v.c) == 1 {
		return v.c[0]
	}
	return v.c[i]
}

func toInt(kind ir.ScalarKind, x float64) int64 {
	if kind == ir.ScalarUint {
		return int64(uint32(int64(x)))
	}
	return int64(int32(int64(x)))
}

func unary(op ir.UnaryOperator, kind ir.ScalarKind, v value) (value, error) {
	switch op {
	case ir.UnaryNegate:
		return mapc(v, func(x float64) float64 { return wrap(kind, -x) }), nil
	case ir.UnaryLogicalNot:
		return mapc(v, func(x float64) float64 { return boolf(x == 0) }), nil
	case ir.UnaryBitwiseNot:
		return mapc(v, func(x float64) float64 { return wrap(kind, float64(^toInt(kind, x))) }), nil
	default:
		return value{}, fmt.Errorf("unary operator %d is not supported", op)
	}
}

func binary(op ir.BinaryOperator, kind ir.ScalarKind, l, r value) (value, error) {
	if op == ir.BinaryMultiply && (l.f != nil || r.f != nil) {
		return matMul(l, r)
	}
	var f func(x, y float64) float64
	switch op {
	case ir.BinaryAdd:
		f = func(x, y float64) float64 { return wrap(kind, x+y) }
	case ir.BinarySubtract:
		f = func(x, y float64) float64 { return wrap(kind, x-y) }
	case ir.BinaryMultiply:
		if isInt(kind) {
			f = func(x, y float64) float64 { return wrap(kind, float64(toInt(kind, x)*toInt(kind, y))) }
		} else {
			f = func(x, y float64) float64 { return x * y }
		}
	case ir.BinaryDivide:
		if isInt(kind) {
			// Integer division by zero yields the dividend.
			f = func(x, y float64) float64 {
				if y == 0 {
					return x
				}
				return wrap(kind, math.Trunc(x/y))
			}
		} else {
			f = func(x, y float64) float64 { return x / y }
		}
	case ir.BinaryModulo:
		if isInt(kind) {
			f = func(x, y float64) float64 {
				if y == 0 {
					return 0
				}
				return wrap(kind, float64(toInt(kind, x)%toInt(kind, y)))
			}
		} else {
			f = func(x, y float64) float64 { return x - y*math.Trunc(x/y) }
		}
	case ir.BinaryEqual:
		f = func(x, y float64) float64 { return boolf(x == y) }
	case ir.BinaryNotEqual:
		f = func(x, y float64) float64 { return boolf(x != y) }
	case ir.BinaryLess:
		f = func(x, y float64) float64 { return boolf(x < y) }
	case ir.BinaryLessEqual:
		f = func(x, y float64) float64 { return boolf(x <= y) }
	case ir.BinaryGreater:
		f = func(x, y float64) float64 { return boolf(x > y) }
	case ir.BinaryGreaterEqual:
		f = func(x, y float64) float64 { return boolf(x >= y) }
	case ir.BinaryAnd:
		f = func(x, y float64) float64 { return wrap(kind, float64(toInt(kind, x)&toInt(kind, y))) }
	case ir.BinaryInclusiveOr:
		f = func(x, y float64) float64 { return wrap(kind, float64(toInt(kind, x)|toInt(kind, y))) }
	case ir.BinaryExclusiveOr:
		f = func(x, y float64) float64 { return wrap(kind, float64(toInt(kind, x)^toInt(kind, y))) }
	case ir.BinaryLogicalAnd:
		f = func(x, y float64) float64 { return boolf(x != 0 && y != 0) }
	case ir.BinaryLogicalOr:
		f = func(x, y float64) float64 { return boolf(x != 0 || y != 0) }
	case ir.BinaryShiftLeft:
		f = func(x, y float64) float64 {
			return wrap(kind, float64(toInt(kind, x)<<(uint64(y)&31)))
		}
	case ir.BinaryShiftRight:
		f = func(x, y float64) float64 {
			return wrap(kind, float64(toInt(kind, x)>>(uint64(y)&31)))
		}
	default:
		return value{}, fmt.Errorf("binary operator %d is not supported", op)
	}
	return zip(l, r, f)
}

// matMul implements the multiply operator when a matrix is involved.
// Matrices are stored as columns.
func matMul(l, r value) (value, error) {
	switch {
	case l.f != nil && r.f != nil:
		cols := make([]value, len(r.f))
		for j := range r.f {
			col, err := matMul(l, r.f[j])
			if err != nil {
				return value{}, err
			}
			cols[j] = col
		}
		return value{f: cols}, nil
	case l.f != nil && len(r.c) == 1:
		return mapc(l, func(x float64) float64 { return x * r.c[0] }), nil
	case r.f != nil && len(l.c) == 1:
		return mapc(r, func(x float64) float64 { return x * l.c[0] }), nil
	case l.f != nil:
		if len(r.c) != len(l.f) {
			return value{}, fmt.Errorf("matrix with %d columns times vec%d", len(l.f), len(r.c))
		}
		out := make([]float64, len(l.f[0].c))
		for j, col := range l.f {
			for i := range out {
				out[i] += col.c[i] * r.c[j]
			}
		}
		return value{c: out}, nil
	default:
		if len(r.f) == 0 || len(l.c) != len(r.f[0].c) {
			return value{}, fmt.Errorf("vec%d times matrix shape mismatch", len(l.c))
		}
		out := make([]float64, len(r.f))
		for j, col := range r.f {
			out[j] = dot(l.c, col.c)
		}
		return value{c: out}, nil
	}
}

func relational(fun ir.RelationalFunction, v value) (value, error) {
	switch fun {
	case ir.RelationalAll:
		for _, x := range v.c {
			if x == 0 {
				return scalar(0), nil
			}
		}
		return scalar(1), nil
	case ir.RelationalAny:
		for _, x := range v.c {
			if x != 0 {
				return scalar(1), nil
			}
		}
		return scalar(0), nil
	case ir.RelationalIsNan:
		return mapc(v, func(x float64) float64 { return boolf(math.IsNaN(x)) }), nil
	case ir.RelationalIsInf:
		return mapc(v, func(x float64) float64 { return boolf(math.IsInf(x, 0)) }), nil
	default:
		return value{}, fmt.Errorf("relational function %d is not supported", fun)
	}
}

// convert implements value conversion (numeric) and bitcast between
// scalar kinds.
func convert(v value, from, to ir.ScalarKind, numeric bool) value {
	if !numeric {
		return mapc(v, func(x float64) float64 { return bitcast(x, from, to) })
	}
	return mapc(v, func(x float64) float64 {
		switch to {
		case ir.ScalarBool:
			return boolf(x != 0)
		case ir.ScalarSint:
			if math.IsNaN(x) {
				return 0
			}
			return math.Trunc(math.Max(math.MinInt32, math.Min(x, math.MaxInt32)))
		case ir.ScalarUint:
			if math.IsNaN(x) {
				return 0
			}
			return math.Trunc(math.Max(0, math.Min(x, math.MaxUint32)))
		default:
			return x
		}
	})
}

func bitcast(x float64, from, to ir.ScalarKind) float64 {
	var bits uint32
	switch from {
	case ir.ScalarFloat, ir.ScalarAbstractFloat:
		bits = math.Float32bits(float32(x))
	case ir.ScalarSint, ir.ScalarAbstractInt:
		bits = uint32(int32(int64(x)))
	default:
		bits = uint32(int64(x))
	}
	switch to {
	case ir.ScalarFloat:
		return float64(math.Float32frombits(bits))
	case ir.ScalarSint:
		return float64(int32(bits))
	default:
		return float64(bits)
	}
}
