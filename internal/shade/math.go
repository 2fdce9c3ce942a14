// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"
	"math"

	"github.com/gogpu/naga/ir"
)

// unaryMath are the builtins applied independently to every component.
var unaryMath = map[ir.MathFunction]func(float64) float64{
	ir.MathAbs:         math.Abs,
	ir.MathCos:         math.Cos,
	ir.MathCosh:        math.Cosh,
	ir.MathSin:         math.Sin,
	ir.MathSinh:        math.Sinh,
	ir.MathTan:         math.Tan,
	ir.MathTanh:        math.Tanh,
	ir.MathAcos:        math.Acos,
	ir.MathAsin:        math.Asin,
	ir.MathAtan:        math.Atan,
	ir.MathAsinh:       math.Asinh,
	ir.MathAcosh:       math.Acosh,
	ir.MathAtanh:       math.Atanh,
	ir.MathCeil:        math.Ceil,
	ir.MathFloor:       math.Floor,
	ir.MathRound:       math.RoundToEven,
	ir.MathTrunc:       math.Trunc,
	ir.MathExp:         math.Exp,
	ir.MathExp2:        math.Exp2,
	ir.MathLog:         math.Log,
	ir.MathLog2:        math.Log2,
	ir.MathSqrt:        math.Sqrt,
	ir.MathInverseSqrt: func(x float64) float64 { return 1 / math.Sqrt(x) },
	ir.MathRadians:     func(x float64) float64 { return x * math.Pi / 180 },
	ir.MathDegrees:     func(x float64) float64 { return x * 180 / math.Pi },
	ir.MathFract:       func(x float64) float64 { return x - math.Floor(x) },
	ir.MathSaturate:    func(x float64) float64 { return math.Max(0, math.Min(x, 1)) },
	ir.MathSign: func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	},
	ir.MathQuantizeF16: func(x float64) float64 { return float64(float32(x)) },
}

var binaryMath = map[ir.MathFunction]func(x, y float64) float64{
	ir.MathMin:   math.Min,
	ir.MathMax:   math.Max,
	ir.MathAtan2: math.Atan2,
	ir.MathPow:   math.Pow,
	ir.MathStep: func(edge, x float64) float64 {
		return boolf(x >= edge)
	},
}

// otherMath lists the remaining supported builtins, implemented in
// mathFunc.
var otherMath = map[ir.MathFunction]bool{
	ir.MathClamp:       true,
	ir.MathMix:         true,
	ir.MathSmoothStep:  true,
	ir.MathFma:         true,
	ir.MathDot:         true,
	ir.MathCross:       true,
	ir.MathLength:      true,
	ir.MathDistance:    true,
	ir.MathNormalize:   true,
	ir.MathReflect:     true,
	ir.MathFaceForward: true,
	ir.MathRefract:     true,
	ir.MathOuter:       true,
	ir.MathTranspose:   true,
	ir.MathDeterminant: true,
}

func mathSupported(f ir.MathFunction) bool {
	if _, ok := unaryMath[f]; ok {
		return true
	}
	if _, ok := binaryMath[f]; ok {
		return true
	}
	return otherMath[f]
}

func mathFunc(fun ir.MathFunction, args []value) (value, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("math function %d takes %d arguments, got %d", fun, n, len(args))
		}
		return nil
	}

	if f, ok := unaryMath[fun]; ok {
		return mapc(args[0], f), nil
	}
	if f, ok := binaryMath[fun]; ok {
		if err := need(2); err != nil {
			return value{}, err
		}
		return zip(args[0], args[1], f)
	}

	switch fun {
	case ir.MathClamp:
		if err := need(3); err != nil {
			return value{}, err
		}
		lo, err := zip(args[0], args[1], math.Max)
		if err != nil {
			return value{}, err
		}
		return zip(lo, args[2], math.Min)

	case ir.MathMix:
		if err := need(3); err != nil {
			return value{}, err
		}
		d, err := zip(args[1], args[0], func(b, a float64) float64 { return b - a })
		if err != nil {
			return value{}, err
		}
		s, err := zip(d, args[2], func(d, t float64) float64 { return d * t })
		if err != nil {
			return value{}, err
		}
		return zip(args[0], s, func(a, s float64) float64 { return a + s })

	case ir.MathSmoothStep:
		if err := need(3); err != nil {
			return value{}, err
		}
		n := max(len(args[0].c), len(args[1].c), len(args[2].c))
		c := make([]float64, n)
		for i := range c {
			lo, hi, x := comp(args[0], i), comp(args[1], i), comp(args[2], i)
			t := math.Max(0, math.Min((x-lo)/(hi-lo), 1))
			c[i] = t * t * (3 - 2*t)
		}
		return value{c: c}, nil

	case ir.MathFma:
		if err := need(3); err != nil {
			return value{}, err
		}
		p, err := zip(args[0], args[1], func(a, b float64) float64 { return a * b })
		if err != nil {
			return value{}, err
		}
		return zip(p, args[2], func(p, c float64) float64 { return p + c })

	case ir.MathDot:
		if err := need(2); err != nil {
			return value{}, err
		}
		return scalar(dot(args[0].c, args[1].c)), nil

	case ir.MathCross:
		if err := need(2); err != nil {
			return value{}, err
		}
		a, b := args[0].c, args[1].c
		if len(a) != 3 || len(b) != 3 {
			return value{}, fmt.Errorf("cross requires vec3 operands")
		}
		return value{c: []float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}}, nil

	case ir.MathLength:
		return scalar(math.Sqrt(dot(args[0].c, args[0].c))), nil

	case ir.MathDistance:
		if err := need(2); err != nil {
			return value{}, err
		}
		d, err := zip(args[0], args[1], func(a, b float64) float64 { return a - b })
		if err != nil {
			return value{}, err
		}
		return scalar(math.Sqrt(dot(d.c, d.c))), nil

	case ir.MathNormalize:
		l := math.Sqrt(dot(args[0].c, args[0].c))
		return mapc(args[0], func(x float64) float64 { return x / l }), nil

	case ir.MathReflect:
		if err := need(2); err != nil {
			return value{}, err
		}
		e1, e2 := args[0], args[1]
		k := 2 * dot(e2.c, e1.c)
		return zip(e1, e2, func(a, n float64) float64 { return a - k*n })

	case ir.MathFaceForward:
		if err := need(3); err != nil {
			return value{}, err
		}
		if dot(args[1].c, args[2].c) < 0 {
			return args[0], nil
		}
		return mapc(args[0], func(x float64) float64 { return -x }), nil

	case ir.MathRefract:
		if err := need(3); err != nil {
			return value{}, err
		}
		e1, e2, eta := args[0], args[1], args[2].c[0]
		d := dot(e2.c, e1.c)
		k := 1 - eta*eta*(1-d*d)
		if k < 0 {
			return value{c: make([]float64, len(e1.c))}, nil
		}
		s := eta*d + math.Sqrt(k)
		return zip(e1, e2, func(a, n float64) float64 { return eta*a - s*n })

	case ir.MathOuter:
		if err := need(2); err != nil {
			return value{}, err
		}
		cols := make([]value, len(args[1].c))
		for j, y := range args[1].c {
			cols[j] = mapc(args[0], func(x float64) float64 { return x * y })
		}
		return value{f: cols}, nil

	case ir.MathTranspose:
		m := args[0].f
		if len(m) == 0 {
			return value{}, fmt.Errorf("transpose requires a matrix")
		}
		rows := len(m[0].c)
		cols := make([]value, rows)
		for i := range cols {
			c := make([]float64, len(m))
			for j := range m {
				c[j] = m[j].c[i]
			}
			cols[i] = value{c: c}
		}
		return value{f: cols}, nil

	case ir.MathDeterminant:
		return determinant(args[0])

	default:
		return value{}, fmt.Errorf("math function %d is not supported", fun)
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range min(len(a), len(b)) {
		s += a[i] * b[i]
	}
	return s
}

func determinant(m value) (value, error) {
	at := func(c, r int) float64 { return m.f[c].c[r] }
	switch len(m.f) {
	case 2:
		return scalar(at(0, 0)*at(1, 1) - at(1, 0)*at(0, 1)), nil
	case 3:
		return scalar(at(0, 0)*(at(1, 1)*at(2, 2)-at(2, 1)*at(1, 2)) -
			at(1, 0)*(at(0, 1)*at(2, 2)-at(2, 1)*at(0, 2)) +
			at(2, 0)*(at(0, 1)*at(1, 2)-at(1, 1)*at(0, 2))), nil
	case 4:
		// Laplace expansion along the first row.
		var det float64
		for c := range 4 {
			minor := make([]value, 0, 3)
			for k := range 4 {
				if k == c {
					continue
				}
				minor = append(minor, value{c: m.f[k].c[1:4]})
			}
			d, err := determinant(value{f: minor})
			if err != nil {
				return value{}, err
			}
			sign := 1.0
			if c%2 == 1 {
				sign = -1
			}
			det += sign * at(c, 0) * d.c[0]
		}
		return scalar(det), nil
	default:
		return value{}, fmt.Errorf("determinant of a %d-column matrix", len(m.f))
	}
}
