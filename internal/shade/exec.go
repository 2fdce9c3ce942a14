// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"
	"math"

	"github.com/gogpu/naga/ir"
)

type flow uint8

const (
	flowNext flow = iota
	flowBreak
	flowContinue
	flowReturn
	flowKill
)

const (
	maxLoopIterations = 1 << 16
	maxCallDepth      = 64
)

// invocation is one execution of a function. Expression results are cached
// per handle; StmtEmit invalidates and re-evaluates its range, which is how
// loop bodies observe fresh loads on every iteration.
type invocation struct {
	m       *Module
	prog    *Program
	fn      *ir.Function
	args    []value
	private map[ir.GlobalVariableHandle]*value
	depth   int

	vals   []value
	have   []bool
	locals []value
	ret    value
}

func newInvocation(m *Module, prog *Program, fn *ir.Function, args []value, private map[ir.GlobalVariableHandle]*value, depth int) *invocation {
	return &invocation{
		m:       m,
		prog:    prog,
		fn:      fn,
		args:    args,
		private: private,
		depth:   depth,
		vals:    make([]value, len(fn.Expressions)),
		have:    make([]bool, len(fn.Expressions)),
	}
}

// reset prepares a reused entry point invocation for new arguments.
func (in *invocation) reset(args []value) {
	in.args = args
	clear(in.have)
	clear(in.private)
	in.ret = value{}
}

// run executes the function body. It reports whether the invocation was
// discarded.
func (in *invocation) run() (value, bool, error) {
	if err := in.initLocals(); err != nil {
		return value{}, false, err
	}
	f, err := in.block(in.fn.Body)
	if err != nil {
		return value{}, false, fmt.Errorf("%s: %w", in.fn.Name, err)
	}
	return in.ret, f == flowKill, nil
}

func (in *invocation) initLocals() error {
	if cap(in.locals) >= len(in.fn.LocalVars) {
		in.locals = in.locals[:len(in.fn.LocalVars)]
	} else {
		in.locals = make([]value, len(in.fn.LocalVars))
	}
	for i, lv := range in.fn.LocalVars {
		var (
			v   value
			err error
		)
		if lv.Init != nil {
			v, err = in.eval(*lv.Init)
			v = v.clone()
		} else {
			v, err = in.m.zero(lv.Type)
		}
		if err != nil {
			return fmt.Errorf("local %q: %w", lv.Name, err)
		}
		in.locals[i] = v
	}
	return nil
}

func (in *invocation) eval(h ir.ExpressionHandle) (value, error) {
	if int(h) >= len(in.fn.Expressions) {
		return value{}, fmt.Errorf("expression %d out of range", h)
	}
	if in.have[h] {
		return in.vals[h], nil
	}
	v, err := in.compute(h)
	if err != nil {
		return value{}, err
	}
	in.vals[h] = v
	in.have[h] = true
	return v, nil
}

func (in *invocation) evalAll(hs []ir.ExpressionHandle) ([]value, error) {
	out := make([]value, len(hs))
	for i, h := range hs {
		v, err := in.eval(h)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// kindOf reports the scalar kind of an expression's result.
func (in *invocation) kindOf(h ir.ExpressionHandle) ir.ScalarKind {
	if int(h) < len(in.fn.ExpressionTypes) {
		tr := in.fn.ExpressionTypes[h]
		if tr.Handle != nil {
			return in.m.scalarOf(*tr.Handle).Kind
		}
		if tr.Value != nil {
			return scalarOfInner(tr.Value).Kind
		}
	}
	if int(h) < len(in.fn.Expressions) {
		if lit, ok := in.fn.Expressions[h].Kind.(ir.Literal); ok {
			return literalKind(lit.Value)
		}
	}
	return ir.ScalarFloat
}

func (in *invocation) compute(h ir.ExpressionHandle) (value, error) {
	switch e := in.fn.Expressions[h].Kind.(type) {
	case ir.Literal:
		return scalar(literalValue(e.Value)), nil

	case ir.ExprConstant:
		if int(e.Constant) >= len(in.m.consts) {
			return value{}, fmt.Errorf("constant %d out of range", e.Constant)
		}
		return in.m.consts[e.Constant], nil

	case ir.ExprZeroValue:
		return in.m.zero(e.Type)

	case ir.ExprCompose:
		parts, err := in.evalAll(e.Components)
		if err != nil {
			return value{}, err
		}
		return in.m.compose(e.Type, parts)

	case ir.ExprAccess:
		base, err := in.eval(e.Base)
		if err != nil {
			return value{}, err
		}
		idx, err := in.eval(e.Index)
		if err != nil {
			return value{}, err
		}
		n, err := extent(base)
		if err != nil {
			return value{}, err
		}
		// Out of range dynamic indices are clamped, as robust buffer
		// access does on real hardware.
		i := int(idx.c[0])
		i = max(0, min(i, n-1))
		return index(base, i)

	case ir.ExprAccessIndex:
		base, err := in.eval(e.Base)
		if err != nil {
			return value{}, err
		}
		return index(base, int(e.Index))

	case ir.ExprSplat:
		v, err := in.eval(e.Value)
		if err != nil {
			return value{}, err
		}
		c := make([]float64, e.Size)
		for i := range c {
			c[i] = v.c[0]
		}
		return value{c: c}, nil

	case ir.ExprSwizzle:
		v, err := in.eval(e.Vector)
		if err != nil {
			return value{}, err
		}
		c := make([]float64, e.Size)
		for i := range c {
			j := int(e.Pattern[i])
			if j >= len(v.c) {
				return value{}, fmt.Errorf("swizzle component %d of vec%d", j, len(v.c))
			}
			c[i] = v.c[j]
		}
		return value{c: c}, nil

	case ir.ExprFunctionArgument:
		if int(e.Index) >= len(in.args) {
			return value{}, fmt.Errorf("argument %d out of range", e.Index)
		}
		return in.args[e.Index], nil

	case ir.ExprGlobalVariable:
		return in.global(e.Variable)

	case ir.ExprLocalVariable:
		if int(e.Variable) >= len(in.locals) {
			return value{}, fmt.Errorf("local %d out of range", e.Variable)
		}
		return value{p: &pointer{base: &in.locals[e.Variable]}}, nil

	case ir.ExprLoad:
		ptr, err := in.eval(e.Pointer)
		if err != nil {
			return value{}, err
		}
		if ptr.p == nil {
			return value{}, errNotAPointer
		}
		return ptr.p.load()

	case ir.ExprUnary:
		v, err := in.eval(e.Expr)
		if err != nil {
			return value{}, err
		}
		return unary(e.Op, in.kindOf(e.Expr), v)

	case ir.ExprBinary:
		l, err := in.eval(e.Left)
		if err != nil {
			return value{}, err
		}
		r, err := in.eval(e.Right)
		if err != nil {
			return value{}, err
		}
		return binary(e.Op, in.kindOf(e.Left), l, r)

	case ir.ExprSelect:
		cond, err := in.eval(e.Condition)
		if err != nil {
			return value{}, err
		}
		acc, err := in.eval(e.Accept)
		if err != nil {
			return value{}, err
		}
		rej, err := in.eval(e.Reject)
		if err != nil {
			return value{}, err
		}
		if len(cond.c) == 1 {
			if cond.truthy() {
				return acc, nil
			}
			return rej, nil
		}
		c := make([]float64, len(cond.c))
		for i := range c {
			if cond.c[i] != 0 {
				c[i] = acc.c[i]
			} else {
				c[i] = rej.c[i]
			}
		}
		return value{c: c}, nil

	case ir.ExprRelational:
		v, err := in.eval(e.Argument)
		if err != nil {
			return value{}, err
		}
		return relational(e.Fun, v)

	case ir.ExprMath:
		args := []ir.ExpressionHandle{e.Arg}
		for _, a := range []*ir.ExpressionHandle{e.Arg1, e.Arg2, e.Arg3} {
			if a != nil {
				args = append(args, *a)
			}
		}
		vals, err := in.evalAll(args)
		if err != nil {
			return value{}, err
		}
		return mathFunc(e.Fun, vals)

	case ir.ExprAs:
		v, err := in.eval(e.Expr)
		if err != nil {
			return value{}, err
		}
		return convert(v, in.kindOf(e.Expr), e.Kind, e.Convert != nil), nil

	case ir.ExprCallResult:
		return value{}, fmt.Errorf("result of function %d read before the call", e.Function)

	default:
		return value{}, fmt.Errorf("%T is not supported", e)
	}
}

func (in *invocation) global(h ir.GlobalVariableHandle) (value, error) {
	if int(h) >= len(in.m.ir.GlobalVariables) {
		return value{}, fmt.Errorf("global %d out of range", h)
	}
	gv := in.m.ir.GlobalVariables[h]
	switch gv.Space {
	case ir.SpaceUniform:
		if in.prog == nil {
			return value{}, fmt.Errorf("uniform %q read outside a linked program", gv.Name)
		}
		cell := in.prog.storage[gv.Name]
		if cell == nil {
			return value{}, fmt.Errorf("uniform %q is not bound", gv.Name)
		}
		return value{p: &pointer{base: cell}}, nil
	case ir.SpacePrivate:
		if in.private == nil {
			in.private = make(map[ir.GlobalVariableHandle]*value)
		}
		cell, ok := in.private[h]
		if !ok {
			v := in.m.globals[h].clone()
			cell = &v
			in.private[h] = cell
		}
		return value{p: &pointer{base: cell}}, nil
	default:
		return value{}, fmt.Errorf("global %q: address space %d is not supported", gv.Name, gv.Space)
	}
}

func (in *invocation) block(b []ir.Statement) (flow, error) {
	for _, st := range b {
		f, err := in.stmt(st)
		if err != nil || f != flowNext {
			return f, err
		}
	}
	return flowNext, nil
}

func (in *invocation) stmt(st ir.Statement) (flow, error) {
	switch s := st.Kind.(type) {
	case ir.StmtEmit:
		for h := s.Range.Start; h < s.Range.End; h++ {
			in.have[h] = false
		}
		for h := s.Range.Start; h < s.Range.End; h++ {
			if _, err := in.eval(h); err != nil {
				return flowNext, err
			}
		}
		return flowNext, nil

	case ir.StmtBlock:
		return in.block(s.Block)

	case ir.StmtIf:
		cond, err := in.eval(s.Condition)
		if err != nil {
			return flowNext, err
		}
		if cond.truthy() {
			return in.block(s.Accept)
		}
		return in.block(s.Reject)

	case ir.StmtSwitch:
		return in.switchStmt(s)

	case ir.StmtLoop:
		return in.loop(s)

	case ir.StmtBreak:
		return flowBreak, nil

	case ir.StmtContinue:
		return flowContinue, nil

	case ir.StmtReturn:
		if s.Value != nil {
			v, err := in.eval(*s.Value)
			if err != nil {
				return flowNext, err
			}
			in.ret = v
		}
		return flowReturn, nil

	case ir.StmtKill:
		return flowKill, nil

	case ir.StmtStore:
		ptr, err := in.eval(s.Pointer)
		if err != nil {
			return flowNext, err
		}
		v, err := in.eval(s.Value)
		if err != nil {
			return flowNext, err
		}
		if ptr.p == nil {
			return flowNext, errNotAPointer
		}
		return flowNext, ptr.p.store(v)

	case ir.StmtCall:
		return in.call(s)

	default:
		return flowNext, fmt.Errorf("%T is not supported", s)
	}
}

func (in *invocation) switchStmt(s ir.StmtSwitch) (flow, error) {
	sel, err := in.eval(s.Selector)
	if err != nil {
		return flowNext, err
	}
	x := int64(sel.c[0])

	start := -1
	for i, c := range s.Cases {
		switch v := c.Value.(type) {
		case ir.SwitchValueI32:
			if int64(v) == x {
				start = i
			}
		case ir.SwitchValueU32:
			if int64(v) == x {
				start = i
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		for i, c := range s.Cases {
			if _, ok := c.Value.(ir.SwitchValueDefault); ok {
				start = i
				break
			}
		}
	}
	if start < 0 {
		return flowNext, nil
	}

	for i := start; i < len(s.Cases); i++ {
		f, err := in.block(s.Cases[i].Body)
		if err != nil {
			return flowNext, err
		}
		switch f {
		case flowBreak:
			return flowNext, nil
		case flowNext:
			if !s.Cases[i].FallThrough {
				return flowNext, nil
			}
		default:
			return f, nil
		}
	}
	return flowNext, nil
}

func (in *invocation) loop(s ir.StmtLoop) (flow, error) {
	for iter := 0; ; iter++ {
		if iter >= maxLoopIterations {
			return flowNext, fmt.Errorf("loop exceeded %d iterations", maxLoopIterations)
		}
		f, err := in.block(s.Body)
		if err != nil {
			return flowNext, err
		}
		switch f {
		case flowBreak:
			return flowNext, nil
		case flowReturn, flowKill:
			return f, nil
		}
		f, err = in.block(s.Continuing)
		if err != nil {
			return flowNext, err
		}
		if f == flowReturn || f == flowKill {
			return f, nil
		}
		if s.BreakIf != nil {
			cond, err := in.eval(*s.BreakIf)
			if err != nil {
				return flowNext, err
			}
			if cond.truthy() {
				return flowNext, nil
			}
		}
	}
}

func (in *invocation) call(s ir.StmtCall) (flow, error) {
	if in.depth+1 >= maxCallDepth {
		return flowNext, fmt.Errorf("call depth exceeds %d", maxCallDepth)
	}
	if int(s.Function) >= len(in.m.ir.Functions) {
		return flowNext, fmt.Errorf("function %d out of range", s.Function)
	}
	args, err := in.evalAll(s.Arguments)
	if err != nil {
		return flowNext, err
	}
	if in.private == nil {
		in.private = make(map[ir.GlobalVariableHandle]*value)
	}
	callee := newInvocation(in.m, in.prog, &in.m.ir.Functions[s.Function], args, in.private, in.depth+1)
	ret, killed, err := callee.run()
	if err != nil {
		return flowNext, err
	}
	if killed {
		return flowKill, nil
	}
	if s.Result != nil {
		in.vals[*s.Result] = ret
		in.have[*s.Result] = true
	}
	return flowNext, nil
}

// extent returns the number of members or components v (or the cell it
// points to) holds.
func extent(v value) (int, error) {
	if v.p != nil {
		cell, comp, err := v.p.resolve()
		if err != nil {
			return 0, err
		}
		if comp >= 0 {
			return 1, nil
		}
		v = *cell
	}
	if v.f != nil {
		return len(v.f), nil
	}
	return len(v.c), nil
}

func literalValue(lv ir.LiteralValue) float64 {
	switch v := lv.(type) {
	case ir.LiteralF32:
		return float64(v)
	case ir.LiteralF64:
		return float64(v)
	case ir.LiteralF16:
		return float64(v)
	case ir.LiteralU32:
		return float64(v)
	case ir.LiteralI32:
		return float64(v)
	case ir.LiteralU64:
		return float64(v)
	case ir.LiteralI64:
		return float64(v)
	case ir.LiteralBool:
		return boolf(bool(v))
	case ir.LiteralAbstractInt:
		return float64(v)
	case ir.LiteralAbstractFloat:
		return float64(v)
	default:
		return math.NaN()
	}
}

func literalKind(lv ir.LiteralValue) ir.ScalarKind {
	switch lv.(type) {
	case ir.LiteralU32, ir.LiteralU64:
		return ir.ScalarUint
	case ir.LiteralI32, ir.LiteralI64, ir.LiteralAbstractInt:
		return ir.ScalarSint
	case ir.LiteralBool:
		return ir.ScalarBool
	default:
		return ir.ScalarFloat
	}
}
