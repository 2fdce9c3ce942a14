// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

func (s Stage) irStage() ir.ShaderStage {
	if s == Fragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

// CompileError is returned by Compile and Link. Log holds the
// human-readable diagnostics, the equivalent of a GL info log.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shade: %s: %s", e.Stage, e.Log)
}

// Module is one compiled shader stage.
type Module struct {
	stage  Stage
	ir     *ir.Module
	entry  *ir.EntryPoint
	consts []value

	// globals holds the initial value of every private global.
	globals []value
}

// Stage returns the stage the module was compiled for.
func (m *Module) Stage() Stage {
	return m.stage
}

// EntryPoint returns the name of the selected entry point.
func (m *Module) EntryPoint() string {
	return m.entry.Name
}

// Compile parses, lowers and validates WGSL source and selects the first
// entry point of the given stage. Every failure is reported as a
// *CompileError.
func Compile(source string, stage Stage) (*Module, error) {
	fail := func(format string, args ...any) (*Module, error) {
		return nil, &CompileError{Stage: stage, Log: fmt.Sprintf(format, args...)}
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return fail("%v", err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fail("%v", err)
	}
	verrs, err := naga.Validate(mod)
	if err != nil {
		return fail("validation: %v", err)
	}
	if len(verrs) > 0 {
		lines := make([]string, len(verrs))
		for i := range verrs {
			lines[i] = verrs[i].Error()
		}
		return fail("%s", strings.Join(lines, "\n"))
	}

	var entry *ir.EntryPoint
	for i := range mod.EntryPoints {
		if mod.EntryPoints[i].Stage == stage.irStage() {
			entry = &mod.EntryPoints[i]
			break
		}
	}
	if entry == nil {
		return fail("no @%s entry point", stage)
	}

	m := &Module{stage: stage, ir: mod, entry: entry}
	if err := m.checkSupported(); err != nil {
		return fail("%v", err)
	}
	if err := m.evalConstants(); err != nil {
		return fail("%v", err)
	}
	return m, nil
}

// evalConstants folds every module-scope constant and private global
// initializer once so invocations can read them without re-evaluating
// global expressions.
func (m *Module) evalConstants() error {
	m.consts = make([]value, len(m.ir.Constants))
	global := &ir.Function{Name: "<module>", Expressions: m.ir.GlobalExpressions}
	in := newInvocation(m, nil, global, nil, nil, 0)
	for i, c := range m.ir.Constants {
		if int(c.Init) < len(m.ir.GlobalExpressions) {
			v, err := in.eval(c.Init)
			if err != nil {
				return fmt.Errorf("constant %q: %w", c.Name, err)
			}
			m.consts[i] = v
			continue
		}
		v, err := m.constantValue(c.Type, c.Value)
		if err != nil {
			return fmt.Errorf("constant %q: %w", c.Name, err)
		}
		m.consts[i] = v
	}

	m.globals = make([]value, len(m.ir.GlobalVariables))
	for i, gv := range m.ir.GlobalVariables {
		if gv.Space != ir.SpacePrivate {
			continue
		}
		var (
			v   value
			err error
		)
		switch {
		case gv.InitExpr != nil:
			v, err = in.eval(*gv.InitExpr)
		case gv.Init != nil && int(*gv.Init) < len(m.consts):
			v = m.consts[*gv.Init]
		default:
			v, err = m.zero(gv.Type)
		}
		if err != nil {
			return fmt.Errorf("global %q: %w", gv.Name, err)
		}
		m.globals[i] = v
	}
	return nil
}

func (m *Module) constantValue(th ir.TypeHandle, cv ir.ConstantValue) (value, error) {
	switch v := cv.(type) {
	case ir.ScalarValue:
		return scalar(scalarBits(v, m.scalarOf(th).Width)), nil
	case ir.ZeroConstantValue:
		return m.zero(th)
	case ir.CompositeValue:
		parts := make([]value, len(v.Components))
		for i, h := range v.Components {
			if int(h) >= len(m.ir.Constants) {
				return value{}, fmt.Errorf("constant component %d out of range", h)
			}
			c := m.ir.Constants[h]
			pv, err := m.constantValue(c.Type, c.Value)
			if err != nil {
				return value{}, err
			}
			parts[i] = pv
		}
		return m.compose(th, parts)
	default:
		return value{}, fmt.Errorf("unsupported constant value %T", cv)
	}
}
