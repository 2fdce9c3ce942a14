// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"fmt"

	"github.com/gogpu/naga/ir"
)

// checkSupported rejects modules that use features the interpreter cannot
// execute, so that they fail at compile time instead of on the first draw.
func (m *Module) checkSupported() error {
	for _, gv := range m.ir.GlobalVariables {
		switch gv.Space {
		case ir.SpaceUniform, ir.SpacePrivate:
		case ir.SpaceHandle:
			return fmt.Errorf("global %q: textures and samplers are not supported", gv.Name)
		default:
			return fmt.Errorf("global %q: only uniform and private globals are supported", gv.Name)
		}
	}

	fns := []*ir.Function{&m.entry.Function}
	for i := range m.ir.Functions {
		fns = append(fns, &m.ir.Functions[i])
	}
	for _, fn := range fns {
		for h, e := range fn.Expressions {
			if err := checkExpression(e.Kind); err != nil {
				return fmt.Errorf("%s: expression %d: %w", fn.Name, h, err)
			}
		}
		if err := checkBlock(fn.Body); err != nil {
			return fmt.Errorf("%s: %w", fn.Name, err)
		}
	}
	return nil
}

func checkExpression(k ir.ExpressionKind) error {
	switch e := k.(type) {
	case ir.Literal, ir.ExprConstant, ir.ExprZeroValue, ir.ExprCompose,
		ir.ExprAccess, ir.ExprAccessIndex, ir.ExprSplat, ir.ExprSwizzle,
		ir.ExprFunctionArgument, ir.ExprGlobalVariable, ir.ExprLocalVariable,
		ir.ExprLoad, ir.ExprUnary, ir.ExprBinary, ir.ExprSelect,
		ir.ExprRelational, ir.ExprAs, ir.ExprCallResult:
		return nil
	case ir.ExprMath:
		if !mathSupported(e.Fun) {
			return fmt.Errorf("math function %d is not supported", e.Fun)
		}
		return nil
	case ir.ExprOverride:
		return fmt.Errorf("pipeline overrides are not supported")
	case ir.ExprDerivative:
		return fmt.Errorf("derivatives are not supported")
	default:
		return fmt.Errorf("%T is not supported", e)
	}
}

func checkBlock(b []ir.Statement) error {
	for _, st := range b {
		switch s := st.Kind.(type) {
		case ir.StmtEmit, ir.StmtBreak, ir.StmtContinue, ir.StmtReturn,
			ir.StmtKill, ir.StmtStore, ir.StmtCall:
		case ir.StmtBlock:
			if err := checkBlock(s.Block); err != nil {
				return err
			}
		case ir.StmtIf:
			if err := checkBlock(s.Accept); err != nil {
				return err
			}
			if err := checkBlock(s.Reject); err != nil {
				return err
			}
		case ir.StmtSwitch:
			for _, c := range s.Cases {
				if err := checkBlock(c.Body); err != nil {
					return err
				}
			}
		case ir.StmtLoop:
			if err := checkBlock(s.Body); err != nil {
				return err
			}
			if err := checkBlock(s.Continuing); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%T is not supported", s)
		}
	}
	return nil
}
