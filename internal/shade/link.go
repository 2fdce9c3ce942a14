// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/naga/ir"
)

// LinkError is returned by Link. Log reads like a GL program info log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shade: link: " + e.Log
}

// Attribute is a vertex stage input bound with @location.
type Attribute struct {
	Name       string
	Location   uint32
	Components int
}

// Varying is a value interpolated from the vertex to the fragment stage.
// Offset indexes the flattened varying slice shared by VertexOutput and
// FragmentInput.
type Varying struct {
	Name       string
	Location   uint32
	Offset     int
	Components int
	Flat       bool
}

// Uniform is one settable uniform. Plain var<uniform> globals appear under
// their own name, members of a uniform struct as "global.member".
type Uniform struct {
	Name       string
	Components int
	// Columns is the column count of a matrix uniform, else 0. Matrix
	// data is column-major.
	Columns int
	Integer bool

	ptr *pointer
}

// slot locates one bound entry point input or output: either an argument
// (or the result) itself, or a member of a struct-typed one.
type slot struct {
	name    string
	arg     int
	member  int
	binding ir.Binding
	comps   int
	kind    ir.ScalarKind
}

// Program is a linked vertex and fragment module pair. It is not safe for
// concurrent use.
type Program struct {
	vs, fs *Module

	storage  map[string]*value
	uniforms []Uniform
	byName   map[string]int

	attribs  []Attribute
	varyings []Varying
	stride   int

	vsIn, vsOut []slot
	fsIn, fsOut []slot

	vsInv, fsInv *invocation
}

// Link matches the vertex outputs of vs against the fragment inputs of fs
// by @location and collects the uniforms of both stages.
func Link(vs, fs *Module) (*Program, error) {
	fail := func(format string, args ...any) (*Program, error) {
		return nil, &LinkError{Log: fmt.Sprintf(format, args...)}
	}
	if vs == nil || vs.stage != Vertex {
		return fail("missing vertex shader")
	}
	if fs == nil || fs.stage != Fragment {
		return fail("missing fragment shader")
	}

	p := &Program{
		vs:      vs,
		fs:      fs,
		storage: make(map[string]*value),
		byName:  make(map[string]int),
	}
	var err error
	if p.vsIn, err = vs.inputs(); err != nil {
		return fail("vertex shader: %v", err)
	}
	if p.vsOut, err = vs.outputs(); err != nil {
		return fail("vertex shader: %v", err)
	}
	if p.fsIn, err = fs.inputs(); err != nil {
		return fail("fragment shader: %v", err)
	}
	if p.fsOut, err = fs.outputs(); err != nil {
		return fail("fragment shader: %v", err)
	}

	for _, s := range p.vsIn {
		switch b := s.binding.(type) {
		case ir.LocationBinding:
			p.attribs = append(p.attribs, Attribute{Name: s.name, Location: b.Location, Components: s.comps})
		case ir.BuiltinBinding:
			if b.Builtin != ir.BuiltinVertexIndex && b.Builtin != ir.BuiltinInstanceIndex {
				return fail("vertex shader: builtin input %d is not supported", b.Builtin)
			}
		}
	}
	slices.SortFunc(p.attribs, func(a, b Attribute) int { return cmp.Compare(a.Location, b.Location) })

	if findBuiltin(p.vsOut, ir.BuiltinPosition) == nil {
		return fail("vertex shader does not write @builtin(position)")
	}
	if findLocation(p.fsOut, 0) == nil {
		return fail("fragment shader does not write @location(0)")
	}

	for _, s := range p.fsIn {
		switch b := s.binding.(type) {
		case ir.LocationBinding:
			out := findLocation(p.vsOut, b.Location)
			if out == nil {
				return fail("fragment input %q at @location(%d) is not written by the vertex shader", s.name, b.Location)
			}
			if out.comps != s.comps {
				return fail("@location(%d) has %d components in the vertex shader but %d in the fragment shader",
					b.Location, out.comps, s.comps)
			}
			flat := isInt(s.kind) || s.kind == ir.ScalarBool ||
				(b.Interpolation != nil && b.Interpolation.Kind == ir.InterpolationFlat)
			p.varyings = append(p.varyings, Varying{
				Name:       s.name,
				Location:   b.Location,
				Offset:     p.stride,
				Components: s.comps,
				Flat:       flat,
			})
			p.stride += s.comps
		case ir.BuiltinBinding:
			switch b.Builtin {
			case ir.BuiltinPosition, ir.BuiltinFrontFacing, ir.BuiltinSampleIndex:
			default:
				return fail("fragment shader: builtin input %d is not supported", b.Builtin)
			}
		}
	}

	if err := p.collectUniforms(); err != nil {
		return fail("%v", err)
	}
	return p, nil
}

func findBuiltin(slots []slot, bv ir.BuiltinValue) *slot {
	for i := range slots {
		if b, ok := slots[i].binding.(ir.BuiltinBinding); ok && b.Builtin == bv {
			return &slots[i]
		}
	}
	return nil
}

func findLocation(slots []slot, loc uint32) *slot {
	for i := range slots {
		if b, ok := slots[i].binding.(ir.LocationBinding); ok && b.Location == loc {
			return &slots[i]
		}
	}
	return nil
}

func (m *Module) inputs() ([]slot, error) {
	var slots []slot
	for i, a := range m.entry.Function.Arguments {
		s, err := m.bound(a.Name, i, a.Type, a.Binding)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s...)
	}
	return slots, nil
}

func (m *Module) outputs() ([]slot, error) {
	r := m.entry.Function.Result
	if r == nil {
		return nil, nil
	}
	return m.bound("", 0, r.Type, r.Binding)
}

func (m *Module) bound(name string, arg int, th ir.TypeHandle, b *ir.Binding) ([]slot, error) {
	if b != nil {
		return []slot{{name: name, arg: arg, member: -1, binding: *b, comps: m.components(th), kind: m.scalarOf(th).Kind}}, nil
	}
	t, err := m.inner(th)
	if err != nil {
		return nil, err
	}
	st, ok := t.(ir.StructType)
	if !ok {
		return nil, fmt.Errorf("entry point %s: %q has no binding", m.entry.Name, name)
	}
	slots := make([]slot, 0, len(st.Members))
	for j, mem := range st.Members {
		if mem.Binding == nil {
			return nil, fmt.Errorf("entry point %s: member %q has no binding", m.entry.Name, mem.Name)
		}
		slots = append(slots, slot{
			name:    mem.Name,
			arg:     arg,
			member:  j,
			binding: *mem.Binding,
			comps:   m.components(mem.Type),
			kind:    m.scalarOf(mem.Type).Kind,
		})
	}
	return slots, nil
}

func (p *Program) collectUniforms() error {
	sigs := make(map[string]string)
	for _, m := range []*Module{p.vs, p.fs} {
		for _, gv := range m.ir.GlobalVariables {
			if gv.Space != ir.SpaceUniform {
				continue
			}
			sig := m.typeSig(gv.Type)
			if prev, ok := sigs[gv.Name]; ok {
				if prev != sig {
					return fmt.Errorf("uniform %q is declared as %s and %s", gv.Name, prev, sig)
				}
				continue
			}
			sigs[gv.Name] = sig

			v, err := m.zero(gv.Type)
			if err != nil {
				return fmt.Errorf("uniform %q: %w", gv.Name, err)
			}
			cell := &v
			p.storage[gv.Name] = cell
			root := &pointer{base: cell}

			t, _ := m.inner(gv.Type)
			if st, ok := t.(ir.StructType); ok {
				for j, mem := range st.Members {
					u, err := m.uniform(gv.Name+"."+mem.Name, mem.Type, root.child(j))
					if err != nil {
						return err
					}
					p.uniforms = append(p.uniforms, u)
				}
				continue
			}
			u, err := m.uniform(gv.Name, gv.Type, root)
			if err != nil {
				return err
			}
			p.uniforms = append(p.uniforms, u)
		}
	}
	slices.SortFunc(p.uniforms, func(a, b Uniform) int { return strings.Compare(a.Name, b.Name) })
	for i, u := range p.uniforms {
		p.byName[u.Name] = i
	}
	return nil
}

func (m *Module) uniform(name string, th ir.TypeHandle, ptr *pointer) (Uniform, error) {
	t, err := m.inner(th)
	if err != nil {
		return Uniform{}, err
	}
	u := Uniform{Name: name, ptr: ptr, Integer: isInt(scalarOfInner(t).Kind)}
	switch t := t.(type) {
	case ir.ScalarType:
		u.Components = 1
	case ir.VectorType:
		u.Components = int(t.Size)
	case ir.MatrixType:
		u.Columns = int(t.Columns)
		u.Components = int(t.Columns) * int(t.Rows)
	default:
		return Uniform{}, fmt.Errorf("uniform %q: %T is not supported", name, t)
	}
	return u, nil
}

// typeSig renders a type structurally so that identical declarations in
// two modules compare equal.
func (m *Module) typeSig(th ir.TypeHandle) string {
	t, err := m.inner(th)
	if err != nil {
		return "?"
	}
	switch t := t.(type) {
	case ir.ScalarType:
		return fmt.Sprintf("s%d:%d", t.Kind, t.Width)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<s%d:%d>", t.Size, t.Scalar.Kind, t.Scalar.Width)
	case ir.MatrixType:
		return fmt.Sprintf("mat%dx%d<s%d:%d>", t.Columns, t.Rows, t.Scalar.Kind, t.Scalar.Width)
	case ir.ArrayType:
		n := uint32(0)
		if t.Size.Constant != nil {
			n = *t.Size.Constant
		}
		return fmt.Sprintf("array<%s,%d>", m.typeSig(t.Base), n)
	case ir.StructType:
		parts := make([]string, len(t.Members))
		for i, mem := range t.Members {
			parts[i] = mem.Name + ":" + m.typeSig(mem.Type)
		}
		return "struct{" + strings.Join(parts, ",") + "}"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// Attributes returns the vertex inputs ordered by location.
func (p *Program) Attributes() []Attribute {
	return p.attribs
}

// Varyings returns the interpolated values in slice order.
func (p *Program) Varyings() []Varying {
	return p.varyings
}

// VaryingComponents is the length of the flattened varying slice.
func (p *Program) VaryingComponents() int {
	return p.stride
}

// Uniforms returns the settable uniforms sorted by name.
func (p *Program) Uniforms() []Uniform {
	return p.uniforms
}

// UniformIndex looks a uniform up by name.
func (p *Program) UniformIndex(name string) (int, bool) {
	i, ok := p.byName[name]
	return i, ok
}

// SetUniform stores data into uniform i. The number of values must equal
// the uniform's component count.
func (p *Program) SetUniform(i int, data []float64) error {
	if i < 0 || i >= len(p.uniforms) {
		return fmt.Errorf("shade: uniform index %d out of range", i)
	}
	u := p.uniforms[i]
	if len(data) != u.Components {
		return fmt.Errorf("shade: uniform %q has %d components, got %d", u.Name, u.Components, len(data))
	}
	c := append([]float64(nil), data...)
	if u.Integer {
		for j := range c {
			c[j] = float64(int64(c[j]))
		}
	}
	if u.Columns == 0 {
		return u.ptr.store(value{c: c})
	}
	rows := u.Components / u.Columns
	cols := make([]value, u.Columns)
	for j := range cols {
		cols[j] = value{c: c[j*rows : (j+1)*rows]}
	}
	return u.ptr.store(value{f: cols})
}

// Uniform returns the current value of uniform i, flattened column-major.
func (p *Program) Uniform(i int) ([]float64, error) {
	if i < 0 || i >= len(p.uniforms) {
		return nil, fmt.Errorf("shade: uniform index %d out of range", i)
	}
	v, err := p.uniforms[i].ptr.load()
	if err != nil {
		return nil, err
	}
	if v.f == nil {
		return v.c, nil
	}
	var out []float64
	for _, col := range v.f {
		out = append(out, col.c...)
	}
	return out, nil
}
