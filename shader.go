// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"errors"
	"fmt"

	"github.com/gogpu/glex/internal/shade"
)

// Shader is a shader object holding WGSL source for one stage.
type Shader struct {
	typ      ShaderType
	source   string
	module   *shade.Module
	compiled bool
	infoLog  string
	deleted  bool
}

// Type returns the stage the shader was created for.
func (s *Shader) Type() ShaderType {
	return s.typ
}

// Program is a program object: a vertex and a fragment shader linked
// together.
type Program struct {
	vs, fs  *Shader
	linked  *shade.Program
	infoLog string
	deleted bool
}

// UniformLocation identifies one uniform of one linked program.
type UniformLocation struct {
	program *Program
	linked  *shade.Program
	index   int
	name    string
}

// Name returns the uniform name the location was looked up with.
func (l *UniformLocation) Name() string {
	return l.name
}

func (t ShaderType) stage() (shade.Stage, bool) {
	switch t {
	case VertexShader:
		return shade.Vertex, true
	case FragmentShader:
		return shade.Fragment, true
	default:
		return 0, false
	}
}

// CreateShader creates an empty shader object, or returns nil for an
// unknown type.
func (c *RenderingContext) CreateShader(typ ShaderType) *Shader {
	if _, ok := typ.stage(); !ok {
		c.fail(InvalidEnum, "CreateShader", fmt.Errorf("shader type %s: %w", typ, ErrUnsupported))
		return nil
	}
	return &Shader{typ: typ}
}

func (c *RenderingContext) liveShader(op string, s *Shader) bool {
	if s == nil {
		c.fail(InvalidValue, op, errors.New("nil shader"))
		return false
	}
	if s.deleted {
		c.fail(InvalidValue, op, ErrDeleted)
		return false
	}
	return true
}

// ShaderSource replaces the source of s.
func (c *RenderingContext) ShaderSource(s *Shader, source string) {
	if !c.liveShader("ShaderSource", s) {
		return
	}
	s.source = source
}

// CompileShader compiles the current source of s. The outcome is
// reported by ShaderCompiled and ShaderInfoLog.
func (c *RenderingContext) CompileShader(s *Shader) {
	if !c.liveShader("CompileShader", s) {
		return
	}
	stage, _ := s.typ.stage()
	m, err := shade.Compile(s.source, stage)
	if err != nil {
		s.module = nil
		s.compiled = false
		var ce *shade.CompileError
		if errors.As(err, &ce) {
			s.infoLog = ce.Log
		} else {
			s.infoLog = err.Error()
		}
		return
	}
	s.module = m
	s.compiled = true
	s.infoLog = ""
}

// ShaderCompiled reports the status of the last compilation of s.
func (c *RenderingContext) ShaderCompiled(s *Shader) bool {
	if !c.liveShader("ShaderCompiled", s) {
		return false
	}
	return s.compiled
}

// ShaderInfoLog returns the diagnostics of the last compilation of s.
func (c *RenderingContext) ShaderInfoLog(s *Shader) string {
	if !c.liveShader("ShaderInfoLog", s) {
		return ""
	}
	return s.infoLog
}

// DeleteShader deletes s. Programs already linked with it keep working.
func (c *RenderingContext) DeleteShader(s *Shader) {
	if s == nil || s.deleted {
		return
	}
	s.deleted = true
	s.module = nil
}

// IsShader reports whether s is a live shader object.
func (c *RenderingContext) IsShader(s *Shader) bool {
	return s != nil && !s.deleted
}

// CreateProgram creates an empty program object.
func (c *RenderingContext) CreateProgram() *Program {
	return &Program{}
}

func (c *RenderingContext) liveProgram(op string, p *Program) bool {
	if p == nil {
		c.fail(InvalidValue, op, errors.New("nil program"))
		return false
	}
	if p.deleted {
		c.fail(InvalidValue, op, ErrDeleted)
		return false
	}
	return true
}

// AttachShader attaches s to p. A program holds at most one shader per
// stage.
func (c *RenderingContext) AttachShader(p *Program, s *Shader) {
	if !c.liveProgram("AttachShader", p) || !c.liveShader("AttachShader", s) {
		return
	}
	slot := &p.vs
	if s.typ == FragmentShader {
		slot = &p.fs
	}
	if *slot != nil {
		c.fail(InvalidOperation, "AttachShader", fmt.Errorf("a %s is already attached", s.typ))
		return
	}
	*slot = s
}

// DetachShader detaches s from p.
func (c *RenderingContext) DetachShader(p *Program, s *Shader) {
	if !c.liveProgram("DetachShader", p) || s == nil {
		return
	}
	switch s {
	case p.vs:
		p.vs = nil
	case p.fs:
		p.fs = nil
	default:
		c.fail(InvalidOperation, "DetachShader", errors.New("shader is not attached"))
	}
}

// LinkProgram links the attached shaders. The outcome is reported by
// ProgramLinked and ProgramInfoLog.
func (c *RenderingContext) LinkProgram(p *Program) {
	if !c.liveProgram("LinkProgram", p) {
		return
	}
	p.linked = nil
	switch {
	case p.vs == nil || p.fs == nil:
		p.infoLog = "a vertex and a fragment shader must be attached"
		return
	case !p.vs.compiled || p.vs.module == nil:
		p.infoLog = "vertex shader is not compiled"
		return
	case !p.fs.compiled || p.fs.module == nil:
		p.infoLog = "fragment shader is not compiled"
		return
	}

	linked, err := shade.Link(p.vs.module, p.fs.module)
	if err != nil {
		var le *shade.LinkError
		if errors.As(err, &le) {
			p.infoLog = le.Log
		} else {
			p.infoLog = err.Error()
		}
		return
	}
	p.linked = linked
	p.infoLog = ""
}

// ProgramLinked reports the status of the last link of p.
func (c *RenderingContext) ProgramLinked(p *Program) bool {
	if !c.liveProgram("ProgramLinked", p) {
		return false
	}
	return p.linked != nil
}

// ProgramInfoLog returns the diagnostics of the last link of p.
func (c *RenderingContext) ProgramInfoLog(p *Program) string {
	if !c.liveProgram("ProgramInfoLog", p) {
		return ""
	}
	return p.infoLog
}

// DeleteProgram deletes p. If p is in use it stays current until another
// program is installed.
func (c *RenderingContext) DeleteProgram(p *Program) {
	if p == nil || p.deleted {
		return
	}
	p.deleted = true
}

// IsProgram reports whether p is a live program object.
func (c *RenderingContext) IsProgram(p *Program) bool {
	return p != nil && !p.deleted
}

// UseProgram installs p for subsequent draws and uniform updates. nil
// uninstalls the current program.
func (c *RenderingContext) UseProgram(p *Program) {
	if p == nil {
		c.program = nil
		return
	}
	if !c.liveProgram("UseProgram", p) {
		return
	}
	if p.linked == nil {
		c.fail(InvalidOperation, "UseProgram", ErrNotLinked)
		return
	}
	c.program = p
}

// CurrentProgram returns the installed program, or nil.
func (c *RenderingContext) CurrentProgram() *Program {
	return c.program
}

// GetAttribLocation returns the @location of the named vertex input, or -1.
func (c *RenderingContext) GetAttribLocation(p *Program, name string) int {
	if !c.liveProgram("GetAttribLocation", p) {
		return -1
	}
	if p.linked == nil {
		c.fail(InvalidOperation, "GetAttribLocation", ErrNotLinked)
		return -1
	}
	for _, a := range p.linked.Attributes() {
		if a.Name == name {
			return int(a.Location)
		}
	}
	return -1
}

// GetUniformLocation returns the location of a uniform of a linked
// program, or nil if there is none. name is the name of a var<uniform>
// global, or "global.member" for a member of a uniform struct.
func (c *RenderingContext) GetUniformLocation(p *Program, name string) *UniformLocation {
	if !c.liveProgram("GetUniformLocation", p) {
		return nil
	}
	if p.linked == nil {
		c.fail(InvalidOperation, "GetUniformLocation", ErrNotLinked)
		return nil
	}
	i, ok := p.linked.UniformIndex(name)
	if !ok {
		return nil
	}
	return &UniformLocation{program: p, linked: p.linked, index: i, name: name}
}

func (c *RenderingContext) uniform(op string, loc *UniformLocation, data ...float64) {
	if loc == nil {
		return
	}
	if c.program == nil {
		c.fail(InvalidOperation, op, ErrNoProgram)
		return
	}
	if loc.program != c.program || loc.linked != c.program.linked {
		c.fail(InvalidOperation, op, ErrWrongProgram)
		return
	}
	if err := loc.linked.SetUniform(loc.index, data); err != nil {
		c.fail(InvalidOperation, op, err)
	}
}

// Uniform1f sets a scalar uniform of the current program.
func (c *RenderingContext) Uniform1f(loc *UniformLocation, x float64) {
	c.uniform("Uniform1f", loc, x)
}

// Uniform2f sets a vec2 uniform of the current program.
func (c *RenderingContext) Uniform2f(loc *UniformLocation, x, y float64) {
	c.uniform("Uniform2f", loc, x, y)
}

// Uniform3f sets a vec3 uniform of the current program.
func (c *RenderingContext) Uniform3f(loc *UniformLocation, x, y, z float64) {
	c.uniform("Uniform3f", loc, x, y, z)
}

// Uniform4f sets a vec4 uniform of the current program.
func (c *RenderingContext) Uniform4f(loc *UniformLocation, x, y, z, w float64) {
	c.uniform("Uniform4f", loc, x, y, z, w)
}

// Uniform1i sets an integer scalar uniform of the current program.
func (c *RenderingContext) Uniform1i(loc *UniformLocation, x int) {
	c.uniform("Uniform1i", loc, float64(x))
}

// UniformFv sets any float uniform from a slice; the length must match the
// uniform's component count.
func (c *RenderingContext) UniformFv(loc *UniformLocation, v []float32) {
	data := make([]float64, len(v))
	for i, x := range v {
		data[i] = float64(x)
	}
	c.uniform("UniformFv", loc, data...)
}

// UniformMatrixFv sets a matrix uniform from column-major data. WebGL2
// forbids transpose for uniformMatrix*fv.
func (c *RenderingContext) UniformMatrixFv(loc *UniformLocation, transpose bool, v []float32) {
	if transpose {
		c.fail(InvalidValue, "UniformMatrixFv", errors.New("transpose must be false"))
		return
	}
	c.UniformFv(loc, v)
}

// GetUniform returns the current value of a uniform, flattened
// column-major.
func (c *RenderingContext) GetUniform(p *Program, loc *UniformLocation) []float64 {
	if !c.liveProgram("GetUniform", p) || loc == nil {
		return nil
	}
	if loc.program != p || loc.linked != p.linked {
		c.fail(InvalidOperation, "GetUniform", ErrWrongProgram)
		return nil
	}
	v, err := loc.linked.Uniform(loc.index)
	if err != nil {
		c.fail(InvalidOperation, "GetUniform", err)
		return nil
	}
	return v
}
