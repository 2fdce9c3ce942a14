// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import "github.com/gogpu/glex"

// CompileShader compiles source for one stage. On failure it logs the
// info log, deletes the shader and returns nil.
func CompileShader(gl *glex.RenderingContext, source string, typ glex.ShaderType) *glex.Shader {
	if gl == nil {
		return nil
	}
	s := gl.CreateShader(typ)
	if s == nil {
		return nil
	}
	gl.ShaderSource(s, source)
	gl.CompileShader(s)
	if !gl.ShaderCompiled(s) {
		glex.Logger().Error("Error compiling shader", "type", typ, "log", gl.ShaderInfoLog(s))
		gl.DeleteShader(s)
		return nil
	}
	return s
}

// CreateProgram compiles and links a vertex and a fragment shader. It
// returns nil if either stage fails to compile or the program fails to
// link; a link failure is logged with that program's info log.
func CreateProgram(gl *glex.RenderingContext, vertexSource, fragmentSource string) *glex.Program {
	vs := CompileShader(gl, vertexSource, glex.VertexShader)
	fs := CompileShader(gl, fragmentSource, glex.FragmentShader)
	if vs == nil || fs == nil {
		if gl != nil {
			gl.DeleteShader(vs)
			gl.DeleteShader(fs)
		}
		return nil
	}

	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)
	if !gl.ProgramLinked(p) {
		glex.Logger().Error("Error linking program", "log", gl.ProgramInfoLog(p))
		gl.DeleteProgram(p)
		gl.DeleteShader(vs)
		gl.DeleteShader(fs)
		return nil
	}
	return p
}
