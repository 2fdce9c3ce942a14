// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package movequad draws a small red square that the arrow keys move
// around the canvas. The square's offset is a shader uniform.
package movequad

import (
	"context"
	"embed"
	"io/fs"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/glutil"
	"github.com/gogpu/glex/page"
)

//go:embed shaders/*.wgsl
var shaders embed.FS

// Shader asset names, resolved by the loader.
const (
	VertexShaderFile   = "vertexShader.wgsl"
	FragmentShaderFile = "fragmentShader.wgsl"
)

const (
	// Size is the initial width and height of the canvas.
	Size = 600

	// Step is how far one key press moves the square, in clip space.
	Step = 0.01

	// Hint is shown over the canvas.
	Hint = "Use arrow keys to move the rectangle"
)

var (
	vertices = []float32{
		-0.1, -0.1, 0.0, // bottom left
		0.1, -0.1, 0.0, // bottom right
		0.1, 0.1, 0.0, // top right
		-0.1, 0.1, 0.0, // top left
	}
	indices = []uint16{
		0, 1, 2,
		2, 3, 0,
	}
)

// Shaders returns the embedded shader assets.
func Shaders() fs.FS {
	sub, err := fs.Sub(shaders, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}

// Offset is the square's displacement in clip space. It is unbounded.
type Offset struct {
	X, Y float64
}

// App is a running instance of the exercise.
type App struct {
	canvas  *page.Canvas
	gl      *glex.RenderingContext
	program *glex.Program
	vao     *glex.VertexArray
	uOffset *glex.UniformLocation
	offset  Offset
	overlay *page.Element
}

// Setup builds the exercise on the window's canvas and renders the first
// frame. loader may be nil to use the embedded shaders. Setup fails only
// if the canvas is missing or a shader source cannot be read; a shader
// that fails to build is logged and the exercise keeps going without a
// program.
func Setup(ctx context.Context, win *page.Window, loader *glutil.Loader) (*App, error) {
	doc := win.Document()
	canvas, err := doc.Canvas(page.CanvasID)
	if err != nil {
		return nil, err
	}
	a := &App{canvas: canvas}

	a.gl = canvas.GetContext(page.ContextWebGL2)
	if a.gl == nil {
		glex.Logger().Error("WebGL 2 is not supported by your browser.")
	}
	gl := a.gl

	canvas.SetSize(Size, Size)
	glutil.ResizeAspectRatio(gl, canvas, win, 1)
	// Resizing clears the drawing buffer.
	win.AddEventListener(page.EventResize, func(page.Event) { a.Render() })

	if gl != nil {
		gl.Viewport(0, 0, canvas.Width(), canvas.Height())
		gl.ClearColor(0, 0, 0, 1)
	}

	if loader == nil {
		loader = glutil.NewFSLoader(Shaders())
	}
	sources, err := loader.ReadShaderFiles(ctx, VertexShaderFile, FragmentShaderFile)
	if err != nil {
		return nil, err
	}

	if gl != nil {
		a.program = glutil.CreateProgram(gl, sources[0], sources[1])
		if a.program == nil {
			glex.Logger().Error("Failed to create shader programs.")
		}
		a.upload()
		if a.program != nil {
			a.uOffset = gl.GetUniformLocation(a.program, "uOffset")
		}
		gl.UseProgram(a.program)
		a.pushOffset()
	}

	win.AddEventListener(page.EventKeyDown, func(ev page.Event) { a.HandleKey(ev.Key) })
	a.overlay = glutil.SetupText(doc, canvas, Hint, 1, 8)
	a.Render()
	return a, nil
}

// upload creates the vertex array with the square's vertices and indices.
func (a *App) upload() {
	gl := a.gl
	a.vao = gl.CreateVertexArray()
	gl.BindVertexArray(a.vao)

	vbo := gl.CreateBuffer()
	gl.BindBuffer(glex.ArrayBuffer, vbo)
	gl.BufferDataFloat32(glex.ArrayBuffer, vertices, glex.StaticDraw)
	gl.VertexAttribPointer(0, 3, glex.Float, false, 0, 0)
	gl.EnableVertexAttribArray(0)

	ebo := gl.CreateBuffer()
	gl.BindBuffer(glex.ElementArrayBuffer, ebo)
	gl.BufferDataUint16(glex.ElementArrayBuffer, indices, glex.StaticDraw)
}

func (a *App) pushOffset() {
	if a.gl != nil {
		a.gl.Uniform2f(a.uOffset, a.offset.X, a.offset.Y)
	}
}

// HandleKey moves the square for the four arrow keys, then updates the
// uniform and redraws. Other keys still redraw.
func (a *App) HandleKey(key string) {
	switch key {
	case page.KeyArrowUp:
		a.offset.Y += Step
	case page.KeyArrowDown:
		a.offset.Y -= Step
	case page.KeyArrowLeft:
		a.offset.X -= Step
	case page.KeyArrowRight:
		a.offset.X += Step
	}
	a.pushOffset()
	a.Render()
}

// Render clears the canvas and draws the square as a triangle fan.
func (a *App) Render() {
	gl := a.gl
	if gl == nil {
		return
	}
	gl.Clear(glex.ColorBufferBit)
	gl.DrawArrays(glex.TriangleFan, 0, 4)
}

// Offset returns the current displacement of the square.
func (a *App) Offset() Offset {
	return a.offset
}

// Context returns the rendering context, or nil without WebGL 2.
func (a *App) Context() *glex.RenderingContext {
	return a.gl
}

// Program returns the linked program, or nil if building it failed.
func (a *App) Program() *glex.Program {
	return a.program
}

// Overlay returns the hint text element.
func (a *App) Overlay() *page.Element {
	return a.overlay
}
