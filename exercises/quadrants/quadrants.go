// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package quadrants paints the canvas in four colored quadrants using only
// the scissor test and clears, and keeps the canvas square when the window
// is resized.
package quadrants

import (
	"github.com/gogpu/glex"
	"github.com/gogpu/glex/glutil"
	"github.com/gogpu/glex/page"
)

// Size is the initial width and height of the canvas.
const Size = 500

// Quadrant colors.
var (
	BottomLeft  = glex.Blue
	BottomRight = glex.Yellow
	TopLeft     = glex.Green
	TopRight    = glex.Red
)

// Painter draws the quadrants into a canvas.
type Painter struct {
	canvas *page.Canvas
	gl     *glex.RenderingContext
}

// New prepares canvas for painting. Without WebGL 2 it logs an error and
// returns a painter whose Render does nothing.
func New(canvas *page.Canvas) *Painter {
	gl := canvas.GetContext(page.ContextWebGL2)
	if gl == nil {
		glex.Logger().Error("WebGL 2 is not supported by your browser.")
	}
	canvas.SetSize(Size, Size)
	if gl != nil {
		gl.Viewport(0, 0, canvas.Width(), canvas.Height())
		gl.ClearColor(0, 0, 0, 1)
	}
	return &Painter{canvas: canvas, gl: gl}
}

// Context returns the rendering context, or nil without WebGL 2.
func (p *Painter) Context() *glex.RenderingContext {
	return p.gl
}

// Render clears the canvas to black and then each quadrant to its color.
func (p *Painter) Render() {
	gl := p.gl
	if gl == nil {
		return
	}
	w, h := p.canvas.Width(), p.canvas.Height()
	hw, hh := w/2, h/2

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(glex.ColorBufferBit)

	gl.Enable(glex.ScissorTest)
	fill := func(x, y, width, height int, c glex.RGBA) {
		gl.Scissor(x, y, width, height)
		gl.ClearColor(c.R, c.G, c.B, c.A)
		gl.Clear(glex.ColorBufferBit)
	}
	fill(0, 0, hw, hh, BottomLeft)
	fill(hw, 0, w-hw, hh, BottomRight)
	fill(0, hh, hw, h-hh, TopLeft)
	fill(hw, hh, w-hw, h-hh, TopRight)
	gl.Disable(glex.ScissorTest)
}

// Run sets up the painter on the window's canvas, keeps the canvas square
// on resize and renders once.
func Run(win *page.Window) (*Painter, error) {
	canvas, err := win.Document().Canvas(page.CanvasID)
	if err != nil {
		return nil, err
	}
	p := New(canvas)
	glutil.ResizeAspectRatio(p.gl, canvas, win, 1)
	win.AddEventListener(page.EventResize, func(page.Event) { p.Render() })
	p.Render()
	return p, nil
}
