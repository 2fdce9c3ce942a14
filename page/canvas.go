// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import "github.com/gogpu/glex"

// CanvasID is the id of the canvas every window starts with.
const CanvasID = "glCanvas"

// ContextWebGL2 is the only context name GetContext supports.
const ContextWebGL2 = "webgl2"

// Canvas is a canvas element. Its drawing buffer has the canvas's width
// and height.
type Canvas struct {
	el            *Element
	width, height int
	left, top     int
	gl            *glex.RenderingContext
	noWebGL       bool
}

// Element returns the canvas as a tree node.
func (c *Canvas) Element() *Element { return c.el }

// ID returns the canvas element's id.
func (c *Canvas) ID() string { return c.el.id }

// Width returns the width of the drawing buffer.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the drawing buffer.
func (c *Canvas) Height() int { return c.height }

// SetSize sets the width and height attributes. As in a browser this
// reallocates and clears the drawing buffer, but leaves the context's
// viewport alone.
func (c *Canvas) SetSize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	if c.gl != nil {
		c.gl.Resize(c.width, c.height)
	}
}

// OffsetLeft returns the canvas's horizontal position in the page.
func (c *Canvas) OffsetLeft() int { return c.left }

// OffsetTop returns the canvas's vertical position in the page.
func (c *Canvas) OffsetTop() int { return c.top }

// SetOffset moves the canvas within the page.
func (c *Canvas) SetOffset(left, top int) {
	c.left = left
	c.top = top
}

// GetContext returns the canvas's rendering context, creating it on first
// use. Any name other than "webgl2" returns nil.
func (c *Canvas) GetContext(name string) *glex.RenderingContext {
	if name != ContextWebGL2 || c.noWebGL {
		glex.Logger().Debug("page: unsupported context", "canvas", c.el.id, "name", name)
		return nil
	}
	if c.gl == nil {
		c.gl = glex.NewRenderingContext(c.width, c.height)
	}
	return c.gl
}

// Context returns the context created by GetContext, or nil.
func (c *Canvas) Context() *glex.RenderingContext {
	return c.gl
}
