// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/glex/internal/raster"
)

// RenderingContext is a software implementation of a subset of the WebGL2
// rendering context. All methods must be called from one goroutine.
//
// Like WebGL, misuse does not panic: the call is ignored and an error code
// is recorded for GetError.
type RenderingContext struct {
	fb *Framebuffer

	viewport    image.Rectangle
	clearColor  RGBA
	scissorTest bool
	scissorBox  image.Rectangle

	arrayBuffer *Buffer
	defaultVAO  *VertexArray
	vao         *VertexArray
	program     *Program
	generic     [MaxVertexAttribs][4]float64

	err  *GLError
	rast *raster.Rasterizer
}

// NewRenderingContext creates a context with a width×height drawing buffer.
//
//	gl := glex.NewRenderingContext(500, 500)
//	gl.ClearColor(0, 0, 0, 1)
//	gl.Clear(glex.ColorBufferBit)
func NewRenderingContext(width, height int, opts ...ContextOption) *RenderingContext {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	fb := options.framebuffer
	if fb == nil {
		fb = NewFramebuffer(width, height)
	}

	c := &RenderingContext{
		fb:         fb,
		viewport:   fb.rect(),
		clearColor: options.clearColor.clamp(),
		scissorBox: fb.rect(),
		rast:       raster.NewRasterizer(image.Rectangle{}),
	}
	c.defaultVAO = &VertexArray{}
	c.vao = c.defaultVAO
	for i := range c.generic {
		c.generic[i] = [4]float64{0, 0, 0, 1}
	}
	return c
}

// fail records the first error since the last GetError.
func (c *RenderingContext) fail(code ErrorCode, op string, err error) {
	Logger().Debug("glex: call failed", "op", op, "code", code, "err", err)
	if c.err == nil {
		c.err = &GLError{Code: code, Op: op, Err: err}
	}
}

// GetError returns and clears the recorded error code.
func (c *RenderingContext) GetError() ErrorCode {
	if c.err == nil {
		return NoError
	}
	code := c.err.Code
	c.err = nil
	return code
}

// LastError returns the recorded error with its cause, or nil. Unlike
// GetError it does not clear it.
func (c *RenderingContext) LastError() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Framebuffer returns the drawing buffer.
func (c *RenderingContext) Framebuffer() *Framebuffer {
	return c.fb
}

// DrawingBufferWidth returns the width of the drawing buffer.
func (c *RenderingContext) DrawingBufferWidth() int {
	return c.fb.Width()
}

// DrawingBufferHeight returns the height of the drawing buffer.
func (c *RenderingContext) DrawingBufferHeight() int {
	return c.fb.Height()
}

// Resize reallocates the drawing buffer. The viewport is left alone, as in
// WebGL when a canvas is resized.
func (c *RenderingContext) Resize(width, height int) {
	c.fb.Resize(width, height)
}

// Viewport sets the mapping from normalized device coordinates to window
// coordinates.
func (c *RenderingContext) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.fail(InvalidValue, "Viewport", fmt.Errorf("negative size %dx%d", width, height))
		return
	}
	c.viewport = image.Rect(x, y, x+width, y+height)
}

// ViewportRect returns the current viewport.
func (c *RenderingContext) ViewportRect() image.Rectangle {
	return c.viewport
}

// ClearColor sets the color used by Clear. Components are clamped to
// [0, 1].
func (c *RenderingContext) ClearColor(r, g, b, a float64) {
	c.clearColor = RGBA{R: r, G: g, B: b, A: a}.clamp()
}

// Clear fills the buffers selected by mask. The color buffer honors the
// scissor test. There is no depth or stencil buffer; those bits are
// accepted and ignored.
func (c *RenderingContext) Clear(mask ClearMask) {
	if mask&^allClearBits != 0 {
		c.fail(InvalidValue, "Clear", fmt.Errorf("unknown bits 0x%X", uint32(mask&^allClearBits)))
		return
	}
	if mask&ColorBufferBit == 0 {
		return
	}
	c.fb.Fill(c.writeRect(false), c.clearColor)
}

// writeRect is the region writes may touch: the framebuffer, cut down by
// the scissor box when the test is enabled and, for draws, by the
// viewport.
func (c *RenderingContext) writeRect(draw bool) image.Rectangle {
	r := c.fb.rect()
	if draw {
		r = r.Intersect(c.viewport)
	}
	if c.scissorTest {
		r = r.Intersect(c.scissorBox)
	}
	return r
}

// Enable turns a capability on.
func (c *RenderingContext) Enable(capability Capability) {
	c.setCapability("Enable", capability, true)
}

// Disable turns a capability off.
func (c *RenderingContext) Disable(capability Capability) {
	c.setCapability("Disable", capability, false)
}

func (c *RenderingContext) setCapability(op string, capability Capability, on bool) {
	switch capability {
	case ScissorTest:
		c.scissorTest = on
	default:
		c.fail(InvalidEnum, op, fmt.Errorf("capability %s: %w", capability, ErrUnsupported))
	}
}

// IsEnabled reports whether a capability is on.
func (c *RenderingContext) IsEnabled(capability Capability) bool {
	switch capability {
	case ScissorTest:
		return c.scissorTest
	default:
		c.fail(InvalidEnum, "IsEnabled", fmt.Errorf("capability %s: %w", capability, ErrUnsupported))
		return false
	}
}

// Scissor sets the scissor box in window coordinates.
func (c *RenderingContext) Scissor(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.fail(InvalidValue, "Scissor", fmt.Errorf("negative size %dx%d", width, height))
		return
	}
	c.scissorBox = image.Rect(x, y, x+width, y+height)
}

// ScissorBox returns the current scissor box.
func (c *RenderingContext) ScissorBox() image.Rectangle {
	return c.scissorBox
}

// ReadPixel returns the pixel at (x, y), with (0, 0) at the bottom-left.
func (c *RenderingContext) ReadPixel(x, y int) color.RGBA {
	return c.fb.Pixel(x, y)
}
