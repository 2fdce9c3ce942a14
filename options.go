// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

// ContextOption configures a RenderingContext during creation.
//
// Example:
//
//	// Default: a new framebuffer of the requested size
//	gl := glex.NewRenderingContext(500, 500)
//
//	// Render into an existing framebuffer
//	gl := glex.NewRenderingContext(0, 0, glex.WithFramebuffer(fb))
type ContextOption func(*contextOptions)

type contextOptions struct {
	framebuffer *Framebuffer
	clearColor  RGBA
}

func defaultOptions() contextOptions {
	return contextOptions{
		clearColor: Transparent,
	}
}

// WithFramebuffer makes the context draw into fb. The width and height
// passed to NewRenderingContext are ignored.
func WithFramebuffer(fb *Framebuffer) ContextOption {
	return func(o *contextOptions) {
		o.framebuffer = fb
	}
}

// WithClearColor sets the initial clear color. WebGL starts with
// transparent black.
func WithClearColor(c RGBA) ContextOption {
	return func(o *contextOptions) {
		o.clearColor = c
	}
}
