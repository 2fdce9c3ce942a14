// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glex is a software implementation of a subset of the WebGL2
// rendering context, together with the pieces needed to run small graphics
// exercises outside a browser.
//
// # Overview
//
// A [RenderingContext] owns an RGBA8 [Framebuffer] and exposes the familiar
// WebGL2 calls with Go signatures: viewport, clear color, clear, the
// scissor test, shaders, programs, buffers, vertex arrays, uniforms and
// draw calls. Shaders are written in WGSL and run on the CPU.
//
// # Quick Start
//
//	gl := glex.NewRenderingContext(500, 500)
//	gl.ClearColor(0, 0, 0, 1)
//	gl.Clear(glex.ColorBufferBit)
//
//	gl.Enable(glex.ScissorTest)
//	gl.Scissor(0, 0, 250, 250)
//	gl.ClearColor(0, 0, 1, 1)
//	gl.Clear(glex.ColorBufferBit)
//	gl.Disable(glex.ScissorTest)
//
//	gl.Framebuffer().SavePNG("out.png")
//
// # Errors
//
// As in WebGL, a bad call does not panic or return an error. It is ignored
// and the first error code since the last [RenderingContext.GetError] is
// kept. [RenderingContext.LastError] returns the same error with its cause.
//
// # Coordinate System
//
// Window coordinates follow GL:
//   - Origin (0,0) at bottom-left
//   - X increases right
//   - Y increases up
//
// Normalized device coordinates span [-1, 1] on both axes and are mapped
// to the viewport.
//
// # Architecture
//
// The library is organized into:
//   - Public API: RenderingContext, Framebuffer, RGBA, Logger
//   - Internal: shade (WGSL compiler and interpreter), raster (triangle
//     setup and coverage), compose (page compositing)
//   - Page model: page (window, document, canvas, elements)
//   - Helpers: glutil (resize, text overlay, shader loading)
//   - Displays: display (headless), display/window, display/terminal
package glex

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
