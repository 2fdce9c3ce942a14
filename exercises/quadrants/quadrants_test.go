// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package quadrants

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/page"
)

func px(c glex.RGBA) color.RGBA {
	return color.RGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}
}

// checkQuadrants verifies every pixel belongs to exactly the quadrant its
// position says it should.
func checkQuadrants(t *testing.T, gl *glex.RenderingContext) {
	t.Helper()
	w, h := gl.DrawingBufferWidth(), gl.DrawingBufferHeight()
	for y := range h {
		for x := range w {
			var want glex.RGBA
			switch {
			case x < w/2 && y < h/2:
				want = BottomLeft
			case y < h/2:
				want = BottomRight
			case x < w/2:
				want = TopLeft
			default:
				want = TopRight
			}
			if got := gl.ReadPixel(x, y); got != px(want) {
				t.Fatalf("%dx%d: pixel (%d,%d) = %v, want %v", w, h, x, y, got, px(want))
			}
		}
	}
}

func TestRun(t *testing.T) {
	win := page.NewWindow()
	p, err := Run(win)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	gl := p.Context()
	if gl.DrawingBufferWidth() != Size || gl.DrawingBufferHeight() != Size {
		t.Fatalf("canvas = %dx%d, want %dx%d", gl.DrawingBufferWidth(), gl.DrawingBufferHeight(), Size, Size)
	}
	checkQuadrants(t, gl)
	if gl.IsEnabled(glex.ScissorTest) {
		t.Error("scissor test left enabled")
	}
	if code := gl.GetError(); code != glex.NoError {
		t.Errorf("GetError() = %v", code)
	}
}

func TestResizeKeepsSquare(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
	}{
		{"wide", 900, 301, 301},
		{"tall", 255, 700, 255},
		{"square", 64, 64, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := page.NewWindow()
			p, err := Run(win)
			if err != nil {
				t.Fatal(err)
			}
			win.Resize(tt.width, tt.height)
			gl := p.Context()
			if gl.DrawingBufferWidth() != tt.want || gl.DrawingBufferHeight() != tt.want {
				t.Fatalf("canvas = %dx%d, want %dx%d",
					gl.DrawingBufferWidth(), gl.DrawingBufferHeight(), tt.want, tt.want)
			}
			checkQuadrants(t, gl)
		})
	}
}

func TestNoWebGL(t *testing.T) {
	orig := glex.Logger()
	t.Cleanup(func() { glex.SetLogger(orig) })
	var buf bytes.Buffer
	glex.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	win := page.NewWindow(page.WithWebGLDisabled())
	p, err := Run(win)
	if err != nil {
		t.Fatal(err)
	}
	if p.Context() != nil {
		t.Fatal("painter has a context")
	}
	if n := strings.Count(buf.String(), "WebGL 2 is not supported"); n != 1 {
		t.Errorf("logged %d times, want 1", n)
	}
	// Render and resize must not panic.
	p.Render()
	win.Resize(100, 100)
}

func TestRunWithoutCanvas(t *testing.T) {
	win := page.NewWindow()
	c, _ := win.Document().Canvas(page.CanvasID)
	c.Element().Remove()
	if _, err := Run(win); err == nil {
		t.Error("Run succeeded without a canvas")
	}
}

func BenchmarkRender(b *testing.B) {
	c, _ := page.NewWindow().Document().Canvas(page.CanvasID)
	p := New(c)
	for b.Loop() {
		p.Render()
	}
}
