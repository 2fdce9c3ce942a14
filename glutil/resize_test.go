// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/glex/page"
)

func TestLetterboxSize(t *testing.T) {
	tests := []struct {
		name         string
		winW, winH   int
		ratio        float64
		wantW, wantH int
	}{
		{"wide window square ratio", 1000, 500, 1, 500, 500},
		{"tall window square ratio", 400, 900, 1, 400, 400},
		{"wide ratio in square window", 500, 500, 2, 500, 250},
		{"truncates", 333, 1000, 0.5, 333, 666},
		{"zero height", 500, 0, 1, 0, 0},
		{"zero window", 0, 0, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := LetterboxSize(tt.winW, tt.winH, tt.ratio)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("LetterboxSize(%d, %d, %v) = %dx%d, want %dx%d",
					tt.winW, tt.winH, tt.ratio, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLetterboxSizeKeepsRatio(t *testing.T) {
	for _, ratio := range []float64{1, 4.0 / 3, 16.0 / 9, 0.5} {
		for winW := 50; winW <= 2000; winW += 137 {
			for winH := 50; winH <= 2000; winH += 151 {
				w, h := LetterboxSize(winW, winH, ratio)
				if w != winW && h != winH {
					t.Fatalf("ratio %v window %dx%d: %dx%d touches neither edge", ratio, winW, winH, w, h)
				}
				if w > winW || h > winH {
					t.Fatalf("ratio %v window %dx%d: %dx%d overflows", ratio, winW, winH, w, h)
				}
				if tol := max(1, ratio) / float64(h); math.Abs(float64(w)/float64(h)-ratio) > tol {
					t.Fatalf("ratio %v window %dx%d: %dx%d is off by more than %v", ratio, winW, winH, w, h, tol)
				}
			}
		}
	}
}

func TestResizeAspectRatio(t *testing.T) {
	win := page.NewWindow(page.WithInnerSize(800, 600))
	canvas, _ := win.Document().Canvas(page.CanvasID)
	canvas.SetSize(600, 600)
	gl := canvas.GetContext(page.ContextWebGL2)

	ResizeAspectRatio(gl, canvas, win, 1)
	win.Resize(1200, 700)

	if canvas.Width() != 700 || canvas.Height() != 700 {
		t.Errorf("canvas = %dx%d, want 700x700", canvas.Width(), canvas.Height())
	}
	if got := gl.ViewportRect(); got != image.Rect(0, 0, 700, 700) {
		t.Errorf("viewport = %v, want the whole canvas", got)
	}
}

func TestResizeAspectRatioInferred(t *testing.T) {
	win := page.NewWindow()
	canvas, _ := win.Document().Canvas(page.CanvasID)
	canvas.SetSize(400, 200)

	id := ResizeAspectRatio(nil, canvas, win, 0)
	win.Resize(1000, 1000)
	if canvas.Width() != 1000 || canvas.Height() != 500 {
		t.Errorf("canvas = %dx%d, want 1000x500", canvas.Width(), canvas.Height())
	}

	// A degenerate canvas has no ratio to keep.
	canvas.SetSize(10, 0)
	win.Resize(300, 300)
	if canvas.Width() != 10 || canvas.Height() != 0 {
		t.Errorf("canvas = %dx%d, want it untouched", canvas.Width(), canvas.Height())
	}

	win.RemoveEventListener(id)
	canvas.SetSize(100, 100)
	win.Resize(50, 20)
	if canvas.Width() != 100 {
		t.Error("removed listener still resizes")
	}
}
