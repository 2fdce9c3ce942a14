// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var _ image.Image = (*Framebuffer)(nil)

func TestFramebufferOrigin(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(0, 0, Red)
	fb.SetPixel(2, 1, Blue)

	if got := fb.Pixel(0, 0); got != pxRed {
		t.Errorf("Pixel(0,0) = %v, want red", got)
	}
	// image.Image view is top-down.
	if got := fb.At(0, 1); got != pxRed {
		t.Errorf("At(0,1) = %v, want red", got)
	}
	img := fb.ToImage()
	if got := img.RGBAAt(2, 0); got != pxBlue {
		t.Errorf("ToImage().RGBAAt(2,0) = %v, want blue", got)
	}
}

func TestFramebufferOutOfRange(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(-1, 0, Red)
	fb.SetPixel(2, 0, Red)
	if got := fb.Pixel(5, 5); got != (color.RGBA{}) {
		t.Errorf("Pixel(5,5) = %v, want zero", got)
	}
	for _, b := range fb.Data() {
		if b != 0 {
			t.Fatal("out-of-range SetPixel wrote data")
		}
	}
}

func TestFramebufferFill(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Fill(image.Rect(2, 2, 10, 10), Yellow)
	if got := fb.Pixel(3, 3); got != pxYellow {
		t.Errorf("Pixel(3,3) = %v, want yellow", got)
	}
	if got := fb.Pixel(1, 3); got != (color.RGBA{}) {
		t.Errorf("Pixel(1,3) = %v, want untouched", got)
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, Green)
	path := filepath.Join(t.TempDir(), "fb.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	r, g, b, a := img.At(0, 1).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("decoded bottom-left = (%d,%d,%d,%d), want green", r, g, b, a)
	}
}
