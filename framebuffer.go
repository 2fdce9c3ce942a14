// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is the RGBA8 color attachment of a RenderingContext.
//
// Coordinates follow GL conventions: (0, 0) is the bottom-left pixel.
// Rows are stored bottom-up; ToImage flips them into the top-down layout
// used by the image package.
type Framebuffer struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel, row 0 is the bottom row
}

// NewFramebuffer creates a framebuffer cleared to transparent black.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Framebuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Data returns the raw pixel data, bottom row first.
func (f *Framebuffer) Data() []uint8 {
	return f.data
}

// SetPixel writes one pixel. Out-of-range coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := (y*f.width + x) * 4
	f.data[i+0] = unorm8(c.R)
	f.data[i+1] = unorm8(c.G)
	f.data[i+2] = unorm8(c.B)
	f.data[i+3] = unorm8(c.A)
}

// Pixel returns the stored bytes of one pixel.
// Out-of-range coordinates return transparent black.
func (f *Framebuffer) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	i := (y*f.width + x) * 4
	return color.RGBA{R: f.data[i+0], G: f.data[i+1], B: f.data[i+2], A: f.data[i+3]}
}

// Fill sets every pixel of r (GL coordinates, clipped to the
// framebuffer) to c.
func (f *Framebuffer) Fill(r image.Rectangle, c RGBA) {
	r = r.Intersect(f.rect())
	if r.Empty() {
		return
	}
	px := [4]uint8{unorm8(c.R), unorm8(c.G), unorm8(c.B), unorm8(c.A)}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.data[(y*f.width+r.Min.X)*4 : (y*f.width+r.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}

// Resize reallocates the framebuffer; the content is reset to transparent
// black, matching what happens to a canvas drawing buffer when its size is
// assigned.
func (f *Framebuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	f.width = width
	f.height = height
	f.data = make([]uint8, width*height*4)
}

func (f *Framebuffer) rect() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ToImage converts the framebuffer to a top-down image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	stride := f.width * 4
	for y := 0; y < f.height; y++ {
		src := f.data[y*stride : (y+1)*stride]
		dstY := f.height - 1 - y
		copy(img.Pix[dstY*img.Stride:dstY*img.Stride+stride], src)
	}
	return img
}

// SavePNG saves the framebuffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return png.Encode(file, f.ToImage())
}

// At implements the image.Image interface using top-down coordinates.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, f.height-1-y)
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.rect()
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}
