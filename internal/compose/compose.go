// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compose renders the visible frame of a page window: the page
// background, every attached canvas at its offset, and text overlays on top
// in z-index order.
package compose

import (
	"image"
	"image/draw"
	"slices"
	"sync"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/page"
)

// Box is the laid-out position of one text overlay, in page pixels with the
// origin at the top-left of the window.
type Box struct {
	Element *page.Element
	// Text is the overlay content in visual order.
	Text string
	Rect image.Rectangle
	// Baseline is the y coordinate of the text baseline.
	Baseline int
	RTL      bool
}

// Compositor draws page frames. It caches font faces and is safe for
// concurrent use.
type Compositor struct {
	mu    sync.Mutex
	fonts *fontSet
}

// New creates a Compositor with the embedded Go fonts loaded.
func New() (*Compositor, error) {
	fs, err := newFontSet()
	if err != nil {
		return nil, err
	}
	return &Compositor{fonts: fs}, nil
}

// Close releases the cached font faces.
func (c *Compositor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fonts.close()
}

// Frame renders win into a new image the size of its inner area.
func (c *Compositor) Frame(win *page.Window) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, win.InnerWidth(), win.InnerHeight()))
	c.Draw(img, win)
	return img
}

// Draw renders win into dst, which is normally sized to the window.
func (c *Compositor) Draw(dst draw.Image, win *page.Window) {
	c.DrawPage(dst, win)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.layout(win.Document()) {
		c.drawText(dst, b)
	}
}

// DrawPage renders the background and canvases of win, leaving out text
// overlays.
func (c *Compositor) DrawPage(dst draw.Image, win *page.Window) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(win.Background().Color()), image.Point{}, draw.Src)
	for _, cv := range Canvases(win.Document()) {
		drawCanvas(dst, cv)
	}
}

// Layout returns the overlay boxes of doc in paint order.
func (c *Compositor) Layout(doc *page.Document) []Box {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout(doc)
}

func (c *Compositor) layout(doc *page.Document) []Box {
	var els []*page.Element
	doc.Walk(func(e *page.Element) bool {
		if e.Canvas() == nil && e.TextContent() != "" {
			els = append(els, e)
		}
		return true
	})
	// Stable sort keeps document order among equal z-indexes.
	slices.SortStableFunc(els, func(a, b *page.Element) int {
		return a.Style().ZIndex - b.Style().ZIndex
	})

	boxes := make([]Box, 0, len(els))
	for _, e := range els {
		st := e.Style()
		face := c.fonts.face(st.FontFamily, st.FontSize)
		text, rtl := visualOrder(e.TextContent())
		m := face.Metrics()
		left := int(st.Left)
		top := int(st.Top)
		width := int(c.fonts.advance(st.FontFamily, st.FontSize, text) + 0.5)
		height := (m.Ascent + m.Descent).Ceil()
		boxes = append(boxes, Box{
			Element:  e,
			Text:     text,
			Rect:     image.Rect(left, top, left+width, top+height),
			Baseline: top + m.Ascent.Ceil(),
			RTL:      rtl,
		})
	}
	return boxes
}

// Canvases returns the attached canvases of doc in document order.
func Canvases(doc *page.Document) []*page.Canvas {
	var out []*page.Canvas
	doc.Walk(func(e *page.Element) bool {
		if cv := e.Canvas(); cv != nil {
			out = append(out, cv)
		}
		return true
	})
	return out
}

// CanvasImage returns the drawing buffer of cv as a top-down image, or nil
// if no context was created for it.
func CanvasImage(cv *page.Canvas) *image.NRGBA {
	gl := cv.Context()
	if gl == nil {
		return nil
	}
	rgba := gl.Framebuffer().ToImage()
	// The framebuffer stores straight alpha.
	return &image.NRGBA{Pix: rgba.Pix, Stride: rgba.Stride, Rect: rgba.Rect}
}

func drawCanvas(dst draw.Image, cv *page.Canvas) {
	src := CanvasImage(cv)
	if src == nil {
		return
	}
	at := image.Pt(cv.OffsetLeft(), cv.OffsetTop())
	r := src.Bounds().Add(at)
	draw.Draw(dst, r, src, image.Point{}, draw.Over)
}

// TextColor resolves a CSS color for overlay text; unknown values paint
// black.
func TextColor(css string) glex.RGBA {
	if c, ok := glex.ParseCSSColor(css); ok {
		return c
	}
	return glex.Black
}
