// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/page"
)

func newCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestFrameBackground(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow(page.WithInnerSize(40, 30))

	img := c.Frame(win)
	if got := img.Bounds(); got != image.Rect(0, 0, 40, 30) {
		t.Fatalf("bounds = %v", got)
	}
	// No context yet: the canvas is transparent and the page shows.
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestFrameCanvasOffsetAndFlip(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow(page.WithInnerSize(50, 50), page.WithCanvasOffset(10, 5))
	cv, err := win.Document().Canvas(page.CanvasID)
	if err != nil {
		t.Fatal(err)
	}
	cv.SetSize(20, 20)
	gl := cv.GetContext(page.ContextWebGL2)
	gl.ClearColor(0, 0, 1, 1)
	gl.Clear(glex.ColorBufferBit)
	gl.Enable(glex.ScissorTest)
	gl.Scissor(0, 0, 1, 1)
	gl.ClearColor(1, 0, 0, 1)
	gl.Clear(glex.ColorBufferBit)

	img := c.Frame(win)
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	white := color.RGBA{255, 255, 255, 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{10, 24, red}, // GL (0, 0) lands at the bottom-left of the canvas
		{10, 5, blue},
		{29, 24, blue},
		{9, 5, white},
		{30, 24, white},
		{10, 25, white},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFrameTranslucentCanvas(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow(page.WithInnerSize(8, 8), page.WithBackground(glex.Black))
	cv, _ := win.Document().Canvas(page.CanvasID)
	cv.SetSize(8, 8)
	gl := cv.GetContext(page.ContextWebGL2)
	gl.ClearColor(1, 1, 1, 0.5)
	gl.Clear(glex.ColorBufferBit)

	got := c.Frame(win).RGBAAt(3, 3)
	if got.R < 120 || got.R > 135 || got.A != 255 {
		t.Errorf("blended = %v, want about half white over black", got)
	}
}

func addOverlay(doc *page.Document, text string, left, top float64, z int, col string) *page.Element {
	el := doc.CreateElement("div")
	*el.Style() = page.Style{
		Position:   page.PositionFixed,
		Left:       left,
		Top:        top,
		Color:      col,
		FontFamily: "monospace",
		FontSize:   14,
		ZIndex:     z,
	}
	el.SetTextContent(text)
	_ = doc.Body().AppendChild(el)
	return el
}

func countColor(img *image.RGBA, r image.Rectangle, want color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestFrameOverlayText(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow(page.WithInnerSize(200, 60), page.WithBackground(glex.Black))
	addOverlay(win.Document(), "Hello", 10, 10, 100, "white")

	boxes := c.Layout(win.Document())
	if len(boxes) != 1 {
		t.Fatalf("boxes = %d, want 1", len(boxes))
	}
	b := boxes[0]
	if b.Rect.Min != image.Pt(10, 10) || b.Rect.Dx() <= 0 || b.Rect.Dy() <= 0 {
		t.Fatalf("box = %v", b.Rect)
	}

	img := c.Frame(win)
	white := color.RGBA{255, 255, 255, 255}
	if n := countColor(img, b.Rect, white); n == 0 {
		t.Error("no text pixels inside the overlay box")
	}
	outside := image.Rect(b.Rect.Max.X+2, 0, 200, 60)
	if n := countColor(img, outside, white); n != 0 {
		t.Errorf("%d text pixels right of the box", n)
	}
}

func TestLayoutZOrder(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow()
	doc := win.Document()
	top := addOverlay(doc, "top", 0, 0, 200, "red")
	first := addOverlay(doc, "first", 0, 0, 100, "white")
	second := addOverlay(doc, "second", 0, 0, 100, "white")

	boxes := c.Layout(doc)
	want := []*page.Element{first, second, top}
	if len(boxes) != len(want) {
		t.Fatalf("boxes = %d", len(boxes))
	}
	for i, b := range boxes {
		if b.Element != want[i] {
			t.Errorf("box %d = %q, want %q", i, b.Element.TextContent(), want[i].TextContent())
		}
	}
}

func TestLayoutSkipsDetached(t *testing.T) {
	c := newCompositor(t)
	win := page.NewWindow()
	el := addOverlay(win.Document(), "gone", 0, 0, 1, "white")
	el.Remove()
	if boxes := c.Layout(win.Document()); len(boxes) != 0 {
		t.Errorf("boxes = %d, want 0", len(boxes))
	}
}

func TestMonospaceAdvance(t *testing.T) {
	c := newCompositor(t)
	one := c.fonts.advance("monospace", 14, "i")
	four := c.fonts.advance("monospace", 14, "iWmi")
	if one <= 0 {
		t.Fatalf("advance(i) = %v", one)
	}
	if diff := four - 4*one; diff < -0.01 || diff > 0.01 {
		t.Errorf("advance(iWmi) = %v, want %v", four, 4*one)
	}
	if prop := c.fonts.advance("serif", 14, "iiii"); prop >= four {
		t.Errorf("proportional iiii = %v, want narrower than %v", prop, four)
	}
}

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantRTL bool
	}{
		{"Use arrow keys", "Use arrow keys", false},
		{"שלום", "םולש", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, rtl := visualOrder(tt.in)
		if got != tt.want || rtl != tt.wantRTL {
			t.Errorf("visualOrder(%q) = %q, %v; want %q, %v", tt.in, got, rtl, tt.want, tt.wantRTL)
		}
	}
}

func TestTextColor(t *testing.T) {
	if got := TextColor("white"); got != glex.White {
		t.Errorf("white = %v", got)
	}
	if got := TextColor("chartreuse-ish"); got != glex.Black {
		t.Errorf("unknown = %v, want black", got)
	}
	if got := TextColor("#12g4"); got != glex.Black {
		t.Errorf("malformed hex = %v, want black", got)
	}
}

func BenchmarkFrame(b *testing.B) {
	c, err := New()
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	win := page.NewWindow()
	cv, _ := win.Document().Canvas(page.CanvasID)
	cv.SetSize(600, 600)
	cv.GetContext(page.ContextWebGL2)
	addOverlay(win.Document(), "Use arrow keys to move the quad", 10, 10, 100, "white")
	for b.Loop() {
		c.Frame(win)
	}
}
