// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import (
	"testing"

	"github.com/gogpu/glex/page"
)

func countOverlays(doc *page.Document) int {
	n := 0
	doc.Walk(func(e *page.Element) bool {
		if e.ID() == OverlayID {
			n++
		}
		return true
	})
	return n
}

func TestSetupTextReplacesLineOne(t *testing.T) {
	win := page.NewWindow(page.WithCanvasOffset(30, 40))
	doc := win.Document()
	canvas, _ := doc.Canvas(page.CanvasID)

	first := SetupText(doc, canvas, "first", 1, 8)
	second := SetupText(doc, canvas, "second", 1, 8)

	if n := countOverlays(doc); n != 1 {
		t.Fatalf("overlays = %d, want 1", n)
	}
	if first.Parent() != nil {
		t.Error("first overlay still attached")
	}
	if doc.GetElementByID(OverlayID) != second {
		t.Error("second overlay not found")
	}
	if second.TextContent() != "second" {
		t.Errorf("text = %q", second.TextContent())
	}

	st := second.Style()
	want := page.Style{
		Position:   page.PositionFixed,
		Left:       40,
		Top:        50,
		Color:      "white",
		FontFamily: "monospace",
		FontSize:   8,
		ZIndex:     100,
	}
	if *st != want {
		t.Errorf("style = %+v, want %+v", *st, want)
	}
}

func TestSetupTextOtherLinesAppend(t *testing.T) {
	win := page.NewWindow()
	doc := win.Document()
	canvas, _ := doc.Canvas(page.CanvasID)

	SetupText(doc, canvas, "one", 1, 0)
	third := SetupText(doc, canvas, "three", 3, 12)
	SetupText(doc, canvas, "three again", 3, 12)

	if n := countOverlays(doc); n != 3 {
		t.Errorf("overlays = %d, want 3", n)
	}
	if got := third.Style().Top; got != 50 {
		t.Errorf("line 3 top = %v, want 50", got)
	}
	if got := doc.GetElementByID(OverlayID).Style().FontSize; got != DefaultFontSize {
		t.Errorf("default font size = %v, want %v", got, DefaultFontSize)
	}
	if third.Parent() != canvas.Element().Parent() {
		t.Error("overlay is not a sibling of the canvas")
	}
}

func TestSetupTextLineClamp(t *testing.T) {
	win := page.NewWindow()
	doc := win.Document()
	canvas, _ := doc.Canvas(page.CanvasID)
	SetupText(doc, canvas, "a", 0, 10)
	SetupText(doc, canvas, "b", -3, 10)
	if n := countOverlays(doc); n != 1 {
		t.Errorf("overlays = %d, want 1", n)
	}
}
