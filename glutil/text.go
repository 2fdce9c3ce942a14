// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import "github.com/gogpu/glex/page"

// OverlayID is the id given to every text overlay element.
const OverlayID = "textOverlay"

// Overlay defaults.
const (
	DefaultFontSize   = 14
	overlayMargin     = 10
	overlayLineHeight = 20
)

// SetupText places a line of white monospace text over canvas and returns
// the new overlay element. Line 1 first removes an existing overlay;
// other lines are appended next to it. Lines below 1 are treated as 1 and
// a non-positive fontSize selects DefaultFontSize.
func SetupText(doc *page.Document, canvas *page.Canvas, text string, line int, fontSize float64) *page.Element {
	if line < 1 {
		line = 1
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if line == 1 {
		if old := doc.GetElementByID(OverlayID); old != nil {
			old.Remove()
		}
	}

	overlay := doc.CreateElement("div")
	overlay.SetID(OverlayID)
	*overlay.Style() = page.Style{
		Position:   page.PositionFixed,
		Left:       float64(canvas.OffsetLeft() + overlayMargin),
		Top:        float64(canvas.OffsetTop() + overlayLineHeight*(line-1) + overlayMargin),
		Color:      "white",
		FontFamily: "monospace",
		FontSize:   fontSize,
		ZIndex:     100,
	}
	overlay.SetTextContent(text)

	parent := canvas.Element().Parent()
	if parent == nil {
		parent = doc.Body()
	}
	_ = parent.AppendChild(overlay)
	return overlay
}
