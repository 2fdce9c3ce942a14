// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import (
	"math"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/page"
)

// LetterboxSize returns the largest size with the given aspect ratio
// (width/height) that fits a winW×winH window. One dimension always
// equals the window's; the other is truncated to whole pixels.
func LetterboxSize(winW, winH int, ratio float64) (width, height int) {
	w, h := float64(winW), float64(winH)
	if w/h > ratio {
		w = h * ratio
	} else {
		h = w / ratio
	}
	return int(w), int(h)
}

// ResizeAspectRatio registers a resize listener on win that letterboxes
// canvas to ratio and resets the viewport of gl to the whole canvas. A
// ratio of 0 uses the canvas's width/height at the time of each event.
// The listener does not redraw; callers register their own render
// listener after this one.
func ResizeAspectRatio(gl *glex.RenderingContext, canvas *page.Canvas, win *page.Window, ratio float64) page.ListenerID {
	return win.AddEventListener(page.EventResize, func(page.Event) {
		r := ratio
		if r == 0 {
			r = float64(canvas.Width()) / float64(canvas.Height())
		}
		if !(r > 0) || math.IsInf(r, 0) {
			glex.Logger().Debug("glutil: resize skipped", "ratio", r)
			return
		}
		w, h := LetterboxSize(win.InnerWidth(), win.InnerHeight(), r)
		canvas.SetSize(w, h)
		if gl != nil {
			gl.Viewport(0, 0, canvas.Width(), canvas.Height())
		}
	})
}
