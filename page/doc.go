// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package page models the parts of a browser page the exercises touch: a
// window with an inner size and event listeners, a document holding an
// element tree, and canvas elements that hand out a glex rendering
// context.
//
// # Events
//
// Listeners run synchronously, in registration order, on the goroutine
// that calls [Window.Dispatch]. A display backend owns that goroutine, so
// listeners never run concurrently with each other.
//
//	win := page.NewWindow(page.WithInnerSize(800, 600))
//	win.AddEventListener(page.EventResize, func(page.Event) {
//	    fmt.Println(win.InnerWidth(), win.InnerHeight())
//	})
//	win.Resize(1024, 768)
//
// # Canvas
//
// Every window starts with a document whose body holds one canvas with ID
// [CanvasID]. [Canvas.GetContext] with "webgl2" returns the canvas's
// rendering context; any other name returns nil.
package page
