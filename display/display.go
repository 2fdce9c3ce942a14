// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display presents a page window on a screen and turns user input
// into window events.
//
// A Backend drives a Host: it reports size changes with Host.Resize,
// arrow keys with Host.KeyDown, and paints Host.Frame. Backends are found
// through a registry; the headless backend is always registered, others
// register when their package is imported.
package display

import (
	"context"
	"image"
	"sync"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/internal/compose"
	"github.com/gogpu/glex/page"
)

// Step is one scripted input for the headless backend. A non-zero Resize
// resizes the window; otherwise Key is delivered as a keydown.
type Step struct {
	Resize image.Point
	Key    string
}

// Options configure a backend.
type Options struct {
	// Title is the window title where the backend has one.
	Title string

	// Script is replayed in order by the headless backend.
	Script []Step

	// Snapshot, if set, is the PNG path the headless backend writes the
	// final frame to.
	Snapshot string

	// FrameRate caps redraws of interactive backends. Zero means 60.
	FrameRate int
}

// Scripted reports whether opts need a driver that replays a script or
// writes a snapshot.
func (o Options) Scripted() bool {
	return len(o.Script) > 0 || o.Snapshot != ""
}

// Rate returns the effective frame rate.
func (o Options) Rate() int {
	if o.FrameRate <= 0 {
		return 60
	}
	return o.FrameRate
}

// Backend shows a host until ctx is done or the user quits.
type Backend interface {
	Name() string
	Run(ctx context.Context, host *Host) error
}

// Host couples a page window with a compositor. Its methods are safe to
// call from a backend's event goroutine.
type Host struct {
	mu    sync.Mutex
	win   *page.Window
	comp  *compose.Compositor
	dirty bool
}

// NewHost creates a host for win.
func NewHost(win *page.Window) (*Host, error) {
	comp, err := compose.New()
	if err != nil {
		return nil, err
	}
	return &Host{win: win, comp: comp, dirty: true}, nil
}

// Close releases compositor resources.
func (h *Host) Close() error {
	return h.comp.Close()
}

// Window returns the hosted window.
func (h *Host) Window() *page.Window {
	return h.win
}

// Resize changes the window's inner size and dispatches a resize event.
// Repeating the current size is ignored.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if width == h.win.InnerWidth() && height == h.win.InnerHeight() {
		return
	}
	glex.Logger().Debug("display: resize", "width", width, "height", height)
	h.win.Resize(width, height)
	h.dirty = true
}

// KeyDown dispatches a keydown event.
func (h *Host) KeyDown(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.win.KeyDown(key)
	h.dirty = true
}

// Dirty reports whether an event was dispatched since the last Frame.
func (h *Host) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dirty
}

// Frame composes the current page.
func (h *Host) Frame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dirty = false
	return h.comp.Frame(h.win)
}

// Scene composes the page without its overlays and returns the overlays
// separately, for backends that draw text natively.
func (h *Host) Scene() (*image.RGBA, []Text) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dirty = false
	img := image.NewRGBA(image.Rect(0, 0, h.win.InnerWidth(), h.win.InnerHeight()))
	h.comp.DrawPage(img, h.win)
	boxes := h.comp.Layout(h.win.Document())
	texts := make([]Text, len(boxes))
	for i, b := range boxes {
		texts[i] = Text{
			Text:  b.Text,
			Rect:  b.Rect,
			Color: compose.TextColor(b.Element.Style().Color),
		}
	}
	return img, texts
}

// Text is a laid-out overlay.
type Text struct {
	Text  string
	Rect  image.Rectangle
	Color glex.RGBA
}
