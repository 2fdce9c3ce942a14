// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import (
	"slices"
	"sync"

	"github.com/gogpu/glex"
)

// EventType names an event the window can dispatch.
type EventType string

const (
	EventResize  EventType = "resize"
	EventKeyDown EventType = "keydown"
)

// Event is passed to listeners. Key is set for EventKeyDown and holds a
// DOM key value such as "ArrowUp".
type Event struct {
	Type EventType
	Key  string
}

// DOM key values of the arrow keys.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Listener handles one event.
type Listener func(Event)

// ListenerID identifies a registered listener for RemoveEventListener.
type ListenerID uint64

type registration struct {
	id  ListenerID
	typ EventType
	fn  Listener
}

// Default window and canvas sizes, matching a fresh browser canvas.
const (
	DefaultInnerWidth   = 800
	DefaultInnerHeight  = 600
	DefaultCanvasWidth  = 300
	DefaultCanvasHeight = 150
)

// WindowOption configures a Window during creation.
type WindowOption func(*windowOptions)

type windowOptions struct {
	width, height    int
	canvasX, canvasY int
	background       glex.RGBA
	noWebGL          bool
}

func defaultWindowOptions() windowOptions {
	return windowOptions{
		width:      DefaultInnerWidth,
		height:     DefaultInnerHeight,
		background: glex.White,
	}
}

// WithInnerSize sets the initial inner size of the window.
func WithInnerSize(width, height int) WindowOption {
	return func(o *windowOptions) {
		o.width = max(width, 0)
		o.height = max(height, 0)
	}
}

// WithCanvasOffset places the canvas at (left, top) in page pixels.
func WithCanvasOffset(left, top int) WindowOption {
	return func(o *windowOptions) {
		o.canvasX = left
		o.canvasY = top
	}
}

// WithBackground sets the page background shown around the canvas.
func WithBackground(c glex.RGBA) WindowOption {
	return func(o *windowOptions) {
		o.background = c
	}
}

// WithWebGLDisabled makes the window's canvas refuse "webgl2", like a
// browser without WebGL 2 support.
func WithWebGLDisabled() WindowOption {
	return func(o *windowOptions) {
		o.noWebGL = true
	}
}

// Window is the top-level browsing context: inner size, event listeners
// and the document.
//
// Listener registration is safe from any goroutine. Dispatch runs the
// listeners on the calling goroutine.
type Window struct {
	mu        sync.Mutex
	width     int
	height    int
	listeners []registration
	nextID    ListenerID

	doc        *Document
	background glex.RGBA
}

// NewWindow creates a window whose document holds a canvas with ID
// CanvasID.
func NewWindow(opts ...WindowOption) *Window {
	o := defaultWindowOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w := &Window{
		width:      o.width,
		height:     o.height,
		background: o.background,
	}
	w.doc = newDocument()
	c := w.doc.CreateCanvas(CanvasID)
	c.SetOffset(o.canvasX, o.canvasY)
	c.noWebGL = o.noWebGL
	_ = w.doc.Body().AppendChild(c.Element())
	return w
}

// Document returns the window's document.
func (w *Window) Document() *Document {
	return w.doc
}

// Background returns the page background color.
func (w *Window) Background() glex.RGBA {
	return w.background
}

// InnerWidth returns the width of the window's viewport in page pixels.
func (w *Window) InnerWidth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// InnerHeight returns the height of the window's viewport in page pixels.
func (w *Window) InnerHeight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// AddEventListener registers fn for events of type typ.
func (w *Window) AddEventListener(typ EventType, fn Listener) ListenerID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	w.listeners = append(w.listeners, registration{id: w.nextID, typ: typ, fn: fn})
	return w.nextID
}

// RemoveEventListener unregisters a listener. Unknown IDs are ignored.
func (w *Window) RemoveEventListener(id ListenerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = slices.DeleteFunc(w.listeners, func(r registration) bool {
		return r.id == id
	})
}

// Dispatch runs every listener registered for ev.Type, in registration
// order. Listeners added during dispatch do not see the current event.
func (w *Window) Dispatch(ev Event) {
	w.mu.Lock()
	var fns []Listener
	for _, r := range w.listeners {
		if r.typ == ev.Type {
			fns = append(fns, r.fn)
		}
	}
	w.mu.Unlock()

	glex.Logger().Debug("page: dispatch", "type", ev.Type, "key", ev.Key, "listeners", len(fns))
	for _, fn := range fns {
		fn(ev)
	}
}

// Resize changes the inner size and dispatches a resize event.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width = max(width, 0)
	w.height = max(height, 0)
	w.mu.Unlock()
	w.Dispatch(Event{Type: EventResize})
}

// KeyDown dispatches a keydown event for key.
func (w *Window) KeyDown(key string) {
	w.Dispatch(Event{Type: EventKeyDown, Key: key})
}
