// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package terminal

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/display"
	"github.com/gogpu/glex/page"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(cols, rows)
	return s
}

// newHost returns a host whose canvas fills the left half of the page
// with red after every resize.
func newHost(t *testing.T) *display.Host {
	t.Helper()
	win := page.NewWindow(page.WithBackground(glex.Black))
	cv, err := win.Document().Canvas(page.CanvasID)
	if err != nil {
		t.Fatal(err)
	}
	gl := cv.GetContext(page.ContextWebGL2)
	win.AddEventListener(page.EventResize, func(page.Event) {
		cv.SetSize(win.InnerWidth()/2, win.InnerHeight())
		gl.Viewport(0, 0, cv.Width(), cv.Height())
		gl.ClearColor(1, 0, 0, 1)
		gl.Clear(glex.ColorBufferBit)
	})
	h, err := display.NewHost(win)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHandleResize(t *testing.T) {
	s := newScreen(t, 10, 5)
	h := newHost(t)
	handle(s, h, tcell.NewEventResize(10, 5))
	if w, ht := h.Window().InnerWidth(), h.Window().InnerHeight(); w != 10*Scale || ht != 5*2*Scale {
		t.Errorf("window = %dx%d, want %dx%d", w, ht, 10*Scale, 5*2*Scale)
	}
}

func TestHandleKeys(t *testing.T) {
	s := newScreen(t, 10, 5)
	h := newHost(t)
	var keys []string
	h.Window().AddEventListener(page.EventKeyDown, func(ev page.Event) {
		keys = append(keys, ev.Key)
	})

	tests := []struct {
		ev   *tcell.EventKey
		quit bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
	}
	for _, tt := range tests {
		if got := handle(s, h, tt.ev); got != tt.quit {
			t.Errorf("handle(%v) = %v, want %v", tt.ev.Name(), got, tt.quit)
		}
	}
	if len(keys) != 2 || keys[0] != page.KeyArrowUp || keys[1] != page.KeyArrowRight {
		t.Errorf("keys = %v", keys)
	}
}

func TestPaint(t *testing.T) {
	s := newScreen(t, 10, 4)
	h := newHost(t)
	handle(s, h, tcell.NewEventResize(10, 4))

	el := h.Window().Document().CreateElement("div")
	el.Style().Color = "white"
	el.Style().Left = 5 * Scale
	el.Style().Top = 2 * 2 * Scale
	el.SetTextContent("ok")
	if err := h.Window().Document().Body().AppendChild(el); err != nil {
		t.Fatal(err)
	}

	paint(s, h)

	mainc, _, st, _ := s.GetContent(0, 0)
	fg, bg, _ := st.Decompose()
	if mainc != upperHalf {
		t.Errorf("cell (0, 0) = %q", mainc)
	}
	if r, g, b := fg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("canvas top half = %d,%d,%d, want red", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 255 || g != 0 || b != 0 {
		t.Errorf("canvas bottom half = %d,%d,%d, want red", r, g, b)
	}

	_, _, st, _ = s.GetContent(9, 0)
	fg, _, _ = st.Decompose()
	if r, g, b := fg.RGB(); r != 0 || g != 0 || b != 0 {
		t.Errorf("page cell = %d,%d,%d, want black", r, g, b)
	}

	for i, want := range "ok" {
		got, _, st, _ := s.GetContent(5+i, 2)
		if got != want {
			t.Errorf("text cell %d = %q, want %q", i, got, want)
		}
		fg, _, _ := st.Decompose()
		if r, g, b := fg.RGB(); r != 255 || g != 255 || b != 255 {
			t.Errorf("text color = %d,%d,%d, want white", r, g, b)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	h := newHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewWithScreen(display.Options{}, s)
	if err := b.Run(ctx, h); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	// The simulation screen defaults to 80x25.
	if w := h.Window().InnerWidth(); w != 80*Scale {
		t.Errorf("window width = %d, want %d", w, 80*Scale)
	}
}
