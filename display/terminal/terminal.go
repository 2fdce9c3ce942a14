// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package terminal shows a page in a text terminal using half-block cells.
//
// Importing the package registers the "terminal" display backend. Each
// cell covers Scale×2·Scale page pixels and paints the upper and lower half
// as the foreground and background of '▀'. Overlay text is drawn as
// ordinary characters.
package terminal

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/display"
	"github.com/gogpu/glex/page"
)

// Name is the registry name of the terminal backend.
const Name = "terminal"

// Scale is the number of page pixels per cell column. A cell row covers
// twice as many.
const Scale = 4

const upperHalf = '▀'

// Backend is the terminal backend.
type Backend struct {
	opts   display.Options
	screen tcell.Screen
}

// New creates a terminal backend drawing to the controlling terminal.
func New(opts display.Options) *Backend {
	return &Backend{opts: opts}
}

// NewWithScreen creates a backend drawing to screen, which Run initializes
// and finalizes.
func NewWithScreen(opts display.Options, screen tcell.Screen) *Backend {
	return &Backend{opts: opts, screen: screen}
}

// Name implements display.Backend.
func (b *Backend) Name() string { return Name }

// Run takes over the terminal until Escape, Ctrl-C or q is pressed, or ctx
// is done.
func (b *Backend) Run(ctx context.Context, host *display.Host) error {
	screen := b.screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	cols, rows := screen.Size()
	host.Resize(cols*Scale, rows*2*Scale)
	glex.Logger().Info("display: terminal started", "cols", cols, "rows", rows)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(b.opts.Rate()))
	defer ticker.Stop()

	paint(screen, host)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if handle(screen, host, ev) {
				glex.Logger().Info("display: terminal closed")
				return nil
			}
		case <-ticker.C:
			if host.Dirty() {
				paint(screen, host)
			}
		}
	}
}

// handle applies one terminal event to the host and reports whether the
// user asked to quit.
func handle(screen tcell.Screen, host *display.Host, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		host.Resize(cols*Scale, rows*2*Scale)
		screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return ev.Rune() == 'q'
		}
		if key, ok := keyName(ev.Key()); ok {
			host.KeyDown(key)
		}
	}
	return false
}

func keyName(k tcell.Key) (string, bool) {
	switch k {
	case tcell.KeyUp:
		return page.KeyArrowUp, true
	case tcell.KeyDown:
		return page.KeyArrowDown, true
	case tcell.KeyLeft:
		return page.KeyArrowLeft, true
	case tcell.KeyRight:
		return page.KeyArrowRight, true
	}
	return "", false
}

// paint draws the current scene onto screen.
func paint(screen tcell.Screen, host *display.Host) {
	img, texts := host.Scene()
	cols, rows := screen.Size()

	// Background of each cell, for text drawn over it.
	under := make([]tcell.Color, cols*rows)
	for row := range rows {
		for col := range cols {
			x, y := col*Scale, row*2*Scale
			top := average(img, image.Rect(x, y, x+Scale, y+Scale))
			bottom := average(img, image.Rect(x, y+Scale, x+Scale, y+2*Scale))
			under[row*cols+col] = mix(top, bottom)
			st := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(col, row, upperHalf, nil, st)
		}
	}

	for _, t := range texts {
		row := t.Rect.Min.Y / (2 * Scale)
		col := t.Rect.Min.X / Scale
		if row < 0 || row >= rows {
			continue
		}
		fg := rgb(t.Color)
		for _, r := range t.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if col < 0 {
				col += w
				continue
			}
			if col+w > cols {
				break
			}
			st := tcell.StyleDefault.Foreground(fg).Background(under[row*cols+col])
			screen.SetContent(col, row, r, nil, st)
			col += w
		}
	}
	screen.Show()
}

// average returns the mean color of img over r. Pixels outside img count
// as black.
func average(img *image.RGBA, r image.Rectangle) tcell.Color {
	var sr, sg, sb, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.RGBAAt(x, y)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			n++
		}
	}
	if n == 0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	return tcell.NewRGBColor(int32(sr/n), int32(sg/n), int32(sb/n))
}

func mix(a, b tcell.Color) tcell.Color {
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	return tcell.NewRGBColor((ar+br)/2, (ag+bg)/2, (ab+bb)/2)
}

func rgb(c glex.RGBA) tcell.Color {
	n := color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

var errNotTerminal = errors.New("stdin and stdout must both be terminals")

func check() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}
	return nil
}

func init() {
	display.Register(display.Driver{
		Name: Name,
		Rank: 50,
		Open: func(opts display.Options) (display.Backend, error) {
			return New(opts), nil
		},
		Check: check,
	})
}
