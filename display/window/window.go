// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows a page in a resizable desktop window.
//
// Importing the package registers the "window" display backend. The
// window's client area is the page: resizing it dispatches resize events,
// and the arrow keys dispatch keydown events with OS-style repeat.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/display"
	"github.com/gogpu/glex/page"
)

// Name is the registry name of the window backend.
const Name = "window"

// Key repeat timing in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

var arrowKeys = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyArrowUp, page.KeyArrowUp},
	{ebiten.KeyArrowDown, page.KeyArrowDown},
	{ebiten.KeyArrowLeft, page.KeyArrowLeft},
	{ebiten.KeyArrowRight, page.KeyArrowRight},
}

// Backend is the desktop window backend.
type Backend struct {
	opts display.Options
}

// New creates a window backend.
func New(opts display.Options) *Backend {
	return &Backend{opts: opts}
}

// Name implements display.Backend.
func (b *Backend) Name() string { return Name }

// Run opens the window and blocks until it is closed or ctx is done.
func (b *Backend) Run(ctx context.Context, host *display.Host) error {
	win := host.Window()
	title := b.opts.Title
	if title == "" {
		title = "glex"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(max(win.InnerWidth(), 1), max(win.InnerHeight(), 1))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(b.opts.Rate())

	glex.Logger().Info("display: window opened", "title", title)
	g := &game{ctx: ctx, host: host}
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	glex.Logger().Info("display: window closed")
	return ctx.Err()
}

type game struct {
	ctx  context.Context
	host *display.Host

	// Size reported by the last Layout.
	width, height int

	img   *image.RGBA
	frame *ebiten.Image
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.width > 0 && g.height > 0 {
		g.host.Resize(g.width, g.height)
	}
	for _, k := range arrowKeys {
		if repeats(inpututil.KeyPressDuration(k.key)) {
			g.host.KeyDown(k.name)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil || g.host.Dirty() {
		g.img = g.host.Frame()
		b := g.img.Bounds()
		if g.frame == nil || g.frame.Bounds().Size() != b.Size() {
			if g.frame != nil {
				g.frame.Deallocate()
			}
			g.frame = ebiten.NewImage(max(b.Dx(), 1), max(b.Dy(), 1))
		}
		if !b.Empty() {
			g.frame.WritePixels(g.img.Pix)
		}
	}
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// repeats reports whether a key held for d ticks produces a keydown this
// tick: on the first tick, then every repeatInterval ticks after
// repeatDelay.
func repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

var errNoDisplay = errors.New("neither DISPLAY nor WAYLAND_DISPLAY is set")

// check reports why a window cannot be opened. On Linux and the BSDs that
// needs an X11 or Wayland display.
func check(goos string, getenv func(string) string) error {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		if getenv("DISPLAY") == "" && getenv("WAYLAND_DISPLAY") == "" {
			return errNoDisplay
		}
		return nil
	case "windows", "darwin":
		return nil
	default:
		return fmt.Errorf("no window system on %s", goos)
	}
}

func init() {
	display.Register(display.Driver{
		Name: Name,
		Rank: 100,
		Open: func(opts display.Options) (display.Backend, error) {
			return New(opts), nil
		},
		Check: func() error { return check(runtime.GOOS, os.Getenv) },
	})
}
