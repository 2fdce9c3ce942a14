// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/glex"
)

// HeadlessName is the registry name of the headless backend.
const HeadlessName = "headless"

// Headless replays a scripted list of events without a screen and
// optionally saves the final frame as PNG.
type Headless struct {
	opts Options
	last *image.RGBA
}

// NewHeadless creates a headless backend.
func NewHeadless(opts Options) *Headless {
	return &Headless{opts: opts}
}

// Name implements Backend.
func (b *Headless) Name() string { return HeadlessName }

// Run replays the script, composing a frame after every step.
func (b *Headless) Run(ctx context.Context, host *Host) error {
	glex.Logger().Info("display: headless run", "steps", len(b.opts.Script))
	b.last = host.Frame()
	for i, st := range b.opts.Script {
		if err := ctx.Err(); err != nil {
			return err
		}
		if st.Resize != (image.Point{}) {
			host.Resize(st.Resize.X, st.Resize.Y)
		} else {
			host.KeyDown(st.Key)
		}
		b.last = host.Frame()
		glex.Logger().Debug("display: headless step", "index", i, "key", st.Key, "resize", st.Resize)
	}
	if b.opts.Snapshot == "" {
		return nil
	}
	if err := savePNG(b.opts.Snapshot, b.last); err != nil {
		return fmt.Errorf("display: snapshot: %w", err)
	}
	glex.Logger().Info("display: snapshot written", "path", b.opts.Snapshot)
	return nil
}

// Last returns the most recent frame, or nil before Run.
func (b *Headless) Last() *image.RGBA {
	return b.last
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func init() {
	Register(Driver{
		Name:     HeadlessName,
		Rank:     10,
		Scripted: true,
		Open: func(opts Options) (Backend, error) {
			return NewHeadless(opts), nil
		},
	})
}
