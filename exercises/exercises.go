// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package exercises lists the runnable exercises. Each one lives in its
// own subpackage and sets itself up against a page.Window.
package exercises

import (
	"context"
	"fmt"
	"sort"

	"github.com/gogpu/glex/exercises/movequad"
	"github.com/gogpu/glex/exercises/quadrants"
	"github.com/gogpu/glex/glutil"
	"github.com/gogpu/glex/page"
)

// Exercise is a running exercise.
type Exercise interface {
	Render()
}

// StartFunc sets up an exercise on win. loader may be nil to use the
// exercise's embedded assets.
type StartFunc func(ctx context.Context, win *page.Window, loader *glutil.Loader) (Exercise, error)

var registry = map[string]StartFunc{
	"hw1": func(_ context.Context, win *page.Window, _ *glutil.Loader) (Exercise, error) {
		p, err := quadrants.Run(win)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	"hw2": func(ctx context.Context, win *page.Window, loader *glutil.Loader) (Exercise, error) {
		a, err := movequad.Setup(ctx, win, loader)
		if err != nil {
			return nil, err
		}
		return a, nil
	},
}

// Names returns the registered exercise names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start sets up the named exercise.
func Start(ctx context.Context, name string, win *page.Window, loader *glutil.Loader) (Exercise, error) {
	start, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("exercises: unknown exercise %q", name)
	}
	return start(ctx, win, loader)
}
