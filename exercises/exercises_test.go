// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package exercises

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/glex/page"
)

func TestNames(t *testing.T) {
	if got := Names(); !slices.Equal(got, []string{"hw1", "hw2"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestStart(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			ex, err := Start(context.Background(), name, page.NewWindow(), nil)
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			ex.Render()
		})
	}
	if _, err := Start(context.Background(), "hw9", page.NewWindow(), nil); err == nil {
		t.Error("Start(hw9) succeeded")
	}
}

func TestStartFailureReturnsNil(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			win := page.NewWindow()
			win.Document().GetElementByID(page.CanvasID).Remove()
			ex, err := Start(context.Background(), name, win, nil)
			if !errors.Is(err, page.ErrNoCanvas) {
				t.Errorf("err = %v, want ErrNoCanvas", err)
			}
			if ex != nil {
				t.Errorf("exercise = %#v, want nil", ex)
			}
		})
	}
}
