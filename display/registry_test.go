// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"context"
	"errors"
	"image"
	"slices"
	"testing"
)

type stubBackend struct{ name string }

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Run(context.Context, *Host) error { return nil }

func stubDriver(name string, rank int) Driver {
	return Driver{
		Name: name,
		Rank: rank,
		Open: func(Options) (Backend, error) { return &stubBackend{name: name}, nil },
	}
}

func TestRegistryLookup(t *testing.T) {
	var r Registry
	r.Register(stubDriver("test", 50))

	d, ok := r.Lookup("test")
	if !ok {
		t.Fatal("registered driver not found")
	}
	if d.Name != "test" || d.Rank != 50 {
		t.Errorf("driver = %+v", d)
	}

	r.Unregister("test")
	if _, ok := r.Lookup("test"); ok {
		t.Error("driver should be gone after Unregister")
	}
}

func TestRegistryRegisterIncomplete(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register without Open did not panic")
		}
	}()
	var r Registry
	r.Register(Driver{Name: "broken"})
}

func TestRegistrySelectOrder(t *testing.T) {
	var r Registry
	r.Register(stubDriver("low", 10))
	high := stubDriver("high", 100)
	high.Check = func() error { return errors.New("no screen") }
	r.Register(high)
	r.Register(stubDriver("mid", 50))
	r.Register(stubDriver("also-mid", 50))

	if got, want := r.Names(), []string{"high", "also-mid", "mid", "low"}; !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	b, err := r.Select(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "also-mid" {
		t.Errorf("Select picked %q, want also-mid", b.Name())
	}
}

func TestRegistrySelectScripted(t *testing.T) {
	var r Registry
	r.Register(stubDriver("interactive", 100))
	replay := stubDriver("replay", 1)
	replay.Scripted = true
	r.Register(replay)

	b, err := r.Select(Options{Script: []Step{{Resize: image.Pt(10, 10)}}})
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "replay" {
		t.Errorf("Select picked %q for a script, want replay", b.Name())
	}

	_, err = r.Open("interactive", Options{Snapshot: "out.png"})
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) || !errors.Is(err, ErrNotScripted) {
		t.Errorf("err = %v, want ErrNotScripted", err)
	}
}

func TestRegistrySelectReasons(t *testing.T) {
	var r Registry
	if _, err := r.Select(Options{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty registry err = %v", err)
	}

	boom := errors.New("no screen")
	r.Register(Driver{
		Name: "broken",
		Rank: 100,
		Open: func(Options) (Backend, error) { return nil, boom },
	})
	off := stubDriver("off", 1)
	noTTY := errors.New("not a tty")
	off.Check = func() error { return noTTY }
	r.Register(off)

	_, err := r.Select(Options{})
	for _, want := range []error{ErrNoBackendAvailable, boom, noTTY} {
		if !errors.Is(err, want) {
			t.Errorf("err = %v, want it to wrap %v", err, want)
		}
	}
}

func TestRegistryOpenUnknown(t *testing.T) {
	var r Registry
	r.Register(stubDriver("a", 1))
	var unknown *UnknownBackendError
	if _, err := r.Open("missing", Options{}); !errors.As(err, &unknown) || unknown.Name != "missing" {
		t.Fatalf("err = %v, want UnknownBackendError", err)
	}
	if !slices.Equal(unknown.Known, []string{"a"}) {
		t.Errorf("Known = %v", unknown.Known)
	}
}

func TestHeadlessRegistered(t *testing.T) {
	if !slices.Contains(Names(), HeadlessName) {
		t.Fatalf("Names = %v, missing %q", Names(), HeadlessName)
	}
	b, err := Open(HeadlessName, Options{Snapshot: "x.png"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != HeadlessName {
		t.Errorf("Name = %q", b.Name())
	}
}
