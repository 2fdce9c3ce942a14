// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Driver describes a display backend that backends add from init:
//
//	import _ "github.com/gogpu/glex/display/window"
//
//	b, err := display.Select(opts)              // best usable driver
//	b, err := display.Open("terminal", opts)    // explicit
type Driver struct {
	Name string

	// Rank orders Select; the highest usable driver wins. The bundled
	// drivers use 100 for the desktop window, 50 for the terminal and 10
	// for headless.
	Rank int

	// Scripted drivers replay Options.Script and write Options.Snapshot.
	// Options carrying either can only be opened by a scripted driver.
	Scripted bool

	// Open creates the backend.
	Open func(Options) (Backend, error)

	// Check reports why the driver cannot run in this process. A nil
	// Check means it always can.
	Check func() error
}

func (d Driver) check() error {
	if d.Check == nil {
		return nil
	}
	return d.Check()
}

// Registry holds drivers by name. The package-level functions use a
// process-wide registry.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

var drivers Registry

// Register adds d to the process-wide registry, replacing a driver of the
// same name.
func Register(d Driver) { drivers.Register(d) }

// Unregister removes the named driver from the process-wide registry.
func Unregister(name string) { drivers.Unregister(name) }

// Names returns the registered driver names, highest rank first.
func Names() []string { return drivers.Names() }

// Lookup returns the named driver.
func Lookup(name string) (Driver, bool) { return drivers.Lookup(name) }

// Open creates a backend from the named driver.
func Open(name string, opts Options) (Backend, error) { return drivers.Open(name, opts) }

// Select creates a backend from the highest ranked driver that can serve
// opts.
func Select(opts Options) (Backend, error) { return drivers.Select(opts) }

// Register adds d, replacing a driver of the same name. It panics if d has
// no name or no Open func.
func (r *Registry) Register(d Driver) {
	if d.Name == "" || d.Open == nil {
		panic(fmt.Sprintf("display: Register of incomplete driver %q", d.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drivers == nil {
		r.drivers = make(map[string]Driver)
	}
	r.drivers[d.Name] = d
}

// Unregister removes the named driver.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drivers, name)
}

// Lookup returns the named driver.
func (r *Registry) Lookup(name string) (Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[name]
	return d, ok
}

// Names returns the driver names, highest rank first and then by name.
func (r *Registry) Names() []string {
	ranked := r.ranked()
	names := make([]string, len(ranked))
	for i, d := range ranked {
		names[i] = d.Name
	}
	return names
}

func (r *Registry) ranked() []Driver {
	r.mu.RLock()
	ds := make([]Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		ds = append(ds, d)
	}
	r.mu.RUnlock()
	slices.SortFunc(ds, func(a, b Driver) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ds
}

// Open creates a backend from the named driver after checking that it can
// run here and can serve opts.
func (r *Registry) Open(name string, opts Options) (Backend, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return nil, &UnknownBackendError{Name: name, Known: r.Names()}
	}
	return open(d, opts)
}

// Select tries the drivers that can serve opts from the highest rank down
// and returns the first backend that opens. The error lists why each one
// was passed over.
func (r *Registry) Select(opts Options) (Backend, error) {
	errs := []error{ErrNoBackendAvailable}
	for _, d := range r.ranked() {
		b, err := open(d, opts)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func open(d Driver, opts Options) (Backend, error) {
	if opts.Scripted() && !d.Scripted {
		return nil, &UnavailableError{Name: d.Name, Err: ErrNotScripted}
	}
	if err := d.check(); err != nil {
		return nil, &UnavailableError{Name: d.Name, Err: err}
	}
	b, err := d.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("display: open %s: %w", d.Name, err)
	}
	return b, nil
}

var (
	// ErrNoBackendAvailable is returned by Select when no driver could be
	// opened. It is joined with the reason for each driver.
	ErrNoBackendAvailable = errors.New("display: no backend available")

	// ErrNotScripted means the options carry a script or snapshot the
	// driver cannot replay.
	ErrNotScripted = errors.New("driver does not replay scripts or write snapshots")
)

// UnknownBackendError is returned by Open for an unregistered name.
type UnknownBackendError struct {
	Name  string
	Known []string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("display: backend not found: %s (have %s)", e.Name, strings.Join(e.Known, ", "))
}

// UnavailableError means a registered driver cannot run here or cannot
// serve the options.
type UnavailableError struct {
	Name string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("display: %s unavailable: %v", e.Name, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
