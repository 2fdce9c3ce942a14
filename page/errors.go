// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import "errors"

var (
	// ErrNoCanvas is returned when an ID does not name a canvas element.
	ErrNoCanvas = errors.New("page: no canvas with that id")

	// ErrHasParent is returned by AppendChild when the child is already
	// in a tree.
	ErrHasParent = errors.New("page: element already has a parent")

	// ErrCycle is returned by AppendChild when the child is an ancestor of
	// the parent.
	ErrCycle = errors.New("page: element would contain itself")
)
