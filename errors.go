// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"errors"
	"fmt"
)

// Sentinel causes recorded alongside the GL error code.
var (
	ErrDeleted      = errors.New("glex: object deleted")
	ErrNotLinked    = errors.New("glex: program not linked")
	ErrNoProgram    = errors.New("glex: no current program")
	ErrNoBuffer     = errors.New("glex: no buffer bound")
	ErrOutOfRange   = errors.New("glex: access out of range")
	ErrWrongProgram = errors.New("glex: location belongs to another program")
	ErrUnsupported  = errors.New("glex: not supported")
)

// GLError describes the first error recorded since the last GetError.
type GLError struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *GLError) Error() string {
	return fmt.Sprintf("glex: %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *GLError) Unwrap() error {
	return e.Err
}
