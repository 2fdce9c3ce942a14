// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glutil holds the helpers shared by the exercises: keeping a
// canvas at a fixed aspect ratio, placing a text overlay over it, loading
// shader sources and building programs from them.
//
// Failures are logged through [glex.Logger] at error level, mirroring the
// console diagnostics a browser page would print.
package glutil
