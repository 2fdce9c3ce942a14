// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shade compiles WGSL shader stages with naga and executes them on
// the CPU.
//
// Compile runs the naga front end (parse, lower, validate) and selects the
// entry point of the requested stage. Link pairs a vertex and a fragment
// module into a Program, matching vertex outputs to fragment inputs by
// @location and collecting the var<uniform> globals of both stages.
// Program.RunVertex and Program.RunFragment interpret the naga IR of the
// entry points one invocation at a time.
//
// All scalar arithmetic is carried out in float64. Integer results are
// wrapped to 32 bits, booleans are stored as 0 and 1.
package shade
