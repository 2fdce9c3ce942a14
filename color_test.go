// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"image/color"
	"testing"
)

func TestRGBA_Color(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.NRGBA
	}{
		{"opaque black", Black, color.NRGBA{0, 0, 0, 255}},
		{"opaque white", White, color.NRGBA{255, 255, 255, 255}},
		{"opaque red", Red, color.NRGBA{255, 0, 0, 255}},
		{"transparent", Transparent, color.NRGBA{}},
		{"50% alpha red", RGBA{1, 0, 0, 0.5}, color.NRGBA{255, 0, 0, 128}},
		{"out of range", RGBA{2, -1, 0.5, 1}, color.NRGBA{255, 0, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Color(); got != tt.want {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBA_Roundtrip(t *testing.T) {
	original := RGBA{0.8, 0.2, 0.4, 1}
	got := FromColor(original.Color())
	const tolerance = 1.0 / 255
	if absDiff(original.R, got.R) > tolerance ||
		absDiff(original.G, got.G) > tolerance ||
		absDiff(original.B, got.B) > tolerance ||
		absDiff(original.A, got.A) > tolerance {
		t.Errorf("roundtrip: %v → %v", original, got)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#f00", Red},
		{"00ff00", Green},
		{"#0000ffff", Blue},
		{"#fff0", RGBA{1, 1, 1, 0}},
		{"nope", Black},
		{"12g4", Black},
		{"#abcdez", Black},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCSSColor(t *testing.T) {
	tests := []struct {
		in     string
		want   RGBA
		wantOK bool
	}{
		{"white", White, true},
		{" Red ", Red, true},
		{"#000", Black, true},
		{"transparent", Transparent, true},
		{"#12", RGBA{}, false},
		{"#nope", RGBA{}, false},
		{"#12g4", RGBA{}, false},
		{"chartreuse", RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCSSColor(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCSSColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	nan := 0.0
	nan /= nan
	for _, tt := range []struct{ in, want float64 }{
		{-1, 0}, {0.25, 0.25}, {3, 1}, {nan, 0},
	} {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
