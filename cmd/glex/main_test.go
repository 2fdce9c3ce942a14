// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/page"
)

func runGlex(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := glex.Logger()
	t.Cleanup(func() { glex.SetLogger(prev) })
	var stderr bytes.Buffer
	err := run(context.Background(), args, &stderr)
	return stderr.String(), err
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRunQuadrantsSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hw1.png")
	if _, err := runGlex(t, "-exercise", "hw1", "-resize", "400x300", "-out", out); err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, out)
	if img.Bounds() != image.Rect(0, 0, 400, 300) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// 300x300 canvas at the page origin; its top-left quadrant is green.
	if got := color.RGBAModel.Convert(img.At(10, 10)); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("top-left = %v, want green", got)
	}
	if got := color.RGBAModel.Convert(img.At(10, 290)); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-left = %v, want blue", got)
	}
}

func TestRunMoveQuadKeys(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hw2.png")
	logs, err := runGlex(t, "-exercise", "hw2", "-width", "600", "-height", "600", "-keys", "up,ArrowRight", "-out", out, "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "key=ArrowRight") {
		t.Errorf("debug log missing dispatched key:\n%s", logs)
	}
	if img := decodePNG(t, out); img.Bounds().Dx() != 600 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown exercise", []string{"-display", "headless", "-exercise", "hw9"}, "unknown exercise"},
		{"unknown display", []string{"-display", "crt"}, "backend not found"},
		{"bad resize", []string{"-resize", "100by200"}, "not WxH"},
		{"bad key list", []string{"-keys", "up,,down"}, "empty key"},
		{"script on terminal", []string{"-display", "terminal", "-keys", "up"}, "terminal unavailable"},
		{"missing shaders", []string{"-exercise", "hw2", "-display", "headless", "-shaders", "/nonexistent/shaders"}, ".wgsl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runGlex(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseKeys(t *testing.T) {
	got, err := parseKeys("up, Down,left,RIGHT,Enter")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{page.KeyArrowUp, page.KeyArrowDown, page.KeyArrowLeft, page.KeyArrowRight, "Enter"}
	if !slices.Equal(got, want) {
		t.Errorf("parseKeys = %v, want %v", got, want)
	}
}

func TestParseSizes(t *testing.T) {
	got, err := parseSizes("640x480, 20x10")
	if err != nil {
		t.Fatal(err)
	}
	if want := []image.Point{{640, 480}, {20, 10}}; !slices.Equal(got, want) {
		t.Errorf("parseSizes = %v, want %v", got, want)
	}
	for _, bad := range []string{"640", "0x10", "ax10", "10x-1"} {
		if _, err := parseSizes(bad); err == nil {
			t.Errorf("parseSizes(%q) succeeded", bad)
		}
	}
}
