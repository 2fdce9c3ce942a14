// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command glex runs a graphics exercise on a display backend.
//
//	glex -exercise hw1                          # best available display
//	glex -exercise hw2 -display terminal
//	glex -exercise hw2 -keys up,up,left -out hw2.png
//	glex -exercise hw2 -shaders http://localhost:8000/shaders/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gogpu/glex"
	"github.com/gogpu/glex/display"
	_ "github.com/gogpu/glex/display/terminal"
	_ "github.com/gogpu/glex/display/window"
	"github.com/gogpu/glex/exercises"
	"github.com/gogpu/glex/glutil"
	"github.com/gogpu/glex/page"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "glex: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("glex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		exercise = fs.String("exercise", "hw2", "exercise to run: "+strings.Join(exercises.Names(), ", "))
		backend  = fs.String("display", "", "display backend: "+strings.Join(display.Names(), ", ")+" (default: best available)")
		width    = fs.Int("width", page.DefaultInnerWidth, "initial window width")
		height   = fs.Int("height", page.DefaultInnerHeight, "initial window height")
		shaders  = fs.String("shaders", "", "shader base URL or directory (default: embedded shaders)")
		keys     = fs.String("keys", "", "comma-separated keys to replay headless (up, down, left, right or DOM names)")
		resizes  = fs.String("resize", "", "comma-separated WxH window sizes to replay headless before the keys")
		out      = fs.String("out", "", "write the final headless frame to this PNG file")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	glex.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	opts := display.Options{Title: "glex " + *exercise, Snapshot: *out}
	sizes, err := parseSizes(*resizes)
	if err != nil {
		return err
	}
	for _, s := range sizes {
		opts.Script = append(opts.Script, display.Step{Resize: s})
	}
	names, err := parseKeys(*keys)
	if err != nil {
		return err
	}
	for _, k := range names {
		opts.Script = append(opts.Script, display.Step{Key: k})
	}

	var b display.Backend
	if *backend == "" {
		b, err = display.Select(opts)
	} else {
		b, err = display.Open(*backend, opts)
	}
	if err != nil {
		return err
	}

	var loader *glutil.Loader
	if *shaders != "" {
		loader = glutil.NewLoader(*shaders)
	}

	win := page.NewWindow(page.WithInnerSize(*width, *height))
	if _, err := exercises.Start(ctx, *exercise, win, loader); err != nil {
		return err
	}

	host, err := display.NewHost(win)
	if err != nil {
		return err
	}
	defer host.Close()

	glex.Logger().Info("glex: running", "exercise", *exercise, "display", b.Name())
	err = b.Run(ctx, host)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var keyAliases = map[string]string{
	"up":    page.KeyArrowUp,
	"down":  page.KeyArrowDown,
	"left":  page.KeyArrowLeft,
	"right": page.KeyArrowRight,
}

func parseKeys(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var keys []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("-keys: empty key in %q", s)
		}
		if k, ok := keyAliases[strings.ToLower(f)]; ok {
			f = k
		}
		keys = append(keys, f)
	}
	return keys, nil
}

func parseSizes(s string) ([]image.Point, error) {
	if s == "" {
		return nil, nil
	}
	var sizes []image.Point
	for _, f := range strings.Split(s, ",") {
		w, h, ok := strings.Cut(strings.TrimSpace(f), "x")
		if !ok {
			return nil, fmt.Errorf("-resize: %q is not WxH", f)
		}
		x, errW := strconv.Atoi(w)
		y, errH := strconv.Atoi(h)
		if errW != nil || errH != nil || x <= 0 || y <= 0 {
			return nil, fmt.Errorf("-resize: %q is not WxH", f)
		}
		sizes = append(sizes, image.Pt(x, y))
	}
	return sizes, nil
}
