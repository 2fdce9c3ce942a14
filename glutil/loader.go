// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glutil

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glex"
)

// HTTPError reports a response with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("glutil: HTTP error! status: %d", e.StatusCode)
}

// Loader reads shader sources relative to a base: an http(s) URL or a file
// system.
type Loader struct {
	base   *url.URL
	fsys   fs.FS
	client *http.Client
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) bases. The default is
// http.DefaultClient.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// NewLoader returns a loader for base. An http:// or https:// base is
// fetched over HTTP, like a page loading resources relative to its own
// URL; anything else names a local directory.
func NewLoader(base string, opts ...LoaderOption) *Loader {
	l := &Loader{client: http.DefaultClient}
	if u, err := url.Parse(base); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		l.base = u
	} else {
		if base == "" {
			base = "."
		}
		l.fsys = os.DirFS(base)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewFSLoader returns a loader that reads from fsys, typically an
// embed.FS.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, client: http.DefaultClient}
}

// ReadShaderFile returns the contents of path. Every failure is logged
// before it is returned.
func (l *Loader) ReadShaderFile(ctx context.Context, path string) (string, error) {
	text, err := l.load(ctx, path)
	if err != nil {
		logReadError(path, err)
		return "", err
	}
	return text, nil
}

func (l *Loader) load(ctx context.Context, path string) (string, error) {
	if l.base != nil {
		return l.fetch(ctx, path)
	}
	return l.read(path)
}

func logReadError(path string, err error) {
	glex.Logger().Error("Error reading file", "path", path, "err", err)
}

func (l *Loader) fetch(ctx context.Context, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("glutil: fetch %s: %w", path, err)
	}
	u := l.base.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("glutil: fetch %s: %w", path, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("glutil: fetch %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: u.String()}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("glutil: fetch %s: %w", path, err)
	}
	return string(body), nil
}

func (l *Loader) read(path string) (string, error) {
	data, err := fs.ReadFile(l.fsys, strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("glutil: read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadShaderFiles reads every path concurrently and returns the contents
// in path order. It fails if any read fails; the remaining requests are
// cancelled, and reads cut short that way are not logged.
func (l *Loader) ReadShaderFiles(ctx context.Context, paths ...string) ([]string, error) {
	out := make([]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			text, err := l.load(gctx, p)
			if err != nil {
				if gctx.Err() == nil || ctx.Err() != nil {
					logReadError(p, err)
				}
				return err
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
