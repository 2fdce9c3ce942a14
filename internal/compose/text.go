// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// DefaultFontSize is used for overlays without a font size.
const DefaultFontSize = 16

type family struct {
	outline *sfnt.Font
	shape   *tsfont.Face
}

type faceKey struct {
	mono bool
	size float64
}

// fontSet maps CSS font families onto the Go fonts: "monospace" selects Go
// Mono and everything else Go Regular.
type fontSet struct {
	mono    family
	regular family
	faces   *faceCache
	shaper  shaping.HarfbuzzShaper
}

func newFontSet() (*fontSet, error) {
	mono, err := loadFamily(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("compose: Go Mono: %w", err)
	}
	regular, err := loadFamily(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("compose: Go Regular: %w", err)
	}
	return &fontSet{mono: mono, regular: regular, faces: newFaceCache(faceCacheLimit)}, nil
}

func loadFamily(ttf []byte) (family, error) {
	outline, err := opentype.Parse(ttf)
	if err != nil {
		return family{}, err
	}
	shape, err := tsfont.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return family{}, err
	}
	return family{outline: outline, shape: shape}, nil
}

func isMono(name string) bool {
	for _, f := range strings.Split(name, ",") {
		switch strings.ToLower(strings.Trim(strings.TrimSpace(f), `"'`)) {
		case "monospace", "go mono":
			return true
		}
	}
	return false
}

func (s *fontSet) family(mono bool) family {
	if mono {
		return s.mono
	}
	return s.regular
}

// face returns a rasterizing face for the family at size pixels.
func (s *fontSet) face(name string, size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	key := faceKey{mono: isMono(name), size: size}
	return s.faces.getOrCreate(key, func() font.Face {
		f, err := opentype.NewFace(s.family(key.mono).outline, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			// Parsed fonts always yield a face for a positive size.
			panic(fmt.Sprintf("compose: %v", err))
		}
		return f
	})
}

// advance measures the shaped width of text in pixels.
func (s *fontSet) advance(name string, size float64, text string) float64 {
	if text == "" {
		return 0
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	runes := []rune(text)
	out := s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.family(isMono(name)).shape,
		Size:      fixed.Int26_6(size * 64),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	})
	return float64(out.Advance) / 64
}

func (s *fontSet) close() error {
	return s.faces.clear()
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func (c *Compositor) drawText(dst draw.Image, b Box) {
	st := b.Element.Style()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(TextColor(st.Color).Color()),
		Face: c.fonts.face(st.FontFamily, st.FontSize),
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(b.Rect.Min.X * 64),
			Y: fixed.Int26_6(b.Baseline * 64),
		},
	}
	d.DrawString(b.Text)
}

// visualOrder reorders s for left-to-right drawing and reports whether its
// paragraph direction is right-to-left.
func visualOrder(s string) (string, bool) {
	if s == "" {
		return s, false
	}
	rtl := firstStrongRTL(s)
	dir := bidi.LeftToRight
	if rtl {
		dir = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(dir)); err != nil {
		return s, rtl
	}
	o, err := p.Order()
	if err != nil {
		return s, rtl
	}
	var sb strings.Builder
	for i := range o.NumRuns() {
		run := o.Run(i)
		if run.Direction() == bidi.RightToLeft {
			sb.WriteString(bidi.ReverseString(run.String()))
		} else {
			sb.WriteString(run.String())
		}
	}
	return sb.String(), rtl
}

func firstStrongRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
	}
	return false
}
