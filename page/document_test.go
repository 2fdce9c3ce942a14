// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import (
	"errors"
	"testing"
)

func TestGetElementByID(t *testing.T) {
	w := NewWindow()
	doc := w.Document()

	div := doc.CreateElement("div")
	div.SetID("overlay")
	if doc.GetElementByID("overlay") != nil {
		t.Fatal("detached element found")
	}
	if err := doc.Body().AppendChild(div); err != nil {
		t.Fatal(err)
	}
	if got := doc.GetElementByID("overlay"); got != div {
		t.Errorf("GetElementByID = %v, want the div", got)
	}

	// First match in document order wins.
	dup := doc.CreateElement("span")
	dup.SetID("overlay")
	_ = doc.Body().AppendChild(dup)
	if got := doc.GetElementByID("overlay"); got != div {
		t.Error("later duplicate shadowed the first element")
	}

	div.Remove()
	if got := doc.GetElementByID("overlay"); got != dup {
		t.Error("removed element still found")
	}
}

func TestAppendChildErrors(t *testing.T) {
	doc := NewWindow().Document()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	if err := a.AppendChild(b); err != nil {
		t.Fatal(err)
	}
	if err := doc.Body().AppendChild(b); !errors.Is(err, ErrHasParent) {
		t.Errorf("AppendChild(attached) = %v, want ErrHasParent", err)
	}
	if err := b.AppendChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("AppendChild(ancestor) = %v, want ErrCycle", err)
	}
	if err := a.AppendChild(a); !errors.Is(err, ErrCycle) {
		t.Errorf("AppendChild(self) = %v, want ErrCycle", err)
	}
}

func TestRemoveDetached(t *testing.T) {
	doc := NewWindow().Document()
	e := doc.CreateElement("p")
	e.Remove()
	if e.Parent() != nil {
		t.Error("detached element has a parent")
	}
}

func TestCanvasLookup(t *testing.T) {
	doc := NewWindow().Document()
	p := doc.CreateElement("p")
	p.SetID("text")
	_ = doc.Body().AppendChild(p)

	if _, err := doc.Canvas("text"); !errors.Is(err, ErrNoCanvas) {
		t.Errorf("Canvas(non-canvas) = %v, want ErrNoCanvas", err)
	}
	if _, err := doc.Canvas("missing"); !errors.Is(err, ErrNoCanvas) {
		t.Errorf("Canvas(missing) = %v, want ErrNoCanvas", err)
	}
}

func TestWalkOrder(t *testing.T) {
	doc := NewWindow().Document()
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	c := doc.CreateElement("c")
	_ = doc.Body().AppendChild(a)
	_ = a.AppendChild(b)
	_ = doc.Body().AppendChild(c)

	var tags []string
	doc.Walk(func(e *Element) bool {
		tags = append(tags, e.Tag())
		return true
	})
	want := []string{"body", "canvas", "a", "b", "c"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}
