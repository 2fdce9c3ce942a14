// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import "slices"

// Position is the CSS position of an element.
type Position string

const (
	PositionStatic   Position = "static"
	PositionAbsolute Position = "absolute"
	PositionFixed    Position = "fixed"
)

// Style holds the inline style properties the compositor understands.
// Lengths are in page pixels.
type Style struct {
	Position   Position
	Left, Top  float64
	Color      string
	FontFamily string
	FontSize   float64
	ZIndex     int
}

// Element is a node of the document tree.
type Element struct {
	id       string
	tag      string
	style    Style
	text     string
	parent   *Element
	children []*Element
	canvas   *Canvas
}

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.id }

// SetID sets the element's id attribute.
func (e *Element) SetID(id string) { e.id = id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Style returns the element's inline style for reading and writing.
func (e *Element) Style() *Style { return &e.style }

// TextContent returns the element's text.
func (e *Element) TextContent() string { return e.text }

// SetTextContent replaces the element's text.
func (e *Element) SetTextContent(s string) { e.text = s }

// Parent returns the parent element, or nil if e is detached or the body.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Canvas returns the canvas backing e, or nil if e is not a canvas.
func (e *Element) Canvas() *Canvas { return e.canvas }

// AppendChild adds child as the last child of e.
func (e *Element) AppendChild(child *Element) error {
	if child.parent != nil {
		return ErrHasParent
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	child.parent = e
	e.children = append(e.children, child)
	return nil
}

// Remove detaches e from its parent. It is a no-op for detached elements.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// walk visits e and its descendants in document order until fn returns
// false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Document is the element tree of a window.
type Document struct {
	body *Element
}

func newDocument() *Document {
	return &Document{body: &Element{tag: "body"}}
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{tag: tag, style: Style{Position: PositionStatic}}
}

// CreateCanvas creates a detached canvas element with the default size.
func (d *Document) CreateCanvas(id string) *Canvas {
	c := &Canvas{width: DefaultCanvasWidth, height: DefaultCanvasHeight}
	c.el = d.CreateElement("canvas")
	c.el.id = id
	c.el.canvas = c
	return c
}

// GetElementByID returns the first element in document order with the
// given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.body.walk(func(e *Element) bool {
		if e.id == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Canvas returns the canvas element with the given id.
func (d *Document) Canvas(id string) (*Canvas, error) {
	e := d.GetElementByID(id)
	if e == nil || e.canvas == nil {
		return nil, ErrNoCanvas
	}
	return e.canvas, nil
}

// Walk visits every attached element in document order until fn returns
// false.
func (d *Document) Walk(fn func(*Element) bool) {
	d.body.walk(fn)
}
