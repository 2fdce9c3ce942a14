// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Buffer is a buffer object. Its data store is little-endian bytes.
type Buffer struct {
	data    []byte
	usage   Usage
	deleted bool
}

// Len returns the size of the data store in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

type attribPointer struct {
	enabled    bool
	buffer     *Buffer
	size       int
	typ        DataType
	normalized bool
	stride     int
	offset     int
}

// VertexArray is a vertex array object: attribute pointer state plus the
// element array binding.
type VertexArray struct {
	attribs  [MaxVertexAttribs]attribPointer
	elements *Buffer
	deleted  bool
}

// CreateBuffer creates an empty buffer object.
func (c *RenderingContext) CreateBuffer() *Buffer {
	return &Buffer{}
}

// DeleteBuffer deletes b and unbinds it from the context.
func (c *RenderingContext) DeleteBuffer(b *Buffer) {
	if b == nil || b.deleted {
		return
	}
	b.deleted = true
	if c.arrayBuffer == b {
		c.arrayBuffer = nil
	}
	if c.vao.elements == b {
		c.vao.elements = nil
	}
}

// BindBuffer binds b to target. The element array binding is part of the
// bound vertex array.
func (c *RenderingContext) BindBuffer(target BufferTarget, b *Buffer) {
	if b != nil && b.deleted {
		c.fail(InvalidOperation, "BindBuffer", ErrDeleted)
		return
	}
	switch target {
	case ArrayBuffer:
		c.arrayBuffer = b
	case ElementArrayBuffer:
		c.vao.elements = b
	default:
		c.fail(InvalidEnum, "BindBuffer", fmt.Errorf("target %s: %w", target, ErrUnsupported))
	}
}

func (c *RenderingContext) bound(op string, target BufferTarget) *Buffer {
	var b *Buffer
	switch target {
	case ArrayBuffer:
		b = c.arrayBuffer
	case ElementArrayBuffer:
		b = c.vao.elements
	default:
		c.fail(InvalidEnum, op, fmt.Errorf("target %s: %w", target, ErrUnsupported))
		return nil
	}
	if b == nil {
		c.fail(InvalidOperation, op, ErrNoBuffer)
	}
	return b
}

// BufferData replaces the data store of the buffer bound to target.
func (c *RenderingContext) BufferData(target BufferTarget, data []byte, usage Usage) {
	b := c.bound("BufferData", target)
	if b == nil {
		return
	}
	b.data = append(b.data[:0:0], data...)
	b.usage = usage
}

// BufferDataFloat32 uploads float32 values.
func (c *RenderingContext) BufferDataFloat32(target BufferTarget, data []float32, usage Usage) {
	buf := make([]byte, 0, len(data)*4)
	for _, v := range data {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	c.BufferData(target, buf, usage)
}

// BufferDataUint16 uploads uint16 values, typically indices.
func (c *RenderingContext) BufferDataUint16(target BufferTarget, data []uint16, usage Usage) {
	buf := make([]byte, 0, len(data)*2)
	for _, v := range data {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	c.BufferData(target, buf, usage)
}

// BufferSubData overwrites part of the data store starting at offset.
func (c *RenderingContext) BufferSubData(target BufferTarget, offset int, data []byte) {
	b := c.bound("BufferSubData", target)
	if b == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		c.fail(InvalidValue, "BufferSubData", ErrOutOfRange)
		return
	}
	copy(b.data[offset:], data)
}

// CreateVertexArray creates a vertex array object.
func (c *RenderingContext) CreateVertexArray() *VertexArray {
	return &VertexArray{}
}

// BindVertexArray binds v; nil binds the default vertex array.
func (c *RenderingContext) BindVertexArray(v *VertexArray) {
	if v == nil {
		c.vao = c.defaultVAO
		return
	}
	if v.deleted {
		c.fail(InvalidOperation, "BindVertexArray", ErrDeleted)
		return
	}
	c.vao = v
}

// DeleteVertexArray deletes v, reverting to the default vertex array if v
// is bound.
func (c *RenderingContext) DeleteVertexArray(v *VertexArray) {
	if v == nil || v.deleted {
		return
	}
	v.deleted = true
	if c.vao == v {
		c.vao = c.defaultVAO
	}
}

// VertexAttribPointer describes where attribute index reads its data: the
// buffer currently bound to ArrayBuffer, size components of type typ,
// stride bytes apart (0 means tightly packed), starting offset bytes in.
func (c *RenderingContext) VertexAttribPointer(index, size int, typ DataType, normalized bool, stride, offset int) {
	const op = "VertexAttribPointer"
	switch {
	case index < 0 || index >= MaxVertexAttribs:
		c.fail(InvalidValue, op, fmt.Errorf("index %d: %w", index, ErrOutOfRange))
		return
	case size < 1 || size > 4:
		c.fail(InvalidValue, op, fmt.Errorf("size %d", size))
		return
	case typ.size() == 0:
		c.fail(InvalidEnum, op, fmt.Errorf("type 0x%04X: %w", uint32(typ), ErrUnsupported))
		return
	case stride < 0 || stride > 255 || offset < 0:
		c.fail(InvalidValue, op, fmt.Errorf("stride %d offset %d", stride, offset))
		return
	case stride%typ.size() != 0 || offset%typ.size() != 0:
		c.fail(InvalidOperation, op, errors.New("stride and offset must be multiples of the type size"))
		return
	case c.arrayBuffer == nil:
		c.fail(InvalidOperation, op, ErrNoBuffer)
		return
	}
	a := &c.vao.attribs[index]
	a.buffer = c.arrayBuffer
	a.size = size
	a.typ = typ
	a.normalized = normalized
	a.stride = stride
	a.offset = offset
}

// EnableVertexAttribArray makes attribute index read from its array.
func (c *RenderingContext) EnableVertexAttribArray(index int) {
	c.setAttribArray("EnableVertexAttribArray", index, true)
}

// DisableVertexAttribArray makes attribute index read its generic value.
func (c *RenderingContext) DisableVertexAttribArray(index int) {
	c.setAttribArray("DisableVertexAttribArray", index, false)
}

func (c *RenderingContext) setAttribArray(op string, index int, on bool) {
	if index < 0 || index >= MaxVertexAttribs {
		c.fail(InvalidValue, op, fmt.Errorf("index %d: %w", index, ErrOutOfRange))
		return
	}
	c.vao.attribs[index].enabled = on
}

// VertexAttrib4f sets the generic value of attribute index, used while
// its array is disabled.
func (c *RenderingContext) VertexAttrib4f(index int, x, y, z, w float64) {
	if index < 0 || index >= MaxVertexAttribs {
		c.fail(InvalidValue, "VertexAttrib4f", fmt.Errorf("index %d: %w", index, ErrOutOfRange))
		return
	}
	c.generic[index] = [4]float64{x, y, z, w}
}

// fetch reads attribute a of vertex i into dst. Missing components keep
// the defaults (0, 0, 0, 1).
func (a *attribPointer) fetch(i int, dst *[4]float64) error {
	if a.buffer == nil || a.buffer.deleted {
		return ErrNoBuffer
	}
	n := a.typ.size()
	stride := a.stride
	if stride == 0 {
		stride = a.size * n
	}
	base := a.offset + i*stride
	if base < 0 || base+a.size*n > len(a.buffer.data) {
		return fmt.Errorf("vertex %d: %w", i, ErrOutOfRange)
	}
	*dst = [4]float64{0, 0, 0, 1}
	data := a.buffer.data[base:]
	for k := range a.size {
		var v, scale float64
		switch a.typ {
		case Float:
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[k*4:])))
		case UnsignedByte:
			v, scale = float64(data[k]), 255
		case UnsignedShort:
			v, scale = float64(binary.LittleEndian.Uint16(data[k*2:])), 65535
		case UnsignedInt:
			v, scale = float64(binary.LittleEndian.Uint32(data[k*4:])), 4294967295
		}
		if a.normalized && scale != 0 {
			v /= scale
		}
		dst[k] = v
	}
	return nil
}

// readIndex reads element i of an index buffer.
func readIndex(data []byte, typ DataType, i int) int {
	switch typ {
	case UnsignedByte:
		return int(data[i])
	case UnsignedShort:
		return int(binary.LittleEndian.Uint16(data[i*2:]))
	default:
		return int(binary.LittleEndian.Uint32(data[i*4:]))
	}
}
