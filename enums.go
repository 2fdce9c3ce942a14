// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glex

import "fmt"

// The enumerations below carry the numeric values of their WebGL2
// counterparts so that traces and error messages line up with browser
// tooling.

// Capability is a server-side capability toggled by Enable and Disable.
type Capability uint32

const (
	ScissorTest Capability = 0x0C11
)

func (c Capability) String() string {
	switch c {
	case ScissorTest:
		return "SCISSOR_TEST"
	default:
		return fmt.Sprintf("Capability(0x%04X)", uint32(c))
	}
}

// ClearMask selects the buffers affected by Clear.
type ClearMask uint32

const (
	DepthBufferBit   ClearMask = 0x00000100
	StencilBufferBit ClearMask = 0x00000400
	ColorBufferBit   ClearMask = 0x00004000
)

const allClearBits = DepthBufferBit | StencilBufferBit | ColorBufferBit

// BufferTarget is a buffer binding point.
type BufferTarget uint32

const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("BufferTarget(0x%04X)", uint32(t))
	}
}

// Usage is the expected usage pattern of a buffer's data store. The
// software context accepts it for fidelity and otherwise ignores it.
type Usage uint32

const (
	StreamDraw  Usage = 0x88E0
	StaticDraw  Usage = 0x88E4
	DynamicDraw Usage = 0x88E8
)

// ShaderType identifies a shader stage.
type ShaderType uint32

const (
	FragmentShader ShaderType = 0x8B30
	VertexShader   ShaderType = 0x8B31
)

func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "VERTEX_SHADER"
	case FragmentShader:
		return "FRAGMENT_SHADER"
	default:
		return fmt.Sprintf("ShaderType(0x%04X)", uint32(t))
	}
}

// DataType is the component type of vertex attributes and indices.
type DataType uint32

const (
	UnsignedByte  DataType = 0x1401
	UnsignedShort DataType = 0x1403
	UnsignedInt   DataType = 0x1405
	Float         DataType = 0x1406
)

func (t DataType) size() int {
	switch t {
	case UnsignedByte:
		return 1
	case UnsignedShort:
		return 2
	case UnsignedInt, Float:
		return 4
	default:
		return 0
	}
}

// DrawMode is the primitive type of a draw call.
type DrawMode uint32

const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineLoop      DrawMode = 0x0002
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
	TriangleFan   DrawMode = 0x0006
)

func (m DrawMode) String() string {
	switch m {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineLoop:
		return "LINE_LOOP"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	default:
		return fmt.Sprintf("DrawMode(0x%04X)", uint32(m))
	}
}

// ErrorCode is the sticky error flag reported by GetError.
type ErrorCode uint32

const (
	NoError          ErrorCode = 0
	InvalidEnum      ErrorCode = 0x0500
	InvalidValue     ErrorCode = 0x0501
	InvalidOperation ErrorCode = 0x0502
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	default:
		return fmt.Sprintf("ErrorCode(0x%04X)", uint32(e))
	}
}

// MaxVertexAttribs is the number of generic vertex attribute slots.
const MaxVertexAttribs = 16
