// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Device is the host graphics device as seen from behind the interception
// layer.
//
// Every method forwards to the original, unhooked device function, so the
// engine can pass a call through untouched or submit a patched version of
// it. Adapters exist for a D3D9 device (backend/d3d9) and a WebGPU render
// pass (backend/wgpu); [Recorder] stands in for a real device in tests and
// capture replay.
//
// Key principle: the engine RECEIVES the device on every call, it never
// creates or owns one. Two calls belong to the same device when their
// Device values compare equal, so implementations must be comparable
// (pointer types in practice).
type Device interface {
	SetVertexShader(s Shader) error
	SetPixelShader(s Shader) error

	// SetVertexShaderConstantF uploads len(data)/4 float4 registers
	// starting at register start.
	SetVertexShaderConstantF(start int, data []float32) error
	SetPixelShaderConstantF(start int, data []float32) error

	SetViewport(vp Viewport) error
	SetScissorRect(r Rect) error
	SetScissorTest(enabled bool) error

	// RenderState returns the depth, alpha-test and blend state currently
	// set on the device.
	RenderState() (StateBlock, error)
	SetRenderState(s StateBlock) error

	Draw(call DrawCall) error
	EndScene() error
}

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StagePixel
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vs"
	case StagePixel:
		return "ps"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Viewport mirrors the D3D9 viewport: a pixel rectangle plus depth range.
type Viewport struct {
	X, Y          uint32
	Width, Height uint32
	MinZ, MaxZ    float32
}

// Aspect returns Width/Height, or 0 for an empty viewport.
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// Rect is a scissor rectangle in pixels, right and bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the rectangle width, never negative.
func (r Rect) Width() int32 {
	return max(r.Right-r.Left, 0)
}

// Height returns the rectangle height, never negative.
func (r Rect) Height() int32 {
	return max(r.Bottom-r.Top, 0)
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// PrimitiveType is the topology of a draw call, numbered as in D3D9.
type PrimitiveType uint8

const (
	PointList     PrimitiveType = 1
	LineList      PrimitiveType = 2
	LineStrip     PrimitiveType = 3
	TriangleList  PrimitiveType = 4
	TriangleStrip PrimitiveType = 5
	TriangleFan   PrimitiveType = 6
)

// VertexCount returns how many vertices (or indices) n primitives consume.
func (p PrimitiveType) VertexCount(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	switch p {
	case PointList:
		return n
	case LineList:
		return n * 2
	case LineStrip:
		return n + 1
	case TriangleList:
		return n * 3
	case TriangleStrip, TriangleFan:
		return n + 2
	default:
		return 0
	}
}

// DrawCall is one draw or indexed draw, with the D3D9 argument set.
type DrawCall struct {
	Indexed   bool
	Primitive PrimitiveType

	// StartVertex is used by non-indexed draws.
	StartVertex uint32

	// Indexed draws only.
	BaseVertex  int32
	MinIndex    uint32
	NumVertices uint32
	StartIndex  uint32

	PrimitiveCount uint32
}

// PresentParameters is the subset of the swap chain parameters the engine
// reads during device negotiation.
type PresentParameters struct {
	BackBufferWidth  uint32
	BackBufferHeight uint32
	Windowed         bool
	RefreshRate      uint32
}

// IsProbe reports whether pp describes the 1x1, 0 Hz throwaway device some
// hosts create while probing capabilities.
func (pp PresentParameters) IsProbe() bool {
	return pp.BackBufferWidth == 1 && pp.BackBufferHeight == 1 && pp.RefreshRate == 0
}
