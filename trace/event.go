// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"errors"

	"github.com/gogpu/aspect/render"
)

// Trace errors.
var (
	// ErrUnknownShader is returned when an event references a shader id
	// whose bytecode was never captured.
	ErrUnknownShader = errors.New("trace: unknown shader id")

	// ErrMalformed is returned for events missing their payload.
	ErrMalformed = errors.New("trace: malformed event")
)

// Kind names a captured call.
type Kind string

const (
	KindVertexShader    Kind = "vs"
	KindPixelShader     Kind = "ps"
	KindVertexConstants Kind = "vsc"
	KindPixelConstants  Kind = "psc"
	KindViewport        Kind = "viewport"
	KindScissor         Kind = "scissor"
	KindDraw            Kind = "draw"
	KindEndScene        Kind = "end_scene"
	KindBeginSwap       Kind = "begin_swap"
	KindEndSwap         Kind = "end_swap"
	KindPresent         Kind = "present"
)

// Event is one line of a capture.
//
// Shaders and devices are referred to by capture-local ids starting at 1.
// The bytecode of a shader is stored with the first event that uses it.
// Shader id 0 unbinds the stage.
type Event struct {
	Seq    uint64 `json:"seq"`
	Kind   Kind   `json:"kind"`
	Device uint32 `json:"device,omitempty"`

	Shader uint32 `json:"shader,omitempty"`
	Code   []byte `json:"code,omitempty"`

	Start int       `json:"start,omitempty"`
	Data  []float32 `json:"data,omitempty"`

	Viewport *render.Viewport          `json:"viewport,omitempty"`
	Rect     *render.Rect              `json:"rect,omitempty"`
	Draw     *render.DrawCall          `json:"draw,omitempty"`
	Present  *render.PresentParameters `json:"present,omitempty"`
}

// Sink receives intercepted device calls. The engine implements it; Tap
// wraps one to capture the calls flowing through.
type Sink interface {
	SetVertexShader(dev render.Device, s render.Shader) error
	SetPixelShader(dev render.Device, s render.Shader) error
	SetVertexShaderConstantF(dev render.Device, start int, data []float32) error
	SetPixelShaderConstantF(dev render.Device, start int, data []float32) error
	SetViewport(dev render.Device, vp render.Viewport) error
	SetScissorRect(dev render.Device, r render.Rect) error
	Draw(dev render.Device, call render.DrawCall) error
	EndScene(dev render.Device) error
	BeginSwap()
	EndSwap()
	NegotiatePresent(dev render.Device, pp render.PresentParameters) bool
}
