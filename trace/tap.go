// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"github.com/gogpu/aspect/render"
)

// Tap is a Sink that writes every call to a Writer before passing it on.
// Capture failures are logged once and never reach the caller.
type Tap struct {
	next   Sink
	w      *Writer
	failed bool
}

// NewTap returns a Tap capturing the calls delivered to next.
func NewTap(next Sink, w *Writer) *Tap {
	return &Tap{next: next, w: w}
}

func (t *Tap) check(err error) {
	if err != nil && !t.failed {
		t.failed = true
		slogger().Warn("trace: capture stopped", "err", err)
	}
}

func (t *Tap) emit(dev render.Device, ev Event) {
	if !t.failed {
		t.check(t.w.Emit(dev, ev))
	}
}

// SetVertexShader implements Sink.
func (t *Tap) SetVertexShader(dev render.Device, s render.Shader) error {
	if !t.failed {
		t.check(t.w.EmitShader(dev, KindVertexShader, s))
	}
	return t.next.SetVertexShader(dev, s)
}

// SetPixelShader implements Sink.
func (t *Tap) SetPixelShader(dev render.Device, s render.Shader) error {
	if !t.failed {
		t.check(t.w.EmitShader(dev, KindPixelShader, s))
	}
	return t.next.SetPixelShader(dev, s)
}

// SetVertexShaderConstantF implements Sink.
func (t *Tap) SetVertexShaderConstantF(dev render.Device, start int, data []float32) error {
	t.emit(dev, Event{Kind: KindVertexConstants, Start: start, Data: data})
	return t.next.SetVertexShaderConstantF(dev, start, data)
}

// SetPixelShaderConstantF implements Sink.
func (t *Tap) SetPixelShaderConstantF(dev render.Device, start int, data []float32) error {
	t.emit(dev, Event{Kind: KindPixelConstants, Start: start, Data: data})
	return t.next.SetPixelShaderConstantF(dev, start, data)
}

// SetViewport implements Sink.
func (t *Tap) SetViewport(dev render.Device, vp render.Viewport) error {
	t.emit(dev, Event{Kind: KindViewport, Viewport: &vp})
	return t.next.SetViewport(dev, vp)
}

// SetScissorRect implements Sink.
func (t *Tap) SetScissorRect(dev render.Device, r render.Rect) error {
	t.emit(dev, Event{Kind: KindScissor, Rect: &r})
	return t.next.SetScissorRect(dev, r)
}

// Draw implements Sink.
func (t *Tap) Draw(dev render.Device, call render.DrawCall) error {
	t.emit(dev, Event{Kind: KindDraw, Draw: &call})
	return t.next.Draw(dev, call)
}

// EndScene implements Sink.
func (t *Tap) EndScene(dev render.Device) error {
	t.emit(dev, Event{Kind: KindEndScene})
	return t.next.EndScene(dev)
}

// BeginSwap implements Sink.
func (t *Tap) BeginSwap() {
	t.emit(nil, Event{Kind: KindBeginSwap})
	t.next.BeginSwap()
}

// EndSwap implements Sink.
func (t *Tap) EndSwap() {
	t.emit(nil, Event{Kind: KindEndSwap})
	t.next.EndSwap()
}

// NegotiatePresent implements Sink.
func (t *Tap) NegotiatePresent(dev render.Device, pp render.PresentParameters) bool {
	t.emit(dev, Event{Kind: KindPresent, Present: &pp})
	return t.next.NegotiatePresent(dev, pp)
}

var _ Sink = (*Tap)(nil)
