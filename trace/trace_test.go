// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/aspect/render"
)

// forwardSink passes every call straight to the device.
type forwardSink struct {
	presents []render.Device
	swaps    int
	shaders  []render.Shader
}

func (f *forwardSink) SetVertexShader(dev render.Device, s render.Shader) error {
	f.shaders = append(f.shaders, s)
	return dev.SetVertexShader(s)
}

func (f *forwardSink) SetPixelShader(dev render.Device, s render.Shader) error {
	f.shaders = append(f.shaders, s)
	return dev.SetPixelShader(s)
}

func (f *forwardSink) SetVertexShaderConstantF(dev render.Device, start int, data []float32) error {
	return dev.SetVertexShaderConstantF(start, data)
}

func (f *forwardSink) SetPixelShaderConstantF(dev render.Device, start int, data []float32) error {
	return dev.SetPixelShaderConstantF(start, data)
}

func (f *forwardSink) SetViewport(dev render.Device, vp render.Viewport) error {
	return dev.SetViewport(vp)
}

func (f *forwardSink) SetScissorRect(dev render.Device, r render.Rect) error {
	return dev.SetScissorRect(r)
}

func (f *forwardSink) Draw(dev render.Device, call render.DrawCall) error {
	return dev.Draw(call)
}

func (f *forwardSink) EndScene(dev render.Device) error { return dev.EndScene() }
func (f *forwardSink) BeginSwap()                       {}
func (f *forwardSink) EndSwap()                         { f.swaps++ }

func (f *forwardSink) NegotiatePresent(dev render.Device, pp render.PresentParameters) bool {
	f.presents = append(f.presents, dev)
	return !pp.IsProbe()
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	tap := NewTap(&forwardSink{}, w)

	primary := render.NewRecorder(2560, 1080)
	probe := render.NewRecorder(1, 1)
	vs := render.NewMemoryShader([]byte{1, 2, 3, 4})

	tap.NegotiatePresent(probe, render.PresentParameters{BackBufferWidth: 1, BackBufferHeight: 1, Windowed: true})
	tap.NegotiatePresent(primary, render.PresentParameters{BackBufferWidth: 2560, BackBufferHeight: 1080})
	_ = tap.SetVertexShader(primary, vs)
	_ = tap.SetVertexShader(primary, vs)
	_ = tap.SetVertexShaderConstantF(primary, 1, []float32{0.5, 2, 1, 1})
	_ = tap.SetViewport(primary, render.Viewport{X: 10, Width: 100, Height: 50, MaxZ: 1})
	_ = tap.SetScissorRect(primary, render.Rect{Right: 5, Bottom: 5})
	_ = tap.Draw(primary, render.DrawCall{Primitive: render.TriangleList, PrimitiveCount: 2})
	_ = tap.EndScene(primary)
	tap.BeginSwap()
	tap.EndSwap()

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	events, n := w.Stats()
	if events != 11 {
		t.Errorf("events = %d, want 11", events)
	}
	if n != int64(buf.Len()) {
		t.Errorf("bytes = %d, want %d", n, buf.Len())
	}
	return &buf
}

func TestCaptureStoresBytecodeOnce(t *testing.T) {
	buf := capture(t)
	if got := strings.Count(buf.String(), `"code"`); got != 1 {
		t.Errorf("bytecode stored %d times, want 1", got)
	}
}

func TestCaptureReplay(t *testing.T) {
	buf := capture(t)

	dev := render.NewRecorder(2560, 1080)
	sink := &forwardSink{}
	p := NewPlayer(dev)
	stats, err := p.Play(context.Background(), NewReader(buf), sink)
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := Stats{Events: 11, Draws: 1, Frames: 1, Devices: 2, Shaders: 1, Bytecode: 4}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("primary draws = %d, want 1", len(dev.Draws))
	}
	if got := dev.Draws[0].Viewport; got.X != 10 || got.Width != 100 {
		t.Errorf("draw viewport = %+v", got)
	}
	if got := dev.LastConstants(render.StageVertex); len(got) != 4 || got[0] != 0.5 {
		t.Errorf("constants = %v", got)
	}

	if len(sink.presents) != 2 || sink.presents[0] == render.Device(dev) || sink.presents[1] != render.Device(dev) {
		t.Error("probe device replayed on the primary device")
	}
	if len(sink.shaders) != 2 || sink.shaders[0] != sink.shaders[1] {
		t.Error("second bind did not reuse the replayed shader")
	}
	ms, ok := sink.shaders[0].(*render.MemoryShader)
	if !ok || !bytes.Equal(ms.Code, []byte{1, 2, 3, 4}) {
		t.Errorf("replayed shader = %#v", sink.shaders[0])
	}
	if sink.swaps != 1 {
		t.Errorf("swaps = %d, want 1", sink.swaps)
	}
}

func TestApplyErrors(t *testing.T) {
	p := NewPlayer(render.NewRecorder(1, 1))
	sink := &forwardSink{}

	if err := p.Apply(Event{Kind: KindPixelShader, Shader: 7}, sink); !errors.Is(err, ErrUnknownShader) {
		t.Errorf("unknown shader error = %v", err)
	}
	if err := p.Apply(Event{Kind: KindViewport}, sink); !errors.Is(err, ErrMalformed) {
		t.Errorf("viewport without payload error = %v", err)
	}
	if err := p.Apply(Event{Kind: KindVertexShader}, sink); err != nil {
		t.Errorf("unbind error = %v", err)
	}
	if err := p.Apply(Event{Kind: "future"}, sink); err != nil {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestPlayStopsOnBadInput(t *testing.T) {
	p := NewPlayer(render.NewRecorder(1, 1))
	_, err := p.Play(context.Background(), NewReader(strings.NewReader("{\"seq\":1,\"kind\":\"end_scene\"}\n{oops")), &forwardSink{})
	if err == nil {
		t.Error("Play() accepted malformed input")
	}
	if p.Stats().Events != 1 {
		t.Errorf("Events = %d, want 1", p.Stats().Events)
	}
}

func TestPlayHonorsContext(t *testing.T) {
	buf := capture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPlayer(render.NewRecorder(1, 1)).Play(ctx, NewReader(buf), &forwardSink{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play() error = %v, want context.Canceled", err)
	}
}
