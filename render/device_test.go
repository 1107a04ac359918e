// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPrimitiveVertexCount(t *testing.T) {
	tests := []struct {
		prim PrimitiveType
		n    uint32
		want uint32
	}{
		{PointList, 5, 5},
		{LineList, 5, 10},
		{LineStrip, 5, 6},
		{TriangleList, 2, 6},
		{TriangleStrip, 2, 4},
		{TriangleFan, 4, 6},
		{TriangleList, 0, 0},
		{PrimitiveType(0), 3, 0},
	}
	for _, tt := range tests {
		if got := tt.prim.VertexCount(tt.n); got != tt.want {
			t.Errorf("PrimitiveType(%d).VertexCount(%d) = %d, want %d", tt.prim, tt.n, got, tt.want)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}
	if r.Width() != 100 || r.Height() != 50 {
		t.Errorf("size = %dx%d, want 100x50", r.Width(), r.Height())
	}
	if r.Empty() {
		t.Error("Empty() = true, want false")
	}
	inverted := Rect{Left: 10, Right: 5, Bottom: 10}
	if inverted.Width() != 0 || !inverted.Empty() {
		t.Errorf("inverted rect width = %d, empty = %v", inverted.Width(), inverted.Empty())
	}
}

func TestPresentParametersIsProbe(t *testing.T) {
	if !(PresentParameters{BackBufferWidth: 1, BackBufferHeight: 1}).IsProbe() {
		t.Error("1x1@0Hz IsProbe() = false, want true")
	}
	if (PresentParameters{BackBufferWidth: 1, BackBufferHeight: 1, RefreshRate: 60}).IsProbe() {
		t.Error("1x1@60Hz IsProbe() = true, want false")
	}
	if (PresentParameters{BackBufferWidth: 2560, BackBufferHeight: 1080}).IsProbe() {
		t.Error("2560x1080 IsProbe() = true, want false")
	}
}

func TestRecorderSnapshotsDrawState(t *testing.T) {
	r := NewRecorder(1920, 1080)
	if r.State.DepthCompare != gputypes.CompareFunctionLessEqual {
		t.Errorf("default DepthCompare = %v, want LessEqual", r.State.DepthCompare)
	}

	vp := Viewport{X: 10, Width: 100, Height: 100, MaxZ: 1}
	_ = r.SetViewport(vp)
	_ = r.Draw(DrawCall{Primitive: TriangleList, PrimitiveCount: 1})
	_ = r.SetViewport(Viewport{Width: 1920, Height: 1080, MaxZ: 1})

	if len(r.Draws) != 1 {
		t.Fatalf("len(Draws) = %d, want 1", len(r.Draws))
	}
	if r.Draws[0].Viewport != vp {
		t.Errorf("draw viewport = %+v, want %+v", r.Draws[0].Viewport, vp)
	}
	if r.Viewport.Width != 1920 {
		t.Errorf("final viewport width = %d, want 1920", r.Viewport.Width)
	}
}

func TestRecorderDrawErr(t *testing.T) {
	r := NewRecorder(640, 480)
	want := errors.New("device lost")
	r.DrawErr = want
	if err := r.Draw(DrawCall{}); !errors.Is(err, want) {
		t.Errorf("Draw() = %v, want %v", err, want)
	}
	if len(r.Draws) != 1 {
		t.Errorf("failed draw not recorded")
	}
}

func TestRecorderLastConstants(t *testing.T) {
	r := NewRecorder(640, 480)
	if r.LastConstants(StageVertex) != nil {
		t.Error("LastConstants on empty recorder should be nil")
	}
	_ = r.SetVertexShaderConstantF(1, []float32{1, 2, 3, 4})
	_ = r.SetPixelShaderConstantF(1, []float32{5, 6, 7, 8})
	_ = r.SetVertexShaderConstantF(2, []float32{9, 9, 9, 9})

	if got := r.LastConstants(StageVertex); got[0] != 9 {
		t.Errorf("LastConstants(vs)[0] = %v, want 9", got[0])
	}
	if got := r.LastConstants(StagePixel); got[0] != 5 {
		t.Errorf("LastConstants(ps)[0] = %v, want 5", got[0])
	}
}

func TestMemoryShader(t *testing.T) {
	s := NewMemoryShader([]byte{1, 2, 3})
	if _, err := s.Bytecode(make([]byte, 2)); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short Bytecode() err = %v, want ErrShortBuffer", err)
	}
	buf := make([]byte, s.BytecodeSize())
	n, err := s.Bytecode(buf)
	if err != nil || n != 3 {
		t.Errorf("Bytecode() = %d, %v, want 3, nil", n, err)
	}
	if s.Fetches != 2 {
		t.Errorf("Fetches = %d, want 2", s.Fetches)
	}
}
