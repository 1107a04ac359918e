// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package transform

import (
	"math"
	"testing"
)

func TestComputeIdentityForNarrowDisplays(t *testing.T) {
	sizes := []struct {
		name string
		w, h uint32
	}{
		{"16:9 1080p", 1920, 1080},
		{"16:9 720p", 1280, 720},
		{"16:10", 1920, 1200},
		{"4:3", 1024, 768},
		{"5:4", 1280, 1024},
		{"portrait", 1080, 1920},
		{"empty", 0, 0},
	}
	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(tt.w, tt.h, DefaultOptions())
			if p.ScaleX != 1 || p.ScaleY != 1 {
				t.Errorf("scale = (%v, %v), want (1, 1)", p.ScaleX, p.ScaleY)
			}
			if p.OffsetX != 0 || p.OffsetY != 0 {
				t.Errorf("offset = (%v, %v), want (0, 0)", p.OffsetX, p.OffsetY)
			}
			if p.Active() {
				t.Error("Active() = true, want false")
			}
		})
	}
}

func TestComputeUltrawide(t *testing.T) {
	tests := []struct {
		name        string
		w, h        uint32
		wantScale   float64
		wantOffsetX float64
	}{
		{"2560x1080", 2560, 1080, 4.0 / 3.0, 320},
		{"3440x1440", 3440, 1440, 3440.0 / 2560.0, 440},
		{"5760x1080", 5760, 1080, 3, 1920},
		{"3840x1200", 3840, 1200, 3840.0 / 2133.0, 853},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(tt.w, tt.h, DefaultOptions())
			if math.Abs(p.ScaleX-tt.wantScale) > 1e-9 {
				t.Errorf("ScaleX = %v, want %v", p.ScaleX, tt.wantScale)
			}
			if p.OffsetX != tt.wantOffsetX {
				t.Errorf("OffsetX = %v, want %v", p.OffsetX, tt.wantOffsetX)
			}
			if p.ScaleY != 1 {
				t.Errorf("ScaleY = %v, want 1", p.ScaleY)
			}
		})
	}
}

func TestComputeDisabled(t *testing.T) {
	p := Compute(2560, 1080, Options{AutoOffset: true})
	if p.Active() {
		t.Errorf("disabled correction produced %+v", p)
	}

	forced := Compute(2560, 1080, Options{Force: true, AutoOffset: true})
	if forced.OffsetX != 320 {
		t.Errorf("forced OffsetX = %v, want 320", forced.OffsetX)
	}
}

func TestComputeManualOffset(t *testing.T) {
	p := Compute(2560, 1080, Options{Enabled: true, ManualOffsetX: 164.12, PointerOffsetY: 12})
	if p.OffsetX != 164.12 {
		t.Errorf("OffsetX = %v, want 164.12", p.OffsetX)
	}
	if p.OffsetY != 12 {
		t.Errorf("OffsetY = %v, want 12", p.OffsetY)
	}
}

func TestForwardInverseRoundTrip(t *testing.T) {
	sizes := [][2]uint32{
		{2560, 1080}, {3440, 1440}, {5760, 1080}, {3840, 1080}, {2048, 864}, {1921, 1080},
	}
	for _, sz := range sizes {
		opts := DefaultOptions()
		opts.PointerOffsetY = 7.5
		p := Compute(sz[0], sz[1], opts)
		for x := 0.0; x <= float64(sz[0]); x += float64(sz[0]) / 37 {
			for y := 0.0; y <= float64(sz[1]); y += float64(sz[1]) / 23 {
				in := Point{X: x, Y: y}
				got := p.Inverse(p.Forward(in))
				if math.Abs(got.X-in.X) > 1e-4 || math.Abs(got.Y-in.Y) > 1e-4 {
					t.Fatalf("%dx%d: Inverse(Forward(%v)) = %v", sz[0], sz[1], in, got)
				}
			}
		}
	}
}

func TestForwardMapsRegionOntoViewport(t *testing.T) {
	p := Compute(2560, 1080, DefaultOptions())

	left := p.Forward(Point{X: 320, Y: 0})
	if math.Abs(left.X) > 1e-9 {
		t.Errorf("Forward(320).X = %v, want 0", left.X)
	}
	right := p.Forward(Point{X: 2240, Y: 0})
	if math.Abs(right.X-2560) > 1e-9 {
		t.Errorf("Forward(2240).X = %v, want 2560", right.X)
	}
}

func TestNDC(t *testing.T) {
	tests := []struct {
		v, extent, want float64
	}{
		{0, 1920, -1},
		{960, 1920, 0},
		{1920, 1920, 1},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := ToNDC(tt.v, tt.extent); got != tt.want {
			t.Errorf("ToNDC(%v, %v) = %v, want %v", tt.v, tt.extent, got, tt.want)
		}
		if tt.extent != 0 {
			if got := FromNDC(tt.want, tt.extent); got != tt.v {
				t.Errorf("FromNDC(%v, %v) = %v, want %v", tt.want, tt.extent, got, tt.v)
			}
		}
	}
}

func TestRemapSpan(t *testing.T) {
	p := Compute(2560, 1080, DefaultOptions())
	lo, hi := p.RemapSpan(0, 2560, 2560)
	if math.Abs(lo-320) > 1e-9 || math.Abs(hi-2240) > 1e-9 {
		t.Errorf("RemapSpan(0, 2560) = (%v, %v), want (320, 2240)", lo, hi)
	}

	id := Identity(1920, 1080)
	lo, hi = id.RemapSpan(100, 200, 1920)
	if math.Abs(lo-100) > 1e-9 || math.Abs(hi-200) > 1e-9 {
		t.Errorf("identity RemapSpan = (%v, %v), want (100, 200)", lo, hi)
	}
}
