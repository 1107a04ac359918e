// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"testing"

	"github.com/gogpu/aspect/render"
)

type fakeInterceptor struct {
	fail    map[Target]bool
	detours map[Target]any
	calls   int
}

func (f *fakeInterceptor) Intercept(t Target, detour any) (any, error) {
	f.calls++
	if f.fail[t] {
		return nil, ErrNotInstalled
	}
	if f.detours == nil {
		f.detours = make(map[Target]any)
	}
	f.detours[t] = detour
	return t.String(), nil
}

func TestInstallReportsPartialFailure(t *testing.T) {
	e := New(nil)
	ic := &fakeInterceptor{fail: map[Target]bool{TargetSetScissorRect: true}}

	report := e.Install(ic)
	if len(report) != len(Targets()) {
		t.Fatalf("report covers %d targets, want %d", len(report), len(Targets()))
	}
	for target, ok := range report {
		if want := target != TargetSetScissorRect; ok != want {
			t.Errorf("report[%v] = %v, want %v", target, ok, want)
		}
	}
	if _, ok := e.Original(TargetSetScissorRect); ok {
		t.Error("failed target has an original")
	}
	if orig, ok := e.Original(TargetDraw); !ok || orig != "draw" {
		t.Errorf("Original(draw) = %v, %v", orig, ok)
	}

	// Retrying only intercepts the missing target.
	ic.fail = nil
	before := ic.calls
	report = e.Install(ic)
	if !report[TargetSetScissorRect] {
		t.Error("retry did not install the scissor hook")
	}
	if got := ic.calls - before; got != 1 {
		t.Errorf("retry intercepted %d targets, want 1", got)
	}
	if got := len(e.Installed()); got != len(Targets()) {
		t.Errorf("Installed() = %d targets, want %d", got, len(Targets()))
	}
}

func TestDetoursRouteToEngine(t *testing.T) {
	e := New(nil)
	ic := &fakeInterceptor{}
	e.Install(ic)

	dev := render.NewRecorder(2560, 1080)
	present, ok := ic.detours[TargetPresent].(PresentDetour)
	if !ok {
		t.Fatalf("present detour has type %T", ic.detours[TargetPresent])
	}
	present(dev, render.PresentParameters{BackBufferWidth: 2560, BackBufferHeight: 1080})
	if e.Device() != render.Device(dev) {
		t.Error("present detour did not reach the engine")
	}

	draw := ic.detours[TargetDrawIndexed].(DrawDetour)
	if err := draw(dev, render.DrawCall{Indexed: true, Primitive: render.TriangleList, PrimitiveCount: 1}); err != nil {
		t.Fatal(err)
	}
	if len(dev.Draws) != 1 {
		t.Errorf("draws = %d, want 1", len(dev.Draws))
	}

	ic.detours[TargetEndSwap].(SwapDetour)()
	if e.Stats().Frames != 1 {
		t.Errorf("Frames = %d, want 1", e.Stats().Frames)
	}
}

func TestTargetNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, target := range Targets() {
		name := target.String()
		if seen[name] {
			t.Errorf("duplicate target name %q", name)
		}
		seen[name] = true
	}
	if got := Target(99).String(); got != "Target(99)" {
		t.Errorf("Target(99).String() = %q", got)
	}
}
