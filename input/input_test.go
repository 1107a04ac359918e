// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/transform"
)

type fixedParams transform.Params

func (f fixedParams) Params() transform.Params { return transform.Params(f) }

func wide() fixedParams {
	opts := transform.DefaultOptions()
	opts.PointerOffsetY = 10
	return fixedParams(transform.Compute(2560, 1080, opts))
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRemapper(t *testing.T) {
	r := Remapper{Source: wide()}

	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"left edge of region", 320, 10, 0, 0},
		{"right edge of region", 2240, 10, 2560, 0},
		{"center", 1280, 550, 1280, 720},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := r.ToGame(tt.x, tt.y)
			if !near(gx, tt.wantX) || !near(gy, tt.wantY) {
				t.Errorf("ToGame(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, gx, gy, tt.wantX, tt.wantY)
			}
			sx, sy := r.ToScreen(gx, gy)
			if !near(sx, tt.x) || !near(sy, tt.y) {
				t.Errorf("ToScreen(ToGame) = (%v, %v), want (%v, %v)", sx, sy, tt.x, tt.y)
			}
		})
	}
}

func TestRemapperCenteringOff(t *testing.T) {
	r := Remapper{Source: fixedParams(PointerParams(transform.Params(wide()), false))}

	x, y := r.ToGame(100, 50)
	if x != 100 || y != 40 {
		t.Errorf("ToGame = (%v, %v), want (100, 40)", x, y)
	}
}

func TestPointerParamsCentered(t *testing.T) {
	p := transform.Params(wide())
	if got := PointerParams(p, true); got != p {
		t.Errorf("PointerParams(centered) = %+v, want %+v", got, p)
	}
}

func TestRemapperNarrowDisplay(t *testing.T) {
	r := Remapper{Source: fixedParams(transform.Compute(1920, 1080, transform.DefaultOptions()))}
	x, y := r.ToGame(100, 50)
	if x != 100 || y != 50 {
		t.Errorf("ToGame = (%v, %v), want identity", x, y)
	}
	l, tp, rr, b := r.ToScreenRect(0, 0, 1920, 1080)
	if l != 0 || tp != 0 || rr != 1920 || b != 1080 {
		t.Errorf("ToScreenRect = (%v, %v, %v, %v), want identity", l, tp, rr, b)
	}
}

const chord = ModCtrl | ModShift

func TestHotkeyToggles(t *testing.T) {
	tests := []struct {
		key    Key
		action string
		field  func(l *config.Live) bool
	}{
		{KeyA, "aspect-correction", func(l *config.Live) bool { return l.AspectCorrection.Load() }},
		{KeyZ, "center-ui", func(l *config.Live) bool { return l.CenterUI.Load() }},
		{KeySpace, "lock", func(l *config.Live) bool { return l.Locked.Load() }},
		{KeyV, "vert-fix-map", func(l *config.Live) bool { return l.VertFixMap.Load() }},
		{KeyD, "fix-dof", func(l *config.Live) bool { return l.FixDOF.Load() }},
		{KeyM, "nametag-aspect", func(l *config.Live) bool { return l.AspectCorrect.Load() }},
		{KeyB, "allow-background", func(l *config.Live) bool { return l.AllowBackground.Load() }},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			live := config.NewLive(config.Defaults())
			h := NewHotkeys(live)
			before := tt.field(live)

			action, ok := h.Handle(KeyEvent{Key: tt.key, Mods: chord | ModAlt, Down: true})
			if !ok || action != tt.action {
				t.Fatalf("Handle() = %q, %v, want %q", action, ok, tt.action)
			}
			if tt.field(live) == before {
				t.Error("setting not toggled")
			}

			// Auto-repeat does not toggle again.
			h.Handle(KeyEvent{Key: tt.key, Mods: chord | ModAlt, Down: true, Repeat: true})
			if tt.field(live) == before {
				t.Error("repeat toggled the setting back")
			}
		})
	}
}

func TestHotkeyRequiresChord(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)
	if _, ok := h.Handle(KeyEvent{Key: KeyA, Mods: ModCtrl | ModAlt, Down: true}); ok {
		t.Error("Ctrl+Alt+A handled without Shift")
	}
	if !live.AspectCorrection.Load() {
		t.Error("aspect correction changed")
	}
}

func TestHUDOffsetRespectsLock(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)

	if _, ok := h.Handle(KeyEvent{Key: KeyPeriod, Mods: chord, Down: true}); ok {
		t.Error("offset changed while locked")
	}

	live.Locked.Store(false)
	for range 3 {
		h.Handle(KeyEvent{Key: KeyPeriod, Mods: chord, Down: true, Repeat: true})
	}
	h.Handle(KeyEvent{Key: KeyComma, Mods: chord, Down: true})
	if got := live.HUDXOffset.Load(); !near(got, 2*HUDOffsetStep) {
		t.Errorf("HUDXOffset = %v, want %v", got, 2*HUDOffsetStep)
	}
}

func TestNameShift(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)
	h.Handle(KeyEvent{Key: KeyBracketRight, Mods: chord, Down: true})
	h.Handle(KeyEvent{Key: KeyBracketRight, Mods: chord, Down: true, Repeat: true})
	h.Handle(KeyEvent{Key: KeyBracketLeft, Mods: chord, Down: true})
	if got, want := live.NameShift.Load(), 1.01+NameShiftStep; !near(got, want) {
		t.Errorf("NameShift = %v, want %v", got, want)
	}
}

func TestOnTopKeys(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)

	h.Handle(KeyEvent{Key: KeyN, Mods: chord | ModAlt, Down: true})
	if got := live.OnTop.Load(); got != config.OnTopOff {
		t.Errorf("OnTop after cycle = %d, want %d", got, config.OnTopOff)
	}

	action, _ := h.Handle(KeyEvent{Key: KeyN, Down: true})
	if action != "hold-on-top" || !live.TempOnTop.Load() {
		t.Errorf("hold: action %q, TempOnTop %v", action, live.TempOnTop.Load())
	}
	h.Handle(KeyEvent{Key: KeyN, Down: true, Repeat: true})
	if !live.TempOnTop.Load() {
		t.Error("repeat cleared TempOnTop")
	}
	action, _ = h.Handle(KeyEvent{Key: KeyN})
	if action != "release-on-top" || live.TempOnTop.Load() {
		t.Errorf("release: action %q, TempOnTop %v", action, live.TempOnTop.Load())
	}
}

func TestTraceFrameKey(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)
	h.Handle(KeyEvent{Key: KeyL, Mods: chord | ModAlt, Down: true})
	if !live.ConsumeTraceFrame() {
		t.Error("no frame traced")
	}
	if live.ConsumeTraceFrame() {
		t.Error("more than one frame traced")
	}
}

func TestPump(t *testing.T) {
	live := config.NewLive(config.Defaults())
	h := NewHotkeys(live)

	events := make(chan KeyEvent, 2)
	events <- KeyEvent{Key: KeyA, Mods: chord | ModAlt, Down: true}
	close(events)
	if err := Pump(context.Background(), events, h); err != nil {
		t.Fatalf("Pump() error = %v", err)
	}
	if live.AspectCorrection.Load() {
		t.Error("event not applied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Pump(ctx, make(chan KeyEvent), h); !errors.Is(err, context.Canceled) {
		t.Errorf("Pump() error = %v, want context.Canceled", err)
	}
}
