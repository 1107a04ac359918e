// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import (
	"context"

	"github.com/gogpu/aspect/config"
)

// Key is a virtual-key code.
type Key uint16

// Keys used by the default bindings.
const (
	KeySpace        Key = 0x20
	KeyA            Key = 'A'
	KeyB            Key = 'B'
	KeyD            Key = 'D'
	KeyL            Key = 'L'
	KeyM            Key = 'M'
	KeyN            Key = 'N'
	KeyV            Key = 'V'
	KeyZ            Key = 'Z'
	KeyComma        Key = 0xBC
	KeyPeriod       Key = 0xBE
	KeyBracketLeft  Key = 0xDB
	KeyBracketRight Key = 0xDD
)

// Mod is a set of held modifier keys.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
)

// KeyEvent is a key transition delivered by the host's keyboard hook.
type KeyEvent struct {
	Key  Key
	Mods Mod
	Down bool

	// Repeat is set for auto-repeated key-down events.
	Repeat bool
}

// Offsets applied per key press.
const (
	HUDOffsetStep = 0.01
	NameShiftStep = 0.001
)

// Hotkeys applies key bindings to the live configuration. It runs on the
// input hook thread and only performs single-word atomic stores.
type Hotkeys struct {
	live *config.Live

	// OnTopKey cycles the nametag technique with Ctrl+Shift+Alt.
	OnTopKey Key
	// HoldKey shows nametags on top while held.
	HoldKey Key
}

// NewHotkeys returns the default bindings acting on live.
func NewHotkeys(live *config.Live) *Hotkeys {
	return &Hotkeys{live: live, OnTopKey: KeyN, HoldKey: KeyN}
}

func toggle(b interface {
	Load() bool
	Store(bool)
}) {
	b.Store(!b.Load())
}

// Handle applies ev and returns the name of the action it triggered.
func (h *Hotkeys) Handle(ev KeyEvent) (string, bool) {
	l := h.live
	if !ev.Down {
		if ev.Key == h.HoldKey && l.TempOnTop.Load() {
			l.TempOnTop.Store(false)
			return "release-on-top", true
		}
		return "", false
	}

	press := !ev.Repeat
	chord := ev.Mods&(ModCtrl|ModShift) == ModCtrl|ModShift
	alt := ev.Mods&ModAlt != 0

	if chord {
		switch {
		case alt && press && ev.Key == KeyA:
			toggle(&l.AspectCorrection)
			return "aspect-correction", true
		case alt && press && ev.Key == KeyZ:
			toggle(&l.CenterUI)
			return "center-ui", true
		case alt && press && ev.Key == KeySpace:
			toggle(&l.Locked)
			return "lock", true
		case ev.Key == KeyComma:
			if l.Locked.Load() {
				return "", false
			}
			l.HUDXOffset.Add(-HUDOffsetStep)
			return "hud-offset-down", true
		case ev.Key == KeyPeriod:
			if l.Locked.Load() {
				return "", false
			}
			l.HUDXOffset.Add(HUDOffsetStep)
			return "hud-offset-up", true
		case ev.Key == KeyBracketRight:
			l.NameShift.Add(NameShiftStep)
			return "name-shift-up", true
		case ev.Key == KeyBracketLeft:
			l.NameShift.Add(-NameShiftStep)
			return "name-shift-down", true
		case alt && press && ev.Key == KeyV:
			toggle(&l.VertFixMap)
			return "vert-fix-map", true
		case alt && press && ev.Key == KeyL:
			l.TraceFrames.Store(1)
			return "trace-frame", true
		case alt && press && ev.Key == KeyD:
			toggle(&l.FixDOF)
			return "fix-dof", true
		case alt && press && ev.Key == h.OnTopKey:
			l.CycleOnTop()
			return "cycle-on-top", true
		case alt && press && ev.Key == KeyM:
			toggle(&l.AspectCorrect)
			return "nametag-aspect", true
		case alt && press && ev.Key == KeyB:
			toggle(&l.AllowBackground)
			return "allow-background", true
		}
	}

	if press && ev.Key == h.HoldKey {
		l.TempOnTop.Store(true)
		return "hold-on-top", true
	}
	return "", false
}

// Pump applies key events from events until ctx is cancelled or events is
// closed.
func Pump(ctx context.Context, events <-chan KeyEvent, h *Hotkeys) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if action, ok := h.Handle(ev); ok {
				slogger().Debug("input: hotkey", "action", action, "key", ev.Key)
			}
		}
	}
}
