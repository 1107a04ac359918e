// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"math"
	"sync/atomic"
)

// Float is a float64 that is loaded and stored atomically.
type Float struct {
	bits atomic.Uint64
}

// Load returns the current value.
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store sets the value.
func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Add adds delta and returns the new value.
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		v := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}

// Live is the configuration shared between the input hook thread and the
// render thread.
//
// Every field the hook thread may change is a single machine word written
// with an atomic store. The render thread never reads Live on the hot path:
// it takes a Snapshot once per frame and derives everything that depends
// on several fields from that snapshot. Settings that are only changed by
// loading a file (thresholds, debug fingerprints) live in an immutable
// copy swapped as a whole.
type Live struct {
	AspectCorrection atomic.Bool
	CenterUI         atomic.Bool
	FixMinimap       atomic.Bool
	VertFixMap       atomic.Bool
	FixDOF           atomic.Bool
	KillDOF          atomic.Bool
	AllowScissor     atomic.Bool
	RemapScissor     atomic.Bool
	AllowBackground  atomic.Bool
	MapScale         Float

	MouseYOffset Float
	HUDXOffset   Float
	AutoCalc     atomic.Bool
	Locked       atomic.Bool

	OnTop         atomic.Int32
	TempOnTop     atomic.Bool
	AspectCorrect atomic.Bool
	NameShift     Float

	CullVS atomic.Uint32
	CullPS atomic.Uint32

	// TraceFrames is the number of upcoming frames to trace.
	TraceFrames   atomic.Int32
	TraceShaders  atomic.Bool
	TraceUI       atomic.Bool
	TraceMinimap  atomic.Bool
	TraceNametags atomic.Bool

	cold atomic.Pointer[Settings]
}

// NewLive returns a Live initialized from s.
func NewLive(s Settings) *Live {
	l := &Live{}
	l.Apply(s)
	return l
}

// Apply stores every field of s.
func (l *Live) Apply(s Settings) {
	l.AspectCorrection.Store(s.Render.AspectCorrection)
	l.CenterUI.Store(s.Render.CenterUI)
	l.FixMinimap.Store(s.Render.FixMinimap)
	l.VertFixMap.Store(s.Render.VertFixMap)
	l.FixDOF.Store(s.Render.FixDOF)
	l.KillDOF.Store(s.Render.KillDOF)
	l.AllowScissor.Store(s.Render.AllowScissor)
	l.RemapScissor.Store(s.Render.RemapScissor)
	l.AllowBackground.Store(s.Render.AllowBackground)
	l.MapScale.Store(s.Render.MapScale)

	l.MouseYOffset.Store(s.Scaling.MouseYOffset)
	l.HUDXOffset.Store(s.Scaling.HUDXOffset)
	l.AutoCalc.Store(s.Scaling.AutoCalc)
	l.Locked.Store(s.Scaling.Locked)

	l.OnTop.Store(int32(s.Nametags.OnTop))
	l.AspectCorrect.Store(s.Nametags.AspectCorrect)
	l.NameShift.Store(s.Nametags.NameShift)

	l.CullVS.Store(uint32(s.Debug.CullVS))
	l.CullPS.Store(uint32(s.Debug.CullPS))

	l.TraceShaders.Store(s.Trace.Shaders)
	l.TraceUI.Store(s.Trace.UI)
	l.TraceMinimap.Store(s.Trace.Minimap)
	l.TraceNametags.Store(s.Trace.Nametags)

	cold := s
	cold.Thresholds.ReservedDepths = append([]float64(nil), s.Thresholds.ReservedDepths...)
	l.cold.Store(&cold)
}

// Snapshot returns the current settings. Each field is read atomically;
// fields changed concurrently may come from different moments, which is
// acceptable because no two hook-thread fields must change together.
func (l *Live) Snapshot() Settings {
	var s Settings
	if c := l.cold.Load(); c != nil {
		s = *c
	} else {
		s = Defaults()
	}

	s.Render.AspectCorrection = l.AspectCorrection.Load()
	s.Render.CenterUI = l.CenterUI.Load()
	s.Render.FixMinimap = l.FixMinimap.Load()
	s.Render.VertFixMap = l.VertFixMap.Load()
	s.Render.FixDOF = l.FixDOF.Load()
	s.Render.KillDOF = l.KillDOF.Load()
	s.Render.AllowScissor = l.AllowScissor.Load()
	s.Render.RemapScissor = l.RemapScissor.Load()
	s.Render.AllowBackground = l.AllowBackground.Load()
	s.Render.MapScale = l.MapScale.Load()

	s.Scaling.MouseYOffset = l.MouseYOffset.Load()
	s.Scaling.HUDXOffset = l.HUDXOffset.Load()
	s.Scaling.AutoCalc = l.AutoCalc.Load()
	s.Scaling.Locked = l.Locked.Load()

	s.Nametags.OnTop = int(l.OnTop.Load())
	s.Nametags.AspectCorrect = l.AspectCorrect.Load()
	s.Nametags.NameShift = l.NameShift.Load()

	s.Debug.CullVS = Hex(l.CullVS.Load())
	s.Debug.CullPS = Hex(l.CullPS.Load())

	s.Trace.Shaders = l.TraceShaders.Load()
	s.Trace.UI = l.TraceUI.Load()
	s.Trace.Minimap = l.TraceMinimap.Load()
	s.Trace.Nametags = l.TraceNametags.Load()
	return s
}

// ShouldDrawOnTop reports whether nametags are drawn over world geometry,
// either permanently or while the hold key is down.
func (l *Live) ShouldDrawOnTop() bool {
	return l.OnTop.Load() != OnTopOff || l.TempOnTop.Load()
}

// CycleOnTop advances the on-top technique 0 -> 1 -> 2 -> 0 and returns the
// new value.
func (l *Live) CycleOnTop() int {
	for {
		old := l.OnTop.Load()
		next := old + 1
		if next > OnTopXRay {
			next = OnTopOff
		}
		if l.OnTop.CompareAndSwap(old, next) {
			return int(next)
		}
	}
}

// ConsumeTraceFrame decrements TraceFrames if positive and reports whether
// the current frame is traced.
func (l *Live) ConsumeTraceFrame() bool {
	for {
		n := l.TraceFrames.Load()
		if n <= 0 {
			return false
		}
		if l.TraceFrames.CompareAndSwap(n, n-1) {
			return true
		}
	}
}
