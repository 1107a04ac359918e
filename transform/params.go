// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package transform

// ReferenceAspect is the aspect ratio the title's UI is authored for.
const ReferenceAspect = 16.0 / 9.0

// Params holds the aspect correction parameters for one back-buffer size.
//
// Params is the single source of truth for both the render-side correction
// and the pointer remap. It is recomputed on the render thread whenever the
// back buffer or the relevant settings change, never patched field by field.
type Params struct {
	NativeWidth  float64
	NativeHeight float64
	TargetAspect float64

	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Options controls how Compute derives Params.
type Options struct {
	// Enabled is the aspect correction toggle.
	Enabled bool

	// Force computes the widescreen parameters even when Enabled is false.
	Force bool

	// ManualOffsetX replaces the computed horizontal offset when AutoOffset
	// is false.
	ManualOffsetX float64
	AutoOffset    bool

	// PointerOffsetY is the vertical pointer offset applied by Forward and
	// Inverse on widescreen displays.
	PointerOffsetY float64
}

// DefaultOptions returns options with correction enabled and an
// automatically computed offset.
func DefaultOptions() Options {
	return Options{Enabled: true, AutoOffset: true}
}

// Identity returns parameters that leave every coordinate unchanged.
func Identity(width, height uint32) Params {
	return Params{
		NativeWidth:  float64(width),
		NativeHeight: float64(height),
		TargetAspect: ReferenceAspect,
		ScaleX:       1,
		ScaleY:       1,
	}
}

// Compute derives correction parameters for a back buffer of the given size.
//
// Displays that are not wider than 16:9 get identity parameters: the UI is
// only ever stretched horizontally, never pillarboxed vertically. For wider
// displays a centered 16:9 region is fitted to the full height, ScaleX maps
// that region onto the back buffer and OffsetX is the width of one side bar.
func Compute(width, height uint32, opts Options) Params {
	p := Identity(width, height)
	if width == 0 || height == 0 {
		return p
	}
	if !opts.Enabled && !opts.Force {
		return p
	}
	if !IsWider(width, height) {
		return p
	}

	region := RegionWidth(height)
	p.ScaleX = float64(width) / float64(region)
	p.OffsetX = float64((int(width) - region) / 2)
	if !opts.AutoOffset {
		p.OffsetX = opts.ManualOffsetX
	}
	p.OffsetY = opts.PointerOffsetY
	return p
}

// RegionWidth returns the width in pixels of a 16:9 region spanning height.
func RegionWidth(height uint32) int {
	return int(float64(height) * 16 / 9)
}

// IsWider reports whether width x height is wider than 16:9.
func IsWider(width, height uint32) bool {
	if height == 0 {
		return false
	}
	return float64(width)/float64(height) > ReferenceAspect
}

// Active reports whether p applies any correction.
func (p Params) Active() bool {
	return p.ScaleX != 1 || p.ScaleY != 1 || p.OffsetX != 0 || p.OffsetY != 0
}

// Aspect returns the native aspect ratio, or 0 for an empty back buffer.
func (p Params) Aspect() float64 {
	if p.NativeHeight == 0 {
		return 0
	}
	return p.NativeWidth / p.NativeHeight
}

// AspectScale returns how much wider the native aspect is than the target.
// It is 1 for empty or reference-shaped back buffers.
func (p Params) AspectScale() float64 {
	a := p.Aspect()
	if a == 0 || p.TargetAspect == 0 {
		return 1
	}
	return a / p.TargetAspect
}

// Point is a 2D coordinate in either display or game space.
type Point struct {
	X, Y float64
}

// Forward maps a display-space point (an OS cursor position) into game space.
func (p Params) Forward(pt Point) Point {
	return Point{
		X: (pt.X - p.OffsetX) * p.ScaleX,
		Y: (pt.Y - p.OffsetY) * p.ScaleX,
	}
}

// Inverse maps a game-space point back into display space.
// Inverse(Forward(pt)) == pt up to floating-point error.
func (p Params) Inverse(pt Point) Point {
	return Point{
		X: pt.X/p.ScaleX + p.OffsetX,
		Y: pt.Y/p.ScaleX + p.OffsetY,
	}
}

// ToNDC maps v in [0, extent] to normalized device coordinates [-1, 1].
func ToNDC(v, extent float64) float64 {
	if extent == 0 {
		return 0
	}
	return 2*(v/extent) - 1
}

// FromNDC maps a normalized device coordinate back into [0, extent].
func FromNDC(n, extent float64) float64 {
	return (n*extent + extent) / 2
}

// RemapSpan maps the horizontal span [lo, hi] of a surface extent pixels
// wide into the centered 16:9 region of that surface.
func (p Params) RemapSpan(lo, hi, extent float64) (float64, float64) {
	if extent == 0 || p.ScaleX == 0 {
		return lo, hi
	}
	region := extent / p.ScaleX
	remap := func(v float64) float64 {
		return FromNDC(ToNDC(v, extent), region) + p.OffsetX
	}
	return remap(lo), remap(hi)
}
