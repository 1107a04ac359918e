// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import "github.com/gogpu/aspect/transform"

// ParamsSource publishes pointer-space parameters, as built by
// [PointerParams]. Params must be safe to call from any goroutine.
type ParamsSource interface {
	Params() transform.Params
}

// PointerParams derives the pointer-space parameters from the render
// parameters of a frame. With UI centering off the UI is not moved, so
// only the vertical offset applies.
func PointerParams(p transform.Params, centerUI bool) transform.Params {
	if !centerUI {
		p.ScaleX = 1
		p.OffsetX = 0
	}
	return p
}

// Remapper converts cursor positions between display space and the game's
// 16:9 space, using the parameters published with the render-side
// correction.
type Remapper struct {
	Source ParamsSource
}

func (r Remapper) params() transform.Params {
	return r.Source.Params()
}

// ToGame maps a display position, as reported by the OS, into game space.
func (r Remapper) ToGame(x, y float64) (float64, float64) {
	pt := r.params().Forward(transform.Point{X: x, Y: y})
	return pt.X, pt.Y
}

// ToScreen maps a game-space position back to the display, as when the
// game warps the cursor.
func (r Remapper) ToScreen(x, y float64) (float64, float64) {
	pt := r.params().Inverse(transform.Point{X: x, Y: y})
	return pt.X, pt.Y
}

// ToScreenRect maps a game-space rectangle to the display, as when the
// game confines the cursor.
func (r Remapper) ToScreenRect(left, top, right, bottom float64) (float64, float64, float64, float64) {
	l, t := r.ToScreen(left, top)
	rr, b := r.ToScreen(right, bottom)
	return l, t, rr, b
}
