// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package transform

// Matrix4 is a 4x4 matrix in the row-major layout the host uploads to four
// consecutive vertex shader constant registers:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// The bottom row carries the translation (x, y, z) and w.
type Matrix4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale4 creates a scaling matrix.
func Scale4(x, y, z float32) Matrix4 {
	return Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Translate4 creates a translation matrix.
func Translate4(x, y, z float32) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// MatrixFrom copies the first 16 floats of data into a Matrix4.
// It returns false when data is shorter than four registers.
func MatrixFrom(data []float32) (Matrix4, bool) {
	var m Matrix4
	if len(data) < len(m) {
		return m, false
	}
	copy(m[:], data)
	return m, true
}

// Multiply multiplies two matrices (m * other).
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 16; i += 4 {
		for j := 0; j < 4; j++ {
			out[i+j] = m[i]*other[j] + m[i+1]*other[j+4] + m[i+2]*other[j+8] + m[i+3]*other[j+12]
		}
	}
	return out
}

// Translation returns the x, y, z translation components.
func (m Matrix4) Translation() (x, y, z float32) {
	return m[12], m[13], m[14]
}

// UIFlags carries the per-upload centering decision and the phase flags
// that influence a UI matrix rewrite.
type UIFlags struct {
	// Center re-derives the translation inside the centered 16:9 region.
	Center bool

	// Minimap is set while a minimap session is active.
	Minimap bool

	// MinimapBlip rescales minimap blips back to their authored size.
	MinimapBlip bool

	// Nametag shifts world-space labels by NameShift.
	Nametag bool

	NameShift float32
	MapScale  float32
}

// CorrectUI rewrites a UI transform matrix for the widescreen back buffer
// described by p.
//
// Rotation and scale terms are divided by the aspect scale so the element
// keeps its authored proportions. When flags.Center is set the translation
// is mapped into normalized device coordinates of the 16:9 region and back
// into the native viewport, which equals p.Inverse of the authored position.
func CorrectUI(m Matrix4, p Params, flags UIFlags) Matrix4 {
	arScale := float32(p.AspectScale())
	width := p.NativeWidth
	height := p.NativeHeight
	if p.TargetAspect == 0 {
		return m
	}
	regionHeight := width / p.TargetAspect

	xNDC := ToNDC(float64(m[12])/p.ScaleX, width)
	yNDC := ToNDC(float64(m[13])/p.ScaleY, regionHeight)
	tx := float32(FromNDC(xNDC, width))
	ty := float32(FromNDC(yNDC, height))

	scaled := Scale4(1/arScale, 1/arScale, 1/arScale).Multiply(m)

	out := m
	if flags.Center {
		out[12] = tx + float32(p.OffsetX)
	} else {
		out[12] = scaled[12]
	}
	out[13] = ty

	if flags.Minimap || flags.Center {
		out[0] = scaled[0]
	}
	if flags.Nametag {
		out[12] = tx * arScale * flags.NameShift
		out[0] /= arScale
	}

	out[1] = scaled[1]
	out[4] = scaled[4]
	out[5] = scaled[5]

	if flags.MinimapBlip {
		k := arScale * flags.MapScale
		out[0] *= k
		out[1] *= k
		out[4] *= k
		out[5] *= k
	}
	return out
}

// ScaleMinimapConstants divides the odd components of data by scaleX and the
// even components by scaleY, in place.
func ScaleMinimapConstants(data []float32, p Params) {
	for i := range data {
		if i%2 == 1 {
			data[i] /= float32(p.ScaleX)
		} else {
			data[i] /= float32(p.ScaleY)
		}
	}
}
