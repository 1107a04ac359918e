// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package d3d9

import (
	"errors"
	"fmt"

	d3d "github.com/gonutz/d3d9"

	"github.com/gogpu/aspect/render"
)

// ErrForeignShader is returned when a shader not created by this adapter is
// bound.
var ErrForeignShader = errors.New("d3d9: shader does not belong to this device")

// Device adapts a Direct3D 9 device to render.Device. Calls go straight to
// the device; the interception layer must hand Device the original,
// unhooked device methods' receiver.
type Device struct {
	dev *d3d.Device

	vs map[*d3d.VertexShader]*VertexShader
	ps map[*d3d.PixelShader]*PixelShader
}

// Wrap returns an adapter for dev.
func Wrap(dev *d3d.Device) *Device {
	return &Device{
		dev: dev,
		vs:  make(map[*d3d.VertexShader]*VertexShader),
		ps:  make(map[*d3d.PixelShader]*PixelShader),
	}
}

// Unwrap returns the wrapped device.
func (d *Device) Unwrap() *d3d.Device {
	return d.dev
}

// VertexShader returns the render.Shader for s. The same wrapper is
// returned for the same shader object until Forget is called, so shader
// fingerprints are computed once.
func (d *Device) VertexShader(s *d3d.VertexShader) render.Shader {
	if s == nil {
		return nil
	}
	w, ok := d.vs[s]
	if !ok {
		w = &VertexShader{shader: s}
		d.vs[s] = w
	}
	return w
}

// PixelShader returns the render.Shader for s.
func (d *Device) PixelShader(s *d3d.PixelShader) render.Shader {
	if s == nil {
		return nil
	}
	w, ok := d.ps[s]
	if !ok {
		w = &PixelShader{shader: s}
		d.ps[s] = w
	}
	return w
}

// Forget drops the wrappers of released shader objects.
func (d *Device) Forget(vs *d3d.VertexShader, ps *d3d.PixelShader) {
	delete(d.vs, vs)
	delete(d.ps, ps)
}

func check(err d3d.Error) error {
	if err != nil {
		return err
	}
	return nil
}

func boolValue(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// SetVertexShader implements render.Device.
func (d *Device) SetVertexShader(s render.Shader) error {
	var vs *d3d.VertexShader
	if s != nil {
		w, ok := s.(*VertexShader)
		if !ok {
			return fmt.Errorf("%w: %T", ErrForeignShader, s)
		}
		vs = w.shader
	}
	return check(d.dev.SetVertexShader(vs))
}

// SetPixelShader implements render.Device.
func (d *Device) SetPixelShader(s render.Shader) error {
	var ps *d3d.PixelShader
	if s != nil {
		w, ok := s.(*PixelShader)
		if !ok {
			return fmt.Errorf("%w: %T", ErrForeignShader, s)
		}
		ps = w.shader
	}
	return check(d.dev.SetPixelShader(ps))
}

// SetVertexShaderConstantF implements render.Device.
func (d *Device) SetVertexShaderConstantF(start int, data []float32) error {
	return check(d.dev.SetVertexShaderConstantF(uint(start), data))
}

// SetPixelShaderConstantF implements render.Device.
func (d *Device) SetPixelShaderConstantF(start int, data []float32) error {
	return check(d.dev.SetPixelShaderConstantF(uint(start), data))
}

// SetViewport implements render.Device.
func (d *Device) SetViewport(vp render.Viewport) error {
	return check(d.dev.SetViewport(d3d.VIEWPORT{
		X:      vp.X,
		Y:      vp.Y,
		Width:  vp.Width,
		Height: vp.Height,
		MinZ:   vp.MinZ,
		MaxZ:   vp.MaxZ,
	}))
}

// SetScissorRect implements render.Device.
func (d *Device) SetScissorRect(r render.Rect) error {
	return check(d.dev.SetScissorRect(d3d.RECT{
		Left:   r.Left,
		Top:    r.Top,
		Right:  r.Right,
		Bottom: r.Bottom,
	}))
}

// SetScissorTest implements render.Device.
func (d *Device) SetScissorTest(enabled bool) error {
	return check(d.dev.SetRenderState(d3d.RS_SCISSORTESTENABLE, boolValue(enabled)))
}

// Draw implements render.Device.
func (d *Device) Draw(call render.DrawCall) error {
	pt := d3d.PRIMITIVETYPE(call.Primitive)
	if call.Indexed {
		return check(d.dev.DrawIndexedPrimitive(pt,
			int(call.BaseVertex),
			uint(call.MinIndex),
			uint(call.NumVertices),
			uint(call.StartIndex),
			uint(call.PrimitiveCount)))
	}
	return check(d.dev.DrawPrimitive(pt, uint(call.StartVertex), uint(call.PrimitiveCount)))
}

// EndScene implements render.Device.
func (d *Device) EndScene() error {
	return check(d.dev.EndScene())
}

// PresentParameters converts the parameters a host passes to CreateDevice
// or Reset.
func PresentParameters(pp d3d.PRESENT_PARAMETERS) render.PresentParameters {
	return render.PresentParameters{
		BackBufferWidth:  pp.BackBufferWidth,
		BackBufferHeight: pp.BackBufferHeight,
		Windowed:         pp.Windowed != 0,
		RefreshRate:      pp.FullScreen_RefreshRateInHz,
	}
}

var _ render.Device = (*Device)(nil)
