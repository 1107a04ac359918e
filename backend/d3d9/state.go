// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package d3d9

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	d3d "github.com/gonutz/d3d9"

	"github.com/gogpu/aspect/render"
)

// ErrUnmapped is returned for render state values without a Direct3D 9
// equivalent.
var ErrUnmapped = errors.New("d3d9: render state has no equivalent")

type mapping[T comparable] struct {
	gpu T
	d3d uint32
}

var compareFuncs = []mapping[gputypes.CompareFunction]{
	{gputypes.CompareFunctionNever, uint32(d3d.CMP_NEVER)},
	{gputypes.CompareFunctionLess, uint32(d3d.CMP_LESS)},
	{gputypes.CompareFunctionEqual, uint32(d3d.CMP_EQUAL)},
	{gputypes.CompareFunctionLessEqual, uint32(d3d.CMP_LESSEQUAL)},
	{gputypes.CompareFunctionGreater, uint32(d3d.CMP_GREATER)},
	{gputypes.CompareFunctionNotEqual, uint32(d3d.CMP_NOTEQUAL)},
	{gputypes.CompareFunctionGreaterEqual, uint32(d3d.CMP_GREATEREQUAL)},
	{gputypes.CompareFunctionAlways, uint32(d3d.CMP_ALWAYS)},
}

var blendFactors = []mapping[gputypes.BlendFactor]{
	{gputypes.BlendFactorZero, uint32(d3d.BLEND_ZERO)},
	{gputypes.BlendFactorOne, uint32(d3d.BLEND_ONE)},
	{gputypes.BlendFactorSrcAlpha, uint32(d3d.BLEND_SRCALPHA)},
	{gputypes.BlendFactorOneMinusSrcAlpha, uint32(d3d.BLEND_INVSRCALPHA)},
	{gputypes.BlendFactorDstAlpha, uint32(d3d.BLEND_DESTALPHA)},
	{gputypes.BlendFactorOneMinusDstAlpha, uint32(d3d.BLEND_INVDESTALPHA)},
}

var blendOps = []mapping[gputypes.BlendOperation]{
	{gputypes.BlendOperationAdd, uint32(d3d.BLENDOP_ADD)},
	{gputypes.BlendOperationSubtract, uint32(d3d.BLENDOP_SUBTRACT)},
	{gputypes.BlendOperationReverseSubtract, uint32(d3d.BLENDOP_REVSUBTRACT)},
	{gputypes.BlendOperationMin, uint32(d3d.BLENDOP_MIN)},
	{gputypes.BlendOperationMax, uint32(d3d.BLENDOP_MAX)},
}

func toD3D[T comparable](table []mapping[T], v T) (uint32, error) {
	for _, m := range table {
		if m.gpu == v {
			return m.d3d, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrUnmapped, v)
}

func fromD3D[T comparable](table []mapping[T], v uint32) (T, error) {
	for _, m := range table {
		if m.d3d == v {
			return m.gpu, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: value %d", ErrUnmapped, v)
}

// RenderState implements render.Device.
func (d *Device) RenderState() (render.StateBlock, error) {
	var (
		s    render.StateBlock
		errs []error
	)
	get := func(state d3d.RENDERSTATETYPE) uint32 {
		v, err := d.dev.GetRenderState(state)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	conv := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	s.DepthTest = get(d3d.RS_ZENABLE) != 0
	s.DepthCompare, err = fromD3D(compareFuncs, get(d3d.RS_ZFUNC))
	conv(err)
	s.AlphaTest = get(d3d.RS_ALPHATESTENABLE) != 0
	s.AlphaCompare, err = fromD3D(compareFuncs, get(d3d.RS_ALPHAFUNC))
	conv(err)
	s.AlphaRef = uint8(get(d3d.RS_ALPHAREF))
	s.BlendEnable = get(d3d.RS_ALPHABLENDENABLE) != 0
	s.Blend.Src, err = fromD3D(blendFactors, get(d3d.RS_SRCBLEND))
	conv(err)
	s.Blend.Dst, err = fromD3D(blendFactors, get(d3d.RS_DESTBLEND))
	conv(err)
	s.Blend.Op, err = fromD3D(blendOps, get(d3d.RS_BLENDOP))
	conv(err)
	return s, errors.Join(errs...)
}

// SetRenderState implements render.Device. Values without an equivalent
// are reported and the remaining states are still applied.
func (d *Device) SetRenderState(s render.StateBlock) error {
	var errs []error
	set := func(state d3d.RENDERSTATETYPE, v uint32, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		if derr := d.dev.SetRenderState(state, v); derr != nil {
			errs = append(errs, derr)
		}
	}

	set(d3d.RS_ZENABLE, boolValue(s.DepthTest), nil)
	v, err := toD3D(compareFuncs, s.DepthCompare)
	set(d3d.RS_ZFUNC, v, err)
	set(d3d.RS_ALPHATESTENABLE, boolValue(s.AlphaTest), nil)
	v, err = toD3D(compareFuncs, s.AlphaCompare)
	set(d3d.RS_ALPHAFUNC, v, err)
	set(d3d.RS_ALPHAREF, uint32(s.AlphaRef), nil)
	set(d3d.RS_ALPHABLENDENABLE, boolValue(s.BlendEnable), nil)
	v, err = toD3D(blendFactors, s.Blend.Src)
	set(d3d.RS_SRCBLEND, v, err)
	v, err = toD3D(blendFactors, s.Blend.Dst)
	set(d3d.RS_DESTBLEND, v, err)
	v, err = toD3D(blendOps, s.Blend.Op)
	set(d3d.RS_BLENDOP, v, err)
	return errors.Join(errs...)
}
