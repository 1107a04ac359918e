// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/aspect/backend"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
)

// Pass errors.
var (
	// ErrPassEnded is returned when calls are made after EndScene.
	ErrPassEnded = errors.New("wgpu: render pass has already ended")

	// ErrEmptyTarget is returned for a viewport or scissor rectangle
	// outside the render target.
	ErrEmptyTarget = errors.New("wgpu: rectangle outside the render target")

	// ErrUnsupportedPrimitive is returned for topologies WebGPU lacks.
	ErrUnsupportedPrimitive = errors.New("wgpu: unsupported primitive type")
)

func init() {
	backend.Register(backend.BackendWGPU, func(width, height uint32) render.Device {
		return NewPassDevice(nil, width, height)
	})
}

// PassState represents the state of a PassDevice.
type PassState int

const (
	// PassRecording means the pass accepts calls.
	PassRecording PassState = iota
	// PassEnded means EndScene has been called.
	PassEnded
)

// String returns the string representation of PassState.
func (s PassState) String() string {
	switch s {
	case PassRecording:
		return "Recording"
	case PassEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// PassDevice is a render.Device recording into one render pass.
//
// The encoder may be nil, in which case calls are validated and counted
// but nothing is submitted. PassDevice is safe for concurrent use, but the
// underlying encoder is not, so a host must not use it directly while the
// PassDevice is recording.
//
// State Machine:
//
//	Recording -> EndScene() -> Ended -> Begin() -> Recording
//
// Without an encoder EndScene only counts the scene, so a headless device
// accepts a whole multi-frame replay.
type PassDevice struct {
	mu sync.Mutex

	pass          *core.CoreRenderPassEncoder
	width, height uint32
	state         PassState

	vs, ps      render.Shader
	viewport    render.Viewport
	scissor     render.Rect
	scissorTest bool
	renderState render.StateBlock
	constants   [2][shader.ConstantSlots]float32

	draws    int
	vertices uint64
	scenes   int
}

// NewPassDevice returns a device drawing into pass, whose render target is
// width x height pixels.
func NewPassDevice(pass *core.CoreRenderPassEncoder, width, height uint32) *PassDevice {
	return &PassDevice{
		pass:        pass,
		width:       width,
		height:      height,
		viewport:    render.Viewport{Width: width, Height: height, MaxZ: 1},
		renderState: render.DefaultStateBlock(),
	}
}

// State returns the current pass state.
func (d *PassDevice) State() PassState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// checkRecording returns an error if the pass has ended.
// The caller must hold d.mu.
func (d *PassDevice) checkRecording() error {
	if d.state != PassRecording {
		return ErrPassEnded
	}
	return nil
}

// SetVertexShader implements render.Device.
func (d *PassDevice) SetVertexShader(s render.Shader) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set vertex shader: %w", err)
	}
	d.vs = s
	return nil
}

// SetPixelShader implements render.Device.
func (d *PassDevice) SetPixelShader(s render.Shader) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set pixel shader: %w", err)
	}
	d.ps = s
	return nil
}

func (d *PassDevice) setConstants(stage render.Stage, start int, data []float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set %s constants: %w", stage, err)
	}
	off := start * 4
	if start < 0 || off >= shader.ConstantSlots {
		return nil
	}
	copy(d.constants[stage][off:], data)
	return nil
}

// SetVertexShaderConstantF implements render.Device.
func (d *PassDevice) SetVertexShaderConstantF(start int, data []float32) error {
	return d.setConstants(render.StageVertex, start, data)
}

// SetPixelShaderConstantF implements render.Device.
func (d *PassDevice) SetPixelShaderConstantF(start int, data []float32) error {
	return d.setConstants(render.StagePixel, start, data)
}

// Uniforms returns a copy of the constant registers of stage, four floats
// per register, as the host would write them into a uniform buffer.
func (d *PassDevice) Uniforms(stage render.Stage) []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]float32(nil), d.constants[stage][:]...)
}

// SetViewport implements render.Device. The viewport is clipped to the
// render target, which WebGPU requires.
func (d *PassDevice) SetViewport(vp render.Viewport) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	if vp.X >= d.width || vp.Y >= d.height {
		return fmt.Errorf("set viewport %+v: %w", vp, ErrEmptyTarget)
	}
	vp.Width = min(vp.Width, d.width-vp.X)
	vp.Height = min(vp.Height, d.height-vp.Y)

	d.viewport = vp
	if d.pass != nil {
		d.pass.SetViewport(float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), vp.MinZ, vp.MaxZ)
	}
	return nil
}

// Viewport returns the viewport last applied to the pass.
func (d *PassDevice) Viewport() render.Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// SetScissorRect implements render.Device. The rectangle only takes effect
// while the scissor test is enabled.
func (d *PassDevice) SetScissorRect(r render.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set scissor rect: %w", err)
	}
	d.scissor = r
	d.applyScissor()
	return nil
}

// SetScissorTest implements render.Device.
func (d *PassDevice) SetScissorTest(enabled bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set scissor test: %w", err)
	}
	d.scissorTest = enabled
	d.applyScissor()
	return nil
}

// ScissorBox returns the scissor rectangle in effect: the clamped scissor
// rectangle while the test is enabled, otherwise the whole target.
func (d *PassDevice) ScissorBox() (x, y, width, height uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scissorBox()
}

// scissorBox must be called with d.mu held.
func (d *PassDevice) scissorBox() (x, y, width, height uint32) {
	if !d.scissorTest {
		return 0, 0, d.width, d.height
	}
	clamp := func(v int32, hi uint32) uint32 {
		return uint32(min(max(v, 0), int32(hi)))
	}
	l, t := clamp(d.scissor.Left, d.width), clamp(d.scissor.Top, d.height)
	r, b := clamp(d.scissor.Right, d.width), clamp(d.scissor.Bottom, d.height)
	return l, t, max(r, l) - l, max(b, t) - t
}

// applyScissor must be called with d.mu held.
func (d *PassDevice) applyScissor() {
	if d.pass == nil {
		return
	}
	x, y, w, h := d.scissorBox()
	d.pass.SetScissorRect(x, y, w, h)
}

// RenderState implements render.Device.
func (d *PassDevice) RenderState() (render.StateBlock, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderState, nil
}

// SetRenderState implements render.Device. The host selects the pipeline
// matching the state before the next draw.
func (d *PassDevice) SetRenderState(s render.StateBlock) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("set render state: %w", err)
	}
	d.renderState = s
	return nil
}

// Draw implements render.Device.
func (d *PassDevice) Draw(call render.DrawCall) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkRecording(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if call.Primitive == render.TriangleFan {
		return fmt.Errorf("draw: %w: triangle fan", ErrUnsupportedPrimitive)
	}
	n := call.Primitive.VertexCount(call.PrimitiveCount)
	if n == 0 {
		return nil
	}

	if d.pass != nil {
		if call.Indexed {
			d.pass.DrawIndexed(n, 1, call.StartIndex, call.BaseVertex, 0)
		} else {
			d.pass.Draw(n, 1, call.StartVertex, 0)
		}
	}
	d.draws++
	d.vertices += uint64(n)
	return nil
}

// EndScene implements render.Device by ending the pass.
// It is idempotent.
func (d *PassDevice) EndScene() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == PassEnded {
		return nil
	}
	d.scenes++
	if d.pass == nil {
		return nil
	}
	d.state = PassEnded
	if err := d.pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	return nil
}

// Begin continues on a new render pass after EndScene. Viewport, scissor,
// shaders, constants and render state carry over as they would on a
// device; the new encoder starts from its own defaults, so the viewport
// and scissor are reapplied to it.
func (d *PassDevice) Begin(pass *core.CoreRenderPassEncoder) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pass = pass
	d.state = PassRecording
	if pass == nil {
		return
	}
	vp := d.viewport
	pass.SetViewport(float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), vp.MinZ, vp.MaxZ)
	x, y, w, h := d.scissorBox()
	pass.SetScissorRect(x, y, w, h)
}

// Scenes returns how many scenes have ended on the device.
func (d *PassDevice) Scenes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scenes
}

// Stats returns the number of draws and vertices submitted.
func (d *PassDevice) Stats() (draws int, vertices uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draws, d.vertices
}

var _ render.Device = (*PassDevice)(nil)
