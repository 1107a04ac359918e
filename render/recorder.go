// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Op names a recorded device call.
type Op uint8

const (
	OpSetVertexShader Op = iota
	OpSetPixelShader
	OpVertexConstants
	OpPixelConstants
	OpSetViewport
	OpSetScissorRect
	OpSetScissorTest
	OpSetRenderState
	OpDraw
	OpEndScene
)

var opNames = [...]string{
	OpSetVertexShader: "SetVertexShader",
	OpSetPixelShader:  "SetPixelShader",
	OpVertexConstants: "SetVertexShaderConstantF",
	OpPixelConstants:  "SetPixelShaderConstantF",
	OpSetViewport:     "SetViewport",
	OpSetScissorRect:  "SetScissorRect",
	OpSetScissorTest:  "SetScissorTest",
	OpSetRenderState:  "SetRenderState",
	OpDraw:            "Draw",
	OpEndScene:        "EndScene",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Op(?)"
}

// Call is one call received by a Recorder.
type Call struct {
	Op     Op
	Shader Shader
	Start  int
	Data   []float32
}

// DrawRecord captures a draw together with the device state it ran under.
type DrawRecord struct {
	Call     DrawCall
	Viewport Viewport
	State    StateBlock
	Scissor  Rect
	Scissors bool
}

// Recorder is a Device that applies calls to an in-memory state and records
// them. It stands in for a real device in tests and during capture replay.
type Recorder struct {
	Viewport    Viewport
	Scissor     Rect
	ScissorTest bool
	State       StateBlock
	VS, PS      Shader

	Calls []Call
	Draws []DrawRecord

	// DrawErr, when set, is returned by Draw after the draw is recorded.
	DrawErr error
}

// NewRecorder returns a Recorder covering a width x height back buffer with
// default render state.
func NewRecorder(width, height uint32) *Recorder {
	return &Recorder{
		Viewport: Viewport{Width: width, Height: height, MaxZ: 1},
		State:    DefaultStateBlock(),
	}
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

// SetVertexShader implements Device.
func (r *Recorder) SetVertexShader(s Shader) error {
	r.VS = s
	r.record(Call{Op: OpSetVertexShader, Shader: s})
	return nil
}

// SetPixelShader implements Device.
func (r *Recorder) SetPixelShader(s Shader) error {
	r.PS = s
	r.record(Call{Op: OpSetPixelShader, Shader: s})
	return nil
}

// SetVertexShaderConstantF implements Device.
func (r *Recorder) SetVertexShaderConstantF(start int, data []float32) error {
	r.record(Call{Op: OpVertexConstants, Start: start, Data: append([]float32(nil), data...)})
	return nil
}

// SetPixelShaderConstantF implements Device.
func (r *Recorder) SetPixelShaderConstantF(start int, data []float32) error {
	r.record(Call{Op: OpPixelConstants, Start: start, Data: append([]float32(nil), data...)})
	return nil
}

// SetViewport implements Device.
func (r *Recorder) SetViewport(vp Viewport) error {
	r.Viewport = vp
	r.record(Call{Op: OpSetViewport})
	return nil
}

// SetScissorRect implements Device.
func (r *Recorder) SetScissorRect(rect Rect) error {
	r.Scissor = rect
	r.record(Call{Op: OpSetScissorRect})
	return nil
}

// SetScissorTest implements Device.
func (r *Recorder) SetScissorTest(enabled bool) error {
	r.ScissorTest = enabled
	r.record(Call{Op: OpSetScissorTest})
	return nil
}

// RenderState implements Device.
func (r *Recorder) RenderState() (StateBlock, error) {
	return r.State, nil
}

// SetRenderState implements Device.
func (r *Recorder) SetRenderState(s StateBlock) error {
	r.State = s
	r.record(Call{Op: OpSetRenderState})
	return nil
}

// Draw implements Device.
func (r *Recorder) Draw(call DrawCall) error {
	r.Draws = append(r.Draws, DrawRecord{
		Call:     call,
		Viewport: r.Viewport,
		State:    r.State,
		Scissor:  r.Scissor,
		Scissors: r.ScissorTest,
	})
	r.record(Call{Op: OpDraw})
	return r.DrawErr
}

// EndScene implements Device.
func (r *Recorder) EndScene() error {
	r.record(Call{Op: OpEndScene})
	return nil
}

// LastConstants returns the data of the most recent constant upload for
// stage, or nil.
func (r *Recorder) LastConstants(stage Stage) []float32 {
	want := OpVertexConstants
	if stage == StagePixel {
		want = OpPixelConstants
	}
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == want {
			return r.Calls[i].Data
		}
	}
	return nil
}

// Reset drops recorded calls and draws but keeps the device state.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Draws = r.Draws[:0]
}

var _ Device = (*Recorder)(nil)
