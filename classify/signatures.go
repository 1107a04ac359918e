// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import (
	"math"

	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/transform"
)

// Upload is one shader constant upload: Data holds four floats per
// register, starting at register Start.
type Upload struct {
	Stage render.Stage
	Start int
	Data  []float32
}

// Count returns the number of registers in the upload.
func (u Upload) Count() int {
	return len(u.Data) / 4
}

// At returns float i of the upload, or 0 past the end.
func (u Upload) At(i int) float32 {
	if i < 0 || i >= len(u.Data) {
		return 0
	}
	return u.Data[i]
}

// Signature is a pattern over a constant upload. The concrete types below
// are the only implementations.
type Signature interface {
	signature()
}

// ConstantValue matches a single-register upload equal to Value.
type ConstantValue struct {
	Register int
	Value    [4]float32
}

// ConstantAt matches any single-register upload to Register.
type ConstantAt struct {
	Register int
}

// ScalarValue matches a single-register upload whose first component is
// the threshold selected by Value.
type ScalarValue struct {
	Register int
	Value    func(e *Env) float64
}

// InverseResolution matches a single-register upload of
// (1/width, 1/height, 0, 0) for a 16:9 resolution.
type InverseResolution struct {
	Register int
}

// InverseHeight matches an upload whose second component is -1/height of
// the back buffer while a shader of Role is bound.
type InverseHeight struct {
	Register int
	Role     shader.Role
}

// MatrixUpload matches uploads starting at Register. MinCount is the
// minimum number of registers.
type MatrixUpload struct {
	Register int
	MinCount int
}

func (ConstantValue) signature()     {}
func (ConstantAt) signature()        {}
func (ScalarValue) signature()       {}
func (InverseResolution) signature() {}
func (InverseHeight) signature()     {}
func (MatrixUpload) signature()      {}

// Action is what a matched signature means.
type Action uint8

const (
	ActEnterUI Action = iota + 1
	ActDepthOfField
	ActBeginMinimap
	ActQuestMarker
	ActMinimapPosition
	ActUIMatrix
	ActCenterPrim
	ActCapturePS23
	ActCapturePS43
)

var actionNames = [...]string{
	ActEnterUI:         "enter-ui",
	ActDepthOfField:    "depth-of-field",
	ActBeginMinimap:    "begin-minimap",
	ActQuestMarker:     "quest-marker",
	ActMinimapPosition: "minimap-position",
	ActUIMatrix:        "ui-matrix",
	ActCenterPrim:      "center-prim",
	ActCapturePS23:     "capture-ps23",
	ActCapturePS43:     "capture-ps43",
}

func (a Action) String() string {
	if int(a) < len(actionNames) && actionNames[a] != "" {
		return actionNames[a]
	}
	return "action(?)"
}

// Rule binds a signature to an action for one shader stage.
type Rule struct {
	Stage  render.Stage
	Match  Signature
	Action Action
}

// Rules returns the signature table in evaluation order. Rules of a stage
// are tried in order for every upload of that stage; an action may stop
// evaluation when it has rewritten the upload.
func Rules() []Rule {
	return []Rule{
		{render.StagePixel, ConstantValue{Register: 1, Value: [4]float32{0.5, 2, 1, 1}}, ActEnterUI},
		{render.StagePixel, ConstantValue{Register: 4, Value: [4]float32{1, 1, 1, 1}}, ActCenterPrim},
		{render.StagePixel, ConstantAt{Register: 4}, ActCapturePS43},
		{render.StagePixel, ConstantAt{Register: 2}, ActCapturePS23},

		{render.StageVertex, InverseResolution{Register: 1}, ActDepthOfField},
		{render.StageVertex, InverseHeight{Register: 2, Role: shader.RoleMinimap}, ActBeginMinimap},
		{render.StageVertex, ScalarValue{Register: 11, Value: questMarkerScale}, ActQuestMarker},
		{render.StageVertex, MatrixUpload{Register: 0, MinCount: 4}, ActMinimapPosition},
		{render.StageVertex, MatrixUpload{Register: 1, MinCount: 1}, ActUIMatrix},
	}
}

func questMarkerScale(e *Env) float64 {
	return e.Settings.Thresholds.QuestMarkerScale
}

// matches reports whether u matches sig. Register 0 in a MatrixUpload
// matches any start register.
func matches(sig Signature, u Upload, e *Env, s *FrameState) bool {
	switch sig := sig.(type) {
	case ConstantValue:
		if u.Start != sig.Register || u.Count() != 1 {
			return false
		}
		return [4]float32(u.Data[:4]) == sig.Value

	case ConstantAt:
		return u.Start == sig.Register && u.Count() == 1

	case ScalarValue:
		return u.Start == sig.Register && u.Count() == 1 && u.Data[0] == float32(sig.Value(e))

	case InverseResolution:
		if u.Start != sig.Register || u.Count() != 1 || u.Data[2] != 0 || u.Data[3] != 0 {
			return false
		}
		return isInverseReference(u.Data[0], u.Data[1], e.Settings.Thresholds.DOFEpsilon)

	case InverseHeight:
		if u.Start != sig.Register || len(u.Data) < 2 || e.BackBufferHeight == 0 {
			return false
		}
		if s.VSRole != sig.Role {
			return false
		}
		want := -1 / float64(e.BackBufferHeight)
		return math.Abs(float64(u.Data[1])-want) <= e.Settings.Thresholds.MinimapEpsilon

	case MatrixUpload:
		if sig.Register != 0 && u.Start != sig.Register {
			return false
		}
		return u.Count() >= sig.MinCount
	}
	return false
}

// isInverseReference reports whether (x, y) = (1/w, 1/h) with w/h = 16:9,
// comparing in pixels with tolerance eps.
func isInverseReference(x, y float32, eps float64) bool {
	if x == 0 || y == 0 {
		return false
	}
	invX := 1 / float64(x)
	invY := 1 / float64(y)
	return math.Abs(invY-invX/transform.ReferenceAspect) <= eps
}
