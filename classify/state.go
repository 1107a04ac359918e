// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import "github.com/gogpu/aspect/shader"

// UIPhase tells world rendering apart from UI rendering.
type UIPhase uint8

const (
	PhaseWorld UIPhase = iota
	PhaseUI
)

func (p UIPhase) String() string {
	if p == PhaseUI {
		return "ui"
	}
	return "world"
}

// MinimapPhase is the state of the minimap session.
type MinimapPhase uint8

const (
	// MinimapIdle: no minimap geometry seen this frame.
	MinimapIdle MinimapPhase = iota
	// MinimapActive: the HUD minimap is being drawn.
	MinimapActive
	// MinimapMainMap: the full-screen map is being drawn.
	MinimapMainMap
	// MinimapFinished: the session ended.
	MinimapFinished
)

var minimapPhaseNames = [...]string{"idle", "active", "main-map", "finished"}

func (p MinimapPhase) String() string {
	if int(p) < len(minimapPhaseNames) {
		return minimapPhaseNames[p]
	}
	return "minimap(?)"
}

// NametagPhase is the state of world-space label rendering.
type NametagPhase uint8

const (
	NametagsIdle NametagPhase = iota
	NametagsDrawing
	NametagsFinished
)

var nametagPhaseNames = [...]string{"idle", "drawing", "finished"}

func (p NametagPhase) String() string {
	if int(p) < len(nametagPhaseNames) {
		return nametagPhaseNames[p]
	}
	return "nametags(?)"
}

// MinimapState tracks one minimap session.
type MinimapState struct {
	Phase MinimapPhase

	// ShaderChanges counts consecutive pixel shader changes while the
	// minimap vertex shader is not bound.
	ShaderChanges int
	PrimsDrawn    int

	// LastPosition is the translation of the most recent minimap matrix.
	LastPosition [3]float32

	// CenterPrim marks the next blip as the map's center marker.
	CenterPrim bool

	// PS23 and PS43 are the w components of the last single-register pixel
	// shader uploads at registers 2 and 4.
	PS23, PS43 float32
}

// Drawing reports whether minimap geometry is being drawn.
func (m MinimapState) Drawing() bool {
	return m.Phase == MinimapActive || m.Phase == MinimapMainMap
}

// NametagState tracks the nametag pass.
type NametagState struct {
	Phase NametagPhase

	// LastZ is the depth of the previous UI matrix upload.
	LastZ float32

	// Quest is set when quest indicator billboards precede the labels.
	Quest bool

	// Passes counts completed label passes.
	Passes int
}

// Drawing reports whether nametags are being drawn.
func (n NametagState) Drawing() bool {
	return n.Phase == NametagsDrawing
}

// FrameState is everything the classifier derives during one frame.
// It is zeroed at the start of every frame.
type FrameState struct {
	UI UIPhase

	// UICentering is the centering decision of the last UI matrix upload.
	UICentering bool
	MenuDrawing bool

	BackgroundFillSeen bool

	Minimap  MinimapState
	Nametags NametagState

	DepthOfField bool

	VS, PS         shader.Fingerprint
	VSRole, PSRole shader.Role
}

// UIActive reports whether the frame has switched to UI rendering.
func (s FrameState) UIActive() bool {
	return s.UI == PhaseUI
}
