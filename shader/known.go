// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "github.com/gogpu/aspect/render"

// Role tells the classifier what a tracked shader means.
type Role uint8

const (
	RoleNone Role = iota
	// RoleText draws UI text.
	RoleText
	// RoleBackground fills full-screen UI backgrounds.
	RoleBackground
	// RoleMinimap is the vertex shader of minimap geometry.
	RoleMinimap
	// RoleFullscreenExempt is a pixel shader whose 640x360 quads are not
	// fullscreen effects.
	RoleFullscreenExempt
	// RoleMainMapBegin and RoleMainMapEnd bracket the full-screen map.
	RoleMainMapBegin
	RoleMainMapEnd
	// RoleUIDebug marks the shader pair traced in UI diagnostics.
	RoleUIDebug
)

var roleNames = [...]string{
	RoleNone:             "none",
	RoleText:             "text",
	RoleBackground:       "background",
	RoleMinimap:          "minimap",
	RoleFullscreenExempt: "fullscreen-exempt",
	RoleMainMapBegin:     "main-map-begin",
	RoleMainMapEnd:       "main-map-end",
	RoleUIDebug:          "ui-debug",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "role(?)"
}

// Fingerprints of the shaders the title uses for UI, minimap and
// post-processing.
const (
	TextPS             Fingerprint = 0x0d6c2e96
	BackgroundPS       Fingerprint = 0x79b9d805
	MinimapVS          Fingerprint = 0x9a78e585
	FullscreenExemptPS Fingerprint = 0xf22375e3
	UIDebugVS          Fingerprint = 0x5c8f22bc
	UIDebugPS          Fingerprint = 0x0bf9778a
)

// Known is one entry of the tracked shader table.
type Known struct {
	Label       string
	Stage       render.Stage
	Fingerprint Fingerprint
	Role        Role
}

// KnownShaders returns the default tracked shader table.
func KnownShaders() []Known {
	return []Known{
		{Label: "text", Stage: render.StagePixel, Fingerprint: TextPS, Role: RoleText},
		{Label: "bg0", Stage: render.StagePixel, Fingerprint: BackgroundPS, Role: RoleBackground},
		{Label: "minimap0", Stage: render.StageVertex, Fingerprint: MinimapVS, Role: RoleMinimap},
		{Label: "fullscreen-exempt", Stage: render.StagePixel, Fingerprint: FullscreenExemptPS, Role: RoleFullscreenExempt},
		{Label: "ui-debug-vs", Stage: render.StageVertex, Fingerprint: UIDebugVS, Role: RoleUIDebug},
		{Label: "ui-debug-ps", Stage: render.StagePixel, Fingerprint: UIDebugPS, Role: RoleUIDebug},
	}
}

// ConstantSlots is the number of floats a descriptor keeps: 64 registers.
const ConstantSlots = 256

// Descriptor is a tracked shader together with the constants most recently
// uploaded while it was bound.
type Descriptor struct {
	Known

	Constants [ConstantSlots]float32
	Uploads   int
}

// Record copies an upload starting at register start into d.Constants.
// Registers past the end of the buffer are dropped.
func (d *Descriptor) Record(start int, data []float32) {
	d.Uploads++
	off := start * 4
	if start < 0 || off >= len(d.Constants) {
		return
	}
	copy(d.Constants[off:], data)
}

// Register returns the last value recorded for register reg.
func (d *Descriptor) Register(reg int) [4]float32 {
	var v [4]float32
	off := reg * 4
	if reg < 0 || off+4 > len(d.Constants) {
		return v
	}
	copy(v[:], d.Constants[off:off+4])
	return v
}
