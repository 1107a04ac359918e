// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import (
	"math"
	"slices"

	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/transform"
)

// Env is the per-frame input of the classifier. The engine refreshes it at
// the start of every frame and updates Viewport as the host sets it.
type Env struct {
	Settings config.Settings
	Params   transform.Params

	BackBufferWidth  uint32
	BackBufferHeight uint32
	Viewport         render.Viewport

	// Negotiated is set once present parameters for a back buffer wider
	// than 16:9 have been accepted. Rewrites are only forwarded then.
	Negotiated bool

	// TempOnTop is the state of the hold-to-show-nametags key.
	TempOnTop bool
}

func (e *Env) viewportMatchesBackBuffer() bool {
	if e.Viewport.Height == 0 || e.BackBufferHeight == 0 {
		return false
	}
	bb := float64(e.BackBufferWidth) / float64(e.BackBufferHeight)
	return math.Abs(e.Viewport.Aspect()-bb) < 1e-3
}

func (e *Env) isReservedDepth(z float32) bool {
	return slices.Contains(e.Settings.Thresholds.ReservedDepths, float64(z))
}

// TransitionKind names a phase change of the frame state.
type TransitionKind uint8

const (
	EnteredUI TransitionKind = iota + 1
	MinimapBegan
	MinimapEnded
	MainMapBegan
	MainMapEnded
	NametagsBegan
	NametagsEnded
	DepthOfFieldFound
	MenuFound
)

var transitionNames = [...]string{
	EnteredUI:         "entered-ui",
	MinimapBegan:      "minimap-began",
	MinimapEnded:      "minimap-ended",
	MainMapBegan:      "main-map-began",
	MainMapEnded:      "main-map-ended",
	NametagsBegan:     "nametags-began",
	NametagsEnded:     "nametags-ended",
	DepthOfFieldFound: "depth-of-field",
	MenuFound:         "menu",
}

func (k TransitionKind) String() string {
	if int(k) < len(transitionNames) && transitionNames[k] != "" {
		return transitionNames[k]
	}
	return "transition(?)"
}

// Transition is reported to the observer on every phase change.
type Transition struct {
	Kind   TransitionKind
	VS, PS shader.Fingerprint

	// Position is the last minimap or UI translation, when relevant.
	Position [3]float32
}

// Result is the outcome of classifying one upload.
type Result struct {
	// Data is the upload to forward. When Rewritten is set it aliases a
	// buffer owned by the Classifier, valid until the next call.
	Data      []float32
	Rewritten bool

	// Matched is the last action that applied, or zero.
	Matched Action

	// Center is the centering decision of a UI matrix upload.
	Center bool
}

// Classifier turns the stream of shader binds and constant uploads into
// FrameState. It belongs to the render thread and performs no locking.
type Classifier struct {
	state FrameState
	env   Env
	rules []Rule

	vs, ps *shader.Descriptor

	out      []float32
	observer func(Transition)
}

// New creates a classifier using the default signature table.
func New() *Classifier {
	return &Classifier{
		rules: Rules(),
		env:   Env{Settings: config.Defaults()},
		out:   make([]float32, 0, 16),
	}
}

// OnTransition installs fn as the transition observer. A nil fn removes it.
func (c *Classifier) OnTransition(fn func(Transition)) {
	c.observer = fn
}

// State returns a copy of the current frame state.
func (c *Classifier) State() FrameState {
	return c.state
}

// Env returns the current environment.
func (c *Classifier) Env() Env {
	return c.env
}

// SetEnv replaces the environment.
func (c *Classifier) SetEnv(e Env) {
	c.env = e
}

// SetViewport records the viewport the host has set.
func (c *Classifier) SetViewport(vp render.Viewport) {
	c.env.Viewport = vp
}

// Reset clears the frame state, including the bound shader caches.
func (c *Classifier) Reset() {
	c.state = FrameState{}
	c.vs, c.ps = nil, nil
}

func (c *Classifier) emit(k TransitionKind, pos [3]float32) {
	if c.observer == nil {
		return
	}
	c.observer(Transition{Kind: k, VS: c.state.VS, PS: c.state.PS, Position: pos})
}

func roleOf(d *shader.Descriptor) shader.Role {
	if d == nil {
		return shader.RoleNone
	}
	return d.Role
}

// BindVertexShader records a vertex shader bind. d is the tracked
// descriptor of fp, or nil.
func (c *Classifier) BindVertexShader(fp shader.Fingerprint, d *shader.Descriptor) {
	s := &c.state
	if fp != s.VS {
		s.UICentering = false
	}
	s.VS = fp
	s.VSRole = roleOf(d)
	c.vs = d
}

// BindPixelShader records a pixel shader bind. Every pixel shader bind
// clears the depth-of-field flag.
func (c *Classifier) BindPixelShader(fp shader.Fingerprint, d *shader.Descriptor) {
	s := &c.state
	role := roleOf(d)
	if fp != s.PS {
		c.pixelShaderChanged(role)
	}
	s.DepthOfField = false
	s.PS = fp
	s.PSRole = role
	c.ps = d
}

func (c *Classifier) pixelShaderChanged(role shader.Role) {
	m := &c.state.Minimap
	if role == shader.RoleMainMapBegin && m.Phase != MinimapMainMap {
		m.Phase = MinimapMainMap
		m.ShaderChanges = 0
		c.emit(MainMapBegan, m.LastPosition)
		return
	}

	switch m.Phase {
	case MinimapActive:
		if c.state.VSRole == shader.RoleMinimap {
			m.ShaderChanges = 0
			return
		}
		m.ShaderChanges++
		if m.ShaderChanges > c.env.Settings.Thresholds.MinimapShaderChanges {
			m.Phase = MinimapFinished
			c.emit(MinimapEnded, m.LastPosition)
		}
	case MinimapMainMap:
		if role == shader.RoleMainMapEnd {
			m.Phase = MinimapFinished
			c.emit(MainMapEnded, m.LastPosition)
		}
	}
}

// Upload classifies a constant upload and returns the data to forward.
func (c *Classifier) Upload(u Upload) Result {
	res := Result{Data: u.Data}
	if u.Count() == 0 {
		return res
	}
	if d := c.bound(u.Stage); d != nil {
		d.Record(u.Start, u.Data)
	}

	for _, r := range c.rules {
		if r.Stage != u.Stage || !matches(r.Match, u, &c.env, &c.state) {
			continue
		}
		applied, out, stop := c.apply(r.Action, u, &res)
		if !applied {
			continue
		}
		res.Matched = r.Action
		if out != nil {
			res.Data = out
			res.Rewritten = true
		}
		if stop {
			break
		}
	}
	return res
}

func (c *Classifier) bound(stage render.Stage) *shader.Descriptor {
	if stage == render.StagePixel {
		return c.ps
	}
	return c.vs
}

// apply performs action a. It reports whether the action's preconditions
// held, the rewritten upload if any, and whether evaluation stops.
func (c *Classifier) apply(a Action, u Upload, res *Result) (applied bool, out []float32, stop bool) {
	s := &c.state
	set := &c.env.Settings

	switch a {
	case ActEnterUI:
		if !s.UIActive() {
			s.UI = PhaseUI
			c.emit(EnteredUI, [3]float32{})
		}
		return true, nil, false

	case ActCenterPrim:
		if !s.Minimap.Drawing() {
			return false, nil, false
		}
		t := &set.Thresholds
		pos := s.Minimap.LastPosition
		if within(pos[0], t.CenterPrimX) && within(pos[1], t.CenterPrimY) {
			s.Minimap.CenterPrim = true
			return true, nil, false
		}
		return false, nil, false

	case ActCapturePS43:
		if !s.Minimap.Drawing() {
			return false, nil, false
		}
		s.Minimap.PS43 = u.Data[3]
		return true, nil, false

	case ActCapturePS23:
		if !s.Minimap.Drawing() {
			return false, nil, false
		}
		s.Minimap.PS23 = u.Data[3]
		return true, nil, false

	case ActDepthOfField:
		if !s.UIActive() || !set.Render.FixDOF || c.env.Viewport.Aspect() <= transform.ReferenceAspect {
			return false, nil, false
		}
		if !s.DepthOfField {
			c.emit(DepthOfFieldFound, [3]float32{})
		}
		s.DepthOfField = true
		if !c.env.Negotiated {
			return true, nil, false
		}
		ar := float32(c.env.Viewport.Aspect())
		c.out = append(c.out[:0], u.Data...)
		c.out[1] = u.Data[0] * ar
		c.out[2], c.out[3] = 0, 0
		return true, c.out, true

	case ActBeginMinimap:
		if !set.Render.FixMinimap || !set.Render.AspectCorrection {
			return false, nil, false
		}
		m := &s.Minimap
		if m.Phase != MinimapMainMap {
			if m.Phase != MinimapActive {
				m.Phase = MinimapActive
				c.emit(MinimapBegan, m.LastPosition)
			}
			m.ShaderChanges = 0
		}
		if !c.env.Negotiated {
			return true, nil, false
		}
		c.out = append(c.out[:0], u.Data...)
		transform.ScaleMinimapConstants(c.out, c.env.Params)
		return true, c.out, true

	case ActQuestMarker:
		if !s.UIActive() {
			return false, nil, false
		}
		s.Nametags.Quest = true
		return true, nil, false

	case ActMinimapPosition:
		if !s.Minimap.Drawing() {
			return false, nil, false
		}
		s.Minimap.LastPosition = [3]float32{u.At(12), u.At(13), u.At(14)}
		return true, nil, false

	case ActUIMatrix:
		return c.uiMatrix(u, res)
	}
	return false, nil, false
}

func within(v float32, bounds [2]float64) bool {
	return float64(v) > bounds[0] && float64(v) < bounds[1]
}

func (c *Classifier) uiMatrix(u Upload, res *Result) (bool, []float32, bool) {
	s := &c.state
	set := &c.env.Settings
	if !s.UIActive() || s.Minimap.Phase == MinimapMainMap || !set.Render.AspectCorrection {
		return false, nil, false
	}
	if !c.env.viewportMatchesBackBuffer() {
		return false, nil, false
	}

	m, ok := transform.MatrixFrom(u.Data)
	if ok {
		c.nametagTrigger(m)
		s.Nametags.LastZ = m[14]
	}
	if !ok || u.Count() != 4 || (m[3] != 0 && m[7] != 0) {
		return true, nil, false
	}

	center := c.centerDecision(m)
	s.UICentering = center
	res.Center = center

	flags := transform.UIFlags{
		Center:      center,
		Minimap:     s.Minimap.Drawing(),
		MinimapBlip: s.Minimap.Phase == MinimapActive,
		Nametag:     !s.MenuDrawing && s.Nametags.Drawing() && set.Nametags.AspectCorrect,
		NameShift:   float32(set.Nametags.NameShift),
		MapScale:    float32(set.Render.MapScale),
	}
	if !c.env.Negotiated {
		return true, nil, false
	}
	fixed := transform.CorrectUI(m, c.env.Params, flags)
	c.out = append(c.out[:0], fixed[:]...)
	return true, c.out, true
}

// nametagTrigger detects the start and end of the nametag pass from the
// translation of consecutive UI matrices. Labels start with the first
// element off the reserved depths after a flat one and end when an element
// returns to a reserved depth.
func (c *Classifier) nametagTrigger(m transform.Matrix4) {
	n := &c.state.Nametags
	y, z, w, zz := m[13], m[14], m[15], m[10]
	reserved := c.env.isReservedDepth(z)

	switch {
	case n.Phase == NametagsIdle && n.LastZ == 0 && y != 0 && !reserved && w == 1 && zz == 1:
		n.Phase = NametagsDrawing
		c.emit(NametagsBegan, [3]float32{m[12], y, z})

	case n.Phase == NametagsDrawing && reserved:
		n.Passes++
		if n.Quest {
			n.Phase = NametagsIdle
		} else {
			n.Phase = NametagsFinished
		}
		n.Quest = false
		c.emit(NametagsEnded, [3]float32{m[12], y, z})
	}
}

// centerDecision decides whether the element drawn with m is moved into
// the centered 16:9 region.
func (c *Classifier) centerDecision(m transform.Matrix4) bool {
	s := &c.state
	t := &c.env.Settings.Thresholds

	center := c.env.Settings.Render.CenterUI
	if center {
		if m[0] == 1 && m[5] == 1.5 {
			if !s.MenuDrawing {
				c.emit(MenuFound, [3]float32{m[12], m[13], m[14]})
			}
			s.MenuDrawing = true
			center = false
		}
		if !s.MenuDrawing && s.Nametags.Drawing() {
			center = false
		}
	}
	if m[14] < 0 || m[10] > 1 {
		center = false
	}
	if t.LoadingDepth > 0 && float64(m[14]) >= t.LoadingDepth {
		center = false
	}
	if s.Minimap.Drawing() {
		center = false
	}
	if s.PSRole == shader.RoleBackground && !s.BackgroundFillSeen {
		s.BackgroundFillSeen = true
		center = false
	}
	if float64(m[12]) == t.FullscreenX && float64(m[13]) == t.FullscreenY &&
		float64(m[14]) <= t.FullscreenMaxZ && s.PSRole != shader.RoleFullscreenExempt {
		center = false
	}
	return center
}

// MinimapDraw is how a draw call relates to the minimap.
type MinimapDraw uint8

const (
	MinimapNone MinimapDraw = iota
	// MinimapBlip is a non-indexed draw of a marker on the minimap.
	MinimapBlip
	// MinimapBackground is an indexed draw of the minimap itself.
	MinimapBackground
	// MinimapFull is an indexed draw of the full-screen map.
	MinimapFull
)

// DrawPlan is the classifier's decision for one draw call.
type DrawPlan struct {
	// Skip suppresses the draw; Reason says why.
	Skip   bool
	Reason string

	Minimap MinimapDraw

	// KeepVertical leaves a blip's vertical position alone.
	KeepVertical bool

	// CenterHorizontal narrows minimap viewports into the 16:9 region.
	CenterHorizontal bool

	// MainMap is set while the full-screen map is drawn.
	MainMap bool

	// OnTop draws the call with the priority overlay using Technique.
	OnTop     bool
	Technique int
}

// PlanDraw decides how to issue a draw call and advances the per-draw
// minimap counters.
func (c *Classifier) PlanDraw(indexed bool) DrawPlan {
	s := &c.state
	set := &c.env.Settings

	var plan DrawPlan
	switch {
	case set.Debug.CullVS != 0 && uint32(s.VS) == uint32(set.Debug.CullVS):
		return DrawPlan{Skip: true, Reason: "cull-vs"}
	case set.Debug.CullPS != 0 && uint32(s.PS) == uint32(set.Debug.CullPS):
		return DrawPlan{Skip: true, Reason: "cull-ps"}
	case s.DepthOfField && set.Render.KillDOF:
		return DrawPlan{Skip: true, Reason: "kill-dof"}
	}

	if m := &s.Minimap; m.Drawing() {
		plan.CenterHorizontal = set.Render.CenterUI
		plan.MainMap = m.Phase == MinimapMainMap
		switch {
		case indexed && m.Phase == MinimapMainMap:
			plan.Minimap = MinimapFull
		case indexed:
			plan.Minimap = MinimapBackground
		default:
			plan.Minimap = MinimapBlip
			plan.KeepVertical = (m.PS23 == 1 && m.PS43 == 1 && set.Render.VertFixMap) ||
				m.CenterPrim || m.Phase == MinimapMainMap
			m.CenterPrim = false
		}
		m.PrimsDrawn++
	}

	if s.Nametags.Drawing() {
		technique := set.Nametags.OnTop
		if technique == config.OnTopOff && c.env.TempOnTop {
			technique = config.OnTopAlways
		}
		plan.OnTop = technique != config.OnTopOff
		plan.Technique = technique
	}
	return plan
}
