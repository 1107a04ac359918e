// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package classify

import (
	"math"
	"testing"

	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/transform"
)

func newTestClassifier(negotiated bool) *Classifier {
	c := New()
	c.SetEnv(Env{
		Settings:         config.Defaults(),
		Params:           transform.Compute(2560, 1080, transform.DefaultOptions()),
		BackBufferWidth:  2560,
		BackBufferHeight: 1080,
		Viewport:         render.Viewport{Width: 2560, Height: 1080, MaxZ: 1},
		Negotiated:       negotiated,
	})
	return c
}

func enterUI(c *Classifier) {
	c.Upload(Upload{Stage: render.StagePixel, Start: 1, Data: []float32{0.5, 2, 1, 1}})
}

func matrixAt(x, y, z float32) []float32 {
	m := transform.Identity4()
	m[12], m[13], m[14] = x, y, z
	return m[:]
}

func uiMatrix(c *Classifier, data []float32) Result {
	return c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: data})
}

func role(r shader.Role) *shader.Descriptor {
	return &shader.Descriptor{Known: shader.Known{Role: r}}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestEnterUIIsSticky(t *testing.T) {
	c := newTestClassifier(true)
	var entered int
	c.OnTransition(func(tr Transition) {
		if tr.Kind == EnteredUI {
			entered++
		}
	})

	if c.State().UIActive() {
		t.Fatal("frame starts in UI phase")
	}
	enterUI(c)
	enterUI(c)
	c.Upload(Upload{Stage: render.StagePixel, Start: 1, Data: []float32{1, 1, 1, 1}})

	if !c.State().UIActive() {
		t.Error("UI phase lost after unrelated upload")
	}
	if entered != 1 {
		t.Errorf("EnteredUI reported %d times, want 1", entered)
	}
}

func TestWorldUploadsPassThrough(t *testing.T) {
	c := newTestClassifier(true)
	data := matrixAt(400, 300, 16)
	res := uiMatrix(c, data)
	if res.Rewritten {
		t.Error("world-phase matrix was rewritten")
	}
	if &res.Data[0] != &data[0] {
		t.Error("pass-through should forward the caller's data")
	}
}

func TestUploadWithoutNegotiationIsNotRewritten(t *testing.T) {
	c := newTestClassifier(false)
	enterUI(c)
	res := uiMatrix(c, matrixAt(400, 300, 16))
	if res.Rewritten {
		t.Error("rewrite forwarded before present negotiation")
	}
	if !res.Center {
		t.Error("centering decision should still be made")
	}
}

func TestUIMatrixCentered(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	res := uiMatrix(c, matrixAt(400, 300, 16))
	if !res.Rewritten || !res.Center {
		t.Fatalf("Rewritten = %v, Center = %v, want both", res.Rewritten, res.Center)
	}
	if !near(res.Data[12], 620) || !near(res.Data[13], 225) {
		t.Errorf("translation = (%v, %v), want (620, 225)", res.Data[12], res.Data[13])
	}
	if !near(res.Data[0], 0.75) {
		t.Errorf("m0 = %v, want 0.75", res.Data[0])
	}
	if res.Data[14] != 16 {
		t.Errorf("z = %v, want 16", res.Data[14])
	}
}

func TestCenterDecision(t *testing.T) {
	tests := []struct {
		name   string
		ps     *shader.Descriptor
		mutate func(m []float32)
		want   bool
	}{
		{"plain element", nil, func(m []float32) {}, true},
		{"fullscreen effect", nil, func(m []float32) { m[12], m[13] = 640, 360 }, false},
		{"fullscreen exempt shader", role(shader.RoleFullscreenExempt), func(m []float32) { m[12], m[13] = 640, 360 }, true},
		{"loading screen depth", nil, func(m []float32) { m[14] = 700 }, false},
		{"negative depth", nil, func(m []float32) { m[14] = -1 }, false},
		{"depth scale", nil, func(m []float32) { m[10] = 2 }, false},
		{"menu background", nil, func(m []float32) { m[0], m[5] = 1, 1.5 }, false},
		{"first background fill", role(shader.RoleBackground), func(m []float32) {}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(true)
			enterUI(c)
			// A reserved-depth element first, so the tested one cannot
			// open a nametag pass.
			uiMatrix(c, matrixAt(1, 1, 100))
			if tt.ps != nil {
				c.BindPixelShader(0x100, tt.ps)
			}
			m := matrixAt(400, 300, 16)
			tt.mutate(m)
			if got := uiMatrix(c, m).Center; got != tt.want {
				t.Errorf("Center = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackgroundFillVetoedOnce(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	c.BindPixelShader(shader.BackgroundPS, role(shader.RoleBackground))
	if uiMatrix(c, matrixAt(400, 300, 0)).Center {
		t.Error("first background fill centered")
	}
	if !c.State().BackgroundFillSeen {
		t.Error("BackgroundFillSeen not set")
	}
	if !uiMatrix(c, matrixAt(400, 300, 0)).Center {
		t.Error("second background element not centered")
	}
}

func TestMenuSetsMenuDrawing(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	m := matrixAt(0, 0, 0)
	m[0], m[5] = 1, 1.5
	uiMatrix(c, m)
	if !c.State().MenuDrawing {
		t.Error("MenuDrawing = false after menu background")
	}
}

func TestNametagPassBeginsAndEndsOnce(t *testing.T) {
	c := newTestClassifier(true)
	var began, ended int
	c.OnTransition(func(tr Transition) {
		switch tr.Kind {
		case NametagsBegan:
			began++
		case NametagsEnded:
			ended++
		}
	})
	enterUI(c)

	uiMatrix(c, matrixAt(0, 5, 40))
	if got := c.State().Nametags.Phase; got != NametagsDrawing {
		t.Fatalf("phase after label = %v, want drawing", got)
	}
	uiMatrix(c, matrixAt(0, 5, 16))
	if got := c.State().Nametags.Phase; got != NametagsFinished {
		t.Fatalf("phase after flat UI = %v, want finished", got)
	}
	uiMatrix(c, matrixAt(0, 5, 40))
	uiMatrix(c, matrixAt(0, 5, 16))

	if began != 1 || ended != 1 {
		t.Errorf("began %d, ended %d, want 1 and 1", began, ended)
	}
	if c.State().Nametags.Passes != 1 {
		t.Errorf("Passes = %d, want 1", c.State().Nametags.Passes)
	}
}

func TestQuestMarkersReopenNametags(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	c.Upload(Upload{Stage: render.StageVertex, Start: 11, Data: []float32{1.0 / 128, 0, 0, 0}})
	if !c.State().Nametags.Quest {
		t.Fatal("quest marker not detected")
	}

	uiMatrix(c, matrixAt(0, 5, 40))
	uiMatrix(c, matrixAt(0, 5, 16))
	if got := c.State().Nametags.Phase; got != NametagsIdle {
		t.Fatalf("phase after quest pass = %v, want idle", got)
	}

	uiMatrix(c, matrixAt(0, 0, 0))
	uiMatrix(c, matrixAt(0, 5, 40))
	if got := c.State().Nametags.Phase; got != NametagsDrawing {
		t.Errorf("labels after quest markers: phase = %v, want drawing", got)
	}
}

func TestNametagsRequireMatchingViewport(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	c.SetViewport(render.Viewport{Width: 256, Height: 256, MaxZ: 1})
	res := uiMatrix(c, matrixAt(0, 5, 40))
	if res.Rewritten || c.State().Nametags.Drawing() {
		t.Error("UI matrix handled inside a render-to-texture viewport")
	}
}

func beginMinimap(c *Classifier) Result {
	c.BindVertexShader(shader.MinimapVS, role(shader.RoleMinimap))
	return c.Upload(Upload{
		Stage: render.StageVertex,
		Start: 2,
		Data:  []float32{0.5, -1.0 / 1080, 0.25, 1},
	})
}

func TestMinimapTrigger(t *testing.T) {
	c := newTestClassifier(true)
	res := beginMinimap(c)
	if got := c.State().Minimap.Phase; got != MinimapActive {
		t.Fatalf("phase = %v, want active", got)
	}
	if !res.Rewritten {
		t.Fatal("minimap constants not rewritten")
	}
	scaleX := float32(2560.0 / 1920.0)
	if want := float32(-1.0/1080) / scaleX; math.Abs(float64(res.Data[1]-want)) > 1e-9 {
		t.Errorf("Data[1] = %v, want %v", res.Data[1], want)
	}
	if res.Data[0] != 0.5 || res.Data[2] != 0.25 {
		t.Errorf("even components changed: %v", res.Data)
	}
}

func TestMinimapTriggerNeedsShaderAndHeight(t *testing.T) {
	c := newTestClassifier(true)
	c.BindVertexShader(0x1234, nil)
	c.Upload(Upload{Stage: render.StageVertex, Start: 2, Data: []float32{0, -1.0 / 1080, 0, 0}})
	if c.State().Minimap.Drawing() {
		t.Error("minimap began without the minimap vertex shader")
	}

	c.BindVertexShader(shader.MinimapVS, role(shader.RoleMinimap))
	c.Upload(Upload{Stage: render.StageVertex, Start: 2, Data: []float32{0, -1.0 / 1440, 0, 0}})
	if c.State().Minimap.Drawing() {
		t.Error("minimap began for a different height")
	}

	s := c.Env()
	s.Settings.Render.FixMinimap = false
	c.SetEnv(s)
	c.Upload(Upload{Stage: render.StageVertex, Start: 2, Data: []float32{0, -1.0 / 1080, 0, 0}})
	if c.State().Minimap.Drawing() {
		t.Error("minimap began with the fix disabled")
	}
}

func TestMinimapEndsAfterForeignShaderChanges(t *testing.T) {
	c := newTestClassifier(true)
	beginMinimap(c)
	c.BindVertexShader(0x1, nil)

	c.BindPixelShader(0x10, nil)
	c.BindPixelShader(0x11, nil)
	if got := c.State().Minimap.Phase; got != MinimapActive {
		t.Fatalf("phase after two changes = %v, want active", got)
	}
	c.BindPixelShader(0x12, nil)
	if got := c.State().Minimap.Phase; got != MinimapFinished {
		t.Errorf("phase after three changes = %v, want finished", got)
	}
}

func TestMinimapShaderRebindResetsCount(t *testing.T) {
	c := newTestClassifier(true)
	beginMinimap(c)
	c.BindVertexShader(0x1, nil)
	c.BindPixelShader(0x10, nil)
	c.BindPixelShader(0x11, nil)

	c.BindVertexShader(shader.MinimapVS, role(shader.RoleMinimap))
	c.BindPixelShader(0x12, nil)
	if got := c.State().Minimap.ShaderChanges; got != 0 {
		t.Errorf("ShaderChanges = %d, want 0", got)
	}
	c.BindVertexShader(0x1, nil)
	c.BindPixelShader(0x13, nil)
	c.BindPixelShader(0x14, nil)
	if got := c.State().Minimap.Phase; got != MinimapActive {
		t.Errorf("phase = %v, want active", got)
	}
}

func TestMainMapBracket(t *testing.T) {
	c := newTestClassifier(true)
	c.BindPixelShader(0x200, role(shader.RoleMainMapBegin))
	if got := c.State().Minimap.Phase; got != MinimapMainMap {
		t.Fatalf("phase = %v, want main-map", got)
	}

	if p := c.PlanDraw(true); p.Minimap != MinimapFull {
		t.Errorf("indexed draw = %v, want full map", p.Minimap)
	}
	if p := c.PlanDraw(false); p.Minimap != MinimapBlip || !p.KeepVertical {
		t.Errorf("blip draw = %+v, want blip keeping vertical position", p)
	}

	c.BindPixelShader(0x201, nil)
	if got := c.State().Minimap.Phase; got != MinimapMainMap {
		t.Errorf("foreign shader ended the main map: %v", got)
	}
	c.BindPixelShader(0x202, role(shader.RoleMainMapEnd))
	if got := c.State().Minimap.Phase; got != MinimapFinished {
		t.Errorf("phase = %v, want finished", got)
	}
}

func TestMainMapSkipsUIMatrix(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	c.BindPixelShader(0x200, role(shader.RoleMainMapBegin))
	if res := uiMatrix(c, matrixAt(400, 300, 16)); res.Rewritten {
		t.Error("UI matrix rewritten during the main map")
	}
}

func TestMinimapCenterPrim(t *testing.T) {
	c := newTestClassifier(true)
	beginMinimap(c)
	c.Upload(Upload{Stage: render.StageVertex, Start: 0, Data: matrixAt(170, 580, 0)})
	if got := c.State().Minimap.LastPosition; got != [3]float32{170, 580, 0} {
		t.Fatalf("LastPosition = %v", got)
	}
	c.Upload(Upload{Stage: render.StagePixel, Start: 4, Data: []float32{1, 1, 1, 1}})
	if !c.State().Minimap.CenterPrim {
		t.Fatal("center prim not detected")
	}

	if p := c.PlanDraw(false); p.Minimap != MinimapBlip || !p.KeepVertical {
		t.Errorf("first blip = %+v, want keep-vertical blip", p)
	}
	if p := c.PlanDraw(false); p.KeepVertical {
		t.Error("center prim flag not cleared after one draw")
	}
	if p := c.PlanDraw(true); p.Minimap != MinimapBackground {
		t.Errorf("indexed draw = %v, want background", p.Minimap)
	}
	if got := c.State().Minimap.PrimsDrawn; got != 3 {
		t.Errorf("PrimsDrawn = %d, want 3", got)
	}
}

func TestMinimapVerticalFix(t *testing.T) {
	c := newTestClassifier(true)
	e := c.Env()
	e.Settings.Render.VertFixMap = true
	c.SetEnv(e)
	beginMinimap(c)

	c.Upload(Upload{Stage: render.StagePixel, Start: 2, Data: []float32{0, 0, 0, 1}})
	c.Upload(Upload{Stage: render.StagePixel, Start: 4, Data: []float32{0, 0, 0, 1}})
	st := c.State().Minimap
	if st.PS23 != 1 || st.PS43 != 1 {
		t.Fatalf("PS23 = %v, PS43 = %v, want 1 and 1", st.PS23, st.PS43)
	}
	if p := c.PlanDraw(false); !p.KeepVertical {
		t.Error("vertical fix not applied")
	}
}

func TestDepthOfField(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	res := c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: []float32{1.0 / 1920, 1.0 / 1080, 0, 0}})
	if !c.State().DepthOfField {
		t.Fatal("depth of field not detected")
	}
	if res.Matched != ActDepthOfField || !res.Rewritten {
		t.Fatalf("Matched = %v, Rewritten = %v", res.Matched, res.Rewritten)
	}
	want := float32(1.0/1920) * float32(2560.0/1080.0)
	if !near(res.Data[1]*1e3, want*1e3) || res.Data[0] != 1.0/1920 {
		t.Errorf("Data = %v, want [%v %v 0 0]", res.Data, float32(1.0/1920), want)
	}

	c.BindPixelShader(0x55, nil)
	if c.State().DepthOfField {
		t.Error("pixel shader bind did not clear depth of field")
	}
}

func TestDepthOfFieldIgnoresOtherResolutions(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: []float32{1.0 / 1920, 1.0 / 1200, 0, 0}})
	if c.State().DepthOfField {
		t.Error("16:10 inverse resolution detected as depth of field")
	}

	e := c.Env()
	e.Settings.Render.FixDOF = false
	c.SetEnv(e)
	c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: []float32{1.0 / 1920, 1.0 / 1080, 0, 0}})
	if c.State().DepthOfField {
		t.Error("depth of field detected with the fix disabled")
	}
}

func TestPlanDrawCullAndKill(t *testing.T) {
	c := newTestClassifier(true)
	e := c.Env()
	e.Settings.Debug.CullPS = 0x42
	e.Settings.Render.KillDOF = true
	c.SetEnv(e)

	if p := c.PlanDraw(false); p.Skip {
		t.Errorf("draw skipped with no cull match: %+v", p)
	}
	c.BindPixelShader(0x42, nil)
	if p := c.PlanDraw(false); !p.Skip || p.Reason != "cull-ps" {
		t.Errorf("plan = %+v, want cull-ps", p)
	}

	c.BindPixelShader(0x43, nil)
	enterUI(c)
	c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: []float32{1.0 / 1920, 1.0 / 1080, 0, 0}})
	if p := c.PlanDraw(true); !p.Skip || p.Reason != "kill-dof" {
		t.Errorf("plan = %+v, want kill-dof", p)
	}
}

func TestPlanDrawOnTop(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	uiMatrix(c, matrixAt(0, 5, 40))

	p := c.PlanDraw(false)
	if !p.OnTop || p.Technique != config.OnTopXRay {
		t.Errorf("plan = %+v, want x-ray overlay", p)
	}

	e := c.Env()
	e.Settings.Nametags.OnTop = config.OnTopOff
	c.SetEnv(e)
	if p := c.PlanDraw(false); p.OnTop {
		t.Error("overlay with technique off")
	}

	e.TempOnTop = true
	c.SetEnv(e)
	if p := c.PlanDraw(false); !p.OnTop || p.Technique != config.OnTopAlways {
		t.Errorf("held key plan = %+v, want technique 1", p)
	}
}

func TestResetClearsFrameState(t *testing.T) {
	c := newTestClassifier(true)
	enterUI(c)
	uiMatrix(c, matrixAt(0, 5, 40))
	beginMinimap(c)
	c.BindPixelShader(0x77, nil)
	c.Upload(Upload{Stage: render.StageVertex, Start: 1, Data: []float32{1.0 / 1920, 1.0 / 1080, 0, 0}})

	c.Reset()
	if got := c.State(); got != (FrameState{}) {
		t.Errorf("State() after Reset = %+v, want zero", got)
	}
	if c.Env().BackBufferWidth != 2560 {
		t.Error("Reset cleared the environment")
	}
}

func TestTrackedDescriptorRecordsConstants(t *testing.T) {
	c := newTestClassifier(true)
	d := role(shader.RoleText)
	c.BindPixelShader(shader.TextPS, d)
	c.Upload(Upload{Stage: render.StagePixel, Start: 3, Data: []float32{1, 2, 3, 4}})
	if got := d.Register(3); got != [4]float32{1, 2, 3, 4} {
		t.Errorf("Register(3) = %v", got)
	}
	if d.Uploads != 1 {
		t.Errorf("Uploads = %d, want 1", d.Uploads)
	}
}

func TestNamesAreStable(t *testing.T) {
	if ActUIMatrix.String() != "ui-matrix" {
		t.Errorf("ActUIMatrix = %q", ActUIMatrix)
	}
	if MinimapMainMap.String() != "main-map" {
		t.Errorf("MinimapMainMap = %q", MinimapMainMap)
	}
	if NametagsEnded.String() != "nametags-ended" {
		t.Errorf("NametagsEnded = %q", NametagsEnded)
	}
	if Action(200).String() != "action(?)" {
		t.Errorf("unknown action = %q", Action(200))
	}
}
