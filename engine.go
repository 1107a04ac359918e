// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/gogpu/aspect/classify"
	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/input"
	"github.com/gogpu/aspect/overlay"
	"github.com/gogpu/aspect/patch"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/trace"
	"github.com/gogpu/aspect/transform"
)

// Engine receives intercepted device calls, classifies them and forwards
// corrected calls to the device.
//
// Every method except Params, Live and the hook bookkeeping belongs to the
// render thread. Settings changed from other threads reach the engine
// through config.Live and take effect at the next frame.
type Engine struct {
	live       *config.Live
	shaders    *shader.Registry
	classifier *classify.Classifier
	patcher    *patch.Patcher
	overlay    overlay.Renderer
	sink       trace.Sink

	// Negotiated device and back buffer.
	device           render.Device
	backBufferWidth  uint32
	backBufferHeight uint32
	negotiated       bool

	phase      FramePhase
	frames     uint64
	scenes     int
	traced     bool
	settings   config.Settings
	mainMap    [2]shader.Fingerprint
	frameFuncs []func()

	draws   int
	skipped int

	params  atomic.Pointer[transform.Params]
	pointer atomic.Pointer[transform.Params]
	limiter *rate.Limiter

	hooksMu   sync.RWMutex
	originals map[Target]any
}

// New creates an engine reading its settings from live. A nil live uses
// the default settings.
func New(live *config.Live, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if live == nil {
		live = config.NewLive(config.Defaults())
	}

	e := &Engine{
		live:       live,
		shaders:    shader.NewRegistry(o.known),
		classifier: classify.New(),
		patcher:    patch.New(),
		phase:      FrameActive,
		originals:  make(map[Target]any),
	}
	if o.logEvery > 0 {
		e.limiter = rate.NewLimiter(rate.Every(o.logEvery), 1)
	} else {
		e.limiter = rate.NewLimiter(rate.Inf, 0)
	}

	e.sink = e
	if o.capture != nil {
		e.sink = trace.NewTap(e, o.capture)
	}
	e.classifier.OnTransition(e.logTransition)
	e.refresh()
	return e
}

// Sink returns the entry point for intercepted calls: the engine itself,
// or a capturing wrapper when WithCapture was given.
func (e *Engine) Sink() trace.Sink {
	return e.sink
}

// Live returns the live settings the engine reads.
func (e *Engine) Live() *config.Live {
	return e.live
}

// Params returns the correction parameters of the current frame. It is
// safe to call from any goroutine.
func (e *Engine) Params() transform.Params {
	return *e.params.Load()
}

// PointerParams returns the pointer-space parameters published with the
// current frame's Params. It is safe to call from any goroutine.
func (e *Engine) PointerParams() transform.Params {
	return *e.pointer.Load()
}

type pointerSource struct{ e *Engine }

func (s pointerSource) Params() transform.Params { return s.e.PointerParams() }

// Remapper returns a pointer remapper following this engine's parameters.
// It changes with the render side only at frame boundaries.
func (e *Engine) Remapper() input.Remapper {
	return input.Remapper{Source: pointerSource{e}}
}

// State returns the classifier's frame state.
func (e *Engine) State() classify.FrameState {
	return e.classifier.State()
}

// Device returns the negotiated device, or nil.
func (e *Engine) Device() render.Device {
	return e.device
}

// owns reports whether calls on dev are classified. Before negotiation
// every device is; afterwards only the negotiated one.
func (e *Engine) owns(dev render.Device) bool {
	return e.device == nil || dev == e.device
}

// NegotiatePresent records the device and back-buffer size from the host's
// present parameters and reports whether they were accepted. The 1x1
// probe device some hosts create first is ignored.
func (e *Engine) NegotiatePresent(dev render.Device, pp render.PresentParameters) bool {
	if pp.IsProbe() {
		Logger().Debug("aspect: ignoring probe device")
		return false
	}

	e.device = dev
	e.backBufferWidth = pp.BackBufferWidth
	e.backBufferHeight = pp.BackBufferHeight
	e.negotiated = transform.IsWider(pp.BackBufferWidth, pp.BackBufferHeight)
	e.refresh()

	p := e.Params()
	Logger().Info("aspect: device negotiated",
		"width", pp.BackBufferWidth,
		"height", pp.BackBufferHeight,
		"windowed", pp.Windowed,
		"widescreen", e.negotiated,
		"scale", p.ScaleX,
		"offset", p.OffsetX)
	return true
}

// SetVertexShader identifies s and binds it on dev.
func (e *Engine) SetVertexShader(dev render.Device, s render.Shader) error {
	if e.owns(dev) {
		fp, d := e.shaders.Resolve(s)
		e.classifier.BindVertexShader(fp, d)
		if e.tracing(e.settings.Trace.Shaders) {
			Logger().Debug("aspect: bind", "stage", render.StageVertex, "fp", fp, "role", e.classifier.State().VSRole)
		}
	}
	return dev.SetVertexShader(s)
}

// SetPixelShader identifies s and binds it on dev.
func (e *Engine) SetPixelShader(dev render.Device, s render.Shader) error {
	if e.owns(dev) {
		fp, d := e.shaders.Resolve(s)
		e.classifier.BindPixelShader(fp, d)
		if e.tracing(e.settings.Trace.Shaders) {
			Logger().Debug("aspect: bind", "stage", render.StagePixel, "fp", fp, "role", e.classifier.State().PSRole)
		}
	}
	return dev.SetPixelShader(s)
}

// SetVertexShaderConstantF classifies a vertex constant upload and
// forwards it, possibly rewritten.
func (e *Engine) SetVertexShaderConstantF(dev render.Device, start int, data []float32) error {
	if !e.owns(dev) {
		return dev.SetVertexShaderConstantF(start, data)
	}
	return dev.SetVertexShaderConstantF(start, e.upload(render.StageVertex, start, data))
}

// SetPixelShaderConstantF classifies a pixel constant upload and forwards
// it, possibly rewritten.
func (e *Engine) SetPixelShaderConstantF(dev render.Device, start int, data []float32) error {
	if !e.owns(dev) {
		return dev.SetPixelShaderConstantF(start, data)
	}
	return dev.SetPixelShaderConstantF(start, e.upload(render.StagePixel, start, data))
}

func (e *Engine) upload(stage render.Stage, start int, data []float32) []float32 {
	res := e.classifier.Upload(classify.Upload{Stage: stage, Start: start, Data: data})
	if res.Matched != 0 && e.tracing(e.settings.Trace.UI) {
		Logger().Debug("aspect: upload",
			"stage", stage,
			"start", start,
			"count", len(data)/4,
			"action", res.Matched,
			"rewritten", res.Rewritten,
			"center", res.Center)
	}
	return res.Data
}

// SetViewport tracks the host viewport and forwards it.
func (e *Engine) SetViewport(dev render.Device, vp render.Viewport) error {
	if !e.owns(dev) {
		return dev.SetViewport(vp)
	}
	e.classifier.SetViewport(vp)
	return e.patcher.SetViewport(dev, vp)
}

// SetScissorRect applies the scissor policy.
func (e *Engine) SetScissorRect(dev render.Device, r render.Rect) error {
	if !e.owns(dev) {
		return dev.SetScissorRect(r)
	}
	return e.patcher.SetScissorRect(dev, r)
}

// Draw issues a draw call as the classifier plans it: skipped, inside a
// minimap viewport bracket, with the priority overlay, or unchanged.
func (e *Engine) Draw(dev render.Device, call render.DrawCall) error {
	if !e.owns(dev) {
		return dev.Draw(call)
	}
	plan := e.classifier.PlanDraw(call.Indexed)
	if plan.Skip {
		e.skipped++
		if e.tracing(true) {
			Logger().Debug("aspect: draw skipped", "reason", plan.Reason)
		}
		return nil
	}
	e.draws++

	if e.tracing(e.settings.Trace.Minimap) && plan.Minimap != classify.MinimapNone {
		Logger().Debug("aspect: minimap draw",
			"kind", plan.Minimap,
			"viewport", e.patcher.MinimapViewport(plan),
			"prims", e.classifier.State().Minimap.PrimsDrawn)
	}

	issue := func() error { return dev.Draw(call) }
	return e.patcher.Bracket(dev, plan, func() error {
		if plan.OnTop {
			return e.overlay.Draw(dev, plan.Technique, issue)
		}
		return issue()
	})
}

// EndScene counts the scene and forwards the call.
func (e *Engine) EndScene(dev render.Device) error {
	if e.owns(dev) {
		e.scenes++
	}
	return dev.EndScene()
}

func (e *Engine) tracing(category bool) bool {
	return e.traced && category
}

func (e *Engine) logTransition(t classify.Transition) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var category bool
	switch t.Kind {
	case classify.MinimapBegan, classify.MinimapEnded, classify.MainMapBegan, classify.MainMapEnded:
		category = e.settings.Trace.Minimap
	case classify.NametagsBegan, classify.NametagsEnded:
		category = e.settings.Trace.Nametags
	default:
		category = e.settings.Trace.UI
	}
	if !e.tracing(category) && !e.limiter.Allow() {
		return
	}
	l.Debug("aspect: transition",
		"frame", e.frames,
		"kind", t.Kind,
		"vs", t.VS,
		"ps", t.PS,
		"pos", t.Position)
}

// Stats describes engine activity since creation.
type Stats struct {
	Frames       uint64
	Scenes       int // scenes ended in the current frame
	Draws        int
	Skipped      int
	Brackets     int
	OverlayDraws int
	Shaders      shader.Stats
}

// Stats returns engine statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:       e.frames,
		Scenes:       e.scenes,
		Draws:        e.draws,
		Skipped:      e.skipped,
		Brackets:     e.patcher.Brackets(),
		OverlayDraws: e.overlay.Draws(),
		Shaders:      e.shaders.Stats(),
	}
}
