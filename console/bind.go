// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/gogpu/aspect/config"
)

// Bind registers the engine's variables on r, backed by live.
func Bind(r *Registry, live *config.Live) error {
	frames := new(atomic.Int32)
	frames.Store(1)

	vars := []Var{
		BoolVar("AspectCorrection", "correct UI for aspect ratios wider than 16:9", &live.AspectCorrection),
		BoolVar("CenterUI", "center flat UI in a 16:9 region", &live.CenterUI),
		FloatVar("NameShiftCoeff", "depth scale applied to nametags drawn on top", &live.NameShift),
		BoolVar("AllowScissor", "pass scissor rectangles through", &live.AllowScissor),
		BoolVar("RemapScissor", "remap scissor rectangles into the UI region", &live.RemapScissor),
		BoolVar("FixMinimap", "keep the minimap's proportions", &live.FixMinimap),
		BoolVar("VertFixMap", "vertical-fix mode for the minimap", &live.VertFixMap),
		BoolVar("FixDOF", "correct the depth-of-field resolution constant", &live.FixDOF),
		BoolVar("KillDOF", "skip depth-of-field draws", &live.KillDOF),
		BoolVar("AllowBackground", "keep rendering while the window is inactive", &live.AllowBackground),
		IntVar("FramesToTrace", "frames traced by TraceFrame", frames, 1, math.MaxInt32),
		{
			Name: "TraceFrame",
			Help: "trace the next FramesToTrace frames",
			Get:  func() string { return strconv.Itoa(int(live.TraceFrames.Load())) },
			Set: func(s string) error {
				on, err := strconv.ParseBool(s)
				if err != nil {
					return fmt.Errorf("%w: %q is not a boolean", ErrBadValue, s)
				}
				if on {
					live.TraceFrames.Store(frames.Load())
				} else {
					live.TraceFrames.Store(0)
				}
				return nil
			},
		},
		BoolVar("Trace.Shaders", "log shader binds while tracing", &live.TraceShaders),
		BoolVar("Trace.UI", "log UI classification while tracing", &live.TraceUI),
		BoolVar("Trace.Minimap", "log minimap classification while tracing", &live.TraceMinimap),
		BoolVar("Trace.Nametags", "log nametag classification while tracing", &live.TraceNametags),
		HexVar("Render.CullVS", "skip draws with this vertex shader", &live.CullVS),
		HexVar("Render.CullPS", "skip draws with this pixel shader", &live.CullPS),
		FloatVar("Render.MapScale", "minimap scale", &live.MapScale),
		FloatVar("Mouse.YOff", "vertical cursor offset", &live.MouseYOffset),
		FloatVar("HUD.XOff", "horizontal UI offset when not auto-calculated", &live.HUDXOffset),
		BoolVar("HUD.AutoCalc", "compute the horizontal UI offset", &live.AutoCalc),
		IntVar("Nametags.OnTop", "0 off, 1 always on top, 2 x-ray", &live.OnTop, config.OnTopOff, config.OnTopXRay),
	}

	var errs []error
	for _, v := range vars {
		errs = append(errs, r.Register(v))
	}
	return errors.Join(errs...)
}
