// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is written into saved settings files.
const Version = "0.0.8"

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("config: invalid setting")

// Nametag on-top techniques.
const (
	OnTopOff    = 0
	OnTopAlways = 1
	OnTopXRay   = 2
)

// Settings is the persisted configuration.
type Settings struct {
	Version    string          `json:"version"`
	Render     RenderSettings  `json:"render"`
	Scaling    ScalingSettings `json:"scaling"`
	Nametags   NametagSettings `json:"nametags"`
	Trace      TraceSettings   `json:"trace"`
	Debug      DebugSettings   `json:"debug"`
	Thresholds Thresholds      `json:"thresholds"`
}

// RenderSettings toggles the individual corrections.
type RenderSettings struct {
	AspectCorrection bool    `json:"aspect_correction"`
	CenterUI         bool    `json:"center_ui"`
	FixMinimap       bool    `json:"fix_minimap"`
	VertFixMap       bool    `json:"vert_fix_map"`
	FixDOF           bool    `json:"fix_dof"`
	KillDOF          bool    `json:"kill_dof"`
	AllowScissor     bool    `json:"allow_scissor"`
	RemapScissor     bool    `json:"remap_scissor"`
	AllowBackground  bool    `json:"allow_background"`
	BackgroundFPS    float64 `json:"background_fps"`
	MapScale         float64 `json:"map_scale"`
}

// ScalingSettings holds the manual offsets.
type ScalingSettings struct {
	MouseYOffset float64 `json:"mouse_y_offset"`
	HUDXOffset   float64 `json:"hud_x_offset"`
	AutoCalc     bool    `json:"auto_calc"`
	Locked       bool    `json:"locked"`
}

// NametagSettings controls the priority overlay.
type NametagSettings struct {
	OnTop         int     `json:"always_on_top"`
	AspectCorrect bool    `json:"aspect_correct"`
	NameShift     float64 `json:"name_shift"`
}

// TraceSettings selects the categories logged while a frame is traced.
type TraceSettings struct {
	Shaders  bool `json:"shaders"`
	UI       bool `json:"ui"`
	Minimap  bool `json:"minimap"`
	Nametags bool `json:"nametags"`
}

// DebugSettings holds diagnostic shader fingerprints. Zero disables each.
type DebugSettings struct {
	CullVS       Hex `json:"cull_vs"`
	CullPS       Hex `json:"cull_ps"`
	MainMapBegin Hex `json:"main_map_begin_ps"`
	MainMapEnd   Hex `json:"main_map_end_ps"`
}

// Thresholds are the empirically tuned constants of the classifier.
type Thresholds struct {
	// DOFEpsilon is the tolerance between the uploaded inverse resolution
	// and the reference aspect.
	DOFEpsilon float64 `json:"dof_epsilon"`

	// MinimapEpsilon is the tolerance of the -1/height minimap trigger.
	MinimapEpsilon float64 `json:"minimap_epsilon"`

	// MinimapShaderChanges is how many foreign pixel shader binds end a
	// minimap session.
	MinimapShaderChanges int `json:"minimap_shader_changes"`

	// CenterPrimX and CenterPrimY bound the position of the minimap's
	// center marker (exclusive).
	CenterPrimX [2]float64 `json:"center_prim_x"`
	CenterPrimY [2]float64 `json:"center_prim_y"`

	// ReservedDepths are the Z values used by flat UI.
	ReservedDepths []float64 `json:"reserved_depths"`

	// LoadingDepth and deeper elements are never centered.
	LoadingDepth float64 `json:"loading_depth"`

	// FullscreenX/Y is the translation of fullscreen effects, drawn at a
	// depth of at most FullscreenMaxZ.
	FullscreenX    float64 `json:"fullscreen_x"`
	FullscreenY    float64 `json:"fullscreen_y"`
	FullscreenMaxZ float64 `json:"fullscreen_max_z"`

	// QuestMarkerScale identifies quest indicator billboards.
	QuestMarkerScale float64 `json:"quest_marker_scale"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		Version: Version,
		Render: RenderSettings{
			AspectCorrection: true,
			CenterUI:         true,
			FixMinimap:       true,
			FixDOF:           true,
			AllowScissor:     true,
			AllowBackground:  true,
			BackgroundFPS:    15,
			MapScale:         1,
		},
		Scaling: ScalingSettings{
			AutoCalc: true,
			Locked:   true,
		},
		Nametags: NametagSettings{
			OnTop:     OnTopXRay,
			NameShift: 1.01,
		},
		Thresholds: DefaultThresholds(),
	}
}

// DefaultThresholds returns the tuned classifier constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DOFEpsilon:           2.0,
		MinimapEpsilon:       1e-6,
		MinimapShaderChanges: 2,
		CenterPrimX:          [2]float64{165, 175},
		CenterPrimY:          [2]float64{575, 585},
		ReservedDepths:       []float64{0, 16, 32, 100},
		LoadingDepth:         700,
		FullscreenX:          640,
		FullscreenY:          360,
		FullscreenMaxZ:       32,
		QuestMarkerScale:     1.0 / 128.0,
	}
}

// Validate reports settings that would make the engine misbehave.
func (s Settings) Validate() error {
	var errs []error
	if s.Nametags.OnTop < OnTopOff || s.Nametags.OnTop > OnTopXRay {
		errs = append(errs, fmt.Errorf("%w: nametags.always_on_top %d not in [0, 2]", ErrInvalid, s.Nametags.OnTop))
	}
	if s.Nametags.NameShift <= 0 {
		errs = append(errs, fmt.Errorf("%w: nametags.name_shift must be positive", ErrInvalid))
	}
	if s.Render.MapScale <= 0 {
		errs = append(errs, fmt.Errorf("%w: render.map_scale must be positive", ErrInvalid))
	}
	if s.Render.BackgroundFPS < 0 {
		errs = append(errs, fmt.Errorf("%w: render.background_fps is negative", ErrInvalid))
	}
	if s.Thresholds.MinimapShaderChanges < 0 {
		errs = append(errs, fmt.Errorf("%w: thresholds.minimap_shader_changes is negative", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Hex is a 32-bit value stored as a hexadecimal string, used for shader
// fingerprints.
type Hex uint32

// MarshalText implements encoding.TextMarshaler.
func (h Hex) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%08x", uint32(h))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hex) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		*h = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("config: hex value %q: %w", text, err)
	}
	*h = Hex(v)
	return nil
}
