// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/aspect/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendRecorder records calls in memory. It is always registered.
	BackendRecorder = "recorder"
	// BackendWGPU drives a gogpu/wgpu render pass.
	BackendWGPU = "wgpu"
)

// DeviceFactory creates a device for a back buffer of the given size.
// Replay tools use it to pick the device a capture is played onto.
type DeviceFactory func(width, height uint32) render.Device

func init() {
	Register(BackendRecorder, func(width, height uint32) render.Device {
		return render.NewRecorder(width, height)
	})
}
