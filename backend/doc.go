// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects the device a capture is replayed onto.
//
// Backends register a [DeviceFactory] from init(). The recording backend
// is always available; importing backend/wgpu adds a WebGPU render pass
// target:
//
//	import _ "github.com/gogpu/aspect/backend/wgpu"
//
//	dev, err := backend.Get("wgpu", 2560, 1080)
//
// A live D3D9 device cannot be created from a size alone, so backend/d3d9
// wraps an existing device instead of registering a factory.
package backend
