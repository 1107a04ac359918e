// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu replays corrected device calls onto a gogpu/wgpu render pass.
//
// [PassDevice] implements render.Device over a core.CoreRenderPassEncoder.
// Viewport, scissor and draw calls are forwarded to the pass. Shader
// binds, constant uploads and fixed-function state have no direct WebGPU
// counterpart: they are kept as shadow state that the host reads when it
// selects a pipeline and fills its uniform buffers.
//
// Importing the package registers a headless "wgpu" backend, a PassDevice
// without an encoder, which validates the call stream the same way a real
// pass would:
//
//	import _ "github.com/gogpu/aspect/backend/wgpu"
package wgpu
