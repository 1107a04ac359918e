// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

// Package d3d9 adapts a Direct3D 9 device (github.com/gonutz/d3d9) to
// render.Device so the engine can run inside a host process.
//
// The interception layer calls [Wrap] once per device it sees and converts
// each hooked call's arguments: shader objects through
// [Device.VertexShader] and [Device.PixelShader], present parameters
// through [PresentParameters].
package d3d9
