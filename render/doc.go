// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the device boundary of the correction engine.
//
// The engine never talks to a graphics API directly. Every intercepted call
// carries the [Device] it was issued against, and the engine forwards the
// original or a patched call through that interface.
//
// # Key Principle
//
// The engine RECEIVES the device from the interception layer, it does NOT
// create one. A call whose device differs from the primary device passes
// through untouched.
//
// # Core Types
//
//   - Device: the original, unhooked device functions
//   - Shader: a host shader object that can report its bytecode
//   - Viewport, Rect: per-draw geometry
//   - StateBlock: depth, alpha-test and blend state
//   - Recorder: an in-memory Device for tests and capture replay
package render
