// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package aspect corrects 16:9-authored user interfaces for wider displays
// by rewriting the device calls a title issues.
//
// The engine sits behind a function-interception layer. It never creates
// or owns a graphics device: every intercepted call carries the host
// device, and the engine forwards the call, unchanged or corrected, to that
// device's original functions.
//
// # Overview
//
// Each call passes through the same stages:
//
//   - shader binds are fingerprinted by the shader registry (package shader)
//   - constant uploads and draws are classified as world, UI, minimap,
//     nametag or post-processing content (package classify)
//   - UI transforms are rewritten into a centered 16:9 region (package
//     transform)
//   - minimap draws get a temporary viewport and scissor rectangles follow
//     a policy (package patch)
//   - nametags may be drawn over world geometry (package overlay)
//
// The host's present call delimits frames. Settings, which the keyboard
// hook and the console change on other threads, are read once per frame.
//
// # Quick Start
//
//	live := config.NewLive(settings)
//	e := aspect.New(live)
//	report := e.Install(interceptor)
//
// Cursor positions are remapped on the input thread with e.Remapper().
//
// # Logging
//
// By default aspect produces no log output. Call [SetLogger] to enable
// structured logging via [log/slog]. Classifier transitions are logged at
// debug level, rate limited except in frames traced with the
// TraceFrame console variable or hotkey.
//
// # Capture and replay
//
// [WithCapture] records every intercepted call. The adreplay command
// replays captures into an engine driving a recording device.
package aspect
