// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trace captures intercepted device calls to a JSON-lines file and
// replays them.
//
// A capture is written by wrapping the engine's Sink in a [Tap]. Shader
// bytecode is stored once, with the first bind of each shader, so a replay
// reproduces the fingerprints the live session saw. [Player] feeds a
// capture back into any Sink, typically an engine driving a
// [render.Recorder] or a GPU backend.
package trace
