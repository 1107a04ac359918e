// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package input remaps cursor coordinates and applies keyboard hotkeys.
//
// Both run on the host's input hook thread, not the render thread. The
// remap reads the parameters the engine publishes once per frame, and the
// hotkeys write single atomic fields of [config.Live].
package input
