// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the engine settings.
//
// [Settings] is the persisted form, read and written as JSON by [Load] and
// [Save]. [Live] is the form shared between threads: the input hook thread
// flips individual fields with atomic stores, and the render thread takes a
// [Live.Snapshot] once per frame.
package config
