// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package transform maps between the title's native coordinate space and
// the corrected display space.
//
// The same [Params] drive both directions: [Params.Forward] converts a
// display-space point, such as an OS cursor position, into game space, and
// [Params.Inverse] converts game space back into display space. The render
// side applies the inverse to UI matrices through [CorrectUI], so pointer
// input and rendered UI line up exactly.
//
// Everything in this package is a pure function of its arguments.
package transform
