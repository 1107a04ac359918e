// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package patch alters viewport and scissor state around draw calls.
package patch
