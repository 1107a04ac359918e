// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader identifies host shader objects by the content of their
// bytecode.
//
// A [Registry] computes a [Fingerprint] (CRC-32) once per shader handle and
// memoizes it, then maps fingerprints onto the small table of shaders the
// classifier cares about ([KnownShaders]). Shaders whose bytecode cannot be
// fetched are [Unknown] and never match a tracked entry.
package shader
