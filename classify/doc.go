// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package classify infers what the host is drawing from the shader binds
// and constant uploads it issues.
//
// The host never says "this is UI" or "this is the minimap". Instead each
// phase is recognized by a signature: a characteristic constant value, a
// shader fingerprint, or a transform whose translation lands on one of the
// depths flat UI uses. [Rules] is the signature table; [Classifier] applies
// it to every upload and keeps the result in a [FrameState] that the draw
// path reads.
//
// Uploads that belong to a recognized phase may be rewritten. The
// rewritten data is returned to the caller, which forwards it to the host
// device in place of the original.
package classify
