// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package console exposes the live settings as named variables for an
// in-game console or a debug command line.
//
//	r := console.NewRegistry()
//	if err := console.Bind(r, live); err != nil {
//		return err
//	}
//	out, err := r.Exec("centerui toggle")
package console
