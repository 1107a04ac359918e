// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package aspect

import (
	"time"

	"github.com/gogpu/aspect/shader"
	"github.com/gogpu/aspect/trace"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e := aspect.New(live, aspect.WithCapture(trace.NewWriter(f)))
type Option func(*options)

type options struct {
	known    []shader.Known
	capture  *trace.Writer
	logEvery time.Duration
}

func defaultOptions() options {
	return options{
		known:    shader.KnownShaders(),
		logEvery: 125 * time.Millisecond,
	}
}

// WithKnownShaders replaces the tracked shader table. The main-map
// fingerprints from the settings are tracked in addition.
func WithKnownShaders(known []shader.Known) Option {
	return func(o *options) {
		o.known = known
	}
}

// WithCapture records every intercepted call to w. Calls are captured as
// they arrive, before the engine classifies them, so a replay of the
// capture sees exactly what the host issued.
func WithCapture(w *trace.Writer) Option {
	return func(o *options) {
		o.capture = w
	}
}

// WithTransitionLogInterval limits how often classifier transitions are
// logged outside traced frames. Zero logs every transition.
func WithTransitionLogInterval(d time.Duration) Option {
	return func(o *options) {
		o.logEvery = d
	}
}
