// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/gogpu/aspect"
	"github.com/gogpu/aspect/backend"
	"github.com/gogpu/aspect/config"
	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/trace"
	"github.com/gogpu/aspect/transform"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

type job struct {
	settings config.Settings
	backend  string
	width    uint32
	height   uint32
}

type result struct {
	path     string
	backend  string
	size     int64
	elapsed  time.Duration
	replay   trace.Stats
	engine   aspect.Stats
	params   transform.Params
	recorder *render.Recorder
	err      error
}

// replay runs one capture through a fresh engine.
func (j job) replay(ctx context.Context, path string) result {
	r := result{path: path}
	start := time.Now()
	defer func() { r.elapsed = time.Since(start) }()

	f, err := os.Open(path)
	if err != nil {
		r.err = err
		return r
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil {
		r.size = fi.Size()
	}

	dev, name, err := j.device()
	if err != nil {
		r.err = err
		return r
	}
	r.backend = name
	r.recorder, _ = dev.(*render.Recorder)

	e := aspect.New(config.NewLive(j.settings))
	player := trace.NewPlayer(dev)
	r.replay, r.err = player.Play(ctx, trace.NewReader(f), e.Sink())
	r.engine = e.Stats()
	r.params = e.Params()
	return r
}

func (j job) device() (render.Device, string, error) {
	if j.backend != "" {
		dev, err := backend.Get(j.backend, j.width, j.height)
		return dev, j.backend, err
	}
	dev, name := backend.Default(j.width, j.height)
	if dev == nil {
		return nil, "", backend.ErrBackendNotAvailable
	}
	return dev, name, nil
}

func (r result) summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s on %s in %s", r.path, humanize.Bytes(uint64(r.size)), r.backend,
		durafmt.Parse(r.elapsed).LimitFirstN(2).Format(shortUnits))
	if r.err != nil {
		fmt.Fprintf(&b, "\n  error: %v", r.err)
		return b.String()
	}
	fmt.Fprintf(&b, "\n  events %s, frames %d, devices %d, bytecode %s",
		humanize.Comma(int64(r.replay.Events)), r.engine.Frames, r.replay.Devices,
		humanize.Bytes(r.replay.Bytecode))
	fmt.Fprintf(&b, "\n  draws %s, skipped %s, bracketed %s, overlay %s",
		humanize.Comma(int64(r.engine.Draws)), humanize.Comma(int64(r.engine.Skipped)),
		humanize.Comma(int64(r.engine.Brackets)), humanize.Comma(int64(r.engine.OverlayDraws)))
	fmt.Fprintf(&b, "\n  %s", r.engine.Shaders)
	if r.params.Active() {
		fmt.Fprintf(&b, "\n  ui region %d px at x=%.0f", transform.RegionWidth(uint32(r.params.NativeHeight)), r.params.OffsetX)
	}
	return b.String()
}
