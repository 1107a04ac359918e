// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command adreplay replays captured device calls through the aspect engine
// and reports what the engine did with them.
//
// Usage:
//
//	adreplay -in a.jsonl[,b.jsonl] [-config settings.json] [-png out.png] [-v]
//
// Captures are replayed concurrently, each into its own engine and device.
// With -png, the viewports of every draw reaching the recording device are
// rendered to an image, one per capture; -png selects the recorder backend
// unless -backend names another.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/remeh/sizedwaitgroup"

	"github.com/gogpu/aspect"
	"github.com/gogpu/aspect/backend"
	"github.com/gogpu/aspect/config"

	// Registers the wgpu pass backend.
	_ "github.com/gogpu/aspect/backend/wgpu"
)

func main() {
	var (
		in       = flag.String("in", "", "comma-separated capture files")
		cfgPath  = flag.String("config", "", "settings file (defaults when empty)")
		pngOut   = flag.String("png", "", "write draw viewports to this PNG")
		backName = flag.String("backend", "", "replay device backend (default: best available, or $"+backend.EnvBackend+")")
		width    = flag.Uint("width", 2560, "back buffer width")
		height   = flag.Uint("height", 1080, "back buffer height")
		verbose  = flag.Bool("v", false, "log classifier transitions")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	aspect.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	inputs := splitInputs(*in)
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "adreplay: no capture given (-in)")
		flag.Usage()
		os.Exit(2)
	}

	settings := config.Defaults()
	if *cfgPath != "" {
		var err error
		if settings, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "adreplay: %v\n", err)
			os.Exit(1)
		}
	}
	if *pngOut != "" && *backName == "" {
		*backName = backend.BackendRecorder
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	j := job{
		settings: settings,
		backend:  *backName,
		width:    uint32(*width),
		height:   uint32(*height),
	}
	results := make([]result, len(inputs))
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for i, path := range inputs {
		wg.Add()
		go func(i int, path string) {
			defer wg.Done()
			results[i] = j.replay(ctx, path)
		}(i, path)
	}
	wg.Wait()

	failed := false
	for i, r := range results {
		fmt.Println(r.summary())
		if r.err != nil {
			failed = true
			continue
		}
		if *pngOut == "" {
			continue
		}
		if r.recorder == nil {
			fmt.Fprintf(os.Stderr, "adreplay: %s: -png needs the %s backend, replayed on %s\n", r.path, backend.BackendRecorder, r.backend)
			failed = true
			continue
		}
		name := pngName(*pngOut, i, len(results))
		if err := writePNG(name, renderViewports(r.recorder, r.params)); err != nil {
			fmt.Fprintf(os.Stderr, "adreplay: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// splitInputs splits a comma-separated file list, dropping empty entries.
func splitInputs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// pngName returns the output name for capture i of n: base itself for a
// single capture, otherwise base with the index before the extension.
func pngName(base string, i, n int) string {
	if n == 1 {
		return base
	}
	ext := ".png"
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s-%d%s", stem, i+1, ext)
}
