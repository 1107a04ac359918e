// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command adsig prints shader fingerprints for use in settings files and
// known-shader tables.
//
// Usage:
//
//	adsig [-stage vs|ps] file.wgsl|file.bin ...
//
// WGSL sources are compiled to SPIR-V first; any other file is treated as
// raw bytecode, such as a blob dumped from a capture.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gogpu/naga"

	"github.com/gogpu/aspect/render"
	"github.com/gogpu/aspect/shader"
)

func main() {
	stage := flag.String("stage", "ps", "pipeline stage: vs or ps")
	flag.Parse()

	st, err := parseStage(*stage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "adsig: %v\n", err)
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		sig, err := signFile(path, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "adsig: %v\n", err)
			failed = true
			continue
		}
		sig.print(os.Stdout)
	}
	if failed {
		os.Exit(1)
	}
}

type signature struct {
	path        string
	stage       render.Stage
	size        int
	fingerprint shader.Fingerprint
}

func (s signature) print(w io.Writer) {
	fmt.Fprintf(w, "0x%s  %s  %8s  %s\n", s.fingerprint, s.stage, humanize.Bytes(uint64(s.size)), s.path)
}

func parseStage(s string) (render.Stage, error) {
	switch strings.ToLower(s) {
	case "vs", "vertex":
		return render.StageVertex, nil
	case "ps", "pixel", "fs", "fragment":
		return render.StagePixel, nil
	}
	return 0, fmt.Errorf("unknown stage %q", s)
}

func signFile(path string, st render.Stage) (signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return signature{}, err
	}
	code, err := bytecode(path, data)
	if err != nil {
		return signature{}, err
	}
	if len(code) == 0 {
		return signature{}, fmt.Errorf("%s: empty bytecode", path)
	}
	return signature{path: path, stage: st, size: len(code), fingerprint: shader.Checksum(code)}, nil
}

// bytecode returns the bytes a device would report for the file.
func bytecode(path string, data []byte) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".wgsl") {
		return data, nil
	}
	spirv, err := naga.Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: compile: %w", path, err)
	}
	return spirv, nil
}
