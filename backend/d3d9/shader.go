// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package d3d9

import (
	"fmt"

	d3d "github.com/gonutz/d3d9"

	"github.com/gogpu/aspect/render"
)

// function caches shader bytecode fetched from the driver.
type function struct {
	code []byte
	err  error
	done bool
}

func (f *function) load(get func() ([]byte, d3d.Error)) {
	if f.done {
		return
	}
	f.done = true
	code, err := get()
	if err != nil {
		f.err = fmt.Errorf("d3d9: get shader function: %w", err)
		return
	}
	f.code = code
}

func (f *function) size(get func() ([]byte, d3d.Error)) int {
	f.load(get)
	return len(f.code)
}

func (f *function) bytecode(get func() ([]byte, d3d.Error), dst []byte) (int, error) {
	f.load(get)
	if f.err != nil {
		return 0, f.err
	}
	if len(dst) < len(f.code) {
		return 0, render.ErrShortBuffer
	}
	return copy(dst, f.code), nil
}

// VertexShader is a render.Shader backed by a Direct3D 9 vertex shader.
type VertexShader struct {
	shader *d3d.VertexShader
	fn     function
}

// BytecodeSize implements render.Shader.
func (s *VertexShader) BytecodeSize() int {
	return s.fn.size(s.shader.GetFunction)
}

// Bytecode implements render.Shader.
func (s *VertexShader) Bytecode(dst []byte) (int, error) {
	return s.fn.bytecode(s.shader.GetFunction, dst)
}

// PixelShader is a render.Shader backed by a Direct3D 9 pixel shader.
type PixelShader struct {
	shader *d3d.PixelShader
	fn     function
}

// BytecodeSize implements render.Shader.
func (s *PixelShader) BytecodeSize() int {
	return s.fn.size(s.shader.GetFunction)
}

// Bytecode implements render.Shader.
func (s *PixelShader) Bytecode(dst []byte) (int, error) {
	return s.fn.bytecode(s.shader.GetFunction, dst)
}
