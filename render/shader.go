// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// ErrShortBuffer is returned by Shader.Bytecode when dst cannot hold the
// whole program.
var ErrShortBuffer = errors.New("render: bytecode buffer too small")

// Shader is a host-created vertex or pixel shader object.
//
// The engine only ever looks shaders up by identity and never controls their
// lifetime. Implementations must be comparable.
type Shader interface {
	// BytecodeSize returns the size of the compiled program in bytes, or 0
	// when the host cannot provide it.
	BytecodeSize() int

	// Bytecode copies the compiled program into dst and returns the number
	// of bytes written.
	Bytecode(dst []byte) (int, error)
}

// MemoryShader is a Shader whose bytecode lives in memory. Tests and capture
// replay use it in place of host shader objects.
type MemoryShader struct {
	Code []byte

	// Fetches counts Bytecode calls.
	Fetches int
}

// NewMemoryShader returns a shader over a copy of code.
func NewMemoryShader(code []byte) *MemoryShader {
	return &MemoryShader{Code: append([]byte(nil), code...)}
}

// BytecodeSize implements Shader.
func (s *MemoryShader) BytecodeSize() int {
	return len(s.Code)
}

// Bytecode implements Shader.
func (s *MemoryShader) Bytecode(dst []byte) (int, error) {
	s.Fetches++
	if len(dst) < len(s.Code) {
		return 0, ErrShortBuffer
	}
	return copy(dst, s.Code), nil
}

var _ Shader = (*MemoryShader)(nil)
