// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/aspect/render"
)

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Writer encodes events as JSON lines.
type Writer struct {
	mu  sync.Mutex
	out *countingWriter
	bw  *bufio.Writer
	enc *json.Encoder

	shaders map[render.Shader]uint32
	devices map[render.Device]uint32
	seq     uint64
}

// NewWriter returns a Writer encoding to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	out := &countingWriter{w: w}
	bw := bufio.NewWriter(out)
	return &Writer{
		out:     out,
		bw:      bw,
		enc:     json.NewEncoder(bw),
		shaders: make(map[render.Shader]uint32),
		devices: make(map[render.Device]uint32),
	}
}

// Emit writes ev, filling in its sequence number and device id.
func (w *Writer) Emit(dev render.Device, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	ev.Seq = w.seq
	if dev != nil {
		id, ok := w.devices[dev]
		if !ok {
			id = uint32(len(w.devices) + 1)
			w.devices[dev] = id
		}
		ev.Device = id
	}
	if err := w.enc.Encode(ev); err != nil {
		return fmt.Errorf("trace: write event %d: %w", ev.Seq, err)
	}
	return nil
}

// EmitShader writes a shader bind, attaching the bytecode when s is seen
// for the first time.
func (w *Writer) EmitShader(dev render.Device, kind Kind, s render.Shader) error {
	ev := Event{Kind: kind}
	if s != nil {
		w.mu.Lock()
		id, ok := w.shaders[s]
		if !ok {
			id = uint32(len(w.shaders) + 1)
			w.shaders[s] = id
			ev.Code = fetchBytecode(s)
		}
		w.mu.Unlock()
		ev.Shader = id
	}
	return w.Emit(dev, ev)
}

func fetchBytecode(s render.Shader) []byte {
	size := s.BytecodeSize()
	if size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	n, err := s.Bytecode(buf)
	if err != nil {
		slogger().Warn("trace: bytecode unavailable", "err", err)
		return nil
	}
	return buf[:n]
}

// Flush writes buffered events to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("trace: flush: %w", err)
	}
	return nil
}

// Stats returns the number of events and flushed bytes written.
func (w *Writer) Stats() (events uint64, bytes int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq, w.out.n
}
