// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/aspect/render"
)

// Reader decodes events written by a Writer.
type Reader struct {
	dec  *json.Decoder
	read int
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: json.NewDecoder(bufio.NewReader(r))}
}

// Next returns the next event, or io.EOF at the end of the capture.
func (r *Reader) Next() (Event, error) {
	var ev Event
	if err := r.dec.Decode(&ev); err != nil {
		if errors.Is(err, io.EOF) {
			return ev, io.EOF
		}
		return ev, fmt.Errorf("trace: event %d: %w", r.read+1, err)
	}
	r.read++
	return ev, nil
}

// Stats summarizes a replay.
type Stats struct {
	Events   int
	Draws    int
	Frames   int
	Devices  int
	Shaders  int
	Bytecode uint64
}

// Player replays a capture into a Sink.
//
// The device that presents first with real present parameters, or failing
// that the first device seen, is replayed on Primary. Every other captured
// device gets its own device from NewDevice.
type Player struct {
	Primary   render.Device
	NewDevice func() render.Device

	devices map[uint32]render.Device
	primary uint32
	shaders map[uint32]*render.MemoryShader
	stats   Stats
}

// NewPlayer returns a player replaying onto primary.
func NewPlayer(primary render.Device) *Player {
	return &Player{
		Primary: primary,
		NewDevice: func() render.Device {
			return render.NewRecorder(1, 1)
		},
		devices: make(map[uint32]render.Device),
		shaders: make(map[uint32]*render.MemoryShader),
	}
}

// Stats returns the replay statistics so far.
func (p *Player) Stats() Stats {
	return p.stats
}

// Play applies every event from r to sink until the capture ends or ctx is
// cancelled. Device errors are returned to the caller with the event
// sequence number.
func (p *Player) Play(ctx context.Context, r *Reader, sink Sink) (Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p.stats, err
		}
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return p.stats, nil
		}
		if err != nil {
			return p.stats, err
		}
		if err := p.Apply(ev, sink); err != nil {
			return p.stats, fmt.Errorf("trace: replay event %d (%s): %w", ev.Seq, ev.Kind, err)
		}
	}
}

func (p *Player) device(ev Event) render.Device {
	if ev.Device == 0 {
		return p.Primary
	}
	if dev, ok := p.devices[ev.Device]; ok {
		return dev
	}

	var dev render.Device
	claim := p.primary == 0
	if ev.Kind == KindPresent && ev.Present != nil && ev.Present.IsProbe() {
		claim = false
	}
	if claim {
		p.primary = ev.Device
		dev = p.Primary
	} else {
		dev = p.NewDevice()
	}
	p.devices[ev.Device] = dev
	p.stats.Devices++
	return dev
}

func (p *Player) shader(ev Event) (render.Shader, error) {
	if ev.Shader == 0 {
		return nil, nil
	}
	if s, ok := p.shaders[ev.Shader]; ok {
		return s, nil
	}
	if len(ev.Code) == 0 {
		return nil, fmt.Errorf("%w %d", ErrUnknownShader, ev.Shader)
	}
	s := render.NewMemoryShader(ev.Code)
	p.shaders[ev.Shader] = s
	p.stats.Shaders++
	p.stats.Bytecode += uint64(len(ev.Code))
	return s, nil
}

// Apply replays a single event.
func (p *Player) Apply(ev Event, sink Sink) error {
	p.stats.Events++

	switch ev.Kind {
	case KindBeginSwap:
		sink.BeginSwap()
		return nil
	case KindEndSwap:
		p.stats.Frames++
		sink.EndSwap()
		return nil
	}

	dev := p.device(ev)
	switch ev.Kind {
	case KindVertexShader, KindPixelShader:
		s, err := p.shader(ev)
		if err != nil {
			return err
		}
		if ev.Kind == KindVertexShader {
			return sink.SetVertexShader(dev, s)
		}
		return sink.SetPixelShader(dev, s)

	case KindVertexConstants:
		return sink.SetVertexShaderConstantF(dev, ev.Start, ev.Data)
	case KindPixelConstants:
		return sink.SetPixelShaderConstantF(dev, ev.Start, ev.Data)

	case KindViewport:
		if ev.Viewport == nil {
			return ErrMalformed
		}
		return sink.SetViewport(dev, *ev.Viewport)

	case KindScissor:
		if ev.Rect == nil {
			return ErrMalformed
		}
		return sink.SetScissorRect(dev, *ev.Rect)

	case KindDraw:
		if ev.Draw == nil {
			return ErrMalformed
		}
		p.stats.Draws++
		return sink.Draw(dev, *ev.Draw)

	case KindEndScene:
		return sink.EndScene(dev)

	case KindPresent:
		if ev.Present == nil {
			return ErrMalformed
		}
		sink.NegotiatePresent(dev, *ev.Present)
		return nil
	}
	slogger().Debug("trace: skipping unknown event", "seq", ev.Seq, "kind", ev.Kind)
	return nil
}
