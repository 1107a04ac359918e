// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/gogpu/aspect/internal/cache"
	"github.com/gogpu/aspect/render"
)

// DefaultHandleLimit bounds the number of memoized shader handles.
const DefaultHandleLimit = 8192

// Registry fingerprints host shader objects and maps fingerprints to
// tracked descriptors.
//
// Each handle is hashed once, on first sight; later lookups are a map hit.
// Registry belongs to the render thread and performs no locking.
type Registry struct {
	handles *cache.Cache[render.Shader, Fingerprint]
	tracked map[Fingerprint]*Descriptor
	scratch *bufferPool

	hashed   uint64 // bytecode bytes hashed
	failures uint64 // handles fingerprinted as Unknown
}

// NewRegistry creates a registry tracking the given shaders.
func NewRegistry(known []Known) *Registry {
	r := &Registry{
		handles: cache.New[render.Shader, Fingerprint](DefaultHandleLimit),
		tracked: make(map[Fingerprint]*Descriptor, len(known)),
		scratch: newBufferPool(4),
	}
	for _, k := range known {
		r.Track(k)
	}
	return r
}

// Track adds or replaces a tracked shader. Entries with the Unknown
// fingerprint are ignored, so an unset fingerprint disables its role.
func (r *Registry) Track(k Known) {
	if k.Fingerprint == Unknown {
		return
	}
	r.tracked[k.Fingerprint] = &Descriptor{Known: k}
}

// Untrack removes the tracked shader with fingerprint fp.
func (r *Registry) Untrack(fp Fingerprint) {
	delete(r.tracked, fp)
}

// Identify returns the fingerprint of s, hashing its bytecode on first
// sight. A nil shader, or one whose bytecode cannot be fetched, is Unknown.
func (r *Registry) Identify(s render.Shader) Fingerprint {
	if s == nil {
		return Unknown
	}
	if fp, ok := r.handles.Get(s); ok {
		return fp
	}
	fp := r.fingerprintOf(s)
	r.handles.Set(s, fp)
	return fp
}

func (r *Registry) fingerprintOf(s render.Shader) Fingerprint {
	size := s.BytecodeSize()
	if size <= 0 {
		r.failures++
		return Unknown
	}

	buf := r.scratch.get(size)
	defer r.scratch.put(buf)

	n, err := s.Bytecode(buf)
	if err != nil || n == 0 {
		r.failures++
		return Unknown
	}
	r.hashed += uint64(n)
	return Checksum(buf[:n])
}

// Lookup returns the tracked descriptor for fp, or nil.
func (r *Registry) Lookup(fp Fingerprint) *Descriptor {
	if fp == Unknown {
		return nil
	}
	return r.tracked[fp]
}

// Resolve identifies s and looks up its descriptor.
func (r *Registry) Resolve(s render.Shader) (Fingerprint, *Descriptor) {
	fp := r.Identify(s)
	return fp, r.Lookup(fp)
}

// Forget drops the memoized fingerprint for s. Hosts call it when they
// release a shader object whose identity may be reused.
func (r *Registry) Forget(s render.Shader) {
	if s != nil {
		r.handles.Delete(s)
	}
}

// Stats describes registry activity.
type Stats struct {
	Handles     int
	Tracked     int
	Hits        uint64
	Misses      uint64
	Failures    uint64
	BytesHashed uint64
}

// Stats returns registry statistics.
func (r *Registry) Stats() Stats {
	cs := r.handles.Stats()
	return Stats{
		Handles:     cs.Len,
		Tracked:     len(r.tracked),
		Hits:        cs.Hits,
		Misses:      cs.Misses,
		Failures:    r.failures,
		BytesHashed: r.hashed,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d shaders (%d tracked), %s hashed, %d hits, %d misses, %d unknown",
		s.Handles, s.Tracked, humanize.Bytes(s.BytesHashed), s.Hits, s.Misses, s.Failures)
}
