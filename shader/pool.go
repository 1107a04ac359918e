// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import "math/bits"

// bufferPool reuses bytecode scratch buffers.
//
// Buffers are bucketed by power-of-two size class so a 3 KiB and a 4 KiB
// program share a bucket. The pool is owned by one Registry and is not safe
// for concurrent use.
type bufferPool struct {
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

func newBufferPool(maxPerBucket int) *bufferPool {
	return &bufferPool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// sizeClass returns the exponent of the smallest power of two >= n.
func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// get returns a buffer of length n.
func (p *bufferPool) get(n int) []byte {
	class := sizeClass(n)
	bucket := p.buckets[class]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[class] = bucket[:len(bucket)-1]
		return buf[:n]
	}
	return make([]byte, n, 1<<class)
}

// put returns buf to the pool. Buffers beyond the bucket limit are dropped.
func (p *bufferPool) put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	class := sizeClass(cap(buf))
	if 1<<class != cap(buf) {
		return
	}
	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	clear(buf[:cap(buf)])
	p.buckets[class] = append(bucket, buf[:0])
}

// pooled reports the number of buffers held by the pool.
func (p *bufferPool) pooled() int {
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
