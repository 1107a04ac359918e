// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// Fingerprint is the CRC-32 (IEEE) of a shader's bytecode.
//
// It identifies a shader by content, independent of the order in which the
// host allocates shader objects. The zero value means unknown.
type Fingerprint uint32

// Unknown is the fingerprint of a shader whose bytecode is unavailable,
// and of an unbound stage.
const Unknown Fingerprint = 0

// Checksum returns the fingerprint of code.
func Checksum(code []byte) Fingerprint {
	if len(code) == 0 {
		return Unknown
	}
	return Fingerprint(crc32.ChecksumIEEE(code))
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%08x", uint32(f))
}

// ParseFingerprint parses a hexadecimal fingerprint with or without a 0x
// prefix.
func ParseFingerprint(s string) (Fingerprint, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Unknown, fmt.Errorf("shader: parse fingerprint %q: %w", s, err)
	}
	return Fingerprint(v), nil
}
