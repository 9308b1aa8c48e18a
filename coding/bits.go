// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "encoding/binary"

// Mode indicator for byte mode segments.
const byteMode = 4

// Bits is a big endian bit buffer.
type Bits struct {
	b    []byte
	nbit int
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write writes the low nbit bits of v, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		free := -b.nbit & 7 // unused bits in the last byte
		if free == 0 {
			b.b = append(b.b, 0)
			free = 8
		}
		n := min(free, nbit)
		nbit -= n
		b.b[len(b.b)-1] |= byte(v>>nbit&(1<<n-1)) << (free - n)
		b.nbit += n
	}
}

// WriteBytes writes s 8 bits per byte.
func (b *Bits) WriteBytes(s []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, s...)
		b.nbit += len(s) * 8
		return
	}
	for ; len(s) >= 4; s = s[4:] {
		b.Write(binary.BigEndian.Uint32(s), 32)
	}
	for _, v := range s {
		b.Write(uint32(v), 8)
	}
}

// PadTo adds up to t zero terminator bits to b and pads it to n bits,
// filling whole bytes alternately with 0xec and 0x11.
func (b *Bits) PadTo(t, n int) {
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	for pad := byte(0xec); len(b.b) < n>>3; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	b.nbit = len(b.b) * 8
}
