// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// An encoder holds the state of a single encoding.  Nothing in it is
// shared with other encoders.
type encoder struct {
	version Version
	level   Level
	blocks  blocks
	canvas  *Canvas
	buf     []byte    // data blocks followed by check blocks
	gen     generator // generator polynomial for blocks.check
}

func newEncoder(v Version, l Level) *encoder {
	b := v.blocks(l)
	return &encoder{
		version: v,
		level:   l,
		blocks:  b,
		canvas:  NewCanvas(v),
		buf:     make([]byte, b.totalBytes()),
		gen:     newGenerator(b.check),
	}
}

// encode builds the code for data, which must fit.
func (e *encoder) encode(data []byte) *Code {
	tracer().Debugf("encode %d bytes, version %s-%s", len(data), e.version, e.level)
	e.pack(data)
	e.addCheckBytes()
	cw := e.permute()
	c := e.canvas
	c.place(cw)
	mask := c.chooseMask()
	c.writeFormat(e.level, mask)
	return &Code{
		Bitmap:  c.Bitmap,
		Width:   c.Width,
		Version: e.version,
		Level:   e.level,
		Mask:    mask,
	}
}

// pack writes the mode indicator, the count, data, the terminator and
// padding to the data part of e.buf.
func (e *encoder) pack(data []byte) {
	nd := e.blocks.dataBytes()
	b := &Bits{b: e.buf[:0:nd]}
	b.Write(byteMode, 4)
	if e.version <= 9 {
		b.Write(uint32(len(data)), 8)
	} else {
		b.Write(uint32(len(data)), 16)
	}
	b.WriteBytes(data)
	b.PadTo(4, nd*8)
	if len(b.Bytes()) != nd {
		panic("qr: internal error")
	}
}

// addCheckBytes computes the check bytes of every block.
func (e *encoder) addCheckBytes() {
	bl := e.blocks
	dat := e.buf[:bl.dataBytes()]
	chk := e.buf[bl.dataBytes():]
	db := bl.data
	for i := 0; i < bl.count(); i++ {
		if i == bl.short {
			db++
		}
		e.gen.ecc(dat[:db], chk[:bl.check])
		dat, chk = dat[db:], chk[bl.check:]
	}
}

// permute returns the codewords with blocks interleaved.
func (e *encoder) permute() []byte {
	bl := e.blocks
	if bl.count() == 1 {
		return e.buf
	}
	nd := bl.dataBytes()
	dst := make([]byte, len(e.buf))
	interleave(dst[:nd], e.buf[:nd], bl.short, bl.long, bl.data)
	interleave(dst[nd:], e.buf[nd:], bl.count(), 0, bl.check)
	return dst
}

// interleave copies short blocks of size bytes followed by long blocks
// of size+1 bytes from src to dst, byte i of every block before byte
// i+1.  The extra bytes of the long blocks come last.
func interleave(dst, src []byte, short, long, size int) {
	nb := short + long
	for i := 0; i < nb; i++ {
		for j, v := range src[:size] {
			dst[j*nb+i] = v
		}
		src = src[size:]
		if i >= short {
			dst[size*nb+i-short] = src[0]
			src = src[1:]
		}
	}
}
