// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// ModifiedUTF8 transforms UTF-8 text to the byte representation
// stored in codes: each UTF-16 code unit of the text is encoded on its
// own in one to three bytes, so U+0000 becomes 0xc0 0x80 and runes
// above U+FFFF become two three byte surrogates.  Text without those
// is unchanged.  Invalid UTF-8 is read as U+FFFD.
//
// Runes above U+FFFF, emoji among them, do not read back unchanged:
// the surrogates are not valid UTF-8, and standard decoders show each
// of them as U+FFFD.
var ModifiedUTF8 transform.Transformer = modifiedUTF8{}

type modifiedUTF8 struct{ transform.NopResetter }

// putUnit encodes the UTF-16 code unit u to b, which must have room
// for 3 bytes, and returns the number of bytes written.
func putUnit(b []byte, u rune) int {
	switch {
	case 0 < u && u < 0x80:
		b[0] = byte(u)
		return 1
	case u >= 0x800:
		b[0] = 0xe0 | byte(u>>12&0x0f)
		b[1] = 0x80 | byte(u>>6&0x3f)
		b[2] = 0x80 | byte(u&0x3f)
		return 3
	default:
		b[0] = 0xc0 | byte(u>>6&0x1f)
		b[1] = 0x80 | byte(u&0x3f)
		return 2
	}
}

func (modifiedUTF8) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var buf [6]byte
	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				err = transform.ErrShortSrc
				break
			}
			r, size = utf8.DecodeRune(src[nSrc:])
		}
		n := 0
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			n = putUnit(buf[:], r1)
			n += putUnit(buf[n:], r2)
		} else {
			n = putUnit(buf[:], r)
		}
		if nDst+n > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += copy(dst[nDst:], buf[:n])
		nSrc += size
	}
	return nDst, nSrc, err
}

// EncodeString returns text transformed by ModifiedUTF8.
func EncodeString(text string) []byte {
	b, _, err := transform.Bytes(ModifiedUTF8, []byte(text))
	if err != nil {
		// The transformer reports only short buffers,
		// which transform.Bytes handles.
		panic("qr: internal error: " + err.Error())
	}
	return b
}
