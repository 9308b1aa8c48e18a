// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrframe

import (
	"bufio"
	"io"
	"strconv"
)

// WritePBM writes a raw Portable Bit Map image of the frame to w, one
// pixel per module, with a quiet zone border modules wide.
func (f *Frame) WritePBM(w io.Writer, border int) error {
	if !f.valid() || border < 0 {
		return ErrFrame
	}
	b := bufio.NewWriter(w)
	length := f.Width + border*2
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for y := -border; y < f.Width+border; y++ {
		pbmRow(row, f, y, border)
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow packs row y of the frame, most significant bit first.
func pbmRow(row []byte, f *Frame, y, border int) {
	clear(row)
	if y < 0 || y >= f.Width {
		return
	}
	src := f.Bitmap[y*f.Width : (y+1)*f.Width]
	for i, v := range src {
		j := i + border
		row[j>>3] |= v << (7 - j&7)
	}
}

// WriteBits writes the frame as rows of '0' and '1', one character
// per module.
func (f *Frame) WriteBits(w io.Writer) error {
	if !f.valid() {
		return ErrFrame
	}
	b := make([]byte, (f.Width+1)*f.Width)
	i := 0
	for _, v := range f.Bitmap {
		b[i] = '0' + v
		i++
		if i%(f.Width+1) == f.Width {
			b[i] = '\n'
			i++
		}
	}
	_, err := w.Write(b)
	return err
}

// WriteASCII writes the frame as text, two characters per module, '#'
// for black and ' ' for white, with a quiet zone border modules wide.
func (f *Frame) WriteASCII(w io.Writer, border int) error {
	if !f.valid() || border < 0 {
		return ErrFrame
	}
	siz := f.Width
	pix := siz + 2*border
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -border; y < siz+border; y++ {
		for x := -border; x < siz+border; x++ {
			var p byte = ' '
			if f.Black(x, y) {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
