// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrframe generates QR code frames: square matrices of black and
white modules for byte mode text, ready to be drawn by a renderer.

Text is stored in the code as modified UTF-8 (see
coding.ModifiedUTF8), which is plain UTF-8 for text without U+0000
and without runes outside the Basic Multilingual Plane.  The smallest
version the text fits in is used, and of the eight data masks the one
with the lowest penalty.
*/
package qrframe // import "github.com/unixdj/qrframe"

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"

	"github.com/unixdj/qrframe/coding"
)

var (
	ErrLevel   = coding.ErrLevel
	ErrVersion = coding.ErrVersion
	ErrTooLong = coding.ErrTooLong
	ErrFrame   = errors.New("qr: invalid frame")
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string { return coding.Level(l).String() }

// ParseLevel returns the Level named by s, one of "L", "M", "Q" or
// "H" in either case.  An empty string selects L.
func ParseLevel(s string) (Level, error) {
	l, err := coding.ParseLevel(s)
	return Level(l), err
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l < L || l > H {
		return nil, ErrLevel
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(b []byte) (err error) {
	*l, err = ParseLevel(string(b))
	return err
}

// A Frame is a QR code as a square module matrix.
type Frame struct {
	Bitmap  []byte // Width×Width modules, row-major; 1 is black, 0 is white
	Width   int    // number of modules on a side
	Version int    // QR version, 1 to 40
	Level   Level  // error correction level
	Mask    int    // data mask, 0 to 7
}

// GenerateFrame returns the frame for text at the error correction
// level named by level; see ParseLevel.
func GenerateFrame(text, level string) (*Frame, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return Encode(text, l)
}

// Encode returns the frame for text at the given level, using the
// smallest version the text fits in.
func Encode(text string, level Level) (*Frame, error) {
	c, err := coding.Encode(coding.Level(level), coding.EncodeString(text))
	if err != nil {
		return nil, err
	}
	return newFrame(c), nil
}

// EncodeVersion returns the frame for text at the given version and
// level.
func EncodeVersion(text string, version int, level Level) (*Frame, error) {
	c, err := coding.EncodeVersion(coding.Version(version),
		coding.Level(level), coding.EncodeString(text))
	if err != nil {
		return nil, err
	}
	return newFrame(c), nil
}

func newFrame(c *coding.Code) *Frame {
	return &Frame{
		Bitmap:  c.Bitmap,
		Width:   c.Width,
		Version: int(c.Version),
		Level:   Level(c.Level),
		Mask:    c.Mask,
	}
}

// Black returns true if the module at (x,y) is black.
// Modules outside the frame are white.
func (f *Frame) Black(x, y int) bool {
	return 0 <= x && x < f.Width && 0 <= y && y < f.Width &&
		f.Bitmap[y*f.Width+x] != 0
}

func (f *Frame) valid() bool {
	return f.Width > 0 && len(f.Bitmap) == f.Width*f.Width
}

// frameBuffer is a bitmap in JSON: an array of 0 and 1.
type frameBuffer []byte

func (b frameBuffer) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(b)*2+2)
	out = append(out, '[')
	for i, v := range b {
		if i != 0 {
			out = append(out, ',')
		}
		if v != 0 {
			out = append(out, '1')
		} else {
			out = append(out, '0')
		}
	}
	return append(out, ']'), nil
}

func (b *frameBuffer) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = make(frameBuffer, len(v))
	for i, m := range v {
		if m&^1 != 0 {
			return ErrFrame
		}
		(*b)[i] = byte(m)
	}
	return nil
}

type jsonFrame struct {
	FrameBuffer frameBuffer `json:"frameBuffer"`
	Width       int         `json:"width"`
	Version     int         `json:"version"`
	Level       Level       `json:"level"`
	Mask        int         `json:"mask"`
}

// MarshalJSON encodes f as
//
//	{"frameBuffer":[1,1,1,...],"width":21,"version":1,"level":"L","mask":2}
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFrame{
		FrameBuffer: frameBuffer(f.Bitmap),
		Width:       f.Width,
		Version:     f.Version,
		Level:       f.Level,
		Mask:        f.Mask,
	})
}

// UnmarshalJSON decodes a frame encoded by MarshalJSON.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var j jsonFrame
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	nf := Frame{
		Bitmap:  []byte(j.FrameBuffer),
		Width:   j.Width,
		Version: j.Version,
		Level:   j.Level,
		Mask:    j.Mask,
	}
	if !nf.valid() {
		return ErrFrame
	}
	*f = nf
	return nil
}

// Image returns an Image displaying the frame at one pixel per
// module, surrounded by a white quiet zone border modules wide.
func (f *Frame) Image(border int) image.Image {
	return &frameImage{f, max(border, 0)}
}

// frameImage implements image.Image
type frameImage struct {
	*Frame
	border int
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (f *frameImage) Bounds() image.Rectangle {
	d := f.Width + 2*f.border
	return image.Rect(0, 0, d, d)
}

func (f *frameImage) At(x, y int) color.Color {
	if f.Black(x-f.border, y-f.border) {
		return blackColor
	}
	return whiteColor
}

func (f *frameImage) ColorModel() color.Model {
	return color.GrayModel
}
