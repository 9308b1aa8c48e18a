// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details for byte mode
// symbols: version selection, function patterns, codeword packing,
// Reed-Solomon error correction, interleaving, module placement and
// mask selection.
//
// All tables are read-only.  Every call works on freshly allocated
// buffers, so the package is safe for concurrent use.
package coding // import "github.com/unixdj/qrframe/coding"

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrTooLong = errors.New("qr: text too long to encode as QR")
)

// tracer writes to trace with key 'qrframe.coding'
func tracer() tracing.Trace {
	return tracing.Select("qrframe.coding")
}

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Width returns the number of modules on a side.
func (v Version) Width() int { return int(v)*4 + 17 }

func (v Version) valid() bool { return MinVersion <= v && v <= MaxVersion }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

func (l Level) valid() bool { return L <= l && l <= H }

// Indicator returns the two bit error correction indicator stored in
// the format information: L=1, M=0, Q=3, H=2.
func (l Level) Indicator() int { return int(l) ^ 1 }

// ParseLevel returns the Level named by s, one of "L", "M", "Q" or
// "H" in either case.  An empty string selects L.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return L, nil
	}
	if len(s) == 1 {
		if i := strings.IndexByte("LMQHlmqh", s[0]); i >= 0 {
			return Level(i & 3), nil
		}
	}
	return 0, ErrLevel
}

// blocks describes the error correction block layout for a version
// and level.
type blocks struct {
	short int // number of blocks of data bytes
	long  int // number of blocks of data+1 bytes
	data  int // data bytes in a short block
	check int // check bytes per block
}

func (v Version) blocks(l Level) blocks { return blockTab[v][l] }

// count returns the number of blocks.
func (b blocks) count() int { return b.short + b.long }

// dataBytes returns the number of data codewords.
func (b blocks) dataBytes() int { return b.data*b.count() + b.long }

// totalBytes returns the number of data and check codewords.
func (b blocks) totalBytes() int { return b.dataBytes() + b.check*b.count() }

// Capacity returns the number of text bytes that can be stored in a
// byte mode QR code with the given version and level.  The mode
// indicator, the count field and the terminator take up 2 bytes in
// versions 1 to 9 and 3 bytes in versions 10 to 40.
func (v Version) Capacity(l Level) int {
	n := v.blocks(l).dataBytes() - 3
	if v <= 9 {
		n++
	}
	return n
}

// CapacityError is returned when text doesn't fit
// in a QR code of the maximum version at the given level.
type CapacityError struct {
	Len   int   // encoded length in bytes
	Max   int   // capacity in bytes
	Level Level // error correction level
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: cannot encode %d bytes into %d-byte code at level %s",
		e.Len, e.Max, e.Level)
}

// Is reports whether target is ErrTooLong.
func (e *CapacityError) Is(target error) bool { return target == ErrTooLong }

// SelectVersion returns the smallest version that can store n bytes
// at level l.
func SelectVersion(n int, l Level) (Version, error) {
	if !l.valid() {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if n <= v.Capacity(l) {
			return v, nil
		}
	}
	return 0, &CapacityError{n, MaxVersion.Capacity(l), l}
}

// A Code is a square module grid.
type Code struct {
	Bitmap  []byte  // width×width modules, row-major; 1 is black, 0 is white
	Width   int     // number of modules on a side
	Version Version // QR version
	Level   Level   // error correction level
	Mask    int     // data mask, 0 to 7
}

// Black returns true if the module at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Width && 0 <= y && y < c.Width &&
		c.Bitmap[y*c.Width+x] != 0
}

// Penalty returns the penalty value used for choosing the mask.
func (c *Code) Penalty() int { return penalty(c.Bitmap, c.Width) }

// Encode encodes data in byte mode at level l using the smallest
// version it fits in.
func Encode(l Level, data []byte) (*Code, error) {
	v, err := SelectVersion(len(data), l)
	if err != nil {
		return nil, err
	}
	return EncodeVersion(v, l, data)
}

// EncodeVersion encodes data in byte mode at the given version and
// level.
func EncodeVersion(v Version, l Level, data []byte) (*Code, error) {
	if !v.valid() {
		return nil, ErrVersion
	}
	if !l.valid() {
		return nil, ErrLevel
	}
	if n := v.Capacity(l); len(data) > n {
		return nil, &CapacityError{len(data), n, l}
	}
	return newEncoder(v, l).encode(data), nil
}
