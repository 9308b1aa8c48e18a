// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// FormatBits returns the 15 bit format information for level l and
// the mask, BCH coded and masked.
func FormatBits(l Level, mask int) uint16 { return formatTab[l][mask] }

// VersionBits returns the 18 bit version information for v, or 0 for
// versions without one.
func VersionBits(v Version) uint32 {
	if v < 7 || v > MaxVersion {
		return 0
	}
	return uint32(v)<<12 | uint32(versionTab[v-7])
}

// writeFormat draws the format information in the reserved areas.
// Bits 0-7 go right to left along row 8 and down column 8 past the
// timing pattern, bits 8-14 up column 8 from the bottom and left along
// row 8 past the timing pattern.
func (c *Canvas) writeFormat(l Level, mask int) {
	w := c.Width
	fb := FormatBits(l, mask)
	for i := 0; i < 8; i++ {
		if fb&1 != 0 {
			c.set(w-1-i, 8)
			if i < 6 {
				c.set(8, i)
			} else {
				c.set(8, i+1)
			}
		}
		fb >>= 1
	}
	for i := 0; i < 7; i++ {
		if fb&1 != 0 {
			c.set(8, w-7+i)
			if i > 0 {
				c.set(6-i, 8)
			} else {
				c.set(7, 8)
			}
		}
		fb >>= 1
	}
}

// writeVersion draws the version information for v > 6 into two 3x6
// blocks by the top right and bottom left finders, most significant
// bit first, and fixes them.
func (c *Canvas) writeVersion(v Version) {
	vb := VersionBits(v)
	if vb == 0 {
		return
	}
	off := c.Width - 11
	k := 17
	for x := 5; x >= 0; x-- {
		for y := off + 2; y >= off; y-- {
			if vb>>k&1 != 0 {
				c.set(x, y)
				c.set(y, x)
			} else {
				c.fix(x, y)
			}
			k--
		}
	}
}
