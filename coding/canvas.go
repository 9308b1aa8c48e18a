// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Canvas is a square module grid under construction, together with
// the map of fixed modules: function patterns and reserved areas that
// data placement and masking must not touch.
//
// The fixed map is symmetric about the main diagonal and is stored as
// a lower triangle, see fixedKey.  Every function pattern of a QR code
// is symmetric in shape, so marking (x,y) marks (y,x) as well.
type Canvas struct {
	Width  int    // number of modules on a side
	Bitmap []byte // Width×Width modules, row-major; 1 is black
	fixed  []byte // lower triangle, 1 is fixed
}

// fixedKey returns the index of (x,y) in the triangular fixed map.
// The coordinates are swapped so that x <= y, making the key the same
// for (x,y) and (y,x).
func fixedKey(x, y int) int {
	if x > y {
		x, y = y, x
	}
	return y*(y+1)/2 + x
}

func (c *Canvas) fix(x, y int) { c.fixed[fixedKey(x, y)] = 1 }

// IsFixed reports whether the module at (x,y) belongs to a function
// pattern or a reserved area.  IsFixed(x, y) == IsFixed(y, x).
func (c *Canvas) IsFixed(x, y int) bool { return c.fixed[fixedKey(x, y)] != 0 }

func (c *Canvas) set(x, y int) { c.Bitmap[x+y*c.Width] = 1 }

// NewCanvas returns a Canvas for version v with all function patterns
// drawn and fixed, and the format areas reserved.
func NewCanvas(v Version) *Canvas {
	w := v.Width()
	c := &Canvas{
		Width:  w,
		Bitmap: make([]byte, w*w),
		fixed:  make([]byte, (w*(w+1)+1)/2),
	}

	// Finder patterns: 7x7 rings with a 3x3 core.
	for _, o := range [3][2]int{{0, 0}, {w - 7, 0}, {0, w - 7}} {
		for dy := 0; dy < 7; dy++ {
			for dx := 0; dx < 7; dx++ {
				ring := dx == 0 || dx == 6 || dy == 0 || dy == 6
				core := 2 <= dx && dx <= 4 && 2 <= dy && dy <= 4
				if ring || core {
					c.set(o[0]+dx, o[1]+dy)
				} else {
					c.fix(o[0]+dx, o[1]+dy)
				}
			}
		}
	}

	// Alignment patterns on a lattice counted back from the bottom
	// right, skipping the finder corners.
	if v > 1 {
		d := alignDelta[v]
		y := w - 7
		for {
			for x := w - 7; x > d-3; x -= d {
				c.alignment(x, y)
				if x < d {
					break
				}
			}
			if y <= d+9 {
				break
			}
			y -= d
			c.alignment(6, y)
			c.alignment(y, 6)
		}
	}

	// One lonely black module.
	c.set(8, w-8)

	// Separators.
	for i := 0; i < 8; i++ {
		c.fix(7, i)
		c.fix(w-8, i)
		c.fix(7, w-1-i)
	}

	// Format areas: row and column 8 by the top left finder, row 8 by
	// the top right one and column 8 by the bottom left one.
	for i := 0; i < 9; i++ {
		c.fix(i, 8)
	}
	for i := 0; i < 8; i++ {
		c.fix(w-1-i, 8)
	}

	// Timing patterns in row and column 6.
	for x := 8; x < w-8; x++ {
		if x&1 == 0 {
			c.set(x, 6)
			c.set(6, x)
		} else {
			c.fix(x, 6)
		}
	}

	c.writeVersion(v)

	// Fix the black modules drawn above.
	for y := 0; y < w; y++ {
		for x := 0; x <= y; x++ {
			if c.Bitmap[x+y*w] != 0 {
				c.fix(x, y)
			}
		}
	}
	return c
}

// alignment draws a 5x5 alignment pattern centred at (x,y).
func (c *Canvas) alignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if max(dx, -dx, dy, -dy) == 1 {
				c.fix(x+dx, y+dy)
			} else {
				c.set(x+dx, y+dy)
			}
		}
	}
}

// place writes the bits of cw, most significant first, to the
// non-fixed modules in zigzag scan order: two columns at a time from
// the right, alternately upwards and downwards, skipping the vertical
// timing pattern.
func (c *Canvas) place(cw []byte) {
	w := c.Width
	x, y := w-1, w-1
	up, right := true, true
	n := len(cw) * 8
	for i := 0; i < n; i++ {
		if cw[i>>3]<<(i&7)&0x80 != 0 {
			c.set(x, y)
		}
		if i == n-1 {
			break
		}
		// Find next position.
		for {
			if right {
				x--
			} else {
				x++
				if up {
					if y != 0 {
						y--
					} else {
						x -= 2
						up = false
						if x == 6 {
							x--
							y = 9
						}
					}
				} else {
					if y != w-1 {
						y++
					} else {
						x -= 2
						up = true
						if x == 6 {
							x--
							y -= 8
						}
					}
				}
			}
			right = !right
			if x < 0 || x >= w || y < 0 || y >= w {
				panic("qr: internal error: module placement out of range")
			}
			if !c.IsFixed(x, y) {
				break
			}
		}
	}
}
