// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// mask sets dst to src with the non-fixed modules selected by mask
// inverted.
func (c *Canvas) mask(dst, src []byte, mask int) {
	w := c.Width
	f := maskFunc[mask]
	copy(dst, src)
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			if !c.IsFixed(x, y) && f(x, y) {
				dst[x+y*w] ^= 1
			}
		}
	}
}

// chooseMask applies each mask to the data placed on c and keeps the
// one with the smallest penalty.  It returns the mask.
func (c *Canvas) chooseMask() int {
	data := c.Bitmap // unmasked
	cur := make([]byte, len(data))
	best := make([]byte, len(data))
	mask, pen := 0, 1<<30
	for m := range maskFunc {
		c.mask(cur, data, m)
		p := penalty(cur, c.Width)
		tracer().Debugf("mask %d: penalty %d", m, p)
		if p < pen {
			best, cur = cur, best
			mask, pen = m, p
		}
	}
	c.Bitmap = best
	return mask
}

// Penalty points.
const (
	runPP  = 3  // N1: run of 5 modules, plus 1 per module over 5
	boxPP  = 3  // N2: 2x2 box
	findPP = 40 // N3: finder-like 1:1:3:1:1 pattern
	balPP  = 10 // N4: every 5% of imbalance past the first

	minRun = 5
)

// penalty returns the penalty of a w×w bitmap: same-colour boxes and
// runs, finder-like patterns and black/white imbalance.
func penalty(bm []byte, w int) int {
	p := 0

	// boxes
	for y := 0; y < w-1; y++ {
		row, next := bm[y*w:(y+1)*w], bm[(y+1)*w:(y+2)*w]
		for x := 0; x < w-1; x++ {
			if v := row[x]; row[x+1] == v && next[x] == v && next[x+1] == v {
				p += boxPP
			}
		}
	}

	// Run lengths, alternating white and black.  runs[0] is white and
	// may be empty.
	runs := make([]int, w+1)
	bal := 0 // black minus white

	// horizontal runs, colour balance
	for y := 0; y < w; y++ {
		h := 0
		runs[0] = 0
		last := byte(0)
		for _, v := range bm[y*w : (y+1)*w] {
			if v == last {
				runs[h]++
			} else {
				h++
				runs[h] = 1
			}
			last = v
			if v != 0 {
				bal++
			} else {
				bal--
			}
		}
		p += runPenalty(runs, h)
	}

	// balance: for every 5% black beyond 45-55%
	if bal < 0 {
		bal = -bal
	}
	p += max(bal*10-1, 0) / (w * w) * balPP

	// vertical runs
	for x := 0; x < w; x++ {
		h := 0
		runs[0] = 0
		last := byte(0)
		for off := x; off < len(bm); off += w {
			if v := bm[off]; v == last {
				runs[h]++
			} else {
				h++
				runs[h] = 1
				last = v
			}
		}
		p += runPenalty(runs, h)
	}
	return p
}

// runPenalty returns the penalty for runs[:h+1] of a single row or
// column.
func runPenalty(runs []int, h int) int {
	p := 0
	for _, r := range runs[:h+1] {
		if r >= minRun {
			p += runPP + r - minRun
		}
	}
	// Black runs at odd i.  Look for 1:1:3:1:1 centred at i with
	// enough white on at least one side, or at the edge.
	for i := 3; i < h-1; i += 2 {
		u := runs[i-1]
		if runs[i-2] == u && runs[i+1] == u && runs[i+2] == u &&
			runs[i] == u*3 &&
			(runs[i-3] == 0 || i+3 > h ||
				runs[i-3]*3 >= runs[i]*4 || runs[i+3]*3 >= runs[i]*4) {
			p += findPP
		}
	}
	return p
}
