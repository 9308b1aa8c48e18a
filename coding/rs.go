// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Reed-Solomon coding over GF(256) with the QR field polynomial 0x11d
// and generator 2.

// LogOfZero stands in for the undefined logarithm of 0 in gfLog.
const LogOfZero = 255

// gfMul returns the product of a and b.
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[(int(gfLog[a])+int(gfLog[b]))%255]
}

// A generator is a monic generator polynomial of degree len(g)-1,
// lowest degree first.  All coefficients except the leading one are
// stored as logarithms.
type generator []byte

// newGenerator returns the generator polynomial
// (x+α⁰)(x+α¹)…(x+αⁿ⁻¹).
func newGenerator(n int) generator {
	g := make(generator, n+1)
	g[0] = 1
	for i := 0; i < n; i++ {
		// multiply by x+αⁱ
		g[i+1] = 1
		for j := i; j > 0; j-- {
			g[j] = g[j-1] ^ gfMul(g[j], gfExp[i])
		}
		g[0] = gfMul(g[0], gfExp[i])
	}
	for i := range g[:n] {
		g[i] = gfLog[g[i]]
	}
	return g
}

// ecc computes the remainder of data·xⁿ divided by g into check,
// where n is len(check), which must be the degree of g.
func (g generator) ecc(data, check []byte) {
	n := len(check)
	if n != len(g)-1 {
		panic("qr: internal error: generator degree")
	}
	clear(check)
	for _, v := range data {
		f := gfLog[v^check[0]]
		copy(check, check[1:])
		check[n-1] = 0
		if f == LogOfZero {
			continue
		}
		for j := 0; j < n; j++ {
			check[j] ^= gfExp[(int(f)+int(g[n-1-j]))%255]
		}
	}
}
