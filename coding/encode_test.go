// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
)

func TestEncodeHello(t *testing.T) {
	c, err := Encode(L, []byte("HELLO"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Version != 1 || c.Width != 21 || c.Level != L ||
		len(c.Bitmap) != 21*21 || c.Mask < 0 || c.Mask > 7 {
		t.Errorf("got version %s width %d level %s mask %d, %d modules",
			c.Version, c.Width, c.Level, c.Mask, len(c.Bitmap))
	}
	for i, v := range c.Bitmap {
		if v > 1 {
			t.Fatalf("module %d = %d", i, v)
		}
	}
	if p := c.Penalty(); p <= 0 {
		t.Errorf("penalty %d", p)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		v    Version
		l    Level
		n    int
		want error
	}{
		{0, L, 1, ErrVersion},
		{41, L, 1, ErrVersion},
		{1, -1, 1, ErrLevel},
		{1, 4, 1, ErrLevel},
		{1, L, 18, ErrTooLong},
		{1, H, 8, ErrTooLong},
		{40, L, 2954, ErrTooLong},
	}
	for _, tt := range tests {
		c, err := EncodeVersion(tt.v, tt.l, make([]byte, tt.n))
		if c != nil || !errors.Is(err, tt.want) {
			t.Errorf("EncodeVersion(%s, %s, %d bytes) = %v, %v; want %v",
				tt.v, tt.l, tt.n, c, err, tt.want)
		}
	}
	if _, err := Encode(L, make([]byte, 2954)); !errors.Is(err, ErrTooLong) {
		t.Errorf("2954 bytes: %v, want %v", err, ErrTooLong)
	}
	if _, err := Encode(L, make([]byte, 2953)); err != nil {
		t.Errorf("2953 bytes: %v", err)
	}
}

// formatAt reads the two copies of the format information.
func formatAt(c *Code) (a, b uint16) {
	w := c.Width
	bit := func(x, y, i int) uint16 {
		if c.Black(x, y) {
			return 1 << i
		}
		return 0
	}
	for i := 0; i < 6; i++ {
		a |= bit(8, i, i)
	}
	a |= bit(8, 7, 6) | bit(8, 8, 7) | bit(7, 8, 8)
	for i := 9; i < 15; i++ {
		a |= bit(14-i, 8, i)
	}
	for i := 0; i < 8; i++ {
		b |= bit(w-1-i, 8, i)
	}
	for i := 8; i < 15; i++ {
		b |= bit(8, w-15+i, i)
	}
	return a, b
}

func TestEncodeFormat(t *testing.T) {
	for l := L; l <= H; l++ {
		for _, v := range []Version{1, 6, 7, 20, 40} {
			c, err := EncodeVersion(v, l, []byte("format"))
			if err != nil {
				t.Fatal(err)
			}
			want := FormatBits(l, c.Mask)
			if a, b := formatAt(c); a != want || b != want {
				t.Errorf("%s-%s: format %#04x, %#04x; want %#04x",
					v, l, a, b, want)
			}
			if !c.Black(8, c.Width-8) {
				t.Errorf("%s-%s: no dark module", v, l)
			}
		}
	}
}

func TestEncodeAll(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			data := make([]byte, v.Capacity(l))
			r.Read(data)
			c, err := EncodeVersion(v, l, data)
			if err != nil {
				t.Fatalf("%s-%s: %v", v, l, err)
			}
			if c.Width != v.Width() || len(c.Bitmap) != c.Width*c.Width {
				t.Fatalf("%s-%s: width %d, %d modules",
					v, l, c.Width, len(c.Bitmap))
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	data := []byte("Deterministic output, please.")
	a, err := Encode(Q, data)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(Q, data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bitmap, b.Bitmap) || a.Mask != b.Mask {
		t.Error("two encodings differ")
	}
}

func TestEncodeConcurrent(t *testing.T) {
	const n = 16
	want := make([]*Code, n)
	for i := range want {
		c, err := Encode(Level(i%4), []byte(fmt.Sprintf("text number %d", i*i)))
		if err != nil {
			t.Fatal(err)
		}
		want[i] = c
	}
	var wg sync.WaitGroup
	got := make([]*Code, n)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = Encode(Level(i%4), []byte(fmt.Sprintf("text number %d", i*i)))
		}(i)
	}
	wg.Wait()
	for i := range got {
		if got[i] == nil || !bytes.Equal(got[i].Bitmap, want[i].Bitmap) {
			t.Errorf("concurrent encoding %d differs", i)
		}
	}
}
