// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrframe

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"
)

// decode reads the text back from f with a QR decoder.
func decode(t *testing.T, f *Frame) string {
	t.Helper()
	const scale, border = 4, 4
	src := f.Image(border)
	sb := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx()*scale, sb.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			r, _, _, _ := dst.At(x*scale+scale/2, y*scale+scale/2).RGBA()
			if (r == 0) != f.Black(x-border, y-border) {
				t.Fatalf("scaled image differs at module (%d,%d)",
					x-border, y-border)
			}
		}
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(dst)
	if err != nil {
		t.Fatal(err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE:  true,
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
	}
	res, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		t.Fatalf("version %d-%s mask %d: %v", f.Version, f.Level, f.Mask, err)
	}
	return res.GetText()
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"HELLO",
		"hello, world",
		"https://github.com/unixdj/qrframe",
		"héllo wörld",
		"二维码",
		strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20),
	}
	for _, s := range tests {
		for l := L; l <= H; l++ {
			f, err := Encode(s, l)
			if err != nil {
				t.Fatalf("%q %s: %v", s, l, err)
			}
			if got := decode(t, f); got != s {
				t.Errorf("%s: decoded %q, want %q", l, got, s)
			}
		}
	}
}

func TestRoundTripVersion(t *testing.T) {
	for _, v := range []int{1, 7, 10, 27} {
		f, err := EncodeVersion("fixed version", v, M)
		if err != nil {
			t.Fatal(err)
		}
		if f.Version != v || f.Width != v*4+17 {
			t.Fatalf("version %d: got version %d width %d",
				v, f.Version, f.Width)
		}
		if got := decode(t, f); got != "fixed version" {
			t.Errorf("version %d: decoded %q", v, got)
		}
	}
}

func TestGenerateFrame(t *testing.T) {
	tests := []struct {
		text, level string
		width       int
		lev         Level
		err         error
	}{
		{"HELLO", "L", 21, L, nil},
		{"HELLO", "", 21, L, nil},
		{"HELLO", "h", 21, H, nil},
		{"", "M", 21, M, nil},
		{strings.Repeat("a", 17), "L", 21, L, nil},
		{strings.Repeat("a", 18), "L", 25, L, nil},
		{strings.Repeat("a", 2953), "L", 177, L, nil},
		{strings.Repeat("a", 2954), "L", 0, 0, ErrTooLong},
		{strings.Repeat("é", 1476) + "a", "L", 177, L, nil},
		{strings.Repeat("é", 1477), "L", 0, 0, ErrTooLong},
		{"HELLO", "X", 0, 0, ErrLevel},
	}
	for _, tt := range tests {
		f, err := GenerateFrame(tt.text, tt.level)
		if tt.err != nil {
			if f != nil || !errors.Is(err, tt.err) {
				t.Errorf("%d bytes, level %q: got %v, want %v",
					len(tt.text), tt.level, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d bytes, level %q: %v", len(tt.text), tt.level, err)
			continue
		}
		if f.Width != tt.width || f.Level != tt.lev ||
			len(f.Bitmap) != f.Width*f.Width {
			t.Errorf("%d bytes, level %q: width %d level %s, %d modules",
				len(tt.text), tt.level, f.Width, f.Level, len(f.Bitmap))
		}
	}
}

func TestModifiedUTF8Length(t *testing.T) {
	// U+0000 takes two bytes, an emoji six.
	a, err := Encode(strings.Repeat("\x00", 8), L)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(strings.Repeat("😀", 3), L)
	if err != nil {
		t.Fatal(err)
	}
	if a.Version != 1 || b.Version != 2 {
		t.Errorf("versions %d and %d, want 1 and 2", a.Version, b.Version)
	}
}

func TestFrameJSON(t *testing.T) {
	f, err := Encode("json", Q)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	fb, ok := m["frameBuffer"].([]interface{})
	if !ok || len(fb) != 21*21 || m["width"] != 21.0 ||
		m["version"] != 1.0 || m["level"] != "Q" {
		t.Fatalf("bad JSON: %s", b)
	}
	for i, v := range fb {
		if v != float64(f.Bitmap[i]) {
			t.Fatalf("frameBuffer[%d] = %v, want %d", i, v, f.Bitmap[i])
		}
	}
	var g Frame
	if err := json.Unmarshal(b, &g); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(g.Bitmap, f.Bitmap) || g.Width != f.Width ||
		g.Version != f.Version || g.Level != f.Level || g.Mask != f.Mask {
		t.Errorf("decoded frame differs")
	}
	for _, s := range []string{
		`{"frameBuffer":[0,1,0],"width":2}`,
		`{"frameBuffer":[0,1,2,0],"width":2}`,
		`{"frameBuffer":[0,1,1,0],"width":2,"level":"Z"}`,
	} {
		if err := json.Unmarshal([]byte(s), &g); err == nil {
			t.Errorf("%s: no error", s)
		}
	}
}

func TestLevelText(t *testing.T) {
	for l := L; l <= H; l++ {
		b, err := l.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var m Level
		if err := m.UnmarshalText(b); err != nil || m != l {
			t.Errorf("%s: round trip gave %s, %v", l, m, err)
		}
	}
	if _, err := Level(7).MarshalText(); err != ErrLevel {
		t.Errorf("level 7: %v, want %v", err, ErrLevel)
	}
}

func TestImage(t *testing.T) {
	f, err := Encode("image", L)
	if err != nil {
		t.Fatal(err)
	}
	img := f.Image(2)
	if b := img.Bounds(); b.Dx() != f.Width+4 || b.Dy() != f.Width+4 {
		t.Fatalf("bounds %v", b)
	}
	for y := 0; y < f.Width+4; y++ {
		for x := 0; x < f.Width+4; x++ {
			black := img.At(x, y) == blackColor
			if black != f.Black(x-2, y-2) {
				t.Fatalf("pixel (%d,%d)", x, y)
			}
		}
	}
}
