// seehuhn.de/go/annotate - an interactive page annotation engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package overlay

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
)

func whiteCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// inkBounds returns the bounding box of all non-white pixels.
func inkBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestDrawTextClipped(t *testing.T) {
	faces := NewFaces()
	defer faces.Close()

	o := &Object{
		Kind:  Text,
		X:     10,
		Y:     10,
		W:     80,
		H:     30,
		Text:  strings.Repeat("lorem ipsum ", 20),
		Style: TextStyle{Size: 16, Color: color.NRGBA{A: 255}},
	}
	img := whiteCanvas(200, 200)
	if err := Draw(img, o, faces, 1); err != nil {
		t.Fatal(err)
	}

	ink := inkBounds(img)
	if ink.Empty() {
		t.Fatal("no text was drawn")
	}
	if !ink.In(image.Rect(10, 10, 90, 40)) {
		t.Errorf("text escaped its box: ink at %v", ink)
	}
}

func TestDrawTextScaled(t *testing.T) {
	faces := NewFaces()
	defer faces.Close()

	o := &Object{Kind: Text, X: 5, Y: 5, W: 100, H: 30, Text: "Hg",
		Style: TextStyle{Size: 20, Bold: true, Color: color.NRGBA{A: 255}}}

	small := whiteCanvas(300, 300)
	large := whiteCanvas(300, 300)
	Draw(small, o, faces, 1)
	Draw(large, o, faces, 2)

	hs, hl := inkBounds(small).Dy(), inkBounds(large).Dy()
	if hs == 0 || hl < 2*hs-3 || hl > 2*hs+3 {
		t.Errorf("ink height %d at scale 1 and %d at scale 2", hs, hl)
	}
}

func TestWrapText(t *testing.T) {
	faces := NewFaces()
	defer faces.Close()
	face, err := faces.Face(TextStyle{Size: 10, Family: Mono}, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Go Mono advances are 0.6em, so 6 pixels per character at size 10.
	lines := wrapText(face, "aaa bbb ccc\n\nddddddddddddddd", 45)
	want := []string{"aaa bbb", "ccc", "", "ddddddddddddddd"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrapText = %q, want %q", lines, want)
	}
}

func TestDrawBitmap(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(red, red.Bounds(), image.NewUniform(color.RGBA{255, 0, 0, 255}), image.Point{}, draw.Src)

	o := &Object{Kind: Image, X: 10, Y: 10, W: 20, H: 20, Bitmap: red}
	img := whiteCanvas(64, 64)
	if err := Draw(img, o, nil, 1); err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(20, 20); got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("centre pixel = %v, want red", got)
	}
	if got := img.RGBAAt(40, 40); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside the box = %v, want white", got)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	img, format, err := DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || img.Bounds().Dx() != 3 {
		t.Errorf("decoded %s image of size %v", format, img.Bounds())
	}

	_, _, err = DecodeImage(strings.NewReader("%PDF-1.7 not an image"))
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("got %v, want ErrUnsupportedInput", err)
	}
}
