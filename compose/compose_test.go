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

package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"seehuhn.de/go/annotate/overlay"
)

func filled(r image.Rectangle, c color.Color) *image.RGBA {
	img := image.NewRGBA(r)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testLayers() *Layers {
	page := filled(image.Rect(0, 0, 40, 30), color.RGBA{255, 0, 0, 255})

	strokes := image.NewNRGBA(page.Rect)
	for y := 10; y < 20; y++ {
		for x := 10; x < 20; x++ {
			strokes.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
		}
	}

	green := filled(image.Rect(0, 0, 2, 2), color.RGBA{0, 255, 0, 255})
	return &Layers{
		Page:    page,
		Strokes: strokes,
		Objects: []overlay.Object{
			{ID: 1, Kind: overlay.Image, X: 15, Y: 15, W: 10, H: 10, Bitmap: green},
		},
	}
}

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return max(x, y)-min(x, y) < 6 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestFlattenOrder(t *testing.T) {
	out, err := Flatten(testLayers(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, color.RGBA{255, 0, 0, 255}},   // page
		{12, 12, color.RGBA{0, 0, 255, 255}}, // stroke over page
		{17, 17, color.RGBA{0, 255, 0, 255}}, // object over stroke
		{22, 22, color.RGBA{0, 255, 0, 255}}, // object over page
	}
	for _, c := range cases {
		if got := out.RGBAAt(c.x, c.y); !near(got, c.want) {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestFlattenSize(t *testing.T) {
	l := testLayers()
	out, err := Flatten(l, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rect != l.Page.Bounds() {
		t.Errorf("flattened size %v, want %v", out.Rect, l.Page.Bounds())
	}

	scaled, err := Render(l, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if scaled.Rect != image.Rect(0, 0, 80, 60) {
		t.Errorf("scaled size %v, want 80×60", scaled.Rect)
	}
	if got := scaled.RGBAAt(45, 45); !near(got, color.RGBA{0, 255, 0, 255}) {
		t.Errorf("scaled object pixel = %v, want green", got)
	}
}

func TestFlattenReadOnly(t *testing.T) {
	l := testLayers()
	page := bytes.Clone(l.Page.(*image.RGBA).Pix)
	strokes := bytes.Clone(l.Strokes.(*image.NRGBA).Pix)
	objs := overlay.Clone(l.Objects)

	a, _ := Flatten(l, nil)
	b, _ := Flatten(l, nil)

	if a == b {
		t.Error("Flatten reused its target")
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Flatten is not deterministic")
	}
	if !bytes.Equal(page, l.Page.(*image.RGBA).Pix) || !bytes.Equal(strokes, l.Strokes.(*image.NRGBA).Pix) {
		t.Error("Flatten modified its input")
	}
	if len(objs) != len(l.Objects) || objs[0].X != l.Objects[0].X {
		t.Error("Flatten modified the objects")
	}
}

func TestFlattenErrors(t *testing.T) {
	if _, err := Flatten(&Layers{}, nil); !errors.Is(err, ErrNoPage) {
		t.Errorf("no page: got %v", err)
	}
	l := testLayers()
	l.Strokes = image.NewNRGBA(image.Rect(0, 0, 5, 5))
	if _, err := Flatten(l, nil); err == nil {
		t.Error("mismatched stroke raster accepted")
	}
}

func BenchmarkFlatten(b *testing.B) {
	faces := overlay.NewFaces()
	defer faces.Close()

	page := filled(image.Rect(0, 0, 918, 1188), color.White)
	l := &Layers{
		Page:    page,
		Strokes: image.NewNRGBA(page.Rect),
		Objects: []overlay.Object{
			{ID: 1, Kind: overlay.Text, X: 50, Y: 50, W: 300, H: 100,
				Text:  "The quick brown fox jumps over the lazy dog.",
				Style: overlay.TextStyle{Size: 16, Color: color.NRGBA{A: 255}}},
			{ID: 2, Kind: overlay.Image, X: 400, Y: 600, W: 200, H: 80,
				Bitmap: filled(image.Rect(0, 0, 50, 20), color.Black)},
		},
	}

	b.ResetTimer()
	for range b.N {
		if _, err := Flatten(l, faces); err != nil {
			b.Fatal(err)
		}
	}
}
