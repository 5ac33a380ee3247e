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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// render collects the coverage of one operation into a w×h buffer.
func render(w, h int, op func(emit EmitFunc)) []float32 {
	buf := make([]float32, w*h)
	op(func(y, xMin int, cov []float32) {
		for i, c := range cov {
			buf[y*w+xMin+i] = c
		}
	})
	return buf
}

func total(buf []float32) float64 {
	var sum float64
	for _, c := range buf {
		sum += float64(c)
	}
	return sum
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10, so
// pixel X has coverage (2X+1)/20.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	coverage := render(10, 1, func(emit EmitFunc) { r.FillNonZero(triangle, emit) })

	for x := range 10 {
		expected := float32(2*x+1) / 20
		if math.Abs(float64(coverage[x]-expected)) > 1e-6 {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x])
		}
	}
}

func TestFillRectangleArea(t *testing.T) {
	box := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2.5, Y: 3.25}).
		LineTo(vec.Vec2{X: 12.5, Y: 3.25}).
		LineTo(vec.Vec2{X: 12.5, Y: 9.75}).
		LineTo(vec.Vec2{X: 2.5, Y: 9.75}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	buf := render(16, 16, func(emit EmitFunc) { r.FillNonZero(box, emit) })

	if got, want := total(buf), 10*6.5; math.Abs(got-want) > 1e-3 {
		t.Errorf("covered area = %.4f, want %.4f", got, want)
	}
	if c := buf[5*16+5]; c != 1 {
		t.Errorf("interior pixel coverage = %v, want 1", c)
	}
}

func TestFillClipped(t *testing.T) {
	box := (&path.Data{}).
		MoveTo(vec.Vec2{X: -5, Y: -5}).
		LineTo(vec.Vec2{X: 20, Y: -5}).
		LineTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: -5, Y: 20}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 8, URy: 8})
	buf := render(8, 8, func(emit EmitFunc) { r.FillNonZero(box, emit) })
	for i, c := range buf {
		if c != 1 {
			t.Fatalf("pixel %d: coverage %v, want 1", i, c)
		}
	}
}

func TestFillWithCTM(t *testing.T) {
	box := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 3, Y: 1}).
		LineTo(vec.Vec2{X: 3, Y: 3}).
		LineTo(vec.Vec2{X: 1, Y: 3}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	r.CTM = matrix.Scale(2, 2)
	buf := render(16, 16, func(emit EmitFunc) { r.FillNonZero(box, emit) })
	if got := total(buf); math.Abs(got-16) > 1e-3 {
		t.Errorf("covered area = %.4f, want 16", got)
	}
}

func TestStrokeSegmentArea(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 64, URy: 32})
	r.Width = 6
	a, b := vec.Vec2{X: 10, Y: 16}, vec.Vec2{X: 50, Y: 16}
	buf := render(64, 32, func(emit EmitFunc) { r.StrokeSegment(a, b, emit) })

	// a 40×6 rectangle plus two half discs of radius 3
	want := 40*6 + math.Pi*9
	if got := total(buf); math.Abs(got-want)/want > 0.01 {
		t.Errorf("covered area = %.2f, want %.2f", got, want)
	}
	for i, c := range buf {
		if c > 1 {
			t.Fatalf("pixel %d painted twice: coverage %v", i, c)
		}
	}
}

func TestStrokeDot(t *testing.T) {
	dot := (&path.Data{}).MoveTo(vec.Vec2{X: 8, Y: 8}).LineTo(vec.Vec2{X: 8, Y: 8})

	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	r.Width = 4
	buf := render(16, 16, func(emit EmitFunc) { r.Stroke(dot, emit) })
	if got, want := total(buf), math.Pi*4; math.Abs(got-want)/want > 0.03 {
		t.Errorf("round dot area = %.3f, want %.3f", got, want)
	}

	r.Cap = graphics.LineCapButt
	buf = render(16, 16, func(emit EmitFunc) { r.Stroke(dot, emit) })
	if got := total(buf); got != 0 {
		t.Errorf("butt-capped dot area = %.3f, want 0", got)
	}
}

func TestStrokeDashed(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 8}).
		LineTo(vec.Vec2{X: 64, Y: 8})

	r := NewRasterizer(rect.Rect{URx: 64, URy: 16})
	r.Width = 2
	r.Cap = graphics.LineCapButt
	solid := total(render(64, 16, func(emit EmitFunc) { r.Stroke(line, emit) }))

	r.Dash = []float64{4, 4}
	dashed := total(render(64, 16, func(emit EmitFunc) { r.Stroke(line, emit) }))

	if math.Abs(dashed-solid/2) > 1 {
		t.Errorf("dashed area = %.2f, want about %.2f", dashed, solid/2)
	}
}

func TestStrokeClosedRectangle(t *testing.T) {
	outline := (&path.Data{}).
		MoveTo(vec.Vec2{X: 4, Y: 4}).
		LineTo(vec.Vec2{X: 28, Y: 4}).
		LineTo(vec.Vec2{X: 28, Y: 28}).
		LineTo(vec.Vec2{X: 4, Y: 28}).
		Close()

	r := NewRasterizer(rect.Rect{URx: 32, URy: 32})
	r.Width = 2
	buf := render(32, 32, func(emit EmitFunc) { r.Stroke(outline, emit) })

	if c := buf[16*32+16]; c != 0 {
		t.Errorf("centre pixel coverage = %v, want 0", c)
	}
	if c := buf[4*32+16]; c < 0.99 {
		t.Errorf("edge pixel coverage = %v, want 1", c)
	}
}
