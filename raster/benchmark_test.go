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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BenchmarkFreehand measures a pen stroke drawn one segment at a time, as
// it happens during pointer moves.
func BenchmarkFreehand(b *testing.B) {
	for _, size := range []int{200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)})
			r.Width = 4
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			pts := wave(size, 200)

			b.ReportAllocs()
			for b.Loop() {
				for i := 1; i < len(pts); i++ {
					r.StrokeSegment(pts[i-1], pts[i], alphaEmit(dst))
				}
			}
		})
	}
}

// BenchmarkFillDisc fills a disc built from cubic Bézier curves.
func BenchmarkFillDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(rect.Rect{URx: float64(size), URy: float64(size)})
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			c := float64(size) / 2
			p := disc(c, c, 0.45*float64(size))

			b.ReportAllocs()
			for b.Loop() {
				r.FillNonZero(p, alphaEmit(dst))
			}
		})
	}
}

// BenchmarkVectorDisc fills the same disc with golang.org/x/image/vector,
// for comparison.
func BenchmarkVectorDisc(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})
			c := float32(size) / 2
			radius := 0.45 * float32(size)
			const k = float32(0.5522847498)
			kr := k * radius

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				r.MoveTo(c, c-radius)
				r.CubeTo(c+kr, c-radius, c+radius, c-kr, c+radius, c)
				r.CubeTo(c+radius, c+kr, c+kr, c+radius, c, c+radius)
				r.CubeTo(c-kr, c+radius, c-radius, c+kr, c-radius, c)
				r.CubeTo(c-radius, c-kr, c-kr, c-radius, c, c-radius)
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func alphaEmit(dst *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+xMin:]
		for i, c := range coverage {
			row[i] = max(row[i], uint8(min(c, 1)*255))
		}
	}
}

// wave returns n points of a sine wave across a square of the given size.
func wave(size, n int) []vec.Vec2 {
	s := float64(size)
	pts := make([]vec.Vec2, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = vec.Vec2{X: 0.05*s + 0.9*s*t, Y: s/2 + 0.4*s*math.Sin(6*math.Pi*t)}
	}
	return pts
}

// disc approximates a circle by four cubic Bézier curves.
func disc(cx, cy, r float64) *path.Data {
	const k = 0.5522847498
	kr := k * r
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: cx, Y: cy - r}).
		CubeTo(vec.Vec2{X: cx + kr, Y: cy - r}, vec.Vec2{X: cx + r, Y: cy - kr}, vec.Vec2{X: cx + r, Y: cy}).
		CubeTo(vec.Vec2{X: cx + r, Y: cy + kr}, vec.Vec2{X: cx + kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r}).
		CubeTo(vec.Vec2{X: cx - kr, Y: cy + r}, vec.Vec2{X: cx - r, Y: cy + kr}, vec.Vec2{X: cx - r, Y: cy}).
		CubeTo(vec.Vec2{X: cx - r, Y: cy - kr}, vec.Vec2{X: cx - kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r}).
		Close()
}
