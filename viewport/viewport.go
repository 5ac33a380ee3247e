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

// Package viewport converts pointer positions between viewport space and
// document space.
//
// Viewport space is the on-screen coordinate system of the surrounding user
// interface. Document space is the zoom-independent pixel grid of the page,
// fixed at the render resolution.  Between the two sit the position of the
// drawing surface on screen, the ratio between the surface's backing pixels
// and its displayed size, and the view zoom.
package viewport

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Surface describes how the drawing surface is placed on screen.
type Surface struct {
	// Origin is the top-left corner of the surface in viewport coordinates.
	Origin vec.Vec2

	// Displayed is the layout size of the surface at zoom 1, in viewport
	// units.
	Displayed vec.Vec2

	// Intrinsic is the size of the surface's backing store in pixels.
	Intrinsic vec.Vec2
}

// Valid reports whether both sizes of s are non-zero.
func (s Surface) Valid() bool {
	return s.Displayed.X != 0 && s.Displayed.Y != 0 &&
		s.Intrinsic.X != 0 && s.Intrinsic.Y != 0
}

// PixelRatio returns the number of backing pixels per viewport unit, for
// each axis.
func (s Surface) PixelRatio() vec.Vec2 {
	return vec.Vec2{
		X: s.Intrinsic.X / s.Displayed.X,
		Y: s.Intrinsic.Y / s.Displayed.Y,
	}
}

// Mapper converts between viewport and document coordinates.
// The zero value is an invalid mapper.
type Mapper struct {
	surface Surface
	zoom    float64

	toDoc  matrix.Matrix
	toView matrix.Matrix
	valid  bool
}

// New returns a mapper for the given surface placement and zoom factor.
// If the surface has a zero size or zoom is not positive, the mapper is
// invalid and all conversions report failure.
func New(s Surface, zoom float64) Mapper {
	m := Mapper{surface: s, zoom: zoom}
	if !s.Valid() || !(zoom > 0) || math.IsInf(zoom, 0) {
		return m
	}

	r := s.PixelRatio()
	sx := r.X / zoom
	sy := r.Y / zoom
	m.toDoc = matrix.Matrix{sx, 0, 0, sy, -s.Origin.X * sx, -s.Origin.Y * sy}
	m.toView = matrix.Matrix{1 / sx, 0, 0, 1 / sy, s.Origin.X, s.Origin.Y}
	m.valid = true
	return m
}

// WithZoom returns a copy of m using a different zoom factor.
func (m Mapper) WithZoom(zoom float64) Mapper {
	return New(m.surface, zoom)
}

// WithSurface returns a copy of m using a different surface placement.
func (m Mapper) WithSurface(s Surface) Mapper {
	return New(s, m.zoom)
}

// Zoom returns the view zoom factor.
func (m Mapper) Zoom() float64 {
	return m.zoom
}

// Surface returns the surface placement.
func (m Mapper) Surface() Surface {
	return m.surface
}

// Valid reports whether the mapper can convert coordinates.
func (m Mapper) Valid() bool {
	return m.valid
}

// ToDocument converts a viewport position to document space.
// If the mapper is invalid, ok is false and the caller should ignore the
// event.
func (m Mapper) ToDocument(v vec.Vec2) (d vec.Vec2, ok bool) {
	if !m.valid {
		return vec.Vec2{}, false
	}
	return apply(m.toDoc, v), true
}

// ToViewport converts a document position to viewport space.
func (m Mapper) ToViewport(d vec.Vec2) (v vec.Vec2, ok bool) {
	if !m.valid {
		return vec.Vec2{}, false
	}
	return apply(m.toView, d), true
}

// DocumentToView returns the matrix mapping document space to the pixels
// of a presentation rendered at the current zoom.
func (m Mapper) DocumentToView() matrix.Matrix {
	return matrix.Scale(m.zoom, m.zoom)
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
