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

// Package compose merges the layers of an annotated page into one image.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"seehuhn.de/go/annotate/overlay"
)

// Layers lists the content of a page, bottom to top.
type Layers struct {
	// Page is the rendered page at document resolution.
	Page image.Image

	// Strokes is the stroke raster. It must have the size of Page.
	// Nil means no strokes.
	Strokes image.Image

	// Objects are the overlay objects, in ascending z-order.
	Objects []overlay.Object
}

// ErrNoPage is returned when Layers has no page raster.
var ErrNoPage = errors.New("compose: missing page raster")

// Flatten draws all layers at document resolution: the page, then the
// strokes, then every overlay object at its stored position and size.
//
// The result is a new image of exactly the size of the page. The layers
// are only read.
func Flatten(l *Layers, faces *overlay.Faces) (*image.RGBA, error) {
	return Render(l, faces, 1)
}

// Render draws all layers like Flatten, but with all document coordinates
// multiplied by scale. This is used for on-screen presentation at a given
// zoom factor.
func Render(l *Layers, faces *overlay.Faces, scale float64) (*image.RGBA, error) {
	if l.Page == nil {
		return nil, ErrNoPage
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("compose: invalid scale %g", scale)
	}
	pb := l.Page.Bounds()
	if l.Strokes != nil && l.Strokes.Bounds().Size() != pb.Size() {
		return nil, fmt.Errorf("compose: stroke raster is %v, page is %v",
			l.Strokes.Bounds().Size(), pb.Size())
	}

	size := image.Pt(pb.Dx(), pb.Dy())
	if scale != 1 {
		size.X = int(math.Round(float64(size.X) * scale))
		size.Y = int(math.Round(float64(size.Y) * scale))
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Rect, image.White, image.Point{}, draw.Src)

	drawLayer(dst, l.Page, scale)
	if l.Strokes != nil {
		drawLayer(dst, l.Strokes, scale)
	}
	for i := range l.Objects {
		if err := overlay.Draw(dst, &l.Objects[i], faces, scale); err != nil {
			return nil, fmt.Errorf("compose: object %d: %w", l.Objects[i].ID, err)
		}
	}
	return dst, nil
}

func drawLayer(dst *image.RGBA, src image.Image, scale float64) {
	sb := src.Bounds()
	if scale == 1 {
		draw.Draw(dst, dst.Rect, src, sb.Min, draw.Over)
		return
	}
	xdraw.BiLinear.Scale(dst, dst.Rect, src, sb, xdraw.Over, nil)
}
