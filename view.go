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

package annotate

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/annotate/compose"
	"seehuhn.de/go/annotate/overlay"
	"seehuhn.de/go/annotate/raster"
)

var (
	selectionColor = color.NRGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff}
	previewColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// view decorations, in viewport pixels
const (
	outlineWidth = 1.5
	previewWidth = 1
	previewDash  = 4
)

// RenderView draws the page as it should appear on screen at the current
// zoom. In addition to the exported content, it shows the outline and the
// resize handle of the selected object, and the dashed outline of a shape
// tool gesture in progress.
func (s *Session) RenderView() (*image.RGBA, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.drain()

	zoom := s.mapper.Zoom()
	dst, err := compose.Render(s.layers(), s.faces, zoom)
	if err != nil {
		return nil, err
	}

	ras := raster.NewRasterizer(rect.Rect{
		URx: float64(dst.Rect.Dx()),
		URy: float64(dst.Rect.Dy()),
	})
	ras.CTM = s.mapper.DocumentToView()
	ras.Cap = graphics.LineCapButt

	if id := s.objs.Selected(); id != 0 {
		o, _ := s.objs.Get(id)
		ras.Width = outlineWidth / zoom
		ras.Stroke(boxPath(o.Rect()), paint(dst, selectionColor))
		ras.FillNonZero(boxPath(overlay.HandleRect(&o, s.handleSize())), paint(dst, selectionColor))
	}

	if r, ok := s.draw.Preview(); ok {
		ras.Width = previewWidth / zoom
		ras.Dash = []float64{previewDash / zoom, previewDash / zoom}
		ras.Stroke(boxPath(r), paint(dst, previewColor))
	}

	return dst, nil
}

func boxPath(r rect.Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: r.LLx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.URy}).
		LineTo(vec.Vec2{X: r.LLx, Y: r.URy}).
		Close()
}

// paint returns an emit function which blends c into dst, using the
// coverage values as opacity.
func paint(dst *image.RGBA, c color.NRGBA) raster.EmitFunc {
	return func(y, xMin int, coverage []float32) {
		i := dst.PixOffset(xMin, y)
		for _, cov := range coverage {
			a := float32(c.A) / 255 * min(cov, 1)
			pix := dst.Pix[i : i+4 : i+4]
			pix[0] = blend(pix[0], float32(c.R)*a, a)
			pix[1] = blend(pix[1], float32(c.G)*a, a)
			pix[2] = blend(pix[2], float32(c.B)*a, a)
			pix[3] = blend(pix[3], 255*a, a)
			i += 4
		}
	}
}

// blend composites a premultiplied source value over a destination value.
func blend(d uint8, src, alpha float32) uint8 {
	return uint8(src + float32(d)*(1-alpha) + 0.5)
}
