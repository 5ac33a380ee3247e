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

package surface

import "image"

// composite recomputes the layer inside r from the pre-gesture raster and
// the coverage mask.
func (c *Controller) composite(r image.Rectangle) {
	r = r.Intersect(c.layer.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		c.compositeSpan(y, r.Min.X, r.Max.X)
	}
}

// compositeSpan recomputes the pixels x0 <= x < x1 of row y.
//
// The layer is stored with non-premultiplied alpha. Pixels which end up
// fully transparent are set to zero in all channels, so that the layer has a
// canonical form and survives an encode/decode round trip unchanged.
func (c *Controller) compositeSpan(y, x0, x1 int) {
	w := c.layer.Rect.Dx()
	mask := c.mask[y*w+x0 : y*w+x1]
	off := c.layer.PixOffset(x0, y)
	dst := c.layer.Pix[off : off+4*(x1-x0)]
	src := c.pre.Pix[off : off+4*(x1-x0)]

	st := c.style
	alpha := float32(st.Alpha) * float32(st.Color.A) / 255
	if st.Mode == Erase {
		alpha = float32(st.Alpha)
	}
	cr := float32(st.Color.R)
	cg := float32(st.Color.G)
	cb := float32(st.Color.B)

	for i, cov := range mask {
		j := 4 * i
		d := src[j : j+4 : j+4]
		out := dst[j : j+4 : j+4]
		if cov <= 0 || alpha <= 0 {
			copy(out, d)
			continue
		}

		a := cov * alpha
		da := float32(d[3]) / 255
		var oa float32
		if st.Mode == Erase {
			oa = da * (1 - a)
			if oa <= 0 {
				clear(out)
				continue
			}
			out[0], out[1], out[2] = d[0], d[1], d[2]
		} else {
			oa = a + da*(1-a)
			if oa <= 0 {
				clear(out)
				continue
			}
			k := da * (1 - a)
			out[0] = toByte((cr*a + float32(d[0])*k) / oa)
			out[1] = toByte((cg*a + float32(d[1])*k) / oa)
			out[2] = toByte((cb*a + float32(d[2])*k) / oa)
		}
		out[3] = toByte(oa * 255)
		if out[3] == 0 {
			clear(out)
		}
	}
}

func toByte(v float32) uint8 {
	v += 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
