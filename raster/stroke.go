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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p using Width, Cap, Dash and DashPhase.
//
// The outline is the union of one quadrilateral per segment and one disc per
// vertex. All of these polygons have the same orientation, so that filling
// them together with the nonzero rule paints every covered pixel exactly
// once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	lines := r.polylines(p)
	if len(r.Dash) > 0 {
		lines = r.applyDash(lines)
	}

	r.beginEdges()
	d := r.Width / 2
	for _, pts := range lines {
		r.strokePolyline(pts, d)
	}
	r.scan(emit)
}

// StrokeSegment renders a single round-capped segment from a to b. This is
// the incremental step used while a freehand stroke is being drawn.
func (r *Rasterizer) StrokeSegment(a, b vec.Vec2, emit EmitFunc) {
	r.beginEdges()
	d := r.Width / 2
	r.addDisc(a, d)
	if b.Sub(a).Length() >= zeroLengthThreshold {
		r.addQuad(a, b, d)
		r.addDisc(b, d)
	}
	r.scan(emit)
}

// polylines flattens p into one point list per subpath. Closed subpaths
// repeat their start point at the end.
func (r *Rasterizer) polylines(p *path.Data) [][]vec.Vec2 {
	var lines [][]vec.Vec2
	r.polyline = r.polyline[:0]
	flush := func() {
		if len(r.polyline) > 0 {
			lines = append(lines, append([]vec.Vec2(nil), r.polyline...))
		}
		r.polyline = r.polyline[:0]
	}
	lineTo := func(_, b vec.Vec2) {
		r.polyline = append(r.polyline, b)
	}

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			current = p.Coords[k]
			start = current
			r.polyline = append(r.polyline, current)
			k++
		case path.CmdLineTo:
			current = p.Coords[k]
			r.polyline = append(r.polyline, current)
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				r.polyline = append(r.polyline, start)
			}
			flush()
			current = start
		}
	}
	flush()
	return lines
}

// strokePolyline adds the outline polygons of one polyline.
func (r *Rasterizer) strokePolyline(pts []vec.Vec2, d float64) {
	if len(pts) == 0 || d <= 0 {
		return
	}
	closed := len(pts) > 2 && pts[0] == pts[len(pts)-1]

	drawn := 0
	for i := 1; i < len(pts); i++ {
		if pts[i].Sub(pts[i-1]).Length() < zeroLengthThreshold {
			continue
		}
		r.addQuad(pts[i-1], pts[i], d)
		drawn++
	}
	if drawn == 0 {
		// a dot: only visible with round caps
		if r.Cap == graphics.LineCapRound {
			r.addDisc(pts[0], d)
		}
		return
	}

	first, last := 1, len(pts)-1
	if closed || r.Cap == graphics.LineCapRound {
		first, last = 0, len(pts)
	}
	for i := first; i < last; i++ {
		r.addDisc(pts[i], d)
	}
}

// addQuad adds the rectangle of half-width d around the segment a→b.
func (r *Rasterizer) addQuad(a, b vec.Vec2, d float64) {
	t := b.Sub(a)
	t = t.Mul(1 / t.Length())
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
	r.ring = append(r.ring[:0], a.Sub(n), b.Sub(n), b.Add(n), a.Add(n))
	r.addRing(r.ring)
}

// addDisc adds a polygonal approximation of a disc. The number of vertices
// is chosen so that the error stays below Flatness in device space.
func (r *Rasterizer) addDisc(c vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := minDiscVertices
	if devRadius > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 && !math.IsNaN(step) {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	// enlarge the polygon so that its area matches the disc
	alpha := 2 * math.Pi / float64(n)
	rr := radius * math.Sqrt(alpha/math.Sin(alpha))

	r.ring = r.ring[:0]
	for i := range n {
		phi := alpha * float64(i)
		r.ring = append(r.ring, vec.Vec2{
			X: c.X + rr*math.Cos(phi),
			Y: c.Y + rr*math.Sin(phi),
		})
	}
	r.addRing(r.ring)
}

func (r *Rasterizer) addRing(pts []vec.Vec2) {
	for i := range pts {
		r.addEdge(pts[i], pts[(i+1)%len(pts)])
	}
}

// applyDash splits the polylines into the "on" parts of the dash pattern.
// Odd-length patterns are repeated twice, as in PDF.
func (r *Rasterizer) applyDash(lines [][]vec.Vec2) [][]vec.Vec2 {
	pattern := r.Dash
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	total := 0.0
	for _, v := range pattern {
		if v < 0 {
			return lines
		}
		total += v
	}
	if total <= 0 {
		return lines
	}

	r.dashed = r.dashed[:0]
	for _, pts := range lines {
		idx := 0
		left := math.Mod(r.DashPhase, total)
		if left < 0 {
			left += total
		}
		for left >= pattern[idx] {
			left -= pattern[idx]
			idx = (idx + 1) % len(pattern)
		}
		remaining := pattern[idx] - left

		var cur []vec.Vec2
		if idx%2 == 0 && len(pts) > 0 {
			cur = []vec.Vec2{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for segLen-pos > remaining {
				pos += remaining
				split := a.Add(b.Sub(a).Mul(pos / segLen))
				if idx%2 == 0 {
					r.dashed = append(r.dashed, append(cur, split))
					cur = nil
				} else {
					cur = []vec.Vec2{split}
				}
				idx = (idx + 1) % len(pattern)
				remaining = pattern[idx]
			}
			remaining -= segLen - pos
			if idx%2 == 0 {
				cur = append(cur, b)
			}
		}
		if len(cur) > 1 {
			r.dashed = append(r.dashed, cur)
		}
	}
	return r.dashed
}

// minDiscVertices is the smallest number of vertices used for a disc.
const minDiscVertices = 16
