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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Part names the region of an object hit by the pointer.
type Part int

// These are the parts of an object which react to the pointer.
const (
	Outside Part = iota
	Body
	Handle
)

// HandleRect returns the resize handle of o: a square of side handleSize
// centred on the bottom-right corner.
func HandleRect(o *Object, handleSize float64) rect.Rect {
	d := handleSize / 2
	x, y := o.X+o.W, o.Y+o.H
	return rect.Rect{LLx: x - d, LLy: y - d, URx: x + d, URy: y + d}
}

// HitTest finds the topmost object under the document position p.
// Handles are only active on the selected object.
func HitTest(objs []Object, p vec.Vec2, handleSize float64) (ID, Part) {
	for i := len(objs) - 1; i >= 0; i-- {
		o := &objs[i]
		if o.Selected && contains(HandleRect(o, handleSize), p) {
			return o.ID, Handle
		}
		if contains(o.Rect(), p) {
			return o.ID, Body
		}
	}
	return 0, Outside
}

func contains(r rect.Rect, p vec.Vec2) bool {
	return p.X >= r.LLx && p.X <= r.URx && p.Y >= r.LLy && p.Y <= r.URy
}
