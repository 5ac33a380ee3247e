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

// Package testcases provides named editing scenarios, and a player which
// runs them against an annotation session.
package testcases

import (
	"image/color"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate"
)

// Scenario is a sequence of edits on a blank page.
type Scenario struct {
	Name   string // lowercase a-z and _ only
	Width  int    // page width in document pixels
	Height int    // page height in document pixels
	Steps  []Step
}

// Step is one user action.
type Step interface {
	isStep()
}

// UseTool selects a tool.
type UseTool struct {
	Tool  annotate.Tool
	Size  float64     // zero for the default
	Color color.NRGBA // zero for the default
}

// Gesture presses the pointer at the first point, moves it through the
// following points and releases it at the last one. Points are in
// document space.
type Gesture struct {
	Points []vec.Vec2
}

// AddText creates a text object with its top-left corner at At.
type AddText struct {
	At   vec.Vec2
	Text string
	Size float64
}

// AddImage creates an image object of a single color.
type AddImage struct {
	At    vec.Vec2
	W, H  int
	Color color.NRGBA
}

// Type replaces the text of the object being edited.
type Type struct {
	Text string
}

// CommitText ends the text edit.
type CommitText struct{}

// Restyle changes the text style of the selected object.
type Restyle struct {
	Grow         float64
	ToggleBold   bool
	ToggleItalic bool
}

// Delete removes the selected object.
type Delete struct{}

// Undo reverts the last edit.
type Undo struct{}

// Redo reapplies the last undone edit.
type Redo struct{}

// Zoom changes the view zoom.
type Zoom struct {
	Zoom float64
}

func (UseTool) isStep()    {}
func (Gesture) isStep()    {}
func (AddText) isStep()    {}
func (AddImage) isStep()   {}
func (Type) isStep()       {}
func (CommitText) isStep() {}
func (Restyle) isStep()    {}
func (Delete) isStep()     {}
func (Undo) isStep()       {}
func (Redo) isStep()       {}
func (Zoom) isStep()       {}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// line returns n+1 evenly spaced points from a to b.
func line(a, b vec.Vec2, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n+1)
	for i := range pts {
		t := float64(i) / float64(n)
		pts[i] = a.Add(b.Sub(a).Mul(t))
	}
	return pts
}
