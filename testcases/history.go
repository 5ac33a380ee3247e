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

package testcases

import (
	"seehuhn.de/go/annotate"
)

var historyCases = []Scenario{
	{
		Name:   "undo_stroke",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen},
			Gesture{Points: line(pt(10, 10), pt(110, 70), 6)},
			Undo{},
		},
	},
	{
		Name:   "undo_redo_stroke",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolHighlight},
			Gesture{Points: line(pt(10, 10), pt(110, 70), 6)},
			Undo{},
			Redo{},
		},
	},
	{
		Name:   "undo_discards_redo",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen},
			Gesture{Points: line(pt(10, 10), pt(110, 10), 4)},
			Undo{},
			Gesture{Points: line(pt(10, 70), pt(110, 70), 4)},
			Redo{},
		},
	},
	{
		Name:   "create_two_undo",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddImage{At: pt(10, 10), W: 30, H: 30, Color: red},
			AddImage{At: pt(60, 10), W: 30, H: 30, Color: blue},
			Undo{},
		},
	},
	{
		Name:   "alternating",
		Width:  240,
		Height: 160,
		Steps: append([]Step{
			AddImage{At: pt(10, 10), W: 30, H: 30, Color: red},
			AddImage{At: pt(60, 10), W: 30, H: 30, Color: blue},
		}, alternate(20)...),
	},
}

// alternate returns n steps which alternate between undo and redo.
func alternate(n int) []Step {
	steps := make([]Step, n)
	for i := range steps {
		if i%2 == 0 {
			steps[i] = Undo{}
		} else {
			steps[i] = Redo{}
		}
	}
	return steps
}
