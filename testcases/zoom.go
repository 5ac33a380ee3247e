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

var zoomCases = []Scenario{
	{
		Name:   "pen_at_2",
		Width:  120,
		Height: 80,
		Steps: []Step{
			Zoom{Zoom: 2},
			UseTool{Tool: annotate.ToolPen},
			Gesture{Points: line(pt(20, 20), pt(100, 60), 4)},
		},
	},
	{
		Name:   "drag_at_half",
		Width:  240,
		Height: 160,
		Steps: []Step{
			Zoom{Zoom: 0.5},
			AddImage{At: pt(20, 20), W: 40, H: 30, Color: blue},
			UseTool{Tool: annotate.ToolSelect},
			Gesture{Points: line(pt(40, 35), pt(140, 95), 4)},
		},
	},
}
