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
	"image/color"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate"
)

var drawCases = []Scenario{
	{
		Name:   "pen_line",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen, Size: 4},
			Gesture{Points: line(pt(20, 40), pt(100, 40), 8)},
		},
	},
	{
		Name:   "pen_zigzag",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen, Size: 3, Color: color.NRGBA{R: 200, A: 255}},
			Gesture{Points: []vec.Vec2{
				pt(10, 70), pt(30, 10), pt(50, 70), pt(70, 10), pt(90, 70), pt(110, 10),
			}},
		},
	},
	{
		Name:   "highlight_overlap",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolHighlight, Size: 4},
			Gesture{Points: []vec.Vec2{
				pt(20, 40), pt(100, 40), pt(20, 42), pt(100, 42),
			}},
		},
	},
	{
		Name:   "eraser_after_pen",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen, Size: 6},
			Gesture{Points: line(pt(20, 40), pt(100, 40), 4)},
			UseTool{Tool: annotate.ToolEraser, Size: 4},
			Gesture{Points: line(pt(60, 10), pt(60, 70), 4)},
		},
	},
	{
		Name:   "whiteout_box",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolWhiteout},
			Gesture{Points: []vec.Vec2{pt(10, 10), pt(50, 30), pt(30, 20), pt(60, 50)}},
		},
	},
	{
		Name:   "highlight_box",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolHighlightBox},
			Gesture{Points: []vec.Vec2{pt(20, 20), pt(80, 50), pt(90, 60)}},
		},
	},
	{
		Name:   "click_noop",
		Width:  120,
		Height: 80,
		Steps: []Step{
			UseTool{Tool: annotate.ToolPen},
			Gesture{Points: []vec.Vec2{pt(60, 40)}},
			UseTool{Tool: annotate.ToolWhiteout},
			Gesture{Points: []vec.Vec2{pt(30, 30), pt(30, 30)}},
		},
	},
}
