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

var (
	blue = color.NRGBA{B: 255, A: 255}
	red  = color.NRGBA{R: 255, A: 255}
)

var overlayCases = []Scenario{
	{
		Name:   "text_tool",
		Width:  240,
		Height: 160,
		Steps: []Step{
			UseTool{Tool: annotate.ToolText, Size: 14},
			Gesture{Points: []vec.Vec2{pt(20, 20)}},
			Type{Text: "Hello"},
			CommitText{},
		},
	},
	{
		Name:   "text_edit",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddText{At: pt(10, 10), Text: "Draft"},
			Type{Text: "Final"},
			CommitText{},
		},
	},
	{
		Name:   "image_drag",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddImage{At: pt(20, 20), W: 40, H: 30, Color: blue},
			UseTool{Tool: annotate.ToolSelect},
			Gesture{Points: line(pt(30, 30), pt(110, 90), 5)},
		},
	},
	{
		Name:   "image_resize_min",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddImage{At: pt(20, 20), W: 40, H: 30, Color: blue},
			UseTool{Tool: annotate.ToolSelect},
			Gesture{Points: line(pt(60, 50), pt(0, 0), 3)},
		},
	},
	{
		Name:   "restyle_text",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddText{At: pt(10, 10), Text: "Style", Size: 12},
			Restyle{Grow: 4, ToggleBold: true},
			Restyle{ToggleItalic: true},
		},
	},
	{
		Name:   "delete_selected",
		Width:  240,
		Height: 160,
		Steps: []Step{
			AddImage{At: pt(20, 20), W: 40, H: 30, Color: red},
			AddImage{At: pt(100, 20), W: 40, H: 30, Color: blue},
			Delete{},
		},
	},
}
