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

import (
	"image/color"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// Tool identifies a drawing tool.
type Tool int

// These are the supported drawing tools.
const (
	Pen            Tool = iota // opaque freehand line
	HighlightBrush             // translucent freehand line
	HighlightBox               // translucent filled rectangle
	Eraser                     // removes stroke pixels
	Whiteout                   // opaque white rectangle
)

func (t Tool) String() string {
	switch t {
	case Pen:
		return "pen"
	case HighlightBrush:
		return "highlight"
	case HighlightBox:
		return "highlight-box"
	case Eraser:
		return "eraser"
	case Whiteout:
		return "whiteout"
	default:
		return "unknown"
	}
}

// IsShape reports whether the tool draws a rectangle between the start and
// the current pointer position, rather than following the pointer.
func (t Tool) IsShape() bool {
	return t == HighlightBox || t == Whiteout
}

// CompositeMode describes how a stroke is combined with the existing
// stroke raster.
type CompositeMode int

// These are the supported composite modes.
const (
	Paint       CompositeMode = iota // source over, opaque
	Translucent                      // source over, with reduced alpha
	Erase                            // destination out
)

func (m CompositeMode) String() string {
	switch m {
	case Paint:
		return "paint"
	case Translucent:
		return "translucent"
	case Erase:
		return "erase"
	default:
		return "unknown"
	}
}

// Style holds the appearance of a stroke.
type Style struct {
	Color color.NRGBA
	Width float64 // line width in document pixels, unused for shapes
	Alpha float64 // opacity multiplier in [0, 1]
	Mode  CompositeMode
}

var (
	highlightYellow = color.NRGBA{R: 255, G: 255, A: 255}
	white           = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// DefaultStyle returns the style used by tool t for the given brush size
// and brush color.
func DefaultStyle(t Tool, size float64, c color.Color) Style {
	brush := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch t {
	case HighlightBrush:
		return Style{Color: highlightYellow, Width: size * 5, Alpha: 0.4, Mode: Translucent}
	case HighlightBox:
		return Style{Color: highlightYellow, Width: size, Alpha: 0.4, Mode: Translucent}
	case Eraser:
		return Style{Width: size * 4, Alpha: 1, Mode: Erase}
	case Whiteout:
		return Style{Color: white, Width: size, Alpha: 1, Mode: Paint}
	default:
		return Style{Color: brush, Width: size, Alpha: 1, Mode: Paint}
	}
}

// Stroke is a committed drawing gesture in document space.
//
// For shape tools, Points holds the two opposite corners of the rectangle.
// A Stroke must not be modified once it has been committed.
type Stroke struct {
	Tool   Tool
	Style  Style
	Points []vec.Vec2
}

// Clone returns a deep copy of s.
func (s Stroke) Clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}
