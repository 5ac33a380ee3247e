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

// Package surface implements the stroke raster layer and the drawing tools
// which paint into it.
//
// Every pointer gesture runs through a two-state machine: idle, then
// drawing from [Controller.Begin] until [Controller.End]. While drawing,
// the controller keeps a copy of the layer as it was before the gesture,
// together with a coverage mask. The visible layer is always the pre-gesture
// raster composited with the mask, so that a translucent stroke is blended
// only once even where its segments overlap, and shape tools can replace
// their preview on every move.
package surface

import (
	"image"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/annotate/raster"
)

// Controller owns the stroke raster of one page.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	// OnCommit, if set, is called after a gesture has been committed to the
	// layer.
	OnCommit func(Stroke)

	layer *image.NRGBA
	pre   *image.NRGBA
	mask  []float32
	dirty image.Rectangle

	ras   *raster.Rasterizer
	box   path.Data
	tool  Tool
	style Style

	drawing bool
	points  []vec.Vec2
}

// New allocates a transparent stroke layer of the given size, in document
// pixels. The initial tool is a black pen of width 4.
func New(width, height int) *Controller {
	bounds := image.Rect(0, 0, width, height)
	c := &Controller{
		layer: image.NewNRGBA(bounds),
		pre:   image.NewNRGBA(bounds),
		mask:  make([]float32, width*height),
		ras: raster.NewRasterizer(rect.Rect{
			URx: float64(width),
			URy: float64(height),
		}),
		tool: Pen,
	}
	c.ras.Cap = graphics.LineCapRound
	c.style = DefaultStyle(Pen, 4, image.Black)
	return c
}

// Layer returns the live stroke raster. The caller must not modify it.
func (c *Controller) Layer() *image.NRGBA {
	return c.layer
}

// Committed returns the layer without the gesture in progress.
// The caller must not modify it.
func (c *Controller) Committed() *image.NRGBA {
	if c.drawing {
		return c.pre
	}
	return c.layer
}

// Bounds returns the size of the layer.
func (c *Controller) Bounds() image.Rectangle {
	return c.layer.Rect
}

// Tool returns the active tool and its style.
func (c *Controller) Tool() (Tool, Style) {
	return c.tool, c.style
}

// SetTool selects the tool used by the next gesture. A gesture in progress
// is finished first.
func (c *Controller) SetTool(t Tool, s Style) {
	if c.drawing {
		c.End()
	}
	c.tool = t
	c.style = s
}

// Drawing reports whether a gesture is in progress.
func (c *Controller) Drawing() bool {
	return c.drawing
}

// Begin starts a gesture at document position p. A gesture which is
// already in progress is cancelled.
func (c *Controller) Begin(p vec.Vec2) {
	if c.drawing {
		c.Cancel()
	}
	copy(c.pre.Pix, c.layer.Pix)
	c.dirty = image.Rectangle{}
	c.points = append(c.points[:0], p)
	c.drawing = true
}

// Move extends the gesture to document position p.
//
// Free-form tools paint the segment from the previous position to p
// immediately. Shape tools replace their rectangle by the one spanned by the
// start position and p.
func (c *Controller) Move(p vec.Vec2) {
	if !c.drawing {
		return
	}
	if c.tool.IsShape() {
		c.points = append(c.points[:1], p)
		c.redrawShape()
		return
	}

	last := c.points[len(c.points)-1]
	if p == last {
		return
	}
	c.points = append(c.points, p)
	c.ras.Width = c.style.Width
	c.ras.StrokeSegment(last, p, c.accumulate)
}

// End finishes the gesture. If the pointer moved, the result becomes part
// of the layer, OnCommit is called and the stroke is returned.
//
// A gesture without movement is a no-op: the layer keeps its previous
// content and nothing is committed.
func (c *Controller) End() (Stroke, bool) {
	if !c.drawing {
		return Stroke{}, false
	}
	c.drawing = false

	if !c.moved() {
		c.restoreDirty()
		return Stroke{}, false
	}

	s := Stroke{Tool: c.tool, Style: c.style, Points: c.points}.Clone()
	c.clearMask(c.dirty)
	c.dirty = image.Rectangle{}
	if c.OnCommit != nil {
		c.OnCommit(s)
	}
	return s, true
}

// Cancel aborts the gesture in progress and restores the layer.
func (c *Controller) Cancel() {
	if !c.drawing {
		return
	}
	c.drawing = false
	c.restoreDirty()
}

// Preview returns the rectangle of a shape gesture in progress, in document
// space. The rectangle is not part of the layer's permanent state until the
// gesture ends.
func (c *Controller) Preview() (rect.Rect, bool) {
	if !c.drawing || !c.tool.IsShape() || len(c.points) < 2 {
		return rect.Rect{}, false
	}
	return spanRect(c.points[0], c.points[1]), true
}

// Restore replaces the content of the layer, for example when the edit
// history is rewound. Any gesture in progress is discarded. The image must
// have the same bounds as the layer.
func (c *Controller) Restore(img *image.NRGBA) {
	c.drawing = false
	c.clearMask(c.dirty)
	c.dirty = image.Rectangle{}
	if img.Rect == c.layer.Rect && img.Stride == c.layer.Stride {
		copy(c.layer.Pix, img.Pix)
		return
	}
	for y := c.layer.Rect.Min.Y; y < c.layer.Rect.Max.Y; y++ {
		for x := c.layer.Rect.Min.X; x < c.layer.Rect.Max.X; x++ {
			c.layer.SetNRGBA(x, y, img.NRGBAAt(x, y))
		}
	}
}

func (c *Controller) moved() bool {
	for _, p := range c.points[1:] {
		if p != c.points[0] {
			return true
		}
	}
	return false
}

// accumulate merges one row of coverage into the gesture mask and updates
// the visible layer for that row.
func (c *Controller) accumulate(y, xMin int, coverage []float32) {
	w := c.layer.Rect.Dx()
	row := c.mask[y*w+xMin : y*w+xMin+len(coverage)]
	for i, cov := range coverage {
		row[i] = max(row[i], cov)
	}
	c.dirty = c.dirty.Union(image.Rect(xMin, y, xMin+len(coverage), y+1))
	c.compositeSpan(y, xMin, xMin+len(coverage))
}

func (c *Controller) redrawShape() {
	old := c.dirty
	c.clearMask(old)
	c.dirty = image.Rectangle{}

	r := spanRect(c.points[0], c.points[1])
	c.box.Cmds = c.box.Cmds[:0]
	c.box.Coords = c.box.Coords[:0]
	c.box.MoveTo(vec.Vec2{X: r.LLx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.LLy}).
		LineTo(vec.Vec2{X: r.URx, Y: r.URy}).
		LineTo(vec.Vec2{X: r.LLx, Y: r.URy}).
		Close()
	c.ras.FillNonZero(&c.box, c.accumulate)

	// pixels covered by the previous preview only
	c.composite(old)
}

// restoreDirty returns the area touched by the gesture to its pre-gesture
// state.
func (c *Controller) restoreDirty() {
	c.clearMask(c.dirty)
	c.composite(c.dirty)
	c.dirty = image.Rectangle{}
}

func (c *Controller) clearMask(r image.Rectangle) {
	r = r.Intersect(c.layer.Rect)
	w := c.layer.Rect.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(c.mask[y*w+r.Min.X : y*w+r.Max.X])
	}
}

func spanRect(a, b vec.Vec2) rect.Rect {
	return rect.Rect{
		LLx: min(a.X, b.X),
		LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X),
		URy: max(a.Y, b.Y),
	}
}
