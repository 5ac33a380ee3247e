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

package annotate

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/overlay"
	"seehuhn.de/go/annotate/surface"
	"seehuhn.de/go/annotate/viewport"
)

// Tool selects how pointer input is interpreted.
type Tool int

// These are the available tools.
const (
	ToolSelect Tool = iota
	ToolPen
	ToolHighlight
	ToolHighlightBox
	ToolEraser
	ToolWhiteout
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPen:
		return "pen"
	case ToolHighlight:
		return "highlight"
	case ToolHighlightBox:
		return "highlight-box"
	case ToolEraser:
		return "eraser"
	case ToolWhiteout:
		return "whiteout"
	case ToolText:
		return "text"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, error) {
	for t := ToolSelect; t <= ToolText; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("annotate: unknown tool %q", name)
}

// surfaceTool returns the drawing tool behind t.
func (t Tool) surfaceTool() (surface.Tool, bool) {
	switch t {
	case ToolPen:
		return surface.Pen, true
	case ToolHighlight:
		return surface.HighlightBrush, true
	case ToolHighlightBox:
		return surface.HighlightBox, true
	case ToolEraser:
		return surface.Eraser, true
	case ToolWhiteout:
		return surface.Whiteout, true
	}
	return 0, false
}

// ToolParams are the settings of a tool. Zero fields are replaced by the
// session defaults.
type ToolParams struct {
	// Size is the brush width for drawing tools and the font size for the
	// text tool.
	Size float64

	// Color is the brush color for the pen and the text color for the text
	// tool. The other tools use fixed colors.
	Color color.Color
}

// SetTool selects the tool for subsequent pointer input. A gesture in
// progress is finished and a pending text edit is committed.
func (s *Session) SetTool(t Tool, p ToolParams) {
	if s.disposed {
		return
	}
	s.settle()
	s.finishGesture()
	s.objs.CommitEdit()

	s.tool = t
	s.params = p
	s.applyTool()
}

// CurrentTool returns the selected tool and its settings.
func (s *Session) CurrentTool() (Tool, ToolParams) {
	return s.tool, s.params
}

func (s *Session) applyTool() {
	if s.draw == nil {
		return
	}
	st, ok := s.tool.surfaceTool()
	if !ok {
		return
	}
	size := s.params.Size
	if !(size > 0) {
		size = s.opt.BrushSize
	}
	c := s.params.Color
	if c == nil {
		c = s.opt.BrushColor
	}
	s.draw.SetTool(st, surface.DefaultStyle(st, size, c))
}

// SetSurface describes the drawing surface on screen: the position of its
// top-left corner in viewport coordinates, its displayed size and its
// size in device pixels. If one of the sizes is zero, pointer input is
// ignored until a valid surface is set.
//
// Loading a page keeps the origin and the pixel ratio, and adapts the
// sizes to the new page.
func (s *Session) SetSurface(origin, displayed, intrinsic vec.Vec2) {
	s.mapper = s.mapper.WithSurface(viewport.Surface{
		Origin:    origin,
		Displayed: displayed,
		Intrinsic: intrinsic,
	})
}

// SetZoom changes the view zoom. The value is clamped to the zoom limits.
// Stored edits are not affected.
func (s *Session) SetZoom(zoom float64) {
	s.mapper = s.mapper.WithZoom(s.limits.Clamp(zoom))
}

// ZoomIn increases the zoom by one step.
func (s *Session) ZoomIn() {
	s.SetZoom(s.limits.ZoomIn(s.mapper.Zoom()))
}

// ZoomOut decreases the zoom by one step.
func (s *Session) ZoomOut() {
	s.SetZoom(s.limits.ZoomOut(s.mapper.Zoom()))
}

// FitWidth chooses the zoom at which the page fills the available width,
// leaving a margin.
func (s *Session) FitWidth(available float64) {
	s.SetZoom(s.limits.FitWidth(available, float64(s.DocumentSize().X)))
}

// PointerDown starts a gesture at viewport position v.
//
// With a drawing tool, this starts a stroke. With the select tool, the
// topmost object under the pointer is selected and starts to move, or to
// resize if the pointer is on its handle; a click on empty space clears
// the selection. With the text tool, a click on an object behaves like
// the select tool and a click elsewhere creates a new text object.
func (s *Session) PointerDown(v vec.Vec2) {
	if s.disposed || s.page == nil {
		return
	}
	s.drain()
	d, ok := s.mapper.ToDocument(v)
	if !ok {
		return
	}
	s.settle()
	s.finishGesture()

	if _, isDraw := s.tool.surfaceTool(); isDraw {
		s.objs.CommitEdit()
		s.objs.Select(0)
		s.draw.Begin(d)
		s.pointer = pointerDrawing
		return
	}

	id, part := overlay.HitTest(s.objs.View(), d, s.handleSize())
	switch {
	case part == overlay.Handle:
		s.objs.BeginResize(id, d)
		s.pointer = pointerResizing
	case part == overlay.Body:
		s.objs.BeginDrag(id, d)
		s.pointer = pointerDragging
	case s.tool == ToolText:
		s.objs.CommitEdit()
		s.createText(d)
	default:
		s.objs.Select(0)
	}
}

// handleSize returns the size of the resize handle in document pixels.
// On screen, the handle is HandleSize viewport units wide.
func (s *Session) handleSize() float64 {
	size := s.opt.HandleSize / s.mapper.Zoom()
	if sf := s.mapper.Surface(); sf.Valid() {
		size *= sf.PixelRatio().X
	}
	return size
}

func (s *Session) createText(pos vec.Vec2) {
	style := overlay.TextStyle{Size: s.opt.FontSize}
	if s.params.Size > 0 {
		style.Size = s.params.Size
	}
	if s.params.Color != nil {
		style.Color = color.NRGBAModel.Convert(s.params.Color).(color.NRGBA)
	}
	_, err := s.objs.Create(overlay.Text, pos, overlay.Payload{Style: style})
	if err != nil {
		s.report(err)
	}
}

// PointerMove continues the current gesture at viewport position v.
func (s *Session) PointerMove(v vec.Vec2) {
	if s.disposed {
		return
	}
	s.drain()
	if s.pointer == pointerIdle {
		return
	}
	d, ok := s.mapper.ToDocument(v)
	if !ok {
		return
	}
	switch s.pointer {
	case pointerDrawing:
		s.draw.Move(d)
	case pointerDragging:
		s.objs.UpdateDrag(d)
	case pointerResizing:
		s.objs.UpdateResize(d)
	}
}

// PointerUp finishes the current gesture at viewport position v.
func (s *Session) PointerUp(v vec.Vec2) {
	s.PointerMove(v)
	s.PointerLeave()
}

// PointerLeave finishes the current gesture when the pointer leaves the
// drawing surface.
func (s *Session) PointerLeave() {
	if s.disposed {
		return
	}
	s.drain()
	s.finishGesture()
}

// finishGesture commits the gesture in progress, if any.
func (s *Session) finishGesture() {
	switch s.pointer {
	case pointerDrawing:
		s.draw.End()
	case pointerDragging:
		s.objs.EndDrag()
	case pointerResizing:
		s.objs.EndResize()
	}
	s.pointer = pointerIdle
}
