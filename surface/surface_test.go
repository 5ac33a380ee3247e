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
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func TestPenStroke(t *testing.T) {
	c := New(64, 32)
	var committed []Stroke
	c.OnCommit = func(s Stroke) { committed = append(committed, s) }

	c.Begin(pt(10, 16))
	c.Move(pt(30, 16))
	c.Move(pt(50, 16))
	if !c.Drawing() {
		t.Fatal("not drawing during gesture")
	}
	s, ok := c.End()
	if !ok {
		t.Fatal("stroke not committed")
	}

	want := []Stroke{{
		Tool:   Pen,
		Style:  DefaultStyle(Pen, 4, color.Black),
		Points: []vec.Vec2{pt(10, 16), pt(30, 16), pt(50, 16)},
	}}
	if diff := cmp.Diff(want, committed); diff != "" {
		t.Errorf("committed strokes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[0], s); diff != "" {
		t.Errorf("returned stroke (-want +got):\n%s", diff)
	}

	if got := c.Layer().NRGBAAt(30, 16); got != (color.NRGBA{A: 255}) {
		t.Errorf("pixel on the line = %v, want opaque black", got)
	}
	if got := c.Layer().NRGBAAt(30, 2); got != (color.NRGBA{}) {
		t.Errorf("pixel off the line = %v, want transparent", got)
	}
}

func TestDegenerateClick(t *testing.T) {
	for _, tool := range []Tool{Pen, HighlightBrush, Eraser, Whiteout, HighlightBox} {
		t.Run(tool.String(), func(t *testing.T) {
			c := New(32, 32)
			calls := 0
			c.OnCommit = func(Stroke) { calls++ }
			c.SetTool(tool, DefaultStyle(tool, 4, color.Black))

			c.Begin(pt(16, 16))
			c.Move(pt(16, 16))
			if _, ok := c.End(); ok {
				t.Error("degenerate click was committed")
			}
			if calls != 0 {
				t.Errorf("OnCommit called %d times", calls)
			}
			if !isTransparent(c.Layer()) {
				t.Error("layer changed")
			}
		})
	}
}

func TestHighlightBlendsOnce(t *testing.T) {
	c := New(64, 32)
	c.SetTool(HighlightBrush, DefaultStyle(HighlightBrush, 4, color.Black))

	c.Begin(pt(10, 16))
	c.Move(pt(50, 16))
	c.Move(pt(10, 16))
	c.Move(pt(50, 16))
	c.End()

	got := c.Layer().NRGBAAt(30, 16)
	if got.R != 255 || got.G != 255 || got.B != 0 {
		t.Errorf("highlight colour = %v, want yellow", got)
	}
	if got.A < 101 || got.A > 103 {
		t.Errorf("highlight alpha = %d, want 102", got.A)
	}
}

func TestShapePreview(t *testing.T) {
	c := New(40, 40)
	c.SetTool(Whiteout, DefaultStyle(Whiteout, 4, color.Black))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	c.Begin(pt(5, 5))
	c.Move(pt(30, 30))
	if got := c.Layer().NRGBAAt(20, 20); got != white {
		t.Errorf("large preview: pixel = %v, want white", got)
	}

	c.Move(pt(10, 10))
	if got := c.Layer().NRGBAAt(20, 20); got != (color.NRGBA{}) {
		t.Errorf("shrunk preview: stale pixel %v", got)
	}
	if got := c.Layer().NRGBAAt(7, 7); got != white {
		t.Errorf("shrunk preview: pixel = %v, want white", got)
	}

	r, ok := c.Preview()
	if !ok {
		t.Fatal("no preview during shape gesture")
	}
	if diff := cmp.Diff(rect.Rect{LLx: 5, LLy: 5, URx: 10, URy: 10}, r); diff != "" {
		t.Errorf("preview rect (-want +got):\n%s", diff)
	}

	s, ok := c.End()
	if !ok {
		t.Fatal("shape not committed")
	}
	if diff := cmp.Diff([]vec.Vec2{pt(5, 5), pt(10, 10)}, s.Points); diff != "" {
		t.Errorf("shape corners (-want +got):\n%s", diff)
	}
	if _, ok := c.Preview(); ok {
		t.Error("preview still present after commit")
	}
}

func TestEraser(t *testing.T) {
	c := New(64, 32)
	c.Begin(pt(10, 16))
	c.Move(pt(50, 16))
	c.End()

	c.SetTool(Eraser, DefaultStyle(Eraser, 4, color.Black))
	c.Begin(pt(30, 0))
	c.Move(pt(30, 31))
	c.End()

	if got := c.Layer().NRGBAAt(30, 16); got != (color.NRGBA{}) {
		t.Errorf("erased pixel = %v, want transparent", got)
	}
	if got := c.Layer().NRGBAAt(12, 16); got.A != 255 {
		t.Errorf("pixel outside the eraser = %v, want opaque", got)
	}
}

func TestCancel(t *testing.T) {
	c := New(32, 32)
	c.Begin(pt(2, 2))
	c.Move(pt(30, 30))
	c.Cancel()
	if c.Drawing() {
		t.Error("still drawing after Cancel")
	}
	if !isTransparent(c.Layer()) {
		t.Error("cancelled gesture left pixels behind")
	}
}

func TestCommittedLayer(t *testing.T) {
	c := New(32, 32)
	c.Begin(pt(2, 16))
	c.Move(pt(30, 16))
	c.End()
	drawn := bytes.Clone(c.Layer().Pix)

	c.Begin(pt(16, 2))
	c.Move(pt(16, 30))
	if !bytes.Equal(c.Committed().Pix, drawn) {
		t.Error("gesture in progress is part of the committed layer")
	}
	if bytes.Equal(c.Layer().Pix, drawn) {
		t.Error("gesture in progress is not shown on the live layer")
	}
	c.End()
	if c.Committed() != c.Layer() {
		t.Error("committed layer differs from the live layer when idle")
	}
}

func TestRestore(t *testing.T) {
	c := New(32, 32)
	before := bytes.Clone(c.Layer().Pix)

	c.Begin(pt(2, 2))
	c.Move(pt(30, 30))
	c.End()
	after := image.NewNRGBA(c.Bounds())
	copy(after.Pix, c.Layer().Pix)

	c.Restore(&image.NRGBA{Pix: before, Stride: c.Layer().Stride, Rect: c.Bounds()})
	if !isTransparent(c.Layer()) {
		t.Error("layer not restored to blank")
	}
	c.Restore(after)
	if !bytes.Equal(after.Pix, c.Layer().Pix) {
		t.Error("layer not restored to drawn state")
	}
}

func isTransparent(img *image.NRGBA) bool {
	for _, v := range img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}
