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
	"context"
	"io"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/overlay"
)

// AddOverlay creates an object in the centre of the page.
func (s *Session) AddOverlay(kind overlay.Kind, p overlay.Payload) (overlay.ID, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	w, h := p.Size()
	size := s.DocumentSize()
	pos := vec.Vec2{
		X: (float64(size.X) - w) / 2,
		Y: (float64(size.Y) - h) / 2,
	}
	return s.AddOverlayAt(kind, pos, p)
}

// AddOverlayAt creates an object with its top-left corner at the document
// position pos. The new object is on top of all others and is selected.
// Text objects receive the edit focus.
func (s *Session) AddOverlayAt(kind overlay.Kind, pos vec.Vec2, p overlay.Payload) (overlay.ID, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if p.Style.Size <= 0 && kind != overlay.Image {
		p.Style.Size = s.opt.FontSize
	}
	s.settle()
	s.finishGesture()
	return s.objs.Create(kind, pos, p)
}

// AddImage decodes an image from r and places it as an image object.
// If pos is nil, the image is centred on the page. Images wider than half
// the page are scaled down to half the page width.
//
// If r does not contain a supported image, ErrUnsupportedInput is returned
// and nothing is changed.
func (s *Session) AddImage(ctx context.Context, r io.Reader, pos *vec.Vec2) (overlay.ID, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	img, _, err := overlay.DecodeImage(r)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b := img.Bounds()
	p := overlay.Payload{Bitmap: img, W: float64(b.Dx()), H: float64(b.Dy())}
	if maxW := float64(s.DocumentSize().X) / 2; p.W > maxW {
		p.H *= maxW / p.W
		p.W = maxW
	}
	if pos == nil {
		return s.AddOverlay(overlay.Image, p)
	}
	return s.AddOverlayAt(overlay.Image, *pos, p)
}

// Select makes id the selected object. Select(0) clears the selection.
func (s *Session) Select(id overlay.ID) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.settle()
	s.finishGesture()
	return s.objs.Select(id)
}

// DeleteSelected removes the selected object.
// If nothing is selected, ErrNoSelection is returned and the history is
// not changed.
func (s *Session) DeleteSelected() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.settle()
	s.finishGesture()
	id := s.objs.Selected()
	if id == 0 {
		return ErrNoSelection
	}
	return s.objs.Delete(id)
}

// SetOverlayStyle changes the text style of the selected object.
func (s *Session) SetOverlayStyle(d overlay.StyleDelta) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.settle()
	s.finishGesture()
	id := s.objs.Selected()
	if id == 0 {
		return ErrNoSelection
	}
	return s.objs.SetStyle(id, d)
}

// SetText replaces the content of the text object being edited, or of the
// selected object. The change is committed to the history when the edit
// ends, see [Session.CommitText].
func (s *Session) SetText(text string) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.settle()
	id := s.objs.Editing()
	if id == 0 {
		id = s.objs.Selected()
	}
	if id == 0 {
		return ErrNoSelection
	}
	return s.objs.SetText(id, text)
}

// CommitText ends the current text edit. If the text was changed, one
// history entry is recorded and the result is true.
//
// Text edits also end when another object is selected, the tool changes,
// the pointer goes down outside the object, and before undo, redo,
// deletion, style changes and export.
func (s *Session) CommitText() bool {
	if s.ready() != nil {
		return false
	}
	s.settle()
	return s.objs.CommitEdit()
}

func (s *Session) ready() error {
	if s.disposed {
		return ErrDisposed
	}
	if s.page == nil {
		return ErrNoPage
	}
	return nil
}
