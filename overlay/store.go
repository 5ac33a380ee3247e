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

package overlay

import (
	"image/color"

	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Store holds the overlay objects of one page.
//
// Every completed change calls OnCommit exactly once. Continuous changes,
// like dragging, resizing and typing, commit when they end.
//
// A Store is not safe for concurrent use.
type Store struct {
	// MinSize is the smallest width and height of an object, in document
	// pixels.
	MinSize float64

	// OnCommit, if set, is called after every committed change.
	OnCommit func()

	objs   []Object
	nextID ID

	// text edit focus
	editing   ID
	editDirty bool

	// drag or resize in progress
	gesture gesture
	target  ID
	grab    vec.Vec2
	start   rect.Rect
}

type gesture int

const (
	noGesture gesture = iota
	dragGesture
	resizeGesture
)

// NewStore returns an empty store.
func NewStore(minSize float64) *Store {
	return &Store{MinSize: minSize}
}

// Objects returns a copy of all objects, in z-order.
func (s *Store) Objects() []Object {
	return Clone(s.objs)
}

// View returns the objects in z-order. The caller must not modify the
// returned slice.
func (s *Store) View() []Object {
	return s.objs
}

// Get returns a copy of the object with the given ID.
func (s *Store) Get(id ID) (Object, bool) {
	i := s.index(id)
	if i < 0 {
		return Object{}, false
	}
	return s.objs[i], true
}

// Selected returns the ID of the selected object, or 0.
func (s *Store) Selected() ID {
	for i := range s.objs {
		if s.objs[i].Selected {
			return s.objs[i].ID
		}
	}
	return 0
}

// Editing returns the ID of the object which has the text edit focus,
// or 0.
func (s *Store) Editing() ID {
	return s.editing
}

// Create adds a new object on top of all others and selects it.
// Text objects receive the edit focus.
func (s *Store) Create(kind Kind, pos vec.Vec2, p Payload) (ID, error) {
	switch kind {
	case Text:
		if p.Style.Size <= 0 {
			p.Style.Size = DefaultFontSize
		}
	case Image:
		if p.Bitmap == nil || p.Bitmap.Bounds().Empty() {
			return 0, ErrUnsupportedInput
		}
	case Signature:
		if p.Bitmap != nil && p.Bitmap.Bounds().Empty() {
			return 0, ErrUnsupportedInput
		}
		if p.Bitmap == nil && p.Text == "" {
			return 0, ErrUnsupportedInput
		}
		if p.Style.Size <= 0 {
			p.Style.Size = DefaultFontSize
		}
	default:
		return 0, ErrUnsupportedInput
	}

	if p.Style.Color == (color.NRGBA{}) {
		p.Style.Color = color.NRGBA{A: 255}
	}

	s.CommitEdit()

	s.nextID++
	o := Object{
		ID:     s.nextID,
		Kind:   kind,
		X:      pos.X,
		Y:      pos.Y,
		W:      p.W,
		H:      p.H,
		Text:   norm.NFC.String(p.Text),
		Style:  p.Style,
		Bitmap: p.Bitmap,
	}
	o.W, o.H = p.Size()
	o.W = max(o.W, s.MinSize)
	o.H = max(o.H, s.MinSize)

	s.objs = append(s.objs, o)
	s.selectID(o.ID)
	if kind == Text {
		s.editing = o.ID
	}
	s.commit()
	return o.ID, nil
}

// Select makes id the only selected object. Select(0) clears the
// selection. Selecting a different object ends the text edit focus.
func (s *Store) Select(id ID) error {
	if id != 0 && s.index(id) < 0 {
		return ErrUnknownObject
	}
	if id != s.editing {
		s.CommitEdit()
	}
	s.selectID(id)
	return nil
}

func (s *Store) selectID(id ID) {
	for i := range s.objs {
		s.objs[i].Selected = s.objs[i].ID == id
	}
}

// BeginDrag starts moving the object id. The pointer position p is in
// document space; the object keeps its offset to the pointer.
func (s *Store) BeginDrag(id ID, p vec.Vec2) error {
	return s.begin(dragGesture, id, p)
}

// UpdateDrag moves the dragged object so that it follows the pointer.
func (s *Store) UpdateDrag(p vec.Vec2) {
	i := s.gestureIndex(dragGesture)
	if i < 0 {
		return
	}
	s.objs[i].X = p.X - s.grab.X
	s.objs[i].Y = p.Y - s.grab.Y
}

// EndDrag finishes a drag. If the object moved, one change is committed
// and the result is true. A drag without movement only selects the object.
func (s *Store) EndDrag() bool {
	return s.end(dragGesture)
}

// BeginResize starts resizing the object id from its bottom-right corner.
func (s *Store) BeginResize(id ID, p vec.Vec2) error {
	return s.begin(resizeGesture, id, p)
}

// UpdateResize changes the size of the object to follow the pointer.
// Width and height never drop below MinSize.
func (s *Store) UpdateResize(p vec.Vec2) {
	i := s.gestureIndex(resizeGesture)
	if i < 0 {
		return
	}
	s.objs[i].W = max(s.start.URx-s.start.LLx+p.X-s.grab.X, s.MinSize)
	s.objs[i].H = max(s.start.URy-s.start.LLy+p.Y-s.grab.Y, s.MinSize)
}

// EndResize finishes a resize. If the size changed, one change is
// committed and the result is true.
func (s *Store) EndResize() bool {
	return s.end(resizeGesture)
}

// CancelGesture aborts a drag or resize and puts the object back.
func (s *Store) CancelGesture() {
	i := s.gestureIndex(s.gesture)
	s.gesture = noGesture
	if i < 0 {
		return
	}
	o := &s.objs[i]
	o.X, o.Y = s.start.LLx, s.start.LLy
	o.W, o.H = s.start.URx-s.start.LLx, s.start.URy-s.start.LLy
}

// Committed returns a copy of the objects, with the object of a drag or
// resize in progress at its place before the gesture.
func (s *Store) Committed() []Object {
	objs := Clone(s.objs)
	if i := s.gestureIndex(s.gesture); i >= 0 {
		o := &objs[i]
		o.X, o.Y = s.start.LLx, s.start.LLy
		o.W, o.H = s.start.URx-s.start.LLx, s.start.URy-s.start.LLy
	}
	return objs
}

// Active reports whether a drag or resize is in progress.
func (s *Store) Active() bool {
	return s.gesture != noGesture
}

func (s *Store) begin(g gesture, id ID, p vec.Vec2) error {
	i := s.index(id)
	if i < 0 {
		return ErrUnknownObject
	}
	if s.gesture != noGesture {
		s.CancelGesture()
	}
	if id == s.editing {
		s.flushEdit()
	}
	if err := s.Select(id); err != nil {
		return err
	}

	o := &s.objs[i]
	s.gesture = g
	s.target = id
	s.start = o.Rect()
	if g == dragGesture {
		s.grab = vec.Vec2{X: p.X - o.X, Y: p.Y - o.Y}
	} else {
		s.grab = p
	}
	return nil
}

func (s *Store) end(g gesture) bool {
	i := s.gestureIndex(g)
	s.gesture = noGesture
	if i < 0 {
		return false
	}
	if s.objs[i].Rect() == s.start {
		return false
	}
	s.commit()
	return true
}

func (s *Store) gestureIndex(g gesture) int {
	if g == noGesture || s.gesture != g {
		return -1
	}
	return s.index(s.target)
}

// SetStyle changes the text style of object id and commits the change.
// A pending text edit is committed first.
func (s *Store) SetStyle(id ID, d StyleDelta) error {
	i := s.index(id)
	if i < 0 {
		return ErrUnknownObject
	}
	if !s.objs[i].HasText() {
		return ErrNotText
	}
	s.CommitEdit()

	st := d.apply(s.objs[i].Style, minFontSize)
	if st == s.objs[i].Style {
		return nil
	}
	s.objs[i].Style = st
	s.commit()
	return nil
}

// SetText replaces the content of a text object. The change is part of the
// local edit state and is committed when the edit focus ends.
func (s *Store) SetText(id ID, text string) error {
	i := s.index(id)
	if i < 0 {
		return ErrUnknownObject
	}
	if !s.objs[i].HasText() {
		return ErrNotText
	}
	if s.editing != id {
		s.CommitEdit()
		s.editing = id
	}
	if s.objs[i].Text != text {
		s.objs[i].Text = text
		s.editDirty = true
	}
	return nil
}

// CommitEdit ends the text edit focus. If the text was changed, the
// content is normalized, one change is committed and the result is true.
func (s *Store) CommitEdit() bool {
	changed := s.flushEdit()
	s.editing = 0
	return changed
}

// flushEdit commits pending changes of the edited text and keeps the
// edit focus.
func (s *Store) flushEdit() bool {
	dirty := s.editDirty
	s.editDirty = false

	i := s.index(s.editing)
	if i < 0 || !dirty {
		return false
	}
	s.objs[i].Text = norm.NFC.String(s.objs[i].Text)
	s.commit()
	return true
}

// Delete removes the object id and commits the change.
func (s *Store) Delete(id ID) error {
	i := s.index(id)
	if i < 0 {
		return ErrUnknownObject
	}
	s.CommitEdit()
	if s.gesture != noGesture && s.target == id {
		s.gesture = noGesture
	}
	s.objs = append(s.objs[:i], s.objs[i+1:]...)
	s.commit()
	return nil
}

// Restore replaces all objects by a copy of objs, for example when the
// edit history is rewound. Objects keep their IDs. Gestures and the edit
// focus are dropped and nothing is selected. IDs handed out later are
// larger than every ID seen so far.
func (s *Store) Restore(objs []Object) {
	s.objs = Clone(objs)
	s.gesture = noGesture
	s.editing = 0
	s.editDirty = false
	for i := range s.objs {
		s.objs[i].Selected = false
		s.nextID = max(s.nextID, s.objs[i].ID)
	}
}

// Reset removes all objects. The ID counter is kept.
func (s *Store) Reset() {
	s.Restore(nil)
}

func (s *Store) index(id ID) int {
	if id == 0 {
		return -1
	}
	for i := range s.objs {
		if s.objs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commit() {
	if s.OnCommit != nil {
		s.OnCommit()
	}
}

const (
	// DefaultFontSize is used for text objects created without a size.
	DefaultFontSize = 16

	minFontSize = 4
)
