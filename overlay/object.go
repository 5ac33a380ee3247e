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

// Package overlay implements the annotation objects placed above the
// stroke raster: text boxes, images and signatures.
//
// Objects are plain data records. Everything interactive, like hit regions
// and resize handles, is derived from the records on demand by stateless
// functions, so that restoring an older list of records never leaves stale
// behaviour behind.
package overlay

import (
	"errors"
	"image"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// ID identifies an overlay object for the lifetime of an editing session.
// The zero ID never refers to an object.
type ID uint64

// Kind is the type of an overlay object.
type Kind int

// These are the supported object kinds.
const (
	Text Kind = iota + 1
	Image
	Signature
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Image:
		return "image"
	case Signature:
		return "signature"
	default:
		return "unknown"
	}
}

// Family selects a typeface.
type Family int

// These are the available typefaces.
const (
	Sans Family = iota
	Mono
)

// TextStyle describes how the text of an object is drawn.
type TextStyle struct {
	Size   float64 // font size in document pixels
	Bold   bool
	Italic bool
	Family Family
	Color  color.NRGBA
}

// Object is an overlay object. Positions and sizes are in document space.
// The order of objects in a list is their z-order, last on top.
type Object struct {
	ID       ID
	Kind     Kind
	X, Y     float64
	W, H     float64
	Selected bool

	// Text and Style hold the content of text objects and typed signatures.
	Text  string
	Style TextStyle

	// Bitmap holds the pixels of image objects and drawn signatures.
	// Bitmaps are never modified and can be shared between copies.
	Bitmap image.Image
}

// Rect returns the bounding box of the object.
func (o *Object) Rect() rect.Rect {
	return rect.Rect{LLx: o.X, LLy: o.Y, URx: o.X + o.W, URy: o.Y + o.H}
}

// HasText reports whether the object is drawn as text.
func (o *Object) HasText() bool {
	return o.Kind == Text || (o.Kind == Signature && o.Bitmap == nil)
}

// Payload holds the kind-specific content of a new object.
type Payload struct {
	Text   string
	Style  TextStyle
	Bitmap image.Image

	// W and H give the initial size. If zero, a default size is derived
	// from the content.
	W, H float64
}

// Size returns the size of an object created from p.
func (p *Payload) Size() (w, h float64) {
	if p.W > 0 && p.H > 0 {
		return p.W, p.H
	}
	if p.Bitmap != nil {
		b := p.Bitmap.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	size := p.Style.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	return 12 * size, 1.5 * size
}

// StyleDelta describes a change to the text style of an object.
type StyleDelta struct {
	Size         float64 // new font size, if positive
	Grow         float64 // added to the font size
	ToggleBold   bool
	ToggleItalic bool
	Color        *color.NRGBA
	Family       *Family
}

func (d StyleDelta) apply(st TextStyle, minSize float64) TextStyle {
	if d.Size > 0 {
		st.Size = d.Size
	}
	st.Size = max(st.Size+d.Grow, minSize)
	if d.ToggleBold {
		st.Bold = !st.Bold
	}
	if d.ToggleItalic {
		st.Italic = !st.Italic
	}
	if d.Color != nil {
		st.Color = *d.Color
	}
	if d.Family != nil {
		st.Family = *d.Family
	}
	return st
}

// Clone returns a deep copy of the object list. Bitmaps are shared.
func Clone(objs []Object) []Object {
	return slices.Clone(objs)
}

var (
	// ErrUnsupportedInput is returned when the payload of a new object
	// cannot be used for its kind.
	ErrUnsupportedInput = errors.New("overlay: unsupported input")

	// ErrUnknownObject is returned for operations on an ID which is not in
	// the store.
	ErrUnknownObject = errors.New("overlay: unknown object")

	// ErrNotText is returned when a text operation is applied to an object
	// without text.
	ErrNotText = errors.New("overlay: object has no text")
)
