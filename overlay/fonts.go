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
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Faces caches font faces for drawing text objects.
//
// All methods are safe for concurrent use.
type Faces struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

type fontKey struct {
	family Family
	bold   bool
	italic bool
}

type faceKey struct {
	fontKey
	size float64
}

// NewFaces returns an empty face cache.
func NewFaces() *Faces {
	return &Faces{
		fonts: make(map[fontKey]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face returns a face for st, with the font size multiplied by scale.
// Sizes are rounded to 1/64 pixel so that nearby zoom levels share faces.
func (f *Faces) Face(st TextStyle, scale float64) (font.Face, error) {
	size := math.Round(st.Size*scale*64) / 64
	if !(size > 0) {
		return nil, fmt.Errorf("overlay: invalid font size %g", st.Size*scale)
	}
	fk := fontKey{family: st.Family, bold: st.Bold, italic: st.Italic}
	key := faceKey{fontKey: fk, size: size}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face, nil
	}

	otf, ok := f.fonts[fk]
	if !ok {
		var err error
		otf, err = opentype.Parse(fontData(fk))
		if err != nil {
			return nil, fmt.Errorf("overlay: parsing font: %w", err)
		}
		f.fonts[fk] = otf
	}

	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("overlay: creating face: %w", err)
	}
	f.faces[key] = face
	return face, nil
}

// Close releases all cached faces.
func (f *Faces) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, face := range f.faces {
		face.Close()
		delete(f.faces, key)
	}
	return nil
}

func fontData(k fontKey) []byte {
	if k.family == Mono {
		switch {
		case k.bold && k.italic:
			return gomonobolditalic.TTF
		case k.bold:
			return gomonobold.TTF
		case k.italic:
			return gomonoitalic.TTF
		default:
			return gomono.TTF
		}
	}
	switch {
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
