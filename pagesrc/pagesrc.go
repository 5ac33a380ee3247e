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

// Package pagesrc renders pages from raster images, like scans or
// screenshots.
//
// Each image is one page. At scale 1, one image pixel is one PDF point;
// other scales resample the image.
package pagesrc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	// supported page formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"
)

// ErrPageRange is returned for a page index outside the document.
var ErrPageRange = errors.New("pagesrc: page index out of range")

// RenderError reports that a page could not be rendered.
type RenderError struct {
	Page int
	Err  error
}

func (err *RenderError) Error() string {
	return fmt.Sprintf("pagesrc: cannot render page %d: %v", err.Page, err.Err)
}

func (err *RenderError) Unwrap() error {
	return err.Err
}

// Source is a document made of raster pages.
type Source struct {
	pages []image.Image
}

// New returns a source with the given pages.
func New(pages ...image.Image) *Source {
	return &Source{pages: pages}
}

// Decode reads one page image from r and appends it to the source.
func (s *Source) Decode(r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return &RenderError{Page: len(s.pages), Err: err}
	}
	s.pages = append(s.pages, img)
	return nil
}

// Open reads the page images from the named files.
func Open(names ...string) (*Source, error) {
	s := &Source{}
	for _, name := range names {
		if err := s.decodeFile(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Source) decodeFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return &RenderError{Page: len(s.pages), Err: err}
	}
	defer f.Close()
	return s.Decode(f)
}

// NumPages returns the number of pages.
func (s *Source) NumPages() int {
	return len(s.pages)
}

// Render returns page pageIndex resampled by scale.
// Failures are reported as *RenderError.
func (s *Source) Render(ctx context.Context, pageIndex int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RenderError{Page: pageIndex, Err: err}
	}
	if pageIndex < 0 || pageIndex >= len(s.pages) {
		return nil, &RenderError{Page: pageIndex, Err: ErrPageRange}
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, &RenderError{Page: pageIndex, Err: fmt.Errorf("invalid scale %g", scale)}
	}

	src := s.pages[pageIndex]
	sb := src.Bounds()
	w := int(math.Round(float64(sb.Dx()) * scale))
	h := int(math.Round(float64(sb.Dy()) * scale))
	if w <= 0 || h <= 0 {
		return nil, &RenderError{Page: pageIndex, Err: fmt.Errorf("empty page at scale %g", scale)}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == sb.Dx() && h == sb.Dy() {
		xdraw.Copy(dst, image.Point{}, src, sb, xdraw.Src, nil)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Rect, src, sb, xdraw.Src, nil)
	}
	return dst, nil
}
