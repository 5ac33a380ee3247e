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

// Package pdfout packages flattened page rasters as PDF documents.
package pdfout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"seehuhn.de/go/annotate"
)

var (
	// ErrNoPages is returned when a document without pages is saved.
	ErrNoPages = errors.New("pdfout: document has no pages")

	// ErrSinglePage is returned when a second page is added to a document.
	ErrSinglePage = errors.New("pdfout: only single-page documents are supported")

	// ErrSaved is returned when a document is used after Save.
	ErrSaved = errors.New("pdfout: document already saved")
)

// Writer creates PDF documents. The zero value writes PDF 1.7 files.
type Writer struct {
	Version pdf.Version
	Options *pdf.WriterOptions
}

// CreateDocument starts a new, empty document.
// This implements the [annotate.DocumentWriter] interface.
func (w *Writer) CreateDocument() (annotate.Document, error) {
	v := w.Version
	if v == 0 {
		v = pdf.V1_7
	}
	return &Document{version: v, opt: w.Options}, nil
}

// Document is a PDF document under construction.
type Document struct {
	version pdf.Version
	opt     *pdf.WriterOptions

	buf   bytes.Buffer
	page  *document.Page
	saved bool
}

// AddPage adds a page of the given size, in PDF points, which is filled
// by img.
func (d *Document) AddPage(img image.Image, width, height float64) error {
	switch {
	case d.saved:
		return ErrSaved
	case d.page != nil:
		return ErrSinglePage
	case !(width > 0 && height > 0):
		return fmt.Errorf("pdfout: invalid page size %g×%g", width, height)
	}

	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.WriteSinglePage(&d.buf, paper, d.version, d.opt)
	if err != nil {
		return fmt.Errorf("pdfout: %w", err)
	}

	page.PushGraphicsState()
	page.Transform(matrix.Scale(width, height))
	page.DrawXObject(&pdfimage.PNG{Data: img})
	page.PopGraphicsState()
	if page.Err != nil {
		return fmt.Errorf("pdfout: drawing page: %w", page.Err)
	}

	d.page = page
	return nil
}

// Save finishes the document and returns the PDF file.
func (d *Document) Save(ctx context.Context) ([]byte, error) {
	if d.saved {
		return nil, ErrSaved
	}
	if d.page == nil {
		return nil, ErrNoPages
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.saved = true
	if err := d.page.Close(); err != nil {
		return nil, fmt.Errorf("pdfout: %w", err)
	}
	return d.buf.Bytes(), nil
}
