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
	"fmt"
	"image"

	"seehuhn.de/go/annotate/compose"
)

// ExportFlattened merges the page, the strokes and all overlay objects into
// a new image of the size of the page. The view zoom has no influence on
// the result.
//
// A pending text edit is committed first. A stroke, drag or resize in
// progress is left running and is not part of the result.
func (s *Session) ExportFlattened() (*image.RGBA, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.settle()
	s.objs.CommitEdit()

	return compose.Flatten(&compose.Layers{
		Page:    s.page,
		Strokes: s.draw.Committed(),
		Objects: s.objs.Committed(),
	}, s.faces)
}

// ExportAsDocument flattens the page and packages it as a one-page
// document. The page keeps the geometry of the original document page.
func (s *Session) ExportAsDocument(ctx context.Context, w DocumentWriter) ([]byte, error) {
	img, err := s.ExportFlattened()
	if err != nil {
		return nil, err
	}

	doc, err := w.CreateDocument()
	if err != nil {
		return nil, fmt.Errorf("annotate: creating document: %w", err)
	}
	width := float64(img.Rect.Dx()) / s.opt.RenderScale
	height := float64(img.Rect.Dy()) / s.opt.RenderScale
	if err := doc.AddPage(img, width, height); err != nil {
		return nil, fmt.Errorf("annotate: adding page: %w", err)
	}
	data, err := doc.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("annotate: saving document: %w", err)
	}

	s.opt.Logger.Printf("page %d exported, %d bytes", s.pageIndex, len(data))
	return data, nil
}

func (s *Session) layers() *compose.Layers {
	return &compose.Layers{
		Page:    s.page,
		Strokes: s.draw.Layer(),
		Objects: s.objs.View(),
	}
}
