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

// Package annotate implements the core of an interactive page annotation
// editor.
//
// A [Session] holds one rendered document page together with three layers
// of edits: a stroke raster for freehand drawing, highlighting and erasing,
// a list of overlay objects (text, images and signatures), and the edit
// history. All coordinates of stored edits are in document space, the pixel
// grid of the page as rendered at [Options.RenderScale]. The view zoom only
// affects presentation.
//
// Pointer input arrives in viewport coordinates and is mapped to document
// space by a [viewport.Mapper]. The result of an editing session is
// obtained with [Session.ExportFlattened] or [Session.ExportAsDocument].
package annotate

//go:generate go run ./testcases/export

import (
	"context"
	"image"
	"image/color"
	"io"
	"log"
)

// PageRenderer decodes and rasterizes the pages of a document.
type PageRenderer interface {
	// Render returns page pageIndex, with one PDF point mapped to scale
	// pixels.
	Render(ctx context.Context, pageIndex int, scale float64) (image.Image, error)
}

// DocumentWriter packages page rasters as an output document.
type DocumentWriter interface {
	CreateDocument() (Document, error)
}

// Document is an output document under construction.
type Document interface {
	// AddPage adds a page with the given size in PDF points, showing img.
	AddPage(img image.Image, width, height float64) error

	// Save finishes the document and returns its encoded form.
	Save(ctx context.Context) ([]byte, error)
}

// Options control the behaviour of a [Session].
// Zero fields are replaced by their defaults.
type Options struct {
	// RenderScale is the number of document pixels per PDF point.
	RenderScale float64

	// MinZoom and MaxZoom bound the view zoom.
	MinZoom, MaxZoom float64

	// BrushSize is the default pen width, in document pixels.
	BrushSize float64

	// BrushColor is the default pen color.
	BrushColor color.Color

	// FontSize is the default size of new text objects.
	FontSize float64

	// MinObjectSize is the smallest width and height of overlay objects.
	MinObjectSize float64

	// HistoryLimit, if positive, bounds the number of history snapshots.
	HistoryLimit int

	// HandleSize is the side length of the resize handle, in viewport
	// pixels.
	HandleSize float64

	// Logger receives a line for page loads, exports and restore
	// failures. If nil, nothing is logged.
	Logger *log.Logger

	// OnError, if set, is called for errors which happen in the
	// background, like a failed history restore.
	OnError func(error)
}

func (opt *Options) withDefaults() Options {
	var res Options
	if opt != nil {
		res = *opt
	}
	setDefault(&res.RenderScale, 1.5)
	setDefault(&res.MinZoom, 0.4)
	setDefault(&res.MaxZoom, 4)
	setDefault(&res.BrushSize, 4)
	setDefault(&res.FontSize, 16)
	setDefault(&res.MinObjectSize, 10)
	setDefault(&res.HandleSize, 8)
	if res.MaxZoom < res.MinZoom {
		res.MaxZoom = res.MinZoom
	}
	if res.BrushColor == nil {
		res.BrushColor = color.Black
	}
	if res.Logger == nil {
		res.Logger = log.New(io.Discard, "", 0)
	}
	return res
}

func setDefault(x *float64, def float64) {
	if !(*x > 0) {
		*x = def
	}
}
