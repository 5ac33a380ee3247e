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
	"image"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate/history"
	"seehuhn.de/go/annotate/overlay"
	"seehuhn.de/go/annotate/surface"
	"seehuhn.de/go/annotate/viewport"
)

// Session is the editing state of one document page.
//
// All methods must be called from a single goroutine. Raster decoding for
// undo and redo runs in the background; the results are picked up by the
// next method call, or by [Session.Sync].
type Session struct {
	opt    Options
	faces  *overlay.Faces
	limits viewport.Limits

	// page context
	page      image.Image
	pageIndex int
	mapper    viewport.Mapper

	draw *surface.Controller
	objs *overlay.Store
	hist *history.Manager

	tool    Tool
	params  ToolParams
	pointer pointerState

	restores []chan restoreResult

	disposed bool
}

type pointerState int

const (
	pointerIdle pointerState = iota
	pointerDrawing
	pointerDragging
	pointerResizing
)

// New creates a session without a page. Use [Session.LoadPage] or
// [Session.LoadRaster] to start editing.
func New(opt *Options) *Session {
	o := opt.withDefaults()
	s := &Session{
		opt:    o,
		faces:  overlay.NewFaces(),
		limits: viewport.Limits{Min: o.MinZoom, Max: o.MaxZoom},
		objs:   overlay.NewStore(o.MinObjectSize),
		hist:   &history.Manager{Limit: o.HistoryLimit},
		tool:   ToolPen,
		params: ToolParams{Size: o.BrushSize, Color: o.BrushColor},
	}
	s.objs.OnCommit = s.recordSnapshot
	s.mapper = viewport.New(viewport.Surface{}, s.limits.Clamp(1))
	return s
}

// Dispose waits for background work and releases all resources.
// The session cannot be used afterwards.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.settle()
	s.faces.Close()
	s.disposed = true
	s.page = nil
	s.draw = nil
	s.objs.Reset()
	s.hist = &history.Manager{}
}

// LoadPage renders page pageIndex and starts a new editing session on it.
// All previous edits and the history are discarded.
//
// If the page cannot be rendered, a *LoadError is returned and the session
// is unchanged.
func (s *Session) LoadPage(ctx context.Context, r PageRenderer, pageIndex int) error {
	if s.disposed {
		return ErrDisposed
	}
	img, err := r.Render(ctx, pageIndex, s.opt.RenderScale)
	if err != nil {
		s.opt.Logger.Printf("page %d: %v", pageIndex, err)
		return &LoadError{Page: pageIndex, Err: err}
	}
	return s.LoadRaster(img, pageIndex)
}

// LoadRaster starts a new editing session on a page which has already
// been rendered at [Options.RenderScale].
func (s *Session) LoadRaster(img image.Image, pageIndex int) error {
	if s.disposed {
		return ErrDisposed
	}
	if img == nil || img.Bounds().Empty() {
		return &LoadError{Page: pageIndex, Err: errEmptyPage}
	}
	size := img.Bounds().Size()

	draw := surface.New(size.X, size.Y)
	initial, err := history.Capture(draw.Layer(), nil)
	if err != nil {
		return &LoadError{Page: pageIndex, Err: err}
	}

	// Outdated restores must not reach the new page.
	s.settle()

	draw.OnCommit = func(surface.Stroke) { s.recordSnapshot() }
	s.page = img
	s.pageIndex = pageIndex
	s.draw = draw
	s.pointer = pointerIdle
	s.objs.Reset()
	s.hist.Reset(initial)
	s.applyTool()

	s.mapper = s.mapper.WithSurface(resizeSurface(s.mapper.Surface(), size))

	s.opt.Logger.Printf("page %d loaded, %dx%d pixels", pageIndex, size.X, size.Y)
	return nil
}

// resizeSurface returns a surface for a page of the given size, keeping
// the origin and the pixel ratio of sf.
func resizeSurface(sf viewport.Surface, size image.Point) viewport.Surface {
	ratio := vec.Vec2{X: 1, Y: 1}
	if sf.Valid() {
		ratio = sf.PixelRatio()
	}
	return viewport.Surface{
		Origin:    sf.Origin,
		Displayed: vec.Vec2{X: float64(size.X) / ratio.X, Y: float64(size.Y) / ratio.Y},
		Intrinsic: vec.Vec2{X: float64(size.X), Y: float64(size.Y)},
	}
}

// PageIndex returns the index of the loaded page.
func (s *Session) PageIndex() int {
	return s.pageIndex
}

// DocumentSize returns the size of the page in document pixels.
// The size is zero before a page has been loaded.
func (s *Session) DocumentSize() image.Point {
	if s.page == nil {
		return image.Point{}
	}
	return s.page.Bounds().Size()
}

// Objects returns a copy of the overlay objects, bottom to top.
func (s *Session) Objects() []overlay.Object {
	s.drain()
	return s.objs.Objects()
}

// Selected returns the selected overlay object, or 0.
func (s *Session) Selected() overlay.ID {
	s.drain()
	return s.objs.Selected()
}

// StrokeLayer returns a copy of the stroke raster.
func (s *Session) StrokeLayer() *image.NRGBA {
	s.drain()
	if s.draw == nil {
		return nil
	}
	layer := s.draw.Layer()
	res := image.NewNRGBA(layer.Rect)
	copy(res.Pix, layer.Pix)
	return res
}

// Zoom returns the current view zoom.
func (s *Session) Zoom() float64 {
	return s.mapper.Zoom()
}

// Mapper returns the current mapping between viewport and document
// coordinates.
func (s *Session) Mapper() viewport.Mapper {
	return s.mapper
}

// CanUndo reports whether there is an edit to undo.
func (s *Session) CanUndo() bool {
	s.drain()
	return s.page != nil && s.hist.CanUndo()
}

// CanRedo reports whether there is an undone edit to redo.
func (s *Session) CanRedo() bool {
	s.drain()
	return s.page != nil && s.hist.CanRedo()
}

// Cursor returns the position of the history cursor and the number of
// snapshots.
func (s *Session) Cursor() (pos, length int) {
	s.drain()
	return s.hist.Cursor(), s.hist.Len()
}

// recordSnapshot is called after every committed mutation.
func (s *Session) recordSnapshot() {
	snap, err := history.Capture(s.draw.Committed(), s.objs.Committed())
	if err != nil {
		s.report(err)
		return
	}
	s.hist.Commit(snap)
}

func (s *Session) report(err error) {
	s.opt.Logger.Print(err)
	if s.opt.OnError != nil {
		s.opt.OnError(err)
	}
}
