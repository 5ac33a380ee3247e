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

	"seehuhn.de/go/annotate/history"
)

// restoreResult is the outcome of a background snapshot decode.
type restoreResult struct {
	gen  history.Generation
	snap *history.Snapshot
	img  *image.NRGBA
	err  error
}

// Undo reverts the most recent edit. The result is false if there is
// nothing to undo.
//
// The stroke raster of the target snapshot is decoded in the background.
// Until the decode completes, the session keeps showing the previous state.
// If Undo or Redo is called again before that, only the newest request
// takes effect.
func (s *Session) Undo() bool {
	if s.ready() != nil {
		return false
	}
	s.drain()
	s.finishGesture()
	s.objs.CommitEdit()

	snap, gen, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.startRestore(snap, gen)
	return true
}

// Redo reapplies the most recently undone edit. The result is false if
// there is nothing to redo.
func (s *Session) Redo() bool {
	if s.ready() != nil {
		return false
	}
	s.drain()
	s.finishGesture()
	s.objs.CommitEdit()

	snap, gen, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.startRestore(snap, gen)
	return true
}

// Sync waits until all undo and redo requests have been applied or
// discarded.
func (s *Session) Sync(ctx context.Context) error {
	for len(s.restores) > 0 {
		select {
		case r := <-s.restores[0]:
			s.restores = s.restores[1:]
			s.applyRestore(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// startRestore decodes the snapshot in the background. Every request has
// its own buffered channel, so that the decoder never blocks on a session
// which is no longer used.
func (s *Session) startRestore(snap *history.Snapshot, gen history.Generation) {
	bounds := s.draw.Bounds()
	ch := make(chan restoreResult, 1)
	s.restores = append(s.restores, ch)
	go func() {
		img, err := history.DecodeRaster(snap.Raster, bounds)
		ch <- restoreResult{gen: gen, snap: snap, img: img, err: err}
	}()
}

// drain applies the restores which have completed, without waiting.
func (s *Session) drain() {
	pending := s.restores[:0]
	for _, ch := range s.restores {
		select {
		case r := <-ch:
			s.applyRestore(r)
		default:
			pending = append(pending, ch)
		}
	}
	clear(s.restores[len(pending):])
	s.restores = pending
}

// settle waits for all restores. This is called before every mutation,
// so that edits always build on the state the history cursor points to.
func (s *Session) settle() {
	for _, ch := range s.restores {
		s.applyRestore(<-ch)
	}
	s.restores = nil
}

func (s *Session) applyRestore(r restoreResult) {
	if r.err != nil {
		if s.hist.Failed(r.gen) {
			s.report(&RestoreError{Generation: r.gen, Err: r.err})
		}
		return
	}
	if !s.hist.Installed(r.gen) {
		return
	}
	s.pointer = pointerIdle
	s.draw.Restore(r.img)
	s.objs.Restore(r.snap.Objects)
}
