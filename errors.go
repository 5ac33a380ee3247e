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
	"errors"
	"fmt"

	"seehuhn.de/go/annotate/history"
	"seehuhn.de/go/annotate/overlay"
)

var (
	// ErrNoPage is returned by operations which need a page, before a
	// page has been loaded.
	ErrNoPage = errors.New("annotate: no page loaded")

	// ErrNoSelection is returned by operations on the selected object when
	// nothing is selected. Nothing is changed in this case.
	ErrNoSelection = errors.New("annotate: no object selected")

	// ErrUnsupportedInput is returned when an image or overlay payload
	// cannot be used. Nothing is changed in this case.
	ErrUnsupportedInput = overlay.ErrUnsupportedInput

	// ErrDisposed is returned by all operations after Dispose.
	ErrDisposed = errors.New("annotate: session disposed")

	errEmptyPage = errors.New("empty page raster")
)

// LoadError reports that a page could not be loaded.
// The session is unchanged.
type LoadError struct {
	Page int
	Err  error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("annotate: cannot load page %d: %v", err.Page, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

// RestoreError reports that an undo or redo could not be completed.
// The visible state is unchanged and the history cursor is back at the
// visible snapshot.
type RestoreError struct {
	Generation history.Generation
	Err        error
}

func (err *RestoreError) Error() string {
	return fmt.Sprintf("annotate: restore %d failed: %v", err.Generation, err.Err)
}

func (err *RestoreError) Unwrap() error {
	return err.Err
}
