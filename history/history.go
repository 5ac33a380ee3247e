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

// Package history records the edit history of a page as a linear list of
// immutable snapshots with a cursor.
//
// Restoring a snapshot involves decoding its raster, which the caller may do
// in the background. Every move of the cursor starts a new restore
// generation, and a decoded result may only be installed while its
// generation is still the newest one.
package history

import (
	"seehuhn.de/go/annotate/overlay"
)

// Snapshot is the complete editable state of a page after one committed
// change. Snapshots are never modified after they have been created.
type Snapshot struct {
	// Raster is the PNG encoding of the stroke raster.
	Raster []byte

	// Objects is a copy of the overlay objects, in z-order.
	Objects []overlay.Object
}

// Generation identifies a restore request. Generations increase
// monotonically over the lifetime of a Manager.
type Generation uint64

// Manager keeps the snapshot list and the cursor.
//
// Two positions are tracked: the cursor, which undo and redo move
// immediately, and the installed position, which is the snapshot whose
// content is currently visible. They differ while a restore is in flight.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	// Limit, if positive, is the maximal number of snapshots kept.
	// The oldest snapshots are dropped first.
	Limit int

	snaps     []*Snapshot
	cursor    int
	installed int
	gen       Generation
	pending   bool
}

// Reset discards all snapshots and records initial as the only one.
func (m *Manager) Reset(initial *Snapshot) {
	clear(m.snaps)
	m.snaps = append(m.snaps[:0], initial)
	m.cursor = 0
	m.installed = 0
	m.gen++
	m.pending = false
}

// Commit records s as the state after a new change. Snapshots after the
// installed position are discarded, so that redo becomes unavailable.
// Any restore in flight is superseded.
func (m *Manager) Commit(s *Snapshot) Generation {
	keep := min(m.installed+1, len(m.snaps))
	clear(m.snaps[keep:])
	m.snaps = append(m.snaps[:keep], s)

	if m.Limit > 0 && len(m.snaps) > m.Limit {
		drop := len(m.snaps) - m.Limit
		copy(m.snaps, m.snaps[drop:])
		clear(m.snaps[len(m.snaps)-drop:])
		m.snaps = m.snaps[:len(m.snaps)-drop]
	}

	m.cursor = len(m.snaps) - 1
	m.installed = m.cursor
	m.gen++
	m.pending = false
	return m.gen
}

// Undo moves the cursor back by one. It returns the snapshot to restore
// and the generation of the restore. At the oldest snapshot, Undo does
// nothing and ok is false.
func (m *Manager) Undo() (s *Snapshot, gen Generation, ok bool) {
	if m.cursor <= 0 {
		return nil, m.gen, false
	}
	return m.seek(m.cursor - 1), m.gen, true
}

// Redo moves the cursor forward by one. At the newest snapshot, Redo does
// nothing and ok is false.
func (m *Manager) Redo() (s *Snapshot, gen Generation, ok bool) {
	if m.cursor >= len(m.snaps)-1 {
		return nil, m.gen, false
	}
	return m.seek(m.cursor + 1), m.gen, true
}

func (m *Manager) seek(pos int) *Snapshot {
	m.cursor = pos
	m.gen++
	m.pending = true
	return m.snaps[pos]
}

// Installed reports that the restore of generation gen has completed.
// If gen is still the newest generation, the cursor position becomes the
// installed position and the result is true. Otherwise the restored state
// is stale and the caller must discard it.
func (m *Manager) Installed(gen Generation) bool {
	if gen != m.gen || !m.pending {
		return false
	}
	m.installed = m.cursor
	m.pending = false
	return true
}

// Failed reports that the restore of generation gen could not be
// completed. If gen is still the newest generation, the cursor returns to
// the installed position and the result is true. Failures of superseded
// restores are ignored.
func (m *Manager) Failed(gen Generation) bool {
	if gen != m.gen || !m.pending {
		return false
	}
	m.cursor = m.installed
	m.gen++
	m.pending = false
	return true
}

// Generation returns the newest generation.
func (m *Manager) Generation() Generation {
	return m.gen
}

// Pending reports whether a restore is in flight.
func (m *Manager) Pending() bool {
	return m.pending
}

// Cursor returns the cursor position.
func (m *Manager) Cursor() int {
	return m.cursor
}

// InstalledPosition returns the position of the visible snapshot.
func (m *Manager) InstalledPosition() int {
	return m.installed
}

// Len returns the number of snapshots.
func (m *Manager) Len() int {
	return len(m.snaps)
}

// At returns the snapshot at position i.
func (m *Manager) At(i int) *Snapshot {
	return m.snaps[i]
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.snaps)-1
}
