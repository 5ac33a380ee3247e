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

package history

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/annotate/overlay"
)

func snap(tag byte) *Snapshot {
	return &Snapshot{Raster: []byte{tag}}
}

// tags returns the tags of all snapshots.
func tags(m *Manager) []byte {
	var res []byte
	for i := range m.Len() {
		res = append(res, m.At(i).Raster[0])
	}
	return res
}

func TestUndoRedo(t *testing.T) {
	m := &Manager{}
	m.Reset(snap('0'))
	m.Commit(snap('a'))
	m.Commit(snap('b'))

	s, gen, ok := m.Undo()
	if !ok || s.Raster[0] != 'a' {
		t.Fatalf("undo returned %v, %v", s, ok)
	}
	if !m.Installed(gen) {
		t.Fatal("current generation not installed")
	}

	s, gen, ok = m.Redo()
	if !ok || s.Raster[0] != 'b' {
		t.Fatalf("redo returned %v, %v", s, ok)
	}
	m.Installed(gen)

	if _, _, ok := m.Redo(); ok {
		t.Error("redo past the newest snapshot")
	}
	for range 2 {
		_, gen, _ := m.Undo()
		m.Installed(gen)
	}
	if _, _, ok := m.Undo(); ok {
		t.Error("undo past the initial snapshot")
	}
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}
}

func TestCommitDiscardsRedo(t *testing.T) {
	m := &Manager{}
	m.Reset(snap('0'))
	m.Commit(snap('a'))
	m.Commit(snap('b'))
	_, gen, _ := m.Undo()
	m.Installed(gen)

	m.Commit(snap('c'))
	if diff := cmp.Diff([]byte("0ac"), tags(m)); diff != "" {
		t.Errorf("snapshots (-want +got):\n%s", diff)
	}
	if m.CanRedo() {
		t.Error("redo available after a new commit")
	}
}

func TestStaleGeneration(t *testing.T) {
	m := &Manager{}
	m.Reset(snap('0'))
	m.Commit(snap('a'))
	m.Commit(snap('b'))

	_, g1, _ := m.Undo()
	_, g2, _ := m.Undo()
	if g2 <= g1 {
		t.Fatalf("generations not increasing: %d, %d", g1, g2)
	}
	if m.Installed(g1) {
		t.Error("stale generation installed")
	}
	if !m.Installed(g2) {
		t.Error("newest generation rejected")
	}
	if m.InstalledPosition() != 0 {
		t.Errorf("installed position = %d, want 0", m.InstalledPosition())
	}
}

func TestCommitSupersedesRestore(t *testing.T) {
	m := &Manager{}
	m.Reset(snap('0'))
	m.Commit(snap('a'))
	_, gen, _ := m.Undo()

	m.Commit(snap('b'))
	if m.Installed(gen) {
		t.Error("restore installed after a commit")
	}
	if diff := cmp.Diff([]byte("0ab"), tags(m)); diff != "" {
		t.Errorf("snapshots (-want +got):\n%s", diff)
	}
}

func TestFailedRestore(t *testing.T) {
	m := &Manager{}
	m.Reset(snap('0'))
	m.Commit(snap('a'))
	_, gen, _ := m.Undo()

	if !m.Failed(gen) {
		t.Fatal("failure of the newest generation not reported")
	}
	if m.Cursor() != 1 || m.Pending() {
		t.Errorf("cursor = %d, pending = %t after failure", m.Cursor(), m.Pending())
	}
	if m.Failed(gen) {
		t.Error("failure reported twice")
	}
}

func TestLimit(t *testing.T) {
	m := &Manager{Limit: 3}
	m.Reset(snap('0'))
	for _, c := range []byte("abcd") {
		m.Commit(snap(c))
	}
	if diff := cmp.Diff([]byte("bcd"), tags(m)); diff != "" {
		t.Errorf("snapshots (-want +got):\n%s", diff)
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}
}

func TestRasterRoundTrip(t *testing.T) {
	b := image.Rect(0, 0, 7, 5)
	layers := map[string]*image.NRGBA{
		"blank":  image.NewNRGBA(b),
		"opaque": image.NewNRGBA(b),
		"mixed":  image.NewNRGBA(b),
	}
	for y := range 5 {
		for x := range 7 {
			layers["opaque"].SetNRGBA(x, y, color.NRGBA{uint8(30 * x), uint8(40 * y), 9, 255})
		}
	}
	layers["mixed"].SetNRGBA(1, 1, color.NRGBA{255, 255, 0, 102})
	layers["mixed"].SetNRGBA(2, 3, color.NRGBA{0, 0, 0, 1})

	for name, layer := range layers {
		t.Run(name, func(t *testing.T) {
			data, err := EncodeRaster(layer)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DecodeRaster(data, b)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got.Pix, layer.Pix) {
				t.Error("raster changed in round trip")
			}
		})
	}
}

func TestDecodeRasterErrors(t *testing.T) {
	if _, err := DecodeRaster([]byte("garbage"), image.Rect(0, 0, 1, 1)); err == nil {
		t.Error("garbage decoded")
	}

	data, _ := EncodeRaster(image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	if _, err := DecodeRaster(data, image.Rect(0, 0, 5, 4)); !errors.Is(err, ErrRasterSize) {
		t.Errorf("got %v, want ErrRasterSize", err)
	}
}

func TestCaptureCopiesObjects(t *testing.T) {
	objs := []overlay.Object{{ID: 1, Kind: overlay.Text, Text: "a"}}
	s, err := Capture(image.NewNRGBA(image.Rect(0, 0, 2, 2)), objs)
	if err != nil {
		t.Fatal(err)
	}
	objs[0].Text = "changed"
	if s.Objects[0].Text != "a" {
		t.Error("snapshot shares the object list")
	}
}
