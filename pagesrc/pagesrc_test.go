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

package pagesrc

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestRenderScale(t *testing.T) {
	s := New(image.NewGray(image.Rect(0, 0, 100, 60)))
	for _, c := range []struct {
		scale float64
		want  image.Rectangle
	}{
		{1, image.Rect(0, 0, 100, 60)},
		{1.5, image.Rect(0, 0, 150, 90)},
		{0.5, image.Rect(0, 0, 50, 30)},
	} {
		img, err := s.Render(context.Background(), 0, c.scale)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds() != c.want {
			t.Errorf("scale %g: bounds %v, want %v", c.scale, img.Bounds(), c.want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	s := New(image.NewGray(image.Rect(0, 0, 10, 10)))

	_, err := s.Render(context.Background(), 3, 1)
	var rerr *RenderError
	if !errors.As(err, &rerr) || rerr.Page != 3 || !errors.Is(err, ErrPageRange) {
		t.Errorf("out of range: got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Render(ctx, 0, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: got %v", err)
	}

	if _, err := s.Render(context.Background(), 0, 0); !errors.As(err, &rerr) {
		t.Errorf("zero scale: got %v", err)
	}
}

func TestDecode(t *testing.T) {
	s := &Source{}

	var buf bytes.Buffer
	png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 3)))
	if err := s.Decode(&buf); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 5, 5)))
	if err := s.Decode(&buf); err != nil {
		t.Fatal(err)
	}
	if s.NumPages() != 2 {
		t.Fatalf("%d pages, want 2", s.NumPages())
	}

	err := s.Decode(strings.NewReader("not an image"))
	var rerr *RenderError
	if !errors.As(err, &rerr) || rerr.Page != 2 {
		t.Errorf("malformed page: got %v", err)
	}
	if s.NumPages() != 2 {
		t.Error("malformed page was added")
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Errorf("got %v, want *RenderError", err)
	}
}
