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

package overlay

import (
	"image"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Draw paints o into dst. Document coordinates are multiplied by scale,
// so that scale 1 draws at document resolution.
//
// Text is word-wrapped to the width of the object and clipped to its box.
// Bitmaps are scaled to fill the box.
func Draw(dst xdraw.Image, o *Object, faces *Faces, scale float64) error {
	box := PixelRect(o, scale)
	if box.Empty() {
		return nil
	}
	if o.HasText() {
		return drawText(dst, o, box, faces, scale)
	}
	if o.Bitmap != nil {
		xdraw.CatmullRom.Scale(dst, box, o.Bitmap, o.Bitmap.Bounds(), xdraw.Over, nil)
	}
	return nil
}

// PixelRect returns the box of o in the pixel grid of an image drawn at
// the given scale.
func PixelRect(o *Object, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(o.X*scale)),
		int(math.Round(o.Y*scale)),
		int(math.Round((o.X+o.W)*scale)),
		int(math.Round((o.Y+o.H)*scale)),
	)
}

func drawText(dst xdraw.Image, o *Object, box image.Rectangle, faces *Faces, scale float64) error {
	if o.Text == "" {
		return nil
	}
	face, err := faces.Face(o.Style, scale)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  clip(dst, box),
		Src:  image.NewUniform(o.Style.Color),
		Face: face,
	}
	m := face.Metrics()
	bottom := fixed.I(box.Max.Y)
	y := fixed.I(box.Min.Y) + m.Ascent
	for _, line := range wrapText(face, o.Text, box.Dx()) {
		if y-m.Ascent >= bottom {
			break
		}
		d.Dot = fixed.Point26_6{X: fixed.I(box.Min.X), Y: y}
		d.DrawString(line)
		y += m.Height
	}
	return nil
}

// wrapText breaks text into lines no wider than width pixels. Explicit
// line breaks are kept. A single word which is too long gets a line of its
// own.
func wrapText(face font.Face, text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate).Ceil() <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// clip restricts drawing to r, if dst supports sub-images.
func clip(dst xdraw.Image, r image.Rectangle) xdraw.Image {
	if si, ok := dst.(subImager); ok {
		if c, ok := si.SubImage(r).(xdraw.Image); ok {
			return c
		}
	}
	return dst
}
