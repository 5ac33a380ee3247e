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
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"seehuhn.de/go/annotate/overlay"
)

// ErrRasterSize is returned when a decoded raster does not have the size
// of the page.
var ErrRasterSize = errors.New("history: raster size mismatch")

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Capture creates a snapshot from the stroke raster and a copy of the
// overlay objects.
func Capture(layer *image.NRGBA, objs []overlay.Object) (*Snapshot, error) {
	data, err := EncodeRaster(layer)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Raster: data, Objects: overlay.Clone(objs)}, nil
}

// EncodeRaster serializes a stroke raster.
func EncodeRaster(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("history: encoding raster: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRaster restores a stroke raster with the given bounds.
// Decoding is safe to run concurrently with all other operations.
func DecodeRaster(data []byte, bounds image.Rectangle) (*image.NRGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("history: decoding raster: %w", err)
	}
	if img.Bounds() != bounds {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrRasterSize, img.Bounds(), bounds)
	}
	if res, ok := img.(*image.NRGBA); ok {
		return res, nil
	}

	// fully opaque rasters are stored without an alpha channel
	res := image.NewNRGBA(bounds)
	draw.Draw(res, bounds, img, bounds.Min, draw.Src)
	return res, nil
}
