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

package viewport

import "math"

// ZoomStep is the increment used by ZoomIn and ZoomOut.
const ZoomStep = 0.1

// FitMargin is the horizontal space, in viewport units, which FitWidth
// leaves free around the page.
const FitMargin = 40

// Limits bounds the view zoom factor.
type Limits struct {
	Min, Max float64
}

// Clamp returns z restricted to [l.Min, l.Max].
// Non-finite or non-positive values map to l.Min.
func (l Limits) Clamp(z float64) float64 {
	if math.IsNaN(z) || z <= 0 {
		return l.Min
	}
	return max(l.Min, min(z, l.Max))
}

// ZoomIn returns the next larger zoom factor.
func (l Limits) ZoomIn(z float64) float64 {
	return l.Clamp(roundZoom(z + ZoomStep))
}

// ZoomOut returns the next smaller zoom factor.
func (l Limits) ZoomOut(z float64) float64 {
	return l.Clamp(roundZoom(z - ZoomStep))
}

// FitWidth returns the zoom factor at which a page of width docWidth fills
// the available viewport width, minus FitMargin.
func (l Limits) FitWidth(available, docWidth float64) float64 {
	if docWidth <= 0 {
		return l.Clamp(1)
	}
	return l.Clamp((available - FitMargin) / docWidth)
}

// roundZoom removes the accumulated error of repeated steps.
func roundZoom(z float64) float64 {
	return math.Round(z*1000) / 1000
}
