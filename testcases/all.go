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

package testcases

// All contains all scenarios, grouped by category.
// The category name is used as a prefix in exported scenario names.
var All = map[string][]Scenario{
	"draw":    drawCases,
	"overlay": overlayCases,
	"history": historyCases,
	"zoom":    zoomCases,
}

// Find returns the scenario with the given exported name, for example
// "draw_pen_line".
func Find(name string) (Scenario, bool) {
	for category, cases := range All {
		for _, sc := range cases {
			if category+"_"+sc.Name == name {
				return sc, true
			}
		}
	}
	return Scenario{}, false
}
