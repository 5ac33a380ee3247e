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

// Command export writes all editing scenarios to testdata/scenarios.json.
// Run from the module root directory.
package main

import (
	"log"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/annotate/testcases"
)

func main() {
	var all []testcases.Scenario
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			sc.Name = category + "_" + sc.Name
			all = append(all, sc)
		}
	}

	if err := os.MkdirAll("testdata", 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create("testdata/scenarios.json")
	if err != nil {
		log.Fatal(err)
	}
	if err := testcases.Encode(f, "", all); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
