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

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate"
)

// File is the JSON form of a list of scenarios.
type File struct {
	Scenarios []JSONScenario `json:"scenarios"`
}

// JSONScenario is the JSON form of a [Scenario].
type JSONScenario struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Steps  []JSONStep `json:"steps"`
}

// JSONStep is the JSON form of a [Step]. Op selects the step type, the
// other fields are used as needed.
type JSONStep struct {
	Op     string      `json:"op"`
	Tool   string      `json:"tool,omitempty"`
	Size   float64     `json:"size,omitempty"`
	Color  []int       `json:"color,omitempty"`
	Points [][]float64 `json:"points,omitempty"`
	Text   string      `json:"text,omitempty"`
	W      int         `json:"w,omitempty"`
	H      int         `json:"h,omitempty"`
	Grow   float64     `json:"grow,omitempty"`
	Bold   bool        `json:"bold,omitempty"`
	Italic bool        `json:"italic,omitempty"`
	Zoom   float64     `json:"zoom,omitempty"`
}

// Encode writes the scenarios in JSON form. Scenario names are prefixed
// with category, if it is not empty.
func Encode(w io.Writer, category string, scenarios []Scenario) error {
	var out File
	for _, sc := range scenarios {
		out.Scenarios = append(out.Scenarios, ToJSON(category, sc))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Decode reads scenarios in JSON form.
func Decode(r io.Reader) ([]Scenario, error) {
	var in File
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("testcases: %w", err)
	}
	res := make([]Scenario, 0, len(in.Scenarios))
	for _, js := range in.Scenarios {
		sc, err := FromJSON(js)
		if err != nil {
			return nil, err
		}
		res = append(res, sc)
	}
	return res, nil
}

// ToJSON converts a scenario to its JSON form.
func ToJSON(category string, sc Scenario) JSONScenario {
	name := sc.Name
	if category != "" {
		name = category + "_" + name
	}
	js := JSONScenario{Name: name, Width: sc.Width, Height: sc.Height}
	for _, step := range sc.Steps {
		js.Steps = append(js.Steps, stepToJSON(step))
	}
	return js
}

func stepToJSON(step Step) JSONStep {
	switch s := step.(type) {
	case UseTool:
		return JSONStep{Op: "tool", Tool: s.Tool.String(), Size: s.Size, Color: colorToJSON(s.Color)}
	case Gesture:
		return JSONStep{Op: "gesture", Points: pointsToJSON(s.Points)}
	case AddText:
		return JSONStep{Op: "text", Points: pointsToJSON([]vec.Vec2{s.At}), Text: s.Text, Size: s.Size}
	case AddImage:
		return JSONStep{Op: "image", Points: pointsToJSON([]vec.Vec2{s.At}), W: s.W, H: s.H, Color: colorToJSON(s.Color)}
	case Type:
		return JSONStep{Op: "type", Text: s.Text}
	case CommitText:
		return JSONStep{Op: "commit"}
	case Restyle:
		return JSONStep{Op: "restyle", Grow: s.Grow, Bold: s.ToggleBold, Italic: s.ToggleItalic}
	case Delete:
		return JSONStep{Op: "delete"}
	case Undo:
		return JSONStep{Op: "undo"}
	case Redo:
		return JSONStep{Op: "redo"}
	case Zoom:
		return JSONStep{Op: "zoom", Zoom: s.Zoom}
	default:
		panic(fmt.Sprintf("unknown step type %T", step))
	}
}

// FromJSON converts the JSON form of a scenario back.
func FromJSON(js JSONScenario) (Scenario, error) {
	sc := Scenario{Name: js.Name, Width: js.Width, Height: js.Height}
	if sc.Width <= 0 || sc.Height <= 0 {
		return Scenario{}, fmt.Errorf("testcases: %s: invalid page size %dx%d", js.Name, js.Width, js.Height)
	}
	for i, j := range js.Steps {
		step, err := stepFromJSON(j)
		if err != nil {
			return Scenario{}, fmt.Errorf("testcases: %s: step %d: %w", js.Name, i, err)
		}
		sc.Steps = append(sc.Steps, step)
	}
	return sc, nil
}

func stepFromJSON(j JSONStep) (Step, error) {
	pts, err := pointsFromJSON(j.Points)
	if err != nil {
		return nil, err
	}
	c, err := colorFromJSON(j.Color)
	if err != nil {
		return nil, err
	}
	at := func() (vec.Vec2, error) {
		if len(pts) != 1 {
			return vec.Vec2{}, fmt.Errorf("%s needs one point, got %d", j.Op, len(pts))
		}
		return pts[0], nil
	}

	switch j.Op {
	case "tool":
		t, err := annotate.ParseTool(j.Tool)
		if err != nil {
			return nil, err
		}
		return UseTool{Tool: t, Size: j.Size, Color: c}, nil
	case "gesture":
		return Gesture{Points: pts}, nil
	case "text":
		p, err := at()
		if err != nil {
			return nil, err
		}
		return AddText{At: p, Text: j.Text, Size: j.Size}, nil
	case "image":
		p, err := at()
		if err != nil {
			return nil, err
		}
		return AddImage{At: p, W: j.W, H: j.H, Color: c}, nil
	case "type":
		return Type{Text: j.Text}, nil
	case "commit":
		return CommitText{}, nil
	case "restyle":
		return Restyle{Grow: j.Grow, ToggleBold: j.Bold, ToggleItalic: j.Italic}, nil
	case "delete":
		return Delete{}, nil
	case "undo":
		return Undo{}, nil
	case "redo":
		return Redo{}, nil
	case "zoom":
		return Zoom{Zoom: j.Zoom}, nil
	}
	return nil, fmt.Errorf("unknown op %q", j.Op)
}

func pointsToJSON(pts []vec.Vec2) [][]float64 {
	res := make([][]float64, len(pts))
	for i, p := range pts {
		res[i] = []float64{p.X, p.Y}
	}
	return res
}

func pointsFromJSON(pts [][]float64) ([]vec.Vec2, error) {
	var res []vec.Vec2
	for _, p := range pts {
		if len(p) != 2 {
			return nil, fmt.Errorf("invalid point %v", p)
		}
		res = append(res, vec.Vec2{X: p[0], Y: p[1]})
	}
	return res, nil
}

func colorToJSON(c color.NRGBA) []int {
	if c == (color.NRGBA{}) {
		return nil
	}
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}
}

func colorFromJSON(c []int) (color.NRGBA, error) {
	if len(c) == 0 {
		return color.NRGBA{}, nil
	}
	if len(c) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %v", c)
	}
	var res [4]uint8
	for i, x := range c {
		if x < 0 || x > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %v", c)
		}
		res[i] = uint8(x)
	}
	return color.NRGBA{R: res[0], G: res[1], B: res[2], A: res[3]}, nil
}
