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
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/annotate"
	"seehuhn.de/go/annotate/overlay"
)

// Run plays the scenario on a new session with a blank white page.
// The caller must dispose the returned session.
func Run(ctx context.Context, sc Scenario, opt *annotate.Options) (*annotate.Session, error) {
	page := image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))
	draw.Draw(page, page.Rect, image.White, image.Point{}, draw.Src)

	s := annotate.New(opt)
	if err := s.LoadRaster(page, 0); err != nil {
		s.Dispose()
		return nil, err
	}
	if err := Play(ctx, s, sc.Steps); err != nil {
		s.Dispose()
		return nil, fmt.Errorf("%s: %w", sc.Name, err)
	}
	return s, nil
}

// Play applies the steps to a session. After every undo and redo, Play
// waits until the restored state is visible.
func Play(ctx context.Context, s *annotate.Session, steps []Step) error {
	for i, step := range steps {
		if err := play(ctx, s, step); err != nil {
			return fmt.Errorf("step %d (%T): %w", i, step, err)
		}
	}
	return nil
}

var errNoMapping = errors.New("document position not visible")

func play(ctx context.Context, s *annotate.Session, step Step) error {
	switch step := step.(type) {
	case UseTool:
		p := annotate.ToolParams{Size: step.Size}
		if step.Color.A != 0 {
			p.Color = step.Color
		}
		s.SetTool(step.Tool, p)

	case Gesture:
		if len(step.Points) == 0 {
			return nil
		}
		pts := make([]vec.Vec2, len(step.Points))
		m := s.Mapper()
		for i, d := range step.Points {
			v, ok := m.ToViewport(d)
			if !ok {
				return errNoMapping
			}
			pts[i] = v
		}
		s.PointerDown(pts[0])
		for i := 1; i < len(pts)-1; i++ {
			s.PointerMove(pts[i])
		}
		s.PointerUp(pts[len(pts)-1])

	case AddText:
		_, err := s.AddOverlayAt(overlay.Text, step.At, overlay.Payload{
			Text:  step.Text,
			Style: overlay.TextStyle{Size: step.Size},
		})
		return err

	case AddImage:
		img := image.NewNRGBA(image.Rect(0, 0, step.W, step.H))
		draw.Draw(img, img.Rect, image.NewUniform(step.Color), image.Point{}, draw.Src)
		_, err := s.AddOverlayAt(overlay.Image, step.At, overlay.Payload{Bitmap: img})
		return err

	case Type:
		return s.SetText(step.Text)

	case CommitText:
		s.CommitText()

	case Restyle:
		return s.SetOverlayStyle(overlay.StyleDelta{
			Grow:         step.Grow,
			ToggleBold:   step.ToggleBold,
			ToggleItalic: step.ToggleItalic,
		})

	case Delete:
		return s.DeleteSelected()

	case Undo:
		s.Undo()
		return s.Sync(ctx)

	case Redo:
		s.Redo()
		return s.Sync(ctx)

	case Zoom:
		s.SetZoom(step.Zoom)

	default:
		return fmt.Errorf("unknown step type %T", step)
	}
	return nil
}
