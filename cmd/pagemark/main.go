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

// Pagemark annotates a page image non-interactively.
//
// The edits are taken from a named scenario of the testcases package, or
// from a JSON script in the format written by testcases/export. The result
// is written as a single-page PDF file and, optionally, as a PNG image.
//
// Usage:
//
//	pagemark [flags] page.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"slices"

	"seehuhn.de/go/annotate"
	"seehuhn.de/go/annotate/pagesrc"
	"seehuhn.de/go/annotate/pdfout"
	"seehuhn.de/go/annotate/testcases"
)

var (
	scenario  = flag.String("scenario", "", "name of a built-in scenario, e.g. draw_pen_line")
	script    = flag.String("script", "", "JSON file with scenarios to play")
	pageIndex = flag.Int("page", 0, "page index, if several images are given")
	scale     = flag.Float64("scale", 1.5, "document pixels per PDF point")
	out       = flag.String("o", "out.pdf", "output PDF file")
	pngOut    = flag.String("png", "", "also write the flattened page to this PNG file")
	list      = flag.Bool("list", false, "list the built-in scenarios and exit")
	verbose   = flag.Bool("v", false, "log progress")
)

func main() {
	flag.Parse()

	if *list {
		listScenarios()
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pagemark [flags] page.png ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	steps, err := loadSteps()
	if err != nil {
		log.Fatal(err)
	}

	src, err := pagesrc.Open(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}

	opt := &annotate.Options{
		RenderScale: *scale,
		OnError:     func(err error) { log.Print(err) },
	}
	if *verbose {
		opt.Logger = log.Default()
	}
	s := annotate.New(opt)
	defer s.Dispose()

	ctx := context.Background()
	if err := s.LoadPage(ctx, src, *pageIndex); err != nil {
		log.Fatal(err)
	}
	if err := testcases.Play(ctx, s, steps); err != nil {
		log.Fatal(err)
	}

	data, err := s.ExportAsDocument(ctx, &pdfout.Writer{})
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal(err)
	}

	if *pngOut != "" {
		img, err := s.ExportFlattened()
		if err != nil {
			log.Fatal(err)
		}
		if err := writePNG(*pngOut, img); err != nil {
			log.Fatal(err)
		}
	}
}

// loadSteps returns the edits selected on the command line.
func loadSteps() ([]testcases.Step, error) {
	var steps []testcases.Step
	if *scenario != "" {
		sc, ok := testcases.Find(*scenario)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", *scenario)
		}
		steps = append(steps, sc.Steps...)
	}
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		all, err := testcases.Decode(f)
		if err != nil {
			return nil, err
		}
		for _, sc := range all {
			steps = append(steps, sc.Steps...)
		}
	}
	return steps, nil
}

func listScenarios() {
	var names []string
	for category, cases := range testcases.All {
		for _, sc := range cases {
			names = append(names, category+"_"+sc.Name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Println(name)
	}
}

func writePNG(fname string, img image.Image) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
