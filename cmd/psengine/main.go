// seehuhn.de/go/psengine - a PostScript Level 2 interpreter core
// Copyright (C) 2026  The psengine authors
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

// Command psengine runs a PostScript Level 2 program through the
// interpreter core, driving its graphics operators and, when -o names
// an output path, rasterizing each showpage to a PNG — a bare-bones
// harness for exercising the engine directly, the way the teacher's
// cmd/pdf2img exercises its own reader/converter stack from the command
// line.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/device/rasterdevice"
	"seehuhn.de/go/psengine/displaylist"
	"seehuhn.de/go/psengine/interp"
	"seehuhn.de/go/psengine/operators"
	"seehuhn.de/go/psengine/vm"
)

// options mirrors the flag set a converter-style CLI in this pack
// exposes (dimensions, resolution, page selection, rendering quality
// knobs); flags this reference engine has nowhere to act on yet
// (-antialias, -text-as-paths, -no-icc, -cmyk-profile, -no-glyph-cache)
// are parsed but otherwise unused — vector.Rasterizer is
// always antialiased, and this core always renders glyphs as paths with
// the font-cache generalized from cache.go always on.
type options struct {
	verbose       bool
	out           string
	pageSize      string
	dpi           float64
	maxPages      int
	antialias     bool
	textAsPaths   bool
	noICC         bool
	cmykProfile   string
	noGlyphCache  bool
}

func main() {
	var opt options
	flag.BoolVar(&opt.verbose, "v", false, "print the final operand stack after the program runs")
	flag.StringVar(&opt.out, "o", "", "output PNG path pattern (a %d is replaced by the page number); empty disables rendering")
	flag.StringVar(&opt.pageSize, "d", "612x792", "page size in points, WxH")
	flag.Float64Var(&opt.dpi, "r", 72, "output resolution in dots per inch")
	flag.IntVar(&opt.maxPages, "pages", 0, "maximum number of pages to render (0 = all)")
	flag.BoolVar(&opt.antialias, "antialias", true, "antialias rendered paths")
	flag.BoolVar(&opt.textAsPaths, "text-as-paths", true, "render glyphs as filled paths")
	flag.BoolVar(&opt.noICC, "no-icc", false, "skip ICC-based color management")
	flag.StringVar(&opt.cmykProfile, "cmyk-profile", "", "ICC profile to use for CMYK color conversion")
	flag.BoolVar(&opt.noGlyphCache, "no-glyph-cache", false, "disable the glyph path/bitmap cache")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] program.ps\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), opt); err != nil {
		fmt.Fprintf(os.Stderr, "psengine: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opt options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	global := vm.DefaultGlobal()
	c := interp.New(global)
	c.Stdout = os.Stdout

	if err := operators.Install(c); err != nil {
		return fmt.Errorf("installing operators: %w", err)
	}

	prog := c.VM.NewFile(f, psengine.FileModeRead, true)
	if err := c.Exec.Push("", prog); err != nil {
		return err
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("running %s: %w", path, err)
	}

	if opt.verbose {
		for _, obj := range c.Operand.All() {
			fmt.Fprintf(os.Stdout, "%v\n", obj)
		}
	}

	if opt.out != "" {
		if err := renderPages(c.Display, opt); err != nil {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
	}
	return nil
}

// renderPages splits the finished display list at its ShowPage records
// and hands each page's records to a rasterdevice.Device, scaled from
// the nominal page size (in points) to opt.dpi.
func renderPages(list *displaylist.List, opt options) error {
	width, height, err := parsePageSize(opt.pageSize)
	if err != nil {
		return err
	}
	scale := opt.dpi / 72
	width, height = width*scale, height*scale

	pages := splitPages(list.Records())
	if opt.maxPages > 0 && len(pages) > opt.maxPages {
		pages = pages[:opt.maxPages]
	}

	dev := rasterdevice.New(func(pageIndex int) (io.WriteCloser, error) {
		f, err := os.Create(outputName(opt.out, pageIndex))
		if err != nil {
			return nil, err
		}
		return f, nil
	})
	for _, records := range pages {
		if err := dev.Consume(records, width, height); err != nil {
			return err
		}
	}
	return dev.Close()
}

// splitPages groups records into one slice per page, ending each group
// at (and including) a ShowPage record; a trailing group with no
// ShowPage is dropped, matching the convention that only a completed
// showpage produces a page.
func splitPages(records []displaylist.Record) [][]displaylist.Record {
	var pages [][]displaylist.Record
	var cur []displaylist.Record
	for _, r := range records {
		cur = append(cur, r)
		if r.Kind() == displaylist.KindShowPage {
			pages = append(pages, cur)
			cur = nil
		}
	}
	return pages
}

func outputName(pattern string, pageIndex int) string {
	if strings.Contains(pattern, "%d") {
		return fmt.Sprintf(pattern, pageIndex+1)
	}
	return pattern + "-" + strconv.Itoa(pageIndex+1) + ".png"
}

func parsePageSize(s string) (width, height float64, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid page size %q, want WxH", s)
	}
	width, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page width %q: %w", parts[0], err)
	}
	height, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page height %q: %w", parts[1], err)
	}
	return width, height, nil
}
