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

package operators

import (
	"seehuhn.de/go/psengine/color"
	"seehuhn.de/go/psengine/displaylist"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
)

// registerPaint installs the painting operators that append records to
// the display list (spec §4.5).
func registerPaint(b builder) {
	b.op("stroke", opStroke)
	b.op("fill", opFill)
	b.op("eofill", opEofill)
	b.op("clip", opClip)
	b.op("eoclip", opEoclip)
	b.op("initclip", opInitclip)
	b.op("clippath", opClippath)
	b.op("showpage", opShowpage)
	b.op("erasepage", opErasepage)
}

// toDisplayPath converts a graphics.Path (already in device space) to
// its displaylist.Path mirror.
func toDisplayPath(p *graphics.Path) displaylist.Path {
	dp := displaylist.Path{Subpaths: make([]displaylist.SubPath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		segs := make([]displaylist.Segment, len(sp.Segments))
		for j, seg := range sp.Segments {
			var pts [3][2]float64
			for k, pt := range seg.Pts {
				pts[k] = [2]float64{pt.X, pt.Y}
			}
			segs[j] = displaylist.Segment{Op: int(seg.Op), Pts: pts}
		}
		dp.Subpaths[i] = displaylist.SubPath{Segments: segs, Closed: sp.Closed}
	}
	return dp
}

// toDisplayColor converts package color's resolved Color into the
// back-end-agnostic displaylist.Color the device layer consumes.
func toDisplayColor(col color.Color) displaylist.Color {
	switch v := col.(type) {
	case color.DeviceGray:
		return displaylist.Color{Space: "Gray", Components: []float64{float64(v)}}
	case color.DeviceRGB:
		return displaylist.Color{Space: "RGB", Components: []float64{v.R, v.G, v.B}}
	case color.DeviceCMYK:
		return displaylist.Color{Space: "CMYK", Components: []float64{v.C, v.M, v.Y, v.K}}
	case color.PatternColor:
		return displaylist.Color{Space: "Pattern"}
	default:
		if col == nil {
			return displaylist.Color{Space: "Gray", Components: []float64{0}}
		}
		_, y, _ := col.ToXYZ()
		return displaylist.Color{Space: "Gray", Components: []float64{y}}
	}
}

func fillColorOf(s *graphics.State) color.Color {
	if col, ok := s.FillColor.(color.Color); ok && col != nil {
		return col
	}
	return color.SpaceDeviceGray.Default()
}

func strokeColorOf(s *graphics.State) color.Color {
	if col, ok := s.StrokeColor.(color.Color); ok && col != nil {
		return col
	}
	return color.SpaceDeviceGray.Default()
}

func doFill(c *interp.Context, op string, evenOdd bool) error {
	s := c.Graphics.Current
	if s.Path.Empty() {
		return nil
	}
	c.Display.Append(toDisplayPath(s.Path))
	c.Display.Append(displaylist.Fill{Color: toDisplayColor(fillColorOf(s)), EvenOdd: evenOdd})
	s.Path = graphics.NewPath()
	return nil
}

func opFill(c *interp.Context) error  { return doFill(c, "fill", false) }
func opEofill(c *interp.Context) error { return doFill(c, "eofill", true) }

func opStroke(c *interp.Context) error {
	s := c.Graphics.Current
	if s.Path.Empty() {
		return nil
	}
	c.Display.Append(toDisplayPath(s.Path))
	c.Display.Append(displaylist.Stroke{
		Color: toDisplayColor(strokeColorOf(s)),
		Line: displaylist.LineParams{
			Width:      s.LineWidth,
			Cap:        int(s.LineCap),
			Join:       int(s.LineJoin),
			MiterLimit: s.MiterLimit,
			Dash:       append([]float64(nil), s.Dash...),
			DashPhase:  s.DashPhase,
		},
		CTM: s.CTM,
	})
	s.Path = graphics.NewPath()
	return nil
}

func doClip(c *interp.Context, evenOdd bool) error {
	s := c.Graphics.Current
	s.Clip.Push(s.Path, evenOdd)
	s.Touch(graphics.StateClip)
	c.Display.Append(displaylist.ClipElement{Path: toDisplayPath(s.Path), EvenOdd: evenOdd})
	return nil
}

func opClip(c *interp.Context) error   { return doClip(c, false) }
func opEoclip(c *interp.Context) error { return doClip(c, true) }

func opInitclip(c *interp.Context) error {
	s := c.Graphics.Current
	s.Clip.Reset()
	s.Touch(graphics.StateClip)
	c.Display.Append(displaylist.ClipElement{IsInitClip: true})
	return nil
}

// opClippath implements `clippath`: the current path is replaced by the
// current clipping path (PLRM §8.3), or a path covering the whole page
// if no clip has been set (approximated here as an empty path, since
// this core has no fixed page size to bound a whole-page rectangle to).
func opClippath(c *interp.Context) error {
	s := c.Graphics.Current
	top, ok := s.Clip.Top()
	if !ok {
		s.Path = graphics.NewPath()
		return nil
	}
	newPath := graphics.NewPath()
	*newPath = *cloneDisplayPathAsGraphicsPath(top.Path)
	s.Path = newPath
	return nil
}

func cloneDisplayPathAsGraphicsPath(p *graphics.Path) *graphics.Path {
	cp := graphics.NewPath()
	cp.Subpaths = append([]graphics.SubPath(nil), p.Subpaths...)
	return cp
}

func opShowpage(c *interp.Context) error {
	c.Display.Append(displaylist.ShowPage{})
	c.Graphics.Current.Path = graphics.NewPath()
	return nil
}

func opErasepage(c *interp.Context) error {
	c.Display.Append(displaylist.ErasePage{})
	return nil
}
