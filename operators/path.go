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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
)

// registerPath installs path-construction and path-query operators
// (spec §4.4). Coordinates are stored in the current path already
// mapped through the CTM at the time each segment was appended, so that
// later changes to the CTM never retroactively move existing path
// geometry (PLRM §8, "the current path is maintained in device space").
func registerPath(b builder) {
	b.op("newpath", opNewpath)
	b.op("moveto", opMoveto)
	b.op("lineto", opLineto)
	b.op("curveto", opCurveto)
	b.op("rmoveto", opRmoveto)
	b.op("rlineto", opRlineto)
	b.op("rcurveto", opRcurveto)
	b.op("arc", opArc)
	b.op("arcn", opArcn)
	b.op("closepath", opClosepath)
	b.op("currentpoint", opCurrentpoint)
	b.op("pathbbox", opPathbbox)
	b.op("flattenpath", opFlattenpath)
	b.op("reversepath", opReversepath)
}

func opNewpath(c *interp.Context) error {
	c.Graphics.Current.Path = graphics.NewPath()
	return nil
}

func opMoveto(c *interp.Context) error {
	y, _, err := popNum(c, "moveto")
	if err != nil {
		return err
	}
	x, _, err := popNum(c, "moveto")
	if err != nil {
		return err
	}
	dx, dy := graphics.Transform(c.Graphics.Current.CTM, x, y)
	c.Graphics.Current.Path.MoveTo(dx, dy)
	return nil
}

func opLineto(c *interp.Context) error {
	y, _, err := popNum(c, "lineto")
	if err != nil {
		return err
	}
	x, _, err := popNum(c, "lineto")
	if err != nil {
		return err
	}
	dx, dy := graphics.Transform(c.Graphics.Current.CTM, x, y)
	return c.Graphics.Current.Path.LineTo("lineto", dx, dy)
}

func opCurveto(c *interp.Context) error {
	vals, _, err := numArgs(c, "curveto", 6)
	if err != nil {
		return err
	}
	m := c.Graphics.Current.CTM
	x1, y1 := graphics.Transform(m, vals[0], vals[1])
	x2, y2 := graphics.Transform(m, vals[2], vals[3])
	x3, y3 := graphics.Transform(m, vals[4], vals[5])
	return c.Graphics.Current.Path.CurveTo("curveto", x1, y1, x2, y2, x3, y3)
}

func opRmoveto(c *interp.Context) error {
	p, err := currentDevicePoint(c, "rmoveto")
	if err != nil {
		return err
	}
	dy, _, err := popNum(c, "rmoveto")
	if err != nil {
		return err
	}
	dx, _, err := popNum(c, "rmoveto")
	if err != nil {
		return err
	}
	ddx, ddy := graphics.DTransform(c.Graphics.Current.CTM, dx, dy)
	c.Graphics.Current.Path.MoveTo(p.X+ddx, p.Y+ddy)
	return nil
}

func opRlineto(c *interp.Context) error {
	p, err := currentDevicePoint(c, "rlineto")
	if err != nil {
		return err
	}
	dy, _, err := popNum(c, "rlineto")
	if err != nil {
		return err
	}
	dx, _, err := popNum(c, "rlineto")
	if err != nil {
		return err
	}
	ddx, ddy := graphics.DTransform(c.Graphics.Current.CTM, dx, dy)
	return c.Graphics.Current.Path.LineTo("rlineto", p.X+ddx, p.Y+ddy)
}

func opRcurveto(c *interp.Context) error {
	p, err := currentDevicePoint(c, "rcurveto")
	if err != nil {
		return err
	}
	vals, _, err := numArgs(c, "rcurveto", 6)
	if err != nil {
		return err
	}
	m := c.Graphics.Current.CTM
	dx1, dy1 := graphics.DTransform(m, vals[0], vals[1])
	dx2, dy2 := graphics.DTransform(m, vals[2], vals[3])
	dx3, dy3 := graphics.DTransform(m, vals[4], vals[5])
	return c.Graphics.Current.Path.CurveTo("rcurveto",
		p.X+dx1, p.Y+dy1, p.X+dx2, p.Y+dy2, p.X+dx3, p.Y+dy3)
}

func currentDevicePoint(c *interp.Context, op string) (graphics.Point, error) {
	return graphics.RequireCurrentPoint(op, c.Graphics.Current)
}

// opArc/opArcn implement `x y r angle1 angle2 arc`/`arcn` (PLRM §8): a
// counterclockwise (arc) or clockwise (arcn) circular arc in user space,
// connected to the existing path by an implicit lineto from the current
// point (if any) to the arc's starting point, then appended as a run of
// cubic Bezier segments (one per 90-degree slice, the conventional
// circular-arc-to-Bezier approximation).
func opArc(c *interp.Context) error {
	return doArc(c, "arc", true)
}

func opArcn(c *interp.Context) error {
	return doArc(c, "arcn", false)
}

func doArc(c *interp.Context, op string, ccw bool) error {
	vals, _, err := numArgs(c, op, 5)
	if err != nil {
		return err
	}
	cx, cy, r, a1, a2 := vals[0], vals[1], vals[2], vals[3], vals[4]
	if r < 0 {
		return psengine.NewError(op, psengine.ErrRangeCheck)
	}
	start := a1 * math.Pi / 180
	end := a2 * math.Pi / 180
	if ccw {
		for end < start {
			end += 2 * math.Pi
		}
	} else {
		for end > start {
			end -= 2 * math.Pi
		}
	}

	m := c.Graphics.Current.CTM
	sx, sy := graphics.Transform(m, cx+r*math.Cos(start), cy+r*math.Sin(start))

	path := c.Graphics.Current.Path
	if _, ok := path.EndPoint(); ok {
		if err := path.LineTo(op, sx, sy); err != nil {
			return err
		}
	} else {
		path.MoveTo(sx, sy)
	}

	const maxStep = math.Pi / 2
	t := start
	for (ccw && t < end) || (!ccw && t > end) {
		step := maxStep
		if ccw {
			if end-t < step {
				step = end - t
			}
		} else {
			step = -maxStep
			if t+step < end {
				step = end - t
			}
		}
		t2 := t + step
		if err := appendArcSegment(path, op, m, cx, cy, r, t, t2); err != nil {
			return err
		}
		t = t2
	}
	return nil
}

// appendArcSegment approximates one circular arc slice (no larger than
// 90 degrees) from angle a to angle b with a single cubic Bezier curve,
// using the standard kappa = 4/3*tan((b-a)/4) control-point construction.
func appendArcSegment(path *graphics.Path, op string, m matrix.Matrix, cx, cy, r, a, b float64) error {
	theta := b - a
	kappa := 4.0 / 3.0 * math.Tan(theta/4)

	cosA, sinA := math.Cos(a), math.Sin(a)
	cosB, sinB := math.Cos(b), math.Sin(b)

	p0x, p0y := cx+r*cosA, cy+r*sinA
	p3x, p3y := cx+r*cosB, cy+r*sinB
	p1x, p1y := p0x-kappa*r*sinA, p0y+kappa*r*cosA
	p2x, p2y := p3x+kappa*r*sinB, p3y-kappa*r*cosB

	x1, y1 := graphics.Transform(m, p1x, p1y)
	x2, y2 := graphics.Transform(m, p2x, p2y)
	x3, y3 := graphics.Transform(m, p3x, p3y)
	return path.CurveTo(op, x1, y1, x2, y2, x3, y3)
}

func opClosepath(c *interp.Context) error {
	c.Graphics.Current.Path.ClosePath()
	return nil
}

func opCurrentpoint(c *interp.Context) error {
	p, err := currentDevicePoint(c, "currentpoint")
	if err != nil {
		return err
	}
	inv, err := graphics.Invert("currentpoint", c.Graphics.Current.CTM)
	if err != nil {
		return err
	}
	ux, uy := graphics.Transform(inv, p.X, p.Y)
	if err := push(c, "currentpoint", psengine.Real(ux)); err != nil {
		return err
	}
	return push(c, "currentpoint", psengine.Real(uy))
}

// opPathbbox implements `pathbbox llx lly urx ury`: the bounding box
// (in user space) of every segment's defining points, including Bezier
// control points — a standard conservative approximation, since exact
// curve extrema are not needed by a device-agnostic interpreter core.
func opPathbbox(c *interp.Context) error {
	path := c.Graphics.Current.Path
	if path.Empty() {
		return psengine.NewError("pathbbox", psengine.ErrNoCurrentPoint)
	}
	inv, err := graphics.Invert("pathbbox", c.Graphics.Current.CTM)
	if err != nil {
		return err
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range path.Subpaths {
		for _, seg := range sp.Segments {
			n := 1
			if seg.Op == graphics.SegCurveTo {
				n = 3
			} else if seg.Op == graphics.SegClose {
				n = 0
			}
			for i := 0; i < n; i++ {
				ux, uy := graphics.Transform(inv, seg.Pts[i].X, seg.Pts[i].Y)
				minX, maxX = math.Min(minX, ux), math.Max(maxX, ux)
				minY, maxY = math.Min(minY, uy), math.Max(maxY, uy)
			}
		}
	}
	if math.IsInf(minX, 1) {
		return psengine.NewError("pathbbox", psengine.ErrNoCurrentPoint)
	}
	if err := push(c, "pathbbox", psengine.Real(minX)); err != nil {
		return err
	}
	if err := push(c, "pathbbox", psengine.Real(minY)); err != nil {
		return err
	}
	if err := push(c, "pathbbox", psengine.Real(maxX)); err != nil {
		return err
	}
	return push(c, "pathbbox", psengine.Real(maxY))
}

// opFlattenpath replaces every curve segment with a run of line
// segments, to within the current flatness tolerance (PLRM §8).
func opFlattenpath(c *interp.Context) error {
	s := c.Graphics.Current
	flat := graphics.NewPath()
	for _, sp := range s.Path.Subpaths {
		var cur graphics.Point
		for _, seg := range sp.Segments {
			switch seg.Op {
			case graphics.SegMoveTo:
				flat.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
				cur = seg.Pts[0]
			case graphics.SegLineTo:
				flat.LineTo("flattenpath", seg.Pts[0].X, seg.Pts[0].Y)
				cur = seg.Pts[0]
			case graphics.SegCurveTo:
				flattenBezier(flat, cur, seg.Pts[0], seg.Pts[1], seg.Pts[2], s.Flatness)
				cur = seg.Pts[2]
			case graphics.SegClose:
				flat.ClosePath()
			}
		}
	}
	s.Path = flat
	return nil
}

func flattenBezier(path *graphics.Path, p0, p1, p2, p3 graphics.Point, flatness float64) {
	steps := 16
	if flatness > 0 {
		steps = int(math.Max(4, math.Min(64, 32/flatness)))
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		x := mt*mt*mt*p0.X + 3*mt*mt*t*p1.X + 3*mt*t*t*p2.X + t*t*t*p3.X
		y := mt*mt*mt*p0.Y + 3*mt*mt*t*p1.Y + 3*mt*t*t*p2.Y + t*t*t*p3.Y
		path.LineTo("flattenpath", x, y)
	}
}

// opReversepath reverses subpath order and, within each subpath, the
// order of its segments (PLRM §8): the start and end points of the path
// trace the same geometry in the opposite direction.
func opReversepath(c *interp.Context) error {
	s := c.Graphics.Current
	rev := graphics.NewPath()
	subs := s.Path.Subpaths
	for i := len(subs) - 1; i >= 0; i-- {
		sp := subs[i]
		pts := subpathPoints(sp)
		if len(pts) == 0 {
			continue
		}
		last := pts[len(pts)-1]
		rev.MoveTo(last.X, last.Y)
		for j := len(pts) - 2; j >= 0; j-- {
			rev.LineTo("reversepath", pts[j].X, pts[j].Y)
		}
		if sp.Closed {
			rev.ClosePath()
		}
	}
	s.Path = rev
	return nil
}

// subpathPoints extracts the ordered endpoint sequence of a subpath,
// flattening curves to their control/end points (reversepath does not
// need to preserve exact curve shape since no renderer in this core
// inspects it before a subsequent flattenpath).
func subpathPoints(sp graphics.SubPath) []graphics.Point {
	var pts []graphics.Point
	for _, seg := range sp.Segments {
		switch seg.Op {
		case graphics.SegMoveTo, graphics.SegLineTo:
			pts = append(pts, seg.Pts[0])
		case graphics.SegCurveTo:
			pts = append(pts, seg.Pts[2])
		}
	}
	return pts
}
