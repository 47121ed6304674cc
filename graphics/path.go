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

package graphics

import "seehuhn.de/go/psengine"

// Point is a device- or user-space coordinate pair.
type Point struct{ X, Y float64 }

// SegOp names a path-construction element.
type SegOp int

const (
	SegMoveTo SegOp = iota
	SegLineTo
	SegCurveTo
	SegClose
)

// Segment is one element of a SubPath. CurveTo uses all three points
// (two control points plus the endpoint); MoveTo/LineTo use Pts[0]
// only; Close uses none.
type Segment struct {
	Op  SegOp
	Pts [3]Point
}

// SubPath is a single contiguous run of connected segments started by a
// MoveTo.
type SubPath struct {
	Segments []Segment
	Closed   bool
}

// Path is the current path being built by moveto/lineto/curveto/
// closepath, one or more SubPaths (spec §4.4, "path construction,
// sub-path collapsing").
type Path struct {
	Subpaths []SubPath
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

func (p *Path) clone() *Path {
	if p == nil {
		return nil
	}
	c := &Path{Subpaths: make([]SubPath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		c.Subpaths[i] = SubPath{Closed: sp.Closed, Segments: append([]Segment(nil), sp.Segments...)}
	}
	return c
}

// Empty reports whether the path has no segments at all.
func (p *Path) Empty() bool { return p == nil || len(p.Subpaths) == 0 }

// current returns a pointer to the open (last) subpath, or nil if there
// is none.
func (p *Path) current() *SubPath {
	if p == nil || len(p.Subpaths) == 0 {
		return nil
	}
	return &p.Subpaths[len(p.Subpaths)-1]
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Subpaths = append(p.Subpaths, SubPath{Segments: []Segment{{Op: SegMoveTo, Pts: [3]Point{{x, y}}}}})
}

// LineTo appends a line segment to the current subpath, failing with
// nocurrentpoint if no subpath is open.
func (p *Path) LineTo(op string, x, y float64) error {
	sp := p.current()
	if sp == nil {
		return psengine.NewError(op, psengine.ErrNoCurrentPoint)
	}
	sp.Segments = append(sp.Segments, Segment{Op: SegLineTo, Pts: [3]Point{{x, y}}})
	return nil
}

// CurveTo appends a cubic Bezier segment to the current subpath.
func (p *Path) CurveTo(op string, x1, y1, x2, y2, x3, y3 float64) error {
	sp := p.current()
	if sp == nil {
		return psengine.NewError(op, psengine.ErrNoCurrentPoint)
	}
	sp.Segments = append(sp.Segments, Segment{Op: SegCurveTo, Pts: [3]Point{{x1, y1}, {x2, y2}, {x3, y3}}})
	return nil
}

// ClosePath closes the current subpath back to its starting MoveTo, a
// no-op (per PLRM) if there is no current subpath or it is already
// closed.
func (p *Path) ClosePath() {
	sp := p.current()
	if sp == nil || sp.Closed || len(sp.Segments) == 0 {
		return
	}
	sp.Segments = append(sp.Segments, Segment{Op: SegClose})
	sp.Closed = true
}

// EndPoint returns the path's current point (the endpoint of the last
// segment of the last subpath) and whether one exists.
func (p *Path) EndPoint() (Point, bool) {
	sp := p.current()
	if sp == nil || len(sp.Segments) == 0 {
		return Point{}, false
	}
	last := sp.Segments[len(sp.Segments)-1]
	switch last.Op {
	case SegClose:
		return sp.Segments[0].Pts[0], true
	case SegCurveTo:
		return last.Pts[2], true
	default:
		return last.Pts[0], true
	}
}
