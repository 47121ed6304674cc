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

// Package graphics implements the graphics-state machine: the CTM,
// path construction, the clipping-path stack, gsave/grestore/
// grestoreall, and the dirty-bitmask protocol that decides when state
// needs to be re-emitted into the display list (spec §4.4).
//
// Grounded on the teacher's graphics.State/StateBits pattern (visible
// through graphics/state_test.go, since the retrieved pack kept only
// the PDF graphics package's tests — `StateBits` as a named-bit dirty
// mask tracked on a `Set` field, `ApplyTo`/`UpdateState` methods
// reconciling state against an output target): here `Set` becomes the
// "changed since the last display-list emission" mask and `Known`
// the "committed to the display list" mask, generalized from PDF
// content-stream operator emission to PostScript's display-list
// protocol.
package graphics

import (
	"seehuhn.de/go/geom/matrix"
)

// StateBits names every independently dirty-trackable graphics
// parameter, mirroring the teacher's StateBits bitmask
// (graphics/state_test.go's StateTextKnockout, StateStrokeAdjustment,
// StateFillAlpha, StateStrokeColor, ... naming convention) generalized
// to PostScript's graphics state.
type StateBits uint32

const (
	StateCTM StateBits = 1 << iota
	StateLineWidth
	StateLineCap
	StateLineJoin
	StateMiterLimit
	StateDash
	StateFlatness
	StateStrokeAdjust
	StateStrokeColor
	StateFillColor
	StateStrokeAlpha
	StateFillAlpha
	StateOverprint
	StateOverprintMode
	StateBlackGeneration
	StateUndercolorRemoval
	StateTransferFunction
	StateFont
	StateClip
	stateFirstUnused
)

// AllBits is the union of every StateBits flag, useful for forcing a
// full re-emission (e.g. the very first paint of a Context).
const AllBits = stateFirstUnused - 1

// LineCap enumerates the three PostScript line-cap styles.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin enumerates the three PostScript line-join styles.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// State is one PostScript graphics state (spec §4.4). Color and font
// fields are opaque (concretely *color.Color / *font.Font) so this
// package does not import color/font, which in turn do not need to
// import graphics; the interp/operators layer, which does import both,
// supplies and reads through these fields with a type assertion.
type State struct {
	CTM matrix.Matrix

	Path *Path

	// Clip is the clip-path stack's current top: a winding-rule/path
	// pair plus the version counter described in spec §4.5 ("Clipping
	// path stack").
	Clip ClipState

	LineWidth   float64
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float64
	Dash        []float64
	DashPhase   float64
	Flatness    float64
	StrokeAdjust bool

	StrokeColor any // concretely color.Color
	FillColor   any // concretely color.Color

	// Space is the current color space (PLRM §4.8.1: PostScript has a
	// single current color space/color pair shared by fill and stroke,
	// unlike PDF's separate pairs); concretely color.Space. Nil means
	// DeviceGray, the PostScript-mandated initial space.
	Space any

	StrokeAlpha float64
	FillAlpha   float64

	Overprint         bool
	OverprintMode     int
	BlackGeneration   any // concretely a transfer function
	UndercolorRemoval any
	TransferFunction  any

	Font     any // concretely *font.Font
	FontSize float64

	HasCurrentPoint    bool
	CurrentX, CurrentY float64

	// Set marks every field changed since the last display-list
	// emission; Known marks every field the display list has already
	// been told about at least once. A gsave'd copy of State carries
	// both masks forward so grestore's eventual re-emission only
	// touches what actually differs (spec §4.4).
	Set   StateBits
	Known StateBits

	// saved marks a graphics-state-stack entry created by `save`, as
	// opposed to an ordinary gsave copy (spec §4.4, "grestore pops
	// unless the top is a save-created state, in which case it
	// restores the value in place without popping").
	saved bool
}

// NewState returns the PostScript-mandated initial graphics state: an
// identity CTM, a 1-unit black stroke/fill, butt caps, miter joins, no
// dash, and no current point.
func NewState() *State {
	return &State{
		CTM:         matrix.Matrix{1, 0, 0, 1, 0, 0},
		Path:        NewPath(),
		LineWidth:   1.0,
		LineCap:     CapButt,
		LineJoin:    JoinMiter,
		MiterLimit:  10.0,
		Flatness:    1.0,
		StrokeAlpha: 1.0,
		FillAlpha:   1.0,
		Set:         AllBits,
	}
}

// Clone returns a field-wise copy of s suitable for gsave: Path and
// Clip are deep-copied since painting operators mutate them in place,
// while color/font references are shared (PostScript colors and fonts
// are themselves immutable once installed).
func (s *State) Clone() *State {
	c := *s
	c.Path = s.Path.clone()
	c.Clip = s.Clip.clone()
	if s.Dash != nil {
		c.Dash = append([]float64(nil), s.Dash...)
	}
	c.saved = false
	return &c
}

// MarkSaved flags this State as the one save pushed as an
// un-poppable floor for grestore (spec §4.4).
func (s *State) MarkSaved() { s.saved = true }

// IsSaved reports whether this entry is a save-created floor.
func (s *State) IsSaved() bool { return s.saved }

// Touch marks the given fields changed since the last display-list
// emission.
func (s *State) Touch(bits StateBits) { s.Set |= bits }

// Dirty returns the fields that changed since the last emission (Set)
// intersected with bits, i.e. the fields a painting operator about to
// run must consider re-emitting.
func (s *State) Dirty(bits StateBits) StateBits { return s.Set & bits }

// Commit marks bits as emitted: they move out of Set and into Known.
func (s *State) Commit(bits StateBits) {
	s.Known |= bits
	s.Set &^= bits
}
