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

// Package displaylist implements the back-end-agnostic ordered sequence of
// painting records that is the contract between PostScript semantics and
// device output (spec §4.5). The core appends records as painting
// operators execute; a Device (package device) consumes them at showpage.
//
// The record set mirrors the root package's Tag-discriminated Object
// model (object.go's Tag/Object pair): RecordKind plus a single Record
// interface implemented by one struct per kind, rather than one bloated
// struct with every field and a kind tag, so each record only carries the
// fields its own semantics need.
package displaylist

import "seehuhn.de/go/geom/matrix"

// RecordKind discriminates the display-list record variants named in
// spec §4.5's table.
type RecordKind int

const (
	KindPath RecordKind = iota
	KindFill
	KindStroke
	KindClipElement
	KindImageElement
	KindImageMaskElement
	KindColorImageElement
	KindTextObj
	KindActualTextStart
	KindActualTextEnd
	KindGlyphStart
	KindGlyphEnd
	KindGlyphRef
	KindPatternFill
	KindAxialShadingFill
	KindRadialShadingFill
	KindFunctionShadingFill
	KindShowPage
	KindErasePage
)

func (k RecordKind) String() string {
	switch k {
	case KindPath:
		return "Path"
	case KindFill:
		return "Fill"
	case KindStroke:
		return "Stroke"
	case KindClipElement:
		return "ClipElement"
	case KindImageElement:
		return "ImageElement"
	case KindImageMaskElement:
		return "ImageMaskElement"
	case KindColorImageElement:
		return "ColorImageElement"
	case KindTextObj:
		return "TextObj"
	case KindActualTextStart:
		return "ActualTextStart"
	case KindActualTextEnd:
		return "ActualTextEnd"
	case KindGlyphStart:
		return "GlyphStart"
	case KindGlyphEnd:
		return "GlyphEnd"
	case KindGlyphRef:
		return "GlyphRef"
	case KindPatternFill:
		return "PatternFill"
	case KindAxialShadingFill:
		return "AxialShadingFill"
	case KindRadialShadingFill:
		return "RadialShadingFill"
	case KindFunctionShadingFill:
		return "FunctionShadingFill"
	case KindShowPage:
		return "ShowPage"
	case KindErasePage:
		return "ErasePage"
	default:
		return "unknown"
	}
}

// Record is the interface every display-list entry implements.
type Record interface {
	Kind() RecordKind
}

// Segment mirrors graphics.Segment without importing package graphics
// (which would create displaylist -> graphics -> ... -> displaylist,
// since operators needs both); the interp/operators layer converts a
// *graphics.Path into a []Segment when it appends a Path record.
type Segment struct {
	Op  int // 0=moveto 1=lineto 2=curveto 3=close, matching graphics.SegOp's values
	Pts [3][2]float64
}

// SubPath is one contiguous run of Segments, mirroring graphics.SubPath.
type SubPath struct {
	Segments []Segment
	Closed   bool
}

// Path records the current path becoming the renderer's "current path"
// (spec §4.5).
type Path struct {
	Subpaths []SubPath
}

func (Path) Kind() RecordKind { return KindPath }

// Color is a minimal back-end-agnostic color value; package color's
// concrete Color type converts to this at record-append time so
// displaylist does not need to import package color.
type Color struct {
	Space    string // "Gray", "RGB", "CMYK", "Pattern", ...
	Components []float64
}

// Fill paints the current path (spec §4.5).
type Fill struct {
	Color       Color
	EvenOdd     bool
}

func (Fill) Kind() RecordKind { return KindFill }

// LineParams snapshots the stroke-relevant parts of the graphics state at
// the time a Stroke record was appended, since stroke width is evaluated
// in user space against the CTM current at stroke time (spec §4.5).
type LineParams struct {
	Width      float64
	Cap        int
	Join       int
	MiterLimit float64
	Dash       []float64
	DashPhase  float64
}

// Stroke paints the current path stroked; it carries its own CTM snapshot
// because stroke width is user-space (spec §4.5).
type Stroke struct {
	Color Color
	Line  LineParams
	CTM   matrix.Matrix
}

func (Stroke) Kind() RecordKind { return KindStroke }

// ClipElement sets the renderer's clip region. IsInitClip resets the
// renderer's clip before applying Path/EvenOdd (spec §4.4's
// "initclip + new clip" pair emitted on a clip-version mismatch).
type ClipElement struct {
	Path       Path
	EvenOdd    bool
	IsInitClip bool
}

func (ClipElement) Kind() RecordKind { return KindClipElement }

// ImageElement is raster imaging for `image` (spec §4.5).
type ImageElement struct {
	SampleMatrix matrix.Matrix
	ImageMatrix  matrix.Matrix
	CTM          matrix.Matrix
	Width        int
	Height       int
	BitsPerComp  int
	Samples      []byte
}

func (ImageElement) Kind() RecordKind { return KindImageElement }

// ImageMaskElement is raster imaging for `imagemask`.
type ImageMaskElement struct {
	ImageElement
	Color Color
}

func (ImageMaskElement) Kind() RecordKind { return KindImageMaskElement }

// ColorImageElement is raster imaging for `colorimage`.
type ColorImageElement struct {
	ImageElement
	NumComponents int
}

func (ColorImageElement) Kind() RecordKind { return KindColorImageElement }

// TextObj is emitted only in TextObjs mode (spec §4.5) for PDF/SVG
// back-ends that want searchable text instead of per-glyph paths/bitmaps.
type TextObj struct {
	Text       []byte
	StartX     float64
	StartY     float64
	FontKey    string
	DeviceSize float64
	Color      Color
	CTM        matrix.Matrix
	FontMatrix matrix.Matrix
}

func (TextObj) Kind() RecordKind { return KindTextObj }

// ActualTextStart/ActualTextEnd wrap rendered Type-3 glyph sequences with
// searchable Unicode (spec §4.5).
type ActualTextStart struct {
	Unicode string
}

func (ActualTextStart) Kind() RecordKind { return KindActualTextStart }

type ActualTextEnd struct{}

func (ActualTextEnd) Kind() RecordKind { return KindActualTextEnd }

// GlyphStart/GlyphEnd bracket glyph rendering for bitmap-cache capture;
// GlyphRef replays a cached bitmap at Position (spec §4.6's glyph-cache
// protocol).
type GlyphStart struct {
	Key      string
	Position [2]float64
}

func (GlyphStart) Kind() RecordKind { return KindGlyphStart }

type GlyphEnd struct{}

func (GlyphEnd) Kind() RecordKind { return KindGlyphEnd }

type GlyphRef struct {
	Key      string
	Position [2]float64
}

func (GlyphRef) Kind() RecordKind { return KindGlyphRef }

// PatternFill defers pattern resolution to the renderer (spec §4.5).
type PatternFill struct {
	PatternKey string
	CTM        matrix.Matrix
}

func (PatternFill) Kind() RecordKind { return KindPatternFill }

// ShadingParams carries the shared fields of the axial/radial/function
// shading variants; each concrete record embeds it plus whatever
// geometry its shading type needs.
type ShadingParams struct {
	ShadingKey string
	CTM        matrix.Matrix
}

type AxialShadingFill struct {
	ShadingParams
	X0, Y0, X1, Y1 float64
}

func (AxialShadingFill) Kind() RecordKind { return KindAxialShadingFill }

type RadialShadingFill struct {
	ShadingParams
	X0, Y0, R0, X1, Y1, R1 float64
}

func (RadialShadingFill) Kind() RecordKind { return KindRadialShadingFill }

type FunctionShadingFill struct {
	ShadingParams
	Domain [4]float64
}

func (FunctionShadingFill) Kind() RecordKind { return KindFunctionShadingFill }

// ShowPage/ErasePage are page-boundary markers (spec §4.5); neither
// carries fields.
type ShowPage struct{}

func (ShowPage) Kind() RecordKind { return KindShowPage }

type ErasePage struct{}

func (ErasePage) Kind() RecordKind { return KindErasePage }
