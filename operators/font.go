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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/displaylist"
	"seehuhn.de/go/psengine/font"
	"seehuhn.de/go/psengine/glyphcache"
	"seehuhn.de/go/psengine/graphics"
	"seehuhn.de/go/psengine/interp"
)

// registerFont installs the font-resource and show-variant operators
// (spec §4.6). findfont/definefont/scalefont/makefont manipulate font
// dictionaries through package font's Registry; show/ashow/widthshow/
// kshow/cshow/stringwidth/charpath decode and lay out glyph outlines
// through the dictionary's bound *font.Font program.
func registerFont(b builder) {
	b.op("findfont", opFindfont)
	b.op("definefont", opDefinefont)
	b.op("scalefont", opScalefont)
	b.op("makefont", opMakefont)
	b.op("setfont", opSetfont)
	b.op("currentfont", opCurrentfont)
	b.op("show", opShow)
	b.op("ashow", opAshow)
	b.op("widthshow", opWidthshow)
	b.op("kshow", opKshow)
	b.op("cshow", opCshow)
	b.op("stringwidth", opStringwidth)
	b.op("charpath", opCharpath)
}

func opFindfont(c *interp.Context) error {
	name, err := popName(c, "findfont")
	if err != nil {
		return err
	}
	dict, ok := c.Fonts.Find(name)
	if !ok {
		return psengine.NewError("findfont", psengine.ErrInvalidFont)
	}
	return push(c, "findfont", dict)
}

// opDefinefont implements `key font definefont font`: mints a fresh
// FID, stores it into font's /FID entry, registers font under key in
// FontDirectory, and returns font unchanged (PLRM §8.1). The dictionary
// is only useful to show/scalefont/etc once a glyph program has been
// bound to its FID through font.Registry.Bind — in this engine that
// binding is a host responsibility (cmd/psengine, or a resource
// procset), mirroring how real PostScript font installation separates
// "define the resource" from "supply the bits".
func opDefinefont(c *interp.Context) error {
	dict, err := popDict(c, "definefont")
	if err != nil {
		return err
	}
	name, err := popName(c, "definefont")
	if err != nil {
		return err
	}
	fid := c.VM.NewFontID()
	c.VM.CowDict(dict)
	dict.Store.Put("FID", fid)
	c.Fonts.Register(name, dict)
	return push(c, "definefont", dict)
}

// opScalefont implements `font scale scalefont font'`: build a new font
// dictionary with FontMatrix scaled by [scale 0 0 scale 0 0] and a
// freshly minted FID bound to the scaled glyph program (PLRM §8.1).
func opScalefont(c *interp.Context) error {
	return doScale(c, "scalefont", func(scale float64) matrix.Matrix {
		return matrix.Matrix{scale, 0, 0, scale, 0, 0}
	})
}

// opMakefont implements `font matrix makefont font'`: like scalefont
// but with a general 6-element matrix operand instead of a uniform
// scale factor (PLRM §8.1).
func opMakefont(c *interp.Context) error {
	arr, err := popArrayMatrix(c, "makefont")
	if err != nil {
		return err
	}
	return scaleFontBy(c, "makefont", arr)
}

func doScale(c *interp.Context, op string, toMatrix func(float64) matrix.Matrix) error {
	scale, _, err := popNum(c, op)
	if err != nil {
		return err
	}
	return scaleFontBy(c, op, toMatrix(scale))
}

func scaleFontBy(c *interp.Context, op string, m matrix.Matrix) error {
	dict, err := popDict(c, op)
	if err != nil {
		return err
	}
	impl, ok := c.Fonts.Lookup(dict)
	if !ok {
		return psengine.NewError(op, psengine.ErrInvalidFont)
	}
	scaled := impl.Scaled(m)

	newDict := c.VM.NewDict(dict.Store.Len()+1, psengine.AccessUnlimited)
	dict.Store.ForEach(func(key string, v psengine.Object) {
		newDict.Store.Put(key, v)
	})
	fontMatrixItems := make([]psengine.Object, 6)
	for i, v := range scaled.FontMatrix {
		fontMatrixItems[i] = psengine.Real(v)
	}
	newDict.Store.Put("FontMatrix", c.VM.NewArray(fontMatrixItems, psengine.AccessUnlimited, psengine.AttrLiteral))

	fid := c.VM.NewFontID()
	newDict.Store.Put("FID", fid)
	scaled.Dict = newDict
	c.Fonts.Bind(fid, scaled)

	return push(c, op, newDict)
}

func opSetfont(c *interp.Context) error {
	dict, err := popDict(c, "setfont")
	if err != nil {
		return err
	}
	impl, ok := c.Fonts.Lookup(dict)
	if !ok {
		return psengine.NewError("setfont", psengine.ErrInvalidFont)
	}
	s := c.Graphics.Current
	s.Font = impl
	s.FontSize = impl.FontMatrix[0]
	s.Touch(graphics.StateFont)
	return nil
}

func opCurrentfont(c *interp.Context) error {
	impl, err := currentFont(c, "currentfont")
	if err != nil {
		return err
	}
	return push(c, "currentfont", impl.Dict)
}

func currentFont(c *interp.Context, op string) (*font.Font, error) {
	impl, ok := c.Graphics.Current.Font.(*font.Font)
	if !ok || impl == nil {
		return nil, psengine.NewError(op, psengine.ErrInvalidFont)
	}
	return impl, nil
}

// showLayout walks s's bytes as single character codes through impl,
// building one displaylist.Path's worth of device-space subpaths per
// glyph (consulting the glyph cache first) and advancing the device
// pen by each glyph's width plus extra(code) (device-space units,
// already CTM-transformed) between glyphs. It returns the final pen
// position and, when paint is true, has already appended Fill records
// for each glyph; when paint is false (charpath) the glyph outlines are
// instead left appended to the current path for the caller to stroke or
// fill.
func showLayout(c *interp.Context, op string, impl *font.Font, s *psengine.String, paint bool, extra func(code int) (float64, float64)) (float64, float64, error) {
	gs := c.Graphics.Current
	if !gs.HasCurrentPoint {
		return 0, 0, psengine.NewError(op, psengine.ErrNoCurrentPoint)
	}
	combined := impl.FontMatrix.Mul(gs.CTM)
	penX, penY := gs.CurrentX, gs.CurrentY
	col := toDisplayColor(fillColorOf(gs))

	for _, code := range s.Bytes() {
		g, err := impl.Outline(int(code))
		if err != nil {
			return 0, 0, psengine.Wrap(op, psengine.ErrInvalidFont, err)
		}
		if g == nil {
			g = &font.Glyph{}
		}

		key := glyphKey(impl, int(code), gs, col)
		var entry glyphcache.PathEntry
		cached, hit := c.GlyphCache.LookupPath(key)
		if hit {
			entry = cached
		} else {
			entry = buildGlyphEntry(g, combined)
			c.GlyphCache.PutPath(key, entry)
		}

		if paint && len(entry.Records) > 0 {
			c.Display.Append(displaylist.GlyphStart{Key: key, Position: [2]float64{penX, penY}})
			for _, rec := range entry.Records {
				c.Display.Append(translateGlyphRecord(rec, penX, penY))
			}
			c.Display.Append(displaylist.Fill{Color: col})
			c.Display.Append(displaylist.GlyphEnd{})
		} else if !paint {
			appendGlyphToPath(gs, g, combined, penX, penY)
		}

		dx, dy := graphics.DTransform(combined, g.Width, 0)
		penX += dx
		penY += dy
		if extra != nil {
			ex, ey := extra(int(code))
			penX += ex
			penY += ey
		}
	}
	gs.CurrentX, gs.CurrentY = penX, penY
	return penX, penY, nil
}

// glyphKey builds the glyph cache fingerprint for one code under the
// current CTM/color (spec §4.6).
func glyphKey(impl *font.Font, code int, gs *graphics.State, col displaylist.Color) string {
	k := glyphcache.Key{
		Font:       impl.Identity(),
		Selector:   string(rune(code)),
		CTMScale:   glyphcache.QuantizeCTM(gs.CTM),
		Color:      glyphcache.QuantizeColor(col.Components),
		FontMatrix: glyphcache.QuantizeFontMatrix(impl.FontMatrix),
	}
	return k.String()
}

// buildGlyphEntry renders g's outline through combined (FontMatrix x
// CTM, linear part only — translation is the per-glyph pen position
// applied at paint time) into a cache-ready, origin-anchored
// displaylist.Path record set.
func buildGlyphEntry(g *font.Glyph, combined matrix.Matrix) glyphcache.PathEntry {
	if len(g.Path) == 0 {
		return glyphcache.PathEntry{Width: g.Width}
	}
	p := graphics.NewPath()
	for _, op := range g.Path {
		switch op.Op {
		case font.OpMoveTo:
			x, y := graphics.DTransform(combined, op.X, op.Y)
			p.MoveTo(x, y)
		case font.OpLineTo:
			x, y := graphics.DTransform(combined, op.X, op.Y)
			_ = p.LineTo("show", x, y)
		case font.OpCurveTo:
			x1, y1 := graphics.DTransform(combined, op.X1, op.Y1)
			x2, y2 := graphics.DTransform(combined, op.X2, op.Y2)
			x3, y3 := graphics.DTransform(combined, op.X3, op.Y3)
			_ = p.CurveTo("show", x1, y1, x2, y2, x3, y3)
		case font.OpClose:
			p.ClosePath()
		}
	}
	dp := toDisplayPath(p)
	return glyphcache.PathEntry{Records: []displaylist.Record{dp}, Width: g.Width}
}

// translateGlyphRecord offsets a cached glyph Path record by the
// current pen position (cache entries are origin-anchored so the same
// entry serves every occurrence of a glyph regardless of position).
func translateGlyphRecord(rec displaylist.Record, dx, dy float64) displaylist.Record {
	p, ok := rec.(displaylist.Path)
	if !ok {
		return rec
	}
	out := displaylist.Path{Subpaths: make([]displaylist.SubPath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		segs := make([]displaylist.Segment, len(sp.Segments))
		for j, seg := range sp.Segments {
			var pts [3][2]float64
			for k, pt := range seg.Pts {
				pts[k] = [2]float64{pt[0] + dx, pt[1] + dy}
			}
			segs[j] = displaylist.Segment{Op: seg.Op, Pts: pts}
		}
		out.Subpaths[i] = displaylist.SubPath{Segments: segs, Closed: sp.Closed}
	}
	return out
}

// appendGlyphToPath appends g's outline, offset by (penX, penY), onto
// the current graphics path in place (charpath, spec §4.6).
func appendGlyphToPath(gs *graphics.State, g *font.Glyph, combined matrix.Matrix, penX, penY float64) {
	for _, op := range g.Path {
		switch op.Op {
		case font.OpMoveTo:
			x, y := graphics.DTransform(combined, op.X, op.Y)
			gs.Path.MoveTo(x+penX, y+penY)
		case font.OpLineTo:
			x, y := graphics.DTransform(combined, op.X, op.Y)
			_ = gs.Path.LineTo("charpath", x+penX, y+penY)
		case font.OpCurveTo:
			x1, y1 := graphics.DTransform(combined, op.X1, op.Y1)
			x2, y2 := graphics.DTransform(combined, op.X2, op.Y2)
			x3, y3 := graphics.DTransform(combined, op.X3, op.Y3)
			_ = gs.Path.CurveTo("charpath", x1+penX, y1+penY, x2+penX, y2+penY, x3+penX, y3+penY)
		case font.OpClose:
			gs.Path.ClosePath()
		}
	}
}

func opShow(c *interp.Context) error {
	s, err := popString(c, "show")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "show")
	if err != nil {
		return err
	}
	_, _, err = showLayout(c, "show", impl, s, true, nil)
	return err
}

// opAshow implements `ax ay string ashow -`: like show, but adds the
// user-space vector (ax, ay) to every glyph's own advance (PLRM §8.2,
// used to justify text by distributing extra space across characters).
func opAshow(c *interp.Context) error {
	s, err := popString(c, "ashow")
	if err != nil {
		return err
	}
	ay, _, err := popNum(c, "ashow")
	if err != nil {
		return err
	}
	ax, _, err := popNum(c, "ashow")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "ashow")
	if err != nil {
		return err
	}
	dx, dy := graphics.DTransform(c.Graphics.Current.CTM, ax, ay)
	_, _, err = showLayout(c, "ashow", impl, s, true, func(int) (float64, float64) { return dx, dy })
	return err
}

// opWidthshow implements `cx cy char string widthshow -`: like ashow,
// but the extra displacement is only added after characters whose code
// equals char (PLRM §8.2, used to justify text by stretching only the
// space character).
func opWidthshow(c *interp.Context) error {
	s, err := popString(c, "widthshow")
	if err != nil {
		return err
	}
	char, err := popInt(c, "widthshow")
	if err != nil {
		return err
	}
	cy, _, err := popNum(c, "widthshow")
	if err != nil {
		return err
	}
	cx, _, err := popNum(c, "widthshow")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "widthshow")
	if err != nil {
		return err
	}
	dx, dy := graphics.DTransform(c.Graphics.Current.CTM, cx, cy)
	extra := func(code int) (float64, float64) {
		if code == char {
			return dx, dy
		}
		return 0, 0
	}
	_, _, err = showLayout(c, "widthshow", impl, s, true, extra)
	return err
}

// opKshow implements `proc string kshow -`. This engine paints the
// string exactly as show would and, in addition, drives proc between
// each pair of adjacent character codes through the Loop-header
// mechanism (spec §4.2's generic loop dispatch has no hook for
// interleaving a native paint step between PostScript proc calls, so
// the painting happens eagerly here rather than incrementally as each
// kerning proc runs — real kshow implementations let proc's rmoveto
// shift subsequent glyphs, which this simplification does not capture).
func opKshow(c *interp.Context) error {
	s, err := popString(c, "kshow")
	if err != nil {
		return err
	}
	proc, err := popProc(c, "kshow")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "kshow")
	if err != nil {
		return err
	}
	if _, _, err := showLayout(c, "kshow", impl, s, true, nil); err != nil {
		return err
	}
	it := font.NewCIDIterator(impl, s.Bytes())
	return c.Exec.Push("kshow", interp.NewKshowLoop(proc, it))
}

// opCshow implements `proc string cshow -`: unlike show, cshow paints
// nothing — it only supplies each character's code (and, for composite
// fonts, its resolved CID) to proc (PLRM §8.2).
func opCshow(c *interp.Context) error {
	s, err := popString(c, "cshow")
	if err != nil {
		return err
	}
	proc, err := popProc(c, "cshow")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "cshow")
	if err != nil {
		return err
	}
	it := font.NewCIDIterator(impl, s.Bytes())
	return c.Exec.Push("cshow", interp.NewCshowLoop(proc, it))
}

// opStringwidth implements `string stringwidth wx wy`: the cumulative
// advance of the string in the current user space coordinate system
// (PLRM §8.2) — i.e. transformed only by FontMatrix, not by CTM.
func opStringwidth(c *interp.Context) error {
	s, err := popString(c, "stringwidth")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "stringwidth")
	if err != nil {
		return err
	}
	var wx, wy float64
	for _, code := range s.Bytes() {
		g, err := impl.Outline(int(code))
		if err != nil {
			return psengine.Wrap("stringwidth", psengine.ErrInvalidFont, err)
		}
		if g == nil {
			continue
		}
		dx, dy := graphics.DTransform(impl.FontMatrix, g.Width, 0)
		wx += dx
		wy += dy
	}
	if err := push(c, "stringwidth", psengine.Real(wx)); err != nil {
		return err
	}
	return push(c, "stringwidth", psengine.Real(wy))
}

// opCharpath implements `string bool charpath -`: appends the string's
// glyph outlines to the current path instead of painting them, for the
// caller to fill/stroke/clip explicitly (PLRM §8.2). The boolean
// operand (true for a stroke-oriented single-line outline, false for a
// fill-oriented closed outline) is accepted and discarded: every glyph
// program this engine decodes already yields closed subpaths.
func opCharpath(c *interp.Context) error {
	if _, err := popBool(c, "charpath"); err != nil {
		return err
	}
	s, err := popString(c, "charpath")
	if err != nil {
		return err
	}
	impl, err := currentFont(c, "charpath")
	if err != nil {
		return err
	}
	_, _, err = showLayout(c, "charpath", impl, s, false, nil)
	return err
}
