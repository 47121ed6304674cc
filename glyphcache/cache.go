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

// Package glyphcache implements the two-level (path + bitmap) glyph
// cache of spec §4.6: an LRU keyed by a fingerprint of font identity,
// glyph selector, CTM scale/rotation, color, font matrix and sub-pixel
// Y, shared process-wide across Contexts showing the same fonts.
//
// Grounded on the root package's psengine.LRU[K,V] (itself generalized
// from a cache keyed on PDF indirect references) and on the teacher's
// font/glyph.go GlyphSeq append-only accumulation style for the path
// cache's stored display-list slice.
package glyphcache

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine"
	"seehuhn.de/go/psengine/displaylist"
)

// DefaultPathCapacity and DefaultBitmapCapacity are the entry-count
// limits spec §4.6 names for the two caches.
const (
	DefaultPathCapacity   = 2048
	DefaultBitmapCapacity = 4096

	// DefaultByteBudget is the bitmap cache's fallback byte budget when
	// no MaxFontCache system parameter overrides it (spec §4.6).
	DefaultByteBudget = 64 << 20
)

// Key identifies one cached glyph rendering. Font.String() carries the
// fingerprint documented in spec §4.6 ("FontName bytes and FID if
// present; fallback to CharProcs/Private/CharStrings identity"), built
// by package font's font-identity helper; glyphcache treats it as an
// opaque string.
type Key struct {
	Font       string
	Selector   string
	CTMScale   [4]float64 // a, b, c, d — quantized, tx/ty excluded
	Color      []float64  // quantized color components
	FontMatrix matrix.Matrix
	SubPixelY  float64 // quantized to {0.0, 0.5}
}

// String renders Key into the stable fingerprint displaylist.GlyphStart
// and displaylist.GlyphRef carry as their Key field, quantizing each
// numeric component per spec §4.6 so glyphs differing only in
// translation or sub-threshold jitter share one cache entry.
func (k Key) String() string {
	s := fmt.Sprintf("%s|%s|%.3f,%.3f,%.3f,%.3f|",
		k.Font, k.Selector, k.CTMScale[0], k.CTMScale[1], k.CTMScale[2], k.CTMScale[3])
	for _, c := range k.Color {
		s += fmt.Sprintf("%.3f,", c)
	}
	s += "|"
	for _, m := range k.FontMatrix {
		s += fmt.Sprintf("%.6f,", m)
	}
	s += fmt.Sprintf("|%.1f", quantizeSubPixelY(k.SubPixelY))
	return s
}

// quantizeSubPixelY rounds a fractional device-space y-origin to the
// nearest of {0.0, 0.5} (spec §4.6, "captures antialiasing ink-extent
// differences" without an entry per exact position).
func quantizeSubPixelY(y float64) float64 {
	frac := y - math.Floor(y)
	if frac < 0.25 || frac >= 0.75 {
		return 0
	}
	return 0.5
}

// QuantizeCTM extracts the scale/rotation components (a,b,c,d) of m,
// excluding translation, each rounded to 3 decimals (spec §4.6: "the
// same glyph at any position shares the entry").
func QuantizeCTM(m matrix.Matrix) [4]float64 {
	round3 := func(v float64) float64 { return math.Round(v*1000) / 1000 }
	return [4]float64{round3(m[0]), round3(m[1]), round3(m[2]), round3(m[3])}
}

// QuantizeColor rounds each color component to 3 decimals (spec §4.6).
func QuantizeColor(components []float64) []float64 {
	out := make([]float64, len(components))
	for i, c := range components {
		out[i] = math.Round(c*1000) / 1000
	}
	return out
}

// QuantizeFontMatrix rounds each FontMatrix component to 6 decimals
// (spec §4.6: "distinguishes scalefont outputs").
func QuantizeFontMatrix(m matrix.Matrix) matrix.Matrix {
	round6 := func(v float64) float64 { return math.Round(v*1e6) / 1e6 }
	return matrix.Matrix{round6(m[0]), round6(m[1]), round6(m[2]), round6(m[3]), round6(m[4]), round6(m[5])}
}

// PathEntry is the path-cache payload: the normalized display-list
// records for one glyph (origin-anchored per spec §4.6's "translating
// all path points by (-origin_x, -origin_y)"), its advance width, and
// its bounding box, plus the font dict's identity for invalidation if
// that font is ever redefined.
type PathEntry struct {
	Records  []displaylist.Record
	Width    float64
	BBox     [4]float64 // llx, lly, urx, ury
	FontDict *psengine.Dict
}

// BitmapEntry is the bitmap-cache payload a back-end renderer populates
// between GlyphStart and GlyphEnd: the core only supplies cache keys
// and never constructs one of these itself (spec §4.6).
type BitmapEntry struct {
	Pixels    []byte
	Width     int
	Height    int
	OriginX   float64
	OriginY   float64
	ByteCount int
}

// Cache bundles the two LRUs spec §4.6 describes as sharing a key
// schema: a path cache bounded purely by entry count, and a bitmap
// cache bounded by both entry count and a byte budget.
type Cache struct {
	paths   *psengine.LRU[string, PathEntry]
	bitmaps *psengine.LRU[string, BitmapEntry]

	byteBudget int
	bytesUsed  int
}

// New creates a Cache with spec §4.6's default capacities and byte
// budget; budget <= 0 falls back to DefaultByteBudget (the
// MaxFontCache-unset case).
func New(budget int) *Cache {
	if budget <= 0 {
		budget = DefaultByteBudget
	}
	c := &Cache{
		paths:      psengine.NewLRU[string, PathEntry](DefaultPathCapacity),
		bitmaps:    psengine.NewLRU[string, BitmapEntry](DefaultBitmapCapacity),
		byteBudget: budget,
	}
	c.bitmaps.OnEvict(func(_ string, v BitmapEntry) {
		c.bytesUsed -= v.ByteCount
	})
	return c
}

// LookupPath returns the cached path-level rendering for key, if any.
func (c *Cache) LookupPath(key string) (PathEntry, bool) {
	return c.paths.Get(key)
}

// PutPath stores entry under key, evicting the least-recently-used
// path entry if the cache is now over its entry-count capacity.
func (c *Cache) PutPath(key string, entry PathEntry) {
	c.paths.Put(key, entry)
}

// LookupBitmap returns the cached rasterized glyph for key, if any.
func (c *Cache) LookupBitmap(key string) (BitmapEntry, bool) {
	return c.bitmaps.Get(key)
}

// PutBitmap stores entry under key, first evicting least-recently-used
// bitmap entries (by entry count, then by byte budget) until entry
// fits — spec §4.6's "capacity enforced by both entry count ... and
// byte budget".
func (c *Cache) PutBitmap(key string, entry BitmapEntry) {
	if entry.ByteCount > c.byteBudget {
		return
	}
	if old, ok := c.bitmaps.Get(key); ok {
		c.bytesUsed -= old.ByteCount
	}
	for c.bytesUsed+entry.ByteCount > c.byteBudget && c.bitmaps.Len() > 0 {
		c.bitmaps.DeleteOldest()
	}
	c.bitmaps.Put(key, entry)
	c.bytesUsed += entry.ByteCount
}

// BytesUsed reports the bitmap cache's current byte-budget consumption.
func (c *Cache) BytesUsed() int { return c.bytesUsed }
