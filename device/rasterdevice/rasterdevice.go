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

// Package rasterdevice is a minimal device.Device that rasterizes
// Fill/Stroke/Image display-list records to a PNG, so the core's
// painting pipeline is exercised end-to-end without pulling in a full
// Cairo-equivalent back-end (spec §6). It is grounded on the teacher's
// converter.ImageRenderer (golang.org/x/image/vector for path
// rasterization, golang.org/x/image/draw for image composition), cut
// down to the record set package displaylist actually emits and
// generalized from PDF content-stream callbacks to displaylist.Record
// values.
package rasterdevice

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	ximage "golang.org/x/image/draw"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/psengine/displaylist"
)

// Device rasterizes each page it is handed into an image.RGBA and
// writes one PNG per call to NewWriter's factory.
type Device struct {
	newWriter func(pageIndex int) (io.WriteCloser, error)
	pageIndex int
}

// New returns a Device that calls newWriter once per Consume to obtain
// the destination for that page's PNG; newWriter is responsible for
// naming successive pages (e.g. "out-1.png", "out-2.png").
func New(newWriter func(pageIndex int) (io.WriteCloser, error)) *Device {
	return &Device{newWriter: newWriter}
}

// Consume rasterizes one page's records onto a white canvas of the
// given device-space dimensions (in points, 1 device pixel per point)
// and PNG-encodes the result.
func (d *Device) Consume(records []displaylist.Record, width, height float64) error {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	raster := vector.NewRasterizer(w, h)
	var pending displaylist.Path

	for _, rec := range records {
		switch r := rec.(type) {
		case displaylist.Path:
			pending = r
		case displaylist.Fill:
			fillPath(raster, img, pending, r.Color, h)
		case displaylist.Stroke:
			strokePath(raster, img, pending, r.Color, r.Line, h)
		case displaylist.ImageElement:
			drawImage(img, r, 1, h)
		case displaylist.ImageMaskElement:
			drawImageMask(img, r, h)
		case displaylist.ColorImageElement:
			drawImage(img, r.ImageElement, r.NumComponents, h)
		case displaylist.ShowPage:
			if err := d.writePage(img); err != nil {
				return err
			}
			draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
		case displaylist.ErasePage:
			draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
		}
	}

	return nil
}

func (d *Device) writePage(img *image.RGBA) error {
	w, err := d.newWriter(d.pageIndex)
	if err != nil {
		return err
	}
	d.pageIndex++
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Close is a no-op: every page is flushed by its own ShowPage record.
func (d *Device) Close() error { return nil }

// devVec flips PostScript's bottom-left device origin to image.RGBA's
// top-left origin.
func devVec(x, y float64, canvasHeight int) f32.Vec2 {
	return f32.Vec2{float32(x), float32(canvasHeight) - float32(y)}
}

// buildPath feeds p's segments (already in device space, per
// operators.toDisplayPath) into raster, one MoveTo/LineTo/CubeTo/Close
// call per segment.
func buildPath(raster *vector.Rasterizer, p displaylist.Path, canvasHeight int) {
	for _, sp := range p.Subpaths {
		for _, seg := range sp.Segments {
			switch seg.Op {
			case 0: // moveto
				raster.MoveTo(devVec(seg.Pts[0][0], seg.Pts[0][1], canvasHeight))
			case 1: // lineto
				raster.LineTo(devVec(seg.Pts[0][0], seg.Pts[0][1], canvasHeight))
			case 2: // curveto
				raster.CubeTo(
					devVec(seg.Pts[0][0], seg.Pts[0][1], canvasHeight),
					devVec(seg.Pts[1][0], seg.Pts[1][1], canvasHeight),
					devVec(seg.Pts[2][0], seg.Pts[2][1], canvasHeight),
				)
			case 3: // close
				raster.ClosePath()
			}
		}
	}
}

func fillPath(raster *vector.Rasterizer, img *image.RGBA, p displaylist.Path, col displaylist.Color, canvasHeight int) {
	raster.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	buildPath(raster, p, canvasHeight)
	raster.Draw(img, img.Bounds(), image.NewUniform(toGoColor(col)), image.Point{})
	raster.Reset(img.Bounds().Dx(), img.Bounds().Dy())
}

// strokePath approximates a stroke by rasterizing one quad per segment,
// offset by half the line width along the segment's normal, mirroring
// the teacher's ImageRenderer.stroke fallback (no joins/caps/dashing: a
// simplification this core's device layer is explicitly allowed, since
// the full geometry belongs to a real back-end, not this reference one).
func strokePath(raster *vector.Rasterizer, img *image.RGBA, p displaylist.Path, col displaylist.Color, line displaylist.LineParams, canvasHeight int) {
	width := line.Width
	if width <= 0 {
		width = 1
	}
	half := width / 2

	raster.Reset(img.Bounds().Dx(), img.Bounds().Dy())
	for _, sp := range p.Subpaths {
		var cur [2]float64
		have := false
		for _, seg := range sp.Segments {
			switch seg.Op {
			case 0:
				cur = seg.Pts[0]
				have = true
			case 1:
				if have {
					addStrokeQuad(raster, cur, seg.Pts[0], half, canvasHeight)
				}
				cur = seg.Pts[0]
				have = true
			case 2:
				if have {
					addStrokeQuad(raster, cur, seg.Pts[2], half, canvasHeight)
				}
				cur = seg.Pts[2]
				have = true
			}
		}
	}
	raster.Draw(img, img.Bounds(), image.NewUniform(toGoColor(col)), image.Point{})
	raster.Reset(img.Bounds().Dx(), img.Bounds().Dy())
}

func addStrokeQuad(raster *vector.Rasterizer, from, to [2]float64, half float64, canvasHeight int) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*half, dx/length*half

	raster.MoveTo(devVec(from[0]+nx, from[1]+ny, canvasHeight))
	raster.LineTo(devVec(to[0]+nx, to[1]+ny, canvasHeight))
	raster.LineTo(devVec(to[0]-nx, to[1]-ny, canvasHeight))
	raster.LineTo(devVec(from[0]-nx, from[1]-ny, canvasHeight))
	raster.ClosePath()
}

// toGoColor converts a displaylist.Color (the core's back-end-agnostic
// representation) into a standard-library color.Color.
func toGoColor(c displaylist.Color) color.Color {
	comp := c.Components
	switch c.Space {
	case "Gray":
		if len(comp) < 1 {
			return color.Black
		}
		v := clampByte(comp[0])
		return color.RGBA{v, v, v, 0xff}
	case "RGB":
		if len(comp) < 3 {
			return color.Black
		}
		return color.RGBA{clampByte(comp[0]), clampByte(comp[1]), clampByte(comp[2]), 0xff}
	case "CMYK":
		if len(comp) < 4 {
			return color.Black
		}
		cy, m, y, k := comp[0], comp[1], comp[2], comp[3]
		r := (1 - cy) * (1 - k)
		g := (1 - m) * (1 - k)
		b := (1 - y) * (1 - k)
		return color.RGBA{clampByte(r), clampByte(g), clampByte(b), 0xff}
	default:
		return color.Black
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// drawImage composites an ImageElement's samples onto img using its
// ImageMatrix/CTM to place the unit image square in device space,
// mirroring the teacher's DrawXObject use of golang.org/x/image/draw's
// affine Transform.
func drawImage(img *image.RGBA, e displaylist.ImageElement, numComponents int, canvasHeight int) {
	src := samplesToImage(e, numComponents)
	if src == nil {
		return
	}
	xform := deviceTransform(e, canvasHeight)
	ximage.ApproxBiLinear.Transform(img, &xform, src, src.Bounds(), nil)
}

// drawImageMask stencils an ImageMaskElement's 1-bit-per-sample mask in
// the record's paint color, wherever the mask bit is set (spec's
// `imagemask` operator semantics).
func drawImageMask(img *image.RGBA, e displaylist.ImageMaskElement, canvasHeight int) {
	paint := toGoColor(e.Color)
	mask := image.NewAlpha(image.Rect(0, 0, e.Width, e.Height))
	rowBytes := (e.Width + 7) / 8
	for y := 0; y < e.Height; y++ {
		for x := 0; x < e.Width; x++ {
			byteIdx := y*rowBytes + x/8
			if byteIdx >= len(e.Samples) {
				continue
			}
			bit := (e.Samples[byteIdx] >> (7 - uint(x%8))) & 1
			if bit == 0 { // 0 = paint, per PostScript's default Decode [0 1]
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	xform := deviceTransform(e.ImageElement, canvasHeight)
	uniform := image.NewUniform(paint)
	ximage.NearestNeighbor.Transform(img, &xform, &maskedUniform{uniform, mask}, mask.Bounds(), &ximage.Options{Op: ximage.Over})
}

// maskedUniform is a uniform-color image.Image masked by an
// image.Alpha, used to drive imagemask painting through the same
// affine-transform path as a full-color image.
type maskedUniform struct {
	col  *image.Uniform
	mask *image.Alpha
}

func (m *maskedUniform) ColorModel() color.Model { return color.NRGBAModel }
func (m *maskedUniform) Bounds() image.Rectangle { return m.mask.Bounds() }
func (m *maskedUniform) At(x, y int) color.Color {
	_, _, _, a := m.mask.At(x, y).RGBA()
	if a == 0 {
		return color.NRGBA{}
	}
	r, g, b, _ := m.col.At(x, y).RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// samplesToImage decodes packed image samples (1 component = gray, 3 =
// RGB, 4 = CMYK — the component counts `image`/`colorimage` support)
// into a standard-library image.Image.
func samplesToImage(e displaylist.ImageElement, numComponents int) image.Image {
	if e.Width <= 0 || e.Height <= 0 {
		return nil
	}
	if numComponents <= 0 {
		numComponents = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, e.Width, e.Height))
	rowBytes := (e.Width*numComponents*e.BitsPerComp + 7) / 8
	maxVal := float64(int(1)<<uint(e.BitsPerComp) - 1)
	comp := make([]float64, numComponents)
	for y := 0; y < e.Height; y++ {
		for x := 0; x < e.Width; x++ {
			for k := 0; k < numComponents; k++ {
				v := sampleBits(e.Samples, y*rowBytes, x*numComponents+k, e.BitsPerComp)
				comp[k] = float64(v) / maxVal
			}
			img.Set(x, y, componentsToColor(comp))
		}
	}
	return img
}

func componentsToColor(comp []float64) color.Color {
	switch len(comp) {
	case 1:
		v := clampByte(comp[0])
		return color.RGBA{v, v, v, 0xff}
	case 3:
		return color.RGBA{clampByte(comp[0]), clampByte(comp[1]), clampByte(comp[2]), 0xff}
	case 4:
		c, m, y, k := comp[0], comp[1], comp[2], comp[3]
		return color.RGBA{
			clampByte((1 - c) * (1 - k)),
			clampByte((1 - m) * (1 - k)),
			clampByte((1 - y) * (1 - k)),
			0xff,
		}
	default:
		return color.Black
	}
}

// sampleBits extracts the bitsPerComp-wide sample at column index from
// a packed row starting at byte offset rowStart.
func sampleBits(data []byte, rowStart, index, bitsPerComp int) int {
	bitOffset := rowStart*8 + index*bitsPerComp
	v := 0
	for i := 0; i < bitsPerComp; i++ {
		byteIdx := (bitOffset + i) / 8
		if byteIdx >= len(data) {
			break
		}
		bit := (data[byteIdx] >> (7 - uint((bitOffset+i)%8))) & 1
		v = v<<1 | int(bit)
	}
	return v
}

// deviceTransform builds the x/image/draw affine transform mapping the
// unit image square (as ImageMatrix positions it, then CTM places it in
// user space) into this device's flipped-y pixel grid.
func deviceTransform(e displaylist.ImageElement, canvasHeight int) f64.Aff3 {
	flip := matrix.Matrix{1, 0, 0, -1, 0, float64(canvasHeight)}
	combined := e.ImageMatrix.Mul(e.CTM).Mul(flip)
	return f64.Aff3{
		combined[0], combined[2], combined[4],
		combined[1], combined[3], combined[5],
	}
}
