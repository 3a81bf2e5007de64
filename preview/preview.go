// seehuhn.de/go/viewport - pan and zoom for infinite canvases
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

// Package preview draws the part of a scene which is visible through a
// viewport, as a raster image or as a PDF page.
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

// DefaultBorderWidth is the width of the selection border in screen pixels.
const DefaultBorderWidth = 3

// Renderer draws canvas items into an RGBA image.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Background  color.RGBA
	BorderColor color.RGBA
	BorderWidth float64 // screen pixels, independent of the zoom level

	// Padding is passed to [viewport.Intersects] to decide which items
	// are drawn.
	Padding float64

	r *Rasteriser
}

// NewRenderer returns a renderer with a white background and a blue
// selection border.
func NewRenderer() *Renderer {
	return &Renderer{
		Background:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		BorderColor: color.RGBA{R: 0x00, G: 0x7a, B: 0xff, A: 0xff},
		BorderWidth: DefaultBorderWidth,
		Padding:     viewport.DefaultCullPadding,
		r:           NewRasteriser(rect.Rect{}),
	}
}

// Render clears dst and draws the items visible under s. The top-left
// corner of dst shows the canvas point s.Offset. The return value is the
// number of items which survived culling.
func (rd *Renderer) Render(dst *image.RGBA, s viewport.State, items []scene.Item) int {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(rd.Background), image.Point{}, draw.Src)

	clip := rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
	toDevice := s.CTM()
	toDevice[4] += float64(b.Min.X)
	toDevice[5] += float64(b.Min.Y)

	drawn := 0
	for i := range items {
		it := &items[i]
		if !viewport.Intersects(s, it.Bounds, rd.Padding) {
			continue
		}
		drawn++

		rd.r.Reset(clip)
		rd.r.CTM = toDevice
		emit := blender(dst, it.Color)
		switch it.Shape {
		case scene.ShapeRect:
			rd.r.FillRect(it.Bounds, emit)
		default:
			rd.r.FillPath(it.Outline(), emit)
		}

		if it.Selected && rd.BorderWidth > 0 {
			screen := viewport.PlaceRect(s, it.Bounds)
			screen.LLx += float64(b.Min.X)
			screen.URx += float64(b.Min.X)
			screen.LLy += float64(b.Min.Y)
			screen.URy += float64(b.Min.Y)
			rd.r.CTM = matrix.Identity
			for _, band := range borderBands(screen, rd.BorderWidth) {
				rd.r.FillRect(band, blender(dst, rd.BorderColor))
			}
		}
	}
	return drawn
}

// borderBands splits a border of width w, drawn inside r, into four
// non-overlapping rectangles.
func borderBands(r rect.Rect, w float64) []rect.Rect {
	w = min(w, (r.URx-r.LLx)/2, (r.URy-r.LLy)/2)
	if w <= 0 {
		return nil
	}
	return []rect.Rect{
		{LLx: r.LLx, LLy: r.LLy, URx: r.URx, URy: r.LLy + w},         // top
		{LLx: r.LLx, LLy: r.URy - w, URx: r.URx, URy: r.URy},         // bottom
		{LLx: r.LLx, LLy: r.LLy + w, URx: r.LLx + w, URy: r.URy - w}, // left
		{LLx: r.URx - w, LLy: r.LLy + w, URx: r.URx, URy: r.URy - w}, // right
	}
}

// blender returns an emit function which composites col over dst, using
// the coverage values as additional alpha.
func blender(dst *image.RGBA, col color.RGBA) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		off := dst.PixOffset(xMin, y)
		for i, c := range coverage {
			a := float32(col.A) / 255 * min(c, 1)
			if a <= 0 {
				continue
			}
			p := dst.Pix[off+4*i : off+4*i+4 : off+4*i+4]
			p[0] = blend(p[0], col.R, a)
			p[1] = blend(p[1], col.G, a)
			p[2] = blend(p[2], col.B, a)
			p[3] = blend(p[3], 0xff, a)
		}
	}
}

func blend(dst, src uint8, a float32) uint8 {
	return uint8(float32(dst)*(1-a) + float32(src)*a + 0.5)
}
