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

package preview

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rasteriser converts canvas shapes to pixel coverage values.
// The caller creates one instance and reuses it for many shapes.
// Internal buffers grow as needed but never shrink.
type Rasteriser struct {
	// CTM maps canvas space to device space.
	CTM matrix.Matrix

	// Clip defines the output region in device coordinates.
	// Must have integer-aligned coordinates.
	Clip rect.Rect

	cover  []float32    // output row, reused
	xcover []float32    // horizontal coverage for FillRect
	mask   *image.Alpha // scratch mask for FillPath
	z      vector.Rasterizer
}

// NewRasteriser creates a new Rasteriser with the given clip rectangle
// and the identity transform.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:  matrix.Identity,
		Clip: clip,
	}
}

// Reset restores the identity transform and sets a new clip rectangle.
// Buffers are kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
}

// FillRect rasterises a rectangle given in canvas space.
//
// If the CTM keeps rectangles axis-aligned, the coverage of every pixel is
// the exact area of the pixel covered by the rectangle. Otherwise the
// rectangle is filled as a path.
//
// Coverage is delivered row-by-row via the emit callback. The coverage
// slice passed to emit is only valid for the duration of the callback.
func (r *Rasteriser) FillRect(b rect.Rect, emit func(y, xMin int, coverage []float32)) {
	m := r.CTM
	if m[1] != 0 || m[2] != 0 {
		r.FillPath(rectPath(b), emit)
		return
	}

	p0 := r.apply(vec.Vec2{X: b.LLx, Y: b.LLy})
	p1 := r.apply(vec.Vec2{X: b.URx, Y: b.URy})
	x0, x1 := min(p0.X, p1.X), max(p0.X, p1.X)
	y0, y1 := min(p0.Y, p1.Y), max(p0.Y, p1.Y)

	// clip in device space
	x0 = max(x0, r.Clip.LLx)
	x1 = min(x1, r.Clip.URx)
	y0 = max(y0, r.Clip.LLy)
	y1 = min(y1, r.Clip.URy)
	if !(x0 < x1 && y0 < y1) {
		return
	}

	xMin := int(math.Floor(x0))
	xMax := int(math.Ceil(x1))
	yMin := int(math.Floor(y0))
	yMax := int(math.Ceil(y1))

	n := xMax - xMin
	if cap(r.xcover) < n {
		r.xcover = make([]float32, n)
	}
	cover := r.xcover[:n]
	for i := range cover {
		px := float64(xMin + i)
		cover[i] = float32(min(x1, px+1) - max(x0, px))
	}
	row := r.row(n)
	for y := yMin; y < yMax; y++ {
		py := float64(y)
		cy := float32(min(y1, py+1) - max(y0, py))
		if cy <= 0 {
			continue
		}
		for i, cx := range cover {
			row[i] = cx * cy
		}
		emit(y, xMin, row)
	}
}

// FillPath rasterises a closed path given in canvas space, using the
// nonzero winding rule. Coverage is delivered as for [Rasteriser.FillRect].
func (r *Rasteriser) FillPath(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	bbox, ok := r.deviceBBox(p)
	if !ok {
		return
	}
	w, h := bbox.Dx(), bbox.Dy()
	org := vec.Vec2{X: float64(bbox.Min.X), Y: float64(bbox.Min.Y)}

	r.z.Reset(w, h)
	var current, start vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.lineTo(start, org)
			}
			current = p.Coords[coordIdx]
			start = current
			r.moveTo(current, org)
			coordIdx++
		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			r.lineTo(current, org)
			coordIdx++
		case path.CmdQuadTo:
			b := r.local(p.Coords[coordIdx], org)
			c := r.local(p.Coords[coordIdx+1], org)
			r.z.QuadTo(b[0], b[1], c[0], c[1])
			current = p.Coords[coordIdx+1]
			coordIdx += 2
		case path.CmdCubeTo:
			b := r.local(p.Coords[coordIdx], org)
			c := r.local(p.Coords[coordIdx+1], org)
			d := r.local(p.Coords[coordIdx+2], org)
			r.z.CubeTo(b[0], b[1], c[0], c[1], d[0], d[1])
			current = p.Coords[coordIdx+2]
			coordIdx += 3
		case path.CmdClose:
			r.z.ClosePath()
			current = start
		}
	}
	if current != start {
		r.z.ClosePath()
	}

	r.prepareMask(w, h)
	r.z.DrawOp = draw.Src
	r.z.Draw(r.mask, r.mask.Rect, image.Opaque, image.Point{})

	for y := range h {
		pix := r.mask.Pix[y*r.mask.Stride : y*r.mask.Stride+w]
		lo, hi := trimZeros(pix)
		if lo >= hi {
			continue
		}
		row := r.row(hi - lo)
		for i, a := range pix[lo:hi] {
			row[i] = float32(a) / 255
		}
		emit(bbox.Min.Y+y, bbox.Min.X+lo, row)
	}
}

// deviceBBox returns the integer device-space bounding box of all points
// of p, clamped to the clip rectangle. Control points are included.
func (r *Rasteriser) deviceBBox(p *path.Data) (image.Rectangle, bool) {
	if len(p.Coords) == 0 {
		return image.Rectangle{}, false
	}
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, c := range p.Coords {
		d := r.apply(c)
		xMin, xMax = min(xMin, d.X), max(xMax, d.X)
		yMin, yMax = min(yMin, d.Y), max(yMax, d.Y)
	}
	if math.IsNaN(xMin + xMax + yMin + yMax) {
		return image.Rectangle{}, false
	}
	bbox := image.Rect(
		int(math.Floor(max(xMin, r.Clip.LLx))),
		int(math.Floor(max(yMin, r.Clip.LLy))),
		int(math.Ceil(min(xMax, r.Clip.URx))),
		int(math.Ceil(min(yMax, r.Clip.URy))),
	)
	if bbox.Empty() {
		return image.Rectangle{}, false
	}
	return bbox, true
}

func (r *Rasteriser) apply(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// local maps p to device space, relative to org.
func (r *Rasteriser) local(p, org vec.Vec2) [2]float32 {
	d := r.apply(p).Sub(org)
	return [2]float32{float32(d.X), float32(d.Y)}
}

func (r *Rasteriser) moveTo(p, org vec.Vec2) {
	d := r.local(p, org)
	r.z.MoveTo(d[0], d[1])
}

func (r *Rasteriser) lineTo(p, org vec.Vec2) {
	d := r.local(p, org)
	r.z.LineTo(d[0], d[1])
}

func (r *Rasteriser) prepareMask(w, h int) {
	if r.mask == nil || cap(r.mask.Pix) < w*h {
		r.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return
	}
	r.mask.Pix = r.mask.Pix[:w*h]
	r.mask.Stride = w
	r.mask.Rect = image.Rect(0, 0, w, h)
}

// row returns the output buffer with length n.
func (r *Rasteriser) row(n int) []float32 {
	if cap(r.cover) < n {
		r.cover = make([]float32, n, 2*n)
	}
	return r.cover[:n]
}

// trimZeros returns the range of pix outside which all values are zero.
func trimZeros(pix []uint8) (lo, hi int) {
	hi = len(pix)
	for lo < hi && pix[lo] == 0 {
		lo++
	}
	for hi > lo && pix[hi-1] == 0 {
		hi--
	}
	return lo, hi
}

func rectPath(b rect.Rect) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: b.LLx, Y: b.LLy}).
		LineTo(vec.Vec2{X: b.URx, Y: b.LLy}).
		LineTo(vec.Vec2{X: b.URx, Y: b.URy}).
		LineTo(vec.Vec2{X: b.LLx, Y: b.URy}).
		Close()
}
