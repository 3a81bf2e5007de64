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
	"errors"
	imgcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

// WritePDF writes a single-page PDF showing the visible region of s.
// One PDF unit corresponds to one screen pixel. Colours are converted to
// gray levels.
func WritePDF(fname string, s viewport.State, items []scene.Item) error {
	w, h := s.Frame.Width, s.Frame.Height
	if !(w > 0 && h > 0) {
		return errors.New("empty frame")
	}

	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left, screen origin is top-left
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})
	page.Transform(s.CTM())

	page.SetLineJoin(graphics.LineJoinMiter)
	for i := range items {
		it := &items[i]
		if !viewport.Intersects(s, it.Bounds, 0) {
			continue
		}

		page.SetFillColor(color.DeviceGray(luma(it.Color)))
		for cmd, pts := range it.Outline().Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Fill()

		if it.Selected {
			// the border keeps its screen width at every zoom level
			lw := DefaultBorderWidth / s.Scale
			b := it.Bounds
			bw, bh := b.URx-b.LLx, b.URy-b.LLy
			if bw <= lw || bh <= lw {
				continue
			}
			page.SetLineWidth(lw)
			page.SetStrokeColor(color.DeviceGray(0))
			page.Rectangle(b.LLx+lw/2, b.LLy+lw/2, bw-lw, bh-lw)
			page.Stroke()
		}
	}

	return page.Close()
}

// luma converts c to a gray level in [0, 1], ignoring alpha.
func luma(c imgcolor.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}
