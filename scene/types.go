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

// Package scene describes canvas items together with a script of input
// events, for demos, previews and tests of the viewport controller.
package scene

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/viewport"
)

// Scene is a set of canvas items shown in a frame of a given size.
type Scene struct {
	Name   string // lowercase a-z, 0-9 and _ only
	Width  int    // frame width in pixels
	Height int    // frame height in pixels
	Items  []Item
	Steps  []Step // input replayed by Play
}

// Shape selects the outline of an item.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeDiamond
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeDiamond:
		return "diamond"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Item is a piece of content with a fixed position in canvas space.
type Item struct {
	ID       uuid.UUID
	Name     string
	Color    color.RGBA // not premultiplied
	Bounds   rect.Rect  // canvas space, LLx/LLy at the top-left corner
	Shape    Shape
	Selected bool
}

// NewItem returns a rectangular item with its top-left corner at (x, y).
func NewItem(name string, col color.RGBA, x, y, w, h float64) Item {
	return Item{
		ID:     uuid.New(),
		Name:   name,
		Color:  col,
		Bounds: rect.Rect{LLx: x, LLy: y, URx: x + w, URy: y + h},
	}
}

// Position returns the canvas position of the item's top-left corner.
func (it *Item) Position() vec.Vec2 {
	return vec.Vec2{X: it.Bounds.LLx, Y: it.Bounds.LLy}
}

// MoveTo moves the item so that its top-left corner is at pos.
func (it *Item) MoveTo(pos vec.Vec2) {
	w := it.Bounds.URx - it.Bounds.LLx
	h := it.Bounds.URy - it.Bounds.LLy
	it.Bounds = rect.Rect{LLx: pos.X, LLy: pos.Y, URx: pos.X + w, URy: pos.Y + h}
}

// Outline returns the item's outline in canvas space.
func (it *Item) Outline() *path.Data {
	b := it.Bounds
	switch it.Shape {
	case ShapeDiamond:
		mx := (b.LLx + b.URx) / 2
		my := (b.LLy + b.URy) / 2
		return (&path.Data{}).
			MoveTo(pt(mx, b.LLy)).
			LineTo(pt(b.URx, my)).
			LineTo(pt(mx, b.URy)).
			LineTo(pt(b.LLx, my)).
			Close()
	default:
		return (&path.Data{}).
			MoveTo(pt(b.LLx, b.LLy)).
			LineTo(pt(b.URx, b.LLy)).
			LineTo(pt(b.URx, b.URy)).
			LineTo(pt(b.LLx, b.URy)).
			Close()
	}
}

// Bounds returns the smallest rectangle containing all items.
// The second result is false if the scene has no items.
func (s *Scene) Bounds() (rect.Rect, bool) {
	if len(s.Items) == 0 {
		return rect.Rect{}, false
	}
	r := s.Items[0].Bounds
	for _, it := range s.Items[1:] {
		r.LLx = min(r.LLx, it.Bounds.LLx)
		r.LLy = min(r.LLy, it.Bounds.LLy)
		r.URx = max(r.URx, it.Bounds.URx)
		r.URy = max(r.URy, it.Bounds.URy)
	}
	return r, true
}

// Step is one scripted input event.
type Step interface {
	isStep()
}

// Pan is a drag step in screen pixels.
type Pan struct {
	X, Y float64
}

// Scroll is a scroll-wheel event in screen pixels. If Zoom is set, the
// vertical delta zooms around (X, Y).
type Scroll struct {
	DX, DY float64
	Zoom   bool
	X, Y   float64
}

// Magnify is a pinch gesture anchored at the screen point (X, Y).
type Magnify struct {
	By   float64
	X, Y float64
}

// Fit frames Bounds, or all items if Bounds is nil, leaving Margin
// pixels free on every side.
type Fit struct {
	Bounds *rect.Rect
	Margin float64
}

// Resize changes the frame size.
type Resize struct {
	Width, Height float64
}

// KeyZoom is a keyboard zoom shortcut.
type KeyZoom struct {
	In bool
}

func (Pan) isStep()     {}
func (Scroll) isStep()  {}
func (Magnify) isStep() {}
func (Fit) isStep()     {}
func (Resize) isStep()  {}
func (KeyZoom) isStep() {}

// Play sizes the frame of c to the scene and replays the scene's steps
// through a [viewport.Input].
func (s *Scene) Play(c *viewport.Controller) {
	in := viewport.NewInput(c)
	in.Resize(viewport.ResizeEvent{Width: float64(s.Width), Height: float64(s.Height)})
	for _, step := range s.Steps {
		switch st := step.(type) {
		case Pan:
			in.Pan(viewport.PanEvent{X: st.X, Y: st.Y})
		case Scroll:
			in.Scroll(viewport.ScrollEvent{
				DeltaX: st.DX,
				DeltaY: st.DY,
				Zoom:   st.Zoom,
				Point:  pt(st.X, st.Y),
			})
		case Magnify:
			in.Magnify(viewport.MagnifyEvent{Magnification: st.By, Anchor: pt(st.X, st.Y)})
		case Fit:
			bounds, ok := s.Bounds()
			if st.Bounds != nil {
				bounds, ok = *st.Bounds, true
			}
			if ok {
				c.FitMargin(bounds, st.Margin)
			}
		case Resize:
			in.Resize(viewport.ResizeEvent{Width: st.Width, Height: st.Height})
		case KeyZoom:
			if st.In {
				in.ZoomIn()
			} else {
				in.ZoomOut()
			}
		}
	}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
