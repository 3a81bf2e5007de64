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

package viewport

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// DefaultCullPadding is the padding, in canvas units, which renderers
// typically pass to [Intersects] so that items just outside the frame are
// prepared before they scroll into view.
const DefaultCullPadding = 100

// Placement is the screen placement of a canvas item.
//
// The item is first moved by Translation and then the whole result is
// scaled by Scale about the top-left corner of the screen, not about the
// item's own centre. All items share this one origin.
type Placement struct {
	Translation vec.Vec2 // item position minus offset, in canvas units
	Scale       float64
}

// Screen returns the screen position of the item's anchor point.
func (p Placement) Screen() vec.Vec2 {
	return p.Translation.Mul(p.Scale)
}

// Place computes the placement of an item whose anchor sits at pos in
// canvas space.
func Place(s State, pos vec.Vec2) Placement {
	return Placement{
		Translation: vec.Vec2{X: pos.X - s.Offset.X, Y: pos.Y - s.Offset.Y},
		Scale:       s.Scale,
	}
}

// CanvasToScreen maps a canvas point to screen space.
func CanvasToScreen(s State, p vec.Vec2) vec.Vec2 {
	return Place(s, p).Screen()
}

// ScreenToCanvas maps a screen point to canvas space.
func ScreenToCanvas(s State, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: p.X/s.Scale + s.Offset.X,
		Y: p.Y/s.Scale + s.Offset.Y,
	}
}

// PlaceRect maps a canvas rectangle to screen space.
func PlaceRect(s State, r rect.Rect) rect.Rect {
	ll := CanvasToScreen(s, vec.Vec2{X: r.LLx, Y: r.LLy})
	ur := CanvasToScreen(s, vec.Vec2{X: r.URx, Y: r.URy})
	return rect.Rect{LLx: ll.X, LLy: ll.Y, URx: ur.X, URy: ur.Y}
}

// Intersects reports whether the canvas rectangle r, grown by pad canvas
// units on every side, overlaps the visible region of s.
func Intersects(s State, r rect.Rect, pad float64) bool {
	v := s.Visible
	return r.LLx-pad < v.URx && r.URx+pad > v.LLx &&
		r.LLy-pad < v.URy && r.URy+pad > v.LLy
}

// Tracker caches the placement of a single item.
//
// The cached value is reused only while both the offset and the scale are
// unchanged. A zoom anchored at the top-left corner changes the scale
// without moving the offset, so checking the offset alone is not enough.
type Tracker struct {
	pos vec.Vec2

	last   Placement
	offset vec.Vec2
	scale  float64
	valid  bool
}

// NewTracker returns a tracker for an item anchored at pos.
func NewTracker(pos vec.Vec2) *Tracker {
	return &Tracker{pos: pos}
}

// Position returns the item's canvas position.
func (t *Tracker) Position() vec.Vec2 {
	return t.pos
}

// SetPosition moves the item and invalidates the cached placement.
func (t *Tracker) SetPosition(pos vec.Vec2) {
	t.pos = pos
	t.valid = false
}

// Placement returns the item's placement under s. The second result
// reports whether the placement differs from the previous call.
func (t *Tracker) Placement(s State) (Placement, bool) {
	if t.valid && s.Offset == t.offset && s.Scale == t.scale {
		return t.last, false
	}
	p := Place(s, t.pos)
	changed := !t.valid || p != t.last
	t.last, t.offset, t.scale, t.valid = p, s.Offset, s.Scale, true
	return p, changed
}

// Bind keeps an item's placement up to date. The function fn is called
// once with the current placement and then whenever offset or scale
// changes move the item. The returned cancel function stops the updates.
func Bind(c *Controller, pos vec.Vec2, fn func(Placement)) (*Tracker, func()) {
	t := NewTracker(pos)
	p, _ := t.Placement(c.State())
	fn(p)
	cancel := c.Subscribe(FieldOffset|FieldScale, func(u Update) {
		if p, changed := t.Placement(u.New); changed {
			fn(p)
		}
	})
	return t, cancel
}
