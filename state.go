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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Size is the extent of the viewport frame in screen pixels.
type Size struct {
	Width, Height float64
}

// Center returns the screen-space centre of a frame of this size.
func (s Size) Center() vec.Vec2 {
	return vec.Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// State is a snapshot of the viewport transform.
//
// Rectangles use screen orientation: LLx and LLy hold the minimum
// coordinates (the top-left corner), URx and URy the maximum coordinates.
type State struct {
	// Offset is the canvas point shown at the top-left corner of the frame.
	Offset vec.Vec2

	// Scale is the zoom factor from canvas units to screen pixels.
	Scale float64

	// Frame is the size of the visible area in screen pixels.
	Frame Size

	// Visible is the canvas-space rectangle covered by the frame.
	// It is derived from Offset, Scale and Frame and never set on its own.
	Visible rect.Rect
}

func newState(offset vec.Vec2, scale float64, frame Size) State {
	return State{
		Offset:  offset,
		Scale:   scale,
		Frame:   frame,
		Visible: visibleRect(offset, scale, frame),
	}
}

// visibleRect computes the canvas region covered by the frame.
func visibleRect(offset vec.Vec2, scale float64, frame Size) rect.Rect {
	return rect.Rect{
		LLx: offset.X,
		LLy: offset.Y,
		URx: offset.X + frame.Width/scale,
		URy: offset.Y + frame.Height/scale,
	}
}

// CTM returns the transformation from canvas space to screen space.
func (s State) CTM() matrix.Matrix {
	return matrix.Matrix{
		s.Scale, 0,
		0, s.Scale,
		-s.Offset.X * s.Scale, -s.Offset.Y * s.Scale,
	}
}

// changes returns the set of fields which differ between s and other.
func (s State) changes(other State) Field {
	var f Field
	if s.Visible != other.Visible {
		f |= FieldVisible
	}
	if s.Offset != other.Offset {
		f |= FieldOffset
	}
	if s.Scale != other.Scale {
		f |= FieldScale
	}
	if s.Frame != other.Frame {
		f |= FieldFrame
	}
	return f
}

// valid reports whether every field of s is finite and the scale is positive.
func (s State) valid() bool {
	return s.Scale > 0 &&
		isFinite(s.Scale) &&
		isFiniteVec(s.Offset) &&
		isFinite(s.Visible.URx) && isFinite(s.Visible.URy)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func isFiniteVec(v vec.Vec2) bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func isFiniteRect(r rect.Rect) bool {
	return isFinite(r.LLx) && isFinite(r.LLy) && isFinite(r.URx) && isFinite(r.URy)
}
