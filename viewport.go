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

// Package viewport implements the transform controller of an infinite,
// pannable and zoomable canvas.
//
// Items have fixed positions in canvas space. A [Controller] owns the
// mapping to screen space, given by the canvas point shown at the top-left
// corner of the frame (the offset) and the zoom factor (the scale):
//
//	screen = (canvas - offset) * scale
//
// Every mutating operation commits a complete new [State] and then
// publishes a single [Update] to the observers registered with
// [Controller.Subscribe]. The functions [Place], [PlaceRect] and
// [Intersects] map item geometry through a published state.
package viewport

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Default magnification limits.
const (
	DefaultMinScale = 0.05
	DefaultMaxScale = 3
)

// ErrInvalidLimits is returned by [Controller.SetLimits] when the
// magnification limits are not finite, not positive, or out of order.
var ErrInvalidLimits = errors.New("invalid magnification limits")

// Options configures a new [Controller].
type Options struct {
	// MinScale and MaxScale bound the zoom factor. Zero values select
	// DefaultMinScale and DefaultMaxScale.
	MinScale, MaxScale float64

	// Offset is the initial canvas point at the top-left corner.
	Offset vec.Vec2

	// Scale is the initial zoom factor. Zero means 1.
	Scale float64

	// Logger receives diagnostics. If nil, the package logger is used,
	// see [SetLogger].
	Logger *slog.Logger
}

// Controller holds the authoritative viewport transform.
//
// The zero value is not usable; create controllers with [New].
// A Controller is not safe for concurrent use. It is meant to be owned by
// the goroutine which handles input events and rendering.
type Controller struct {
	state    State
	minScale float64
	maxScale float64
	log      *slog.Logger

	subs        []*subscription
	pending     []Update
	dispatching bool
}

// New returns a controller with an empty frame. A nil opts selects the
// defaults.
func New(opts *Options) *Controller {
	if opts == nil {
		opts = &Options{}
	}
	c := &Controller{
		minScale: DefaultMinScale,
		maxScale: DefaultMaxScale,
		log:      opts.Logger,
	}

	if opts.MinScale != 0 || opts.MaxScale != 0 {
		lo, hi := opts.MinScale, opts.MaxScale
		if lo == 0 {
			lo = DefaultMinScale
		}
		if hi == 0 {
			hi = DefaultMaxScale
		}
		if err := checkLimits(lo, hi); err != nil {
			c.logger().Warn("viewport: using default limits", "err", err)
		} else {
			c.minScale, c.maxScale = lo, hi
		}
	}

	scale := opts.Scale
	if scale == 0 || !isFinite(scale) {
		scale = 1
	}
	offset := opts.Offset
	if !isFiniteVec(offset) {
		offset = vec.Vec2{}
	}
	c.state = newState(offset, c.clamp(scale), Size{})
	return c
}

// State returns the currently published transform.
func (c *Controller) State() State {
	return c.state
}

// Offset returns the canvas point at the top-left corner of the frame.
func (c *Controller) Offset() vec.Vec2 {
	return c.state.Offset
}

// Scale returns the current zoom factor.
func (c *Controller) Scale() float64 {
	return c.state.Scale
}

// Frame returns the frame size in screen pixels.
func (c *Controller) Frame() Size {
	return c.state.Frame
}

// VisibleRect returns the canvas region covered by the frame.
func (c *Controller) VisibleRect() rect.Rect {
	return c.state.Visible
}

// Limits returns the current magnification limits.
func (c *Controller) Limits() (minScale, maxScale float64) {
	return c.minScale, c.maxScale
}

// Resize sets the frame size after the host surface changed size.
// Offset and scale are kept. Negative sizes are treated as zero, a zero
// size gives a zero-area visible rectangle.
func (c *Controller) Resize(width, height float64) {
	if !isFinite(width) || !isFinite(height) {
		c.logger().Warn("viewport: ignoring non-finite frame size",
			"width", width, "height", height)
		return
	}
	frame := Size{Width: max(width, 0), Height: max(height, 0)}
	c.commit(c.state.Offset, c.state.Scale, frame)
}

// Pan moves the offset by (-dx, -dy). The deltas are in canvas units;
// callers which receive screen pixels must divide by the scale first, as
// [Input] does. Panning is unbounded in both directions.
func (c *Controller) Pan(dx, dy float64) {
	offset := vec.Vec2{
		X: c.state.Offset.X - dx,
		Y: c.state.Offset.Y - dy,
	}
	c.commit(offset, c.state.Scale, c.state.Frame)
}

// Magnify changes the scale by the given amount, keeping the canvas point
// under the screen point anchor in place. The new scale is clamped to the
// magnification limits; once clamping is engaged the anchor may drift.
func (c *Controller) Magnify(magnification float64, anchor vec.Vec2) {
	c.zoomTo(c.clamp(c.state.Scale+magnification), anchor)
}

// zoomTo sets the scale to next, keeping the canvas point under anchor
// fixed. The caller is responsible for clamping.
func (c *Controller) zoomTo(next float64, anchor vec.Vec2) {
	cur := c.state
	before := vec.Vec2{
		X: anchor.X/cur.Scale + cur.Offset.X,
		Y: anchor.Y/cur.Scale + cur.Offset.Y,
	}
	after := vec.Vec2{
		X: anchor.X/next + cur.Offset.X,
		Y: anchor.Y/next + cur.Offset.Y,
	}
	offset := cur.Offset.Add(before.Sub(after))
	c.commit(offset, next, cur.Frame)
}

// Fit scales and centres the viewport so that bounds, given in canvas
// space, is shown as large as possible with its aspect ratio preserved.
// Bounds with zero or negative width or height cannot be framed; in this
// case the viewport is left unchanged and false is returned.
func (c *Controller) Fit(bounds rect.Rect) bool {
	return c.FitMargin(bounds, 0)
}

// FitMargin is like [Controller.Fit] but keeps margin screen pixels free on
// every side of the frame. If the frame is too small for the margin, the
// viewport is left unchanged and false is returned.
func (c *Controller) FitMargin(bounds rect.Rect, margin float64) bool {
	width := bounds.URx - bounds.LLx
	height := bounds.URy - bounds.LLy
	if !isFiniteRect(bounds) || !(width > 0 && height > 0) {
		c.logger().Debug("viewport: ignoring degenerate fit bounds",
			"width", width, "height", height)
		return false
	}
	if !isFinite(margin) || margin < 0 {
		margin = 0
	}

	cur := c.state
	availW := cur.Frame.Width - 2*margin
	availH := cur.Frame.Height - 2*margin
	if availW < 0 || availH < 0 {
		c.logger().Debug("viewport: frame too small for fit margin",
			"margin", margin, "frame", cur.Frame)
		return false
	}

	scale := c.clamp(min(availW/width, availH/height))

	// screen centre in canvas space at the new scale, current offset
	mid := vec.Vec2{
		X: (cur.Frame.Width/2)/scale + cur.Offset.X,
		Y: (cur.Frame.Height/2)/scale + cur.Offset.Y,
	}
	target := vec.Vec2{
		X: (bounds.LLx + bounds.URx) / 2,
		Y: (bounds.LLy + bounds.URy) / 2,
	}
	c.commit(cur.Offset.Add(target.Sub(mid)), scale, cur.Frame)
	return true
}

// SetLimits changes the magnification limits. If the current scale lies
// outside the new range it is clamped at once, keeping the frame centre in
// place, and the change is published.
func (c *Controller) SetLimits(minScale, maxScale float64) error {
	if err := checkLimits(minScale, maxScale); err != nil {
		return err
	}
	c.minScale, c.maxScale = minScale, maxScale
	if next := c.clamp(c.state.Scale); next != c.state.Scale {
		c.zoomTo(next, c.state.Frame.Center())
	}
	return nil
}

func checkLimits(minScale, maxScale float64) error {
	if !isFinite(minScale) || !isFinite(maxScale) || minScale <= 0 || minScale > maxScale {
		return fmt.Errorf("%w: min=%g max=%g", ErrInvalidLimits, minScale, maxScale)
	}
	return nil
}

// clamp restricts scale to the magnification limits. NaN is passed
// through, so that commit can reject it.
func (c *Controller) clamp(scale float64) float64 {
	return min(max(scale, c.minScale), c.maxScale)
}

// commit installs a new state and notifies observers. Updates which would
// publish non-finite values are dropped.
func (c *Controller) commit(offset vec.Vec2, scale float64, frame Size) {
	next := newState(offset, scale, frame)
	if !next.valid() {
		c.logger().Warn("viewport: dropping non-finite update",
			"offset", offset, "scale", scale)
		return
	}

	prev := c.state
	changed := prev.changes(next)
	if changed == 0 {
		return
	}
	c.state = next
	c.publish(Update{Old: prev, New: next, Changed: changed})
}

func (c *Controller) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}
