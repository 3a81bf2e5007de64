package viewport

import "seehuhn.de/go/geom/vec"

// Input tuning constants.
const (
	// ScrollZoomDivisor converts a wheel delta into a magnification when
	// the zoom modifier is held.
	ScrollZoomDivisor = 200

	// KeyZoomStep is the magnification applied by keyboard zoom shortcuts.
	KeyZoomStep = 0.4
)

// ScrollEvent is a scroll-wheel or trackpad scroll, in screen pixels.
// If Zoom is set (a modifier key is held) the vertical delta zooms the
// view around Point instead of scrolling.
type ScrollEvent struct {
	DeltaX, DeltaY float64
	Zoom           bool
	Point          vec.Vec2
}

// MagnifyEvent is a pinch gesture. Anchor is in screen space.
type MagnifyEvent struct {
	Magnification float64
	Anchor        vec.Vec2
}

// PanEvent is a drag step in screen pixels, relative to the previous step.
type PanEvent struct {
	X, Y float64
}

// ResizeEvent reports a new size of the host surface.
type ResizeEvent struct {
	Width, Height float64
}

// Handler receives normalized input events.
type Handler interface {
	Scroll(ScrollEvent)
	Magnify(MagnifyEvent)
	Pan(PanEvent)
}

// HandlerFuncs adapts plain functions to the [Handler] interface.
// Nil functions ignore their events.
type HandlerFuncs struct {
	OnScroll  func(ScrollEvent)
	OnMagnify func(MagnifyEvent)
	OnPan     func(PanEvent)
}

// Scroll implements [Handler].
func (h HandlerFuncs) Scroll(ev ScrollEvent) {
	if h.OnScroll != nil {
		h.OnScroll(ev)
	}
}

// Magnify implements [Handler].
func (h HandlerFuncs) Magnify(ev MagnifyEvent) {
	if h.OnMagnify != nil {
		h.OnMagnify(ev)
	}
}

// Pan implements [Handler].
func (h HandlerFuncs) Pan(ev PanEvent) {
	if h.OnPan != nil {
		h.OnPan(ev)
	}
}

// Input forwards input events to a [Controller].
//
// All event deltas are screen pixels. Input divides them by the current
// scale before calling [Controller.Pan], so that content follows the
// pointer at every zoom level.
type Input struct {
	c *Controller
}

var _ Handler = (*Input)(nil)

// NewInput returns an event handler which drives c.
func NewInput(c *Controller) *Input {
	return &Input{c: c}
}

// Scroll implements [Handler].
func (in *Input) Scroll(ev ScrollEvent) {
	if ev.Zoom {
		in.c.Magnify(ev.DeltaY/ScrollZoomDivisor, ev.Point)
		return
	}
	in.pan(ev.DeltaX, ev.DeltaY)
}

// Magnify implements [Handler].
func (in *Input) Magnify(ev MagnifyEvent) {
	in.c.Magnify(ev.Magnification, ev.Anchor)
}

// Pan implements [Handler].
func (in *Input) Pan(ev PanEvent) {
	in.pan(ev.X, ev.Y)
}

// Resize forwards a size change of the host surface.
func (in *Input) Resize(ev ResizeEvent) {
	in.c.Resize(ev.Width, ev.Height)
}

// ZoomIn zooms in by one keyboard step around the frame centre.
func (in *Input) ZoomIn() {
	in.Magnify(MagnifyEvent{Magnification: KeyZoomStep, Anchor: in.c.Frame().Center()})
}

// ZoomOut zooms out by one keyboard step around the frame centre.
func (in *Input) ZoomOut() {
	in.Magnify(MagnifyEvent{Magnification: -KeyZoomStep, Anchor: in.c.Frame().Center()})
}

func (in *Input) pan(dx, dy float64) {
	s := in.c.Scale()
	in.c.Pan(dx/s, dy/s)
}

// PanGesture turns the cumulative translation reported by a drag
// recognizer into per-step [PanEvent] values.
type PanGesture struct {
	last vec.Vec2
}

// Move takes the translation since the start of the gesture and returns
// the movement since the previous call.
func (g *PanGesture) Move(translation vec.Vec2) PanEvent {
	d := translation.Sub(g.last)
	g.last = translation
	return PanEvent{X: d.X, Y: d.Y}
}

// End finishes the gesture.
func (g *PanGesture) End() {
	g.last = vec.Vec2{}
}

// DragItem moves an item at canvas position pos by a screen-space delta.
func DragItem(s State, pos, screenDelta vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: pos.X + screenDelta.X/s.Scale,
		Y: pos.Y + screenDelta.Y/s.Scale,
	}
}
