package main

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

func testModel(t *testing.T) *model {
	t.Helper()
	s, ok := scene.Lookup("basic_boxes")
	if !ok {
		t.Fatal("missing built-in scene")
	}
	m := newModel(s, nil)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 77})
	return m
}

func TestResize(t *testing.T) {
	m := testModel(t)
	if m.c.Frame() != (viewport.Size{Width: 800, Height: 600}) {
		t.Errorf("frame = %v", m.c.Frame())
	}
	if m.last != "visible|frame" {
		t.Errorf("last update %q", m.last)
	}
}

func TestKeys(t *testing.T) {
	m := testModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.c.Offset() != (vec.Vec2{X: -100}) {
		t.Errorf("offset after left = %v", m.c.Offset())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if math.Abs(m.c.Scale()-(1+viewport.KeyZoomStep)) > 1e-9 {
		t.Errorf("scale after + = %g", m.c.Scale())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	b, _ := m.scene.Bounds()
	r := viewport.PlaceRect(m.c.State(), b)
	if r.LLx < fitMargin-1e-9 || r.LLy < fitMargin-1e-9 || r.URx > 800-fitMargin+1e-9 || r.URy > 600-fitMargin+1e-9 {
		t.Errorf("fitted bounds on screen %v", r)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q did not quit")
	}
}

func TestMouseDrag(t *testing.T) {
	m := testModel(t)
	press := tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	move := tea.MouseMsg{X: 15, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
	release := tea.MouseMsg{X: 20, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}

	p := viewport.ScreenToCanvas(m.c.State(), cellCenter(10, 10))
	m.Update(press)
	m.Update(move)
	if got := viewport.CanvasToScreen(m.c.State(), p); got != cellCenter(15, 12) {
		t.Errorf("dragged point at %v, want %v", got, cellCenter(15, 12))
	}
	m.Update(release)
	if got := viewport.CanvasToScreen(m.c.State(), p); got != cellCenter(20, 12) {
		t.Errorf("dragged point at %v, want %v", got, cellCenter(20, 12))
	}

	// motion without a pressed button does nothing
	before := m.c.State()
	m.Update(tea.MouseMsg{X: 30, Y: 30, Action: tea.MouseActionMotion})
	if m.c.State() != before {
		t.Error("hover moved the view")
	}
}

func TestMouseWheel(t *testing.T) {
	m := testModel(t)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.c.Offset() != (vec.Vec2{Y: wheelStep}) {
		t.Errorf("offset after wheel = %v", m.c.Offset())
	}

	ptr := cellCenter(50, 20)
	under := viewport.ScreenToCanvas(m.c.State(), ptr)
	m.Update(tea.MouseMsg{X: 50, Y: 20, Ctrl: true, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if want := 1 + float64(wheelStep)/viewport.ScrollZoomDivisor; math.Abs(m.c.Scale()-want) > 1e-9 {
		t.Errorf("scale = %g, want %g", m.c.Scale(), want)
	}
	got := viewport.ScreenToCanvas(m.c.State(), ptr)
	if d := got.Sub(under); d.Length() > 1e-9 {
		t.Errorf("point under the pointer moved by %v", d)
	}
}

func TestView(t *testing.T) {
	m := testModel(t)
	out := m.View()
	lines := strings.Split(out, "\n")
	if len(lines) != m.rows+2 {
		t.Errorf("%d lines, want %d", len(lines), m.rows+2)
	}
	if !strings.Contains(lines[m.rows], "scale 1.00") {
		t.Errorf("status line %q", lines[m.rows])
	}

	// Box 1 covers canvas (100, 100)-(200, 200), which is cells 25-49, 13-24
	grid := m.cells()
	if grid[13*m.cols+25] != 0 || grid[24*m.cols+49] != 0 {
		t.Error("Box 1 missing from the cell grid")
	}
	if grid[12*m.cols+25] != -1 || grid[13*m.cols+50] != -1 {
		t.Error("Box 1 spills over")
	}
}
