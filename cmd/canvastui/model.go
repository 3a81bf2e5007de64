package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

// Size of one terminal cell in screen pixels. Cells are about twice as
// tall as they are wide.
const (
	cellW = 4
	cellH = 8
)

// wheelStep is the scroll distance of one wheel notch, in screen pixels.
const wheelStep = 40

// fitMargin is kept free around the items by the fit command.
const fitMargin = 2 * cellH

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Fit     key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "pan"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "pan"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Fit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q", "quit"),
	),
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)
)

// model is the state of the terminal canvas.
type model struct {
	scene *scene.Scene
	c     *viewport.Controller
	in    *viewport.Input

	cols, rows int // canvas area in cells

	drag      viewport.PanGesture
	dragStart vec.Vec2
	dragging  bool

	// last describes the most recent viewport update.
	last string
}

func newModel(s *scene.Scene, opts *viewport.Options) *model {
	m := &model{
		scene: s,
		c:     viewport.New(opts),
	}
	m.in = viewport.NewInput(m.c)
	m.c.Subscribe(viewport.AllFields, func(u viewport.Update) {
		m.last = u.Changed.String()
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// resize sets the terminal size. The last two lines hold the status bar.
func (m *model) resize(width, height int) {
	m.cols = max(width, 0)
	m.rows = max(height-2, 0)
	m.in.Resize(viewport.ResizeEvent{
		Width:  float64(m.cols * cellW),
		Height: float64(m.rows * cellH),
	})
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	frame := m.c.Frame()
	dx, dy := frame.Width/8, frame.Height/8
	switch {
	case key.Matches(msg, DefaultKeyMap.Quit):
		return tea.Quit
	case key.Matches(msg, DefaultKeyMap.Left):
		m.in.Pan(viewport.PanEvent{X: dx})
	case key.Matches(msg, DefaultKeyMap.Right):
		m.in.Pan(viewport.PanEvent{X: -dx})
	case key.Matches(msg, DefaultKeyMap.Up):
		m.in.Pan(viewport.PanEvent{Y: dy})
	case key.Matches(msg, DefaultKeyMap.Down):
		m.in.Pan(viewport.PanEvent{Y: -dy})
	case key.Matches(msg, DefaultKeyMap.ZoomIn):
		m.in.ZoomIn()
	case key.Matches(msg, DefaultKeyMap.ZoomOut):
		m.in.ZoomOut()
	case key.Matches(msg, DefaultKeyMap.Fit):
		if b, ok := m.scene.Bounds(); ok {
			m.c.FitMargin(b, fitMargin)
		}
	}
	return nil
}

// cellCenter returns the screen position of the centre of a cell.
func cellCenter(x, y int) vec.Vec2 {
	return vec.Vec2{X: float64(x*cellW) + cellW/2, Y: float64(y*cellH) + cellH/2}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	p := cellCenter(msg.X, msg.Y)
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		d := float64(wheelStep)
		if msg.Button == tea.MouseButtonWheelDown {
			d = -d
		}
		m.in.Scroll(viewport.ScrollEvent{DeltaY: d, Zoom: msg.Ctrl, Point: p})
		return
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		d := float64(wheelStep)
		if msg.Button == tea.MouseButtonWheelRight {
			d = -d
		}
		m.in.Scroll(viewport.ScrollEvent{DeltaX: d})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag.End()
			m.dragStart = p
			m.dragging = true
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.in.Pan(m.drag.Move(p.Sub(m.dragStart)))
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.in.Pan(m.drag.Move(p.Sub(m.dragStart)))
			m.drag.End()
			m.dragging = false
		}
	}
}

func (m *model) View() string {
	if m.cols == 0 || m.rows == 0 {
		return ""
	}

	var b strings.Builder
	grid := m.cells()
	for y := range m.rows {
		row := grid[y*m.cols : (y+1)*m.cols]
		for x := 0; x < len(row); {
			// group runs of cells showing the same item
			end := x + 1
			for end < len(row) && row[end] == row[x] {
				end++
			}
			b.WriteString(m.paint(row[x], end-x))
			x = end
		}
		b.WriteByte('\n')
	}

	st := m.c.State()
	v := st.Visible
	status := fmt.Sprintf("scale %.2f  offset (%.0f, %.0f)  visible %.0f×%.0f  [%s]",
		st.Scale, st.Offset.X, st.Offset.Y, v.URx-v.LLx, v.URy-v.LLy, m.last)
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

// cells returns, for every cell of the canvas area, the index of the
// topmost item covering the cell centre, or -1.
func (m *model) cells() []int {
	grid := make([]int, m.cols*m.rows)
	for i := range grid {
		grid[i] = -1
	}
	st := m.c.State()
	for i, it := range m.scene.Items {
		if !viewport.Intersects(st, it.Bounds, 0) {
			continue
		}
		r := viewport.PlaceRect(st, it.Bounds)
		x0 := max(int(r.LLx/cellW+0.5), 0)
		x1 := min(int(r.URx/cellW+0.5), m.cols)
		y0 := max(int(r.LLy/cellH+0.5), 0)
		y1 := min(int(r.URy/cellH+0.5), m.rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y*m.cols+x] = i
			}
		}
	}
	return grid
}

// paint renders n cells showing item idx.
func (m *model) paint(idx, n int) string {
	if idx < 0 {
		return strings.Repeat(" ", n)
	}
	it := m.scene.Items[idx]
	col := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", it.Color.R, it.Color.G, it.Color.B))
	fill := strings.Repeat(" ", n)
	style := lipgloss.NewStyle().Background(col)
	if it.Selected {
		fill = strings.Repeat("░", n)
		style = selectedStyle.Background(col)
	}
	return style.Render(fill)
}

func (m *model) help() string {
	km := DefaultKeyMap
	bindings := []key.Binding{km.Left, km.Right, km.Up, km.Down, km.ZoomIn, km.ZoomOut, km.Fit, km.Quit}
	parts := make([]string, 0, len(bindings)+1)
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "ctrl+wheel zoom")
	return strings.Join(parts, " • ")
}
