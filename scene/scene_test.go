package scene

import (
	"bytes"
	"image/color"
	"maps"
	"math"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/viewport"
)

const sample = `
name: sample
width: 400
height: 300
items:
  - name: Box
    color: "#ff0000"
    rect: [10, 20, 100, 50]
  - id: 0b8f8d1e-7a0e-4f2a-9a55-2d1c7c1d0e01
    name: Gem
    color: "#00ff0080"
    rect: [200, 100, 40, 40]
    shape: diamond
    selected: true
steps:
  - pan: [5, -5]
  - magnify: {by: 0.5, at: [200, 150]}
  - scroll: {dy: 20, zoom: true, at: [1, 2]}
  - fit: {margin: 10}
  - fit: {rect: [0, 0, 10, 10]}
  - resize: [320, 240]
  - key: zoom-in
  - key: zoom-out
`

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "sample" || s.Width != 400 || s.Height != 300 {
		t.Errorf("header = %q %dx%d", s.Name, s.Width, s.Height)
	}
	if len(s.Items) != 2 {
		t.Fatalf("%d items", len(s.Items))
	}

	box := s.Items[0]
	if box.Color != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("box color = %v", box.Color)
	}
	if box.Bounds != (rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 70}) {
		t.Errorf("box bounds = %v", box.Bounds)
	}
	if box.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("box has no ID")
	}

	gem := s.Items[1]
	if gem.ID.String() != "0b8f8d1e-7a0e-4f2a-9a55-2d1c7c1d0e01" {
		t.Errorf("gem id = %s", gem.ID)
	}
	if gem.Shape != ShapeDiamond || !gem.Selected || gem.Color.A != 0x80 {
		t.Errorf("gem = %+v", gem)
	}

	want := []Step{
		Pan{X: 5, Y: -5},
		Magnify{By: 0.5, X: 200, Y: 150},
		Scroll{DY: 20, Zoom: true, X: 1, Y: 2},
		Fit{Margin: 10},
		Fit{Bounds: &rect.Rect{URx: 10, URy: 10}},
		Resize{Width: 320, Height: 240},
		KeyZoom{In: true},
		KeyZoom{In: false},
	}
	if len(s.Steps) != len(want) {
		t.Fatalf("%d steps, want %d", len(s.Steps), len(want))
	}
	for i, st := range s.Steps {
		if f, ok := st.(Fit); ok {
			w := want[i].(Fit)
			if f.Margin != w.Margin || (f.Bounds == nil) != (w.Bounds == nil) ||
				(f.Bounds != nil && *f.Bounds != *w.Bounds) {
				t.Errorf("step %d = %+v, want %+v", i, st, want[i])
			}
			continue
		}
		if st != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, st, want[i])
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(strings.NewReader("name: tiny\nitems: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("frame = %dx%d", s.Width, s.Height)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, in, msg string
	}{
		{"empty", "", "empty scene file"},
		{"name", "name: Bad Name\n", "invalid scene name"},
		{"unknown key", "name: a\ncolour: red\n", "colour"},
		{"color", "name: a\nitems: [{name: x, color: red, rect: [0, 0, 1, 1]}]\n", "invalid color"},
		{"rect", "name: a\nitems: [{name: x, color: '#000000', rect: [0, 0, 1]}]\n", "rect needs"},
		{"negative", "name: a\nitems: [{name: x, color: '#000000', rect: [0, 0, -1, 1]}]\n", "negative rect"},
		{"shape", "name: a\nitems: [{name: x, color: '#000000', rect: [0, 0, 1, 1], shape: star}]\n", "unknown shape"},
		{"id", "name: a\nitems: [{id: nope, name: x, color: '#000000', rect: [0, 0, 1, 1]}]\n", "id:"},
		{"two actions", "name: a\nsteps: [{pan: [1, 1], key: zoom-in}]\n", "exactly one"},
		{"no action", "name: a\nsteps: [{}]\n", "exactly one"},
		{"key", "name: a\nsteps: [{key: jump}]\n", "unknown key"},
		{"point", "name: a\nsteps: [{magnify: {by: 1, at: [1]}}]\n", "magnify"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.in))
			if err == nil {
				t.Fatal("missing error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestEncodeLoad(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, orig := range All[category] {
			var buf bytes.Buffer
			if err := Encode(&buf, &orig); err != nil {
				t.Fatalf("%s: %v", orig.Name, err)
			}
			s, err := Load(&buf)
			if err != nil {
				t.Fatalf("%s: %v\n%s", orig.Name, err, buf.String())
			}

			c1 := viewport.New(nil)
			orig.Play(c1)
			c2 := viewport.New(nil)
			s.Play(c2)
			if c1.State() != c2.State() {
				t.Errorf("%s: replay gave %v, want %v", orig.Name, c2.State(), c1.State())
			}
			if len(s.Items) != len(orig.Items) {
				t.Errorf("%s: %d items, want %d", orig.Name, len(s.Items), len(orig.Items))
				continue
			}
			for i := range s.Items {
				if s.Items[i] != orig.Items[i] {
					t.Errorf("%s: item %d = %+v, want %+v", orig.Name, i, s.Items[i], orig.Items[i])
				}
			}
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	seen := map[string]bool{}
	for category, scenes := range All {
		for _, s := range scenes {
			if !validName.MatchString(s.Name) {
				t.Errorf("%s: invalid name %q", category, s.Name)
			}
			full := category + "_" + s.Name
			if seen[full] {
				t.Errorf("duplicate scene %s", full)
			}
			seen[full] = true
		}
	}
}

func TestPlayFitAll(t *testing.T) {
	s := fitScenes[0]
	c := viewport.New(nil)
	s.Play(c)

	b, _ := s.Bounds()
	if b != (rect.Rect{LLx: 100, LLy: 10, URx: 700, URy: 500}) {
		t.Fatalf("bounds = %v", b)
	}

	// 560/490 < 760/600, so the height limits the scale
	if got := c.Scale(); math.Abs(got-560.0/490) > 1e-9 {
		t.Errorf("scale = %g", got)
	}
	mid := viewport.CanvasToScreen(c.State(), vec.Vec2{X: 400, Y: 255})
	if math.Abs(mid.X-400) > 1e-9 || math.Abs(mid.Y-300) > 1e-9 {
		t.Errorf("bounds centre at %v", mid)
	}
}

func TestPlayDegenerateFit(t *testing.T) {
	s := fitScenes[2]
	c := viewport.New(nil)
	s.Play(c)
	if c.Scale() != 1 || c.Offset() != (vec.Vec2{}) {
		t.Errorf("degenerate fit changed the view: %v", c.State())
	}
}

func TestPlayClamped(t *testing.T) {
	c := viewport.New(nil)
	zoomScenes[3].Play(c)
	if c.Scale() != viewport.DefaultMaxScale {
		t.Errorf("scale = %g", c.Scale())
	}
}

func TestBoundsEmpty(t *testing.T) {
	var s Scene
	if _, ok := s.Bounds(); ok {
		t.Error("empty scene has bounds")
	}

	// fitting an empty scene leaves the view alone
	s.Steps = []Step{Fit{}}
	s.Width, s.Height = 100, 100
	c := viewport.New(nil)
	s.Play(c)
	if c.Scale() != 1 {
		t.Errorf("scale = %g", c.Scale())
	}
}

func TestItemMove(t *testing.T) {
	it := NewItem("x", color.RGBA{}, 10, 20, 30, 40)
	it.MoveTo(vec.Vec2{X: -5, Y: 5})
	if it.Bounds != (rect.Rect{LLx: -5, LLy: 5, URx: 25, URy: 45}) {
		t.Errorf("bounds = %v", it.Bounds)
	}
	if it.Position() != (vec.Vec2{X: -5, Y: 5}) {
		t.Errorf("position = %v", it.Position())
	}
}

func TestOutline(t *testing.T) {
	it := Item{Bounds: rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 20}, Shape: ShapeDiamond}
	p := it.Outline()
	want := []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose}
	if !slices.Equal(p.Cmds, want) {
		t.Errorf("commands = %v", p.Cmds)
	}
	if p.Coords[0] != (vec.Vec2{X: 5, Y: 0}) || p.Coords[1] != (vec.Vec2{X: 10, Y: 10}) {
		t.Errorf("coords = %v", p.Coords)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("fit_fit_one")
	if !ok || s.Name != "fit_one" || s.Width != 640 {
		t.Errorf("Lookup = %v, %t", s, ok)
	}
	for _, bad := range []string{"", "fit", "fit_", "nope_boxes"} {
		if _, ok := Lookup(bad); ok {
			t.Errorf("%q found", bad)
		}
	}
}
