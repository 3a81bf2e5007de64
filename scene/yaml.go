package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/rect"
)

// Default frame size for scene files which do not give one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var validName = regexp.MustCompile(`^[a-z0-9_]+$`)

// yamlScene is the on-disk form of a [Scene].
type yamlScene struct {
	Name   string     `yaml:"name"`
	Width  int        `yaml:"width,omitempty"`
	Height int        `yaml:"height,omitempty"`
	Items  []yamlItem `yaml:"items"`
	Steps  []yamlStep `yaml:"steps,omitempty"`
}

type yamlItem struct {
	ID       string    `yaml:"id,omitempty"`
	Name     string    `yaml:"name"`
	Color    string    `yaml:"color"`
	Rect     []float64 `yaml:"rect,flow"` // x, y, width, height
	Shape    string    `yaml:"shape,omitempty"`
	Selected bool      `yaml:"selected,omitempty"`
}

// yamlStep has exactly one field set.
type yamlStep struct {
	Pan     []float64    `yaml:"pan,omitempty,flow"`
	Magnify *yamlMagnify `yaml:"magnify,omitempty"`
	Scroll  *yamlScroll  `yaml:"scroll,omitempty"`
	Fit     *yamlFit     `yaml:"fit,omitempty"`
	Resize  []float64    `yaml:"resize,omitempty,flow"`
	Key     string       `yaml:"key,omitempty"`
}

type yamlMagnify struct {
	By float64   `yaml:"by"`
	At []float64 `yaml:"at,flow"`
}

type yamlScroll struct {
	DX   float64   `yaml:"dx,omitempty"`
	DY   float64   `yaml:"dy,omitempty"`
	Zoom bool      `yaml:"zoom,omitempty"`
	At   []float64 `yaml:"at,omitempty,flow"`
}

type yamlFit struct {
	Rect   []float64 `yaml:"rect,omitempty,flow"`
	Margin float64   `yaml:"margin,omitempty"`
}

// LoadFile reads a scene from a YAML file.
func LoadFile(fname string) (*Scene, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return s, nil
}

// Load reads a scene from YAML. Unknown keys are an error.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ys yamlScene
	if err := dec.Decode(&ys); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scene file")
		}
		return nil, err
	}
	return ys.scene()
}

func (ys *yamlScene) scene() (*Scene, error) {
	if !validName.MatchString(ys.Name) {
		return nil, fmt.Errorf("invalid scene name %q", ys.Name)
	}
	s := &Scene{
		Name:   ys.Name,
		Width:  ys.Width,
		Height: ys.Height,
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", s.Width, s.Height)
	}

	for i, yi := range ys.Items {
		it, err := yi.item()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		s.Items = append(s.Items, it)
	}
	for i, yst := range ys.Steps {
		st, err := yst.step()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		s.Steps = append(s.Steps, st)
	}
	return s, nil
}

func (yi *yamlItem) item() (Item, error) {
	it := Item{
		Name:     yi.Name,
		Selected: yi.Selected,
	}

	if yi.ID == "" {
		it.ID = uuid.New()
	} else {
		id, err := uuid.Parse(yi.ID)
		if err != nil {
			return Item{}, fmt.Errorf("id: %w", err)
		}
		it.ID = id
	}

	col, err := parseColor(yi.Color)
	if err != nil {
		return Item{}, err
	}
	it.Color = col

	b, err := parseRect(yi.Rect)
	if err != nil {
		return Item{}, err
	}
	it.Bounds = b

	switch yi.Shape {
	case "", "rect":
		it.Shape = ShapeRect
	case "diamond":
		it.Shape = ShapeDiamond
	default:
		return Item{}, fmt.Errorf("unknown shape %q", yi.Shape)
	}
	return it, nil
}

func (yst *yamlStep) step() (Step, error) {
	var steps []Step
	if yst.Pan != nil {
		if len(yst.Pan) != 2 {
			return nil, errors.New("pan needs [x, y]")
		}
		steps = append(steps, Pan{X: yst.Pan[0], Y: yst.Pan[1]})
	}
	if m := yst.Magnify; m != nil {
		x, y, err := parsePoint(m.At)
		if err != nil {
			return nil, fmt.Errorf("magnify: %w", err)
		}
		steps = append(steps, Magnify{By: m.By, X: x, Y: y})
	}
	if sc := yst.Scroll; sc != nil {
		st := Scroll{DX: sc.DX, DY: sc.DY, Zoom: sc.Zoom}
		if sc.At != nil {
			x, y, err := parsePoint(sc.At)
			if err != nil {
				return nil, fmt.Errorf("scroll: %w", err)
			}
			st.X, st.Y = x, y
		}
		steps = append(steps, st)
	}
	if f := yst.Fit; f != nil {
		st := Fit{Margin: f.Margin}
		if f.Rect != nil {
			b, err := parseRect(f.Rect)
			if err != nil {
				return nil, fmt.Errorf("fit: %w", err)
			}
			st.Bounds = &b
		}
		steps = append(steps, st)
	}
	if yst.Resize != nil {
		if len(yst.Resize) != 2 {
			return nil, errors.New("resize needs [width, height]")
		}
		steps = append(steps, Resize{Width: yst.Resize[0], Height: yst.Resize[1]})
	}
	if yst.Key != "" {
		switch yst.Key {
		case "zoom-in":
			steps = append(steps, KeyZoom{In: true})
		case "zoom-out":
			steps = append(steps, KeyZoom{In: false})
		default:
			return nil, fmt.Errorf("unknown key %q", yst.Key)
		}
	}

	if len(steps) != 1 {
		return nil, fmt.Errorf("need exactly one action, found %d", len(steps))
	}
	return steps[0], nil
}

func parsePoint(v []float64) (x, y float64, err error) {
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("point needs 2 coordinates, got %d", len(v))
	}
	return v[0], v[1], nil
}

// parseRect converts [x, y, width, height] to a rectangle.
func parseRect(v []float64) (rect.Rect, error) {
	if len(v) != 4 {
		return rect.Rect{}, fmt.Errorf("rect needs [x, y, width, height], got %d values", len(v))
	}
	if v[2] < 0 || v[3] < 0 {
		return rect.Rect{}, fmt.Errorf("negative rect size %gx%g", v[2], v[3])
	}
	return rect.Rect{LLx: v[0], LLy: v[1], URx: v[0] + v[2], URy: v[1] + v[3]}, nil
}

// parseColor parses "#rrggbb" or "#rrggbbaa".
func parseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func formatColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Encode writes s as YAML in the format read by [Load].
func Encode(w io.Writer, s *Scene) error {
	ys := yamlScene{
		Name:   s.Name,
		Width:  s.Width,
		Height: s.Height,
	}
	for _, it := range s.Items {
		b := it.Bounds
		yi := yamlItem{
			ID:       it.ID.String(),
			Name:     it.Name,
			Color:    formatColor(it.Color),
			Rect:     []float64{b.LLx, b.LLy, b.URx - b.LLx, b.URy - b.LLy},
			Selected: it.Selected,
		}
		if it.Shape != ShapeRect {
			yi.Shape = it.Shape.String()
		}
		ys.Items = append(ys.Items, yi)
	}
	for _, step := range s.Steps {
		var yst yamlStep
		switch st := step.(type) {
		case Pan:
			yst.Pan = []float64{st.X, st.Y}
		case Scroll:
			yst.Scroll = &yamlScroll{DX: st.DX, DY: st.DY, Zoom: st.Zoom}
			if st.X != 0 || st.Y != 0 {
				yst.Scroll.At = []float64{st.X, st.Y}
			}
		case Magnify:
			yst.Magnify = &yamlMagnify{By: st.By, At: []float64{st.X, st.Y}}
		case Fit:
			yst.Fit = &yamlFit{Margin: st.Margin}
			if b := st.Bounds; b != nil {
				yst.Fit.Rect = []float64{b.LLx, b.LLy, b.URx - b.LLx, b.URy - b.LLy}
			}
		case Resize:
			yst.Resize = []float64{st.Width, st.Height}
		case KeyZoom:
			yst.Key = "zoom-out"
			if st.In {
				yst.Key = "zoom-in"
			}
		}
		ys.Steps = append(ys.Steps, yst)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&ys); err != nil {
		return err
	}
	return enc.Close()
}
