package scene

import (
	"image/color"
	"strings"

	"seehuhn.de/go/geom/rect"
)

// All contains the built-in scenes, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]Scene{
	"basic":  basicScenes,
	"zoom":   zoomScenes,
	"fit":    fitScenes,
	"shapes": shapeScenes,
}

var (
	red    = color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	purple = color.RGBA{R: 0x8e, G: 0x24, B: 0xaa, A: 0xff}
	blue   = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	green  = color.RGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}
	orange = color.RGBA{R: 0xfb, G: 0x8c, B: 0x00, A: 0xff}
)

// boxes returns the three boxes of the demo application.
func boxes() []Item {
	return []Item{
		NewItem("Box 1", red, 100, 100, 100, 100),
		NewItem("Box 2", purple, 300, 10, 100, 100),
		NewItem("Box 3", blue, 600, 400, 100, 100),
	}
}

var basicScenes = []Scene{
	{
		Name:   "boxes",
		Width:  800,
		Height: 600,
		Items:  boxes(),
	},
	{
		Name:   "boxes_panned",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Pan{X: -60, Y: 40},
			Scroll{DX: 15, DY: -25},
		},
	},
	{
		Name:   "boxes_resized",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Resize{Width: 320, Height: 240},
		},
	},
}

var zoomScenes = []Scene{
	{
		Name:   "pinch_on_box",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Magnify{By: 0.8, X: 150, Y: 150},
		},
	},
	{
		Name:   "wheel_zoom_out",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Scroll{DY: -120, Zoom: true, X: 400, Y: 300},
		},
	},
	{
		Name:   "keys",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			KeyZoom{In: true},
			KeyZoom{In: true},
			KeyZoom{In: false},
		},
	},
	{
		Name:   "clamped",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Magnify{By: 50, X: 650, Y: 450},
			Pan{X: 200, Y: 0},
		},
	},
}

var fitScenes = []Scene{
	{
		Name:   "fit_all",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Pan{X: 1000, Y: -500},
			Fit{Margin: 20},
		},
	},
	{
		Name:   "fit_one",
		Width:  640,
		Height: 480,
		Items:  boxes(),
		Steps: []Step{
			Fit{Bounds: &rect.Rect{LLx: 300, LLy: 10, URx: 400, URy: 110}},
		},
	},
	{
		Name:   "fit_degenerate",
		Width:  800,
		Height: 600,
		Items:  boxes(),
		Steps: []Step{
			Fit{Bounds: &rect.Rect{LLx: 0, LLy: 0, URx: 0, URy: 100}},
		},
	},
}

var shapeScenes = []Scene{
	{
		Name:   "diamonds",
		Width:  400,
		Height: 300,
		Items: []Item{
			{
				Name:   "Diamond",
				Color:  green,
				Bounds: rect.Rect{LLx: 20, LLy: 20, URx: 180, URy: 180},
				Shape:  ShapeDiamond,
			},
			{
				Name:     "Selected",
				Color:    orange,
				Bounds:   rect.Rect{LLx: 220, LLy: 60, URx: 340, URy: 140},
				Selected: true,
			},
		},
		Steps: []Step{
			Magnify{By: 0.25, X: 200, Y: 150},
		},
	},
}

// Lookup returns the built-in scene with the full name "category_name".
func Lookup(full string) (*Scene, bool) {
	category, name, ok := strings.Cut(full, "_")
	if !ok {
		return nil, false
	}
	for i := range All[category] {
		if s := &All[category][i]; s.Name == name {
			return s, true
		}
	}
	return nil, false
}
