package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/preview"
	"seehuhn.de/go/viewport/scene"
)

// writeFunc writes the visible region of a scene to a file.
type writeFunc func(fname string, st viewport.State, s *scene.Scene) error

func newImageCommand(use, short string, write writeFunc) *cobra.Command {
	var sf sceneFlags
	var output string
	var watch bool
	var minScale, maxScale float64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "out." + use
			}
			opts := &viewport.Options{MinScale: minScale, MaxScale: maxScale}
			snap := func() error {
				s, err := sf.load()
				if err != nil {
					return err
				}
				return snapshot(s, opts, output, write)
			}

			if watch && sf.file == "" {
				return fmt.Errorf("--watch needs a scene file")
			}
			err := snap()
			if !watch {
				return err
			}
			if err != nil {
				slog.Error("render failed", "err", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return watchFile(ctx, sf.file, func() {
				if err := snap(); err != nil {
					slog.Error("render failed", "err", err)
				}
			})
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default \"out."+use+"\")")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the scene file changes")
	cmd.Flags().Float64Var(&minScale, "min-scale", viewport.DefaultMinScale, "minimum zoom factor")
	cmd.Flags().Float64Var(&maxScale, "max-scale", viewport.DefaultMaxScale, "maximum zoom factor")
	return cmd
}

// snapshot replays the steps of s on a new controller and writes the
// result.
func snapshot(s *scene.Scene, opts *viewport.Options, output string, write writeFunc) error {
	c := viewport.New(opts)
	s.Play(c)
	st := c.State()
	if err := write(output, st, s); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}
	slog.Info("wrote snapshot",
		"scene", s.Name,
		"file", output,
		"offset", st.Offset,
		"scale", st.Scale)
	return nil
}

func writePNG(fname string, st viewport.State, s *scene.Scene) error {
	w, h := int(st.Frame.Width), int(st.Frame.Height)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty frame %dx%d", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := preview.NewRenderer().Render(img, st, s.Items)
	slog.Debug("rendered", "items", n, "culled", len(s.Items)-n)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePDF(fname string, st viewport.State, s *scene.Scene) error {
	return preview.WritePDF(fname, st, s.Items)
}
