// Command canvassnap renders canvas scenes through a viewport.
//
// A scene is either one of the built-in scenes, selected by its full name
// "category_name", or a YAML file. The scene's input steps are replayed
// before the visible region is written as a PNG image or a PDF page.
package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

// sceneFlags selects the input scene.
type sceneFlags struct {
	file    string
	builtin string
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "scene", "s", "", "YAML scene file")
	cmd.Flags().StringVarP(&f.builtin, "builtin", "b", "basic_boxes", "built-in scene (see \"canvassnap list\")")
}

// load returns the selected scene.
func (f *sceneFlags) load() (*scene.Scene, error) {
	if f.file != "" {
		return scene.LoadFile(f.file)
	}
	return builtin(f.builtin)
}

func builtin(full string) (*scene.Scene, error) {
	s, ok := scene.Lookup(full)
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", full)
	}
	return s, nil
}

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "canvassnap",
		Short: "Render canvas scenes through a pan and zoom viewport",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			viewport.SetLogger(logger)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log viewport diagnostics")

	rootCmd.AddCommand(newImageCommand("png", "Render a scene to a PNG image", writePNG))
	rootCmd.AddCommand(newImageCommand("pdf", "Render a scene to a PDF page", writePDF))
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newListCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, category := range slices.Sorted(maps.Keys(scene.All)) {
				for _, s := range scene.All[category] {
					fmt.Fprintf(out, "%s_%s\t%dx%d, %d items, %d steps\n",
						category, s.Name, s.Width, s.Height, len(s.Items), len(s.Steps))
				}
			}
		},
	}
}
