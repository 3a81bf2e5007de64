// Command canvastui shows a canvas scene in the terminal and lets the user
// pan and zoom it with the keyboard and the mouse.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"seehuhn.de/go/viewport"
	"seehuhn.de/go/viewport/scene"
)

func main() {
	var sceneFile, builtin, logFile string
	var minScale, maxScale float64

	rootCmd := &cobra.Command{
		Use:   "canvastui",
		Short: "Pan and zoom a canvas scene in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				f, err := os.Create(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
				viewport.SetLogger(logger)
			}

			var s *scene.Scene
			if sceneFile != "" {
				var err error
				s, err = scene.LoadFile(sceneFile)
				if err != nil {
					return err
				}
			} else {
				var ok bool
				s, ok = scene.Lookup(builtin)
				if !ok {
					return fmt.Errorf("unknown built-in scene %q", builtin)
				}
			}

			m := newModel(s, &viewport.Options{MinScale: minScale, MaxScale: maxScale})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&sceneFile, "scene", "s", "", "YAML scene file")
	rootCmd.Flags().StringVarP(&builtin, "builtin", "b", "basic_boxes", "built-in scene")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write viewport diagnostics to this file")
	rootCmd.Flags().Float64Var(&minScale, "min-scale", viewport.DefaultMinScale, "minimum zoom factor")
	rootCmd.Flags().Float64Var(&maxScale, "max-scale", viewport.DefaultMaxScale, "maximum zoom factor")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
