package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"seehuhn.de/go/viewport/scene"
)

func newExportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in scenes as YAML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportAll(dir)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "scenes", "output directory")
	return cmd
}

func exportAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, category := range slices.Sorted(maps.Keys(scene.All)) {
		for _, s := range scene.All[category] {
			name := category + "_" + s.Name
			fname := filepath.Join(dir, name+".yaml")
			if err := exportScene(fname, &s); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			slog.Debug("exported", "scene", name, "file", fname)
		}
	}
	return nil
}

func exportScene(fname string, s *scene.Scene) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := scene.Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
