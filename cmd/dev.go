package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/generator"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/shared"
	"github.com/tristendillon/easyroutes/core/watcher"
	"github.com/tristendillon/easyroutes/core/writer"
)

var devCmd = &cobra.Command{
	Use:   "dev [config]",
	Short: "Generates, then regenerates whenever the routes file changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, cfg, err := loadProject()
		if err != nil {
			return err
		}

		configPath := routesPath(dir, cfg, args)
		patterns, err := watchPatterns(dir, configPath, cfg.Watch.Include)
		if err != nil {
			return err
		}

		rg := generator.NewRouteGenerator(cfg, writer.NewOSFileSystem(dir))
		generate := func(ctx context.Context) error {
			_, err := rg.GenerateRouteTree(ctx, configPath)
			return err
		}

		if err := generate(cmd.Context()); err != nil {
			return err
		}
		// Only the first run prints the full tree.
		rg.TreeLevel = logger.DEBUG

		fw, err := watcher.NewFileWatcher(dir, patterns, cfg.Debounce(), generate)
		if err != nil {
			return err
		}
		return fw.Watch(cmd.Context())
	},
}

// watchPatterns returns the routes file (relative to dir) followed by include.
// The routes file must live under dir, otherwise the watcher would have to
// register dir's parents.
func watchPatterns(dir, configPath string, include []string) ([]string, error) {
	rel, err := filepath.Rel(dir, configPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		err := fmt.Errorf("%w: routes file %s is outside %s", shared.ErrMissingPrecondition, configPath, dir)
		return nil, shared.WithHint(err, "run dev from the project that contains the routes file, or pass --dir")
	}
	return append([]string{filepath.ToSlash(rel)}, include...), nil
}

func init() {
	rootCmd.AddCommand(devCmd)
}
