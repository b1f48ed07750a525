package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/generator"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/scaffold"
	"github.com/tristendillon/easyroutes/core/writer"
)

var dryRun bool
var skipInstall bool

var generateCmd = &cobra.Command{
	Use:   "generate [config]",
	Short: "Generates components and the router from the routes file",
	Long: `Generates one component per route (existing files are left alone), then
rewrites App and main. The routes file defaults to routes.yaml; .json is also
accepted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("generate called")
		dir, cfg, err := loadProject()
		if err != nil {
			return err
		}

		opts := generateOptions{dryRun: dryRun, skipInstall: skipInstall, runner: scaffold.NewExecRunner()}
		report, manifest, err := runGenerate(cmd.Context(), dir, cfg, routesPath(dir, cfg, args), opts)
		if err != nil {
			return err
		}

		if manifest != nil {
			logger.Info("Dry run: %d files would be written", len(manifest.Files()))
			for _, f := range manifest.Files() {
				fmt.Printf("  %s\n", f)
			}
			return nil
		}

		fmt.Printf("✅ Generated %d components (%d already existed)\n", len(report.Created), len(report.Skipped))
		return nil
	},
}

type generateOptions struct {
	dryRun      bool
	skipInstall bool
	runner      scaffold.Runner
}

// runGenerate checks the host project, ensures index.html, then generates.
// On a dry run nothing reaches disk and the overlay holding the would-be
// writes is returned.
func runGenerate(ctx context.Context, dir string, cfg *config.Config, configPath string, opts generateOptions) (*generator.Report, *writer.OverlayFileSystem, error) {
	var fsys writer.FileSystem = writer.NewOSFileSystem(dir)
	var overlay *writer.OverlayFileSystem
	if opts.dryRun {
		overlay = writer.NewOverlayFileSystem(fsys)
		fsys = overlay
	}

	s := scaffold.New(dir, cfg, fsys, opts.runner)
	if opts.skipInstall || opts.dryRun {
		if err := s.CheckPackageJSON(); err != nil {
			return nil, nil, err
		}
	} else if err := s.CheckAndInstall(ctx); err != nil {
		return nil, nil, err
	}

	if err := s.EnsureIndexHTML(); err != nil {
		return nil, nil, err
	}

	report, err := generator.NewRouteGenerator(cfg, fsys).GenerateRouteTree(ctx, configPath)
	if err != nil {
		return nil, nil, err
	}
	return report, overlay, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the files that would be written without touching disk")
	generateCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "Check package.json but do not install npm packages")
}
