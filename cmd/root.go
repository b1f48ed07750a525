package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/config"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/shared"
)

var rootCmd = &cobra.Command{
	Use:   "easyroutes",
	Short: "Generate React Router components from a routes file.",
	Long: `easyroutes reads a declarative route tree (routes.yaml or routes.json) and
generates one React component per route, the App router with lazy imports and
top-level navigation, and the main entry point.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

var logfile string
var verbose bool
var workDir string

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		if hint := shared.HintOf(err); hint != "" {
			fmt.Fprintf(os.Stderr, "💡 %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", "", "Project directory (defaults to the working directory)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)
	if logfile == "" {
		return nil
	}
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.AddWriterForAll(f)
	logger.Debug("Logging to %s", logfile)
	return nil
}

// loadProject resolves the project directory and its easyroutes.yaml.
func loadProject() (string, *config.Config, error) {
	dir := workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", workDir, err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, cfg, nil
}

// routesPath picks the routes file: the optional positional argument, else the
// configured default, relative to dir.
func routesPath(dir string, cfg *config.Config, args []string) string {
	p := cfg.RoutesFile
	if len(args) > 0 {
		p = args[0]
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
