package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/scaffold"
	"github.com/tristendillon/easyroutes/core/writer"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up an easyroutes project",
	Long: `Writes an example routes file, the source directory and a vite config, and
adds the dev/build/preview scripts to package.json. Requires an existing
package.json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir, cfg, err := loadProject()
		if err != nil {
			return err
		}

		s := scaffold.New(dir, cfg, writer.NewOSFileSystem(dir), scaffold.NewExecRunner())
		if err := s.Init(cmd.Context(), force); err != nil {
			return fmt.Errorf("failed to initialize project: %w", err)
		}

		fmt.Print(nextSteps(filepath.Base(cfg.RoutesFile), cfg.PackageManager))
		return nil
	},
}

func nextSteps(routesFile, packageManager string) string {
	return fmt.Sprintf(dedent.Dedent(`
		✅ Initialization complete!

		Next steps:
		  1. Edit %s to define your routes
		  2. Run: easyroutes generate
		  3. Run: %s run dev
	`), routesFile, packageManager)
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing routes file with the example")
}
