package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/logger"
	"github.com/tristendillon/easyroutes/core/routeconfig"
)

var checkCmd = &cobra.Command{
	Use:   "check [config]",
	Short: "Validates the routes file and prints the route tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, cfg, err := loadProject()
		if err != nil {
			return err
		}

		path := routesPath(dir, cfg, args)
		tree, err := routeconfig.Parse(path)
		if err != nil {
			return err
		}

		tree.PrintTree(filepath.Base(path), logger.INFO)
		for _, dup := range tree.DuplicateComponents() {
			logger.Warn("Component %s is declared more than once", dup)
		}
		fmt.Printf("✅ %s is valid (%d routes)\n", filepath.Base(path), tree.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
