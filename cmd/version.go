package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/easyroutes/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of easyroutes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("easyroutes %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
