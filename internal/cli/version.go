package cli

import (
	"github.com/spf13/cobra"

	semver "semtrack/pkg/semtrack"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display semtrack version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Print(semver.FullVersionInfo())
	},
}
