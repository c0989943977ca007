package cmd

import (
	"github.com/spf13/cobra"

	"github.com/regexle/regexle-go/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the version of regexle and build information.`,
	Run: func(_ *cobra.Command, _ []string) {
		version.PrintVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
