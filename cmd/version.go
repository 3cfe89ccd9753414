package cmd

import (
	"github.com/spf13/cobra"

	"criticalsys.net/aztoolkit/internal/message"
	"criticalsys.net/aztoolkit/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aztoolkit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		message.Info("%s", version.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
