package cmd

import (
	"fmt"

	"github.com/brk3/mindtrack/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for both client
and server if available.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Client Version: %s\n", versioninfo.Version)

		serverVersion, err := newClient().Version(cmd.Context())
		if err != nil {
			fmt.Fprintln(out, "Error fetching server version:", err)
			return
		}
		fmt.Fprintf(out, "Server Version: %s\n", serverVersion.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
