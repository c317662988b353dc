package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List every logged habit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := newClient().GetLogs(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(logs) == 0 {
			fmt.Fprintln(out, "Nothing logged yet")
			return nil
		}
		for _, e := range logs {
			fmt.Fprintf(out, "%s  %s\n", e.Date, e.Habit)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
