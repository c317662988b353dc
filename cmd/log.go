package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logDate string

var logCmd = &cobra.Command{
	Use:   "log <habit> [habit...]",
	Short: "Log habits as done",
	Long: `The "log" command records one or more habits as done today, or on the
date given with --date (YYYY-MM-DD).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Log(cmd.Context(), logDate, args...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "date to log against (default today on the server)")
	rootCmd.AddCommand(logCmd)
}
