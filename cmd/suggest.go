package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestWindow int

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest habits you have not done lately",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().GetSuggestion(cmd.Context(), suggestWindow)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, s.Suggestion)
		for _, name := range s.Suggestions {
			fmt.Fprintf(out, "  - %s\n", name)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestWindow, "window", 0, "lookback window in days (default from server config)")
	rootCmd.AddCommand(suggestCmd)
}
