package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var motivateCmd = &cobra.Command{
	Use:   "motivate",
	Short: "Print a message for your current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newClient().GetMotivation(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", m.Emoji, m.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(motivateCmd)
}
