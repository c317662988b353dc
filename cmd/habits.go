package cmd

import (
	"fmt"
	"io"

	"github.com/brk3/mindtrack/pkg/habit"
	"github.com/spf13/cobra"
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Manage the habit catalog",
}

var habitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := newClient().ListHabits(cmd.Context())
		if err != nil {
			return err
		}
		printHabits(cmd.OutOrStdout(), habits)
		return nil
	},
}

var habitsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := newClient().AddHabit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printHabits(cmd.OutOrStdout(), habits)
		return nil
	},
}

var habitsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a habit from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := newClient().DeleteHabit(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printHabits(cmd.OutOrStdout(), habits)
		return nil
	},
}

func printHabits(w io.Writer, habits []habit.Habit) {
	for _, h := range habits {
		marker := ""
		if !h.IsDeletable {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s  %s%s\n", h.ID, h.Name, marker)
	}
}

func init() {
	habitsCmd.AddCommand(habitsListCmd, habitsAddCmd, habitsRmCmd)
	rootCmd.AddCommand(habitsCmd)
}
