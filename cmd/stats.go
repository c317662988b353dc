package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient().GetStats(cmd.Context())
		if err != nil {
			return err
		}
		best := st.BestHabit
		if best == "" {
			best = "None yet"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current streak: %d %s\n", st.Streak, st.StreakEmoji)
		fmt.Fprintf(out, "Longest streak: %d\n", st.LongestStreak)
		fmt.Fprintf(out, "Days logged:    %d\n", st.TotalDays)
		fmt.Fprintf(out, "Habits done:    %d\n", st.TotalHabitsCompleted)
		fmt.Fprintf(out, "Best habit:     %s\n", best)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
