package cmd

import (
	"fmt"
	"time"

	"github.com/brk3/mindtrack/internal/nudge"
	"github.com/brk3/mindtrack/internal/nudge/resend"
	"github.com/spf13/cobra"
)

var nudgeThreshold int

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Email a reminder when the current streak is about to expire",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("MINDTRACK_RESEND_API_KEY environment variable is not set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("MINDTRACK_NOTIFY_EMAIL environment variable is not set")
		}
		if cmd.Flags().Changed("threshold") {
			cfg.Nudge.ThresholdHours = nudgeThreshold
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		n := &resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
		sent, err := nudge.Nudge(cmd.Context(), newClient(), n, cfg.Nudge.ThresholdHours, time.Now().In(loc))
		if err != nil {
			return err
		}
		if sent {
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder sent to %s\n", cfg.Nudge.Email)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Streak is safe, no reminder needed")
		}
		return nil
	},
}

func init() {
	nudgeCmd.Flags().IntVar(&nudgeThreshold, "threshold", 0, "only nudge when at most this many hours are left today")
	rootCmd.AddCommand(nudgeCmd)
}
