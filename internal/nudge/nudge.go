// Package nudge decides whether the current streak is about to lapse and
// sends a reminder when it is.
package nudge

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brk3/mindtrack/internal/logger"
)

type Risk struct {
	Streak    int
	HoursLeft int
	AtRisk    bool
}

// Check reports whether the current streak ends at midnight unless something
// is logged today. now must already be in the user's timezone.
func Check(ctx context.Context, q Querier, now time.Time) (Risk, error) {
	st, err := q.GetStats(ctx)
	if err != nil {
		return Risk{}, fmt.Errorf("getting stats: %w", err)
	}

	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	r := Risk{
		Streak:    st.Streak,
		HoursLeft: int(math.Ceil(midnight.Sub(now).Hours())),
	}
	if st.Streak == 0 {
		return r, nil
	}

	today, err := q.GetTodayLogs(ctx)
	if err != nil {
		return Risk{}, fmt.Errorf("getting today's logs: %w", err)
	}
	r.AtRisk = len(today) == 0
	return r, nil
}

// Nudge notifies when the streak is at risk and no more than thresholdHours
// remain. It reports whether a notification was sent.
func Nudge(ctx context.Context, q Querier, n Notifier, thresholdHours int, now time.Time) (bool, error) {
	r, err := Check(ctx, q, now)
	if err != nil {
		return false, err
	}
	if !r.AtRisk || r.HoursLeft > thresholdHours {
		logger.Debug("No nudge needed", "streak", r.Streak, "hours_left", r.HoursLeft, "at_risk", r.AtRisk)
		return false, nil
	}

	logger.Info("Streak at risk, sending nudge", "streak", r.Streak, "hours_left", r.HoursLeft)
	if err := n.SendNudge(r.Streak, r.HoursLeft); err != nil {
		return false, fmt.Errorf("sending nudge: %w", err)
	}
	return true, nil
}
