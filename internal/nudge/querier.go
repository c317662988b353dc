package nudge

import (
	"context"

	"github.com/brk3/mindtrack/pkg/habit"
)

type Querier interface {
	GetStats(ctx context.Context) (*habit.Stats, error)
	GetTodayLogs(ctx context.Context) ([]string, error)
}

type Notifier interface {
	SendNudge(streak, hoursLeft int) error
}
