package nudge

import (
	"context"

	"github.com/brk3/mindtrack/pkg/habit"
)

type mockClient struct {
	stats *habit.Stats
	today []string
	err   error
}

func (f *mockClient) GetStats(ctx context.Context) (*habit.Stats, error) {
	return f.stats, f.err
}

func (f *mockClient) GetTodayLogs(ctx context.Context) ([]string, error) {
	return f.today, f.err
}
