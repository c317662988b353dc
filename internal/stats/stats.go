// Package stats derives streaks, totals, motivation and suggestions from the
// full set of log entries. Everything here is pure: callers pass "today".
package stats

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/brk3/mindtrack/pkg/habit"
)

const daySec int64 = 24 * 60 * 60

// DayNumber converts a YYYY-MM-DD date to days since the Unix epoch.
func DayNumber(date string) (int64, error) {
	t, err := time.Parse(habit.DateLayout, date)
	if err != nil {
		return 0, err
	}
	return t.Unix() / daySec, nil
}

// Today returns the day number of now in loc.
func Today(now time.Time, loc *time.Location) int64 {
	if loc == nil {
		loc = time.UTC
	}
	d, _ := DayNumber(now.In(loc).Format(habit.DateLayout))
	return d
}

// DaysLogged returns the distinct day numbers with at least one entry,
// ascending. Entries with malformed dates are ignored.
func DaysLogged(entries []habit.LogEntry) []int64 {
	uniq := make(map[int64]struct{}, len(entries))
	for i := range entries {
		d, err := DayNumber(entries[i].Date)
		if err != nil {
			continue
		}
		uniq[d] = struct{}{}
	}

	days := make([]int64, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// CurrentStreak counts consecutive days ending at the most recent logged day
// that is not after today. The streak is only live if that day is today or
// yesterday; a day that has not finished yet does not break it.
func CurrentStreak(days []int64, today int64) int {
	desc := upTo(days, today)
	if len(desc) == 0 {
		return 0
	}
	slices.Sort(desc)
	desc = slices.Compact(desc)
	slices.Reverse(desc)

	if desc[0] != today && desc[0] != today-1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(desc)-1; i++ {
		if desc[i]-desc[i+1] != 1 {
			break
		}
		streak++
	}
	return streak
}

// upTo returns a copy of days without any day after today.
func upTo(days []int64, today int64) []int64 {
	out := make([]int64, 0, len(days))
	for _, d := range days {
		if d <= today {
			out = append(out, d)
		}
	}
	return out
}

func LongestStreak(days []int64) int {
	if len(days) == 0 {
		return 0
	}
	asc := slices.Clone(days)
	slices.Sort(asc)
	asc = slices.Compact(asc)

	longest, run := 1, 1
	for i := 1; i < len(asc); i++ {
		if asc[i]-asc[i-1] == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}

// BestHabit returns the most logged habit. On a tie the habit whose first
// entry sorts earliest by (date, id) wins.
func BestHabit(entries []habit.LogEntry) string {
	ordered := sortedEntries(entries)

	counts := make(map[string]int)
	var order []string
	for _, e := range ordered {
		if _, seen := counts[e.Habit]; !seen {
			order = append(order, e.Habit)
		}
		counts[e.Habit]++
	}

	best, bestCount := "", 0
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

// Motivation maps a streak length to a fixed message for its bucket.
func Motivation(streak int) string {
	switch {
	case streak <= 0:
		return "The journey of a thousand miles begins with one step. Let's log Day 1!"
	case streak <= 3:
		return fmt.Sprintf("Day %d! Great start. Keep the momentum going.", streak)
	case streak <= 7:
		return fmt.Sprintf("%d days in a row! You're on fire!", streak)
	default:
		return fmt.Sprintf("Wow, %d days! You've made this a real habit.", streak)
	}
}

func Emoji(streak int) string {
	switch {
	case streak <= 0:
		return "😔"
	case streak <= 3:
		return "😊"
	case streak <= 7:
		return "🔥"
	default:
		return "🏆"
	}
}

// Suggest returns habits that were logged at some point but not within the
// last window days (today included), least recently logged first. When no
// such habit exists it falls back to defaults, still excluding anything
// logged inside the window.
func Suggest(entries []habit.LogEntry, today int64, window int, defaults []string) []string {
	if window < 1 {
		window = 1
	}
	cutoff := today - int64(window) + 1

	lastSeen := make(map[string]int64)
	for i := range entries {
		d, err := DayNumber(entries[i].Date)
		if err != nil {
			continue
		}
		if prev, ok := lastSeen[entries[i].Habit]; !ok || d > prev {
			lastSeen[entries[i].Habit] = d
		}
	}

	recent := func(name string) bool {
		d, ok := lastSeen[name]
		return ok && d >= cutoff
	}

	out := []string{}
	for name := range lastSeen {
		if !recent(name) {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if lastSeen[out[i]] != lastSeen[out[j]] {
			return lastSeen[out[i]] < lastSeen[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > 0 {
		return out
	}

	for _, name := range defaults {
		if !recent(name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Compute assembles the stats view for entries as of today. Days after today
// count towards the totals but never towards streaks or last_logged.
func Compute(entries []habit.LogEntry, today int64) habit.Stats {
	days := DaysLogged(entries)
	streak := CurrentStreak(days, today)
	past := upTo(days, today)

	s := habit.Stats{
		Streak:               streak,
		LongestStreak:        LongestStreak(past),
		TotalDays:            len(days),
		TotalHabitsCompleted: len(entries),
		BestHabit:            BestHabit(entries),
		StreakEmoji:          Emoji(streak),
	}
	if len(past) > 0 {
		s.LastLogged = time.Unix(past[len(past)-1]*daySec, 0).UTC().Format(habit.DateLayout)
	}
	return s
}

func sortedEntries(entries []habit.LogEntry) []habit.LogEntry {
	out := slices.Clone(entries)
	SortEntries(out)
	return out
}

// SortEntries orders entries by (date, id) in place.
func SortEntries(entries []habit.LogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].ID < entries[j].ID
	})
}
