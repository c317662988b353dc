package stats

import (
	"slices"
	"testing"
	"time"

	"github.com/brk3/mindtrack/pkg/habit"
)

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(habit.DateLayout)
}

func entries(habitName string, offsets ...int) []habit.LogEntry {
	var out []habit.LogEntry
	for i, o := range offsets {
		out = append(out, habit.LogEntry{ID: int64(i + 1), Date: day(o), Habit: habitName})
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, Today(now, time.UTC))
	if s.Streak != 0 || s.TotalDays != 0 || s.BestHabit != "" {
		t.Fatalf("got %+v, want zero stats", s)
	}
	if s.LongestStreak != 0 || s.TotalHabitsCompleted != 0 || s.LastLogged != "" {
		t.Fatalf("got %+v, want zero stats", s)
	}
}

func TestCompute_ThreeDaysOfWater(t *testing.T) {
	s := Compute(entries("water", 0, -1, -2), Today(now, time.UTC))
	if s.Streak != 3 {
		t.Errorf("streak=%d want 3", s.Streak)
	}
	if s.TotalDays != 3 {
		t.Errorf("total_days=%d want 3", s.TotalDays)
	}
	if s.BestHabit != "water" {
		t.Errorf("best_habit=%q want water", s.BestHabit)
	}
	if s.LastLogged != day(0) {
		t.Errorf("last_logged=%q want %q", s.LastLogged, day(0))
	}
}

func TestCurrentStreak_RunEndingToday(t *testing.T) {
	today := Today(now, time.UTC)
	for n := 1; n <= 10; n++ {
		var offsets []int
		for i := 0; i < n; i++ {
			offsets = append(offsets, -i)
		}
		got := CurrentStreak(DaysLogged(entries("x", offsets...)), today)
		if got != n {
			t.Fatalf("run of %d: got streak %d", n, got)
		}
	}
}

func TestCurrentStreak_GapResets(t *testing.T) {
	today := Today(now, time.UTC)
	// 0,-1 then a gap at -2, then -3..-6
	days := DaysLogged(entries("x", 0, -1, -3, -4, -5, -6))
	if got := CurrentStreak(days, today); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
	if got := LongestStreak(days); got != 4 {
		t.Fatalf("longest got %d want 4", got)
	}
}

func TestCurrentStreak_YesterdayStillLive(t *testing.T) {
	today := Today(now, time.UTC)
	days := DaysLogged(entries("x", -1, -2))
	if got := CurrentStreak(days, today); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
}

func TestCurrentStreak_Lapsed(t *testing.T) {
	today := Today(now, time.UTC)
	days := DaysLogged(entries("x", -2, -3, -4))
	if got := CurrentStreak(days, today); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

func TestCurrentStreak_FutureEntryIgnored(t *testing.T) {
	today := Today(now, time.UTC)
	days := DaysLogged(entries("water", 0, -1, -2, 10))
	if got := CurrentStreak(days, today); got != 3 {
		t.Fatalf("got %d want 3", got)
	}

	s := Compute(entries("water", 0, -1, -2, 10), today)
	if s.Streak != 3 {
		t.Errorf("streak=%d want 3", s.Streak)
	}
	if s.LastLogged != day(0) {
		t.Errorf("last_logged=%q want %q", s.LastLogged, day(0))
	}
	if s.TotalDays != 4 {
		t.Errorf("total_days=%d want 4", s.TotalDays)
	}
}

func TestCurrentStreak_OnlyFutureEntries(t *testing.T) {
	today := Today(now, time.UTC)
	s := Compute(entries("water", 1, 2), today)
	if s.Streak != 0 || s.LongestStreak != 0 || s.LastLogged != "" {
		t.Fatalf("got %+v, want no streak and no last_logged", s)
	}
}

func TestCurrentStreak_DuplicateEntriesCountOnce(t *testing.T) {
	today := Today(now, time.UTC)
	e := append(entries("water", 0, 0, -1), entries("read", 0, -1)...)
	days := DaysLogged(e)
	if len(days) != 2 {
		t.Fatalf("distinct days=%d want 2", len(days))
	}
	if got := CurrentStreak(days, today); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
}

func TestToday_UsesLocation(t *testing.T) {
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	utcDay := Today(late, time.UTC)
	if got := Today(late, tokyo); got != utcDay+1 {
		t.Fatalf("got %d want %d", got, utcDay+1)
	}
}

func TestDaysLogged_SkipsMalformed(t *testing.T) {
	e := []habit.LogEntry{{Date: "not-a-date", Habit: "x"}, {Date: day(0), Habit: "x"}}
	if got := DaysLogged(e); len(got) != 1 {
		t.Fatalf("got %v want one day", got)
	}
}

func TestBestHabit_UniqueMax(t *testing.T) {
	e := append(entries("read", -3, -2), entries("water", -3, -2, -1)...)
	if got := BestHabit(e); got != "water" {
		t.Fatalf("got %q want water", got)
	}
}

func TestBestHabit_TieGoesToFirstSeen(t *testing.T) {
	e := []habit.LogEntry{
		{ID: 3, Date: day(-1), Habit: "water"},
		{ID: 1, Date: day(-2), Habit: "read"},
		{ID: 2, Date: day(-2), Habit: "water"},
		{ID: 4, Date: day(-1), Habit: "read"},
	}
	if got := BestHabit(e); got != "read" {
		t.Fatalf("got %q want read", got)
	}
}

func TestMotivation_Buckets(t *testing.T) {
	cases := map[int]string{
		0:  "The journey of a thousand miles begins with one step. Let's log Day 1!",
		2:  "Day 2! Great start. Keep the momentum going.",
		5:  "5 days in a row! You're on fire!",
		30: "Wow, 30 days! You've made this a real habit.",
	}
	for streak, want := range cases {
		if got := Motivation(streak); got != want {
			t.Errorf("streak %d: got %q want %q", streak, got, want)
		}
		if Motivation(streak) != Motivation(streak) {
			t.Errorf("streak %d: message is not deterministic", streak)
		}
	}
	if Emoji(0) != "😔" || Emoji(3) != "😊" || Emoji(4) != "🔥" || Emoji(8) != "🏆" {
		t.Error("emoji buckets do not match")
	}
}

func TestSuggest_ExcludesRecent(t *testing.T) {
	today := Today(now, time.UTC)
	e := append(entries("water", 0), entries("read", -10)...)
	e = append(e, entries("walk", -20)...)
	e = append(e, entries("stretch", -6)...)

	got := Suggest(e, today, 7, habit.DefaultHabits)
	want := []string{"walk", "read"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for _, name := range got {
		if name == "water" || name == "stretch" {
			t.Fatalf("suggested %q which was logged inside the window", name)
		}
	}
}

func TestSuggest_FallsBackToDefaults(t *testing.T) {
	today := Today(now, time.UTC)
	e := entries(habit.DefaultHabits[0], 0)

	got := Suggest(e, today, 7, habit.DefaultHabits)
	want := habit.DefaultHabits[1:]
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSuggest_Empty(t *testing.T) {
	got := Suggest(nil, Today(now, time.UTC), 7, habit.DefaultHabits)
	if !slices.Equal(got, habit.DefaultHabits) {
		t.Fatalf("got %v want defaults", got)
	}
}
