package habit

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

// LogEntry records one habit done on one calendar date.
type LogEntry struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Habit     string `json:"habit"`
	CreatedAt int64  `json:"created_at"`
}

// Habit is an entry in the catalog of trackable habits.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsDeletable bool   `json:"is_deletable"`
	CreatedAt   int64  `json:"created_at"`
}

type Stats struct {
	Streak               int    `json:"streak"`
	LongestStreak        int    `json:"longest_streak"`
	TotalDays            int    `json:"total_days"`
	TotalHabitsCompleted int    `json:"total_habits_completed"`
	BestHabit            string `json:"best_habit"`
	StreakEmoji          string `json:"streak_emoji"`
	LastLogged           string `json:"last_logged,omitempty"`
}

// DefaultHabits are seeded into an empty catalog and cannot be deleted.
var DefaultHabits = []string{
	"Drink 8 glasses of water",
	"Read for 20 minutes",
	"Go for a 15-min walk",
}
