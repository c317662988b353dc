package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brk3/mindtrack/internal/config"
	"github.com/brk3/mindtrack/internal/server"
	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/internal/storage/sqlite"
	"github.com/brk3/mindtrack/pkg/habit"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if _, err := storage.EnsureDefaultHabits(st); err != nil {
		t.Fatalf("seeding defaults: %v", err)
	}

	c := config.Default()
	c.Timezone = "UTC"
	s, err := server.New(c, st)
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLogThenStats(t *testing.T) {
	ts := newBackend(t)
	today := time.Now().UTC().Format(habit.DateLayout)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(habit.DateLayout)

	for _, d := range []string{yesterday, today} {
		out, err := run("--api-base", ts.URL, "log", "--date", d, "water")
		if err != nil {
			t.Fatalf("log failed: %v (%s)", err, out)
		}
		if !strings.Contains(out, "Successfully logged 1 habits!") {
			t.Fatalf("unexpected log output %q", out)
		}
	}

	out, err := run("--api-base", ts.URL, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Current streak: 2") || !strings.Contains(out, "Best habit:     water") {
		t.Fatalf("unexpected stats output %q", out)
	}

	out, err = run("--api-base", ts.URL, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if strings.Count(out, "water") != 2 {
		t.Fatalf("unexpected logs output %q", out)
	}

	out, err = run("--api-base", ts.URL, "motivate")
	if err != nil {
		t.Fatalf("motivate failed: %v", err)
	}
	if !strings.Contains(out, "Day 2!") {
		t.Fatalf("unexpected motivation %q", out)
	}
}

func TestLogCommand_InvalidArgs(t *testing.T) {
	ts := newBackend(t)
	if _, err := run("--api-base", ts.URL, "log"); err == nil {
		t.Error("Expected error due to missing args")
	}
}

func TestLogCommand_BadDate(t *testing.T) {
	ts := newBackend(t)
	out, err := run("--api-base", ts.URL, "log", "--date", "yesterday", "water")
	if err == nil {
		t.Fatalf("expected error for bad date, got output %q", out)
	}
	if !strings.Contains(err.Error(), "bad date") {
		t.Fatalf("error %q does not explain the problem", err)
	}
}

func TestSuggestCommand_Defaults(t *testing.T) {
	ts := newBackend(t)
	out, err := run("--api-base", ts.URL, "suggest", "--window", "7")
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	for _, name := range habit.DefaultHabits {
		if !strings.Contains(out, name) {
			t.Errorf("suggestions %q missing default %q", out, name)
		}
	}
}

func TestHabitsCommands(t *testing.T) {
	ts := newBackend(t)

	out, err := run("--api-base", ts.URL, "habits", "add", "Meditate")
	if err != nil {
		t.Fatalf("habits add failed: %v", err)
	}
	if !strings.Contains(out, "Meditate") || strings.Count(out, "(default)") != len(habit.DefaultHabits) {
		t.Fatalf("unexpected habits output %q", out)
	}

	if _, err := run("--api-base", ts.URL, "habits", "add", "Meditate"); err == nil {
		t.Fatal("expected duplicate habit error")
	}

	if _, err := run("--api-base", ts.URL, "habits", "rm", "no-such-id"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestVersionCommand(t *testing.T) {
	ts := newBackend(t)
	out, err := run("--api-base", ts.URL, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "Client Version:") || !strings.Contains(out, "Server Version:") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindtrack.yaml")
	if _, err := run("config", "init", path); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if _, err := run("config", "init", path); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
