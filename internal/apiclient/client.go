package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brk3/mindtrack/internal/server"
	"github.com/brk3/mindtrack/pkg/habit"
	"github.com/brk3/mindtrack/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(base, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(base, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends body as JSON (when non-nil) and decodes a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e server.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, res.Status, e.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, res.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) Log(ctx context.Context, date string, habits ...string) (*server.LogResponse, error) {
	var out server.LogResponse
	if err := c.do(ctx, http.MethodPost, "/log", server.LogRequest{Date: date, Habits: habits}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLogs(ctx context.Context) ([]habit.LogEntry, error) {
	var out []habit.LogEntry
	err := c.do(ctx, http.MethodGet, "/get_logs", nil, &out)
	return out, err
}

func (c *Client) GetTodayLogs(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/get_today_logs", nil, &out)
	return out, err
}

func (c *Client) GetStats(ctx context.Context) (*habit.Stats, error) {
	var out habit.Stats
	if err := c.do(ctx, http.MethodGet, "/get_stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMotivation(ctx context.Context) (*server.MotivationResponse, error) {
	var out server.MotivationResponse
	if err := c.do(ctx, http.MethodGet, "/get_motivation", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSuggestion(ctx context.Context, windowDays int) (*server.SuggestionResponse, error) {
	var out server.SuggestionResponse
	if err := c.do(ctx, http.MethodPost, "/get_suggestion", server.SuggestionRequest{WindowDays: windowDays}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var out []habit.Habit
	err := c.do(ctx, http.MethodGet, "/get_habits", nil, &out)
	return out, err
}

func (c *Client) AddHabit(ctx context.Context, name string) ([]habit.Habit, error) {
	var out []habit.Habit
	err := c.do(ctx, http.MethodPost, "/add_habit", server.AddHabitRequest{Name: name}, &out)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id string) ([]habit.Habit, error) {
	var out []habit.Habit
	err := c.do(ctx, http.MethodPost, "/delete_habit", server.DeleteHabitRequest{ID: id}, &out)
	return out, err
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if err := c.do(ctx, http.MethodGet, "/version", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
