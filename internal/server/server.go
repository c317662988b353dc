package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brk3/mindtrack/internal/config"
	"github.com/brk3/mindtrack/internal/logger"
	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/pkg/habit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg   *config.Config
	store storage.Store
	loc   *time.Location
	now   func() time.Time
}

func New(cfg *config.Config, store storage.Store) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving timezone: %w", err)
	}
	logger.Info("Creating server", "storage", cfg.Storage, "timezone", loc.String(), "auth_enabled", cfg.AuthToken != "")
	return &Server{
		cfg:   cfg,
		store: store,
		loc:   loc,
		now:   time.Now,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metricsMiddleware)

	r.Get("/", s.home)
	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.AuthToken != "" {
			r.Use(s.authMiddleware)
		}

		r.Post("/log", s.logHabits)
		r.Get("/get_logs", s.getLogs)
		r.Get("/get_today_logs", s.getTodayLogs)
		r.Get("/get_stats", s.getStats)
		r.Get("/get_motivation", s.getMotivation)
		r.Post("/get_suggestion", s.getSuggestion)

		r.Get("/get_habits", s.getHabits)
		r.Post("/add_habit", s.addHabit)
		r.Post("/delete_habit", s.deleteHabit)
	})
	return r
}

func (s *Server) today() string {
	return s.now().In(s.loc).Format(habit.DateLayout)
}
