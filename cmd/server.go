package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brk3/mindtrack/internal/config"
	"github.com/brk3/mindtrack/internal/logger"
	"github.com/brk3/mindtrack/internal/server"
	"github.com/brk3/mindtrack/internal/storage"
	"github.com/brk3/mindtrack/internal/storage/bolt"
	"github.com/brk3/mindtrack/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	serverAddr    string
	serverDBPath  string
	serverStorage string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serverAddr != "" {
			cfg.Addr = serverAddr
		}
		if serverDBPath != "" {
			cfg.DBPath = serverDBPath
		}
		if serverStorage != "" {
			cfg.Storage = serverStorage
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

func init() {
	serverCmd.Flags().StringVar(&serverAddr, "addr", "", "listen address (overrides config)")
	serverCmd.Flags().StringVar(&serverDBPath, "db", "", "database path (overrides config)")
	serverCmd.Flags().StringVar(&serverStorage, "storage", "", "storage backend: sqlite or bolt")
	rootCmd.AddCommand(serverCmd)
}

func openStore(c *config.Config) (storage.Store, error) {
	switch c.Storage {
	case "sqlite":
		return sqlite.Open(c.DBPath)
	case "bolt":
		return bolt.Open(c.DBPath)
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.Storage)
}

func runServer(ctx context.Context, c *config.Config) error {
	store, err := openStore(c)
	if err != nil {
		return fmt.Errorf("opening %s store at %s: %w", c.Storage, c.DBPath, err)
	}
	defer store.Close()

	added, err := storage.EnsureDefaultHabits(store)
	if err != nil {
		return err
	}
	if added > 0 {
		logger.Info("Added default habits", "count", added)
	}

	s, err := server.New(c, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", c.Addr, "storage", c.Storage, "db_path", c.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
