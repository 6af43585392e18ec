package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bensuskins/weekly-planner/internal/config"
	"github.com/bensuskins/weekly-planner/internal/database"
	"github.com/bensuskins/weekly-planner/internal/repository"
	"github.com/bensuskins/weekly-planner/internal/server"
	"github.com/bensuskins/weekly-planner/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	repo := repository.NewResourceRepository(db)

	ctx := context.Background()
	state := store.LoadState(ctx, repo)
	state.FallbackStore = cfg.FallbackStore
	if len(state.Stores) == 0 {
		state.Stores = cfg.Stores
	}

	srv := server.New(state, repo, cfg)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
