// Package main runs the travel-planning agent HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/adapters/llm/openai"
	"github.com/tripflow/tripflow/internal/adapters/repository/memory"
	"github.com/tripflow/tripflow/internal/adapters/repository/postgres"
	"github.com/tripflow/tripflow/internal/adapters/repository/sqlite"
	"github.com/tripflow/tripflow/internal/adapters/search"
	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/app/service"
	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/config"
	"github.com/tripflow/tripflow/internal/core/checkpoint"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Str("backend", cfg.Storage.Backend).Msg("checkpoint store ready")

	searcher := search.NewClient(search.Config{
		APIKey:      cfg.Search.APIKey,
		BaseURL:     cfg.Search.BaseURL,
		Country:     cfg.Search.Country,
		Language:    cfg.Search.Language,
		Currency:    cfg.Search.Currency,
		TravelClass: cfg.Search.TravelClass,
		Stops:       cfg.Search.Stops,
		SortBy:      cfg.Search.SortBy,
		Adults:      cfg.Search.Adults,
	}, log)
	defer searcher.Close()

	reasoner := openai.NewReasoner(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: float32(cfg.OpenAI.Temperature),
	}, log)

	dispatcher := tools.NewDispatcher(searcher, log)
	runner := agent.NewRunner(store, reasoner, dispatcher, log,
		agent.WithMaxIterations(cfg.Agent.MaxIterations))

	srv := service.NewServer(cfg.Server.Addr, runner, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newStore builds the checkpoint store selected by the configuration and
// ensures its schema exists.
func newStore(ctx context.Context, cfg *config.Config) (checkpoint.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		store := postgres.NewStore(pool, nil)
		if err := store.CreateTables(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case "sqlite":
		return sqlite.Open(cfg.Storage.SQLitePath, nil)
	default:
		return memory.NewStore(nil), nil
	}
}
