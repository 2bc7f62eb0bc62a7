package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/food-delivery/internal/config"
	"github.com/vasiliy-maslov/food-delivery/internal/console"
	"github.com/vasiliy-maslov/food-delivery/internal/food"
	"github.com/vasiliy-maslov/food-delivery/internal/seed"
)

func main() {
	envPath := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogger(cfg, os.Stderr)
	log.Debug().Interface("config_loaded", cfg).Msg("Configuration loaded")

	registry, err := newRegistry(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed registry")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	order, err := console.NewSession(registry, os.Stdin, os.Stdout).Run(ctx)
	switch {
	case err == nil:
		log.Info().Int("order_id", order.ID).Stringer("reference", order.Reference).Msg("Order completed")
	case console.IsAborted(err):
		log.Info().Err(err).Msg("Session ended")
	case errors.Is(err, context.Canceled):
		log.Info().Msg("Session interrupted")
	default:
		stop()
		log.Fatal().Err(err).Msg("Session failed")
	}
}

func setupLogger(cfg *config.Config, w io.Writer) {
	zerolog.SetGlobalLevel(cfg.Log.Level)

	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
	log.Logger = log.With().Str("service", cfg.App.Name).Logger()
}

func newRegistry(cfg *config.Config) (*food.Registry, error) {
	catalog := seed.Default()
	if cfg.Seed.Path != "" {
		loaded, err := seed.LoadFile(cfg.Seed.Path)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	registry := food.NewRegistry()
	if err := seed.Apply(registry, catalog); err != nil {
		return nil, err
	}

	return registry, nil
}
