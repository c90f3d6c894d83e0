package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/project-aoi-backend/api"
	"github.com/rpupo63/project-aoi-backend/config"
	"github.com/rpupo63/project-aoi-backend/database"
	"github.com/rpupo63/project-aoi-backend/logging"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	logCloser := logging.Setup(settings)
	defer logCloser.Close()

	log.Info().Msg("Initializing app...")

	db, err := database.Open(settings)
	if err != nil {
		return err
	}
	defer db.Close()

	if settings.DBCheckSchema {
		report, err := db.CheckSchema(context.Background())
		if err != nil {
			return err
		}
		log.Info().Str("table", report.Table).Int("unmapped", len(report.Unmapped)).Msg("schema checked")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := api.NewServer(settings, db, registry)

	// Listen for interrupt signals to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, settings.ShutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("Closing server")
	return nil
}
