package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-aoi-backend/config"
	"github.com/rpupo63/project-aoi-backend/database"
	"github.com/rpupo63/project-aoi-backend/metrics"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, db database.Database, registry *prometheus.Registry) Server {
	// Capture startup time
	startupTime := time.Now()

	router := newRouter(db, registry, withAcceptedOrigins(settings.AcceptedOrigins), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         settings.Addr(),
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: settings.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  settings.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}
}

type router struct {
	acceptedOrigins []string
	startupTime     time.Time
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, registry *prometheus.Registry, opts ...func(*router)) *chi.Mux {
	router := router{
		acceptedOrigins: []string{"*"},
		startupTime:     time.Now(),
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)
	chiRouter.Use(metricsMiddleware(metrics.NewHTTPMetrics(registry)))
	chiRouter.Use(corsMiddleware(router.acceptedOrigins))

	handlers := initializeHandlers(db, router.startupTime)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	setupRoutes(chiRouter, handlers, newSessionMiddleware(db), metricsHandler)

	return chiRouter
}

// Run serves until ctx is cancelled, then shuts down gracefully within timeout.
func (s Server) Run(ctx context.Context, timeout time.Duration) error {
	errChannel := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server started on: %s", s.Addr)
		errChannel <- s.ListenAndServe()
	}()

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.ShutdownGracefully(timeout)
		return nil
	}
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
