package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-aoi-backend/database"
	"github.com/rpupo63/project-aoi-backend/errs"
	"github.com/rpupo63/project-aoi-backend/models"
)

const welcomeMessage = "Welcome to my solution to the Orbify backend task!"

type indexHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newIndexHandler(db database.Database, startupTime time.Time) indexHandler {
	logger := log.With().Str("handlerName", "indexHandler").Logger()

	return indexHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    db,
		startupTime: startupTime,
	}
}

// welcome
// @Summary Welcome message
// @Produce json
// @Success 200 {object} models.Message
// @Router / [get]
func (h indexHandler) welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, models.Message{Message: welcomeMessage})
	}
}

// health reports whether the database answers a ping
// @Summary Health check
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} ErrorResponse
// @Router /healthz [get]
func (h indexHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.database.Ping(ctx); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseConnectionError(err))
			return
		}

		h.responder.WriteJSON(w, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

// notFound and methodNotAllowed keep unmatched requests on the JSON error shape
func (h indexHandler) notFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteError(w, errs.NewNotFoundError("Not Found"))
	}
}

func (h indexHandler) methodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "Method Not Allowed"))
	}
}
