package api

import (
	"time"

	"github.com/rpupo63/project-aoi-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		indexHandler:   newIndexHandler(db, startupTime),
		projectHandler: newProjectHandler(),
	}
}
