package api

import "github.com/rpupo63/project-aoi-backend/errs"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	indexHandler   indexHandler
	projectHandler projectHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Detail string            `json:"detail" example:"Project not found"`
	Status string            `json:"status" example:"error"`
	Field  string            `json:"field,omitempty" example:"project_id"`
	Errors []errs.FieldError `json:"errors,omitempty"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}
