package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rpupo63/project-aoi-backend/errs"
)

const maxBodyBytes int64 = 1 << 20

// readBody reads the whole request body, capped at maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxBodyBytes)
		}
		return nil, errs.NewBadRequestError("failed to read request body")
	}
	return body, nil
}

// urlParam returns a decoded path parameter. chi matches on RawPath when the
// request has one, in which case the captured value is still escaped.
func urlParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// projectIDParam parses the {project_id} path segment.
func projectIDParam(r *http.Request) (uuid.UUID, error) {
	raw := urlParam(r, "project_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidPathParamError("project_id", "value is not a valid uuid")
	}
	return id, nil
}
