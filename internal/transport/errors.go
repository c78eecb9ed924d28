package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/session"
)

// ValidationError reports malformed or missing request fields.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeError translates err to a status code and error body. Internal
// details are logged and never returned.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: validation.Message,
			Field:   validation.Field,
		})
	case errors.Is(err, checklist.ErrInvalidCategory):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_category",
			Message: "category must be one of: Project Setup, Architecture, Features, Testing, Deployment",
			Field:   "category",
		})
	case errors.Is(err, checklist.ErrInvalidItemID):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: "itemId is required",
			Field:   "itemId",
		})
	case errors.Is(err, docs.ErrUnsupportedFormat):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: "format must be one of: markdown, json, html",
			Field:   "format",
		})
	case errors.Is(err, session.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: "session not found",
		})
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "internal server error",
		})
	}
}
