package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/planwise/internal/domain/checklist"
	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// Sentinel codes returned to clients.
const (
	CodeInvalidCategory   = "INVALID_CATEGORY"
	CodeInvalidItemID     = "INVALID_ITEM_ID"
	CodeInvalidPhase      = "INVALID_PHASE"
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodePersistenceFailed = "PERSISTENCE_FAILED"
	CodeInternal          = "INTERNAL"
)

// MapError maps domain errors to MCP error codes. It returns nil for errors
// with no client-facing mapping.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, checklist.ErrInvalidCategory):
		return &APIError{
			Code:         CodeInvalidCategory,
			Message:      "unknown checklist category",
			Details:      checklist.CategoryNames(),
			RecoveryHint: "Use one of the listed categories",
		}
	case errors.Is(err, checklist.ErrInvalidItemID):
		return &APIError{Code: CodeInvalidItemID, Message: "itemId is required", RecoveryHint: "Pass a non-empty itemId"}
	case errors.Is(err, docs.ErrUnsupportedFormat):
		return &APIError{Code: CodeInvalidFormat, Message: "unsupported documentation format", RecoveryHint: "Use markdown, json or html"}
	case errors.Is(err, session.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error()}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: CodeSessionNotFound, Message: "session not found", RecoveryHint: "Call initialize_session or update_checklist_item first"}
	case errors.Is(err, session.ErrPersistence):
		return &APIError{Code: CodePersistenceFailed, Message: "session could not be saved", RecoveryHint: "Retry the update"}
	default:
		return nil
	}
}
