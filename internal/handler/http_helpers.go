package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ai-tutoring-system/internal/domain"
	apperrors "ai-tutoring-system/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type contextKey string

const sessionContextKey contextKey = "session"

const maxJSONBodySize = 1 << 20

var validate = validator.New()

// GetSessionFromContext extracts the browser session from request context
func GetSessionFromContext(r *http.Request) (*domain.SessionState, bool) {
	state, ok := r.Context().Value(sessionContextKey).(*domain.SessionState)
	return state, ok
}

// errorResponse is the inline message shown to the user
type errorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, errType apperrors.ErrorType, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message, Type: string(errType)})
}

// writeAppError maps an error kind to its status and user-visible message.
// Errors outside the taxonomy are logged and hidden behind a generic message.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error("Unhandled error", err)
		writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Internal server error")
		return
	}
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error:   appErr.Message,
		Type:    string(appErr.Type),
		Details: appErr.Details,
	})
}

// decodeJSON reads a size-limited JSON body into dst and validates its tags
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("Request body is required")
		}
		return apperrors.NewValidationError("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.NewValidationError("Invalid request body", fieldMessage(verrs[0]))
		}
		return apperrors.NewValidationError("Invalid request body")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// sessionFromRequest returns the session attached by SessionMiddleware, or
// answers 500 when the route was mounted without it.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (*domain.SessionState, bool) {
	state, ok := GetSessionFromContext(r)
	if !ok {
		writeError(w, http.StatusInternalServerError, apperrors.ErrorTypeInternal, "Session not found in context")
		return nil, false
	}
	return state, true
}
