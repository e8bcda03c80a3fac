package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/domlearn/backend/internal/models"
	"go.uber.org/zap"
)

// kindInternal is reported for errors that carry no kind
const kindInternal models.ErrorKind = "Internal"

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response with an explicit status and kind
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string, kind models.ErrorKind) {
	h.RespondJSON(w, status, models.ErrorResponse{OK: false, Error: message, Kind: kind})
}

// RespondAppError translates err into a response.
// Errors without a kind are logged and hidden behind a generic message.
func (h *BaseHandler) RespondAppError(w http.ResponseWriter, r *http.Request, action string, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		h.Logger.Error("failed to "+action, zap.Error(err), zap.String("path", r.URL.Path))
		h.RespondError(w, http.StatusInternalServerError, "internal server error", kindInternal)
		return
	}

	status := StatusForKind(appErr.Kind)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("failed to "+action, zap.Error(err), zap.String("path", r.URL.Path))
	} else {
		h.Logger.Info("request rejected",
			zap.String("action", action),
			zap.String("kind", string(appErr.Kind)),
			zap.String("message", appErr.Message),
		)
	}
	h.RespondError(w, status, appErr.Message, appErr.Kind)
}

// DecodeJSON reads the request body into dst.
// Oversized bodies are reported as TooLarge, malformed ones as MissingField.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return models.NewError(models.KindTooLarge, "request body too large")
		}
		return models.WrapError(models.KindMissingField, err, "invalid request body")
	}
	return nil
}

// StatusForKind maps an error kind to its HTTP status
func StatusForKind(kind models.ErrorKind) int {
	switch {
	case kind == models.KindUnauthorized:
		return http.StatusUnauthorized
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == models.KindNotFound:
		return http.StatusNotFound
	case kind == models.KindUnsupportedType:
		return http.StatusUnsupportedMediaType
	case kind == models.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
