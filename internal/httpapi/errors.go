package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"leadconsole/internal/console"
	"leadconsole/internal/domain"
	"leadconsole/internal/errnorm"
	"leadconsole/internal/leadsapi"
	"leadconsole/internal/logging"
	"leadconsole/internal/session"
)

type APIError struct {
	Error struct {
		Code      string            `json:"code"`
		Message   string            `json:"message"`
		RequestID string            `json:"request_id,omitempty"`
		Fields    map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeAPIError(w, r, status, code, message, nil)
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = logging.RequestID(r.Context())
	e.Error.Fields = fields
	WriteJSON(w, status, e)
}

// WriteFailure maps an operation error onto the error envelope. Upstream
// failures carry the normalized message a user would see in the toast.
func WriteFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var uerr *leadsapi.Error

	switch {
	case errors.As(err, &verr):
		writeAPIError(w, r, http.StatusUnprocessableEntity, "validation_failed", "Please correct the highlighted fields", verr.Fields)
	case errors.Is(err, console.ErrInvalidPageSize):
		WriteError(w, r, http.StatusBadRequest, "invalid_page_size", err.Error())
	case errors.Is(err, console.ErrNavDisabled):
		WriteError(w, r, http.StatusConflict, "nav_disabled", err.Error())
	case errors.Is(err, console.ErrMissingID):
		WriteError(w, r, http.StatusBadRequest, "missing_id", err.Error())
	case errors.Is(err, session.ErrNoSessionCookie):
		WriteError(w, r, http.StatusBadGateway, "no_session_cookie", errnorm.Fallback)
	case errors.As(err, &uerr):
		status := http.StatusBadGateway
		if uerr.StatusCode >= 400 && uerr.StatusCode < 500 {
			status = uerr.StatusCode
		}
		WriteError(w, r, status, "upstream_error", errnorm.Message(err))
	default:
		WriteError(w, r, http.StatusBadGateway, "upstream_unreachable", errnorm.Message(err))
	}
}
