package upstream

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

const (
	msgServerError     = "Error del servidor"
	msgConnectionError = "Error de conexión. Verifica tu conexión a internet"
)

// Error is a failed call to the REST backend. Status is zero when no
// response was received.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes ErrNotFound for 404 responses and the transport error
// otherwise.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return model.ErrNotFound
	}
	return e.cause
}

// HTTPStatus is the status the API should answer with: client errors pass
// through, everything else is a bad gateway.
func (e *Error) HTTPStatus() int {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}

func connectionError(err error) *Error {
	return &Error{Message: msgConnectionError, cause: err}
}

// responseError builds an Error from a non-2xx response body.
func responseError(status int, statusText string, body []byte) *Error {
	return &Error{Status: status, Message: errorMessage(body, statusText)}
}

// errorMessage picks the most specific message a backend error body offers:
// a plain string body, then the message, error, details, errors and
// statusText fields of an object. An empty body falls back to the HTTP
// status text.
func errorMessage(body []byte, statusText string) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fallback(statusText)
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return trimmed
	}

	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"message", "error", "details"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		if list, ok := v["errors"].([]any); ok {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				switch x := item.(type) {
				case string:
					parts = append(parts, x)
				case map[string]any:
					if s, ok := x["message"].(string); ok {
						parts = append(parts, s)
					}
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
		if s, ok := v["statusText"].(string); ok && s != "" {
			return s
		}
		return msgServerError
	}
	return fallback(statusText)
}

func fallback(statusText string) string {
	if statusText != "" {
		return statusText
	}
	return msgServerError
}

// IsConnectionError reports whether err is a transport failure.
func IsConnectionError(err error) bool {
	var uerr *Error
	return errors.As(err, &uerr) && uerr.Status == 0
}
