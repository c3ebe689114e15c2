package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"factforum/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError maps the sentinel error taxonomy onto HTTP statuses. This is
// the only place the mapping lives; handlers just return errors.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorConflict),
		errors.Is(err, common.ErrorInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthenticated),
		errors.Is(err, common.ErrorInvalidCredential),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrorRoleMismatch),
		errors.Is(err, common.ErrorAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// never leak internals to the client
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = common.ErrorInternal.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into dst. Malformed or empty bodies are
// a validation error, not an internal one.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrorValidation
	}
	return nil
}
