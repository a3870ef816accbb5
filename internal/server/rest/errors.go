package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ganatecnica/obradiary/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps service errors onto HTTP statuses. Unknown errors are
// treated as infrastructure failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrDuplicateEntry),
		errors.Is(err, common.ErrInvalidTimeRange),
		errors.Is(err, common.ErrAlreadyClockedOut),
		errors.Is(err, common.ErrAlreadyFinalized),
		errors.Is(err, common.ErrProjectFinalized):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError answers with the mapped status. 5xx responses carry a generic
// message and the cause is logged instead.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, status, "internal server error")
		return
	}
	writeErrorMessage(w, status, err.Error())
}
