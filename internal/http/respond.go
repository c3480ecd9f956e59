package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
)

// maxBodySize caps request bodies at 1 MiB. Record payloads are tiny; anything
// larger is a client error.
const maxBodySize = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads and decodes the request body into dst. On failure it
// writes a 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty request body")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// validationErrs are the domain sentinels that indicate bad input rather
// than a server fault.
var validationErrs = []error{
	core.ErrInvalidDay,
	core.ErrInvalidMonth,
	core.ErrInvalidAmount,
	core.ErrInvalidDueDay,
	core.ErrInvalidFrequency,
	core.ErrInvalidAccountType,
	core.ErrEmptyName,
	core.ErrEmptyCategory,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// serviceError translates a service failure into an HTTP response. Missing
// records map to 404, rejected input to 422; everything else is a 500 with
// the detail kept out of the response body.
func serviceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	if isValidationError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "Request failed",
		"error", err,
		"what", what,
		"method", r.Method,
		"url", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error")
}
