// Package respond centralizes response encoding and the error-kind to
// status-code mapping, so handlers never decide status codes per error site.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dfreire/financas/internal/errs"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Raw writes a pre-encoded JSON value, e.g. a bare decimal.
func Raw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error maps the error's kind to a status code. Authentication and
// business-rule failures surface their message as a 400, lookup misses as a
// 404, everything else as a generic 500.
func Error(w http.ResponseWriter, err error) {
	switch errs.KindOf(err) {
	case errs.KindAuthentication, errs.KindBusinessRule:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errs.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
