package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/ingest"
	"finanzas/internal/report"
	"finanzas/internal/store"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// dataEnvelope is the JSON shape of every successful API response.
type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dataEnvelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: msg})
}

// writeStoreError maps persistence failures to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "transaction store unavailable")
	case errors.Is(err, store.ErrWrite):
		writeError(w, http.StatusBadGateway, "transaction store rejected the write")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeImportError maps ingest pipeline failures: unreadable files are
// 400, row-level validation failures are 422 with the row named.
func writeImportError(w http.ResponseWriter, err error) {
	var parseErr *ingest.ParseError
	if errors.As(err, &parseErr) {
		writeError(w, http.StatusBadRequest, "the uploaded file could not be read as a spreadsheet")
		return
	}

	var (
		missingCol *ingest.MissingColumnError
		badType    *ingest.InvalidTypeError
		badAmount  *ingest.InvalidAmountError
		emptyDesc  *ingest.EmptyDescriptionError
		badDate    *ingest.InvalidDateError
		normErr    *ingest.NormalizeError
	)
	switch {
	case errors.Is(err, ingest.ErrEmptyFile),
		errors.As(err, &missingCol),
		errors.As(err, &badType),
		errors.As(err, &badAmount),
		errors.As(err, &emptyDesc),
		errors.As(err, &badDate),
		errors.As(err, &normErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeStoreError(w, err)
	}
}

// parseRange reads the from/to query parameters (ISO dates). Missing
// bounds default to an open range.
func parseRange(r *http.Request) (from, to core.Date, err error) {
	from = core.NewDate(1900, 1, 1)
	to = core.Today()

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		from, err = core.ParseISO(v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		to, err = core.ParseISO(v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", v)
		}
	}
	return from, to, nil
}

// reportFilename builds a download filename like
// "reporte_2024-06-01_2024-06-30.pdf".
func reportFilename(from, to core.Date, ext string) string {
	return fmt.Sprintf("reporte_%s_%s.%s", from.ISO(), to.ISO(), ext)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// noDataStatus returns 404 for empty report ranges, anything else is a
// store problem.
func noDataStatus(w http.ResponseWriter, err error) {
	if errors.Is(err, report.ErrNoData) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeStoreError(w, err)
}
