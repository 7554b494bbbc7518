package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"finanzas/internal/report"
)

// handleReportPDF serves GET /api/reports/pdf?from=...&to=...
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "pdf", "application/pdf", report.WritePDF)
}

// handleReportXLSX serves GET /api/reports/xlsx?from=...&to=...
func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		report.WriteXLSX)
}

func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, ext, contentType string, render func(io.Writer, *report.Document) error) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.reports.BuildDocument(r.Context(), from, to)
	if err != nil {
		noDataStatus(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, doc); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("render report: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(from, to, ext)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
