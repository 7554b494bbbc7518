package http

import (
	"net/http"

	applog "finanzas/internal/log"
)

// Uploaded workbooks are capped at 10 MB.
const maxImportSize = 10 << 20

// handleImport serves POST /api/import: a multipart upload with the
// spreadsheet under the "file" field. The import is all-or-nothing, a
// failing row rejects the whole file.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Import upload received",
		applog.FieldFilename, header.Filename,
		"size", header.Size)

	saved, err := s.importer.ImportWorkbook(r.Context(), file)
	if err != nil {
		writeImportError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"imported":     len(saved),
		"transactions": saved,
	})
}
