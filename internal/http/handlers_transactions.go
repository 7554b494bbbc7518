package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"finanzas/internal/core"
)

// handleTransactions serves /api/transactions: list, create and
// remove-all.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.removeAllTransactions(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleTransactionByID serves /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	found, err := s.transactions.Remove(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"removed": found,
	})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// transactionRequest is the POST body for creating a transaction.
// Both the canonical field names and the localized spellings the
// upload form uses are accepted.
type transactionRequest struct {
	Type        string          `json:"type"`
	Tipo        string          `json:"tipo"`
	Amount      json.RawMessage `json:"amount"`
	Monto       json.RawMessage `json:"monto"`
	Description string          `json:"description"`
	Descripcion string          `json:"descripcion"`
	Date        string          `json:"date"`
	Fecha       string          `json:"fecha"`
}

func (r *transactionRequest) canonicalize() {
	if r.Type == "" {
		r.Type = r.Tipo
	}
	if len(r.Amount) == 0 {
		r.Amount = r.Monto
	}
	if r.Description == "" {
		r.Description = r.Descripcion
	}
	if r.Date == "" {
		r.Date = r.Fecha
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.canonicalize()

	txType := core.ParseType(req.Type)

	// Coercion strips the sign, so negatives must be caught up front.
	rawAmount := strings.TrimSpace(strings.Trim(string(req.Amount), `"`))
	if strings.Contains(rawAmount, "-") {
		writeError(w, http.StatusBadRequest, "invalid amount: must not be negative")
		return
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	date, err := core.ParseISO(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	tx := core.Transaction{
		Type:        txType,
		Amount:      amount,
		Description: core.CleanText(req.Description),
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.transactions.Add(r.Context(), tx)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) removeAllTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.RemoveAll(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
