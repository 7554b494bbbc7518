package http

import (
	"fmt"
	"net/http"
	"strings"

	"finanzas/internal/core"
	"finanzas/internal/report"
	"finanzas/internal/view"
)

// summaryResponse aggregates everything the UI needs for one render:
// totals, the running balance series and the grouped view model.
type summaryResponse struct {
	Totals  totalsJSON           `json:"totals"`
	Balance []balancePointJSON   `json:"balance"`
	Groups  view.ViewModel       `json:"groups"`
}

type totalsJSON struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type balancePointJSON struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

// handleSummary serves GET /api/summary. Optional query parameters
// narrow the snapshot the way the chart filters do: type restricts to
// income or expense, month keeps dates matching an ISO prefix
// (YYYY-MM, or a full YYYY-MM-DD for a single day).
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	typeFilter, err := parseTypeFilter(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid type filter, expected income or expense")
		return
	}

	txs, err := s.transactions.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	txs = filterSummary(txs, typeFilter, strings.TrimSpace(r.URL.Query().Get("month")))

	totals := report.ComputeTotals(txs)
	series := report.BalanceSeries(txs)

	balance := make([]balancePointJSON, 0, len(series))
	for _, p := range series {
		balance = append(balance, balancePointJSON{
			Date:    p.Date,
			Balance: p.Balance.String(),
		})
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Totals: totalsJSON{
			Income:  totals.Income.String(),
			Expense: totals.Expense.String(),
		},
		Balance: balance,
		Groups:  view.Render(report.Group(txs)),
	})
}

// parseTypeFilter accepts the canonical type names and the localized
// spellings the UI uses. Empty means no filter.
func parseTypeFilter(raw string) (core.Type, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case "income", "ingreso":
		return core.Income, nil
	case "expense", "gasto":
		return core.Expense, nil
	}
	return "", fmt.Errorf("unknown type filter %q", raw)
}

func filterSummary(txs []core.Transaction, typeFilter core.Type, datePrefix string) []core.Transaction {
	if typeFilter == "" && datePrefix == "" {
		return txs
	}
	filtered := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if typeFilter != "" && tx.Type != typeFilter {
			continue
		}
		if datePrefix != "" && !strings.HasPrefix(tx.Date.ISO(), datePrefix) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
