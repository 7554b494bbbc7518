package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// ErrNoData reports a date range that matches no transactions. The
// caller surfaces it instead of producing an empty report file.
var ErrNoData = errors.New("no transactions in the selected range")

type (
	// Row is one formatted report line: localized date (DD-MM-YYYY),
	// localized type label, description and a zero-decimal currency
	// string.
	Row struct {
		Date        string
		Type        string
		Description string
		Amount      string
	}

	// Document is a ready-to-render report: both the PDF and the XLSX
	// writers consume this and nothing else.
	Document struct {
		Title  string
		Period string
		Rows   []Row
	}
)

// FilterRange returns the transactions with from <= date <= to,
// comparing ISO strings (inclusive on both ends).
func FilterRange(txs []core.Transaction, from, to core.Date) []core.Transaction {
	lo, hi := from.ISO(), to.ISO()
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if d := tx.Date.ISO(); d >= lo && d <= hi {
			out = append(out, tx)
		}
	}
	return out
}

// Build assembles the export document for a date range. An empty
// range yields ErrNoData.
func Build(txs []core.Transaction, from, to core.Date) (*Document, error) {
	filtered := FilterRange(txs, from, to)
	if len(filtered) == 0 {
		return nil, ErrNoData
	}

	doc := &Document{
		Title:  "Reporte de Transacciones",
		Period: fmt.Sprintf("Período: %s - %s", from.Localized(), to.Localized()),
		Rows:   make([]Row, 0, len(filtered)),
	}
	for _, tx := range filtered {
		doc.Rows = append(doc.Rows, Row{
			Date:        tx.Date.Localized(),
			Type:        tx.Type.Label(),
			Description: tx.Description,
			Amount:      FormatCurrency(tx.Amount),
		})
	}
	return doc, nil
}

// FormatCurrency renders an amount the way the reports show money:
// zero decimal places, dot thousands separators, "$" prefix
// ("$ 1.234"). Rounding is half-up on the dropped fraction.
func FormatCurrency(d decimal.Decimal) string {
	whole := d.Round(0).BigInt().String()
	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$ " + strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return out
}
