// Package view turns derived report data into a toolkit-agnostic view
// model. Render is pure: no DOM, no templates, no store access. The
// UI layer consumes the result however it likes.
package view

import (
	"fmt"

	"finanzas/internal/core"
	"finanzas/internal/report"
)

type (
	// RowVM is one rendered transaction line.
	RowVM struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
		Income      bool   `json:"income"`
	}

	// WeekVM is one collapsible week section.
	WeekVM struct {
		Week  int     `json:"week"`
		Label string  `json:"label"`
		Rows  []RowVM `json:"rows"`
	}

	// MonthVM is one collapsible month section.
	MonthVM struct {
		Label string   `json:"label"`
		Weeks []WeekVM `json:"weeks"`
	}

	// ViewModel is the full grouped-list payload. Empty is explicit so
	// callers render a "no data" state instead of a blank table.
	ViewModel struct {
		Empty        bool      `json:"empty"`
		EmptyMessage string    `json:"emptyMessage,omitempty"`
		Months       []MonthVM `json:"months"`
	}
)

// Render maps a grouped view to its display form: localized dates and
// type labels, zero-decimal currency strings, signed presentation.
func Render(grouped report.GroupedView) ViewModel {
	if len(grouped) == 0 {
		return ViewModel{
			Empty:        true,
			EmptyMessage: "No hay transacciones registradas",
		}
	}

	months := make([]MonthVM, 0, len(grouped))
	for _, mg := range grouped {
		m := MonthVM{Label: mg.Label, Weeks: make([]WeekVM, 0, len(mg.Weeks))}
		for _, wg := range mg.Weeks {
			w := WeekVM{
				Week:  wg.Week,
				Label: fmt.Sprintf("Semana %d del mes", wg.Week),
				Rows:  make([]RowVM, 0, len(wg.Transactions)),
			}
			for _, tx := range wg.Transactions {
				amount := report.FormatCurrency(tx.Amount)
				sign := "-"
				if tx.Type == core.Income {
					sign = "+"
				}
				w.Rows = append(w.Rows, RowVM{
					ID:          tx.ID,
					Date:        tx.Date.Localized(),
					Type:        tx.Type.Label(),
					Description: tx.Description,
					Amount:      sign + amount,
					Income:      tx.Type == core.Income,
				})
			}
			m.Weeks = append(m.Weeks, w)
		}
		months = append(months, m)
	}
	return ViewModel{Months: months}
}
