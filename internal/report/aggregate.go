// Package report derives display and export views from a flat
// transaction list: income/expense totals, the running-balance series
// the charts consume, and the month/week grouped view. Everything here
// is recomputed per call; the input slice is only borrowed, never
// mutated.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

type (
	// Totals holds the income and expense sums over a snapshot.
	Totals struct {
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
	}

	// BalancePoint is one charted point: the cumulative balance after
	// all transactions up to and including Date. Transactions sharing
	// a date fold into a single point.
	BalancePoint struct {
		Date    string          `json:"date"`
		Balance decimal.Decimal `json:"balance"`
	}

	// MonthKey identifies a calendar month.
	MonthKey struct {
		Year  int
		Month time.Month
	}

	// WeekGroup holds one week-of-month bucket, most recent
	// transaction first.
	WeekGroup struct {
		Week         int
		Transactions []core.Transaction
	}

	// MonthGroup holds one month's weeks, most recent week first.
	MonthGroup struct {
		Key   MonthKey
		Label string
		Weeks []WeekGroup
	}

	// GroupedView is the derived month/week partition of a snapshot,
	// months in chronological order. It is ephemeral: recomputed on
	// every render and never persisted.
	GroupedView []MonthGroup
)

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Label renders the month as displayed in the grouped list, e.g.
// "Junio 2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", spanishMonths[k.Month-1], k.Year)
}

// WeekOfMonth buckets a day of month into weeks 1-5 (ceil(day/7)).
// This is a display convention, not an ISO calendar week.
func WeekOfMonth(day int) int {
	return (day + 6) / 7
}

// ComputeTotals sums income and expense amounts separately.
func ComputeTotals(txs []core.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		if tx.Type == core.Income {
			t.Income = t.Income.Add(tx.Amount)
		} else {
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	return t
}

// BalanceSeries produces the running balance: one point per distinct
// date, ascending. ISO date strings sort lexically in chronological
// order, so plain string sorting is enough.
func BalanceSeries(txs []core.Transaction) []BalancePoint {
	if len(txs) == 0 {
		return nil
	}

	perDay := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		day := tx.Date.ISO()
		perDay[day] = perDay[day].Add(tx.Signed())
	}

	dates := make([]string, 0, len(perDay))
	for d := range perDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]BalancePoint, 0, len(dates))
	balance := decimal.Zero
	for _, d := range dates {
		balance = balance.Add(perDay[d])
		series = append(series, BalancePoint{Date: d, Balance: balance})
	}
	return series
}

// Group partitions transactions by month-year, then by week-of-month.
// Every transaction lands in exactly one bucket. Months are ordered
// chronologically ascending, weeks within a month descending, and
// transactions within a week most-recent-date-first.
func Group(txs []core.Transaction) GroupedView {
	if len(txs) == 0 {
		return nil
	}

	byMonth := make(map[MonthKey]map[int][]core.Transaction)
	for _, tx := range txs {
		key := MonthKey{Year: tx.Date.Year(), Month: tx.Date.Month()}
		week := WeekOfMonth(tx.Date.Day())
		if byMonth[key] == nil {
			byMonth[key] = make(map[int][]core.Transaction)
		}
		byMonth[key][week] = append(byMonth[key][week], tx)
	}

	keys := make([]MonthKey, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})

	view := make(GroupedView, 0, len(keys))
	for _, key := range keys {
		weeks := byMonth[key]
		weekNums := make([]int, 0, len(weeks))
		for w := range weeks {
			weekNums = append(weekNums, w)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(weekNums)))

		mg := MonthGroup{Key: key, Label: key.Label(), Weeks: make([]WeekGroup, 0, len(weekNums))}
		for _, w := range weekNums {
			group := weeks[w]
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].Date.ISO() > group[j].Date.ISO()
			})
			mg.Weeks = append(mg.Weeks, WeekGroup{Week: w, Transactions: group})
		}
		view = append(view, mg)
	}
	return view
}
