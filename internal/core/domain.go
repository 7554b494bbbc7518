package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type (
	// Type classifies a transaction as money coming in or going out.
	Type string

	// Transaction is the canonical record: fully normalized, ready for
	// persistence and display. Imported rows only become Transactions
	// after validation and coercion.
	Transaction struct {
		ID          string          `json:"id"`
		Type        Type            `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDate      = errors.New("invalid date")
)

// IsValid reports whether t is one of the two known types.
func (t Type) IsValid() bool {
	return t == Income || t == Expense
}

// Label returns the localized display label ("Ingreso" / "Gasto").
func (t Type) Label() string {
	if t == Income {
		return "Ingreso"
	}
	return "Gasto"
}

// ParseType maps a raw textual type to a Type. Any value containing
// "ingreso" (case-insensitive) is Income; everything else is Expense.
func ParseType(raw string) Type {
	if strings.Contains(strings.ToLower(strings.TrimSpace(raw)), "ingreso") {
		return Income
	}
	return Expense
}

// Signed returns the amount with the sign implied by the type:
// positive for income, negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

func (t Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
