package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{input: "Ingreso", want: Income},
		{input: "INGRESO", want: Income},
		{input: "  ingresos  ", want: Income},
		{input: "Gasto", want: Expense},
		{input: "cualquier cosa", want: Expense},
		{input: "", want: Expense},
	}
	for _, tt := range tests {
		if got := ParseType(tt.input); got != tt.want {
			t.Errorf("ParseType(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	if Income.Label() != "Ingreso" {
		t.Errorf("Income label = %s", Income.Label())
	}
	if Expense.Label() != "Gasto" {
		t.Errorf("Expense label = %s", Expense.Label())
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:          "t1",
		Type:        Income,
		Amount:      decimal.NewFromInt(1000),
		Description: "Salario",
		Date:        NewDate(2024, 6, 1),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "unknown type", mutate: func(tx *Transaction) { tx.Type = "transfer" }, wantErr: ErrInvalidType},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: ErrInvalidAmount},
		{name: "blank description", mutate: func(tx *Transaction) { tx.Description = "   " }, wantErr: ErrEmptyDescription},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = Date{} }, wantErr: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Zero amounts are allowed: the invariant is non-negative, not positive.
	zero := valid
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount rejected: %v", err)
	}
}

func TestSigned(t *testing.T) {
	in := Transaction{Type: Income, Amount: decimal.NewFromInt(100)}
	out := Transaction{Type: Expense, Amount: decimal.NewFromInt(40)}
	if !in.Signed().Equal(decimal.NewFromInt(100)) {
		t.Errorf("income signed = %s", in.Signed())
	}
	if !out.Signed().Equal(decimal.NewFromInt(-40)) {
		t.Errorf("expense signed = %s", out.Signed())
	}
}
