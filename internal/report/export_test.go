package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"finanzas/internal/core"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "500", want: "$ 500"},
		{input: "1234", want: "$ 1.234"},
		{input: "1234567", want: "$ 1.234.567"},
		{input: "200.5", want: "$ 201"},
		{input: "200.4", want: "$ 200"},
		{input: "0", want: "$ 0"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.input)
		if got := FormatCurrency(d); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFilterRange(t *testing.T) {
	txs := []core.Transaction{
		tx("1", core.Income, "1", "2024-05-31"),
		tx("2", core.Income, "1", "2024-06-01"),
		tx("3", core.Income, "1", "2024-06-15"),
		tx("4", core.Income, "1", "2024-07-01"),
	}
	got := FilterRange(txs, core.NewDate(2024, 6, 1), core.NewDate(2024, 6, 30))
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Fatalf("filtered ids = %v", ids(got))
	}
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestBuild(t *testing.T) {
	txs := []core.Transaction{
		tx("1", core.Income, "1000", "2024-06-01"),
		tx("2", core.Expense, "200.5", "2024-06-02"),
	}
	doc, err := Build(txs, core.NewDate(2024, 6, 1), core.NewDate(2024, 6, 30))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if doc.Title != "Reporte de Transacciones" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Period != "Período: 01-06-2024 - 30-06-2024" {
		t.Errorf("period = %q", doc.Period)
	}
	if len(doc.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(doc.Rows))
	}
	first := doc.Rows[0]
	if first.Date != "01-06-2024" || first.Type != "Ingreso" || first.Amount != "$ 1.000" {
		t.Errorf("row[0] = %+v", first)
	}
	if doc.Rows[1].Type != "Gasto" || doc.Rows[1].Amount != "$ 201" {
		t.Errorf("row[1] = %+v", doc.Rows[1])
	}
}

func TestBuild_NoData(t *testing.T) {
	txs := []core.Transaction{tx("1", core.Income, "1", "2024-01-01")}
	_, err := Build(txs, core.NewDate(2024, 6, 1), core.NewDate(2024, 6, 30))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Build() = %v, want ErrNoData", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	doc := &Document{
		Title:  "Reporte de Transacciones",
		Period: "Período: 01-06-2024 - 30-06-2024",
		Rows: []Row{
			{Date: "01-06-2024", Type: "Ingreso", Description: "Salario", Amount: "$ 1.000"},
		},
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, doc); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(exportSheet, "A1")
	if err != nil || title != doc.Title {
		t.Errorf("A1 = %q (%v), want title", title, err)
	}
	header, _ := f.GetCellValue(exportSheet, "A4")
	if header != "Fecha" {
		t.Errorf("A4 = %q, want Fecha", header)
	}
	desc, _ := f.GetCellValue(exportSheet, "C5")
	if desc != "Salario" {
		t.Errorf("C5 = %q, want Salario", desc)
	}
}

func TestWritePDF(t *testing.T) {
	doc := &Document{
		Title:  "Reporte de Transacciones",
		Period: "Período: 01-06-2024 - 30-06-2024",
		Rows: []Row{
			{Date: "01-06-2024", Type: "Ingreso", Description: "Salario", Amount: "$ 1.000"},
			{Date: "02-06-2024", Type: "Gasto", Description: "Cafe", Amount: "$ 201"},
		},
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Fatalf("output does not look like a PDF (starts %q)", buf.String()[:8])
	}
}
