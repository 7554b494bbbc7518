package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"finanzas/internal/ingest"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []string{"tipo", "monto", "descripcion", "fecha"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestImportService_ImportWorkbook(t *testing.T) {
	fs := &fakeStore{}
	svc := NewImportService(NewTransactionService(fs, nil))

	buf := buildWorkbook(t, [][]interface{}{
		{"ingreso", 1000, "Salario", "1/6/2024"},
		{"gasto", "200,50", "Cafe", "2/6/2024"},
	})

	saved, err := svc.ImportWorkbook(context.Background(), buf)
	if err != nil {
		t.Fatalf("ImportWorkbook() error = %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("ImportWorkbook() saved %d transactions, want 2", len(saved))
	}
	if len(fs.items) != 2 {
		t.Fatalf("store has %d items, want 2", len(fs.items))
	}
	if fs.items[1].Amount.String() != "200.5" {
		t.Errorf("imported amount = %s, want 200.5", fs.items[1].Amount.String())
	}
}

func TestImportService_InvalidRowRejectsWholeFile(t *testing.T) {
	fs := &fakeStore{}
	svc := NewImportService(NewTransactionService(fs, nil))

	buf := buildWorkbook(t, [][]interface{}{
		{"ingreso", 1000, "Salario", "1/6/2024"},
		{"transferencia", 50, "Giro", "2/6/2024"},
	})

	_, err := svc.ImportWorkbook(context.Background(), buf)
	var typeErr *ingest.InvalidTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("ImportWorkbook() error = %v, want *ingest.InvalidTypeError", err)
	}
	if typeErr.Row != 2 {
		t.Errorf("error row = %d, want 2", typeErr.Row)
	}
	if len(fs.items) != 0 {
		t.Errorf("store has %d items after failed import, want 0", len(fs.items))
	}
}

func TestImportService_EmptyWorkbook(t *testing.T) {
	fs := &fakeStore{}
	svc := NewImportService(NewTransactionService(fs, nil))

	buf := buildWorkbook(t, nil)

	_, err := svc.ImportWorkbook(context.Background(), buf)
	if !errors.Is(err, ingest.ErrEmptyFile) {
		t.Errorf("ImportWorkbook() error = %v, want %v", err, ingest.ErrEmptyFile)
	}
}
