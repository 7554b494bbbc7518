package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"finanzas/internal/core"
	"finanzas/internal/ingest"
)

// ImportService runs the xlsx ingest pipeline and persists the result.
type ImportService struct {
	transactions *TransactionService
}

func NewImportService(transactions *TransactionService) *ImportService {
	return &ImportService{transactions: transactions}
}

// ImportWorkbook parses, validates and normalizes an xlsx workbook,
// then persists every transaction. The whole file is normalized before
// anything is stored, a single bad row rejects the import.
func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader) ([]core.Transaction, error) {
	rows, err := ingest.ParseWorkbook(r)
	if err != nil {
		return nil, err
	}

	if err := ingest.Validate(rows); err != nil {
		return nil, err
	}

	txs, err := ingest.NormalizeAll(rows)
	if err != nil {
		return nil, err
	}

	saved := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		stored, err := s.transactions.Add(ctx, tx)
		if err != nil {
			return saved, fmt.Errorf("persist imported transaction %q: %w", tx.Description, err)
		}
		saved = append(saved, stored)
	}

	slog.InfoContext(ctx, "Imported workbook", "row_count", len(saved))

	return saved, nil
}
