package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"finanzas/internal/core"
	"finanzas/internal/report"
)

// ReportService builds export documents from the stored transactions.
type ReportService struct {
	transactions *TransactionService
}

func NewReportService(transactions *TransactionService) *ReportService {
	return &ReportService{transactions: transactions}
}

// BuildDocument fetches transactions in [from, to] and assembles the
// export document. Returns report.ErrNoData when the range is empty.
func (s *ReportService) BuildDocument(ctx context.Context, from, to core.Date) (*report.Document, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return report.Build(txs, from, to)
}

// ExportResult holds the rendered report bytes per format.
type ExportResult struct {
	PDF  []byte
	XLSX []byte
}

// ExportBoth renders the PDF and xlsx reports for the same document
// concurrently.
func (s *ReportService) ExportBoth(ctx context.Context, from, to core.Date) (*ExportResult, error) {
	doc, err := s.BuildDocument(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var pdfBuf, xlsxBuf bytes.Buffer

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := report.WritePDF(&pdfBuf, doc); err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := report.WriteXLSX(&xlsxBuf, doc); err != nil {
			return fmt.Errorf("render xlsx: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Exported reports",
		"row_count", len(doc.Rows),
		"pdf_bytes", pdfBuf.Len(),
		"xlsx_bytes", xlsxBuf.Len())

	return &ExportResult{PDF: pdfBuf.Bytes(), XLSX: xlsxBuf.Bytes()}, nil
}
