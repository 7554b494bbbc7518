package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/sheets"
	"finanzas/internal/store"
)

// SyncWorker mirrors stored transactions into a spreadsheet. It
// consumes sync messages and fetches the full transaction from the
// store, the message only carries the ID.
type SyncWorker struct {
	store   store.TransactionStore
	writer  sheets.TransactionWriter
	deleter sheets.TransactionDeleter
}

func NewSyncWorker(st store.TransactionStore, writer sheets.TransactionWriter, deleter sheets.TransactionDeleter) *SyncWorker {
	return &SyncWorker{
		store:   st,
		writer:  writer,
		deleter: deleter,
	}
}

// HandleMessage processes a single sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	switch msg.Op {
	case amqp.OpUpsert:
		return w.handleUpsert(ctx, msg.ID)
	case amqp.OpDelete:
		return w.handleDelete(ctx, msg.ID)
	default:
		return fmt.Errorf("unknown sync operation: %s", msg.Op)
	}
}

func (w *SyncWorker) handleUpsert(ctx context.Context, id string) error {
	tx, found, err := w.findTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch transaction %s: %w", id, err)
	}
	if !found {
		// Deleted between publish and consume, nothing to mirror.
		slog.WarnContext(ctx, "Transaction no longer in store, skipping sync", "id", id)
		return nil
	}

	ref, err := w.writer.Append(ctx, tx)
	if err != nil {
		return fmt.Errorf("append to sheets: %w", err)
	}

	slog.InfoContext(ctx, "Synced transaction to sheets",
		"id", id,
		"sheets_ref", ref)

	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, id string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No sheet deleter configured, skipping delete", "id", id)
		return nil
	}

	if err := w.deleter.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete from sheets: %w", err)
	}

	slog.InfoContext(ctx, "Deleted transaction from sheets", "id", id)

	return nil
}

// SyncAll pushes every stored transaction to the sheet. Used on worker
// startup to recover from missed messages.
func (w *SyncWorker) SyncAll(ctx context.Context) error {
	txs, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if len(txs) == 0 {
		slog.InfoContext(ctx, "No transactions to sync on startup")
		return nil
	}

	successCount := 0
	errorCount := 0
	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.writer.Append(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction",
				"id", tx.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(txs),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) findTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	txs, err := w.store.List(ctx)
	if err != nil {
		return core.Transaction{}, false, err
	}
	for _, tx := range txs {
		if tx.ID == id {
			return tx, true, nil
		}
	}
	return core.Transaction{}, false, nil
}
