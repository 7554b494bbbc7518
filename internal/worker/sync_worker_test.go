package worker

import (
	"context"
	"testing"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/sheets/memory"

	"github.com/shopspring/decimal"
)

type stubStore struct {
	items []core.Transaction
}

func (s *stubStore) List(_ context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *stubStore) Add(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	s.items = append(s.items, tx)
	return tx, nil
}

func (s *stubStore) Remove(_ context.Context, id string) (bool, error) {
	for i, tx := range s.items {
		if tx.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) RemoveAll(_ context.Context) error {
	s.items = nil
	return nil
}

func storedTx(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        core.Expense,
		Amount:      decimal.RequireFromString("200.5"),
		Description: "Cafe",
		Date:        core.NewDate(2024, 6, 2),
	}
}

func TestSyncWorker_HandleUpsert(t *testing.T) {
	st := &stubStore{items: []core.Transaction{storedTx("tx-1")}}
	sheet := memory.New()
	w := NewSyncWorker(st, sheet, sheet)

	msg := amqp.NewTransactionSyncMessage("tx-1", amqp.OpUpsert)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	items := sheet.Items()
	if len(items) != 1 || items[0].ID != "tx-1" {
		t.Errorf("sheet items = %v, want one item tx-1", items)
	}
}

func TestSyncWorker_UpsertMissingTransactionIsSkipped(t *testing.T) {
	st := &stubStore{}
	sheet := memory.New()
	w := NewSyncWorker(st, sheet, sheet)

	msg := amqp.NewTransactionSyncMessage("ghost", amqp.OpUpsert)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v, want nil for missing transaction", err)
	}
	if len(sheet.Items()) != 0 {
		t.Error("nothing should be appended for a missing transaction")
	}
}

func TestSyncWorker_HandleDelete(t *testing.T) {
	st := &stubStore{}
	sheet := memory.New()
	if _, err := sheet.Append(context.Background(), storedTx("tx-1")); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}
	w := NewSyncWorker(st, sheet, sheet)

	msg := amqp.NewTransactionSyncMessage("tx-1", amqp.OpDelete)
	if err := w.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(sheet.Items()) != 0 {
		t.Error("transaction should have been removed from the sheet")
	}
}

func TestSyncWorker_UnknownOperation(t *testing.T) {
	w := NewSyncWorker(&stubStore{}, memory.New(), nil)

	msg := amqp.NewTransactionSyncMessage("tx-1", "rename")
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Error("HandleMessage() should fail for an unknown operation")
	}
}

func TestSyncWorker_SyncAll(t *testing.T) {
	st := &stubStore{items: []core.Transaction{storedTx("a"), storedTx("b")}}
	sheet := memory.New()
	w := NewSyncWorker(st, sheet, sheet)

	if err := w.SyncAll(context.Background()); err != nil {
		t.Fatalf("SyncAll() error = %v", err)
	}
	if len(sheet.Items()) != 2 {
		t.Errorf("sheet has %d items, want 2", len(sheet.Items()))
	}

	// Running again must not duplicate rows.
	if err := w.SyncAll(context.Background()); err != nil {
		t.Fatalf("second SyncAll() error = %v", err)
	}
	if len(sheet.Items()) != 2 {
		t.Errorf("sheet has %d items after resync, want 2", len(sheet.Items()))
	}
}
