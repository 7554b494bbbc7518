package services

import (
	"context"
	"errors"
	"testing"

	"finanzas/internal/core"
	"finanzas/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory TransactionStore for service tests.
type fakeStore struct {
	items   []core.Transaction
	addErr  error
	listErr error
}

var _ store.TransactionStore = (*fakeStore)(nil)

func (f *fakeStore) List(_ context.Context) ([]core.Transaction, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]core.Transaction(nil), f.items...), nil
}

func (f *fakeStore) Add(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if f.addErr != nil {
		return core.Transaction{}, f.addErr
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	f.items = append(f.items, tx)
	return tx, nil
}

func (f *fakeStore) Remove(_ context.Context, id string) (bool, error) {
	for i, tx := range f.items {
		if tx.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) RemoveAll(_ context.Context) error {
	f.items = nil
	return nil
}

func sampleTx(desc string) core.Transaction {
	return core.Transaction{
		Type:        core.Income,
		Amount:      decimal.NewFromInt(1000),
		Description: desc,
		Date:        core.NewDate(2024, 6, 1),
	}
}

func TestTransactionService_AddWithoutAMQP(t *testing.T) {
	fs := &fakeStore{}
	svc := NewTransactionService(fs, nil)

	saved, err := svc.Add(context.Background(), sampleTx("Salario"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Add() should return a transaction with an assigned ID")
	}
	if len(fs.items) != 1 {
		t.Fatalf("store has %d items, want 1", len(fs.items))
	}
}

func TestTransactionService_AddPropagatesStoreError(t *testing.T) {
	fs := &fakeStore{addErr: store.ErrWrite}
	svc := NewTransactionService(fs, nil)

	_, err := svc.Add(context.Background(), sampleTx("Salario"))
	if !errors.Is(err, store.ErrWrite) {
		t.Errorf("Add() error = %v, want wrapped %v", err, store.ErrWrite)
	}
}

func TestTransactionService_Remove(t *testing.T) {
	fs := &fakeStore{}
	svc := NewTransactionService(fs, nil)

	saved, err := svc.Add(context.Background(), sampleTx("Salario"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	found, err := svc.Remove(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !found {
		t.Error("Remove() found = false, want true")
	}

	found, err = svc.Remove(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Remove(ghost) error = %v", err)
	}
	if found {
		t.Error("Remove(ghost) found = true, want false")
	}
}

func TestTransactionService_RemoveAll(t *testing.T) {
	fs := &fakeStore{}
	svc := NewTransactionService(fs, nil)

	ctx := context.Background()
	if _, err := svc.Add(ctx, sampleTx("a")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := svc.Add(ctx, sampleTx("b")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.RemoveAll(ctx); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	txs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("List() after RemoveAll = %d items, want 0", len(txs))
	}
}
