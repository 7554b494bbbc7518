package services

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/store"
)

// TransactionService orchestrates transaction operations across the
// configured store and AMQP. Publish failures never fail the request,
// the store is the source of truth and the worker catches up later.
type TransactionService struct {
	store      store.TransactionStore
	amqpClient *amqp.Client
}

func NewTransactionService(st store.TransactionStore, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      st,
		amqpClient: amqpClient,
	}
}

// List returns all stored transactions.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.List(ctx)
}

// Add validates and persists a transaction, then publishes a sync
// message.
func (s *TransactionService) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	saved, err := s.store.Add(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publish(ctx, saved.ID, amqp.OpUpsert); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", saved.ID, "error", err)
	}

	return saved, nil
}

// Remove deletes a transaction by ID. Removing an unknown ID reports
// found=false without error.
func (s *TransactionService) Remove(ctx context.Context, id string) (bool, error) {
	found, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("remove transaction: %w", err)
	}

	if found {
		if err := s.publish(ctx, id, amqp.OpDelete); err != nil {
			slog.ErrorContext(ctx, "Failed to publish delete message",
				"id", id, "error", err)
		}
	}

	return found, nil
}

// RemoveAll deletes every stored transaction.
func (s *TransactionService) RemoveAll(ctx context.Context) error {
	if err := s.store.RemoveAll(ctx); err != nil {
		return fmt.Errorf("remove all transactions: %w", err)
	}
	return nil
}

func (s *TransactionService) publish(ctx context.Context, id, op string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id, op)
}

// Close closes the AMQP connection if one is configured.
func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
