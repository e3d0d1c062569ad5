package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// AddIncome records a credit against a project. The amount is in minor
// units and must be positive; a zero timestamp means now.
func (s *DefaultService) AddIncome(ctx context.Context, projectID, amountMinor int64, title string, timestampMs int64, categoryID *int64, notes *string) (*models.Transaction, error) {
	return s.addTransaction(ctx, projectID, title, timestampMs, categoryID, notes, amountMinor, 0)
}

// AddExpense records a debit against a project, same shape as AddIncome.
func (s *DefaultService) AddExpense(ctx context.Context, projectID, amountMinor int64, title string, timestampMs int64, categoryID *int64, notes *string) (*models.Transaction, error) {
	return s.addTransaction(ctx, projectID, title, timestampMs, categoryID, notes, 0, amountMinor)
}

func (s *DefaultService) addTransaction(ctx context.Context, projectID int64, title string, timestampMs int64, categoryID *int64, notes *string, creditMinor, debitMinor int64) (*models.Transaction, error) {
	if creditMinor < 0 || debitMinor < 0 || creditMinor+debitMinor == 0 {
		return nil, ErrInvalidAmount
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBlankName
	}
	if timestampMs == 0 {
		timestampMs = s.nowMs()
	}

	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error checking project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	txn := &models.Transaction{
		ProjectID:   projectID,
		TimestampMs: timestampMs,
		Title:       title,
		Notes:       notes,
		CategoryID:  categoryID,
		CreditMinor: creditMinor,
		DebitMinor:  debitMinor,
	}

	if err := s.repo.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error adding transaction: %w", err)
	}
	return txn, nil
}

func (s *DefaultService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	txn, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}
	if txn == nil {
		return nil, ErrNotFound
	}
	return txn, nil
}

func (s *DefaultService) ListTransactionsForProject(ctx context.Context, projectID int64) ([]models.Transaction, error) {
	return s.repo.ListTransactionsForProject(ctx, projectID)
}

// UpdateTransaction replaces a transaction in place. The one-sided
// credit/debit shape is validated the same way as on insert.
func (s *DefaultService) UpdateTransaction(ctx context.Context, txn models.Transaction) error {
	if txn.CreditMinor < 0 || txn.DebitMinor < 0 || txn.CreditMinor+txn.DebitMinor == 0 {
		return ErrInvalidAmount
	}
	txn.Title = strings.TrimSpace(txn.Title)
	if txn.Title == "" {
		return ErrBlankName
	}
	return s.repo.UpdateTransaction(ctx, &txn)
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// DeleteTransactionsForProject bulk-deletes a project's transactions. Step
// one of the trash flow when composed manually; MoveToTrash does this
// atomically with the rest of the sequence.
func (s *DefaultService) DeleteTransactionsForProject(ctx context.Context, projectID int64) error {
	return s.repo.DeleteTransactionsForProject(ctx, projectID)
}
