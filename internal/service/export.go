package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/papilo-topato/AccountsManagerApplication/internal/export"
	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// ExportProjectCSV renders one project's transaction history as CSV,
// returning a suggested attachment filename and the document body.
func (s *DefaultService) ExportProjectCSV(ctx context.Context, projectID int64) (string, string, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return "", "", err
	}

	txns, err := s.repo.ListTransactionsForProject(ctx, projectID)
	if err != nil {
		return "", "", fmt.Errorf("error listing transactions: %w", err)
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("%s_export_%s.csv", project.Name, shortID())
	return filename, export.SingleProjectCSV(txns, names), nil
}

// ExportAllProjectsCSV renders every project's history, grouped by project
// in balance-list order with the running balance reset per group.
func (s *DefaultService) ExportAllProjectsCSV(ctx context.Context) (string, string, error) {
	balances, err := s.repo.ListProjectBalances(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error listing balances: %w", err)
	}

	txns, err := s.repo.ListAllTransactions(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error listing transactions: %w", err)
	}

	byProject := make(map[int64][]models.Transaction)
	for _, t := range txns {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("accounts_export_%s.csv", shortID())
	return filename, export.AllProjectsCSV(balances, byProject, names), nil
}

func (s *DefaultService) categoryNames(ctx context.Context) (map[int64]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// shortID yields a filename-safe unique suffix so repeated exports don't
// overwrite each other on the consumer's side.
func shortID() string {
	return uuid.New().String()[:8]
}
