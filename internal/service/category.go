package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
)

// AddCategory creates a category on demand. Adding an existing name returns
// the existing category rather than failing.
func (s *DefaultService) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	category, err := s.repo.InsertCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error adding category: %w", err)
	}
	return category, nil
}

func (s *DefaultService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// DeleteCategory removes a category; transactions that referenced it keep
// existing with a null category.
func (s *DefaultService) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
