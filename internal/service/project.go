package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
)

// CreateProject validates and inserts a new project at display order 0,
// pushing every existing project down one slot. Whitespace is trimmed from
// both fields and an empty description becomes absent rather than an empty
// string.
func (s *DefaultService) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	existing, err := s.repo.GetProjectByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error checking project name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	project := &models.Project{
		Name:        name,
		Description: trimToNil(description),
		CreatedAtMs: s.nowMs(),
	}

	if err := s.repo.InsertProjectAtTop(ctx, project); err != nil {
		// A concurrent create can slip past the pre-check and hit the
		// unique index instead; surface it as the same domain error.
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	return project, nil
}

func (s *DefaultService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *DefaultService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *DefaultService) ListProjectBalances(ctx context.Context) ([]models.ProjectBalance, error) {
	return s.repo.ListProjectBalances(ctx)
}

// UpdateProject performs a full-row replace; the caller supplies every
// field including unchanged ones. Renaming onto another live project's
// name fails with the duplicate-name error.
func (s *DefaultService) UpdateProject(ctx context.Context, project models.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return ErrBlankName
	}
	if project.Description != nil {
		project.Description = trimToNil(*project.Description)
	}

	clash, err := s.repo.FindProjectByNameExcludingID(ctx, project.Name, project.ID)
	if err != nil {
		return fmt.Errorf("error checking project name: %w", err)
	}
	if clash != nil {
		return ErrDuplicateName
	}

	if err := s.repo.UpdateProject(ctx, &project); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("error updating project: %w", err)
	}
	return nil
}

// UpdateProjectOrder sets one project's display order. No validation that
// the resulting orders are contiguous or unique; that is the caller's
// responsibility.
func (s *DefaultService) UpdateProjectOrder(ctx context.Context, projectID int64, order int) error {
	return s.repo.UpdateDisplayOrder(ctx, projectID, order)
}

// UpdateProjects applies a batch reorder.
func (s *DefaultService) UpdateProjects(ctx context.Context, projects []models.Project) error {
	return s.repo.UpdateProjects(ctx, projects)
}

// DeleteProject removes the live row directly. It exists for the trash flow
// and tooling; the user-facing flow always archives first (MoveToTrash).
func (s *DefaultService) DeleteProject(ctx context.Context, project models.Project) error {
	return s.repo.DeleteProject(ctx, project.ID)
}

// trimToNil trims s and returns nil for an empty result, so blank
// descriptions are stored as absent rather than "".
func trimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
