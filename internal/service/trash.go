package service

import (
	"context"
	"fmt"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
)

// MoveToTrash archives a live project: its transactions are discarded, a
// snapshot lands in the trash table, and the live row is removed, all in a
// single storage transaction. Transactions are permanently gone at this
// point; restore recovers project metadata only.
func (s *DefaultService) MoveToTrash(ctx context.Context, projectID int64) error {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("error getting project: %w", err)
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.repo.MoveProjectToTrash(ctx, project, s.nowMs()); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyInTrash
		}
		return fmt.Errorf("error moving project to trash: %w", err)
	}
	return nil
}

func (s *DefaultService) ListTrash(ctx context.Context) ([]models.DeletedProject, error) {
	return s.repo.ListDeletedProjects(ctx)
}

// RestoreFromTrash brings a trashed project back to life with its original
// identifier, name, description, and creation timestamp. The restored
// project has zero transactions. Restoring into a name meanwhile taken by
// a live project fails with the duplicate-name error.
func (s *DefaultService) RestoreFromTrash(ctx context.Context, originalID int64) (*models.Project, error) {
	deleted, err := s.repo.GetDeletedProjectByOriginalID(ctx, originalID)
	if err != nil {
		return nil, fmt.Errorf("error getting trash record: %w", err)
	}
	if deleted == nil {
		return nil, ErrNotFound
	}

	clash, err := s.repo.GetProjectByName(ctx, deleted.Name)
	if err != nil {
		return nil, fmt.Errorf("error checking project name: %w", err)
	}
	if clash != nil {
		return nil, ErrDuplicateName
	}

	project, err := s.repo.RestoreDeletedProject(ctx, deleted)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("error restoring project: %w", err)
	}
	return project, nil
}

// PermanentlyDelete removes the trash record; nothing live remains to
// affect.
func (s *DefaultService) PermanentlyDelete(ctx context.Context, originalID int64) error {
	deleted, err := s.repo.GetDeletedProjectByOriginalID(ctx, originalID)
	if err != nil {
		return fmt.Errorf("error getting trash record: %w", err)
	}
	if deleted == nil {
		return ErrNotFound
	}
	return s.repo.DeleteDeletedProject(ctx, deleted.ID)
}

// CleanupOldDeletedProjects purges trash records older than the configured
// retention, evaluated against the clock at call time. It is invoked
// explicitly (app start, trash-screen entry), never from a background
// timer.
func (s *DefaultService) CleanupOldDeletedProjects(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention).UnixMilli()
	removed, err := s.repo.DeleteDeletedOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up trash: %w", err)
	}
	if removed > 0 {
		s.logger.Info("purged %d expired trash record(s)", removed)
	}
	return removed, nil
}
