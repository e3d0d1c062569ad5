package service

import (
	"context"
	"errors"
	"time"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

// Domain errors surfaced to callers. ErrDuplicateName carries a message the
// user must see; everything else storage-related stays generic.
var (
	ErrBlankName      = errors.New("name must not be blank")
	ErrDuplicateName  = errors.New("a project with this name already exists")
	ErrNotFound       = errors.New("not found")
	ErrInvalidAmount  = errors.New("amount must be a positive value")
	ErrAlreadyInTrash = errors.New("project is already in the trash")
)

// Service defines all the business logic operations
type Service interface {
	// Project operations
	CreateProject(ctx context.Context, name, description string) (*models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectBalances(ctx context.Context) ([]models.ProjectBalance, error)
	UpdateProject(ctx context.Context, project models.Project) error
	UpdateProjectOrder(ctx context.Context, projectID int64, order int) error
	UpdateProjects(ctx context.Context, projects []models.Project) error
	DeleteProject(ctx context.Context, project models.Project) error

	// Transaction operations
	AddIncome(ctx context.Context, projectID, amountMinor int64, title string, timestampMs int64, categoryID *int64, notes *string) (*models.Transaction, error)
	AddExpense(ctx context.Context, projectID, amountMinor int64, title string, timestampMs int64, categoryID *int64, notes *string) (*models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactionsForProject(ctx context.Context, projectID int64) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	DeleteTransactionsForProject(ctx context.Context, projectID int64) error

	// Category operations
	AddCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Trash lifecycle
	MoveToTrash(ctx context.Context, projectID int64) error
	ListTrash(ctx context.Context) ([]models.DeletedProject, error)
	RestoreFromTrash(ctx context.Context, originalID int64) (*models.Project, error)
	PermanentlyDelete(ctx context.Context, originalID int64) error
	CleanupOldDeletedProjects(ctx context.Context) (int64, error)

	// Export
	ExportProjectCSV(ctx context.Context, projectID int64) (string, string, error)
	ExportAllProjectsCSV(ctx context.Context) (string, string, error)

	// Read subscriptions: each returns a channel that carries a fresh
	// snapshot after every relevant committed write, starting with the
	// current state, until ctx is cancelled.
	ObserveProjects(ctx context.Context) <-chan []models.Project
	ObserveProjectBalances(ctx context.Context) <-chan []models.ProjectBalance
	ObserveTransactionsForProject(ctx context.Context, projectID int64) <-chan []models.Transaction
	ObserveTrash(ctx context.Context) <-chan []models.DeletedProject
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo      repository.Repository
	broker    *watch.Broker
	logger    *utils.Logger
	retention time.Duration
	now       func() time.Time
}

// NewDefaultService creates a new DefaultService. retentionDays controls how
// long trashed projects survive before CleanupOldDeletedProjects purges them.
func NewDefaultService(repo repository.Repository, broker *watch.Broker, logger *utils.Logger, retentionDays int) *DefaultService {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &DefaultService{
		repo:      repo,
		broker:    broker,
		logger:    logger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

func (s *DefaultService) nowMs() int64 {
	return s.now().UnixMilli()
}
