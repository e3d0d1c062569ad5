package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// Project operations
	InsertProjectAtTop(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	FindProjectByNameExcludingID(ctx context.Context, name string, excludeID int64) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	UpdateDisplayOrder(ctx context.Context, projectID int64, order int) error
	UpdateProjects(ctx context.Context, projects []models.Project) error
	DeleteProject(ctx context.Context, id int64) error
	ListProjectBalances(ctx context.Context) ([]models.ProjectBalance, error)

	// Transaction operations
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactionsForProject(ctx context.Context, projectID int64) ([]models.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	DeleteTransactionsForProject(ctx context.Context, projectID int64) error

	// Category operations
	InsertCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Trash operations
	MoveProjectToTrash(ctx context.Context, project *models.Project, deletedAtMs int64) error
	RestoreDeletedProject(ctx context.Context, deleted *models.DeletedProject) (*models.Project, error)
	GetDeletedProjectByOriginalID(ctx context.Context, originalID int64) (*models.DeletedProject, error)
	ListDeletedProjects(ctx context.Context) ([]models.DeletedProject, error)
	DeleteDeletedProject(ctx context.Context, id int64) error
	DeleteDeletedOlderThan(ctx context.Context, cutoffMs int64) (int64, error)
}

// SQLiteRepository implements the Repository interface over the embedded
// SQLite database. After every committed write it publishes the affected
// tables to the watch broker so read subscriptions re-run their queries.
type SQLiteRepository struct {
	db     *sqlx.DB
	broker *watch.Broker
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(db *sqlx.DB, broker *watch.Broker) *SQLiteRepository {
	return &SQLiteRepository{
		db:     db,
		broker: broker,
	}
}

// GetDB returns the underlying database connection
func (r *SQLiteRepository) GetDB() *sqlx.DB {
	return r.db
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// violation (duplicate project or category name, or a project already
// present in the trash).
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Project repository methods

// InsertProjectAtTop makes room at display order 0 and inserts the project
// there, in one transaction: every existing project's order is incremented,
// then the new row lands at 0. A reader never observes the increment without
// the insert or two projects sharing order 0.
func (r *SQLiteRepository) InsertProjectAtTop(ctx context.Context, project *models.Project) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `UPDATE projects SET display_order = display_order + 1`); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO projects (name, description, created_at_ms, display_order)
		VALUES (?, ?, ?, 0)`,
		project.Name, project.Description, project.CreatedAtMs)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	project.ID = id
	project.DisplayOrder = 0
	r.broker.Publish(watch.TableProjects)
	return nil
}

func (r *SQLiteRepository) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `SELECT * FROM projects WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Project not found
		}
		return nil, err
	}
	return &project, nil
}

func (r *SQLiteRepository) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project, `SELECT * FROM projects WHERE name = ? LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *SQLiteRepository) FindProjectByNameExcludingID(ctx context.Context, name string, excludeID int64) (*models.Project, error) {
	var project models.Project
	err := r.db.GetContext(ctx, &project,
		`SELECT * FROM projects WHERE name = ? AND id != ? LIMIT 1`, name, excludeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.db.SelectContext(ctx, &projects,
		`SELECT * FROM projects ORDER BY display_order ASC, created_at_ms DESC`)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject replaces the full row. An absent id is a no-op, not an error.
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *models.Project) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, description = ?, created_at_ms = ?, display_order = ?
		WHERE id = ?`,
		project.Name, project.Description, project.CreatedAtMs, project.DisplayOrder, project.ID)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableProjects)
	return nil
}

func (r *SQLiteRepository) UpdateDisplayOrder(ctx context.Context, projectID int64, order int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET display_order = ? WHERE id = ?`, order, projectID)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableProjects)
	return nil
}

// UpdateProjects applies a batch of full-row updates in one transaction,
// used for drag-and-drop reordering. Order contiguity is the caller's
// responsibility.
func (r *SQLiteRepository) UpdateProjects(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range projects {
		_, err = tx.ExecContext(ctx, `
			UPDATE projects
			SET name = ?, description = ?, created_at_ms = ?, display_order = ?
			WHERE id = ?`,
			p.Name, p.Description, p.CreatedAtMs, p.DisplayOrder, p.ID)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	r.broker.Publish(watch.TableProjects)
	return nil
}

// DeleteProject removes the live row. Owned transactions go with it via the
// foreign-key cascade, so both tables are published.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableProjects, watch.TableTransactions)
	return nil
}

// ListProjectBalances derives per-project balances from transaction sums.
// Projects with no transactions appear with balance 0 thanks to the left
// join and IFNULL. Most recently created projects come first, ties broken
// by insertion order.
func (r *SQLiteRepository) ListProjectBalances(ctx context.Context) ([]models.ProjectBalance, error) {
	balances := []models.ProjectBalance{}
	err := r.db.SelectContext(ctx, &balances, `
		SELECT p.id AS project_id, p.name AS name, p.description AS description,
		       IFNULL(SUM(t.credit_minor), 0) - IFNULL(SUM(t.debit_minor), 0) AS balance
		FROM projects p
		LEFT JOIN transactions t ON p.id = t.project_id
		GROUP BY p.id
		ORDER BY p.created_at_ms DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// Transaction repository methods

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (project_id, timestamp_ms, title, notes, category_id, credit_minor, debit_minor)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ProjectID, txn.TimestampMs, txn.Title, txn.Notes, txn.CategoryID,
		txn.CreditMinor, txn.DebitMinor)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	txn.ID = id
	r.broker.Publish(watch.TableTransactions)
	return nil
}

func (r *SQLiteRepository) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, `SELECT * FROM transactions WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *SQLiteRepository) ListTransactionsForProject(ctx context.Context, projectID int64) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	err := r.db.SelectContext(ctx, &txns,
		`SELECT * FROM transactions WHERE project_id = ? ORDER BY timestamp_ms DESC`, projectID)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *SQLiteRepository) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	err := r.db.SelectContext(ctx, &txns, `SELECT * FROM transactions`)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// UpdateTransaction replaces the full row. An absent id is a no-op.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET project_id = ?, timestamp_ms = ?, title = ?, notes = ?, category_id = ?,
		    credit_minor = ?, debit_minor = ?
		WHERE id = ?`,
		txn.ProjectID, txn.TimestampMs, txn.Title, txn.Notes, txn.CategoryID,
		txn.CreditMinor, txn.DebitMinor, txn.ID)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableTransactions)
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableTransactions)
	return nil
}

func (r *SQLiteRepository) DeleteTransactionsForProject(ctx context.Context, projectID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE project_id = ?`, projectID)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableTransactions)
	return nil
}

// Category repository methods

// InsertCategory inserts a category, or returns the existing one when the
// name is already taken.
func (r *SQLiteRepository) InsertCategory(ctx context.Context, name string) (*models.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
	if err != nil {
		return nil, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := r.db.GetContext(ctx, &category,
		`SELECT * FROM categories WHERE name = ?`, name); err != nil {
		return nil, err
	}

	if inserted > 0 {
		r.broker.Publish(watch.TableCategories)
	}
	return &category, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, `SELECT * FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes a category; referencing transactions get their
// category_id nulled by the foreign key, not deleted.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableCategories, watch.TableTransactions)
	return nil
}

// Trash repository methods

// MoveProjectToTrash performs the three-step trash move in one transaction:
// delete the project's transactions, insert the snapshot row, delete the
// live project row. A crash mid-sequence can never leave the transactions
// gone with the project still live, or the project trashed and live at once.
func (r *SQLiteRepository) MoveProjectToTrash(ctx context.Context, project *models.Project, deletedAtMs int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE project_id = ?`, project.ID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO deleted_projects (original_id, name, description, created_at_ms, deleted_at_ms)
		VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.Description, project.CreatedAtMs, deletedAtMs); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ?`, project.ID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	r.broker.Publish(watch.TableProjects, watch.TableTransactions, watch.TableDeletedProjects)
	return nil
}

// RestoreDeletedProject recreates the live project row under its original
// identifier, name, description, and creation timestamp, and removes the
// trash record, in one transaction. The restored project has no
// transactions; those were discarded when it was trashed.
func (r *SQLiteRepository) RestoreDeletedProject(ctx context.Context, deleted *models.DeletedProject) (*models.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, created_at_ms, display_order)
		VALUES (?, ?, ?, ?, 0)`,
		deleted.OriginalID, deleted.Name, deleted.Description, deleted.CreatedAtMs); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM deleted_projects WHERE id = ?`, deleted.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	r.broker.Publish(watch.TableProjects, watch.TableDeletedProjects)
	return &models.Project{
		ID:          deleted.OriginalID,
		Name:        deleted.Name,
		Description: deleted.Description,
		CreatedAtMs: deleted.CreatedAtMs,
	}, nil
}

func (r *SQLiteRepository) GetDeletedProjectByOriginalID(ctx context.Context, originalID int64) (*models.DeletedProject, error) {
	var deleted models.DeletedProject
	err := r.db.GetContext(ctx, &deleted,
		`SELECT * FROM deleted_projects WHERE original_id = ?`, originalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &deleted, nil
}

func (r *SQLiteRepository) ListDeletedProjects(ctx context.Context) ([]models.DeletedProject, error) {
	deleted := []models.DeletedProject{}
	err := r.db.SelectContext(ctx, &deleted,
		`SELECT * FROM deleted_projects ORDER BY deleted_at_ms DESC`)
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *SQLiteRepository) DeleteDeletedProject(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deleted_projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	r.broker.Publish(watch.TableDeletedProjects)
	return nil
}

// DeleteDeletedOlderThan purges trash records whose deletion timestamp is
// strictly before the cutoff, returning how many were removed. Rows exactly
// at the cutoff survive.
func (r *SQLiteRepository) DeleteDeletedOlderThan(ctx context.Context, cutoffMs int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM deleted_projects WHERE deleted_at_ms < ?`, cutoffMs)
	if err != nil {
		return 0, err
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		r.broker.Publish(watch.TableDeletedProjects)
	}
	return removed, nil
}
