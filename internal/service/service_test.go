package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papilo-topato/AccountsManagerApplication/internal/config"
	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/repository"
	"github.com/papilo-topato/AccountsManagerApplication/internal/utils"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

func newTestService(t *testing.T) *DefaultService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := config.SetupDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	broker := watch.NewBrokerWithGrace(0)
	repo := repository.NewSQLiteRepository(db, broker)
	return NewDefaultService(repo, broker, utils.NewLogger(), 30)
}

func TestCreateProjectValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Blank and whitespace-only names are rejected before touching storage.
	_, err := svc.CreateProject(ctx, "", "")
	assert.ErrorIs(t, err, ErrBlankName)

	_, err = svc.CreateProject(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrBlankName)

	// Names are stored trimmed.
	p, err := svc.CreateProject(ctx, "  Trip  ", "  beach  ")
	require.NoError(t, err)
	assert.Equal(t, "Trip", p.Name)
	require.NotNil(t, p.Description)
	assert.Equal(t, "beach", *p.Description)
	assert.NotZero(t, p.CreatedAtMs)

	// A second project with the same trimmed name is a duplicate.
	_, err = svc.CreateProject(ctx, "Trip", "")
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = svc.CreateProject(ctx, " Trip ", "")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreateProjectBlankDescriptionIsNull(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.CreateProject(context.Background(), "Plain", "   ")
	require.NoError(t, err)
	assert.Nil(t, p.Description)
}

func TestUpdateProjectNameClash(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateProject(ctx, "First", "")
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, "Second", "")
	require.NoError(t, err)

	first.Name = "Second"
	err = svc.UpdateProject(ctx, *first)
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Renaming to its own current name is allowed.
	first.Name = "First"
	assert.NoError(t, svc.UpdateProject(ctx, *first))
}

func TestAddTransactionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Wallet", "")
	require.NoError(t, err)

	// Non-positive amounts never reach storage.
	_, err = svc.AddIncome(ctx, p.ID, 0, "Zero", 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.AddExpense(ctx, p.ID, -5, "Negative", 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Unknown project.
	_, err = svc.AddIncome(ctx, 9999, 100, "Orphan", 0, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	// A zero timestamp defaults to the current time.
	before := time.Now().UnixMilli()
	txn, err := svc.AddIncome(ctx, p.ID, 100, "Now", 0, nil, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, txn.TimestampMs, before)
	assert.Equal(t, int64(100), txn.CreditMinor)
	assert.Equal(t, int64(0), txn.DebitMinor)

	// An explicit timestamp is kept as given.
	txn, err = svc.AddExpense(ctx, p.ID, 250, "Then", 777, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(777), txn.TimestampMs)
	assert.Equal(t, int64(250), txn.DebitMinor)
}

func TestTrashRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Venture", "seed fund")
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, p.ID, 10000, "Funding", 0, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.MoveToTrash(ctx, p.ID))

	_, err = svc.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	trash, err := svc.ListTrash(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, p.ID, trash[0].OriginalID)

	restored, err := svc.RestoreFromTrash(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, restored.ID)
	assert.Equal(t, "Venture", restored.Name)
	assert.Equal(t, p.CreatedAtMs, restored.CreatedAtMs)

	// Transactions never come back from the trash.
	txns, err := svc.ListTransactionsForProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 0)
}

func TestMoveToTrashUnknownProject(t *testing.T) {
	svc := newTestService(t)

	err := svc.MoveToTrash(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreUnknownOriginalID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RestoreFromTrash(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupOldDeletedProjects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	p, err := svc.CreateProject(ctx, "Stale", "")
	require.NoError(t, err)
	require.NoError(t, svc.MoveToTrash(ctx, p.ID))

	// 29 days later the record is still within retention.
	svc.now = func() time.Time { return base.Add(29 * 24 * time.Hour) }
	removed, err := svc.CleanupOldDeletedProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	// Just past 30 days it is purged.
	svc.now = func() time.Time { return base.Add(30*24*time.Hour + time.Minute) }
	removed, err = svc.CleanupOldDeletedProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	trash, err := svc.ListTrash(ctx)
	require.NoError(t, err)
	assert.Len(t, trash, 0)
}

func TestObserveProjectBalances(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := svc.ObserveProjectBalances(ctx)

	// The first emission is the current (empty) snapshot.
	select {
	case snapshot := <-ch:
		assert.Len(t, snapshot, 0)
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	p, err := svc.CreateProject(ctx, "Live", "")
	require.NoError(t, err)

	// The project insert re-emits.
	waitForBalance(t, ch, p.ID, 0)

	_, err = svc.AddIncome(ctx, p.ID, 500, "In", 0, nil, nil)
	require.NoError(t, err)

	// So does a transaction write, with the new balance.
	waitForBalance(t, ch, p.ID, 500)
}

// waitForBalance reads emissions until the project shows the wanted balance.
// Snapshots may coalesce, so intermediate states are allowed to be skipped.
func waitForBalance(t *testing.T, ch <-chan []models.ProjectBalance, projectID, want int64) {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case snapshot := <-ch:
			for _, b := range snapshot {
				if b.ProjectID == projectID && b.Balance == want {
					return
				}
			}
		case <-deadline:
			t.Fatalf("balance %d for project %d never observed", want, projectID)
		}
	}
}

func TestObserveStopsOnCancel(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch := svc.ObserveProjects(ctx)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	cancel()

	// The channel closes once the context is gone.
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
