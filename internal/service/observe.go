package service

import (
	"context"

	"github.com/papilo-topato/AccountsManagerApplication/internal/models"
	"github.com/papilo-topato/AccountsManagerApplication/internal/watch"
)

// The Observe* methods are the explicit publish/subscribe rendition of the
// observed-query pattern: each subscribes to the query's dependency tables,
// emits the current snapshot immediately, and re-runs the query after every
// committed write to those tables for as long as ctx is live. There is no
// cached or incrementally maintained result; every emission is recomputed
// from source rows.

// ObserveProjects streams the live project list in display order.
func (s *DefaultService) ObserveProjects(ctx context.Context) <-chan []models.Project {
	return observe(ctx, s, []watch.Table{watch.TableProjects}, s.repo.ListProjects)
}

// ObserveProjectBalances streams per-project balances; it depends on both
// the projects and transactions tables, so a write to either re-emits.
func (s *DefaultService) ObserveProjectBalances(ctx context.Context) <-chan []models.ProjectBalance {
	return observe(ctx, s,
		[]watch.Table{watch.TableProjects, watch.TableTransactions},
		s.repo.ListProjectBalances)
}

// ObserveTransactionsForProject streams one project's transactions, newest
// first.
func (s *DefaultService) ObserveTransactionsForProject(ctx context.Context, projectID int64) <-chan []models.Transaction {
	return observe(ctx, s,
		[]watch.Table{watch.TableTransactions},
		func(ctx context.Context) ([]models.Transaction, error) {
			return s.repo.ListTransactionsForProject(ctx, projectID)
		})
}

// ObserveTrash streams the trash list, most recently deleted first.
func (s *DefaultService) ObserveTrash(ctx context.Context) <-chan []models.DeletedProject {
	return observe(ctx, s, []watch.Table{watch.TableDeletedProjects}, s.repo.ListDeletedProjects)
}

// observe runs the subscribe/re-query/push loop shared by all Observe*
// methods. The subscription is taken before the first query so no write
// between "query" and "subscribe" can be missed; cancellation goes through
// the broker's grace period.
func observe[T any](ctx context.Context, s *DefaultService, tables []watch.Table, fetch func(context.Context) (T, error)) <-chan T {
	out := make(chan T, 1)
	sub := s.broker.Subscribe(tables...)

	go func() {
		defer close(out)
		defer sub.Cancel()

		for {
			snapshot, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error("observed query failed: %v", err)
			} else {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-sub.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
