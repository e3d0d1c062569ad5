// Package watch is the change-notification layer between the persistence
// layer and read subscriptions. The repository publishes a table-changed
// event after each committed write; subscriptions interested in that table
// are nudged to re-run their query and push a fresh snapshot.
package watch

import (
	"sync"
	"time"
)

// Table identifies a dependency table for change notifications.
type Table string

const (
	TableProjects        Table = "projects"
	TableTransactions    Table = "transactions"
	TableCategories      Table = "categories"
	TableDeletedProjects Table = "deleted_projects"
)

// DefaultGracePeriod is how long a cancelled subscription keeps receiving
// notifications before it is actually torn down. It tolerates rapid
// cancel/resubscribe cycles (a UI consumer going away and immediately
// coming back) without the broker thrashing its subscriber set.
const DefaultGracePeriod = 5 * time.Second

// Broker fans table-changed events out to subscriptions.
type Broker struct {
	mu    sync.Mutex
	subs  map[*Subscription]struct{}
	grace time.Duration
}

// NewBroker creates a Broker with the default cancellation grace period.
func NewBroker() *Broker {
	return NewBrokerWithGrace(DefaultGracePeriod)
}

// NewBrokerWithGrace creates a Broker with an explicit cancellation grace
// period. Tests use a zero grace period for immediate teardown.
func NewBrokerWithGrace(grace time.Duration) *Broker {
	return &Broker{
		subs:  make(map[*Subscription]struct{}),
		grace: grace,
	}
}

// Subscribe registers interest in changes to any of the given tables.
// The returned subscription's channel carries coalesced notifications:
// a burst of writes between two reads collapses into a single wakeup,
// and each wakeup means "re-run your query", not "one row changed".
func (b *Broker) Subscribe(tables ...Table) *Subscription {
	ch := make(chan struct{}, 1)
	s := &Subscription{
		C:      ch,
		ch:     ch,
		tables: make(map[Table]struct{}, len(tables)),
		broker: b,
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish notifies every subscription interested in any of the given tables.
// It never blocks: a subscription that already has a pending notification is
// left as-is.
func (b *Broker) Publish(tables ...Table) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs {
		if !s.matches(tables) {
			continue
		}
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription is a long-lived registration for table-changed events.
type Subscription struct {
	// C receives a value whenever a dependency table changed since the last
	// receive. It is never closed; consumers stop via their own context.
	C <-chan struct{}

	ch     chan struct{}
	tables map[Table]struct{}
	broker *Broker

	cancelOnce sync.Once
}

func (s *Subscription) matches(tables []Table) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}

// Cancel schedules the subscription for removal after the broker's grace
// period. Until then it keeps receiving notifications so a consumer that
// resubscribes quickly observes no gap. Cancel is idempotent.
func (s *Subscription) Cancel() {
	s.cancelOnce.Do(func() {
		if s.broker.grace <= 0 {
			s.broker.remove(s)
			return
		}
		time.AfterFunc(s.broker.grace, func() {
			s.broker.remove(s)
		})
	})
}
