package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"gharkharch/internal/core"
)

// SnapshotStore owns the in-memory copy of a family's four collections.
// Each Apply replaces one collection wholesale and notifies listeners with an
// independent copy of the whole snapshot; listeners then recompute derived
// views from scratch. Applies are serialized, listeners run synchronously.
type SnapshotStore struct {
	mu        sync.Mutex
	snap      core.Snapshot
	listeners []func(core.Snapshot)
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Subscribe registers fn to run after every collection apply. Not safe to
// call concurrently with applies once watching has started.
func (s *SnapshotStore) Subscribe(fn func(core.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the current snapshot.
func (s *SnapshotStore) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

func (s *SnapshotStore) ApplyExpenses(expenses []core.Expense) {
	s.apply(func() { s.snap.Expenses = expenses })
}

func (s *SnapshotStore) ApplyCreditCards(cards []core.CreditCard) {
	s.apply(func() { s.snap.CreditCards = cards })
}

func (s *SnapshotStore) ApplyBanks(banks []core.Bank) {
	s.apply(func() { s.snap.Banks = banks })
}

func (s *SnapshotStore) ApplyBankTransactions(txs []core.BankTransaction) {
	s.apply(func() { s.snap.BankTransactions = txs })
}

func (s *SnapshotStore) apply(set func()) {
	s.mu.Lock()
	set()
	snap := s.snap.Clone()
	listeners := s.listeners
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// WatchFamily subscribes to all four collections of familyID and feeds every
// delivered snapshot into ss. It blocks until ctx is cancelled or a watch
// fails, and returns the first error.
func WatchFamily(ctx context.Context, rs RecordStore, familyID string, ss *SnapshotStore) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pump(ctx, rs.Expenses(), familyID, ss.ApplyExpenses) })
	g.Go(func() error { return pump(ctx, rs.CreditCards(), familyID, ss.ApplyCreditCards) })
	g.Go(func() error { return pump(ctx, rs.Banks(), familyID, ss.ApplyBanks) })
	g.Go(func() error { return pump(ctx, rs.BankTransactions(), familyID, ss.ApplyBankTransactions) })
	return g.Wait()
}

func pump[T any](ctx context.Context, col Collection[T], familyID string, apply func([]T)) error {
	ch, err := col.Watch(ctx, familyID)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-ch:
			if !ok {
				return nil
			}
			apply(snap)
		}
	}
}
