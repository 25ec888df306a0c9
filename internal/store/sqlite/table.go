package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"gharkharch/internal/store"
)

// rowScanner is the subset of sql.Row/sql.Rows both scans go through.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableSpec describes one record table: SQL plus binding, scanning, patching
// and validation for its record type.
type tableSpec[T any] struct {
	insertSQL string
	updateSQL string
	deleteSQL string
	listSQL   string
	getSQL    string
	bind      func(T) []any
	scan      func(rowScanner) (T, error)
	setID     func(T, string) T
	patch     func(T, map[string]any) (T, error)
	validate  func(T) error
}

// table implements store.Collection[T] for one tableSpec. Watchers are
// in-process; the store's notifier carries changes to other clients.
type table[T any] struct {
	st   *Store
	name string
	spec tableSpec[T]

	mu       sync.Mutex
	watchers map[string][]chan []T
}

func newTable[T any](st *Store, name string, spec tableSpec[T]) *table[T] {
	return &table[T]{
		st:       st,
		name:     name,
		spec:     spec,
		watchers: make(map[string][]chan []T),
	}
}

func (t *table[T]) Create(ctx context.Context, familyID string, rec T) (string, error) {
	if err := t.spec.validate(rec); err != nil {
		return "", err
	}
	id := uuid.NewString()
	rec = t.spec.setID(rec, id)
	args := append([]any{id, familyID}, t.spec.bind(rec)...)
	if _, err := t.st.db.ExecContext(ctx, t.spec.insertSQL, args...); err != nil {
		return "", fmt.Errorf("insert %s: %w", t.name, err)
	}
	t.changed(ctx, familyID)
	return id, nil
}

func (t *table[T]) Update(ctx context.Context, familyID, id string, rec T) error {
	rec = t.spec.setID(rec, id)
	if err := t.spec.validate(rec); err != nil {
		return err
	}
	args := append(t.spec.bind(rec), familyID, id)
	res, err := t.st.db.ExecContext(ctx, t.spec.updateSQL, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	t.changed(ctx, familyID)
	return nil
}

func (t *table[T]) Patch(ctx context.Context, familyID, id string, fields map[string]any) error {
	rec, err := t.get(ctx, familyID, id)
	if err != nil {
		return err
	}
	patched, err := t.spec.patch(rec, fields)
	if err != nil {
		return err
	}
	return t.Update(ctx, familyID, id, patched)
}

func (t *table[T]) Delete(ctx context.Context, familyID, id string) error {
	res, err := t.st.db.ExecContext(ctx, t.spec.deleteSQL, familyID, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	t.changed(ctx, familyID)
	return nil
}

func (t *table[T]) List(ctx context.Context, familyID string) ([]T, error) {
	rows, err := t.st.db.QueryContext(ctx, t.spec.listSQL, familyID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		rec, err := t.spec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *table[T]) Watch(ctx context.Context, familyID string) (<-chan []T, error) {
	snap, err := t.List(ctx, familyID)
	if err != nil {
		return nil, err
	}

	ch := make(chan []T, 1)
	t.mu.Lock()
	t.watchers[familyID] = append(t.watchers[familyID], ch)
	ch <- snap
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		defer t.mu.Unlock()
		ws := t.watchers[familyID]
		for i, w := range ws {
			if w == ch {
				t.watchers[familyID] = append(ws[:i], ws[i+1:]...)
				close(ch)
				return
			}
		}
	}()
	return ch, nil
}

func (t *table[T]) get(ctx context.Context, familyID, id string) (T, error) {
	row := t.st.db.QueryRowContext(ctx, t.spec.getSQL, familyID, id)
	rec, err := t.spec.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, store.ErrNotFound
	}
	return rec, err
}

// changed runs after every successful local mutation: refresh in-process
// watchers and tell other clients. Notification failure is logged, never
// surfaced; the write itself already landed.
func (t *table[T]) changed(ctx context.Context, familyID string) {
	if err := t.refresh(ctx, familyID); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh watchers",
			"collection", t.name,
			"family_id", familyID,
			"error", err)
	}
	if t.st.notifier == nil {
		return
	}
	if err := t.st.notifier.PublishChange(ctx, familyID, t.name); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"collection", t.name,
			"family_id", familyID,
			"error", err)
	}
}

// refresh re-reads the collection and pushes it to local watchers,
// latest-wins when a watcher lags.
func (t *table[T]) refresh(ctx context.Context, familyID string) error {
	t.mu.Lock()
	n := len(t.watchers[familyID])
	t.mu.Unlock()
	if n == 0 {
		return nil
	}

	snap, err := t.List(ctx, familyID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.watchers[familyID] {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return nil
}
