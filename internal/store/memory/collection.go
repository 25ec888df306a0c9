package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gharkharch/internal/store"
)

// collection holds one record type for all families, preserving insertion
// order so snapshot iteration is stable across reads. Watchers receive the
// full family snapshot on every change, latest-wins when they lag.
type collection[T any] struct {
	mu       sync.Mutex
	recs     map[string]map[string]T
	order    map[string][]string
	watchers map[string][]chan []T

	setID    func(T, string) T
	patch    func(T, map[string]any) (T, error)
	validate func(T) error
}

func newCollection[T any](setID func(T, string) T, patch func(T, map[string]any) (T, error), validate func(T) error) *collection[T] {
	return &collection[T]{
		recs:     make(map[string]map[string]T),
		order:    make(map[string][]string),
		watchers: make(map[string][]chan []T),
		setID:    setID,
		patch:    patch,
		validate: validate,
	}
}

func (c *collection[T]) Create(_ context.Context, familyID string, rec T) (string, error) {
	if err := c.validate(rec); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := uuid.NewString()
	rec = c.setID(rec, id)
	if c.recs[familyID] == nil {
		c.recs[familyID] = make(map[string]T)
	}
	c.recs[familyID][id] = rec
	c.order[familyID] = append(c.order[familyID], id)
	c.notifyLocked(familyID)
	return id, nil
}

func (c *collection[T]) Update(_ context.Context, familyID, id string, rec T) error {
	rec = c.setID(rec, id)
	if err := c.validate(rec); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.recs[familyID][id]; !ok {
		return store.ErrNotFound
	}
	c.recs[familyID][id] = rec
	c.notifyLocked(familyID)
	return nil
}

func (c *collection[T]) Patch(_ context.Context, familyID, id string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.recs[familyID][id]
	if !ok {
		return store.ErrNotFound
	}
	patched, err := c.patch(rec, fields)
	if err != nil {
		return err
	}
	if err := c.validate(patched); err != nil {
		return err
	}
	c.recs[familyID][id] = patched
	c.notifyLocked(familyID)
	return nil
}

func (c *collection[T]) Delete(_ context.Context, familyID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.recs[familyID][id]; !ok {
		return store.ErrNotFound
	}
	delete(c.recs[familyID], id)
	ids := c.order[familyID]
	for i, v := range ids {
		if v == id {
			c.order[familyID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	c.notifyLocked(familyID)
	return nil
}

func (c *collection[T]) List(_ context.Context, familyID string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(familyID), nil
}

func (c *collection[T]) Watch(ctx context.Context, familyID string) (<-chan []T, error) {
	ch := make(chan []T, 1)
	c.mu.Lock()
	c.watchers[familyID] = append(c.watchers[familyID], ch)
	ch <- c.snapshotLocked(familyID)
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		ws := c.watchers[familyID]
		for i, w := range ws {
			if w == ch {
				c.watchers[familyID] = append(ws[:i], ws[i+1:]...)
				close(ch)
				return
			}
		}
	}()
	return ch, nil
}

func (c *collection[T]) snapshotLocked(familyID string) []T {
	out := make([]T, 0, len(c.order[familyID]))
	for _, id := range c.order[familyID] {
		out = append(out, c.recs[familyID][id])
	}
	return out
}

func (c *collection[T]) notifyLocked(familyID string) {
	snap := c.snapshotLocked(familyID)
	for _, ch := range c.watchers[familyID] {
		select {
		case ch <- snap:
		default:
			// Replace the stale pending snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
