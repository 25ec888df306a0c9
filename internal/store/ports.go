// Package store defines the record store contract the client depends on and
// the explicit snapshot store derived views are computed from. Concrete
// backends live in the memory and sqlite subpackages.
package store

import (
	"context"
	"errors"

	"gharkharch/internal/core"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Collection names, used as change-event routing values between clients.
const (
	CollectionExpenses         = "expenses"
	CollectionCreditCards      = "creditCards"
	CollectionBanks            = "banks"
	CollectionBankTransactions = "bankTransactions"
)

// Collection is one of a family's record collections. Every mutation is
// fire-and-forget from the caller's perspective: it either lands in the store
// and is later observed through Watch, or fails with no retry and no
// rollback. Watch delivers the full collection contents on every change,
// starting with the current contents; there are no deltas.
type Collection[T any] interface {
	Create(ctx context.Context, familyID string, rec T) (id string, err error)
	Update(ctx context.Context, familyID, id string, rec T) error
	Patch(ctx context.Context, familyID, id string, fields map[string]any) error
	Delete(ctx context.Context, familyID, id string) error
	List(ctx context.Context, familyID string) ([]T, error)
	Watch(ctx context.Context, familyID string) (<-chan []T, error)
}

// FamilyStore holds the per-family-group records.
type FamilyStore interface {
	Create(ctx context.Context, fam core.Family) (id string, err error)
	Get(ctx context.Context, id string) (core.Family, error)
	AddMember(ctx context.Context, familyID, uid string) error
	RemoveMember(ctx context.Context, familyID, uid string) error
	// FindByInviteCode matches case-insensitively; ErrNotFound if no family
	// carries the code.
	FindByInviteCode(ctx context.Context, code string) (core.Family, error)
}

// ProfileStore holds the per-user profile records.
type ProfileStore interface {
	Upsert(ctx context.Context, p core.UserProfile) error
	Get(ctx context.Context, uid string) (core.UserProfile, error)
	SetFamily(ctx context.Context, uid, familyID string, role core.Role) error
}

// RecordStore is the full store contract: four per-family collections plus
// family and profile records. Identity, conflict resolution and persistence
// all belong to the backing store; this client only reads snapshots and
// issues mutation intents.
type RecordStore interface {
	Expenses() Collection[core.Expense]
	CreditCards() Collection[core.CreditCard]
	Banks() Collection[core.Bank]
	BankTransactions() Collection[core.BankTransaction]
	Families() FamilyStore
	Profiles() ProfileStore
}
