// Package memory is an in-process record store backend. It backs tests and
// single-machine demo runs; the hosted deployment uses the sqlite backend
// with AMQP fanout instead.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gharkharch/internal/core"
	"gharkharch/internal/store"
)

// Store implements store.RecordStore entirely in memory.
type Store struct {
	expenses     *collection[core.Expense]
	creditCards  *collection[core.CreditCard]
	banks        *collection[core.Bank]
	transactions *collection[core.BankTransaction]

	mu       sync.Mutex
	families map[string]core.Family
	profiles map[string]core.UserProfile
}

var _ store.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{
		expenses: newCollection(
			func(e core.Expense, id string) core.Expense { e.ID = id; return e },
			store.PatchExpense,
			core.Expense.Validate,
		),
		creditCards: newCollection(
			func(c core.CreditCard, id string) core.CreditCard { c.ID = id; return c },
			store.PatchCreditCard,
			core.CreditCard.Validate,
		),
		banks: newCollection(
			func(b core.Bank, id string) core.Bank { b.ID = id; return b },
			store.PatchBank,
			core.Bank.Validate,
		),
		transactions: newCollection(
			func(t core.BankTransaction, id string) core.BankTransaction { t.ID = id; return t },
			store.PatchBankTransaction,
			core.BankTransaction.Validate,
		),
		families: make(map[string]core.Family),
		profiles: make(map[string]core.UserProfile),
	}
}

func (s *Store) Expenses() store.Collection[core.Expense]                 { return s.expenses }
func (s *Store) CreditCards() store.Collection[core.CreditCard]           { return s.creditCards }
func (s *Store) Banks() store.Collection[core.Bank]                       { return s.banks }
func (s *Store) BankTransactions() store.Collection[core.BankTransaction] { return s.transactions }
func (s *Store) Families() store.FamilyStore                              { return (*familyStore)(s) }
func (s *Store) Profiles() store.ProfileStore                             { return (*profileStore)(s) }

type familyStore Store

func (f *familyStore) Create(_ context.Context, fam core.Family) (string, error) {
	if err := fam.Validate(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if fam.ID == "" {
		fam.ID = uuid.NewString()
	}
	if fam.Members == nil {
		fam.Members = map[string]bool{fam.AdminUID: true}
	}
	f.families[fam.ID] = fam
	return fam.ID, nil
}

func (f *familyStore) Get(_ context.Context, id string) (core.Family, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fam, ok := f.families[id]
	if !ok {
		return core.Family{}, store.ErrNotFound
	}
	return fam, nil
}

func (f *familyStore) AddMember(_ context.Context, familyID, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fam, ok := f.families[familyID]
	if !ok {
		return store.ErrNotFound
	}
	if fam.Members == nil {
		fam.Members = make(map[string]bool)
	}
	fam.Members[uid] = true
	f.families[familyID] = fam
	return nil
}

func (f *familyStore) RemoveMember(_ context.Context, familyID, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fam, ok := f.families[familyID]
	if !ok {
		return store.ErrNotFound
	}
	delete(fam.Members, uid)
	f.families[familyID] = fam
	return nil
}

func (f *familyStore) FindByInviteCode(_ context.Context, code string) (core.Family, error) {
	code = core.NormalizeInviteCode(code)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fam := range f.families {
		if core.NormalizeInviteCode(fam.InviteCode) == code {
			return fam, nil
		}
	}
	return core.Family{}, store.ErrNotFound
}

type profileStore Store

func (p *profileStore) Upsert(_ context.Context, prof core.UserProfile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[prof.UID] = prof
	return nil
}

func (p *profileStore) Get(_ context.Context, uid string) (core.UserProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.profiles[uid]
	if !ok {
		return core.UserProfile{}, store.ErrNotFound
	}
	return prof, nil
}

func (p *profileStore) SetFamily(_ context.Context, uid, familyID string, role core.Role) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.profiles[uid]
	if !ok {
		return store.ErrNotFound
	}
	prof.FamilyID = familyID
	prof.Role = role
	p.profiles[uid] = prof
	return nil
}
