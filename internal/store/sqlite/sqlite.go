// Package sqlite is a record store backend over a shared SQLite database.
// It pairs with the amqp package for realtime behavior: local watchers are
// notified in-process, and every mutation publishes a change event so other
// clients of the same database reload the affected collection.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gharkharch/internal/core"
	"gharkharch/internal/store"
)

// Notifier publishes collection-change events to other clients. It is
// optional; without one only in-process watchers observe changes.
type Notifier interface {
	PublishChange(ctx context.Context, familyID, collection string) error
}

// Store implements store.RecordStore over SQLite.
type Store struct {
	db       *sql.DB
	notifier Notifier

	expenses     *table[core.Expense]
	creditCards  *table[core.CreditCard]
	banks        *table[core.Bank]
	transactions *table[core.BankTransaction]
}

var _ store.RecordStore = (*Store)(nil)

func New(dbPath string, notifier Notifier) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db, notifier: notifier}
	s.expenses = newTable(s, store.CollectionExpenses, expenseTable)
	s.creditCards = newTable(s, store.CollectionCreditCards, creditCardTable)
	s.banks = newTable(s, store.CollectionBanks, bankTable)
	s.transactions = newTable(s, store.CollectionBankTransactions, bankTransactionTable)
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Expenses() store.Collection[core.Expense]                 { return s.expenses }
func (s *Store) CreditCards() store.Collection[core.CreditCard]           { return s.creditCards }
func (s *Store) Banks() store.Collection[core.Bank]                       { return s.banks }
func (s *Store) BankTransactions() store.Collection[core.BankTransaction] { return s.transactions }
func (s *Store) Families() store.FamilyStore                              { return &familyStore{s} }
func (s *Store) Profiles() store.ProfileStore                             { return &profileStore{s} }

// ApplyRemoteChange reloads one collection and refreshes local watchers.
// Wired to the AMQP consumer; unknown collections are ignored so newer
// clients can add collections without breaking older ones.
func (s *Store) ApplyRemoteChange(ctx context.Context, familyID, collection string) error {
	switch collection {
	case store.CollectionExpenses:
		return s.expenses.refresh(ctx, familyID)
	case store.CollectionCreditCards:
		return s.creditCards.refresh(ctx, familyID)
	case store.CollectionBanks:
		return s.banks.refresh(ctx, familyID)
	case store.CollectionBankTransactions:
		return s.transactions.refresh(ctx, familyID)
	default:
		return nil
	}
}

// Table descriptors: SQL plus binding and scanning for one record type.

var expenseTable = tableSpec[core.Expense]{
	insertSQL: `INSERT INTO expenses
		(id, family_id, item, category, amount_cents, quantity, unit, date, payment_mode, card_id, bank_id, created_at, updated_at, added_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	updateSQL: `UPDATE expenses SET
		item = ?, category = ?, amount_cents = ?, quantity = ?, unit = ?, date = ?, payment_mode = ?, card_id = ?, bank_id = ?, created_at = ?, updated_at = ?, added_by = ?
		WHERE family_id = ? AND id = ?`,
	deleteSQL: `DELETE FROM expenses WHERE family_id = ? AND id = ?`,
	listSQL: `SELECT id, item, category, amount_cents, quantity, unit, date, payment_mode, card_id, bank_id, created_at, updated_at, added_by
		FROM expenses WHERE family_id = ? ORDER BY rowid`,
	getSQL: `SELECT id, item, category, amount_cents, quantity, unit, date, payment_mode, card_id, bank_id, created_at, updated_at, added_by
		FROM expenses WHERE family_id = ? AND id = ?`,
	bind: func(e core.Expense) []any {
		return []any{
			e.Item, e.Category, e.Amount.Cents, e.Quantity, e.Unit,
			e.Date.String(), string(e.PaymentMode), e.CardID, e.BankID,
			e.CreatedAt.UTC().Format(time.RFC3339), e.UpdatedAt.UTC().Format(time.RFC3339), e.AddedBy,
		}
	},
	scan: func(row rowScanner) (core.Expense, error) {
		var (
			e                            core.Expense
			date, created, updated, mode string
		)
		err := row.Scan(&e.ID, &e.Item, &e.Category, &e.Amount.Cents, &e.Quantity, &e.Unit,
			&date, &mode, &e.CardID, &e.BankID, &created, &updated, &e.AddedBy)
		if err != nil {
			return e, err
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return e, fmt.Errorf("expense %s: bad date %q: %w", e.ID, date, err)
		}
		e.PaymentMode = core.PaymentMode(mode)
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		return e, nil
	},
	setID:    func(e core.Expense, id string) core.Expense { e.ID = id; return e },
	patch:    store.PatchExpense,
	validate: core.Expense.Validate,
}

var creditCardTable = tableSpec[core.CreditCard]{
	insertSQL: `INSERT INTO credit_cards (id, family_id, name, limit_cents, bill_day, due_day) VALUES (?, ?, ?, ?, ?, ?)`,
	updateSQL: `UPDATE credit_cards SET name = ?, limit_cents = ?, bill_day = ?, due_day = ? WHERE family_id = ? AND id = ?`,
	deleteSQL: `DELETE FROM credit_cards WHERE family_id = ? AND id = ?`,
	listSQL:   `SELECT id, name, limit_cents, bill_day, due_day FROM credit_cards WHERE family_id = ? ORDER BY rowid`,
	getSQL:    `SELECT id, name, limit_cents, bill_day, due_day FROM credit_cards WHERE family_id = ? AND id = ?`,
	bind: func(c core.CreditCard) []any {
		return []any{c.Name, c.Limit.Cents, c.BillDay, c.DueDay}
	},
	scan: func(row rowScanner) (core.CreditCard, error) {
		var c core.CreditCard
		err := row.Scan(&c.ID, &c.Name, &c.Limit.Cents, &c.BillDay, &c.DueDay)
		return c, err
	},
	setID:    func(c core.CreditCard, id string) core.CreditCard { c.ID = id; return c },
	patch:    store.PatchCreditCard,
	validate: core.CreditCard.Validate,
}

var bankTable = tableSpec[core.Bank]{
	insertSQL: `INSERT INTO banks (id, family_id, name, initial_balance_cents) VALUES (?, ?, ?, ?)`,
	updateSQL: `UPDATE banks SET name = ?, initial_balance_cents = ? WHERE family_id = ? AND id = ?`,
	deleteSQL: `DELETE FROM banks WHERE family_id = ? AND id = ?`,
	listSQL:   `SELECT id, name, initial_balance_cents FROM banks WHERE family_id = ? ORDER BY rowid`,
	getSQL:    `SELECT id, name, initial_balance_cents FROM banks WHERE family_id = ? AND id = ?`,
	bind: func(b core.Bank) []any {
		return []any{b.Name, b.InitialBalance.Cents}
	},
	scan: func(row rowScanner) (core.Bank, error) {
		var b core.Bank
		err := row.Scan(&b.ID, &b.Name, &b.InitialBalance.Cents)
		return b, err
	},
	setID:    func(b core.Bank, id string) core.Bank { b.ID = id; return b },
	patch:    store.PatchBank,
	validate: core.Bank.Validate,
}

var bankTransactionTable = tableSpec[core.BankTransaction]{
	insertSQL: `INSERT INTO bank_transactions (id, family_id, bank_id, amount_cents, kind, description, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	updateSQL: `UPDATE bank_transactions SET bank_id = ?, amount_cents = ?, kind = ?, description = ?, date = ? WHERE family_id = ? AND id = ?`,
	deleteSQL: `DELETE FROM bank_transactions WHERE family_id = ? AND id = ?`,
	listSQL:   `SELECT id, bank_id, amount_cents, kind, description, date FROM bank_transactions WHERE family_id = ? ORDER BY rowid`,
	getSQL:    `SELECT id, bank_id, amount_cents, kind, description, date FROM bank_transactions WHERE family_id = ? AND id = ?`,
	bind: func(t core.BankTransaction) []any {
		return []any{t.BankID, t.Amount.Cents, string(t.Kind), t.Description, t.Date.String()}
	},
	scan: func(row rowScanner) (core.BankTransaction, error) {
		var (
			t          core.BankTransaction
			kind, date string
		)
		err := row.Scan(&t.ID, &t.BankID, &t.Amount.Cents, &kind, &t.Description, &date)
		if err != nil {
			return t, err
		}
		t.Kind = core.TransactionKind(kind)
		if t.Date, err = core.ParseDate(date); err != nil {
			return t, fmt.Errorf("bank transaction %s: bad date %q: %w", t.ID, date, err)
		}
		return t, nil
	},
	setID:    func(t core.BankTransaction, id string) core.BankTransaction { t.ID = id; return t },
	patch:    store.PatchBankTransaction,
	validate: core.BankTransaction.Validate,
}
