package core

import (
	"errors"
	"strings"
	"time"
)

// PaymentMode is how an expense was paid.
type PaymentMode string

const (
	PayCash       PaymentMode = "Cash"
	PayCreditCard PaymentMode = "Credit Card"
	PayUPI        PaymentMode = "UPI"
	PayBank       PaymentMode = "Bank"
)

// PaymentModes lists the selectable payment modes in display order.
var PaymentModes = []PaymentMode{PayCash, PayCreditCard, PayUPI, PayBank}

// TransactionKind classifies a bank transaction. The application only ever
// records credits; debits are represented implicitly by Bank/UPI expenses.
type TransactionKind string

const (
	TxCredit TransactionKind = "credit"
	TxDebit  TransactionKind = "debit"
)

type (
	// Expense is a single recorded purchase. CardID is set only for credit
	// card payments, BankID only for Bank/UPI payments; the two are mutually
	// exclusive. Quantity and Unit are either both set or both absent.
	Expense struct {
		ID          string
		Item        string
		Category    string
		Amount      Money
		Quantity    float64
		Unit        string
		Date        Date
		PaymentMode PaymentMode
		CardID      string
		BankID      string
		CreatedAt   time.Time
		UpdatedAt   time.Time
		AddedBy     string
	}

	// CreditCard is a card the family charges expenses to. BillDay and DueDay
	// are days of month in [1,31].
	CreditCard struct {
		ID      string
		Name    string
		Limit   Money
		BillDay int
		DueDay  int
	}

	// Bank is an account with an initial balance recorded before any
	// transaction. The current balance is always derived, never stored.
	Bank struct {
		ID             string
		Name           string
		InitialBalance Money
	}

	// BankTransaction is a credit into a bank account.
	BankTransaction struct {
		ID          string
		BankID      string
		Amount      Money
		Kind        TransactionKind
		Description string
		Date        Date
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyItem      = errors.New("empty item")
	ErrEmptyCategory  = errors.New("empty category")
	ErrEmptyName      = errors.New("empty name")
	ErrBadPaymentMode = errors.New("invalid payment mode")
	ErrBadCardRef     = errors.New("card reference requires credit card payment mode")
	ErrBadBankRef     = errors.New("bank reference requires bank or UPI payment mode")
	ErrBadQuantity    = errors.New("quantity and unit must be set together")
	ErrBadDayOfMonth  = errors.New("day of month must be between 1 and 31")
	ErrBadKind        = errors.New("invalid transaction kind")
)

func (pm PaymentMode) Valid() bool {
	switch pm {
	case PayCash, PayCreditCard, PayUPI, PayBank:
		return true
	default:
		return false
	}
}

// UsesBank reports whether the payment mode debits a bank account.
func (pm PaymentMode) UsesBank() bool {
	return pm == PayBank || pm == PayUPI
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Item) == "" {
		return ErrEmptyItem
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.PaymentMode.Valid() {
		return ErrBadPaymentMode
	}
	if e.CardID != "" && e.PaymentMode != PayCreditCard {
		return ErrBadCardRef
	}
	if e.BankID != "" && !e.PaymentMode.UsesBank() {
		return ErrBadBankRef
	}
	if (e.Quantity > 0) != (e.Unit != "") {
		return ErrBadQuantity
	}
	return nil
}

func (c CreditCard) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if err := c.Limit.Validate(); err != nil {
		return err
	}
	if c.BillDay < 1 || c.BillDay > 31 {
		return ErrBadDayOfMonth
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrBadDayOfMonth
	}
	return nil
}

func (b Bank) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	// InitialBalance is signed; any value is acceptable.
	return nil
}

func (t BankTransaction) Validate() error {
	if t.BankID == "" {
		return errors.New("missing bank reference")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Kind != TxCredit && t.Kind != TxDebit {
		return ErrBadKind
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("empty description")
	}
	return t.Date.Validate()
}
