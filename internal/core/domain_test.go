package core

import (
	"errors"
	"testing"
	"time"
)

func validExpense() Expense {
	return Expense{
		Item:        "Milk",
		Category:    "Dairy",
		Amount:      Money{Cents: 6500},
		Date:        NewDate(2025, 1, 15),
		PaymentMode: PayCash,
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := validExpense().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Expense)
		want   error
	}{
		{"zero date", func(e *Expense) { e.Date = Date{Time: time.Time{}} }, nil},
		{"empty item", func(e *Expense) { e.Item = "  " }, ErrEmptyItem},
		{"empty category", func(e *Expense) { e.Category = "" }, ErrEmptyCategory},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"bogus payment mode", func(e *Expense) { e.PaymentMode = "Cheque" }, ErrBadPaymentMode},
		{"card ref without card mode", func(e *Expense) { e.CardID = "c1" }, ErrBadCardRef},
		{"bank ref without bank mode", func(e *Expense) { e.BankID = "b1" }, ErrBadBankRef},
		{"quantity without unit", func(e *Expense) { e.Quantity = 2 }, ErrBadQuantity},
		{"unit without quantity", func(e *Expense) { e.Unit = "kg" }, ErrBadQuantity},
	}
	for _, tc := range cases {
		e := validExpense()
		tc.mutate(&e)
		err := e.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestExpenseValidateReferences(t *testing.T) {
	card := validExpense()
	card.PaymentMode = PayCreditCard
	card.CardID = "c1"
	if err := card.Validate(); err != nil {
		t.Fatalf("card expense: expected ok, got %v", err)
	}

	upi := validExpense()
	upi.PaymentMode = PayUPI
	upi.BankID = "b1"
	if err := upi.Validate(); err != nil {
		t.Fatalf("upi expense: expected ok, got %v", err)
	}

	qty := validExpense()
	qty.Quantity = 1.5
	qty.Unit = "kg"
	if err := qty.Validate(); err != nil {
		t.Fatalf("quantity expense: expected ok, got %v", err)
	}
}

func TestPaymentModeUsesBank(t *testing.T) {
	cases := []struct {
		mode PaymentMode
		bank bool
	}{
		{PayBank, true},
		{PayUPI, true},
		{PayCash, false},
		{PayCreditCard, false},
	}
	for _, tc := range cases {
		if got := tc.mode.UsesBank(); got != tc.bank {
			t.Fatalf("%s: expected %v, got %v", tc.mode, tc.bank, got)
		}
	}
}

func TestCreditCardValidate(t *testing.T) {
	good := CreditCard{Name: "Platinum", Limit: Money{Cents: 10000000}, BillDay: 15, DueDay: 5}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []CreditCard{
		{Name: "", Limit: Money{Cents: 1}, BillDay: 15, DueDay: 5},
		{Name: "X", Limit: Money{}, BillDay: 15, DueDay: 5},
		{Name: "X", Limit: Money{Cents: 1}, BillDay: 0, DueDay: 5},
		{Name: "X", Limit: Money{Cents: 1}, BillDay: 15, DueDay: 32},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBankValidate(t *testing.T) {
	if err := (Bank{Name: "HDFC", InitialBalance: Money{Cents: -500}}).Validate(); err != nil {
		t.Fatalf("negative initial balance should be ok, got %v", err)
	}
	if err := (Bank{Name: " "}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestBankTransactionValidate(t *testing.T) {
	good := BankTransaction{
		BankID:      "b1",
		Amount:      Money{Cents: 50000},
		Kind:        TxCredit,
		Description: "Salary",
		Date:        NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Kind = "transfer"
	if err := bad.Validate(); !errors.Is(err, ErrBadKind) {
		t.Fatalf("expected ErrBadKind, got %v", err)
	}
	bad = good
	bad.BankID = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for missing bank reference")
	}
}
