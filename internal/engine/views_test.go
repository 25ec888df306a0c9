package engine

import (
	"testing"

	"gharkharch/internal/core"
)

func TestCompute(t *testing.T) {
	today := core.NewDate(2025, 3, 18)
	snap := core.Snapshot{
		Expenses: []core.Expense{
			{Item: "Dinner", Category: "Dining", Amount: core.Money{Cents: 80000}, Date: core.NewDate(2025, 3, 10), PaymentMode: core.PayCreditCard, CardID: "c1"},
			{Item: "Groceries", Category: "Groceries", Amount: core.Money{Cents: 250000}, Date: core.NewDate(2025, 3, 12), PaymentMode: core.PayUPI, BankID: "b1"},
			{Item: "Old rent", Category: "Rent", Amount: core.Money{Cents: 1500000}, Date: core.NewDate(2025, 2, 1), PaymentMode: core.PayCash},
		},
		CreditCards: []core.CreditCard{
			{ID: "c1", Name: "Platinum", Limit: core.Money{Cents: 10000000}, BillDay: 15, DueDay: 5},
		},
		Banks: []core.Bank{
			{ID: "b1", Name: "HDFC", InitialBalance: core.Money{Cents: 200000}},
		},
	}

	v := Compute(snap, today)

	if len(v.Cards) != 1 {
		t.Fatalf("expected 1 card view, got %d", len(v.Cards))
	}
	// today is past the bill day: cycle [Mar 16, Apr 15] excludes the Mar 10 charge.
	if v.Cards[0].Due.Cents != 0 {
		t.Fatalf("expected no due in the open cycle, got %d", v.Cards[0].Due.Cents)
	}

	if len(v.Banks) != 1 {
		t.Fatalf("expected 1 bank view, got %d", len(v.Banks))
	}
	if v.Banks[0].Balance.Cents != -50000 {
		t.Fatalf("expected balance -50000, got %d", v.Banks[0].Balance.Cents)
	}
	if v.Banks[0].Health != LowBalance {
		t.Fatalf("expected LowBalance, got %s", v.Banks[0].Health)
	}
	if v.TotalBankBalance.Cents != -50000 {
		t.Fatalf("expected total -50000, got %d", v.TotalBankBalance.Cents)
	}

	if v.MonthToDate.Cents != 330000 {
		t.Fatalf("expected month-to-date 330000, got %d", v.MonthToDate.Cents)
	}
	if len(v.ByCategory) != 3 || v.ByCategory[0].Category != "Rent" {
		t.Fatalf("expected Rent to lead the category chart, got %v", v.ByCategory)
	}
	if len(v.Daily) != 3 {
		t.Fatalf("expected 3 chart days, got %d", len(v.Daily))
	}
	if last := v.Categories[len(v.Categories)-1]; last != core.CustomCategory {
		t.Fatalf("expected custom sentinel last, got %q", last)
	}
}

func TestComputeDanglingReferences(t *testing.T) {
	snap := core.Snapshot{
		Expenses: []core.Expense{
			{Item: "Ghost", Category: "Other", Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 3, 10), PaymentMode: core.PayCreditCard, CardID: "missing"},
		},
		Banks: []core.Bank{{ID: "b1", Name: "HDFC", InitialBalance: core.Money{Cents: 100}}},
	}
	v := Compute(snap, core.NewDate(2025, 3, 18))
	if len(v.Cards) != 0 {
		t.Fatalf("dangling card reference must not create a view")
	}
	if v.Banks[0].Balance.Cents != 100 {
		t.Fatalf("unrelated expense must not affect bank balance")
	}
}
