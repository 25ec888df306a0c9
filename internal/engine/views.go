package engine

import "gharkharch/internal/core"

type (
	// CardView pairs a card with its current unbilled statement due.
	CardView struct {
		Card core.CreditCard
		Due  core.Money
	}

	// BankView pairs a bank with its derived balance and health.
	BankView struct {
		Bank    core.Bank
		Balance core.Money
		Health  BankHealth
	}

	// Views is everything the presentation layer renders, recomputed in full
	// from each snapshot.
	Views struct {
		Cards            []CardView
		Banks            []BankView
		TotalBankBalance core.Money
		MonthToDate      core.Money
		ByCategory       []CategoryTotal
		Daily            []DayTotal
		Categories       []string
	}
)

// DailyChartDays is how many recent days the daily spending chart shows.
const DailyChartDays = 7

// Compute derives all views from a snapshot as of today. Dangling card or
// bank references in expenses simply contribute to no view.
func Compute(snap core.Snapshot, today core.Date) Views {
	v := Views{
		Cards:            make([]CardView, 0, len(snap.CreditCards)),
		Banks:            make([]BankView, 0, len(snap.Banks)),
		MonthToDate:      MonthToDateTotal(snap.Expenses, today),
		ByCategory:       AggregateByCategory(snap.Expenses),
		Daily:            DailyTotals(snap.Expenses, DailyChartDays),
		Categories:       core.SelectableCategories(core.BaseCategories, core.ObservedCategories(snap.Expenses)),
		TotalBankBalance: TotalBankBalance(snap.Banks, snap.BankTransactions, snap.Expenses),
	}
	for _, card := range snap.CreditCards {
		v.Cards = append(v.Cards, CardView{Card: card, Due: CardDue(card, snap.Expenses, today)})
	}
	for _, bank := range snap.Banks {
		balance := BankBalance(bank, snap.BankTransactions, snap.Expenses)
		v.Banks = append(v.Banks, BankView{Bank: bank, Balance: balance, Health: HealthOf(balance)})
	}
	return v
}
