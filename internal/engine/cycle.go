// Package engine computes derived state from record snapshots: statement
// cycle dues, bank balances and report aggregates. Every function is pure and
// recomputed wholesale on each snapshot change; nothing here is cached.
package engine

import (
	"time"

	"gharkharch/internal/core"
)

// CycleWindow returns the active, unbilled statement window for a card billed
// on billDay, as seen from today. Both ends are inclusive calendar days.
//
// When today is past the bill day the cycle opened this month and closes on
// next month's bill day; on or before the bill day it opened last month and
// closes on this month's bill day. An expense dated exactly on the bill day
// therefore belongs to the closing cycle, not the next one.
func CycleWindow(billDay int, today core.Date) (start, end core.Date) {
	if today.Day() > billDay {
		start = dayAfterBill(today.Year(), today.Month(), billDay)
		end = billDate(today.Year(), today.Month()+1, billDay)
	} else {
		start = dayAfterBill(today.Year(), today.Month()-1, billDay)
		end = billDate(today.Year(), today.Month(), billDay)
	}
	return start, end
}

// CardDue sums the expenses charged to card inside the current statement
// window. A card with no usable bill day yields zero rather than an error.
func CardDue(card core.CreditCard, expenses []core.Expense, today core.Date) core.Money {
	if card.BillDay < 1 || card.BillDay > 31 {
		return core.Money{}
	}
	start, end := CycleWindow(card.BillDay, today)
	var due core.Money
	for _, e := range expenses {
		if e.CardID != card.ID {
			continue
		}
		if e.Date.Within(start, end) {
			due = due.Add(e.Amount)
		}
	}
	return due
}

// billDate resolves billDay within the given month, clamping to the month's
// last day when the month is shorter. A card billed on the 31st bills on
// Feb 28/29 rather than rolling into March.
func billDate(year int, month time.Month, billDay int) core.Date {
	// Normalize month overflow before measuring its length.
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	y, m := norm.Year(), norm.Month()
	return core.NewDate(y, m, clampDay(y, m, billDay))
}

// dayAfterBill is the cycle start: the day after the (clamped) bill date.
func dayAfterBill(year int, month time.Month, billDay int) core.Date {
	return billDate(year, month, billDay).AddDays(1)
}

func clampDay(year int, month time.Month, day int) int {
	if last := core.DaysInMonth(year, month); day > last {
		return last
	}
	return day
}
