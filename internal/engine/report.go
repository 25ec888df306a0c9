package engine

import (
	"sort"
	"strings"

	"gharkharch/internal/core"
)

// CategoryTotal is an aggregate over one exact category string.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// DayTotal is an aggregate over one calendar day.
type DayTotal struct {
	Day   core.Date
	Label string // month + day, e.g. "Jan 05"
	Total core.Money
}

// dayLabelLayout matches the original chart axis format.
const dayLabelLayout = "Jan 02"

// FilterByRange keeps expenses dated within [start, end], inclusive on both
// ends. Both bounds are required; with start == end it yields exactly the
// expenses of that single day.
func FilterByRange(expenses []core.Expense, start, end core.Date) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.Within(start, end) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByText keeps expenses whose item or category contains query,
// case-insensitively. An empty query matches everything.
func FilterByText(expenses []core.Expense, query string) []core.Expense {
	q := strings.ToLower(query)
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Item), q) ||
			strings.Contains(strings.ToLower(e.Category), q) {
			out = append(out, e)
		}
	}
	return out
}

// TotalOf sums the amounts of all given expenses.
func TotalOf(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthToDateTotal sums the expenses of now's calendar month, independent of
// any report range filter.
func MonthToDateTotal(expenses []core.Expense, now core.Date) core.Money {
	return TotalOf(FilterByRange(expenses, core.StartOfMonth(now), core.EndOfMonth(now)))
}

// AggregateByCategory groups expenses by exact category string, sums amounts,
// drops zero totals and sorts descending by total. Equal totals keep
// first-seen category order, so recomputing over the same snapshot yields
// identical ordered output.
func AggregateByCategory(expenses []core.Expense) []CategoryTotal {
	idx := make(map[string]int, len(expenses))
	var out []CategoryTotal
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
	}
	filtered := out[:0]
	for _, ct := range out {
		if ct.Total.Cents != 0 {
			filtered = append(filtered, ct)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Total.Cents > filtered[j].Total.Cents
	})
	return filtered
}

// DailyTotals groups expenses by calendar day and returns the limit most
// recent days in chronological order. The store delivers snapshots with no
// ordering guarantee, so days are ranked by date rather than by the order
// they appear in the input.
func DailyTotals(expenses []core.Expense, limit int) []DayTotal {
	idx := make(map[core.Date]int, len(expenses))
	var days []DayTotal
	for _, e := range expenses {
		i, ok := idx[e.Date]
		if !ok {
			i = len(days)
			idx[e.Date] = i
			days = append(days, DayTotal{Day: e.Date, Label: e.Date.Format(dayLabelLayout)})
		}
		days[i].Total = days[i].Total.Add(e.Amount)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day.After(days[j].Day.Time)
	})
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	// Reverse into chronological ascending order for display.
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}
