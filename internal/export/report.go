// Package export serializes filtered expense lists into printable report
// documents: a paginated PDF and, optionally, rows appended to a shared
// Google Sheet.
package export

import (
	"time"

	"gharkharch/internal/core"
	"gharkharch/internal/engine"
)

// rowDateLayout is the date format used in report rows.
const rowDateLayout = "02/01/2006"

// Row is one printable expense line.
type Row struct {
	Date        string
	Item        string
	Category    string
	PaymentMode string
	Amount      string
}

// Report is a fully assembled printable document.
type Report struct {
	Title       string
	GeneratedAt time.Time
	Total       core.Money
	Rows        []Row
}

// Header returns the table column headings.
func Header() []string {
	return []string{"Date", "Item", "Category", "Payment Mode", "Amount"}
}

// BuildReport assembles a report over the given expenses. The caller applies
// range and text filters first; the total is recomputed here so the document
// is self-consistent even if the caller's total drifted.
func BuildReport(title string, generatedAt time.Time, expenses []core.Expense) Report {
	rep := Report{
		Title:       title,
		GeneratedAt: generatedAt,
		Total:       engine.TotalOf(expenses),
		Rows:        make([]Row, 0, len(expenses)),
	}
	for _, e := range expenses {
		mode := string(e.PaymentMode)
		if mode == "" {
			mode = "N/A"
		}
		rep.Rows = append(rep.Rows, Row{
			Date:        e.Date.Format(rowDateLayout),
			Item:        e.Item,
			Category:    e.Category,
			PaymentMode: mode,
			Amount:      "Rs. " + e.Amount.String(),
		})
	}
	return rep
}
