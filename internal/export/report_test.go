package export

import (
	"bytes"
	"testing"
	"time"

	"gharkharch/internal/core"
)

func sampleExpenses() []core.Expense {
	return []core.Expense{
		{
			Item:        "Milk",
			Category:    "Dairy",
			Amount:      core.Money{Cents: 6550},
			Date:        core.NewDate(2025, 1, 5),
			PaymentMode: core.PayCash,
		},
		{
			Item:     "Dinner",
			Category: "Dining",
			Amount:   core.Money{Cents: 120000},
			Date:     core.NewDate(2025, 1, 20),
		},
	}
}

func TestBuildReport(t *testing.T) {
	generated := time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)
	rep := BuildReport("January Report", generated, sampleExpenses())

	if rep.Title != "January Report" || !rep.GeneratedAt.Equal(generated) {
		t.Fatalf("header fields wrong: %+v", rep)
	}
	if rep.Total.Cents != 126550 {
		t.Fatalf("expected total 126550, got %d", rep.Total.Cents)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rep.Rows))
	}

	first := rep.Rows[0]
	if first.Date != "05/01/2025" {
		t.Fatalf("expected dd/mm/yyyy date, got %q", first.Date)
	}
	if first.Amount != "Rs. 65.50" {
		t.Fatalf("expected rupee-prefixed amount, got %q", first.Amount)
	}
	if first.PaymentMode != "Cash" {
		t.Fatalf("expected Cash, got %q", first.PaymentMode)
	}
	if rep.Rows[1].PaymentMode != "N/A" {
		t.Fatalf("missing payment mode must render as N/A, got %q", rep.Rows[1].PaymentMode)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	rep := BuildReport("Empty", time.Now(), nil)
	if len(rep.Rows) != 0 || rep.Total.Cents != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
}

func TestWritePDF(t *testing.T) {
	rep := BuildReport("January Report", time.Now(), sampleExpenses())
	var buf bytes.Buffer
	if err := WritePDF(rep, &buf); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestWritePDFManyRowsPaginates(t *testing.T) {
	expenses := make([]core.Expense, 0, 120)
	for i := 0; i < 120; i++ {
		e := sampleExpenses()[0]
		e.Date = core.NewDate(2025, 1, 1+i%28)
		expenses = append(expenses, e)
	}
	rep := BuildReport("Long Report", time.Now(), expenses)
	var buf bytes.Buffer
	if err := WritePDF(rep, &buf); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty output")
	}
}
