package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 15 {
		t.Fatalf("parsed wrong date: %v", d)
	}
	if d.String() != "2025-03-15" {
		t.Fatalf("round trip: expected 2025-03-15, got %q", d.String())
	}
	if _, err := ParseDate("15/03/2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestAddDaysAcrossMonth(t *testing.T) {
	d := NewDate(2024, 1, 31).AddDays(1)
	if d != NewDate(2024, 2, 1) {
		t.Fatalf("expected 2024-02-01, got %v", d)
	}
}

func TestWithinInclusive(t *testing.T) {
	start := NewDate(2025, 1, 10)
	end := NewDate(2025, 1, 20)
	cases := []struct {
		d  Date
		in bool
	}{
		{NewDate(2025, 1, 10), true}, // start boundary
		{NewDate(2025, 1, 20), true}, // end boundary
		{NewDate(2025, 1, 15), true},
		{NewDate(2025, 1, 9), false},
		{NewDate(2025, 1, 21), false},
	}
	for i, tc := range cases {
		if got := tc.d.Within(start, end); got != tc.in {
			t.Fatalf("case %d: expected %v, got %v", i, tc.in, got)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	d := NewDate(2024, 2, 10)
	if got := StartOfMonth(d); got != NewDate(2024, 2, 1) {
		t.Fatalf("StartOfMonth: got %v", got)
	}
	if got := EndOfMonth(d); got != NewDate(2024, 2, 29) {
		t.Fatalf("EndOfMonth leap year: got %v", got)
	}
	if got := EndOfMonth(NewDate(2023, 2, 10)); got != NewDate(2023, 2, 28) {
		t.Fatalf("EndOfMonth: got %v", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.days {
			t.Fatalf("%v %d: expected %d, got %d", tc.month, tc.year, tc.days, got)
		}
	}
}
