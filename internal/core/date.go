package core

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. The embedded time.Time is
// always UTC midnight, so time comparison and day comparison coincide.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in DateLayout format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+n)
}

// OnOrAfter reports whether d falls on or after o.
func (d Date) OnOrAfter(o Date) bool {
	return !d.Time.Before(o.Time)
}

// OnOrBefore reports whether d falls on or before o.
func (d Date) OnOrBefore(o Date) bool {
	return !d.Time.After(o.Time)
}

// Within reports whether d falls inside [start, end], inclusive on both ends.
func (d Date) Within(start, end Date) bool {
	return d.OnOrAfter(start) && d.OnOrBefore(end)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Date) Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's month.
func EndOfMonth(d Date) Date {
	return NewDate(d.Year(), d.Month()+1, 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}
