package domain

import (
	"iter"
	"time"
)

// DateLayout is the calendar date format used across the API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DateWindow is an inclusive range of calendar dates.
// Both ends are normalized to midnight UTC.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow creates a DateWindow, dropping the time-of-day part of both bounds.
// An inverted window (start after end) is allowed and simply contains no dates.
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{
		Start: TruncateToDate(start),
		End:   TruncateToDate(end),
	}
}

// Days returns the number of calendar days in the window, or 0 when it is inverted.
func (w DateWindow) Days() int {
	if w.Start.After(w.End) {
		return 0
	}
	return int(w.End.Sub(w.Start)/(24*time.Hour)) + 1
}

// Contains reports whether the given date falls within the window.
func (w DateWindow) Contains(date time.Time) bool {
	d := TruncateToDate(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// StayRange is an inclusive range of stay lengths in days.
type StayRange struct {
	MinDays int `json:"minDays"`
	MaxDays int `json:"maxDays"`
}

// Span returns how many stay lengths the range covers, or 0 when it is inverted.
func (s StayRange) Span() int {
	if s.MinDays > s.MaxDays {
		return 0
	}
	return s.MaxDays - s.MinDays + 1
}

// SearchTriple is one candidate (outbound date, inbound date, stay length) combination.
type SearchTriple struct {
	OutboundDate time.Time `json:"outboundDate"`
	InboundDate  time.Time `json:"inboundDate"`
	StayDays     int       `json:"stayDays"`
}

// Enumerate returns the candidate triples for a window and stay range.
//
// Outbound dates run from window.Start to window.End one day at a time; for
// each of them stay lengths run from MinDays (at least 1) to MaxDays. The inner
// loop stops at the first stay whose inbound date falls outside the window, since every
// longer stay would too. The sequence is lazy and can be ranged over any number
// of times.
func Enumerate(window DateWindow, stays StayRange) iter.Seq[SearchTriple] {
	return func(yield func(SearchTriple) bool) {
		for outbound := window.Start; !outbound.After(window.End); outbound = outbound.AddDate(0, 0, 1) {
			for days := max(stays.MinDays, 1); days <= stays.MaxDays; days++ {
				inbound := outbound.AddDate(0, 0, days)
				if !window.Contains(inbound) {
					break
				}

				triple := SearchTriple{
					OutboundDate: outbound,
					InboundDate:  inbound,
					StayDays:     days,
				}
				if !yield(triple) {
					return
				}
			}
		}
	}
}

// TripleCount returns the upper bound on the number of triples Enumerate yields.
// It is cheap to compute and meant for sizing progress reporting.
func TripleCount(window DateWindow, stays StayRange) int {
	return window.Days() * stays.Span()
}

// ExactTripleCount returns the number of triples Enumerate actually yields.
func ExactTripleCount(window DateWindow, stays StayRange) int {
	n := 0
	for range Enumerate(window, stays) {
		n++
	}
	return n
}

// TruncateToDate returns midnight UTC of the calendar date t falls on in its own location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
