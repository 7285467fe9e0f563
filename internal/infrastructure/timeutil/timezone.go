package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// Layouts shared by the HTTP layer and the provider adapters.
const (
	// DateLayout is the calendar date format used in requests and responses.
	DateLayout = "2006-01-02"

	// LocalDateTimeLayout is the provider's departure time format, which carries no offset.
	LocalDateTimeLayout = "2006-01-02T15:04:05"
)

// UTC is the default timezone name.
const UTC = "UTC"

// locationCache stores loaded timezone locations by name.
var locationCache sync.Map

// GetLocation returns a cached timezone location.
// An empty name resolves to UTC.
func GetLocation(name string) (*time.Location, error) {
	if name == "" {
		name = UTC
	}
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Today returns the calendar date of clock.Now() as seen in loc, as midnight UTC.
// Search dates are compared as UTC midnights regardless of where "today" was observed.
func Today(clock Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	now := clock.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays moves a date by whole calendar days.
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// ParseInTimezone parses a time string in the specified timezone.
func ParseInTimezone(layout, value, timezone string) (time.Time, error) {
	loc, err := GetLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(layout, value, loc)
}

// ParseProviderTime parses a departure time. Both RFC3339 and the offset-less
// provider layout are accepted; the latter is read in timezone.
func ParseProviderTime(value, timezone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return ParseInTimezone(LocalDateTimeLayout, value, timezone)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ClearLocationCache clears the cached timezone locations.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
