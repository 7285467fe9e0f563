// Package http provides the HTTP handler layer for the round-trip fare search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
)

// TripParams holds the date window and stay bounds shared by both search requests.
// Every field is optional; Validate fills in the defaults.
type TripParams struct {
	// StartDate is the first possible outbound date in YYYY-MM-DD format (default: today)
	StartDate string `json:"startDate,omitempty" example:"2024-06-01"`

	// EndDate is the last possible inbound date in YYYY-MM-DD format (default: startDate + 30 days)
	EndDate string `json:"endDate,omitempty" example:"2024-06-30"`

	// MinDays is the shortest stay in days (default: 1)
	MinDays *int `json:"minDays,omitempty" example:"2"`

	// MaxDays is the longest stay in days (default: 14)
	MaxDays *int `json:"maxDays,omitempty" example:"7"`
}

// SearchTripsRequest represents the request body for a search towards one airport.
type SearchTripsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "MAD")
	Origin string `json:"origin" example:"MAD"`

	// Destination is the IATA code of the arrival airport (e.g., "CDG")
	Destination string `json:"destination" example:"CDG"`

	TripParams
}

// SearchCountriesRequest represents the request body for a search towards several countries.
type SearchCountriesRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "MAD")
	Origin string `json:"origin" example:"MAD"`

	// Countries are matched in order against the destination airport name
	Countries []string `json:"countries" example:"France,Italy"`

	TripParams
}

// Limits bounds what a single request may ask for and supplies the defaults
// of omitted fields.
type Limits struct {
	MaxWindowDays int
	MaxStayDays   int
	MaxCountries  int

	DefaultWindowDays int
	DefaultMinDays    int
	DefaultMaxDays    int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxWindowDays:     31,
		MaxStayDays:       14,
		MaxCountries:      3,
		DefaultWindowDays: 30,
		DefaultMinDays:    1,
		DefaultMaxDays:    14,
	}
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// When a field has several errors the first one is kept.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, exists := result[e.Field]; !exists {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Validate checks the request, normalizes the airport codes to upper case and
// fills omitted dates and stay bounds. today is the first date a trip may start on.
func (r *SearchTripsRequest) Validate(today time.Time, limits Limits) error {
	errs := &ValidationErrors{}

	r.Origin = validateAirportCode(errs, "origin", r.Origin)
	r.Destination = validateAirportCode(errs, "destination", r.Destination)
	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	r.TripParams.validate(errs, today, limits)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate checks the request like SearchTripsRequest.Validate. Country labels are
// trimmed and blank ones dropped; at least one must remain.
func (r *SearchCountriesRequest) Validate(today time.Time, limits Limits) error {
	errs := &ValidationErrors{}

	r.Origin = validateAirportCode(errs, "origin", r.Origin)
	r.validateCountries(errs, limits)
	r.TripParams.validate(errs, today, limits)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchCountriesRequest) validateCountries(errs *ValidationErrors, limits Limits) {
	countries := make([]string, 0, len(r.Countries))
	for _, c := range r.Countries {
		if c = strings.TrimSpace(c); c != "" {
			countries = append(countries, c)
		}
	}
	r.Countries = countries

	switch {
	case len(countries) == 0:
		errs.Add("countries", "at least one country is required")
	case limits.MaxCountries > 0 && len(countries) > limits.MaxCountries:
		errs.Add("countries", fmt.Sprintf("at most %d countries can be searched at once", limits.MaxCountries))
	}
}

// validateAirportCode returns the upper-cased code, or the input unchanged when it is invalid.
func validateAirportCode(errs *ValidationErrors, field, value string) string {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, field+" is required")
		return value
	}

	code := strings.ToUpper(strings.TrimSpace(value))
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return value
	}
	return code
}

func (p *TripParams) validate(errs *ValidationErrors, today time.Time, limits Limits) {
	start, startOK := p.validateDate(errs, "startDate", p.StartDate, today)
	if p.StartDate == "" {
		start, startOK = today, true
		p.StartDate = start.Format(domain.DateLayout)
	}
	if startOK && start.Before(today) {
		errs.Add("startDate", "startDate cannot be in the past")
	}

	end, endOK := p.validateDate(errs, "endDate", p.EndDate, today)
	if p.EndDate == "" && startOK {
		end, endOK = start.AddDate(0, 0, limits.DefaultWindowDays), true
		p.EndDate = end.Format(domain.DateLayout)
	}

	if startOK && endOK {
		window := domain.NewDateWindow(start, end)
		switch {
		case end.Before(start):
			errs.Add("endDate", "endDate must not be before startDate")
		case limits.MaxWindowDays > 0 && window.Days() > limits.MaxWindowDays:
			errs.Add("endDate", fmt.Sprintf("the search window cannot exceed %d days", limits.MaxWindowDays))
		}
	}

	p.validateStays(errs, limits)
}

// validateDate parses a non-empty date. An empty value is reported as not ok without an error.
func (p *TripParams) validateDate(errs *ValidationErrors, field, value string, today time.Time) (time.Time, bool) {
	if value == "" {
		return today, false
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return today, false
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return today, false
	}
	return date, true
}

func (p *TripParams) validateStays(errs *ValidationErrors, limits Limits) {
	if p.MinDays == nil {
		minDays := limits.DefaultMinDays
		p.MinDays = &minDays
	}
	if p.MaxDays == nil {
		maxDays := max(limits.DefaultMaxDays, *p.MinDays)
		p.MaxDays = &maxDays
	}

	minOK := true
	if *p.MinDays < 1 {
		errs.Add("minDays", "minDays must be at least 1")
		minOK = false
	}

	if *p.MaxDays < 1 {
		errs.Add("maxDays", "maxDays must be at least 1")
		return
	}
	if limits.MaxStayDays > 0 && *p.MaxDays > limits.MaxStayDays {
		errs.Add("maxDays", fmt.Sprintf("maxDays cannot exceed %d", limits.MaxStayDays))
		return
	}
	if minOK && *p.MinDays > *p.MaxDays {
		errs.Add("maxDays", "maxDays must be greater than or equal to minDays")
	}
}
