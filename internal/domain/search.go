package domain

import "time"

// SingleSearch holds the parameters of a search towards one exact airport.
// Values are taken as given; validating them is the caller's job.
type SingleSearch struct {
	// Origin is the IATA code of the departure airport (e.g., "MAD")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "CDG")
	Destination string `json:"destination"`

	// Window bounds both the outbound and the inbound dates
	Window DateWindow `json:"window"`

	// Stays bounds the number of days between outbound and inbound
	Stays StayRange `json:"stays"`
}

// MultiSearch holds the parameters of a search towards several countries.
type MultiSearch struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Countries are matched in order against the destination name; blanks are ignored
	Countries []string `json:"countries"`

	// Window bounds both the outbound and the inbound dates
	Window DateWindow `json:"window"`

	// Stays bounds the number of days between outbound and inbound
	Stays StayRange `json:"stays"`
}

// Criteria returns one CountryNameContains criterion per country, in order.
func (s MultiSearch) Criteria() []Criterion {
	criteria := make([]Criterion, len(s.Countries))
	for i, c := range s.Countries {
		criteria[i] = CountryNameContains(c)
	}
	return criteria
}

// SearchStats describes the work a sweep performed.
type SearchStats struct {
	// TriplesEnumerated is the number of date pairs the window produced
	TriplesEnumerated int `json:"triplesEnumerated"`

	// QuotesRequested is the number of provider calls made
	QuotesRequested int `json:"quotesRequested"`

	// OffersReceived is the number of offers the provider returned in total
	OffersReceived int `json:"offersReceived"`

	// OffersMatched is the number of offers attributed to a bucket
	OffersMatched int `json:"offersMatched"`

	// Duration is the wall time of the sweep
	Duration time.Duration `json:"duration"`
}

// SingleResult is the outcome of a SingleSearch.
type SingleResult struct {
	Search  SingleSearch  `json:"search"`
	Entries []RankedEntry `json:"entries"`
	Stats   SearchStats   `json:"stats"`
}

// Bucket is the ranked list owned by one destination criterion.
type Bucket struct {
	Label   string        `json:"label"`
	Entries []RankedEntry `json:"entries"`
}

// ResultSet maps destination labels to ranked entries, keeping the caller's label order.
type ResultSet []Bucket

// Get returns the entries for a label.
func (rs ResultSet) Get(label string) ([]RankedEntry, bool) {
	for _, b := range rs {
		if b.Label == label {
			return b.Entries, true
		}
	}
	return nil, false
}

// Labels returns the bucket labels in order.
func (rs ResultSet) Labels() []string {
	labels := make([]string, len(rs))
	for i, b := range rs {
		labels[i] = b.Label
	}
	return labels
}

// TotalEntries returns the number of entries across all buckets.
func (rs ResultSet) TotalEntries() int {
	n := 0
	for _, b := range rs {
		n += len(b.Entries)
	}
	return n
}

// MultiResult is the outcome of a MultiSearch.
type MultiResult struct {
	Search  MultiSearch `json:"search"`
	Buckets ResultSet   `json:"buckets"`
	Stats   SearchStats `json:"stats"`
}
