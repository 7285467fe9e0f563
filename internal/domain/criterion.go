package domain

import (
	"strings"
)

// CriterionKind identifies how a Criterion matches offers.
type CriterionKind string

// Supported criterion kinds.
const (
	// CriterionAirport matches the outbound destination code exactly.
	CriterionAirport CriterionKind = "airport"

	// CriterionCountry matches a case-insensitive substring of the outbound destination name.
	CriterionCountry CriterionKind = "country"
)

// Criterion decides whether an offer belongs to a destination bucket.
type Criterion struct {
	kind  CriterionKind
	value string
	// folded is the lower-cased value used for country matching
	folded string
}

// ExactAirportCode returns a criterion matching offers whose outbound destination code equals code.
// The comparison is case-sensitive; codes are expected in upper case.
func ExactAirportCode(code string) Criterion {
	return Criterion{kind: CriterionAirport, value: code}
}

// CountryNameContains returns a criterion matching offers whose outbound destination
// full name contains label, ignoring case. Surrounding whitespace is trimmed.
func CountryNameContains(label string) Criterion {
	label = strings.TrimSpace(label)
	return Criterion{kind: CriterionCountry, value: label, folded: strings.ToLower(label)}
}

// Kind returns the criterion kind.
func (c Criterion) Kind() CriterionKind {
	return c.kind
}

// Label returns the airport code or country label the criterion was built from.
func (c Criterion) Label() string {
	return c.value
}

// IsBlank reports whether the criterion has no label.
func (c Criterion) IsBlank() bool {
	return strings.TrimSpace(c.value) == ""
}

// dedupKey identifies criteria that would claim the same offers.
func (c Criterion) dedupKey() string {
	if c.kind == CriterionCountry {
		return c.folded
	}
	return c.value
}

// Matches reports whether the offer satisfies the criterion.
func (c Criterion) Matches(offer TripOffer) bool {
	switch c.kind {
	case CriterionAirport:
		return offer.Outbound.DestinationCode == c.value
	case CriterionCountry:
		return strings.Contains(strings.ToLower(offer.Outbound.DestinationFullName), c.folded)
	default:
		return false
	}
}

// Matcher attributes offers to at most one of an ordered list of criteria.
// All criteria of a matcher share the same kind.
type Matcher struct {
	criteria []Criterion
}

// NewMatcher builds a Matcher from criteria in caller order.
//
// Blank country labels are dropped and repeated labels keep only their first
// occurrence, so every remaining criterion owns a distinct bucket. Country
// labels repeat when they match ignoring case. Airport criteria are kept even
// when blank. Mixing kinds returns ErrMixedCriteria.
func NewMatcher(criteria ...Criterion) (*Matcher, error) {
	m := &Matcher{criteria: make([]Criterion, 0, len(criteria))}
	seen := make(map[string]bool, len(criteria))

	for _, c := range criteria {
		if len(m.criteria) > 0 && m.criteria[0].kind != c.kind {
			return nil, ErrMixedCriteria
		}
		if c.kind == CriterionCountry && c.IsBlank() {
			continue
		}
		key := c.dedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		m.criteria = append(m.criteria, c)
	}

	return m, nil
}

// Labels returns the labels of the active criteria in matching order.
func (m *Matcher) Labels() []string {
	labels := make([]string, len(m.criteria))
	for i, c := range m.criteria {
		labels[i] = c.value
	}
	return labels
}

// Len returns the number of active criteria.
func (m *Matcher) Len() int {
	return len(m.criteria)
}

// Match returns the index of the first criterion the offer satisfies.
// The second return value is false when no criterion matches.
func (m *Matcher) Match(offer TripOffer) (int, bool) {
	for i, c := range m.criteria {
		if c.Matches(offer) {
			return i, true
		}
	}
	return -1, false
}
