// Package mock provides test doubles for the fare search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific fares per date pair).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
)

// Call records the date pair of one Quote invocation.
type Call struct {
	Origin   string
	Outbound time.Time
	Inbound  time.Time
}

// Quoter is a configurable mock implementation of domain.PriceQuoter.
// Fares are registered per exact date pair; unknown pairs return no offers.
type Quoter struct {
	name      string
	fares     map[string][]domain.TripOffer
	fareFunc  func(outbound, inbound time.Time) []domain.TripOffer
	err       error
	errOnCall int
	delay     time.Duration
	calls     []Call
	mu        sync.Mutex
}

// NewQuoter creates a new mock quoter with the given name.
// The quoter is configured using the builder pattern methods.
func NewQuoter(name string) *Quoter {
	return &Quoter{
		name:  name,
		fares: make(map[string][]domain.TripOffer),
	}
}

// WithOffers configures the offers returned for one exact date pair.
func (q *Quoter) WithOffers(outbound, inbound time.Time, offers ...domain.TripOffer) *Quoter {
	q.fares[pairKey(outbound, inbound)] = offers
	return q
}

// WithFareFunc configures a function computing the offers of date pairs
// that have no offers registered through WithOffers.
func (q *Quoter) WithFareFunc(fn func(outbound, inbound time.Time) []domain.TripOffer) *Quoter {
	q.fareFunc = fn
	return q
}

// WithError configures the quoter to fail every call with err.
func (q *Quoter) WithError(err error) *Quoter {
	q.err = err
	q.errOnCall = 0
	return q
}

// WithErrorOnCall configures the quoter to fail only its n-th call (1-based) with err.
func (q *Quoter) WithErrorOnCall(n int, err error) *Quoter {
	q.err = err
	q.errOnCall = n
	return q
}

// WithDelay configures the quoter to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (q *Quoter) WithDelay(d time.Duration) *Quoter {
	q.delay = d
	return q
}

// Name returns the provider's unique identifier.
func (q *Quoter) Name() string {
	return q.name
}

// Quote implements domain.PriceQuoter.Quote.
// It respects context cancellation, applies the configured delay,
// and returns the configured offers or error.
func (q *Quoter) Quote(ctx context.Context, origin string, outbound, inbound time.Time) ([]domain.TripOffer, error) {
	q.mu.Lock()
	q.calls = append(q.calls, Call{Origin: origin, Outbound: outbound, Inbound: inbound})
	callNumber := len(q.calls)
	q.mu.Unlock()

	// Apply delay if configured
	if q.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(q.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if q.err != nil && (q.errOnCall == 0 || q.errOnCall == callNumber) {
		return nil, q.err
	}

	if offers, ok := q.fares[pairKey(outbound, inbound)]; ok {
		return offers, nil
	}
	if q.fareFunc != nil {
		return q.fareFunc(outbound, inbound), nil
	}
	return nil, nil
}

// CallCount returns the number of times Quote was called.
func (q *Quoter) CallCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

// Calls returns a copy of the recorded calls in invocation order.
func (q *Quoter) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Call, len(q.calls))
	copy(out, q.calls)
	return out
}

// Reset clears the recorded calls.
func (q *Quoter) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = nil
}

// Ensure Quoter implements domain.PriceQuoter at compile time.
var _ domain.PriceQuoter = (*Quoter)(nil)

func pairKey(outbound, inbound time.Time) string {
	return outbound.Format(domain.DateLayout) + "|" + inbound.Format(domain.DateLayout)
}

// Offer builds a round-trip offer from origin to dest priced at total.
// Leg prices split the total evenly; departure times sit at 08:00 on the outbound
// date and 18:00 on the inbound date.
func Offer(origin, dest, destFullName string, total float64, outbound, inbound time.Time) domain.TripOffer {
	totalPrice := decimal.NewFromFloat(total)
	half := totalPrice.Div(decimal.NewFromInt(2))

	return domain.TripOffer{
		Outbound: domain.FlightLeg{
			OriginCode:          origin,
			OriginFullName:      airportName(origin),
			DestinationCode:     dest,
			DestinationFullName: destFullName,
			DepartureTime:       outbound.Add(8 * time.Hour),
			FlightNumber:        "FR 1" + dest,
			Price:               half,
			Currency:            "EUR",
		},
		Inbound: domain.FlightLeg{
			OriginCode:          dest,
			OriginFullName:      destFullName,
			DestinationCode:     origin,
			DestinationFullName: airportName(origin),
			DepartureTime:       inbound.Add(18 * time.Hour),
			FlightNumber:        "FR 2" + dest,
			Price:               half,
			Currency:            "EUR",
		},
		TotalPrice: totalPrice,
	}
}

// airportName maps a few origin codes to full names.
func airportName(code string) string {
	names := map[string]string{
		"MAD": "Madrid, Spain",
		"BCN": "Barcelona, Spain",
		"DUB": "Dublin, Ireland",
		"STN": "London Stansted, United Kingdom",
	}
	if name, ok := names[code]; ok {
		return name
	}
	return code
}
