package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=quoter.go -destination=mock_quoter.go -package=domain

// PriceQuoter returns round-trip offers for one fixed outbound/inbound date pair.
//
// Implementations are expected to return at most the cheapest offer, but callers
// must handle any number of offers. A returned error means no quote could be
// obtained for the pair; transports own any retry policy.
type PriceQuoter interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Quote returns the offers departing origin on outbound and returning on inbound.
	Quote(ctx context.Context, origin string, outbound, inbound time.Time) ([]TripOffer, error)
}
