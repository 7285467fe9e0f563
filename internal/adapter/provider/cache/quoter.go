package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
)

// DefaultTTL is used when Config.TTL is not positive.
const DefaultTTL = 10 * time.Minute

// Config holds the cache decorator settings.
type Config struct {
	// TTL is how long a quote stays cached
	TTL time.Duration

	// Currency and Market are part of the key so quotes priced for different
	// currencies or markets never mix
	Currency string
	Market   string

	// Logger reports cache failures. Defaults to a no-op logger.
	Logger *logger.Logger
}

// Stats counts cache outcomes since the quoter was created.
type Stats struct {
	Hits   int64
	Misses int64
	Errors int64
}

// CachedQuoter decorates a PriceQuoter with a read-through cache.
//
// Behavior:
//   - Only successful quotes are cached, empty offer lists included
//   - Store failures are logged and the wrapped quoter is asked instead
//   - Provider errors pass through untouched
type CachedQuoter struct {
	next     domain.PriceQuoter
	store    Store
	ttl      time.Duration
	currency string
	market   string
	log      *logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// NewCachedQuoter wraps next with store.
func NewCachedQuoter(next domain.PriceQuoter, store Store, cfg Config) *CachedQuoter {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &CachedQuoter{
		next:     next,
		store:    store,
		ttl:      ttl,
		currency: cfg.Currency,
		market:   cfg.Market,
		log:      log.WithProvider(next.Name()).WithContext("component", "quote_cache"),
	}
}

// Name returns the wrapped provider's name.
func (c *CachedQuoter) Name() string {
	return c.next.Name()
}

// Quote implements domain.PriceQuoter.Quote.
func (c *CachedQuoter) Quote(ctx context.Context, origin string, outbound, inbound time.Time) ([]domain.TripOffer, error) {
	key := Key(c.next.Name(), origin, outbound, inbound, c.currency, c.market)

	if offers, ok := c.lookup(ctx, key); ok {
		c.hits.Add(1)
		return offers, nil
	}
	c.misses.Add(1)

	offers, err := c.next.Quote(ctx, origin, outbound, inbound)
	if err != nil {
		return nil, err
	}

	c.save(ctx, key, offers)
	return offers, nil
}

// Stats returns a snapshot of the hit and miss counters.
func (c *CachedQuoter) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Errors: c.errors.Load(),
	}
}

func (c *CachedQuoter) lookup(ctx context.Context, key string) ([]domain.TripOffer, bool) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.errors.Add(1)
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	var offers []domain.TripOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		c.errors.Add(1)
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable cached quote")
		return nil, false
	}
	if offers == nil {
		offers = []domain.TripOffer{}
	}
	return offers, true
}

func (c *CachedQuoter) save(ctx context.Context, key string, offers []domain.TripOffer) {
	if offers == nil {
		offers = []domain.TripOffer{}
	}
	data, err := json.Marshal(offers)
	if err != nil {
		c.errors.Add(1)
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache encode failed")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.errors.Add(1)
		c.log.Warn().Err(err).Str("key", key).Msg("Quote cache write failed")
	}
}

// Key builds the cache key of one quote:
// quote:<provider>:<origin>:<outbound>:<inbound>:<currency>:<market>.
func Key(provider, origin string, outbound, inbound time.Time, currency, market string) string {
	return strings.Join([]string{
		"quote",
		provider,
		origin,
		outbound.Format(domain.DateLayout),
		inbound.Format(domain.DateLayout),
		currency,
		market,
	}, ":")
}

var _ domain.PriceQuoter = (*CachedQuoter)(nil)
