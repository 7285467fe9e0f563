package usecase

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
)

// TripSearchUseCase defines the round-trip fare search operations.
type TripSearchUseCase interface {
	// SearchAirport ranks the cheapest round trips towards one exact airport.
	SearchAirport(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error)

	// SearchCountries ranks the cheapest round trips per destination country,
	// sharing one sweep between all countries.
	SearchCountries(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error)
}

// tripSearchUseCase implements TripSearchUseCase on top of a single PriceQuoter.
type tripSearchUseCase struct {
	quoter      domain.PriceQuoter
	timeout     time.Duration
	topK        int
	concurrency int
	log         *logger.Logger
}

// NewTripSearchUseCase creates a TripSearchUseCase quoting through the given provider.
// If config is nil, default values are used.
func NewTripSearchUseCase(quoter domain.PriceQuoter, config *Config) TripSearchUseCase {
	cfg := config.merge()

	return &tripSearchUseCase{
		quoter:      quoter,
		timeout:     cfg.Timeout,
		topK:        cfg.TopK,
		concurrency: cfg.Concurrency,
		log:         cfg.Logger.WithProvider(quoter.Name()),
	}
}

// SearchAirport implements TripSearchUseCase.SearchAirport.
func (uc *tripSearchUseCase) SearchAirport(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
	matcher, err := domain.NewMatcher(domain.ExactAirportCode(search.Destination))
	if err != nil {
		return nil, err
	}

	ranker, stats, err := uc.sweep(ctx, string(domain.CriterionAirport), search.Origin, search.Window, search.Stays, matcher)
	if err != nil {
		return nil, err
	}

	return &domain.SingleResult{
		Search:  search,
		Entries: ranker.Finalize(search.Destination),
		Stats:   stats,
	}, nil
}

// SearchCountries implements TripSearchUseCase.SearchCountries.
// Without any non-blank country there is nothing to match, so no sweep is run.
func (uc *tripSearchUseCase) SearchCountries(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error) {
	matcher, err := domain.NewMatcher(search.Criteria()...)
	if err != nil {
		return nil, err
	}

	result := &domain.MultiResult{
		Search:  search,
		Buckets: make(domain.ResultSet, 0, matcher.Len()),
	}
	if matcher.Len() == 0 {
		return result, nil
	}

	ranker, stats, err := uc.sweep(ctx, string(domain.CriterionCountry), search.Origin, search.Window, search.Stays, matcher)
	if err != nil {
		return nil, err
	}

	for _, label := range matcher.Labels() {
		result.Buckets = append(result.Buckets, domain.Bucket{
			Label:   label,
			Entries: ranker.Finalize(label),
		})
	}
	result.Stats = stats

	return result, nil
}

// sweep quotes every triple of the window once and feeds matching offers into a
// ranker keyed by criterion label. The first quote failure aborts the sweep.
func (uc *tripSearchUseCase) sweep(ctx context.Context, mode, origin string, window domain.DateWindow, stays domain.StayRange, matcher *domain.Matcher) (*Ranker, domain.SearchStats, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	ranker := NewRanker(uc.topK)
	labels := matcher.Labels()
	log := uc.log.ForContext(ctx).WithSearch(mode, origin)
	var stats domain.SearchStats

	collect := func(triple domain.SearchTriple, offers []domain.TripOffer) {
		stats.OffersReceived += len(offers)
		for _, offer := range offers {
			idx, ok := matcher.Match(offer)
			if !ok {
				continue
			}
			stats.OffersMatched++
			ranker.Insert(labels[idx], domain.RankedEntry{Offer: offer, StayDays: triple.StayDays})
		}
	}

	log.Info().
		Str("window_start", window.Start.Format(domain.DateLayout)).
		Str("window_end", window.End.Format(domain.DateLayout)).
		Int("min_days", stays.MinDays).
		Int("max_days", stays.MaxDays).
		Strs("buckets", labels).
		Int("max_triples", domain.TripleCount(window, stays)).
		Int("concurrency", uc.concurrency).
		Msg("Starting fare sweep")

	var err error
	if uc.concurrency <= 1 {
		err = uc.sweepSequential(ctx, origin, window, stays, &stats, collect)
	} else {
		err = uc.sweepParallel(ctx, origin, window, stays, &stats, collect)
	}
	stats.Duration = time.Since(startTime)

	if err != nil {
		log.Error().
			Err(err).
			Int("quotes_requested", stats.QuotesRequested).
			Dur("duration", stats.Duration).
			Msg("Fare sweep aborted")
		return nil, stats, err
	}

	log.Info().
		Int("triples", stats.TriplesEnumerated).
		Int("offers_received", stats.OffersReceived).
		Int("offers_matched", stats.OffersMatched).
		Dur("duration", stats.Duration).
		Msg("Fare sweep finished")

	return ranker, stats, nil
}

// sweepSequential requests one quote at a time in enumeration order.
func (uc *tripSearchUseCase) sweepSequential(ctx context.Context, origin string, window domain.DateWindow, stays domain.StayRange, stats *domain.SearchStats, collect func(domain.SearchTriple, []domain.TripOffer)) error {
	for triple := range domain.Enumerate(window, stays) {
		stats.TriplesEnumerated++

		if err := ctx.Err(); err != nil {
			return &domain.SearchError{Triple: triple, Err: err}
		}

		stats.QuotesRequested++
		offers, err := uc.quote(ctx, origin, triple)
		if err != nil {
			return &domain.SearchError{Triple: triple, Err: err}
		}
		collect(triple, offers)
	}
	return nil
}

// sweepParallel requests up to uc.concurrency quotes at once. Offers are kept
// per triple and collected in enumeration order afterwards, so the ranking is
// identical to the sequential sweep.
func (uc *tripSearchUseCase) sweepParallel(ctx context.Context, origin string, window domain.DateWindow, stays domain.StayRange, stats *domain.SearchStats, collect func(domain.SearchTriple, []domain.TripOffer)) error {
	triples := slices.Collect(domain.Enumerate(window, stays))
	stats.TriplesEnumerated = len(triples)

	results := make([][]domain.TripOffer, len(triples))
	var requested atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, triple := range triples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &domain.SearchError{Triple: triple, Err: err}
			}

			requested.Add(1)
			offers, err := uc.quote(gctx, origin, triple)
			if err != nil {
				return &domain.SearchError{Triple: triple, Err: err}
			}
			results[i] = offers
			return nil
		})
	}

	err := g.Wait()
	stats.QuotesRequested = int(requested.Load())
	if err != nil {
		return err
	}

	for i, triple := range triples {
		collect(triple, results[i])
	}
	return nil
}

// quote asks the provider about one triple. Failures that are not already a
// ProviderError are wrapped in one, unless the sweep itself was cancelled.
func (uc *tripSearchUseCase) quote(ctx context.Context, origin string, triple domain.SearchTriple) ([]domain.TripOffer, error) {
	offers, err := uc.quoter.Quote(ctx, origin, triple.OutboundDate, triple.InboundDate)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		var pe *domain.ProviderError
		if !errors.As(err, &pe) {
			err = domain.NewProviderError(uc.quoter.Name(), err)
		}
		return nil, err
	}

	uc.log.Debug().
		Str("outbound", triple.OutboundDate.Format(domain.DateLayout)).
		Str("inbound", triple.InboundDate.Format(domain.DateLayout)).
		Int("offers", len(offers)).
		Msg("Quote received")

	return offers, nil
}

// Ensure tripSearchUseCase implements TripSearchUseCase at compile time.
var _ TripSearchUseCase = (*tripSearchUseCase)(nil)
