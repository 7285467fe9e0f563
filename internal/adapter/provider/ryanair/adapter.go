// Package ryanair quotes round-trip fares from the Ryanair fare finder API.
package ryanair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/ratelimit"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/retry"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
)

// Defaults for Config fields left empty.
const (
	DefaultBaseURL  = "https://services-api.ryanair.com/farfnd/v4"
	DefaultCurrency = "EUR"
	DefaultMarket   = "en-gb"
	DefaultTimeout  = 5 * time.Second

	roundTripPath = "/roundTripFares"
	maxErrorBody  = 512
)

// Config holds the adapter settings.
type Config struct {
	// BaseURL is the fare finder root, without a trailing slash
	BaseURL string

	// Currency is the ISO 4217 code fares are quoted in
	Currency string

	// Market selects the provider's locale (e.g., "en-gb")
	Market string

	// Timeout bounds one HTTP attempt
	Timeout time.Duration

	// Timezone is used to read departure times that carry no offset
	Timezone string

	// Retry controls how transient failures are retried
	Retry retry.Config
}

// Adapter implements domain.PriceQuoter over the fare finder HTTP API.
type Adapter struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.ProviderLimiter
	log     *logger.Logger
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.client = client
	}
}

// WithLimiter throttles calls through the given limiter.
func WithLimiter(limiter *ratelimit.ProviderLimiter) Option {
	return func(a *Adapter) {
		a.limiter = limiter
	}
}

// WithLogger sets the logger used for retries and skipped fares.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) {
		a.log = log.WithProvider(ProviderName)
	}
}

// NewAdapter creates a new Ryanair adapter.
func NewAdapter(cfg Config, opts ...Option) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	if cfg.Market == "" {
		cfg.Market = DefaultMarket
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.QuoteConfig
	}

	a := &Adapter{
		cfg:    cfg,
		client: &http.Client{},
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Currency returns the currency fares are quoted in.
func (a *Adapter) Currency() string {
	return a.cfg.Currency
}

// Market returns the provider locale fares are requested for.
func (a *Adapter) Market() string {
	return a.cfg.Market
}

// Quote returns the offers for flying out of origin on outbound and back on inbound.
// Transient failures (5xx, 429, network errors, attempt timeouts) are retried;
// the returned error is always a *domain.ProviderError.
func (a *Adapter) Quote(ctx context.Context, origin string, outbound, inbound time.Time) ([]domain.TripOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	cfg := a.cfg.Retry.
		WithRetryIf(domain.IsRetryable).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			a.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Str("outbound", timeutil.FormatDate(outbound)).
				Str("inbound", timeutil.FormatDate(inbound)).
				Msg("Retrying quote")
		})

	offers, err := retry.DoWithResult(ctx, func() ([]domain.TripOffer, error) {
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx, ProviderName); err != nil {
				return nil, domain.NewProviderError(ProviderName, err)
			}
		}
		return a.fetch(ctx, origin, outbound, inbound)
	}, cfg)
	if err != nil {
		var pe *domain.ProviderError
		if !errors.As(err, &pe) {
			err = domain.NewProviderError(ProviderName, err)
		}
		return nil, err
	}
	return offers, nil
}

// fetch performs one HTTP attempt.
func (a *Adapter) fetch(ctx context.Context, origin string, outbound, inbound time.Time) ([]domain.TripOffer, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, a.requestURL(origin, outbound, inbound), nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, a.transportError(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var body RoundTripFaresResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if attemptCtx.Err() != nil {
			return nil, a.transportError(ctx, attemptCtx, err)
		}
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("failed to decode response: %w", err))
	}

	return normalize(body.Fares, a.cfg.Timezone, func(f Fare, err error) {
		a.log.Warn().
			Err(err).
			Str("destination", f.Outbound.ArrivalAirport.IataCode).
			Msg("Skipping fare")
	}), nil
}

// requestURL pins both date ranges to the exact pair so one call quotes one triple.
func (a *Adapter) requestURL(origin string, outbound, inbound time.Time) string {
	out := timeutil.FormatDate(outbound)
	in := timeutil.FormatDate(inbound)

	q := url.Values{}
	q.Set("departureAirportIataCode", origin)
	q.Set("outboundDepartureDateFrom", out)
	q.Set("outboundDepartureDateTo", out)
	q.Set("inboundDepartureDateFrom", in)
	q.Set("inboundDepartureDateTo", in)
	q.Set("currency", a.cfg.Currency)
	q.Set("market", a.cfg.Market)
	q.Set("adultPaxCount", "1")

	return a.cfg.BaseURL + roundTripPath + "?" + q.Encode()
}

// transportError classifies a failed round trip to the server.
func (a *Adapter) transportError(ctx, attemptCtx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		// the caller gave up; retrying is pointless
		return domain.NewProviderError(ProviderName, ctx.Err())
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		return domain.NewProviderTimeoutError(ProviderName)
	default:
		return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
}

// statusError maps a non-200 response to a ProviderError.
func statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(body))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewRetryableProviderError(ProviderName, domain.ErrRateLimited)
	case resp.StatusCode >= http.StatusInternalServerError:
		return domain.NewRetryableProviderError(ProviderName,
			fmt.Errorf("%w: status %d: %s", domain.ErrProviderUnavailable, resp.StatusCode, detail))
	default:
		return domain.NewProviderError(ProviderName,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail))
	}
}

// Ensure Adapter implements domain.PriceQuoter at compile time.
var _ domain.PriceQuoter = (*Adapter)(nil)
