// Package ratelimit throttles outbound quote calls per provider so a full
// sweep does not trip the provider's own rate limiting.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config holds one provider's token bucket settings.
type Config struct {
	// RequestsPerSecond is the sustained request rate. Zero or less disables limiting.
	RequestsPerSecond float64

	// Burst is the number of requests allowed at once.
	Burst int
}

// DefaultConfig returns the limits used for providers without explicit settings.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

// limiter builds a rate.Limiter for c.
func (c Config) limiter() *rate.Limiter {
	if c.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := c.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RequestsPerSecond), burst)
}

// ProviderLimiter keeps one token bucket per provider name.
type ProviderLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

// NewProviderLimiter creates a registry whose unknown providers get cfg.
func NewProviderLimiter(cfg Config) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// GetLimiter returns the provider's limiter, creating it from the defaults on first use.
func (p *ProviderLimiter) GetLimiter(provider string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[provider]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[provider]; exists {
		return limiter
	}

	limiter = p.defaults.limiter()
	p.limiters[provider] = limiter
	return limiter
}

// SetProviderLimit replaces the limiter of one provider.
func (p *ProviderLimiter) SetProviderLimit(provider string, cfg Config) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limiters[provider] = cfg.limiter()
}

// Wait blocks until the provider may send one more request or ctx is done.
func (p *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	return p.GetLimiter(provider).Wait(ctx)
}

// Allow reports whether the provider may send a request right now, consuming a token if so.
func (p *ProviderLimiter) Allow(provider string) bool {
	return p.GetLimiter(provider).Allow()
}
