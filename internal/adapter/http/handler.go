// Package http provides the HTTP handler layer for the round-trip fare search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/http/response"
	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/roundtrip-fare-finder/internal/usecase"
)

// TripHandler handles HTTP requests for the round-trip search endpoints.
type TripHandler struct {
	useCase  usecase.TripSearchUseCase
	clock    timeutil.Clock
	location *time.Location
	limits   Limits
	provider string
}

// HandlerOption configures a TripHandler.
type HandlerOption func(*TripHandler)

// WithClock sets the clock deciding which day is today.
func WithClock(clock timeutil.Clock) HandlerOption {
	return func(h *TripHandler) {
		h.clock = clock
	}
}

// WithLocation sets the time zone whose calendar date is today.
func WithLocation(loc *time.Location) HandlerOption {
	return func(h *TripHandler) {
		h.location = loc
	}
}

// WithLimits sets the request guards and defaults.
func WithLimits(limits Limits) HandlerOption {
	return func(h *TripHandler) {
		h.limits = limits
	}
}

// WithProviderName sets the provider name reported by the health check.
func WithProviderName(name string) HandlerOption {
	return func(h *TripHandler) {
		h.provider = name
	}
}

// NewTripHandler creates a new TripHandler with the given use case.
func NewTripHandler(uc usecase.TripSearchUseCase, opts ...HandlerOption) *TripHandler {
	h := &TripHandler{
		useCase:  uc,
		clock:    timeutil.NewRealClock(),
		location: time.UTC,
		limits:   DefaultLimits(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SearchTrips handles POST /api/v1/trips/search
//
// @Summary Find the cheapest round trips to one airport
// @Description Sweeps every outbound/inbound date pair of the window and returns the cheapest round trips towards the destination airport
// @Tags trips
// @Accept json
// @Produce json
// @Param request body SearchTripsRequest true "Search parameters"
// @Success 200 {object} SearchTripsResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 429 {object} response.ErrorDetail "Provider rate limit"
// @Failure 502 {object} response.ErrorDetail "Provider error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/trips/search [post]
func (h *TripHandler) SearchTrips(c echo.Context) error {
	var req SearchTripsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(h.today(), h.limits); err != nil {
		return h.handleValidationError(c, err)
	}

	search, err := ToSingleSearch(&req)
	if err != nil {
		return h.handleError(c, err)
	}

	result, err := h.useCase.SearchAirport(c.Request().Context(), search)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchTripsResponse(result))
}

// SearchCountries handles POST /api/v1/trips/search/countries
//
// @Summary Find the cheapest round trips per destination country
// @Description Runs one sweep over the window and ranks the round trips of every requested country separately
// @Tags trips
// @Accept json
// @Produce json
// @Param request body SearchCountriesRequest true "Search parameters"
// @Success 200 {object} SearchCountriesResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 429 {object} response.ErrorDetail "Provider rate limit"
// @Failure 502 {object} response.ErrorDetail "Provider error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/trips/search/countries [post]
func (h *TripHandler) SearchCountries(c echo.Context) error {
	var req SearchCountriesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(h.today(), h.limits); err != nil {
		return h.handleValidationError(c, err)
	}

	search, err := ToMultiSearch(&req)
	if err != nil {
		return h.handleError(c, err)
	}

	result, err := h.useCase.SearchCountries(c.Request().Context(), search)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchCountriesResponse(result))
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *TripHandler) Health(c echo.Context) error {
	return response.Health(c, h.provider)
}

func (h *TripHandler) today() time.Time {
	return timeutil.Today(h.clock, h.location)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *TripHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
// Timeouts are checked before provider failures since a provider timeout is both.
func (h *TripHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidRequest) || errors.Is(err, domain.ErrMixedCriteria) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) || domain.IsProviderTimeout(err) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if domain.IsRateLimited(err) {
		return response.TooManyRequests(c)
	}

	if domain.IsProviderFailure(err) {
		return response.BadGatewayWithDetails(c, failureDetails(err))
	}

	return response.InternalServerError(c)
}

// failureDetails names the date pair of an aborted sweep.
func failureDetails(err error) map[string]string {
	var searchErr *domain.SearchError
	if !errors.As(err, &searchErr) {
		return nil
	}

	details := map[string]string{
		"outbound_date": searchErr.Triple.OutboundDate.Format(domain.DateLayout),
		"inbound_date":  searchErr.Triple.InboundDate.Format(domain.DateLayout),
	}

	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		details["provider"] = providerErr.Provider
	}
	return details
}
