// Package integration provides helpers and integration tests for the round-trip fare finder.
// Integration tests verify that components work together correctly, including
// HTTP handlers, use cases, the fare finder adapter and the Redis quote cache.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	httpAdapter "github.com/flight-search/roundtrip-fare-finder/internal/adapter/http"
	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/provider/cache"
	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/provider/ryanair"
	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/retry"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/roundtrip-fare-finder/internal/usecase"
	"github.com/flight-search/roundtrip-fare-finder/test/testutil"
)

// Today is the date every test server treats as today.
const Today = "2024-06-01"

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.TripHandler
}

// NewTestServer creates a new test server with the given use case.
// The server's clock is frozen on Today.
func NewTestServer(uc usecase.TripSearchUseCase, opts ...httpAdapter.HandlerOption) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	opts = append([]httpAdapter.HandlerOption{
		httpAdapter.WithClock(timeutil.NewMockClockFromDate(Today)),
		httpAdapter.WithProviderName(ryanair.ProviderName),
	}, opts...)

	handler := httpAdapter.NewTripHandler(uc, opts...)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	RawBody     string
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch {
	case req.RawBody != "":
		bodyReader = bytes.NewReader([]byte(req.RawBody))
	case req.Body != nil:
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	default:
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil || req.RawBody != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchTrips posts a search towards one airport.
func (ts *TestServer) SearchTrips(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/trips/search",
		Body:   body,
	})
}

// SearchCountries posts a search towards a list of countries.
func (ts *TestServer) SearchCountries(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/trips/search/countries",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseTrips parses the response body of an airport search.
func (r *Response) ParseTrips() (*httpAdapter.SearchTripsResponse, error) {
	var resp httpAdapter.SearchTripsResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseCountries parses the response body of a country search.
func (r *Response) ParseCountries() (*httpAdapter.SearchCountriesResponse, error) {
	var resp httpAdapter.SearchCountriesResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseMap parses the response body into a generic JSON object.
func (r *Response) ParseMap() (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	return r.ParseMap()
}

// TripsRequest builds a fully specified airport search body.
func TripsRequest(origin, destination, start, end string, minDays, maxDays int) httpAdapter.SearchTripsRequest {
	return httpAdapter.SearchTripsRequest{
		Origin:      origin,
		Destination: destination,
		TripParams:  tripParams(start, end, minDays, maxDays),
	}
}

// CountriesRequest builds a fully specified country search body.
func CountriesRequest(origin string, countries []string, start, end string, minDays, maxDays int) httpAdapter.SearchCountriesRequest {
	return httpAdapter.SearchCountriesRequest{
		Origin:     origin,
		Countries:  countries,
		TripParams: tripParams(start, end, minDays, maxDays),
	}
}

func tripParams(start, end string, minDays, maxDays int) httpAdapter.TripParams {
	return httpAdapter.TripParams{
		StartDate: start,
		EndDate:   end,
		MinDays:   testutil.IntPtr(minDays),
		MaxDays:   testutil.IntPtr(maxDays),
	}
}

// CreateUseCase creates a use case over quoter with the default configuration.
func CreateUseCase(quoter domain.PriceQuoter) usecase.TripSearchUseCase {
	return usecase.NewTripSearchUseCase(quoter, nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(quoter domain.PriceQuoter, config *usecase.Config) usecase.TripSearchUseCase {
	return usecase.NewTripSearchUseCase(quoter, config)
}

// fastRetry keeps retry waits short so failure tests stay quick.
var fastRetry = retry.Config{
	MaxAttempts:  2,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2,
}

// NewFareFinderQuoter returns the fare finder adapter pointed at a fake server.
func NewFareFinderQuoter(fs *testutil.FareServer) *ryanair.Adapter {
	return ryanair.NewAdapter(ryanair.Config{
		BaseURL: fs.URL,
		Timeout: time.Second,
		Retry:   fastRetry,
	})
}

// NewCachedQuoter wraps next with a quote cache backed by an in-memory Redis.
// The returned miniredis instance lets tests inspect or break the store.
func NewCachedQuoter(t *testing.T, next domain.PriceQuoter) (*cache.CachedQuoter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	quoter := cache.NewCachedQuoter(next, cache.NewRedisStoreFromClient(client), cache.Config{
		TTL:      time.Minute,
		Currency: ryanair.DefaultCurrency,
		Market:   ryanair.DefaultMarket,
	})
	return quoter, mr
}

// Date parses a YYYY-MM-DD date for use case level tests.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	return testutil.MustParseDate(t, s)
}
