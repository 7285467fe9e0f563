package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/http/response"
	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/roundtrip-fare-finder/internal/usecase"
)

// mockUseCase is a mock implementation of TripSearchUseCase for testing.
type mockUseCase struct {
	airportFunc   func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error)
	countriesFunc func(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error)
}

func (m *mockUseCase) SearchAirport(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
	if m.airportFunc != nil {
		return m.airportFunc(ctx, search)
	}
	return &domain.SingleResult{Search: search, Entries: []domain.RankedEntry{}}, nil
}

func (m *mockUseCase) SearchCountries(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error) {
	if m.countriesFunc != nil {
		return m.countriesFunc(ctx, search)
	}
	buckets := make(domain.ResultSet, len(search.Countries))
	for i, c := range search.Countries {
		buckets[i] = domain.Bucket{Label: c, Entries: []domain.RankedEntry{}}
	}
	return &domain.MultiResult{Search: search, Buckets: buckets}, nil
}

// setupTestHandler creates a test Echo instance and TripHandler whose today is 2024-06-01.
func setupTestHandler(uc usecase.TripSearchUseCase) (*echo.Echo, *TripHandler) {
	e := echo.New()
	h := NewTripHandler(uc,
		WithClock(timeutil.NewMockClockFromDate("2024-06-01")),
		WithProviderName("ryanair"),
	)
	RegisterRoutes(e, h)
	return e, h
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErrorDetail(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var errResp response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp
}

func date(value string) time.Time {
	d, err := domain.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

// rankedEntry builds a MAD round trip to dest priced at total.
func rankedEntry(dest, destName, total string, outbound string, stay int) domain.RankedEntry {
	out := date(outbound)
	price := decimal.RequireFromString(total)
	half := price.Div(decimal.NewFromInt(2))

	return domain.RankedEntry{
		Offer: domain.TripOffer{
			Outbound: domain.FlightLeg{
				OriginCode:          "MAD",
				OriginFullName:      "Madrid, Spain",
				DestinationCode:     dest,
				DestinationFullName: destName,
				DepartureTime:       out.Add(7 * time.Hour),
				FlightNumber:        "FR 5411",
				Price:               half,
				Currency:            "EUR",
			},
			Inbound: domain.FlightLeg{
				OriginCode:          dest,
				OriginFullName:      destName,
				DestinationCode:     "MAD",
				DestinationFullName: "Madrid, Spain",
				DepartureTime:       out.AddDate(0, 0, stay).Add(19 * time.Hour),
				FlightNumber:        "FR 5412",
				Price:               half,
				Currency:            "EUR",
			},
			TotalPrice: price,
		},
		StayDays: stay,
	}
}

// =====================================================
// Single airport search
// =====================================================

func TestSearchTrips_Success(t *testing.T) {
	var captured domain.SingleSearch

	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			captured = search
			return &domain.SingleResult{
				Search: search,
				Entries: []domain.RankedEntry{
					rankedEntry("CDG", "Paris Beauvais, France", "40", "2024-06-01", 2),
					rankedEntry("CDG", "Paris Beauvais, France", "50", "2024-06-01", 1),
				},
				Stats: domain.SearchStats{
					TriplesEnumerated: 3,
					QuotesRequested:   3,
					OffersReceived:    3,
					OffersMatched:     2,
					Duration:          1500 * time.Millisecond,
				},
			}, nil
		},
	}

	e, _ := setupTestHandler(mock)

	req := SearchTripsRequest{
		Origin:      "mad",
		Destination: "cdg",
		TripParams: TripParams{
			StartDate: "2024-06-01",
			EndDate:   "2024-06-03",
			MinDays:   intPtr(1),
			MaxDays:   intPtr(2),
		},
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search", req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "MAD", captured.Origin)
	assert.Equal(t, "CDG", captured.Destination)
	assert.Equal(t, 3, captured.Window.Days())
	assert.Equal(t, domain.StayRange{MinDays: 1, MaxDays: 2}, captured.Stays)

	var resp SearchTripsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "MAD", resp.SearchCriteria.Origin)
	assert.Equal(t, "CDG", resp.SearchCriteria.Destination)
	assert.Equal(t, "2024-06-01", resp.SearchCriteria.StartDate)
	assert.Equal(t, "2024-06-03", resp.SearchCriteria.EndDate)

	assert.Equal(t, 2, resp.Metadata.TotalResults)
	assert.Equal(t, 3, resp.Metadata.QuotesRequested)
	assert.Equal(t, 2, resp.Metadata.OffersMatched)
	assert.Equal(t, int64(1500), resp.Metadata.SearchTimeMs)

	require.Len(t, resp.Options, 2)
	first := resp.Options[0]
	assert.Equal(t, 1, first.Option)
	assert.Equal(t, 2, first.StayDays)
	assert.True(t, decimal.NewFromInt(40).Equal(first.TotalPrice.Amount))
	assert.Equal(t, "EUR", first.TotalPrice.Currency)
	assert.Equal(t, "MAD", first.Outbound.Departure.Code)
	assert.Equal(t, "Paris Beauvais, France", first.Outbound.Arrival.Name)
	assert.Equal(t, "2024-06-01T07:00:00+00:00", first.Outbound.DateTime)
	assert.Equal(t, "FR 5412", first.Inbound.FlightNumber)
	assert.Equal(t, 2, resp.Options[1].Option)
	assert.True(t, decimal.NewFromInt(50).Equal(resp.Options[1].TotalPrice.Amount))
}

func TestSearchTrips_DefaultsFromToday(t *testing.T) {
	var captured domain.SingleSearch

	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			captured = search
			return &domain.SingleResult{Search: search, Entries: []domain.RankedEntry{}}, nil
		},
	}

	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search",
		SearchTripsRequest{Origin: "MAD", Destination: "CDG"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, date("2024-06-01"), captured.Window.Start)
	assert.Equal(t, date("2024-07-01"), captured.Window.End)
	assert.Equal(t, domain.StayRange{MinDays: 1, MaxDays: 14}, captured.Stays)

	var resp SearchTripsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Options)
	assert.Empty(t, resp.Options)
}

func TestSearchTrips_TodayFollowsLocation(t *testing.T) {
	var captured domain.SingleSearch

	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			captured = search
			return &domain.SingleResult{Search: search}, nil
		},
	}

	// 23:30 UTC on May 31 is already June 1 in Madrid.
	clock := timeutil.NewMockClock(time.Date(2024, 5, 31, 23, 30, 0, 0, time.UTC))
	e := echo.New()
	RegisterRoutes(e, NewTripHandler(mock,
		WithClock(clock),
		WithLocation(timeutil.MustGetLocation("Europe/Madrid")),
	))

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search",
		SearchTripsRequest{Origin: "MAD", Destination: "CDG"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, date("2024-06-01"), captured.Window.Start)
}

func TestSearchTrips_InvalidJSON(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/search",
		strings.NewReader(`{invalid json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeErrorDetail(t, rec).Code)
}

func TestSearchTrips_ValidationErrors(t *testing.T) {
	called := false
	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			called = true
			return nil, nil
		},
	}
	e, _ := setupTestHandler(mock)

	tests := []struct {
		name          string
		request       SearchTripsRequest
		expectedField string
	}{
		{
			name:          "missing origin",
			request:       SearchTripsRequest{Destination: "CDG"},
			expectedField: "origin",
		},
		{
			name:          "destination with digits",
			request:       SearchTripsRequest{Origin: "MAD", Destination: "C1G"},
			expectedField: "destination",
		},
		{
			name: "date in wrong format",
			request: SearchTripsRequest{
				Origin: "MAD", Destination: "CDG",
				TripParams: TripParams{StartDate: "01-06-2024"},
			},
			expectedField: "startDate",
		},
		{
			name: "start date in the past",
			request: SearchTripsRequest{
				Origin: "MAD", Destination: "CDG",
				TripParams: TripParams{StartDate: "2024-05-01"},
			},
			expectedField: "startDate",
		},
		{
			name: "zero min days",
			request: SearchTripsRequest{
				Origin: "MAD", Destination: "CDG",
				TripParams: TripParams{MinDays: intPtr(0)},
			},
			expectedField: "minDays",
		},
		{
			name: "inverted stays",
			request: SearchTripsRequest{
				Origin: "MAD", Destination: "CDG",
				TripParams: TripParams{MinDays: intPtr(6), MaxDays: intPtr(3)},
			},
			expectedField: "maxDays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search", tt.request)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			errResp := decodeErrorDetail(t, rec)
			assert.Equal(t, response.CodeValidationError, errResp.Code)
			assert.Contains(t, errResp.Details, tt.expectedField)
		})
	}

	assert.False(t, called, "use case must not run for invalid requests")
}

func TestSearchTrips_ErrorMapping(t *testing.T) {
	failing := domain.SearchTriple{
		OutboundDate: date("2024-06-05"),
		InboundDate:  date("2024-06-07"),
		StayDays:     2,
	}
	abort := func(err error) error {
		return &domain.SearchError{Triple: failing, Err: err}
	}

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "provider failure",
			err:          abort(domain.NewProviderUnavailableError("ryanair")),
			expectedCode: http.StatusBadGateway,
			expectedBody: response.CodeProviderError,
		},
		{
			name:         "provider rate limit",
			err:          abort(domain.NewRetryableProviderError("ryanair", domain.ErrRateLimited)),
			expectedCode: http.StatusTooManyRequests,
			expectedBody: response.CodeRateLimited,
		},
		{
			name:         "provider timeout",
			err:          abort(domain.NewProviderTimeoutError("ryanair")),
			expectedCode: http.StatusGatewayTimeout,
			expectedBody: response.CodeTimeout,
		},
		{
			name:         "sweep deadline",
			err:          abort(context.DeadlineExceeded),
			expectedCode: http.StatusGatewayTimeout,
			expectedBody: response.CodeTimeout,
		},
		{
			name:         "cancelled",
			err:          abort(context.Canceled),
			expectedCode: http.StatusGatewayTimeout,
			expectedBody: response.MsgRequestCancelled,
		},
		{
			name:         "invalid request from core",
			err:          domain.WrapInvalidRequest("origin is empty"),
			expectedCode: http.StatusBadRequest,
			expectedBody: response.CodeValidationError,
		},
		{
			name:         "mixed criteria",
			err:          domain.ErrMixedCriteria,
			expectedCode: http.StatusBadRequest,
			expectedBody: response.CodeValidationError,
		},
		{
			name:         "unexpected",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: response.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUseCase{
				airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
					return nil, tt.err
				},
			}
			e, _ := setupTestHandler(mock)

			rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search",
				SearchTripsRequest{Origin: "MAD", Destination: "CDG"})

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestSearchTrips_ProviderFailureDetails(t *testing.T) {
	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			return nil, &domain.SearchError{
				Triple: domain.SearchTriple{
					OutboundDate: date("2024-06-05"),
					InboundDate:  date("2024-06-07"),
					StayDays:     2,
				},
				Err: domain.NewProviderError("ryanair", fmt.Errorf("status 400")),
			}
		},
	}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search",
		SearchTripsRequest{Origin: "MAD", Destination: "CDG"})

	require.Equal(t, http.StatusBadGateway, rec.Code)
	errResp := decodeErrorDetail(t, rec)
	assert.Equal(t, map[string]string{
		"outbound_date": "2024-06-05",
		"inbound_date":  "2024-06-07",
		"provider":      "ryanair",
	}, errResp.Details)
}

// =====================================================
// Country search
// =====================================================

func TestSearchCountries_Success(t *testing.T) {
	var captured domain.MultiSearch

	mock := &mockUseCase{
		countriesFunc: func(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error) {
			captured = search
			return &domain.MultiResult{
				Search: search,
				Buckets: domain.ResultSet{
					{Label: "France", Entries: []domain.RankedEntry{
						rankedEntry("BVA", "Paris Beauvais, France", "35.5", "2024-06-02", 3),
					}},
					{Label: "Italy", Entries: []domain.RankedEntry{}},
				},
				Stats: domain.SearchStats{TriplesEnumerated: 20, QuotesRequested: 20, OffersReceived: 18, OffersMatched: 1},
			}, nil
		},
	}

	e, _ := setupTestHandler(mock)

	req := SearchCountriesRequest{
		Origin:    "MAD",
		Countries: []string{"France", " ", "Italy"},
		TripParams: TripParams{
			StartDate: "2024-06-01",
			EndDate:   "2024-06-10",
			MinDays:   intPtr(2),
			MaxDays:   intPtr(4),
		},
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search/countries", req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"France", "Italy"}, captured.Countries)

	var resp SearchCountriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"France", "Italy"}, resp.SearchCriteria.Countries)
	assert.Empty(t, resp.SearchCriteria.Destination)
	assert.Equal(t, 1, resp.Metadata.TotalResults)
	assert.Equal(t, 20, resp.Metadata.TriplesSearched)

	require.Len(t, resp.Destinations, 2)
	assert.Equal(t, "France", resp.Destinations[0].Country)
	require.Len(t, resp.Destinations[0].Options, 1)
	assert.Equal(t, "BVA", resp.Destinations[0].Options[0].Outbound.Arrival.Code)
	assert.True(t, decimal.RequireFromString("35.5").Equal(resp.Destinations[0].Options[0].TotalPrice.Amount))
	assert.Equal(t, "Italy", resp.Destinations[1].Country)
	assert.NotNil(t, resp.Destinations[1].Options)
	assert.Empty(t, resp.Destinations[1].Options)
}

func TestSearchCountries_ValidationErrors(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	tests := []struct {
		name          string
		request       SearchCountriesRequest
		expectedField string
	}{
		{
			name:          "no countries",
			request:       SearchCountriesRequest{Origin: "MAD"},
			expectedField: "countries",
		},
		{
			name:          "blank countries only",
			request:       SearchCountriesRequest{Origin: "MAD", Countries: []string{"", "  "}},
			expectedField: "countries",
		},
		{
			name:          "too many countries",
			request:       SearchCountriesRequest{Origin: "MAD", Countries: []string{"France", "Italy", "Germany", "Malta"}},
			expectedField: "countries",
		},
		{
			name:          "invalid origin",
			request:       SearchCountriesRequest{Origin: "Madrid", Countries: []string{"France"}},
			expectedField: "origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search/countries", tt.request)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeErrorDetail(t, rec).Details, tt.expectedField)
		})
	}
}

func TestSearchCountries_ProviderFailure(t *testing.T) {
	mock := &mockUseCase{
		countriesFunc: func(ctx context.Context, search domain.MultiSearch) (*domain.MultiResult, error) {
			return nil, &domain.SearchError{Err: domain.NewProviderUnavailableError("ryanair")}
		},
	}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search/countries",
		SearchCountriesRequest{Origin: "MAD", Countries: []string{"France"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, response.CodeProviderError, decodeErrorDetail(t, rec).Code)
}

// =====================================================
// Health & routing
// =====================================================

func TestHealth(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ryanair", resp.Provider)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/api/v1/trips/search", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegisterRoutesWithMiddleware_SkipsHealth(t *testing.T) {
	hits := 0
	counter := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits++
			return next(c)
		}
	}

	e := echo.New()
	h := NewTripHandler(&mockUseCase{}, WithClock(timeutil.NewMockClockFromDate("2024-06-01")))
	RegisterRoutesWithMiddleware(e, h, counter)

	makeRequest(e, http.MethodGet, "/health", nil)
	assert.Equal(t, 0, hits)

	rec := makeRequest(e, http.MethodPost, "/api/v1/trips/search",
		SearchTripsRequest{Origin: "MAD", Destination: "CDG"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits)
}

func TestHandler_PassesRequestContext(t *testing.T) {
	type ctxKey struct{}

	var got interface{}
	mock := &mockUseCase{
		airportFunc: func(ctx context.Context, search domain.SingleSearch) (*domain.SingleResult, error) {
			got = ctx.Value(ctxKey{})
			return &domain.SingleResult{Search: search}, nil
		},
	}
	e, _ := setupTestHandler(mock)

	body, _ := json.Marshal(SearchTripsRequest{Origin: "MAD", Destination: "CDG"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips/search", bytes.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "sweep"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sweep", got)
}
