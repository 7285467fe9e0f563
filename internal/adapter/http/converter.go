package http

import (
	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
)

// ToSingleSearch converts a validated SearchTripsRequest to a domain.SingleSearch.
func ToSingleSearch(req *SearchTripsRequest) (domain.SingleSearch, error) {
	window, stays, err := req.TripParams.toDomain()
	if err != nil {
		return domain.SingleSearch{}, err
	}

	return domain.SingleSearch{
		Origin:      req.Origin,
		Destination: req.Destination,
		Window:      window,
		Stays:       stays,
	}, nil
}

// ToMultiSearch converts a validated SearchCountriesRequest to a domain.MultiSearch.
func ToMultiSearch(req *SearchCountriesRequest) (domain.MultiSearch, error) {
	window, stays, err := req.TripParams.toDomain()
	if err != nil {
		return domain.MultiSearch{}, err
	}

	countries := make([]string, len(req.Countries))
	copy(countries, req.Countries)

	return domain.MultiSearch{
		Origin:    req.Origin,
		Countries: countries,
		Window:    window,
		Stays:     stays,
	}, nil
}

// toDomain parses the window and stay bounds. Validate must have filled every field.
func (p *TripParams) toDomain() (domain.DateWindow, domain.StayRange, error) {
	if p.MinDays == nil || p.MaxDays == nil {
		return domain.DateWindow{}, domain.StayRange{}, domain.WrapInvalidRequest("stay bounds are missing")
	}

	start, err := domain.ParseDate(p.StartDate)
	if err != nil {
		return domain.DateWindow{}, domain.StayRange{}, domain.WrapInvalidRequest("startDate %q: %v", p.StartDate, err)
	}
	end, err := domain.ParseDate(p.EndDate)
	if err != nil {
		return domain.DateWindow{}, domain.StayRange{}, domain.WrapInvalidRequest("endDate %q: %v", p.EndDate, err)
	}

	return domain.NewDateWindow(start, end), domain.StayRange{MinDays: *p.MinDays, MaxDays: *p.MaxDays}, nil
}
