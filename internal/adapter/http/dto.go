package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
)

// dateTimeLayout is the layout of departure times in responses.
const dateTimeLayout = "2006-01-02T15:04:05-07:00"

// SearchTripsResponse is the response of a search towards one airport.
type SearchTripsResponse struct {
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Options        []OptionDTO       `json:"options"`
}

// SearchCountriesResponse is the response of a search towards several countries.
// Destinations keep the order of the requested countries.
type SearchCountriesResponse struct {
	SearchCriteria SearchCriteriaDTO `json:"search_criteria"`
	Metadata       MetadataDTO       `json:"metadata"`
	Destinations   []DestinationDTO  `json:"destinations"`
}

// SearchCriteriaDTO echoes the resolved search parameters.
type SearchCriteriaDTO struct {
	Origin      string   `json:"origin" example:"MAD"`
	Destination string   `json:"destination,omitempty" example:"CDG"`
	Countries   []string `json:"countries,omitempty"`
	StartDate   string   `json:"start_date" example:"2024-06-01"`
	EndDate     string   `json:"end_date" example:"2024-06-30"`
	MinDays     int      `json:"min_days" example:"2"`
	MaxDays     int      `json:"max_days" example:"7"`
}

// MetadataDTO contains metadata about the sweep.
type MetadataDTO struct {
	TotalResults    int   `json:"total_results" example:"10"`
	TriplesSearched int   `json:"triples_searched" example:"168"`
	QuotesRequested int   `json:"quotes_requested" example:"168"`
	OffersReceived  int   `json:"offers_received" example:"151"`
	OffersMatched   int   `json:"offers_matched" example:"37"`
	SearchTimeMs    int64 `json:"search_time_ms" example:"41250"`
}

// DestinationDTO is the ranked list of one requested country.
type DestinationDTO struct {
	Country string      `json:"country" example:"France"`
	Options []OptionDTO `json:"options"`
}

// OptionDTO is one ranked round trip. Option numbers start at 1.
type OptionDTO struct {
	Option     int      `json:"option" example:"1"`
	StayDays   int      `json:"stay_days" example:"3"`
	TotalPrice PriceDTO `json:"total_price"`
	Outbound   LegDTO   `json:"outbound"`
	Inbound    LegDTO   `json:"inbound"`
}

// LegDTO represents one direction of a round trip.
type LegDTO struct {
	FlightNumber string     `json:"flight_number" example:"FR 1234"`
	Departure    AirportDTO `json:"departure"`
	Arrival      AirportDTO `json:"arrival"`
	DateTime     string     `json:"datetime" example:"2024-06-01T06:25:00+00:00"`
	Timestamp    int64      `json:"timestamp" example:"1717223100"`
	Price        PriceDTO   `json:"price"`
}

// AirportDTO identifies an airport.
type AirportDTO struct {
	Code string `json:"code" example:"CDG"`
	Name string `json:"name" example:"Paris Beauvais, France"`
}

// PriceDTO represents price information. Amounts are decimal strings.
type PriceDTO struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"39.98"`
	Currency string          `json:"currency" example:"EUR"`
}

// ToSearchTripsResponse converts a domain SingleResult to a SearchTripsResponse.
func ToSearchTripsResponse(result *domain.SingleResult) *SearchTripsResponse {
	if result == nil {
		return nil
	}

	search := result.Search
	return &SearchTripsResponse{
		SearchCriteria: SearchCriteriaDTO{
			Origin:      search.Origin,
			Destination: search.Destination,
			StartDate:   search.Window.Start.Format(domain.DateLayout),
			EndDate:     search.Window.End.Format(domain.DateLayout),
			MinDays:     search.Stays.MinDays,
			MaxDays:     search.Stays.MaxDays,
		},
		Metadata: toMetadataDTO(result.Stats, len(result.Entries)),
		Options:  ToOptionDTOs(result.Entries),
	}
}

// ToSearchCountriesResponse converts a domain MultiResult to a SearchCountriesResponse.
func ToSearchCountriesResponse(result *domain.MultiResult) *SearchCountriesResponse {
	if result == nil {
		return nil
	}

	search := result.Search
	dto := &SearchCountriesResponse{
		SearchCriteria: SearchCriteriaDTO{
			Origin:    search.Origin,
			Countries: result.Buckets.Labels(),
			StartDate: search.Window.Start.Format(domain.DateLayout),
			EndDate:   search.Window.End.Format(domain.DateLayout),
			MinDays:   search.Stays.MinDays,
			MaxDays:   search.Stays.MaxDays,
		},
		Metadata:     toMetadataDTO(result.Stats, result.Buckets.TotalEntries()),
		Destinations: make([]DestinationDTO, len(result.Buckets)),
	}

	for i, bucket := range result.Buckets {
		dto.Destinations[i] = DestinationDTO{
			Country: bucket.Label,
			Options: ToOptionDTOs(bucket.Entries),
		}
	}
	return dto
}

// ToOptionDTOs numbers ranked entries from 1 in ranking order.
func ToOptionDTOs(entries []domain.RankedEntry) []OptionDTO {
	options := make([]OptionDTO, len(entries))
	for i, entry := range entries {
		options[i] = OptionDTO{
			Option:   i + 1,
			StayDays: entry.StayDays,
			TotalPrice: PriceDTO{
				Amount:   entry.Offer.TotalPrice,
				Currency: entry.Offer.Currency(),
			},
			Outbound: toLegDTO(entry.Offer.Outbound),
			Inbound:  toLegDTO(entry.Offer.Inbound),
		}
	}
	return options
}

func toLegDTO(leg domain.FlightLeg) LegDTO {
	return LegDTO{
		FlightNumber: leg.FlightNumber,
		Departure:    AirportDTO{Code: leg.OriginCode, Name: leg.OriginFullName},
		Arrival:      AirportDTO{Code: leg.DestinationCode, Name: leg.DestinationFullName},
		DateTime:     leg.DepartureTime.Format(dateTimeLayout),
		Timestamp:    leg.DepartureTime.Unix(),
		Price:        PriceDTO{Amount: leg.Price, Currency: leg.Currency},
	}
}

func toMetadataDTO(stats domain.SearchStats, total int) MetadataDTO {
	return MetadataDTO{
		TotalResults:    total,
		TriplesSearched: stats.TriplesEnumerated,
		QuotesRequested: stats.QuotesRequested,
		OffersReceived:  stats.OffersReceived,
		OffersMatched:   stats.OffersMatched,
		SearchTimeMs:    stats.Duration.Round(time.Millisecond).Milliseconds(),
	}
}
