package ryanair

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
)

// ProviderName is the unique identifier for the Ryanair fare finder provider.
const ProviderName = "ryanair"

// normalize converts fares to trip offers, cheapest first.
// Fares that cannot be normalized are skipped and reported through skipped.
func normalize(fares []Fare, timezone string, skipped func(Fare, error)) []domain.TripOffer {
	result := make([]domain.TripOffer, 0, len(fares))

	for _, f := range fares {
		offer, err := normalizeFare(f, timezone)
		if err != nil {
			if skipped != nil {
				skipped(f, err)
			}
			continue
		}
		result = append(result, offer)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalPrice.LessThan(result[j].TotalPrice)
	})
	return result
}

// normalizeFare converts a single fare to a domain TripOffer.
func normalizeFare(f Fare, timezone string) (domain.TripOffer, error) {
	outbound, err := normalizeLeg(f.Outbound, timezone)
	if err != nil {
		return domain.TripOffer{}, fmt.Errorf("outbound: %w", err)
	}

	inbound, err := normalizeLeg(f.Inbound, timezone)
	if err != nil {
		return domain.TripOffer{}, fmt.Errorf("inbound: %w", err)
	}

	if f.Summary.Price.Value.IsNegative() {
		return domain.TripOffer{}, errors.New("negative total price")
	}

	return domain.TripOffer{
		Outbound:   outbound,
		Inbound:    inbound,
		TotalPrice: f.Summary.Price.Value,
	}, nil
}

// normalizeLeg converts one flight of a fare to a domain FlightLeg.
func normalizeLeg(l FareLeg, timezone string) (domain.FlightLeg, error) {
	if l.DepartureAirport.IataCode == "" || l.ArrivalAirport.IataCode == "" {
		return domain.FlightLeg{}, errors.New("missing airport code")
	}

	departure, err := timeutil.ParseProviderTime(l.DepartureDate, timezone)
	if err != nil {
		return domain.FlightLeg{}, fmt.Errorf("failed to parse departure time: %w", err)
	}

	return domain.FlightLeg{
		OriginCode:          l.DepartureAirport.IataCode,
		OriginFullName:      formatAirportName(l.DepartureAirport),
		DestinationCode:     l.ArrivalAirport.IataCode,
		DestinationFullName: formatAirportName(l.ArrivalAirport),
		DepartureTime:       departure,
		FlightNumber:        formatFlightNumber(l.FlightNumber),
		Price:               l.Price.Value,
		Currency:            l.Price.CurrencyCode,
	}, nil
}

// formatAirportName renders "<airport name>, <country name>" so that country
// criteria can match by substring. Missing parts are left out.
func formatAirportName(a Airport) string {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		name = a.IataCode
	}
	country := strings.TrimSpace(a.CountryName)
	if country == "" {
		return name
	}
	return name + ", " + country
}

// formatFlightNumber inserts a space after the carrier prefix ("FR1234" becomes "FR 1234").
func formatFlightNumber(number string) string {
	number = strings.TrimSpace(number)
	if len(number) <= 2 || number[2] == ' ' {
		return number
	}
	return number[:2] + " " + number[2:]
}
