package ryanair

import "github.com/shopspring/decimal"

// RoundTripFaresResponse is the body of GET /roundTripFares.
type RoundTripFaresResponse struct {
	Fares    []Fare `json:"fares"`
	NextPage *int   `json:"nextPage"`
	Size     int    `json:"size"`
}

// Fare is one round trip: the cheapest outbound and inbound flight found for
// a destination in the requested date ranges.
type Fare struct {
	Outbound FareLeg     `json:"outbound"`
	Inbound  FareLeg     `json:"inbound"`
	Summary  FareSummary `json:"summary"`
}

// FareLeg is one flight of a fare.
type FareLeg struct {
	DepartureAirport Airport `json:"departureAirport"`
	ArrivalAirport   Airport `json:"arrivalAirport"`
	DepartureDate    string  `json:"departureDate"`
	ArrivalDate      string  `json:"arrivalDate"`
	Price            Price   `json:"price"`
	FlightKey        string  `json:"flightKey"`
	FlightNumber     string  `json:"flightNumber"`
}

// Airport identifies an airport and its country.
type Airport struct {
	CountryName string `json:"countryName"`
	IataCode    string `json:"iataCode"`
	Name        string `json:"name"`
	SeoName     string `json:"seoName"`
	City        City   `json:"city"`
}

// City is the city an airport serves.
type City struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	CountryCode string `json:"countryCode"`
}

// Price is an amount in one currency.
type Price struct {
	Value          decimal.Decimal `json:"value"`
	CurrencyCode   string          `json:"currencyCode"`
	CurrencySymbol string          `json:"currencySymbol"`
}

// FareSummary carries the round-trip total.
type FareSummary struct {
	Price            Price `json:"price"`
	TripDurationDays int   `json:"tripDurationDays"`
}
