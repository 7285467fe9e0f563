// Package domain contains the core business entities and rules for the round-trip fare search.
// These entities are provider-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightLeg represents one direction of a round trip as quoted by a provider.
type FlightLeg struct {
	// OriginCode is the IATA code of the departure airport (e.g., "MAD")
	OriginCode string `json:"originCode"`

	// OriginFullName is the human-readable departure airport name (e.g., "Madrid, Spain")
	OriginFullName string `json:"originFullName"`

	// DestinationCode is the IATA code of the arrival airport (e.g., "CDG")
	DestinationCode string `json:"destinationCode"`

	// DestinationFullName is the human-readable arrival airport name, including
	// the country (e.g., "Paris Beauvais, France"). Country matching runs against it.
	DestinationFullName string `json:"destinationFullName"`

	// DepartureTime is the scheduled departure of this leg
	DepartureTime time.Time `json:"departureTime"`

	// FlightNumber is the carrier's flight number (e.g., "FR 1234")
	FlightNumber string `json:"flightNumber"`

	// Price is the fare of this leg alone
	Price decimal.Decimal `json:"price"`

	// Currency is the ISO 4217 currency code of Price (e.g., "EUR")
	Currency string `json:"currency"`
}

// TripOffer is the cheapest round trip a provider returned for one exact date pair.
type TripOffer struct {
	// Outbound is the leg leaving the origin
	Outbound FlightLeg `json:"outbound"`

	// Inbound is the leg returning to the origin
	Inbound FlightLeg `json:"inbound"`

	// TotalPrice is the provider's total for the whole trip. It is the ranking key
	// and is never re-derived from the leg prices.
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Currency returns the currency the offer is priced in.
func (o TripOffer) Currency() string {
	return o.Outbound.Currency
}

// RankedEntry is an offer together with the stay length it was found for.
type RankedEntry struct {
	Offer    TripOffer `json:"offer"`
	StayDays int       `json:"stayDays"`
}
