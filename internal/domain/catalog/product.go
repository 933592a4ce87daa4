// Package catalog holds the product listing and option metadata records
// returned by the marketplace API.
package catalog

import (
	"encoding/json"
	"fmt"
)

// Route is the traveler's carry route for a listing.
type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Traveler is the listing owner's public card info.
type Traveler struct {
	Name        string  `json:"name"`
	FullName    string  `json:"fullName"`
	Avatar      string  `json:"avatar"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// Product is one listing card from the product listing endpoint.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Category      string   `json:"category"`
	Currency      string   `json:"currency"`
	Route         Route    `json:"route"`
	TravelDate    string   `json:"travelDate"`
	DepartureDate string   `json:"departureDate,omitempty"`
	ArrivalDate   string   `json:"arrivalDate,omitempty"`
	Traveler      Traveler `json:"traveler"`
	PickupOptions []string `json:"pickupOptions,omitempty"`
}

// listingEnvelope is the wrapped response shape. The endpoint's payload is
// not contractually fixed: some deployments return a bare array, others
// wrap it under "products" or "results".
type listingEnvelope struct {
	Products []Product `json:"products"`
	Results  []Product `json:"results"`
}

// DecodeProducts decodes a product listing response, accepting both the
// bare-array and the wrapped object shapes.
func DecodeProducts(body []byte) ([]Product, error) {
	var bare []Product
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var env listingEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode product listing: %w", err)
	}
	if env.Products != nil {
		return env.Products, nil
	}
	if env.Results != nil {
		return env.Results, nil
	}
	return []Product{}, nil
}
