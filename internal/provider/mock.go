package provider

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"points-redemption-engine/internal/engine"
)

// Mock serves the reference offer fixtures. It is deterministic: the full
// fixture sets come back in a fixed order on every call, with no artificial
// latency, so evaluations against it are reproducible.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "sample_data" }

var mockFlights = []engine.FlightOffer{
	{Price: decimal.NewFromFloat(189.0), Currency: "USD", Airline: "DL", Duration: "PT6H10M", Cabin: "ECONOMY"},
	{Price: decimal.NewFromFloat(249.0), Currency: "USD", Airline: "AA", Duration: "PT6H05M", Cabin: "ECONOMY"},
	{Price: decimal.NewFromFloat(312.0), Currency: "USD", Airline: "UA", Duration: "PT6H15M", Cabin: "ECONOMY"},
	{Price: decimal.NewFromFloat(275.0), Currency: "USD", Airline: "B6", Duration: "PT5H55M", Cabin: "ECONOMY"},
	{Price: decimal.NewFromFloat(329.0), Currency: "USD", Airline: "AS", Duration: "PT6H20M", Cabin: "ECONOMY"},
	{Price: decimal.NewFromFloat(512.0), Currency: "USD", Airline: "DL", Duration: "PT6H10M", Cabin: "BUSINESS"},
	{Price: decimal.NewFromFloat(689.0), Currency: "USD", Airline: "AA", Duration: "PT6H05M", Cabin: "BUSINESS"},
	{Price: decimal.NewFromFloat(799.0), Currency: "USD", Airline: "UA", Duration: "PT6H00M", Cabin: "FIRST"},
	{Price: decimal.NewFromFloat(945.0), Currency: "USD", Airline: "B6", Duration: "PT5H55M", Cabin: "FIRST"},
	{Price: decimal.NewFromFloat(1125.0), Currency: "USD", Airline: "AS", Duration: "PT6H20M", Cabin: "FIRST"},
}

var mockHotels = []engine.HotelOffer{
	{Name: "Holiday Inn Express", Price: decimal.NewFromFloat(89.0), Currency: "USD", Rating: 3.2, Category: "economy", Chain: "IHG"},
	{Name: "Comfort Inn & Suites", Price: decimal.NewFromFloat(112.0), Currency: "USD", Rating: 3.5, Category: "economy", Chain: "CHOICE"},
	{Name: "Hampton Inn", Price: decimal.NewFromFloat(135.0), Currency: "USD", Rating: 3.8, Category: "mid_scale", Chain: "HILTON"},
	{Name: "Courtyard by Marriott", Price: decimal.NewFromFloat(189.0), Currency: "USD", Rating: 4.1, Category: "mid_scale", Chain: "MARRIOTT"},
	{Name: "Hilton Garden Inn", Price: decimal.NewFromFloat(225.0), Currency: "USD", Rating: 4.3, Category: "upscale", Chain: "HILTON"},
	{Name: "Embassy Suites", Price: decimal.NewFromFloat(289.0), Currency: "USD", Rating: 4.4, Category: "upscale", Chain: "HILTON"},
	{Name: "Renaissance Hotel", Price: decimal.NewFromFloat(345.0), Currency: "USD", Rating: 4.6, Category: "luxury", Chain: "MARRIOTT"},
	{Name: "W Hotel", Price: decimal.NewFromFloat(425.0), Currency: "USD", Rating: 4.7, Category: "luxury", Chain: "MARRIOTT"},
	{Name: "The Ritz-Carlton", Price: decimal.NewFromFloat(589.0), Currency: "USD", Rating: 4.9, Category: "luxury", Chain: "MARRIOTT"},
	{Name: "Four Seasons Hotel", Price: decimal.NewFromFloat(725.0), Currency: "USD", Rating: 4.9, Category: "luxury", Chain: "FOUR_SEASONS"},
}

var mockCityCodes = map[string]string{
	"new york":    "NYC",
	"boston":      "BOS",
	"chicago":     "CHI",
	"los angeles": "LAX",
	"madrid":      "MAD",
	"barcelona":   "BCN",
	"paris":       "PAR",
	"london":      "LON",
	"rome":        "ROM",
	"amsterdam":   "AMS",
}

func (m *Mock) FetchFlights(_ context.Context, _, _, _ string) ([]engine.FlightOffer, error) {
	out := make([]engine.FlightOffer, len(mockFlights))
	copy(out, mockFlights)
	return out, nil
}

func (m *Mock) FetchHotels(_ context.Context, _, _, _ string) ([]engine.HotelOffer, error) {
	out := make([]engine.HotelOffer, len(mockHotels))
	copy(out, mockHotels)
	return out, nil
}

func (m *Mock) ResolveCity(_ context.Context, name string) (string, error) {
	return mockCityCodes[strings.ToLower(strings.TrimSpace(name))], nil
}
