package engine

import "github.com/shopspring/decimal"

// OptionType is the reward category of a redemption option.
type OptionType string

const (
	OptionFlight   OptionType = "flight"
	OptionHotel    OptionType = "hotel"
	OptionGiftCard OptionType = "gift_card"
)

// FlightOffer is a raw flight fare as returned by the offer provider.
type FlightOffer struct {
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Airline  string          `json:"airline"`
	Duration string          `json:"duration"` // ISO-8601, e.g. "PT6H10M"
	Cabin    string          `json:"cabin"`
}

// HotelOffer is a raw hotel rate as returned by the offer provider.
// Category is provider-classified: economy | mid_scale | upscale | luxury.
type HotelOffer struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Rating   float64         `json:"rating"`
	Category string          `json:"category"`
	Chain    string          `json:"chain"`
}

// FlightQuery gates the flight analyzer; all three fields are required.
type FlightQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

// HotelQuery gates the hotel analyzer; all three fields are required.
type HotelQuery struct {
	City     string `json:"city"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// EvaluateRequest is one evaluation run: a point balance plus the optional
// queries that enable the flight and hotel analyzers. Gift cards always run.
type EvaluateRequest struct {
	Balance int64        `json:"points_balance"`
	Flight  *FlightQuery `json:"flight,omitempty"`
	Hotel   *HotelQuery  `json:"hotel,omitempty"`
}

// RedemptionOption is one concrete way to spend points, valued on the common
// cents-per-point scale. CPM == (CashValue/PointsRequired)*100 whenever
// PointsRequired > 0, and 0 otherwise.
type RedemptionOption struct {
	Type           OptionType      `json:"type"`
	Description    string          `json:"description"`
	CashValue      decimal.Decimal `json:"cash_value"`
	PointsRequired int64           `json:"points_required"`
	CPM            float64         `json:"cpm"`
	Details        map[string]any  `json:"details"`
}

// Totals summarizes the full, untruncated option pool.
type Totals struct {
	TotalOptions    int     `json:"total_options_analyzed"`
	FlightOptions   int     `json:"flight_options"`
	HotelOptions    int     `json:"hotel_options"`
	GiftCardOptions int     `json:"gift_card_options"`
	AverageCPM      float64 `json:"average_cpm"`
}

// RankedResult is the output of one evaluation: the single best option across
// every category, the top options per category (CPM descending, at most
// topPerCategory each), a one-line summary and pool totals.
type RankedResult struct {
	BestOverall   *RedemptionOption                 `json:"best_overall"`
	TopByCategory map[OptionType][]RedemptionOption `json:"top_by_category"`
	Summary       string                            `json:"summary"`
	Totals        Totals                            `json:"totals"`
}
