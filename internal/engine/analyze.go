package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// GiftCardPolicy names how the gift-card analyzer treats the balance.
// Both assume the full balance is converted; they differ only in whether
// small conversions are worth surfacing.
type GiftCardPolicy string

const (
	// PolicyFullBalance includes every brand regardless of resulting value.
	PolicyFullBalance GiftCardPolicy = "full_balance"
	// PolicyFloor25 drops conversions worth less than $25.
	PolicyFloor25 GiftCardPolicy = "floor_25"
)

// ParseGiftCardPolicy maps a config string onto a policy, defaulting to the
// $25 floor.
func ParseGiftCardPolicy(s string) GiftCardPolicy {
	if GiftCardPolicy(strings.ToLower(s)) == PolicyFullBalance {
		return PolicyFullBalance
	}
	return PolicyFloor25
}

var minGiftCardValue = decimal.NewFromInt(25)

// AnalyzeFlights values each flight offer against the award chart and keeps
// the ones the balance can afford. The only error path is an award-chart
// miss, which indicates a classifier/chart contract breach.
func AnalyzeFlights(rates RateConfig, q FlightQuery, offers []FlightOffer, balance int64) ([]RedemptionOption, error) {
	route := ClassifyRoute(q.Origin, q.Destination)

	var options []RedemptionOption
	for _, f := range offers {
		points, err := rates.AwardPoints(route, NormalizeCabin(f.Cabin))
		if err != nil {
			return nil, err
		}
		if points > balance {
			continue
		}
		options = append(options, RedemptionOption{
			Type:           OptionFlight,
			Description:    fmt.Sprintf("%s %s class", f.Airline, f.Cabin),
			CashValue:      f.Price,
			PointsRequired: points,
			CPM:            CentsPerPoint(f.Price, points),
			Details: map[string]any{
				"origin":      q.Origin,
				"destination": q.Destination,
				"date":        q.DepartureDate,
				"duration":    f.Duration,
				"airline":     f.Airline,
				"cabin":       f.Cabin,
			},
		})
	}
	return options, nil
}

// AnalyzeHotels values each hotel offer at its tier's cents-per-point rate.
// The CPM of a hotel option IS that rate (price and points cost were both
// derived from it), so it is not recomputed from the truncated points cost.
// Offers carrying a tier outside the rate table are dropped, not fatal:
// tiers are provider data, not part of the classifier contract.
func AnalyzeHotels(rates RateConfig, q HotelQuery, offers []HotelOffer, balance int64) []RedemptionOption {
	var options []RedemptionOption
	for _, h := range offers {
		points, ok := rates.HotelPoints(h.Price, h.Category)
		if !ok || points > balance {
			continue
		}
		options = append(options, RedemptionOption{
			Type:           OptionHotel,
			Description:    fmt.Sprintf("%s (%s)", h.Name, titleWords(h.Category)),
			CashValue:      h.Price,
			PointsRequired: points,
			CPM:            rates.HotelRates[h.Category],
			Details: map[string]any{
				"hotel_name": h.Name,
				"category":   h.Category,
				"rating":     h.Rating,
				"chain":      h.Chain,
				"check_in":   q.CheckIn,
				"check_out":  q.CheckOut,
				"city":       q.City,
			},
		})
	}
	return options
}

// AnalyzeGiftCards assumes the entire balance is converted with each brand
// and applies the configured inclusion policy. Brands are walked in sorted
// order so emission order (and therefore CPM tie order) is deterministic.
func AnalyzeGiftCards(rates RateConfig, balance int64, policy GiftCardPolicy) []RedemptionOption {
	brands := make([]string, 0, len(rates.GiftCardRates))
	for brand := range rates.GiftCardRates {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	bal := decimal.NewFromInt(balance)
	var options []RedemptionOption
	for _, brand := range brands {
		pointsPerDollar := rates.GiftCardRates[brand]
		if pointsPerDollar <= 0 {
			continue
		}
		cash := bal.Div(decimal.NewFromFloat(pointsPerDollar))
		if policy == PolicyFloor25 && cash.LessThan(minGiftCardValue) {
			continue
		}
		options = append(options, RedemptionOption{
			Type:           OptionGiftCard,
			Description:    titleWords(brand),
			CashValue:      cash,
			PointsRequired: balance,
			CPM:            CentsPerPoint(cash, balance),
			Details: map[string]any{
				"brand":             titleWords(brand),
				"points_per_dollar": pointsPerDollar,
				"max_amount":        "$" + cash.StringFixed(2),
			},
		})
	}
	return options
}

// titleWords title-cases a lowercase key for display, treating underscores
// as spaces ("mid_scale" -> "Mid Scale").
func titleWords(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
