package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"points-redemption-engine/internal/storage"
)

type stubSource struct {
	flights    []FlightOffer
	flightsErr error
	hotels     []HotelOffer
	hotelsErr  error
	cityCode   string
	cityErr    error
}

func (s *stubSource) FetchFlights(context.Context, string, string, string) ([]FlightOffer, error) {
	return s.flights, s.flightsErr
}

func (s *stubSource) FetchHotels(context.Context, string, string, string) ([]HotelOffer, error) {
	return s.hotels, s.hotelsErr
}

func (s *stubSource) ResolveCity(context.Context, string) (string, error) {
	return s.cityCode, s.cityErr
}

var (
	testFlightQuery = &FlightQuery{Origin: "JFK", Destination: "LAX", DepartureDate: "2026-09-01"}
	testHotelQuery  = &HotelQuery{City: "Madrid", CheckIn: "2026-09-01", CheckOut: "2026-09-03"}
)

func referenceSource() *stubSource {
	return &stubSource{
		flights: []FlightOffer{
			{Price: usd(189), Airline: "DL", Duration: "PT6H10M", Cabin: "ECONOMY"},
			{Price: usd(249), Airline: "AA", Duration: "PT6H05M", Cabin: "ECONOMY"},
			{Price: usd(312), Airline: "UA", Duration: "PT6H15M", Cabin: "ECONOMY"},
			{Price: usd(512), Airline: "DL", Duration: "PT6H10M", Cabin: "BUSINESS"},
			{Price: usd(799), Airline: "UA", Duration: "PT6H00M", Cabin: "FIRST"},
		},
		hotels: []HotelOffer{
			{Name: "Hampton Inn", Price: usd(135), Rating: 3.8, Category: "mid_scale", Chain: "HILTON"},
			{Name: "W Hotel", Price: usd(425), Rating: 4.7, Category: "luxury", Chain: "MARRIOTT"},
			{Name: "Holiday Inn Express", Price: usd(89), Rating: 3.2, Category: "economy", Chain: "IHG"},
			{Name: "Embassy Suites", Price: usd(289), Rating: 4.4, Category: "upscale", Chain: "HILTON"},
		},
		cityCode: "MAD",
	}
}

func TestEvaluate_RankingInvariants(t *testing.T) {
	opt := NewOptimizer(referenceSource(), PolicyFloor25)

	res, err := opt.Evaluate(context.Background(), EvaluateRequest{
		Balance: 100000,
		Flight:  testFlightQuery,
		Hotel:   testHotelQuery,
	})
	require.NoError(t, err)

	// Truncation: at most three options per category.
	for cat, opts := range res.TopByCategory {
		assert.LessOrEqual(t, len(opts), 3, "category %s", cat)
		// Monotonic within a category.
		for i := 1; i < len(opts); i++ {
			assert.GreaterOrEqual(t, opts[i-1].CPM, opts[i].CPM, "category %s index %d", cat, i)
		}
	}

	// Counts use the untruncated pool.
	assert.Equal(t, 5, res.Totals.FlightOptions)
	assert.Equal(t, 4, res.Totals.HotelOptions)
	assert.Greater(t, res.Totals.GiftCardOptions, 3)
	assert.Equal(t,
		res.Totals.FlightOptions+res.Totals.HotelOptions+res.Totals.GiftCardOptions,
		res.Totals.TotalOptions)

	// best_overall dominates every category list.
	require.NotNil(t, res.BestOverall)
	for _, opts := range res.TopByCategory {
		for _, o := range opts {
			assert.GreaterOrEqual(t, res.BestOverall.CPM, o.CPM)
		}
	}
	assert.Greater(t, res.Totals.AverageCPM, 0.0)
	assert.Contains(t, res.Summary, "BEST OVERALL VALUE")
}

func TestEvaluate_TopFlightIsPriciestEconomy(t *testing.T) {
	src := referenceSource()
	opt := NewOptimizer(src, PolicyFloor25)

	res, err := opt.Evaluate(context.Background(), EvaluateRequest{Balance: 100000, Flight: testFlightQuery})
	require.NoError(t, err)

	flights := res.TopByCategory[OptionFlight]
	require.Len(t, flights, 3)
	// Economy fares all cost 12,500 points, so the priciest cash fare wins.
	assert.Equal(t, "UA ECONOMY class", flights[0].Description)
	assert.InDelta(t, 2.496, flights[0].CPM, 1e-9)
	// 512 business at 25,000 points edges out the 249 economy fare.
	assert.Equal(t, "DL BUSINESS class", flights[1].Description)
	assert.InDelta(t, 2.048, flights[1].CPM, 1e-9)
	assert.InDelta(t, 1.992, flights[2].CPM, 1e-9)
}

func TestEvaluate_NoQueriesStillRanksGiftCards(t *testing.T) {
	opt := NewOptimizer(&stubSource{}, PolicyFloor25)

	res, err := opt.Evaluate(context.Background(), EvaluateRequest{Balance: 100000})
	require.NoError(t, err)

	assert.Zero(t, res.Totals.FlightOptions)
	assert.Zero(t, res.Totals.HotelOptions)
	assert.NotZero(t, res.Totals.GiftCardOptions)
	require.NotNil(t, res.BestOverall)
	assert.Equal(t, OptionGiftCard, res.BestOverall.Type)
	// Best conversion in the default table costs 0.6 points per dollar.
	assert.InDelta(t, 100/0.6, res.BestOverall.CPM, 1e-6)
}

func TestEvaluate_ZeroBalance(t *testing.T) {
	// Under the floor policy nothing reaches $25, so the pool is empty.
	opt := NewOptimizer(&stubSource{}, PolicyFloor25)
	res, err := opt.Evaluate(context.Background(), EvaluateRequest{Balance: 0})
	require.NoError(t, err)
	assert.Nil(t, res.BestOverall)
	assert.Zero(t, res.Totals.TotalOptions)
	assert.Zero(t, res.Totals.AverageCPM)
	assert.Contains(t, res.Summary, "No redemption options")

	// The full-balance policy still surfaces every brand, all at zero value.
	opt = NewOptimizer(&stubSource{}, PolicyFullBalance)
	res, err = opt.Evaluate(context.Background(), EvaluateRequest{Balance: 0})
	require.NoError(t, err)
	require.NotNil(t, res.BestOverall)
	assert.Zero(t, res.BestOverall.CPM)
}

func TestEvaluate_ProviderFailuresDegrade(t *testing.T) {
	tests := []struct {
		name string
		src  *stubSource
	}{
		{"flight fetch error", &stubSource{flightsErr: errors.New("upstream 502"), cityCode: "MAD"}},
		{"hotel fetch error", &stubSource{hotelsErr: errors.New("upstream 502"), cityCode: "MAD"}},
		{"city resolution error", &stubSource{cityErr: errors.New("lookup down")}},
		{"city not found", &stubSource{cityCode: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := NewOptimizer(tt.src, PolicyFloor25)
			res, err := opt.Evaluate(context.Background(), EvaluateRequest{
				Balance: 100000,
				Flight:  testFlightQuery,
				Hotel:   testHotelQuery,
			})
			require.NoError(t, err)
			assert.Zero(t, res.Totals.FlightOptions)
			assert.Zero(t, res.Totals.HotelOptions)
			// Gift cards are unaffected.
			assert.NotZero(t, res.Totals.GiftCardOptions)
		})
	}
}

func TestEvaluate_AffordabilityAcrossCategories(t *testing.T) {
	opt := NewOptimizer(referenceSource(), PolicyFullBalance)

	res, err := opt.Evaluate(context.Background(), EvaluateRequest{
		Balance: 15000,
		Flight:  testFlightQuery,
		Hotel:   testHotelQuery,
	})
	require.NoError(t, err)

	for _, opts := range res.TopByCategory {
		for _, o := range opts {
			assert.LessOrEqual(t, o.PointsRequired, int64(15000), o.Description)
		}
	}
}

type fakeRateStore struct {
	rows storage.RateRows
	err  error
}

func (f *fakeRateStore) LoadRates(context.Context) (storage.RateRows, error) {
	return f.rows, f.err
}

func TestBuildSnapshot_OverlaysRows(t *testing.T) {
	opt := NewOptimizer(&stubSource{}, PolicyFloor25)

	err := opt.BuildSnapshot(context.Background(), &fakeRateStore{rows: storage.RateRows{
		Award: []storage.AwardRow{
			{Route: "domestic", Cabin: "economy", Points: 10000},
			{Route: "orbital", Cabin: "economy", Points: 1}, // unknown route: skipped
			{Route: "domestic", Cabin: "suite", Points: 1},  // unknown cabin: skipped
		},
		Hotel:     []storage.HotelRateRow{{Tier: "luxury", CentsPerPoint: 2.5}},
		GiftCards: []storage.GiftCardRow{{Brand: "acme gift card", PointsPerDollar: 2}},
	}})
	require.NoError(t, err)

	rc := opt.Rates()
	points, err := rc.AwardPoints(RouteDomestic, CabinEconomy)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), points)
	_, err = rc.AwardPoints(RouteCategory("orbital"), CabinEconomy)
	assert.Error(t, err)

	assert.Equal(t, 2.5, rc.HotelRates[TierLuxury])
	assert.Equal(t, 2.0, rc.GiftCardRates["acme gift card"])
	// Untouched defaults survive the overlay.
	assert.Equal(t, 1.45, rc.HotelRates[TierEconomy])
	assert.Equal(t, 4.0, rc.GiftCardRates["visa gift card"])
}

func TestBuildSnapshot_LoadErrorKeepsOldSnapshot(t *testing.T) {
	opt := NewOptimizer(&stubSource{}, PolicyFloor25)

	err := opt.BuildSnapshot(context.Background(), &fakeRateStore{err: errors.New("db down")})
	require.Error(t, err)

	// Defaults from construction still serve evaluations.
	points, err := opt.Rates().AwardPoints(RouteDomestic, CabinEconomy)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), points)
}

func TestBuildSnapshot_NilStoreUsesDefaults(t *testing.T) {
	opt := NewOptimizer(&stubSource{}, PolicyFloor25)
	require.NoError(t, opt.BuildSnapshot(context.Background(), nil))
	assert.Equal(t, 1.45, opt.Rates().HotelRates[TierEconomy])
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "12,500", groupDigits(12500))
	assert.Equal(t, "1,234,567", groupDigits(1234567))
}

func TestEvaluate_SummaryNamesBestOption(t *testing.T) {
	opt := NewOptimizer(referenceSource(), PolicyFloor25)
	res, err := opt.Evaluate(context.Background(), EvaluateRequest{Balance: 100000})
	require.NoError(t, err)
	require.NotNil(t, res.BestOverall)
	assert.Contains(t, res.Summary, res.BestOverall.Description)
}
