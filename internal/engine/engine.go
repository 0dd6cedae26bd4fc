package engine

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"points-redemption-engine/internal/cache"
	"points-redemption-engine/internal/storage"
)

// Per-category lists are cut to this many entries; best-overall and the
// totals are computed over the untruncated pool.
const topPerCategory = 3

// OfferSource is the external offer-provider collaborator. Implementations
// may be slow or flaky; any failure degrades to an empty category, never a
// fatal evaluation error.
type OfferSource interface {
	FetchFlights(ctx context.Context, origin, destination, date string) ([]FlightOffer, error)
	FetchHotels(ctx context.Context, cityCode, checkIn, checkOut string) ([]HotelOffer, error)
	// ResolveCity maps a city name to a location code. An empty code with a
	// nil error means the city is simply unknown.
	ResolveCity(ctx context.Context, name string) (string, error)
}

// RateStore loads operator-tuned rate rows. *storage.Store implements it.
type RateStore interface {
	LoadRates(ctx context.Context) (storage.RateRows, error)
}

// Optimizer is the valuation and ranking engine. Evaluations are pure
// functions of the current rate snapshot and the provider's offers, so the
// optimizer is safe for concurrent use; the snapshot swaps atomically.
type Optimizer struct {
	snap   cache.Snapshot[RateConfig]
	src    OfferSource
	policy GiftCardPolicy
}

func NewOptimizer(src OfferSource, policy GiftCardPolicy) *Optimizer {
	o := &Optimizer{src: src, policy: policy}
	o.snap.Store(DefaultRates())
	return o
}

// Rates returns the current rate snapshot.
func (o *Optimizer) Rates() RateConfig {
	rc, _ := o.snap.Load()
	return rc
}

// BuildSnapshot overlays operator rate rows onto the built-in defaults and
// swaps the result in. A nil store keeps the defaults; rows outside the
// award chart's closed enumerations are skipped, not applied.
func (o *Optimizer) BuildSnapshot(ctx context.Context, st RateStore) error {
	rc := DefaultRates()
	if st == nil {
		o.snap.Store(rc)
		return nil
	}

	rows, err := st.LoadRates(ctx)
	if err != nil {
		return fmt.Errorf("load rate rows: %w", err)
	}

	for _, r := range rows.Award {
		byCabin, ok := rc.AwardChart[RouteCategory(r.Route)]
		if !ok {
			log.Warn().Str("route", r.Route).Msg("skipping award row with unknown route category")
			continue
		}
		cabin := Cabin(r.Cabin)
		if _, ok := byCabin[cabin]; !ok {
			log.Warn().Str("cabin", r.Cabin).Msg("skipping award row with unknown cabin")
			continue
		}
		byCabin[cabin] = r.Points
	}
	for _, r := range rows.Hotel {
		if r.CentsPerPoint > 0 {
			rc.HotelRates[r.Tier] = r.CentsPerPoint
		}
	}
	for _, r := range rows.GiftCards {
		if r.PointsPerDollar > 0 {
			rc.GiftCardRates[r.Brand] = r.PointsPerDollar
		}
	}

	o.snap.Store(rc)
	log.Info().
		Int("award_rows", len(rows.Award)).
		Int("hotel_rows", len(rows.Hotel)).
		Int("gift_card_rows", len(rows.GiftCards)).
		Msg("rate snapshot rebuilt")
	return nil
}

// Evaluate runs the enabled analyzers (gift cards always run), ranks every
// affordable option by cents-per-point and produces per-category top lists
// plus the single best overall recommendation. Provider failures and
// unresolvable cities degrade to empty categories.
func (o *Optimizer) Evaluate(ctx context.Context, req EvaluateRequest) (RankedResult, error) {
	rates := o.Rates()

	var flightOpts, hotelOpts []RedemptionOption

	if req.Flight != nil {
		offers, err := o.src.FetchFlights(ctx, req.Flight.Origin, req.Flight.Destination, req.Flight.DepartureDate)
		if err != nil {
			log.Warn().Err(err).Msg("flight fetch failed; no flight options this run")
		} else {
			flightOpts, err = AnalyzeFlights(rates, *req.Flight, offers, req.Balance)
			if err != nil {
				return RankedResult{}, err
			}
		}
	}

	if req.Hotel != nil {
		hotelOpts = o.hotelOptions(ctx, rates, *req.Hotel, req.Balance)
	}

	giftOpts := AnalyzeGiftCards(rates, req.Balance, o.policy)

	// The pool keeps emission order (flights, hotels, gift cards) so the
	// stable sort breaks CPM ties the same way every run.
	pool := make([]RedemptionOption, 0, len(flightOpts)+len(hotelOpts)+len(giftOpts))
	pool = append(pool, flightOpts...)
	pool = append(pool, hotelOpts...)
	pool = append(pool, giftOpts...)

	sortByCPM(flightOpts)
	sortByCPM(hotelOpts)
	sortByCPM(giftOpts)
	sortByCPM(pool)

	var best *RedemptionOption
	if len(pool) > 0 {
		b := pool[0]
		best = &b
	}

	var cpmSum float64
	for _, opt := range pool {
		cpmSum += opt.CPM
	}
	avg := 0.0
	if len(pool) > 0 {
		avg = cpmSum / float64(len(pool))
	}

	return RankedResult{
		BestOverall: best,
		TopByCategory: map[OptionType][]RedemptionOption{
			OptionFlight:   truncate(flightOpts),
			OptionHotel:    truncate(hotelOpts),
			OptionGiftCard: truncate(giftOpts),
		},
		Summary: summarize(best, req.Balance),
		Totals: Totals{
			TotalOptions:    len(pool),
			FlightOptions:   len(flightOpts),
			HotelOptions:    len(hotelOpts),
			GiftCardOptions: len(giftOpts),
			AverageCPM:      avg,
		},
	}, nil
}

// hotelOptions resolves the city and fetches offers; any miss or provider
// error yields zero hotel options rather than an evaluation failure.
func (o *Optimizer) hotelOptions(ctx context.Context, rates RateConfig, q HotelQuery, balance int64) []RedemptionOption {
	code, err := o.src.ResolveCity(ctx, q.City)
	if err != nil {
		log.Warn().Err(err).Str("city", q.City).Msg("city resolution failed; no hotel options this run")
		return nil
	}
	if code == "" {
		log.Debug().Str("city", q.City).Msg("city not found; no hotel options this run")
		return nil
	}
	offers, err := o.src.FetchHotels(ctx, code, q.CheckIn, q.CheckOut)
	if err != nil {
		log.Warn().Err(err).Msg("hotel fetch failed; no hotel options this run")
		return nil
	}
	return AnalyzeHotels(rates, q, offers, balance)
}

func sortByCPM(opts []RedemptionOption) {
	slices.SortStableFunc(opts, func(a, b RedemptionOption) int {
		return cmp.Compare(b.CPM, a.CPM)
	})
}

func truncate(opts []RedemptionOption) []RedemptionOption {
	if len(opts) > topPerCategory {
		return opts[:topPerCategory]
	}
	return opts
}

func summarize(best *RedemptionOption, balance int64) string {
	if best == nil {
		return fmt.Sprintf("No redemption options available for %s points.", groupDigits(balance))
	}
	switch best.Type {
	case OptionFlight:
		return fmt.Sprintf("BEST OVERALL VALUE: Redeem %s points for a %s flight worth $%s. This gives you %.2f cents per point in value.",
			groupDigits(best.PointsRequired), best.Description, best.CashValue.StringFixed(2), best.CPM)
	case OptionHotel:
		return fmt.Sprintf("BEST OVERALL VALUE: Redeem %s points for a %s hotel stay worth $%s. This gives you %.2f cents per point in value.",
			groupDigits(best.PointsRequired), best.Description, best.CashValue.StringFixed(2), best.CPM)
	default:
		return fmt.Sprintf("BEST OVERALL VALUE: Redeem your %s points for a %s worth $%s. This gives you %.2f cents per point in value.",
			groupDigits(balance), best.Description, best.CashValue.StringFixed(2), best.CPM)
	}
}

// groupDigits renders 1234567 as "1,234,567".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
