package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cabin is a normalized award-chart cabin class.
type Cabin string

const (
	CabinEconomy  Cabin = "economy"
	CabinBusiness Cabin = "business"
	CabinFirst    Cabin = "first"
)

// Hotel tiers, ordered cheapest to priciest. Tier classification is a
// provider-side concern; the engine only consumes already-classified offers.
const (
	TierEconomy  = "economy"
	TierMidScale = "mid_scale"
	TierUpscale  = "upscale"
	TierLuxury   = "luxury"
)

// NormalizeCabin folds a provider cabin string onto the three award-chart
// cabins. Premium economy books into the economy bucket, and so does any
// unrecognized or empty input. Idempotent.
func NormalizeCabin(cabin string) Cabin {
	switch strings.ToLower(cabin) {
	case "business":
		return CabinBusiness
	case "first":
		return CabinFirst
	default: // economy, premium_economy, premium, empty, anything else
		return CabinEconomy
	}
}

// RateConfig is the read-only rate configuration an evaluation runs against.
// Built once from the defaults (optionally overlaid with operator rows from
// storage) and swapped atomically as a whole; never mutated in place.
type RateConfig struct {
	// AwardChart holds points required by route category and cabin.
	AwardChart map[RouteCategory]map[Cabin]int64
	// HotelRates holds cents of value per point by property tier,
	// strictly increasing from economy to luxury.
	HotelRates map[string]float64
	// GiftCardRates holds points needed per dollar of card value by brand.
	// This is a cost rate: lower is better for the member.
	GiftCardRates map[string]float64
}

// AwardPoints returns the award-chart entry for a route/cabin pair. The
// classifier and NormalizeCabin keep both inputs inside the chart's closed
// enumerations, so a miss here is a contract breach between the classifier
// and the chart and surfaces as an error rather than a silent zero.
func (rc RateConfig) AwardPoints(route RouteCategory, cabin Cabin) (int64, error) {
	byCabin, ok := rc.AwardChart[route]
	if !ok {
		return 0, fmt.Errorf("award chart: unknown route category %q", route)
	}
	points, ok := byCabin[cabin]
	if !ok {
		return 0, fmt.Errorf("award chart: unknown cabin %q on route %q", cabin, route)
	}
	return points, nil
}

// HotelPoints converts a cash rate into a points cost at the tier's
// cents-per-point rate. The division truncates, rounding the points cost
// down in the member's favor. Unknown tiers report !ok so the analyzer can
// drop the offer instead of pricing it wrong.
func (rc RateConfig) HotelPoints(price decimal.Decimal, tier string) (int64, bool) {
	rate, ok := rc.HotelRates[tier]
	if !ok || rate <= 0 {
		return 0, false
	}
	return price.Div(decimal.NewFromFloat(rate / 100)).IntPart(), true
}

// DefaultRates returns the built-in rate tables. Award points and hotel
// cents-per-point mirror the published program charts; the gift-card table
// is the full partner catalog (points per dollar, mostly 4.0 with a handful
// of discounted outliers).
func DefaultRates() RateConfig {
	return RateConfig{
		AwardChart: map[RouteCategory]map[Cabin]int64{
			RouteDomestic:      {CabinEconomy: 12500, CabinBusiness: 25000, CabinFirst: 50000},
			RouteInternational: {CabinEconomy: 30000, CabinBusiness: 60000, CabinFirst: 100000},
			RouteShortHaul:     {CabinEconomy: 7500, CabinBusiness: 15000, CabinFirst: 25000},
		},
		HotelRates: map[string]float64{
			TierEconomy:  1.45,
			TierMidScale: 1.65,
			TierUpscale:  1.95,
			TierLuxury:   2.25,
		},
		GiftCardRates: defaultGiftCardRates(),
	}
}

func defaultGiftCardRates() map[string]float64 {
	return map[string]float64{
		"giftcards.com":                        4,
		"visa gift card":                       4,
		"mastercard gift card":                 4,
		"airbnb gift card":                     4,
		"doordash gift card":                   4,
		"uber gift card":                       4,
		"uber eats gift card":                  4,
		"starbucks gift card":                  4,
		"target gift card":                     1.3,
		"cvs gift card":                        4,
		"giant eagle gift card":                4,
		"fanatics gift card":                   4,
		"melting pot gift card":                4,
		"thirdlove gift card":                  4,
		"tops friendly markets gift card":      4,
		"jtv gift card":                        4,
		"zappos gift card":                     4,
		"claire's gift card":                   4,
		"famous dave's gift card":              4,
		"on the border gift card":              4,
		"circle k gift card":                   4,
		"fazoli's gift card":                   4,
		"boxlunch gift card":                   4,
		"bonefish grill gift card":             4,
		"mcdonald's gift card":                 4,
		"turo gift card":                       4,
		"golfnow gift card":                    4,
		"chewy gift card":                      4,
		"siriusxm gift card":                   4,
		"l.l. bean gift card":                  4,
		"carnival cruises gift card":           0.6,
		"best buy gift card":                   0.6,
		"alamo drafthouse cinemas gift card":   4,
		"quince gift card":                     4,
		"mcalister's deli gift card":           4,
		"emagine theaters gift card":           4,
		"friendly's gift card":                 4,
		"cheddar's scratch kitchen gift card":  4,
		"dazn gift card":                       4,
		"dave & buster's gift card":            4,
		"ruth's chris steak house gift card":   4,
		"fogo de chao gift card":               4,
		"morton's steakhouse gift card":        4,
		"pacsun gift card":                     4,
		"the container store gift card":        4,
		"uno pizzeria & grill gift card":       4,
		"bj's restaurants gift card":           4,
		"logan's roadhouse gift card":          4,
		"bob evans gift card":                  4,
		"lorna jane gift card":                 4,
		"lane bryant gift card":                4,
		"guess gift card":                      4,
		"shutterfly gift card":                 4,
		"bubba gump gift card":                 4,
		"ace hardware gift card":               4,
		"quiznos gift card":                    4,
		"thredup gift card":                    4,
		"hopper gift card":                     4,
		"tommy bahama gift card":               4,
		"carrabba's italian grill gift card":   4,
		"sweetfrog gift card":                  4,
		"qdoba gift card":                      4,
		"dick's sporting goods gift card":      1.3,
		"american airlines gift card":          1.3,
		"dunkin' gift card":                    1.3,
		"zara gift card":                       1.3,
		"apple gift card":                      1.3,
		"nike gift card":                       0.6,
		"chuck e. cheese gift card":            4,
		"pandora gift card":                    4,
		"bloomingdale's gift card":             4,
		"belk gift card":                       4,
		"athleta gift card":                    4,
		"barnes & noble gift card":             4,
		"virgin experience gifts gift card":    4,
		"jcpenney gift card":                   4,
		"spafinder gift card":                  4,
		"build-a-bear gift card":               4,
		"california pizza kitchen gift card":   4,
		"ruby tuesday gift card":               4,
		"smoothie king gift card":              4,
		"old navy gift card":                   4,
		"aerie gift card":                      4,
		"advance auto parts gift card":         4,
		"tillys gift card":                     4,
		"guitar center gift card":              4,
		"vudu gift card":                       4,
		"topgolf gift card":                    4,
		"the coffee bean & tea leaf gift card": 4,
		"white house black market gift card":   4,
		"wawa gift card":                       4,
		"dollar shave club gift card":          4,
		"untuckit gift card":                   4,
		"torrid gift card":                     4,
		"pep boys gift card":                   4,
		"famous footwear gift card":            4,
		"jiffy lube gift card":                 4,
		"cold stone creamery gift card":        4,
		"sling tv gift card":                   4,
		"buffalo wild wings gift card":         4,
		"auntie anne's gift card":              4,
		"cinnabon gift card":                   4,
		"kfc gift card":                        4,
		"bass pro shops / cabela's gift card":  4,
		"gap gift card":                        4,
		"hotels.com gift card":                 4,
		"disney gift card":                     4,
		"american girl gift card":              4,
		"carter's / oshkosh b'gosh gift card":  4,
		"eddie bauer gift card":                4,
		"chico's gift card":                    4,
		"poshmark gift card":                   4,
		"oura ring gift card":                  4,
		"american eagle gift card":             4,
		"aeropostale gift card":                4,
		"hollister gift card":                  4,
		"abercrombie & fitch gift card":        4,
		"twitch gift card":                     4,
		"crutchfield gift card":                4,
		"lulus gift card":                      4,
		"lands' end gift card":                 4,
		"michaels gift card":                   4,
		"kirkland's gift card":                 4,
		"h&m gift card":                        4,
		"hulu gift card":                       4,
		"meijer gift card":                     4,
		"crate & barrel gift card":             4,
		"firebirds wood fired grill gift card": 4,
		"red robin gift card":                  4,
		"ihop gift card":                       4,
		"krispy kreme gift card":               4,
		"outback steakhouse gift card":         4,
		"olive garden gift card":               4,
		"speedway gift card":                   4,
		"shell gift card":                      4,
		"sonic drive-in gift card":             4,
		"texas roadhouse gift card":            4,
		"subway gift card":                     4,
		"red lobster gift card":                4,
		"papa johns gift card":                 4,
		"panda express gift card":              4,
		"meta quest gift card":                 4,
		"macy's gift card":                     4,
		"jersey mike's gift card":              4,
		"taco bell gift card":                  4,
		"five guys gift card":                  4,
		"chili's gift card":                    4,
		"burger king gift card":                4,
		"rei gift card":                        4,
		"marshalls gift card":                  4,
		"homegoods gift card":                  4,
		"lego gift card":                       4,
		"gamestop gift card":                   4,
		"academy sports + outdoors gift card":  4,
		"roblox gift card":                     4,
		"nordstrom gift card":                  4,
		"chipotle gift card":                   4,
		"the home depot gift card":             4,
		"wayfair gift card":                    4,
		"victoria's secret gift card":          4,
		"tire discounters gift card":           4,
		"dsw gift card":                        4,
		"stop & shop gift card":                4,
		"nintendo eshop gift card":             4,
		"the cheesecake factory gift card":     4,
		"nordstrom rack gift card":             4,
		"petsmart gift card":                   4,
		"tj maxx gift card":                    4,
		"lululemon gift card":                  4,
		"spotify gift card":                    4,
		"lyft gift card":                       4,
		"domino's gift card":                   4,
		"southwest airlines gift card":         4,
		"sony playstation gift card":           4,
		"microsoft xbox gift card":             4,
		"autozone gift card":                   4,
		"saks off 5th gift card":               4,
		"adidas gift card":                     4,
		"ulta beauty gift card":                4,
		"bath & body works gift card":          4,
		"amtrak gift card":                     4,
		"petco gift card":                      4,
		"saks fifth avenue gift card":          4,
		"total wine & more gift card":          4,
		"instacart gift card":                  4,
		"google play gift card":                4,
		"regal cinemas gift card":              4,
		"bp amoco gift card":                   4,
		"grubhub gift card":                    4,
		"panera bread gift card":               4,
		"kohl's gift card":                     4,
		"cinemark gift card":                   4,
		"delta air lines gift card":            4,
		"netflix gift card":                    4,
		"ikea gift card":                       4,
		"fandango gift card":                   4,
		"lowe's gift card":                     4,
		"sephora gift card":                    4,
		"applebee's gift card":                 4,
		"amc theatres gift card":               4,
		"gift card outlets":                    0.9,
	}
}
