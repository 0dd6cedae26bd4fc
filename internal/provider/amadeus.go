package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"points-redemption-engine/internal/engine"
)

const (
	maxHotelsPerCity   = 10
	maxHotelOffers     = 20
	tokenExpirySlack   = 30 * time.Second
	defaultHTTPTimeout = 30 * time.Second
)

// Amadeus is the live offer provider. It speaks the Amadeus self-service
// API: OAuth2 client-credentials for auth, flight-offers search, hotel
// search by city and the locations endpoint for city resolution.
type Amadeus struct {
	base   string
	key    string
	secret string
	client *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewAmadeus(baseURL, apiKey, apiSecret string) *Amadeus {
	return &Amadeus{
		base:   strings.TrimRight(baseURL, "/"),
		key:    apiKey,
		secret: apiSecret,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (a *Amadeus) Name() string { return "amadeus" }

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// bearer returns a cached OAuth token, refreshing it shortly before expiry.
func (a *Amadeus) bearer(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && time.Now().Add(tokenExpirySlack).Before(a.tokenExp) {
		return a.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {a.key},
		"client_secret": {a.secret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.base+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("amadeus token request: status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	a.token = tok.AccessToken
	a.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return a.token, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (a *Amadeus) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := a.bearer(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.base+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("amadeus GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("amadeus GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amadeus GET %s: decode: %w", path, err)
	}
	return nil
}

type flightOffersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				CarrierCode string `json:"carrierCode"`
			} `json:"segments"`
		} `json:"itineraries"`
		TravelerPricings []struct {
			FareDetailsBySegment []struct {
				Cabin string `json:"cabin"`
			} `json:"fareDetailsBySegment"`
		} `json:"travelerPricings"`
	} `json:"data"`
}

func (a *Amadeus) FetchFlights(ctx context.Context, origin, destination, date string) ([]engine.FlightOffer, error) {
	q := url.Values{
		"originLocationCode":      {origin},
		"destinationLocationCode": {destination},
		"departureDate":           {date},
		"adults":                  {"1"},
		"max":                     {"10"},
	}
	var resp flightOffersResponse
	if err := a.get(ctx, "/v2/shopping/flight-offers", q, &resp); err != nil {
		return nil, err
	}

	var offers []engine.FlightOffer
	for _, d := range resp.Data {
		if len(d.Itineraries) == 0 || len(d.Itineraries[0].Segments) == 0 {
			continue
		}
		price, err := decimal.NewFromString(d.Price.Total)
		if err != nil {
			continue
		}
		cabin := "ECONOMY"
		if len(d.TravelerPricings) > 0 && len(d.TravelerPricings[0].FareDetailsBySegment) > 0 {
			if c := d.TravelerPricings[0].FareDetailsBySegment[0].Cabin; c != "" {
				cabin = c
			}
		}
		offers = append(offers, engine.FlightOffer{
			Price:    price,
			Currency: d.Price.Currency,
			Airline:  d.Itineraries[0].Segments[0].CarrierCode,
			Duration: d.Itineraries[0].Duration,
			Cabin:    cabin,
		})
	}
	return offers, nil
}

type hotelsByCityResponse struct {
	Data []struct {
		HotelID   string  `json:"hotelId"`
		Name      string  `json:"name"`
		Rating    float64 `json:"rating,string"`
		ChainCode string  `json:"chainCode"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []struct {
		Offers []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (a *Amadeus) FetchHotels(ctx context.Context, cityCode, checkIn, checkOut string) ([]engine.HotelOffer, error) {
	var hotels hotelsByCityResponse
	q := url.Values{"cityCode": {cityCode}}
	if err := a.get(ctx, "/v1/reference-data/locations/hotels/by-city", q, &hotels); err != nil {
		return nil, err
	}

	var offers []engine.HotelOffer
	for i, h := range hotels.Data {
		if i >= maxHotelsPerCity || len(offers) >= maxHotelOffers {
			break
		}
		if h.HotelID == "" {
			continue
		}

		var resp hotelOffersResponse
		oq := url.Values{
			"hotelIds":     {h.HotelID},
			"checkInDate":  {checkIn},
			"checkOutDate": {checkOut},
			"adults":       {"1"},
		}
		// A single hotel failing to price should not sink the whole city.
		if err := a.get(ctx, "/v3/shopping/hotel-offers", oq, &resp); err != nil {
			continue
		}

		chain := h.ChainCode
		if chain == "" {
			chain = "Independent"
		}
		for _, d := range resp.Data {
			for _, o := range d.Offers {
				price, err := decimal.NewFromString(o.Price.Total)
				if err != nil {
					continue
				}
				offers = append(offers, engine.HotelOffer{
					Name:     h.Name,
					Price:    price,
					Currency: o.Price.Currency,
					Rating:   h.Rating,
					Category: TierFromRating(h.Rating),
					Chain:    chain,
				})
				if len(offers) >= maxHotelOffers {
					return offers, nil
				}
			}
		}
	}
	return offers, nil
}

type locationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

func (a *Amadeus) ResolveCity(ctx context.Context, name string) (string, error) {
	q := url.Values{
		"keyword": {name},
		"subType": {"CITY"},
	}
	var resp locationsResponse
	if err := a.get(ctx, "/v1/reference-data/locations", q, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", nil
	}
	return resp.Data[0].IataCode, nil
}

// TierFromRating buckets a star rating into a property tier. This is the
// provider-side classification used when the upstream payload does not carry
// a category of its own; the engine never derives tiers itself.
func TierFromRating(rating float64) string {
	switch {
	case rating >= 4.5:
		return engine.TierLuxury
	case rating >= 4.0:
		return engine.TierUpscale
	case rating >= 3.0:
		return engine.TierMidScale
	default:
		return engine.TierEconomy
	}
}
