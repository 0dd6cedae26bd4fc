package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"points-redemption-engine/internal/engine"
	"points-redemption-engine/internal/observability"
)

type RedemptionHandler struct {
	Opt *engine.Optimizer
	// Source names the active offer provider ("amadeus" or "sample_data")
	// so callers can tell live pricing from fixtures.
	Source string
}

func NewRedemptionHandler(opt *engine.Optimizer, source string) *RedemptionHandler {
	return &RedemptionHandler{Opt: opt, Source: source}
}

type errorResponse struct {
	Error string `json:"error"`
}

type evaluateResponse struct {
	UserInput  engine.EvaluateRequest `json:"user_input"`
	DataSource string                 `json:"data_source"`
	engine.RankedResult
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Evaluate handles GET /v1/redemptions. The balance is required; the flight
// trio (origin, destination, date) and hotel trio (city, check_in, check_out)
// are each optional but all-or-none.
func (h *RedemptionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	balanceStr := q.Get("balance")
	if balanceStr == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "balance is required"})
		return
	}
	balance, err := strconv.ParseInt(balanceStr, 10, 64)
	if err != nil || balance < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "balance must be a non-negative integer"})
		return
	}

	req := engine.EvaluateRequest{Balance: balance}

	origin := strings.ToUpper(strings.TrimSpace(q.Get("origin")))
	destination := strings.ToUpper(strings.TrimSpace(q.Get("destination")))
	date := q.Get("date")
	switch {
	case origin != "" && destination != "" && date != "":
		req.Flight = &engine.FlightQuery{Origin: origin, Destination: destination, DepartureDate: date}
	case origin != "" || destination != "" || date != "":
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "flight search needs origin, destination and date together"})
		return
	}

	city := strings.TrimSpace(q.Get("city"))
	checkIn := q.Get("check_in")
	checkOut := q.Get("check_out")
	switch {
	case city != "" && checkIn != "" && checkOut != "":
		req.Hotel = &engine.HotelQuery{City: city, CheckIn: checkIn, CheckOut: checkOut}
	case city != "" || checkIn != "" || checkOut != "":
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "hotel search needs city, check_in and check_out together"})
		return
	}

	result, err := h.Opt.Evaluate(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("evaluate failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "evaluation failed"})
		return
	}

	observability.OptionsAnalyzed.WithLabelValues("flight").Add(float64(result.Totals.FlightOptions))
	observability.OptionsAnalyzed.WithLabelValues("hotel").Add(float64(result.Totals.HotelOptions))
	observability.OptionsAnalyzed.WithLabelValues("gift_card").Add(float64(result.Totals.GiftCardOptions))
	if result.BestOverall != nil {
		observability.BestCPM.Observe(result.BestOverall.CPM)
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		UserInput:    req,
		DataSource:   h.Source,
		RankedResult: result,
	})
}
