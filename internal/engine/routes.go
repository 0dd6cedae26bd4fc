package engine

// RouteCategory indexes the award chart.
type RouteCategory string

const (
	RouteDomestic      RouteCategory = "domestic"
	RouteInternational RouteCategory = "international"
	RouteShortHaul     RouteCategory = "short_haul"
)

// Reference membership sets for route classification. Codes are matched
// case-sensitively; anything outside both sets falls through to the
// international/short-haul branches.
var usAirports = map[string]struct{}{
	"JFK": {}, "LAX": {}, "ORD": {}, "DFW": {}, "ATL": {},
	"SFO": {}, "BOS": {}, "SEA": {}, "DCA": {}, "IAD": {},
}

var euAirports = map[string]struct{}{
	"LHR": {}, "CDG": {}, "FRA": {}, "MAD": {},
	"BCN": {}, "FCO": {}, "AMS": {}, "MUC": {},
}

// ClassifyRoute maps an origin/destination pair to a route category.
// This is a coarse heuristic over fixed reference lists, not a geodesic
// calculation: US east-coast shuttle pairs are short-haul, any other US-US
// pair is domestic, mixed pairs are international, and everything else
// (including EU-EU) counts as short-haul. Total and deterministic; there is
// no error path.
func ClassifyRoute(origin, destination string) RouteCategory {
	_, originUS := usAirports[origin]
	_, destUS := usAirports[destination]

	switch {
	case originUS && destUS:
		if (origin == "JFK" || origin == "BOS") && (destination == "DCA" || destination == "IAD") {
			return RouteShortHaul
		}
		return RouteDomestic
	case originUS != destUS:
		return RouteInternational
	default:
		return RouteShortHaul
	}
}
