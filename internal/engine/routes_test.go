package engine

import "testing"

func TestClassifyRoute(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		destination string
		want        RouteCategory
	}{
		{"east coast shuttle JFK-DCA", "JFK", "DCA", RouteShortHaul},
		{"east coast shuttle BOS-IAD", "BOS", "IAD", RouteShortHaul},
		{"shuttle pair reversed is plain domestic", "DCA", "JFK", RouteDomestic},
		{"transcon", "JFK", "LAX", RouteDomestic},
		{"US to EU", "JFK", "LHR", RouteInternational},
		{"EU to US", "LHR", "JFK", RouteInternational},
		{"intra-EU", "LHR", "CDG", RouteShortHaul},
		{"unknown to unknown", "XXX", "YYY", RouteShortHaul},
		{"unknown to US", "XXX", "SEA", RouteInternational},
		{"codes are case-sensitive", "jfk", "lax", RouteShortHaul},
		{"empty inputs still classify", "", "", RouteShortHaul},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRoute(tt.origin, tt.destination); got != tt.want {
				t.Errorf("ClassifyRoute(%q, %q) = %q, want %q", tt.origin, tt.destination, got, tt.want)
			}
		})
	}
}
