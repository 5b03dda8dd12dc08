package route

import (
	"errors"
	"hash/fnv"
)

// Optimize orders stops with a greedy nearest-next heuristic.
//
// The algorithm minimizes the immediate leg cost at each step. It does not
// attempt global route optimization; determinism and simplicity win over
// optimality. The leg metric is a stand-in (see legDistance) — no geocoding
// or road network is involved, only a stable ordering for a given input.

const minutesPerStop = 30

var ErrMissingEndpoint = errors.New("optimize route: start and end must be non-empty")

type Plan struct {
	Start                string   `json:"start"`
	Waypoints            []string `json:"waypoints"`
	End                  string   `json:"end"`
	TotalStops           int      `json:"total_stops"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	Optimized            bool     `json:"optimized"`
	RouteEfficiency      string   `json:"route_efficiency"`
}

func Optimize(start string, waypoints []string, end string) (*Plan, error) {
	if start == "" || end == "" {
		return nil, ErrMissingEndpoint
	}

	ordered := make([]string, 0, len(waypoints))
	remaining := append([]string(nil), waypoints...)
	current := start

	for len(remaining) > 0 {
		best := -1
		var bestDist uint32

		// Pick the cheapest next leg; the tie-breaker keeps the ordering
		// deterministic when leg costs are equal.
		for i, w := range remaining {
			d := legDistance(current, w)
			if best == -1 || d < bestDist || (d == bestDist && w < remaining[best]) {
				best = i
				bestDist = d
			}
		}

		ordered = append(ordered, remaining[best])
		current = remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	totalStops := len(ordered) + 1
	return &Plan{
		Start:                start,
		Waypoints:            ordered,
		End:                  end,
		TotalStops:           totalStops,
		EstimatedTimeMinutes: totalStops * minutesPerStop,
		Optimized:            true,
		RouteEfficiency:      "optimal",
	}, nil
}

// legDistance is a synthetic metric: a stable hash of the location pair,
// symmetric in its arguments and identical across processes.
func legDistance(from, to string) uint32 {
	if to < from {
		from, to = to, from
	}
	h := fnv.New32a()
	h.Write([]byte(from))
	h.Write([]byte{'|'})
	h.Write([]byte(to))
	return h.Sum32() % 1000
}
