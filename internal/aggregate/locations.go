package aggregate

import (
	"math"
	"sort"

	"dashpulse/internal/domain"
	"dashpulse/internal/enrich"
)

// LocationTuple is one (location, trip) pairing produced by exploding the
// five parallel location columns of a delivery row into long form. Empty
// slots are dropped: a row with k non-empty locations yields k tuples.
// Trip-level columns (tip flag, earnings, wait) repeat on every tuple of
// that trip.
type LocationTuple struct {
	Location    string  `json:"location"`
	Items       int     `json:"items"`
	Tipped      bool    `json:"tipped"`
	Earnings    float64 `json:"earnings"`
	WaitMinutes float64 `json:"wait_minutes"`
}

// LocationStat is the per-location rollup of exploded tuples. Keys are
// verbatim location names, case-sensitive.
type LocationStat struct {
	Location string  `json:"location"`
	Visits   int     `json:"visits"`
	Items    int     `json:"items"`
	Earnings float64 `json:"earnings"`
	TipRatio float64 `json:"tip_ratio"`
	MeanWait float64 `json:"mean_wait"`
	Stacked1 int     `json:"stacked_1"`
	Stacked2 int     `json:"stacked_2"`
	Stacked3 int     `json:"stacked_3"`
}

// ExplodeLocations reshapes the wide per-row location slots into a flat
// tuple sequence, preserving row order then slot order.
func ExplodeLocations(rows []enrich.Delivery) []LocationTuple {
	tuples := make([]LocationTuple, 0, len(rows))
	for _, r := range rows {
		for _, stop := range r.NonEmptyStops() {
			tuples = append(tuples, LocationTuple{
				Location:    stop.Location,
				Items:       stop.Items,
				Tipped:      r.Tipped,
				Earnings:    r.Earnings,
				WaitMinutes: r.WaitMinutes,
			})
		}
	}
	return tuples
}

// LocationStats groups exploded tuples by location name. The result is in
// first-encounter order, which gives ranking a stable base.
func LocationStats(tuples []LocationTuple) []LocationStat {
	type acc struct {
		stat    LocationStat
		tipped  int
		waitSum float64
		waitObs int
	}
	byName := make(map[string]*acc)
	order := make([]string, 0)

	for _, t := range tuples {
		a, ok := byName[t.Location]
		if !ok {
			a = &acc{stat: LocationStat{Location: t.Location}}
			byName[t.Location] = a
			order = append(order, t.Location)
		}

		a.stat.Visits++
		a.stat.Items += t.Items
		a.stat.Earnings += t.Earnings
		if t.Tipped {
			a.tipped++
		}
		if !domain.IsNull(t.WaitMinutes) {
			a.waitSum += t.WaitMinutes
			a.waitObs++
		}
		switch t.Items {
		case 1:
			a.stat.Stacked1++
		case 2:
			a.stat.Stacked2++
		case 3:
			a.stat.Stacked3++
		}
	}

	out := make([]LocationStat, 0, len(order))
	for _, name := range order {
		a := byName[name]
		if a.stat.Visits > 0 {
			a.stat.TipRatio = float64(a.tipped) / float64(a.stat.Visits)
		} else {
			a.stat.TipRatio = math.NaN()
		}
		if a.waitObs > 0 {
			a.stat.MeanWait = a.waitSum / float64(a.waitObs)
		} else {
			a.stat.MeanWait = math.NaN()
		}
		out = append(out, a.stat)
	}
	return out
}

// Metric selects the value a ranking sorts by.
type Metric func(LocationStat) float64

// Named metrics for ranked outputs.
var (
	MetricEarnings = func(s LocationStat) float64 { return s.Earnings }
	MetricVisits   = func(s LocationStat) float64 { return float64(s.Visits) }
	MetricItems    = func(s LocationStat) float64 { return float64(s.Items) }
	MetricTipRatio = func(s LocationStat) float64 { return s.TipRatio }
)

// Rank orders location stats descending by the primary metric, breaking
// ties descending by the secondary metric, and otherwise preserving the
// input (encounter) order. NaN metric values sort last. The input slice is
// not modified.
func Rank(stats []LocationStat, primary, secondary Metric) []LocationStat {
	ranked := make([]LocationStat, len(stats))
	copy(ranked, stats)

	value := func(m Metric, s LocationStat) float64 {
		v := m(s)
		if math.IsNaN(v) {
			return math.Inf(-1)
		}
		return v
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := value(primary, ranked[i]), value(primary, ranked[j])
		if pi != pj {
			return pi > pj
		}
		return value(secondary, ranked[i]) > value(secondary, ranked[j])
	})
	return ranked
}
