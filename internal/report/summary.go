package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"dashpulse/internal/aggregate"
	"dashpulse/internal/join"
	"dashpulse/internal/stats"
)

// Summary is everything the Reporter renders: the joined summary tables,
// the interval estimates, and the raw samples behind the distribution
// charts.
type Summary struct {
	Daily       []join.DayStats
	Weekly      []aggregate.WeeklyTotal
	Monthly     []aggregate.MonthlyTotal
	Locations   []aggregate.LocationStat
	WeekendDays []join.WeekendDayStats

	TipCI        stats.Interval
	GuaranteeCI  stats.Interval
	PerHourCI    stats.Interval
	PerSessionCI stats.Interval

	Totals Totals

	// Chart samples. NaN entries mark absent cells and are skipped when
	// binning.
	PickupClocks []float64
	TripMiles    []float64
}

// Totals are the whole-period scalars.
type Totals struct {
	Days     int     `json:"days"`
	Trips    int     `json:"trips"`
	Items    int     `json:"items"`
	Earnings float64 `json:"earnings"`
	Tips     float64 `json:"tips"`
	Hours    float64 `json:"hours"`
	Miles    float64 `json:"miles"`
}

// jsonNumber renders a possibly-undefined value for JSON output: NaN
// becomes null, never 0.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func intervalJSON(iv stats.Interval) map[string]interface{} {
	return map[string]interface{}{
		"point": jsonNumber(iv.Point),
		"lower": jsonNumber(iv.Lower),
		"upper": jsonNumber(iv.Upper),
		"n":     iv.N,
	}
}

// writeJSON writes the summary scalars and intervals with run metadata.
func writeJSON(path string, s *Summary, runID string, generatedAt time.Time) error {
	payload := map[string]interface{}{
		"run_id":       runID,
		"generated_at": generatedAt.Format(time.RFC3339),
		"totals":       s.Totals,
		"intervals": map[string]interface{}{
			"tip_frequency":        intervalJSON(s.TipCI),
			"guarantee_frequency":  intervalJSON(s.GuaranteeCI),
			"per_hour_earnings":    intervalJSON(s.PerHourCI),
			"per_session_earnings": intervalJSON(s.PerSessionCI),
		},
		"counts": map[string]int{
			"days":         len(s.Daily),
			"weeks":        len(s.Weekly),
			"months":       len(s.Monthly),
			"locations":    len(s.Locations),
			"weekend_days": len(s.WeekendDays),
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// formatInterval renders an interval estimate for the text summary.
func formatInterval(name string, iv stats.Interval) string {
	if !iv.Defined() {
		return fmt.Sprintf("%-22s %s (n=%d, interval undefined)", name, formatFloat(iv.Point, precRatio), iv.N)
	}
	return fmt.Sprintf("%-22s %s  [%s, %s]  (n=%d)",
		name,
		formatFloat(iv.Point, precRatio),
		formatFloat(iv.Lower, precRatio),
		formatFloat(iv.Upper, precRatio),
		iv.N)
}

// writeText writes the human-readable summary: period totals, interval
// estimates, and the top-N location table.
func writeText(path string, s *Summary, topLocations int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "=== DELIVERY EARNINGS SUMMARY ===")
	fmt.Fprintf(file, "Days driven:       %d\n", s.Totals.Days)
	fmt.Fprintf(file, "Trips:             %d (%d items)\n", s.Totals.Trips, s.Totals.Items)
	fmt.Fprintf(file, "Earnings:          %s (tips %s)\n",
		formatFloat(s.Totals.Earnings, precMoney), formatFloat(s.Totals.Tips, precMoney))
	fmt.Fprintf(file, "Hours worked:      %s\n", formatFloat(s.Totals.Hours, precHours))
	fmt.Fprintf(file, "Miles driven:      %s\n", formatFloat(s.Totals.Miles, precHours))
	fmt.Fprintln(file)

	fmt.Fprintln(file, "=== 95% CONFIDENCE INTERVALS ===")
	fmt.Fprintln(file, formatInterval("Tip frequency", s.TipCI))
	fmt.Fprintln(file, formatInterval("Guarantee frequency", s.GuaranteeCI))
	fmt.Fprintln(file, formatInterval("Earnings per hour", s.PerHourCI))
	fmt.Fprintln(file, formatInterval("Earnings per session", s.PerSessionCI))
	fmt.Fprintln(file)

	fmt.Fprintf(file, "=== TOP %d LOCATIONS BY EARNINGS ===\n", topLocations)
	fmt.Fprintln(file, "Location                       | Visits | Items | Earnings | TipRatio | MeanWait")
	fmt.Fprintln(file, "-------------------------------|--------|-------|----------|----------|---------")
	for i, l := range s.Locations {
		if i >= topLocations {
			break
		}
		fmt.Fprintf(file, "%-30s | %6d | %5d | %8s | %8s | %8s\n",
			l.Location, l.Visits, l.Items,
			formatFloat(l.Earnings, precMoney),
			formatFloat(l.TipRatio, precRatio),
			formatFloat(l.MeanWait, precHours))
	}

	return nil
}
