package aggregate

import (
	"dashpulse/internal/enrich"
)

// SessionEarnings sums trip earnings per driving session, in first
// encounter order. Rows with no session identifier are grouped under the
// empty key so no earnings are dropped.
func SessionEarnings(rows []enrich.Delivery) []float64 {
	bySession := make(map[string]int)
	totals := make([]float64, 0)

	for _, r := range rows {
		idx, ok := bySession[r.SessionID]
		if !ok {
			idx = len(totals)
			bySession[r.SessionID] = idx
			totals = append(totals, 0)
		}
		totals[idx] += r.Earnings
	}
	return totals
}
