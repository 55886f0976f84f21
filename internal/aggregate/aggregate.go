// Package aggregate rolls the enriched datasets up into per-day, per-week,
// per-month and per-location summary tables. All outputs are sorted by their
// natural key so repeated runs over identical input are byte-identical
// downstream.
package aggregate

import (
	"sort"
	"time"

	"dashpulse/internal/domain"
	"dashpulse/internal/enrich"
)

// DailyDeliveryTotal is the per-(date, weekday) rollup of delivery rows.
// Nullable columns (miles, wait) are summed with blanks treated as 0.
type DailyDeliveryTotal struct {
	Date         time.Time `json:"date"`
	WeekdayNum   int       `json:"weekday_num"`
	WeekdayName  string    `json:"weekday_name"`
	Trips        int       `json:"trips"`
	Items        int       `json:"items"`
	Earnings     float64   `json:"earnings"`
	BasePay      float64   `json:"base_pay"`
	Tips         float64   `json:"tips"`
	TippedTrips  int       `json:"tipped_trips"`
	StackedTrips int       `json:"stacked_trips"`
	Miles        float64   `json:"miles"`
}

// DailySessionTotal is the per-(date, weekday) rollup of hours/mileage
// sessions.
type DailySessionTotal struct {
	Date        time.Time `json:"date"`
	WeekdayNum  int       `json:"weekday_num"`
	WeekdayName string    `json:"weekday_name"`
	Sessions    int       `json:"sessions"`
	HoursWorked float64   `json:"hours_worked"`
	TotalMiles  float64   `json:"total_miles"`
}

// WeeklyTotal is the per-ISO-week rollup of daily delivery totals. A date
// belongs to exactly one ISO week, so summing days within a week never
// double-counts across week boundaries.
type WeeklyTotal struct {
	Year     int     `json:"year"`
	Week     int     `json:"week"`
	Days     int     `json:"days"`
	Trips    int     `json:"trips"`
	Items    int     `json:"items"`
	Earnings float64 `json:"earnings"`
	Tips     float64 `json:"tips"`
}

// MonthlyTotal is the per-(year, month) rollup of daily delivery totals.
type MonthlyTotal struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Days     int        `json:"days"`
	Trips    int        `json:"trips"`
	Items    int        `json:"items"`
	Earnings float64    `json:"earnings"`
	Tips     float64    `json:"tips"`
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DailyDeliveries groups enriched delivery rows by (date, weekday) and sums
// earnings and item counts, ordered by date ascending.
func DailyDeliveries(rows []enrich.Delivery) []DailyDeliveryTotal {
	byDay := make(map[string]*DailyDeliveryTotal)
	keys := make([]string, 0)

	for _, r := range rows {
		key := dayKey(r.Date)
		total, ok := byDay[key]
		if !ok {
			total = &DailyDeliveryTotal{
				Date:        r.Date,
				WeekdayNum:  r.WeekdayNum,
				WeekdayName: r.WeekdayName,
			}
			byDay[key] = total
			keys = append(keys, key)
		}

		total.Trips++
		total.Items += r.Items
		total.Earnings += r.Earnings
		total.BasePay += r.BasePay
		total.Tips += r.Tip
		if r.Tipped {
			total.TippedTrips++
		}
		if r.Stacked() {
			total.StackedTrips++
		}
		if !domain.IsNull(r.Miles) {
			total.Miles += r.Miles
		}
	}

	sort.Strings(keys)
	out := make([]DailyDeliveryTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byDay[key])
	}
	return out
}

// DailySessions groups enriched sessions by (date, weekday), summing decimal
// hours worked and total miles, ordered by date ascending.
func DailySessions(rows []enrich.Session) []DailySessionTotal {
	byDay := make(map[string]*DailySessionTotal)
	keys := make([]string, 0)

	for _, s := range rows {
		key := dayKey(s.Date)
		total, ok := byDay[key]
		if !ok {
			total = &DailySessionTotal{
				Date:        s.Date,
				WeekdayNum:  s.WeekdayNum,
				WeekdayName: s.WeekdayName,
			}
			byDay[key] = total
			keys = append(keys, key)
		}

		total.Sessions++
		total.HoursWorked += s.HoursWorked
		total.TotalMiles += s.TotalMiles
	}

	sort.Strings(keys)
	out := make([]DailySessionTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byDay[key])
	}
	return out
}

// WeeklyRollup groups daily delivery totals by ISO week, ordered by
// (year, week) ascending.
func WeeklyRollup(daily []DailyDeliveryTotal) []WeeklyTotal {
	type weekKey struct {
		year int
		week int
	}
	byWeek := make(map[weekKey]*WeeklyTotal)
	keys := make([]weekKey, 0)

	for _, d := range daily {
		year, week := d.Date.ISOWeek()
		key := weekKey{year, week}
		total, ok := byWeek[key]
		if !ok {
			total = &WeeklyTotal{Year: year, Week: week}
			byWeek[key] = total
			keys = append(keys, key)
		}

		total.Days++
		total.Trips += d.Trips
		total.Items += d.Items
		total.Earnings += d.Earnings
		total.Tips += d.Tips
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	out := make([]WeeklyTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byWeek[key])
	}
	return out
}

// MonthlyRollup groups daily delivery totals by (year, month), ordered
// ascending.
func MonthlyRollup(daily []DailyDeliveryTotal) []MonthlyTotal {
	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]*MonthlyTotal)
	keys := make([]monthKey, 0)

	for _, d := range daily {
		key := monthKey{d.Date.Year(), d.Date.Month()}
		total, ok := byMonth[key]
		if !ok {
			total = &MonthlyTotal{Year: key.year, Month: key.month}
			byMonth[key] = total
			keys = append(keys, key)
		}

		total.Days++
		total.Trips += d.Trips
		total.Items += d.Items
		total.Earnings += d.Earnings
		total.Tips += d.Tips
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthlyTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, *byMonth[key])
	}
	return out
}
