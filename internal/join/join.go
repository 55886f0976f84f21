// Package join combines the per-day rollups across the three sources and
// derives the per-hour ratios. Missing matches surface as NaN, never as a
// silent zero; the one deliberate default is a missing guarantee amount,
// which is 0 by definition of the payout.
package join

import (
	"math"
	"time"

	"dashpulse/internal/aggregate"
	"dashpulse/internal/enrich"
)

// DayStats is one delivery day joined with its hours/mileage rollup. Days
// with no matching session row keep NaN hours, which propagates into the
// per-hour ratios.
type DayStats struct {
	Date        time.Time `json:"date"`
	WeekdayNum  int       `json:"weekday_num"`
	WeekdayName string    `json:"weekday_name"`

	Trips    int     `json:"trips"`
	Items    int     `json:"items"`
	Earnings float64 `json:"earnings"`
	Tips     float64 `json:"tips"`

	HoursWorked float64 `json:"hours_worked"`
	TotalMiles  float64 `json:"total_miles"`

	PerHourEarnings   float64 `json:"per_hour_earnings"`
	DeliveriesPerHour float64 `json:"deliveries_per_hour"`
}

// WeekendDayStats is a Friday/Saturday/Sunday delivery day augmented with
// its guarantee payout and re-joined with hours for the guarantee-inclusive
// per-hour rate.
type WeekendDayStats struct {
	Date        time.Time `json:"date"`
	WeekdayNum  int       `json:"weekday_num"`
	WeekdayName string    `json:"weekday_name"`

	Earnings          float64 `json:"earnings"`
	GuaranteeAmount   float64 `json:"guarantee_amount"`
	GuaranteeAchieved bool    `json:"guarantee_achieved"`
	TotalEarnings     float64 `json:"total_earnings"`

	HoursWorked  float64 `json:"hours_worked"`
	TotalPerHour float64 `json:"total_per_hour"`
}

// ratio divides a by b, yielding NaN when the divisor is absent or zero.
func ratio(a, b float64) float64 {
	if math.IsNaN(b) || b == 0 {
		return math.NaN()
	}
	return a / b
}

// Days left-outer-joins daily delivery totals with daily session totals on
// (date, weekday). Every delivery day appears exactly once; days without a
// session row get NaN hours and NaN ratios.
func Days(deliveries []aggregate.DailyDeliveryTotal, sessions []aggregate.DailySessionTotal) []DayStats {
	byDay := make(map[string]aggregate.DailySessionTotal, len(sessions))
	for _, s := range sessions {
		byDay[s.Date.Format("2006-01-02")] = s
	}

	out := make([]DayStats, 0, len(deliveries))
	for _, d := range deliveries {
		day := DayStats{
			Date:        d.Date,
			WeekdayNum:  d.WeekdayNum,
			WeekdayName: d.WeekdayName,
			Trips:       d.Trips,
			Items:       d.Items,
			Earnings:    d.Earnings,
			Tips:        d.Tips,
			HoursWorked: math.NaN(),
			TotalMiles:  math.NaN(),
		}
		if s, ok := byDay[d.Date.Format("2006-01-02")]; ok {
			day.HoursWorked = s.HoursWorked
			day.TotalMiles = s.TotalMiles
		}
		day.PerHourEarnings = ratio(day.Earnings, day.HoursWorked)
		day.DeliveriesPerHour = ratio(float64(day.Trips), day.HoursWorked)
		out = append(out, day)
	}
	return out
}

// weekend weekday codes under Sunday=1 … Saturday=7 numbering.
func isGuaranteeDay(weekdayNum int) bool {
	return weekdayNum == 1 || weekdayNum == 6 || weekdayNum == 7
}

// WeekendDays keeps the Friday/Saturday/Sunday delivery days and attaches
// their guarantee events by date. A day with no event gets amount 0, so
// GuaranteeAchieved is false. The augmented rows are then merged with the
// session rollup the same way Days does, giving total earnings per hour
// including guarantees.
func WeekendDays(deliveries []aggregate.DailyDeliveryTotal, guarantees []enrich.Guarantee, sessions []aggregate.DailySessionTotal) []WeekendDayStats {
	amountByDay := make(map[string]float64, len(guarantees))
	for _, g := range guarantees {
		amountByDay[g.Date.Format("2006-01-02")] += g.Amount
	}
	hoursByDay := make(map[string]float64, len(sessions))
	for _, s := range sessions {
		hoursByDay[s.Date.Format("2006-01-02")] = s.HoursWorked
	}

	out := make([]WeekendDayStats, 0)
	for _, d := range deliveries {
		if !isGuaranteeDay(d.WeekdayNum) {
			continue
		}
		key := d.Date.Format("2006-01-02")
		amount := amountByDay[key] // missing event defaults to 0

		day := WeekendDayStats{
			Date:              d.Date,
			WeekdayNum:        d.WeekdayNum,
			WeekdayName:       d.WeekdayName,
			Earnings:          d.Earnings,
			GuaranteeAmount:   amount,
			GuaranteeAchieved: amount > 0,
			TotalEarnings:     d.Earnings + amount,
			HoursWorked:       math.NaN(),
		}
		if hours, ok := hoursByDay[key]; ok {
			day.HoursWorked = hours
		}
		day.TotalPerHour = ratio(day.TotalEarnings, day.HoursWorked)
		out = append(out, day)
	}
	return out
}
