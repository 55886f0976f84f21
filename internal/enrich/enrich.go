// Package enrich derives per-row columns from the loaded datasets: weekday
// labels, decimal hours worked, and pickup time-of-day. Transforms are pure
// and keep the source rows immutable; each dataset is enriched independently.
package enrich

import (
	"time"

	"dashpulse/internal/domain"
	"dashpulse/internal/errors"
)

// Weekday numbering follows the source spreadsheets: Sunday=1 … Saturday=7.
// Names are locale-independent three-letter abbreviations.

// WeekdayNumber returns the 1-based weekday code for a date (Sunday=1).
func WeekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

// WeekdayName returns the three-letter English weekday abbreviation.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()[:3]
}

// DecimalHours converts an (hours, minutes, seconds) duration to decimal
// hours: h + m/60 + s/3600.
func DecimalHours(hours, minutes, seconds int) float64 {
	return float64(hours) + float64(minutes)/60 + float64(seconds)/3600
}

// ClockHours extracts the time-of-day from a timestamp as fractional hours
// since midnight, discarding the date.
func ClockHours(ts time.Time) float64 {
	return float64(ts.Hour()) + float64(ts.Minute())/60 + float64(ts.Second())/3600
}

// Delivery is a DeliveryRecord with its derived columns.
type Delivery struct {
	domain.DeliveryRecord

	WeekdayNum  int     `json:"weekday_num"`
	WeekdayName string  `json:"weekday_name"`
	PickupClock float64 `json:"pickup_clock"` // fractional hours since midnight
}

// Session is a ShiftSession with its derived columns.
type Session struct {
	domain.ShiftSession

	WeekdayNum  int     `json:"weekday_num"`
	WeekdayName string  `json:"weekday_name"`
	HoursWorked float64 `json:"hours_worked"`
}

// Guarantee is a GuaranteeEvent with its derived columns.
type Guarantee struct {
	domain.GuaranteeEvent

	WeekdayNum  int    `json:"weekday_num"`
	WeekdayName string `json:"weekday_name"`
}

// Deliveries enriches every delivery record. A zero date means the loader
// was bypassed with a bad row; it surfaces as an invalid-date abort.
func Deliveries(records []domain.DeliveryRecord) ([]Delivery, error) {
	out := make([]Delivery, 0, len(records))
	for i, r := range records {
		if r.Date.IsZero() {
			return nil, errors.InvalidDate("deliveries", i+1, "")
		}
		out = append(out, Delivery{
			DeliveryRecord: r,
			WeekdayNum:     WeekdayNumber(r.Date),
			WeekdayName:    WeekdayName(r.Date),
			PickupClock:    ClockHours(r.PickupAt),
		})
	}
	return out, nil
}

// Sessions enriches every hours/mileage session.
func Sessions(sessions []domain.ShiftSession) ([]Session, error) {
	out := make([]Session, 0, len(sessions))
	for i, s := range sessions {
		if s.Date.IsZero() {
			return nil, errors.InvalidDate("hours_mileage", i+1, "")
		}
		out = append(out, Session{
			ShiftSession: s,
			WeekdayNum:   WeekdayNumber(s.Date),
			WeekdayName:  WeekdayName(s.Date),
			HoursWorked:  DecimalHours(s.Hours, s.Minutes, s.Seconds),
		})
	}
	return out, nil
}

// Guarantees enriches every guaranteed-earnings event.
func Guarantees(events []domain.GuaranteeEvent) ([]Guarantee, error) {
	out := make([]Guarantee, 0, len(events))
	for i, e := range events {
		if e.Date.IsZero() {
			return nil, errors.InvalidDate("guaranteed_earnings", i+1, "")
		}
		out = append(out, Guarantee{
			GuaranteeEvent: e,
			WeekdayNum:     WeekdayNumber(e.Date),
			WeekdayName:    WeekdayName(e.Date),
		})
	}
	return out, nil
}
