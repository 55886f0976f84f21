package domain

import (
	"math"
	"time"
)

// MaxStops is the number of pickup-location slots on a delivery row.
// The source spreadsheet carries five parallel location/item-count columns.
const MaxStops = 5

// Stop is one pickup location visited during a trip, with the number of
// items collected there. Location names are free text and kept verbatim:
// near-duplicate spellings are distinct keys.
type Stop struct {
	Location string `json:"location"`
	Items    int    `json:"items"`
}

// IsEmpty reports whether the slot was unused on the source row.
func (s Stop) IsEmpty() bool {
	return s.Location == ""
}

// DeliveryRecord is one driving trip: one or more pickups followed by
// drop-offs. Nullable numeric columns (Miles, WaitMinutes) are NaN when the
// source cell was blank; sums treat them as 0, ratios propagate the NaN.
type DeliveryRecord struct {
	Date        time.Time      `json:"date"`
	PickupAt    time.Time      `json:"pickup_at"`
	SessionID   string         `json:"session_id"`
	Items       int            `json:"items"`
	BasePay     float64        `json:"base_pay"`
	Tip         float64        `json:"tip"`
	Tipped      bool           `json:"tipped"`
	Earnings    float64        `json:"earnings"`
	Miles       float64        `json:"miles"`
	WaitMinutes float64        `json:"wait_minutes"`
	Stops       [MaxStops]Stop `json:"stops"`
}

// StopItems returns the sum of per-location item counts.
func (r DeliveryRecord) StopItems() int {
	total := 0
	for _, s := range r.Stops {
		total += s.Items
	}
	return total
}

// NonEmptyStops returns the used location slots in column order.
func (r DeliveryRecord) NonEmptyStops() []Stop {
	stops := make([]Stop, 0, MaxStops)
	for _, s := range r.Stops {
		if !s.IsEmpty() {
			stops = append(stops, s)
		}
	}
	return stops
}

// IsValid checks the row-level invariants: at least one item, and the
// per-location item counts summing to the trip total.
func (r DeliveryRecord) IsValid() bool {
	return !r.Date.IsZero() && r.Items >= 1 && r.StopItems() == r.Items
}

// Stacked reports whether the trip carried more than one order.
func (r DeliveryRecord) Stacked() bool {
	return r.Items > 1
}

// GuaranteeEvent is one date on which a minimum-earnings guarantee was
// triggered. Amount may be zero when the payout column was blank.
type GuaranteeEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Achieved reports whether a guarantee payout was actually received.
func (e GuaranteeEvent) Achieved() bool {
	return e.Amount > 0
}

// ShiftSession is one continuous driving shift from the hours/mileage log.
type ShiftSession struct {
	Date       time.Time `json:"date"`
	Hours      int       `json:"hours"`
	Minutes    int       `json:"minutes"`
	Seconds    int       `json:"seconds"`
	TotalMiles float64   `json:"total_miles"`
}

// IsValid checks that the logged duration components are in range.
func (s ShiftSession) IsValid() bool {
	return !s.Date.IsZero() && s.Hours >= 0 &&
		s.Minutes >= 0 && s.Minutes < 60 &&
		s.Seconds >= 0 && s.Seconds < 60
}

// NullFloat is the representation of an absent numeric cell.
func NullFloat() float64 {
	return math.NaN()
}

// IsNull reports whether a numeric value represents an absent cell or an
// undefined ratio.
func IsNull(v float64) bool {
	return math.IsNaN(v)
}
