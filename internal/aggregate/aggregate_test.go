package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/internal/domain"
	"dashpulse/internal/enrich"
)

func delivery(day time.Time, items int, earnings, tip float64, tipped bool) enrich.Delivery {
	return enrich.Delivery{
		DeliveryRecord: domain.DeliveryRecord{
			Date:     day,
			Items:    items,
			Earnings: earnings,
			Tip:      tip,
			Tipped:   tipped,
			BasePay:  earnings - tip,
			Miles:    domain.NullFloat(),
		},
		WeekdayNum:  enrich.WeekdayNumber(day),
		WeekdayName: enrich.WeekdayName(day),
	}
}

func TestDailyDeliveries(t *testing.T) {
	mon := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	tue := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)

	rows := []enrich.Delivery{
		delivery(tue, 1, 8.00, 2.00, true),
		delivery(mon, 2, 12.50, 4.00, true),
		delivery(mon, 1, 6.25, 0, false),
	}
	// One row with known mileage among null-mile rows
	rows[2].Miles = 3.4

	daily := DailyDeliveries(rows)
	require.Len(t, daily, 2)

	// Date ascending order regardless of input order
	assert.Equal(t, mon, daily[0].Date)
	assert.Equal(t, tue, daily[1].Date)

	assert.Equal(t, 2, daily[0].Trips)
	assert.Equal(t, 3, daily[0].Items)
	assert.InDelta(t, 18.75, daily[0].Earnings, 1e-9)
	assert.InDelta(t, 4.00, daily[0].Tips, 1e-9)
	assert.Equal(t, 1, daily[0].TippedTrips)
	assert.Equal(t, 1, daily[0].StackedTrips)
	assert.Equal(t, "Mon", daily[0].WeekdayName)

	// Null miles sum as zero, known miles survive
	assert.InDelta(t, 3.4, daily[0].Miles, 1e-9)
	assert.Zero(t, daily[1].Miles)
}

func TestDailySessions(t *testing.T) {
	day := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	sessions := []enrich.Session{
		{
			ShiftSession: domain.ShiftSession{Date: day, Hours: 2, Minutes: 30, TotalMiles: 20},
			WeekdayNum:   4, WeekdayName: "Wed", HoursWorked: 2.5,
		},
		{
			ShiftSession: domain.ShiftSession{Date: day, Hours: 1, TotalMiles: 8.5},
			WeekdayNum:   4, WeekdayName: "Wed", HoursWorked: 1,
		},
	}

	daily := DailySessions(sessions)
	require.Len(t, daily, 1)
	assert.Equal(t, 2, daily[0].Sessions)
	assert.InDelta(t, 3.5, daily[0].HoursWorked, 1e-9)
	assert.InDelta(t, 28.5, daily[0].TotalMiles, 1e-9)
}

// TestWeeklyRollup checks that days land in exactly one ISO week, including
// across a year boundary where the calendar year and ISO year differ.
func TestWeeklyRollup(t *testing.T) {
	// 2024-12-30 falls in ISO week 2025-W01 together with 2025-01-01,
	// while 2024-12-29 closes 2024-W52.
	daily := []DailyDeliveryTotal{
		{Date: time.Date(2024, time.December, 29, 0, 0, 0, 0, time.UTC), Trips: 1, Earnings: 10},
		{Date: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), Trips: 2, Earnings: 20},
		{Date: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), Trips: 3, Earnings: 30},
	}

	weekly := WeeklyRollup(daily)
	require.Len(t, weekly, 2)

	assert.Equal(t, 2024, weekly[0].Year)
	assert.Equal(t, 52, weekly[0].Week)
	assert.Equal(t, 1, weekly[0].Days)

	assert.Equal(t, 2025, weekly[1].Year)
	assert.Equal(t, 1, weekly[1].Week)
	assert.Equal(t, 2, weekly[1].Days)
	assert.Equal(t, 5, weekly[1].Trips)
	assert.InDelta(t, 50, weekly[1].Earnings, 1e-9)

	// Every day is counted exactly once
	totalDays := 0
	for _, w := range weekly {
		totalDays += w.Days
	}
	assert.Equal(t, len(daily), totalDays)
}

func TestMonthlyRollup(t *testing.T) {
	daily := []DailyDeliveryTotal{
		{Date: time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), Trips: 2, Earnings: 15},
		{Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Trips: 1, Earnings: 9},
		{Date: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), Trips: 4, Earnings: 40},
	}

	monthly := MonthlyRollup(daily)
	require.Len(t, monthly, 2)
	assert.Equal(t, time.May, monthly[0].Month)
	assert.Equal(t, time.June, monthly[1].Month)
	assert.Equal(t, 2, monthly[1].Days)
	assert.Equal(t, 5, monthly[1].Trips)
	assert.InDelta(t, 49, monthly[1].Earnings, 1e-9)
}

func TestExplodeLocations(t *testing.T) {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	single := delivery(day, 1, 7.50, 1.50, true)
	single.Stops[0] = domain.Stop{Location: "Burger Barn", Items: 1}

	stacked := delivery(day, 3, 21.00, 0, false)
	stacked.Stops[0] = domain.Stop{Location: "Taco Stop", Items: 2}
	// slot 1 left empty on the source row
	stacked.Stops[2] = domain.Stop{Location: "Burger Barn", Items: 1}

	tuples := ExplodeLocations([]enrich.Delivery{single, stacked})
	require.Len(t, tuples, 3)

	// Row order then slot order, empty slots dropped
	assert.Equal(t, "Burger Barn", tuples[0].Location)
	assert.Equal(t, "Taco Stop", tuples[1].Location)
	assert.Equal(t, "Burger Barn", tuples[2].Location)

	// Trip-level columns repeat on every tuple of the trip
	assert.InDelta(t, 21.00, tuples[1].Earnings, 1e-9)
	assert.InDelta(t, 21.00, tuples[2].Earnings, 1e-9)
	assert.Equal(t, 2, tuples[1].Items)
}

func TestLocationStats(t *testing.T) {
	tuples := []LocationTuple{
		{Location: "Burger Barn", Items: 1, Tipped: true, Earnings: 7.50, WaitMinutes: 4},
		{Location: "Taco Stop", Items: 2, Tipped: false, Earnings: 21.00, WaitMinutes: math.NaN()},
		{Location: "Burger Barn", Items: 1, Tipped: false, Earnings: 21.00, WaitMinutes: 6},
	}

	stats := LocationStats(tuples)
	require.Len(t, stats, 2)

	barn := stats[0]
	assert.Equal(t, "Burger Barn", barn.Location)
	assert.Equal(t, 2, barn.Visits)
	assert.InDelta(t, 28.50, barn.Earnings, 1e-9)
	assert.InDelta(t, 0.5, barn.TipRatio, 1e-9)
	assert.InDelta(t, 5, barn.MeanWait, 1e-9)
	assert.Equal(t, 2, barn.Stacked1)

	taco := stats[1]
	assert.Equal(t, 1, taco.Stacked2)
	// No wait observations at all leaves the mean undefined
	assert.True(t, math.IsNaN(taco.MeanWait))
}

func TestRank(t *testing.T) {
	stats := []LocationStat{
		{Location: "A", Earnings: 10, Visits: 3},
		{Location: "B", Earnings: 25, Visits: 1},
		{Location: "C", Earnings: 10, Visits: 5},
		{Location: "D", Earnings: 10, Visits: 5},
	}

	ranked := Rank(stats, MetricEarnings, MetricVisits)

	assert.Equal(t, "B", ranked[0].Location)
	assert.Equal(t, "C", ranked[1].Location)
	// Full tie keeps encounter order
	assert.Equal(t, "D", ranked[2].Location)
	assert.Equal(t, "A", ranked[3].Location)

	// Input order untouched
	assert.Equal(t, "A", stats[0].Location)

	t.Run("NaN metric sorts last", func(t *testing.T) {
		withNaN := []LocationStat{
			{Location: "X", TipRatio: math.NaN(), Visits: 9},
			{Location: "Y", TipRatio: 0.1, Visits: 1},
		}
		ranked := Rank(withNaN, MetricTipRatio, MetricVisits)
		assert.Equal(t, "Y", ranked[0].Location)
		assert.Equal(t, "X", ranked[1].Location)
	})
}

func TestSessionEarnings(t *testing.T) {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	a := delivery(day, 1, 8, 0, false)
	a.SessionID = "s1"
	b := delivery(day, 1, 12, 3, true)
	b.SessionID = "s2"
	c := delivery(day, 1, 5, 0, false)
	c.SessionID = "s1"

	totals := SessionEarnings([]enrich.Delivery{a, b, c})
	require.Len(t, totals, 2)
	assert.InDelta(t, 13, totals[0], 1e-9)
	assert.InDelta(t, 12, totals[1], 1e-9)
}
