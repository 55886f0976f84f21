package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"dashpulse/internal/aggregate"
	"dashpulse/internal/join"
)

// money, hours and ratio column precisions.
const (
	precMoney = 2
	precHours = 2
	precRatio = 4
)

// formatFloat renders a numeric cell. Undefined values render as "NaN" so
// the reader can tell an undefined ratio from an actual zero.
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func dailyTable(days []join.DayStats) ([]string, [][]string) {
	headers := []string{
		"Date", "Weekday", "Trips", "Items", "Earnings", "Tips",
		"HoursWorked", "TotalMiles", "PerHourEarnings", "DeliveriesPerHour",
	}
	records := make([][]string, 0, len(days))
	for _, d := range days {
		records = append(records, []string{
			formatDate(d.Date),
			d.WeekdayName,
			strconv.Itoa(d.Trips),
			strconv.Itoa(d.Items),
			formatFloat(d.Earnings, precMoney),
			formatFloat(d.Tips, precMoney),
			formatFloat(d.HoursWorked, precHours),
			formatFloat(d.TotalMiles, precHours),
			formatFloat(d.PerHourEarnings, precMoney),
			formatFloat(d.DeliveriesPerHour, precRatio),
		})
	}
	return headers, records
}

func weeklyTable(weeks []aggregate.WeeklyTotal) ([]string, [][]string) {
	headers := []string{"Year", "Week", "Days", "Trips", "Items", "Earnings", "Tips"}
	records := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		records = append(records, []string{
			strconv.Itoa(w.Year),
			strconv.Itoa(w.Week),
			strconv.Itoa(w.Days),
			strconv.Itoa(w.Trips),
			strconv.Itoa(w.Items),
			formatFloat(w.Earnings, precMoney),
			formatFloat(w.Tips, precMoney),
		})
	}
	return headers, records
}

func monthlyTable(months []aggregate.MonthlyTotal) ([]string, [][]string) {
	headers := []string{"Year", "Month", "Days", "Trips", "Items", "Earnings", "Tips"}
	records := make([][]string, 0, len(months))
	for _, m := range months {
		records = append(records, []string{
			strconv.Itoa(m.Year),
			fmt.Sprintf("%02d", int(m.Month)),
			strconv.Itoa(m.Days),
			strconv.Itoa(m.Trips),
			strconv.Itoa(m.Items),
			formatFloat(m.Earnings, precMoney),
			formatFloat(m.Tips, precMoney),
		})
	}
	return headers, records
}

func locationTable(locations []aggregate.LocationStat) ([]string, [][]string) {
	headers := []string{
		"Location", "Visits", "Items", "Earnings", "TipRatio", "MeanWait",
		"Single", "Double", "Triple",
	}
	records := make([][]string, 0, len(locations))
	for _, l := range locations {
		records = append(records, []string{
			l.Location,
			strconv.Itoa(l.Visits),
			strconv.Itoa(l.Items),
			formatFloat(l.Earnings, precMoney),
			formatFloat(l.TipRatio, precRatio),
			formatFloat(l.MeanWait, precHours),
			strconv.Itoa(l.Stacked1),
			strconv.Itoa(l.Stacked2),
			strconv.Itoa(l.Stacked3),
		})
	}
	return headers, records
}

func weekendTable(days []join.WeekendDayStats) ([]string, [][]string) {
	headers := []string{
		"Date", "Weekday", "Earnings", "GuaranteeAmount", "GuaranteeAchieved",
		"TotalEarnings", "HoursWorked", "TotalPerHour",
	}
	records := make([][]string, 0, len(days))
	for _, d := range days {
		records = append(records, []string{
			formatDate(d.Date),
			d.WeekdayName,
			formatFloat(d.Earnings, precMoney),
			formatFloat(d.GuaranteeAmount, precMoney),
			strconv.FormatBool(d.GuaranteeAchieved),
			formatFloat(d.TotalEarnings, precMoney),
			formatFloat(d.HoursWorked, precHours),
			formatFloat(d.TotalPerHour, precMoney),
		})
	}
	return headers, records
}
