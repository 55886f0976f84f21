// Package pipeline chains the pipeline stages: enrich the three loaded
// datasets, roll them up, join them, estimate the confidence intervals and
// hand the result to the reporter. Every run recomputes everything from the
// source tables; no state survives between runs.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"dashpulse/internal/aggregate"
	"dashpulse/internal/domain"
	"dashpulse/internal/enrich"
	"dashpulse/internal/join"
	"dashpulse/internal/report"
	"dashpulse/internal/stats"
)

// Inputs are the three loaded source tables.
type Inputs struct {
	Deliveries []domain.DeliveryRecord
	Guarantees []domain.GuaranteeEvent
	Sessions   []domain.ShiftSession
}

// Run executes the full pipeline over immutable inputs. The independent
// aggregation branches run concurrently; each writes only its own result
// slot, so numeric output is identical to a sequential run.
func Run(ctx context.Context, in Inputs) (*report.Summary, error) {
	start := time.Now()
	logger := slog.Default()

	logger.InfoContext(ctx, "starting pipeline",
		"deliveries", len(in.Deliveries),
		"guarantees", len(in.Guarantees),
		"sessions", len(in.Sessions),
	)

	deliveries, err := enrich.Deliveries(in.Deliveries)
	if err != nil {
		return nil, err
	}
	sessions, err := enrich.Sessions(in.Sessions)
	if err != nil {
		return nil, err
	}
	guarantees, err := enrich.Guarantees(in.Guarantees)
	if err != nil {
		return nil, err
	}

	var (
		dailyDeliveries []aggregate.DailyDeliveryTotal
		dailySessions   []aggregate.DailySessionTotal
		locations       []aggregate.LocationStat
		sessionEarnings []float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dailyDeliveries = aggregate.DailyDeliveries(deliveries)
		return gctx.Err()
	})
	g.Go(func() error {
		dailySessions = aggregate.DailySessions(sessions)
		return gctx.Err()
	})
	g.Go(func() error {
		locations = aggregate.Rank(
			aggregate.LocationStats(aggregate.ExplodeLocations(deliveries)),
			aggregate.MetricEarnings, aggregate.MetricVisits)
		return gctx.Err()
	})
	g.Go(func() error {
		sessionEarnings = aggregate.SessionEarnings(deliveries)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	weekly := aggregate.WeeklyRollup(dailyDeliveries)
	monthly := aggregate.MonthlyRollup(dailyDeliveries)
	days := join.Days(dailyDeliveries, dailySessions)
	weekendDays := join.WeekendDays(dailyDeliveries, guarantees, dailySessions)

	summary := &report.Summary{
		Daily:       days,
		Weekly:      weekly,
		Monthly:     monthly,
		Locations:   locations,
		WeekendDays: weekendDays,
	}

	tippedTrips := 0
	for _, d := range deliveries {
		if d.Tipped {
			tippedTrips++
		}
		summary.PickupClocks = append(summary.PickupClocks, d.PickupClock)
		summary.TripMiles = append(summary.TripMiles, d.Miles)
	}
	summary.TipCI = stats.WilsonCI(tippedTrips, len(deliveries))

	achieved := 0
	for _, d := range weekendDays {
		if d.GuaranteeAchieved {
			achieved++
		}
	}
	summary.GuaranteeCI = stats.WilsonCI(achieved, len(weekendDays))

	perHour := make([]float64, 0, len(days))
	for _, d := range days {
		perHour = append(perHour, d.PerHourEarnings)
	}
	summary.PerHourCI = stats.MeanCI(perHour)
	summary.PerSessionCI = stats.MeanCI(sessionEarnings)

	summary.Totals = totals(dailyDeliveries, dailySessions)

	logger.InfoContext(ctx, "pipeline completed",
		"duration", time.Since(start),
		"days", len(days),
		"locations", len(locations),
	)
	return summary, nil
}

func totals(daily []aggregate.DailyDeliveryTotal, sessions []aggregate.DailySessionTotal) report.Totals {
	t := report.Totals{Days: len(daily)}
	for _, d := range daily {
		t.Trips += d.Trips
		t.Items += d.Items
		t.Earnings += d.Earnings
		t.Tips += d.Tips
	}
	for _, s := range sessions {
		t.Hours += s.HoursWorked
		t.Miles += s.TotalMiles
	}
	return t
}
