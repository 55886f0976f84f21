package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"dashpulse/internal/config"
	"dashpulse/internal/loader"
	"dashpulse/internal/pipeline"
	"dashpulse/internal/report"
)

func main() {
	deliveriesPath := flag.String("deliveries", "", "delivery history workbook (defaults to data/downloads/deliveries.xlsx)")
	guaranteesPath := flag.String("guarantees", "", "guaranteed earnings workbook (defaults to data/downloads/guaranteed_earnings.xlsx)")
	hoursPath := flag.String("hours", "", "hours and mileage workbook (defaults to data/downloads/hours_mileage.xlsx)")
	outputDir := flag.String("out", "", "output directory for report runs (defaults to data/reports)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Logging)

	// Initialize paths
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	// Flags override the well-known workbook locations
	if *deliveriesPath == "" {
		*deliveriesPath = paths.DeliveriesFile
	}
	if *guaranteesPath == "" {
		*guaranteesPath = paths.GuaranteesFile
	}
	if *hoursPath == "" {
		*hoursPath = paths.HoursFile
	}
	if *outputDir == "" {
		*outputDir = paths.ReportsDir
	}

	for _, path := range []string{*deliveriesPath, *guaranteesPath, *hoursPath} {
		if !config.FileExists(path) {
			slog.Error("Input workbook not found",
				"path", path,
				"hint", "Place the exported spreadsheets in data/downloads or pass explicit flags")
			os.Exit(1)
		}
	}

	ctx := context.Background()

	slog.Info("Loading delivery history", "path", *deliveriesPath)
	deliveries, err := loader.LoadDeliveries(*deliveriesPath)
	if err != nil {
		slog.Error("Failed to load delivery history", "error", err)
		os.Exit(1)
	}

	slog.Info("Loading guaranteed earnings", "path", *guaranteesPath)
	guarantees, err := loader.LoadGuarantees(*guaranteesPath)
	if err != nil {
		slog.Error("Failed to load guaranteed earnings", "error", err)
		os.Exit(1)
	}

	slog.Info("Loading hours and mileage", "path", *hoursPath)
	sessions, err := loader.LoadSessions(*hoursPath)
	if err != nil {
		slog.Error("Failed to load hours and mileage", "error", err)
		os.Exit(1)
	}

	summary, err := pipeline.Run(ctx, pipeline.Inputs{
		Deliveries: deliveries,
		Guarantees: guarantees,
		Sessions:   sessions,
	})
	if err != nil {
		slog.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	writer := report.NewWriter(*outputDir, report.Options{
		TopLocations: cfg.Report.TopLocations,
		Bins: report.ChartBins{
			PickupHours:   cfg.Report.PickupBinHours,
			DistanceMiles: cfg.Report.DistanceBinMiles,
			RatePerHour:   cfg.Report.RatePerHourBin,
		},
		RunID:       uuid.NewString()[:8],
		GeneratedAt: time.Now(),
	})
	if err := writer.Write(summary); err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	slog.Info("Report generated successfully", "dir", writer.Dir())
	fmt.Printf("Report written to %s\n", writer.Dir())
}

// setupLogger replaces the default slog logger according to the logging
// configuration.
func setupLogger(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
