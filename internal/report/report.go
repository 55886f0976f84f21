// Package report renders the pipeline output: CSV summary tables, a JSON
// scalar summary, a plain-text report and an HTML charts page, all written
// into a per-run directory. Undefined values (NaN) are rendered distinctly
// from zero in every format.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Options configures a report run. RunID and GeneratedAt are injectable so
// tests can produce byte-identical output.
type Options struct {
	TopLocations int
	Bins         ChartBins
	RunID        string
	GeneratedAt  time.Time
}

// Writer renders a Summary into a run directory.
type Writer struct {
	dir  string
	opts Options
}

// NewWriter creates a report writer. The run directory is
// <reportsDir>/<YYYYMMDD>-<runID>.
func NewWriter(reportsDir string, opts Options) *Writer {
	dir := filepath.Join(reportsDir, fmt.Sprintf("%s-%s", opts.GeneratedAt.Format("20060102"), opts.RunID))
	return &Writer{dir: dir, opts: opts}
}

// Dir returns the run directory path.
func (w *Writer) Dir() string {
	return w.dir
}

// Write renders every report artifact. It fails on the first write error;
// a partially written run directory is left in place for inspection.
func (w *Writer) Write(s *Summary) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	csvWriter := NewCSVWriter(w.dir)

	type table struct {
		name    string
		headers []string
		records [][]string
	}

	tables := make([]table, 0, 5)
	headers, records := dailyTable(s.Daily)
	tables = append(tables, table{"daily_summary.csv", headers, records})
	headers, records = weeklyTable(s.Weekly)
	tables = append(tables, table{"weekly_summary.csv", headers, records})
	headers, records = monthlyTable(s.Monthly)
	tables = append(tables, table{"monthly_summary.csv", headers, records})
	headers, records = locationTable(s.Locations)
	tables = append(tables, table{"location_summary.csv", headers, records})
	headers, records = weekendTable(s.WeekendDays)
	tables = append(tables, table{"weekend_guarantee.csv", headers, records})

	for _, t := range tables {
		if err := csvWriter.WriteTable(t.name, t.headers, t.records); err != nil {
			return err
		}
	}

	if err := writeJSON(filepath.Join(w.dir, "summary.json"), s, w.opts.RunID, w.opts.GeneratedAt); err != nil {
		return err
	}
	if err := writeText(filepath.Join(w.dir, "summary.txt"), s, w.opts.TopLocations); err != nil {
		return err
	}
	if err := writeCharts(filepath.Join(w.dir, "charts.html"), s, w.opts.Bins); err != nil {
		return err
	}

	slog.Info("report written",
		slog.String("dir", w.dir),
		slog.String("run_id", w.opts.RunID))
	return nil
}
