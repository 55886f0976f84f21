package report

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// histogram bins finite sample values into fixed-width buckets from zero.
// NaN entries (absent cells, undefined ratios) are skipped, not counted as
// zero.
func histogram(values []float64, binWidth float64) (labels []string, counts []opts.BarData) {
	maxBin := -1
	binned := make(map[int]int)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		bin := int(v / binWidth)
		binned[bin]++
		if bin > maxBin {
			maxBin = bin
		}
	}

	for bin := 0; bin <= maxBin; bin++ {
		lo := float64(bin) * binWidth
		labels = append(labels, fmt.Sprintf("%g–%g", lo, lo+binWidth))
		counts = append(counts, opts.BarData{Value: binned[bin]})
	}
	return labels, counts
}

func histogramChart(title, xName string, values []float64, binWidth float64) *charts.Bar {
	labels, counts := histogram(values, binWidth)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries("count", counts)
	return bar
}

func weekdayEarningsChart(s *Summary) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(s.Daily))
	for _, d := range s.Daily {
		data = append(data, opts.ScatterData{Value: []interface{}{d.WeekdayNum, d.Earnings}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily earnings by weekday", Subtitle: "Sunday=1 … Saturday=7"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "weekday", Min: 0, Max: 8}),
		charts.WithYAxisOpts(opts.YAxis{Name: "earnings"}),
	)
	scatter.AddSeries("days", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	return scatter
}

// ChartBins configures the histogram bucket widths.
type ChartBins struct {
	PickupHours   float64
	DistanceMiles float64
	RatePerHour   float64
}

// writeCharts renders the four distribution charts into one HTML page.
func writeCharts(path string, s *Summary, bins ChartBins) error {
	perHourRates := make([]float64, 0, len(s.Daily))
	for _, d := range s.Daily {
		perHourRates = append(perHourRates, d.DeliveriesPerHour)
	}

	page := components.NewPage()
	page.AddCharts(
		histogramChart("Pickup time of day", "hour of day", s.PickupClocks, bins.PickupHours),
		histogramChart("Trip distance", "miles", s.TripMiles, bins.DistanceMiles),
		histogramChart("Deliveries per hour", "deliveries/hour", perHourRates, bins.RatePerHour),
		weekdayEarningsChart(s),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create charts file: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}
