package charts

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/ternarybob/vitalog/internal/metrics"
	"github.com/ternarybob/vitalog/internal/models"
)

// intakeColors matches the calorie chart's category palette.
var intakeColors = map[string]string{
	"Breakfast": "#1b7837",
	"Lunch":     "#f7f7f7",
	"Dinner":    "#e7d4e8",
	"Snacks":    "#af8dc3",
	"Drinks":    "#762a83",
}

// renderCalorieChart writes the daily-calorie chart: stacked intake bars,
// exercise as a negative bar on the same stack, the reset-on-gap EMA line,
// and a horizontal target line.
func (s *Service) renderCalorieChart(records []*models.CalorieRecord, w io.Writer) error {
	dates := make([]string, len(records))
	net := make([]float64, len(records))
	for i, record := range records {
		dates[i] = record.Date
		net[i] = record.NetKcal
	}
	ema := metrics.EMA(net, s.config.EMASpan)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Calorie Intake and Exercise", Left: "center"}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "1900px",
			Height:          "1000px",
			BackgroundColor: "#343434",
			PageTitle:       "Daily Calories",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Caloric Intake / Burn"}),
	)

	bar.SetXAxis(dates)

	// Exercise first so the stack starts below zero, the intake categories
	// then build upward from the burned amount.
	exercise := make([]opts.BarData, len(records))
	for i, record := range records {
		var burned float64
		if record.ExerciseKcal != nil {
			burned = *record.ExerciseKcal
		}
		exercise[i] = opts.BarData{Value: -burned}
	}
	bar.AddSeries("Exercise", exercise,
		charts.WithBarChartOpts(opts.BarChart{Stack: "kcal"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#008837"}),
	)

	for _, category := range models.IntakeCategories {
		data := make([]opts.BarData, len(records))
		for i, record := range records {
			data[i] = opts.BarData{Value: record.CategoryTotals[category]}
		}
		bar.AddSeries(category, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "kcal"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: intakeColors[category]}),
		)
	}

	emaLine := charts.NewLine()
	emaLine.SetXAxis(dates)
	emaData := make([]opts.LineData, len(ema))
	for i, value := range ema {
		if math.IsNaN(value) {
			// echarts renders "-" as a gap, preserving the EMA reset
			// discontinuity in the chart.
			emaData[i] = opts.LineData{Value: "-"}
		} else {
			emaData[i] = opts.LineData{Value: value}
		}
	}
	emaLine.AddSeries("7-day EMA", emaData,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#008837", Width: 3}),
		charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  "Target",
			YAxis: s.config.TargetKcal,
		}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			LineStyle: &opts.LineStyle{Color: "red", Width: 3},
		}),
	)

	bar.Overlap(emaLine)

	return bar.Render(w)
}
