package charts

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/ternarybob/vitalog/internal/metrics"
	"github.com/ternarybob/vitalog/internal/models"
)

// renderMassFatChart writes the mass/body-fat chart: mass on the left axis,
// body fat on the right, each with a dashed least-squares trend line.
func (s *Service) renderMassFatChart(records []*models.BodyMeasurementRecord, w io.Writer) error {
	dates := make([]string, len(records))
	mass := make([]float64, len(records))
	fat := make([]float64, len(records))
	index := make([]float64, len(records))
	for i, record := range records {
		dates[i] = record.Date
		index[i] = float64(i)
		mass[i] = math.NaN()
		fat[i] = math.NaN()
		if record.MassKg != nil {
			mass[i] = *record.MassKg
		}
		if record.BodyFatPct != nil {
			fat[i] = *record.BodyFatPct
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mass and Body Fat Percentage Over Time", Left: "center"}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:           "1990px",
			Height:          "1000px",
			BackgroundColor: "#343434",
			PageTitle:       "Mass and Body Fat",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mass (KG)", Type: "value", Scale: opts.Bool(true)}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Body Fat (%)", Type: "value", Position: "right", Scale: opts.Bool(true)})

	line.SetXAxis(dates)

	line.AddSeries("Mass (KG)", lineData(mass),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#a6dba0", Width: 4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#008837"}),
	)
	line.AddSeries("Mass Trend", trendData(index, mass),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#008837", Width: 1, Type: "dashed"}),
	)

	line.AddSeries("Body Fat %", lineData(fat),
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#c2a5cf", Width: 4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#7b3294"}),
	)
	line.AddSeries("Fat Trend", trendData(index, fat),
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#c2a5cf", Width: 2, Type: "dashed"}),
	)

	return line.Render(w)
}

// lineData converts a value series to chart points, mapping NaN to gaps.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, value := range values {
		if math.IsNaN(value) {
			data[i] = opts.LineData{Value: "-"}
		} else {
			data[i] = opts.LineData{Value: value}
		}
	}
	return data
}

// trendData evaluates the least-squares fit of values at every position.
// Returns gap points when the fit is undefined (fewer than two samples).
func trendData(index, values []float64) []opts.LineData {
	slope, intercept := metrics.LinearTrend(index, values)
	data := make([]opts.LineData, len(index))
	for i := range index {
		if math.IsNaN(slope) {
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: slope*index[i] + intercept}
	}
	return data
}
