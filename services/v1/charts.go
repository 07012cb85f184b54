package v1

import (
	"errors"
	"io"

	"atm-monitor/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoChartData is returned when every value of a chart would be zero.
var ErrNoChartData = errors.New("no data to chart")

var statusColors = map[string]drawing.Color{
	"UP":     {R: 46, G: 125, B: 50, A: 255},
	"DOWN":   {R: 211, G: 47, B: 47, A: 255},
	"PARKED": {R: 249, G: 168, B: 37, A: 255},
}

// RenderStatusChart draws the UP/DOWN/PARKED split as a PNG pie.
func RenderStatusChart(w io.Writer, s *models.Summary) error {
	counts := []struct {
		label string
		n     int
	}{
		{"UP", s.AtmStatus.Up},
		{"DOWN", s.AtmStatus.Down},
		{"PARKED", s.AtmStatus.Parked},
	}

	var values []chart.Value
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: c.label,
			Value: float64(c.n),
			Style: chart.Style{FillColor: statusColors[c.label]},
		})
	}
	if len(values) == 0 {
		return ErrNoChartData
	}

	pie := chart.PieChart{
		Title:  "ATM Status " + s.Date,
		Width:  512,
		Height: 512,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

// RenderFaultChart draws the per-category DOWN counts as a PNG bar chart.
func RenderFaultChart(w io.Writer, s *models.Summary) error {
	var bars []chart.Value
	total := 0
	for _, key := range models.FaultCategories {
		n := s.Faults[key]
		total += n
		bars = append(bars, chart.Value{Label: TitleFromKey(key), Value: float64(n)})
	}
	if total == 0 {
		return ErrNoChartData
	}

	graph := chart.BarChart{
		Title: "Faults " + s.Date,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:      900,
		Height:     420,
		BarWidth:   80,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Style: chart.Style{StrokeColor: drawing.ColorBlack, FontSize: 10},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
