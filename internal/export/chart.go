package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/theirongolddev/finnova/internal/model"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

// WriteBreakdownPie renders the expense breakdown as a PNG pie chart.
// Categories with nothing spent are left out.
func WriteBreakdownPie(w io.Writer, b model.Breakdown, currency string) error {
	var total float64
	for _, a := range b.Amounts {
		if a > 0 {
			total += a
		}
	}
	if total == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, b.Len())
	for i, name := range b.Categories {
		amount := b.Amounts[i]
		if amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s %.0f (%.1f%%)", name, currency, amount, amount/total*100),
			Value: amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:      "Expense Breakdown",
		Width:      800,
		Height:     800,
		Values:     values,
		Background: background,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering breakdown chart: %w", err)
	}
	return nil
}

// WriteTotalsBar renders income, expenses and balance as a PNG bar chart.
// Bars grow from zero, downward for a negative balance.
func WriteTotalsBar(w io.Writer, t model.Totals, currency string) error {
	if t.Income == 0 && t.Expenses == 0 {
		return ErrNoData
	}

	bar := func(label string, v float64, color drawing.Color) chart.Value {
		return chart.Value{
			Label: fmt.Sprintf("%s: %s %.0f", label, currency, v),
			Value: v,
			Style: chart.Style{
				StrokeColor: color,
				FillColor:   color,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		}
	}

	graph := chart.BarChart{
		Title: "Income vs Expenses",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:        900,
		Height:       600,
		BarWidth:     120,
		Background:   background,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: math.Min(0, t.Balance),
				Max: math.Max(t.Income, t.Expenses),
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: []chart.Value{
			bar("Income", t.Income, chart.ColorGreen),
			bar("Expenses", t.Expenses, chart.ColorRed),
			bar("Balance", t.Balance, chart.ColorBlue),
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering totals chart: %w", err)
	}
	return nil
}
