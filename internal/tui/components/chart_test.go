package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/finnova/internal/tui/theme"
)

func TestChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "0.50"},
		{42, "42"},
		{1000, "1k"},
		{1500, "1.5k"},
		{2_000_000, "2M"},
	}
	for _, tt := range tests {
		if got := ChartLabel(tt.in); got != tt.want {
			t.Errorf("ChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBarChartHeight(t *testing.T) {
	out := BarChart([]float64{1, 5, 0, 3}, theme.Active.Expense, 40, 6)
	if got := strings.Count(out, "\n") + 1; got != 7 {
		t.Errorf("chart has %d lines, want 7", got)
	}
	if !strings.Contains(out, "└") {
		t.Error("chart missing x axis")
	}
}

func TestHorizontalBarsScale(t *testing.T) {
	out := HorizontalBars([]HBar{
		{Label: "Food", Value: 15, Text: "15.00"},
		{Label: "Transport", Value: 3, Text: "3.00"},
	}, theme.Active.Expense, 60)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	food := strings.Count(lines[0], "█")
	transport := strings.Count(lines[1], "█")
	if food <= transport || transport == 0 {
		t.Errorf("bar lengths food=%d transport=%d", food, transport)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Groceries", 5); got != "Groc…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Food", 5); got != "Food" {
		t.Errorf("Truncate = %q", got)
	}
}

func TestClampPercent(t *testing.T) {
	for in, want := range map[float64]float64{-5: 0, 0: 0, 42: 42, 100: 100, 180: 100} {
		if got := ClampPercent(in); got != want {
			t.Errorf("ClampPercent(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestProgressBarLabelUnclamped(t *testing.T) {
	out := GoalBar(150, 20)
	if !strings.Contains(out, "150.0%") {
		t.Errorf("GoalBar(150) = %q, want real percentage in label", out)
	}
}
