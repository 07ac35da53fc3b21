package cli

import (
	"strings"
	"testing"
)

func TestRenderProgressBarClamps(t *testing.T) {
	tests := []struct {
		pct    float64
		filled int
		label  string
	}{
		{-20, 0, "-20.0%"},
		{0, 0, "0.0%"},
		{50, 5, "50.0%"},
		{100, 10, "100.0%"},
		{250, 10, "250.0%"},
	}
	for _, tt := range tests {
		got := RenderProgressBar(tt.pct, 10)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("RenderProgressBar(%v) filled %d cells, want %d", tt.pct, n, tt.filled)
		}
		if n := strings.Count(got, "█") + strings.Count(got, "░"); n != 10 {
			t.Errorf("RenderProgressBar(%v) width %d, want 10", tt.pct, n)
		}
		if !strings.HasSuffix(got, tt.label) {
			t.Errorf("RenderProgressBar(%v) = %q, want label %q", tt.pct, got, tt.label)
		}
	}
	if RenderProgressBar(50, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Recent",
		Headers: []string{"Date", "Amount"},
		Rows: [][]string{
			{"2024-01-03", "5.00"},
			{Separator},
			{"Total", "1,005.00"},
		},
	})
	for _, want := range []string{"Recent", "Date", "2024-01-03", "1,005.00", "┼"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "\n") != 8 {
		t.Errorf("table has %d lines:\n%s", strings.Count(out, "\n"), out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7, 14}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline should render nothing")
	}
}
