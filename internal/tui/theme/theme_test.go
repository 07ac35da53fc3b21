package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("catppuccin-mocha"); got.Name != "catppuccin-mocha" {
		t.Errorf("ByName = %q", got.Name)
	}
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got.Name, FlexokiDark.Name)
	}
}

func TestUsageColor(t *testing.T) {
	th := FlexokiDark
	tests := []struct {
		pct  float64
		want string
	}{
		{10, string(th.Income)},
		{75, string(th.Highlight)},
		{95, string(th.Warn)},
		{100, string(th.Warn)},
		{101, string(th.Expense)},
	}
	for _, tt := range tests {
		if got := string(th.UsageColor(tt.pct)); got != tt.want {
			t.Errorf("UsageColor(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}
