package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{0, 40, 100, 150, -5} {
		bar := ProgressBar{Label: "Progress", Percent: pct, Width: 40}.View()
		if w := lipgloss.Width(bar); w != 40 {
			t.Errorf("percent %v: width = %d, want 40", pct, w)
		}
	}
}

func TestProgressBar_Percent(t *testing.T) {
	bar := ProgressBar{Percent: 66.6, Width: 30}.View()
	if !strings.Contains(bar, "67%") {
		t.Errorf("expected rounded percent in %q", bar)
	}
}

func TestHearts(t *testing.T) {
	tests := []struct {
		remaining, total int
		full, empty      int
	}{
		{5, 5, 5, 0},
		{3, 5, 3, 2},
		{0, 5, 0, 5},
		{-1, 5, 0, 5},
		{9, 5, 5, 0},
	}
	for _, tt := range tests {
		got := Hearts(tt.remaining, tt.total)
		if n := strings.Count(got, "♥"); n != tt.full {
			t.Errorf("Hearts(%d, %d): %d full, want %d", tt.remaining, tt.total, n, tt.full)
		}
		if n := strings.Count(got, "♡"); n != tt.empty {
			t.Errorf("Hearts(%d, %d): %d empty, want %d", tt.remaining, tt.total, n, tt.empty)
		}
	}
}

func TestOptions(t *testing.T) {
	out := Options([]string{"dog", "cat"})
	if !strings.Contains(out, "1)") || !strings.Contains(out, "dog") || !strings.Contains(out, "2)") {
		t.Errorf("unexpected options output %q", out)
	}
}

func TestFeedback(t *testing.T) {
	if !strings.Contains(Feedback(true, "Perfect!"), "✓ Perfect!") {
		t.Error("missing success mark")
	}
	if !strings.Contains(Feedback(false, "Not quite."), "✗ Not quite.") {
		t.Error("missing failure mark")
	}
}
