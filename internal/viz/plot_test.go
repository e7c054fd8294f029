package viz

import (
	"strings"
	"testing"

	"github.com/esmtools/terrago/internal/field"
)

func TestSparkline(t *testing.T) {
	s := Sparkline([]float64{0, 1, 2, 3}, 10)
	if len([]rune(s)) != 4 {
		t.Fatalf("expected 4 runes, got %q", s)
	}
	if !strings.HasPrefix(s, "▁") || !strings.HasSuffix(s, "█") {
		t.Errorf("expected rising ramp, got %q", s)
	}

	// Longer than width: keeps the tail.
	s = Sparkline([]float64{9, 9, 0, 1}, 2)
	if len([]rune(s)) != 2 {
		t.Errorf("expected truncation to 2 runes, got %q", s)
	}

	if Sparkline(nil, 10) != "" {
		t.Error("expected empty sparkline for no data")
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(1.5, 4); got != "████" {
		t.Errorf("expected full bar, got %q", got)
	}
	if got := ProgressBar(-0.2, 4); got != "░░░░" {
		t.Errorf("expected empty bar, got %q", got)
	}
}

func TestProfileListsEveryLevel(t *testing.T) {
	g, err := field.UniformGrid(2, 3, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	f := g.Allocate(field.Column, nil)
	for k := 0; k < 3; k++ {
		f.Set(0, k, float64(k))
	}

	out := Profile(f, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 profile lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "0.25m") {
		t.Errorf("expected first layer midpoint depth, got %q", lines[0])
	}

	if Profile(f, 5) != "" {
		t.Error("expected empty profile for out-of-range column")
	}
}
