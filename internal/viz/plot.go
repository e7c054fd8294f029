package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/esmtools/terrago/internal/field"
)

// PlotSeries renders each recorded series as an ascii graph, one below
// the other, in sorted name order.
func PlotSeries(series map[string][]float64, width, height int) string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		samples := series[name]
		if len(samples) < 2 {
			continue
		}
		graph := asciigraph.Plot(samples,
			asciigraph.Width(width),
			asciigraph.Height(height),
			asciigraph.Caption(name),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Profile renders one column of a subsurface field as a depth table,
// shallowest layer first.
func Profile(f *field.Field, col int) string {
	g := f.Grid()
	if f.Shape != field.Column || col < 0 || col >= g.Columns {
		return ""
	}

	lo, hi := f.At(col, 0), f.At(col, 0)
	for k := 0; k < g.Levels; k++ {
		v := f.At(col, k)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo

	var b strings.Builder
	for k := 0; k < g.Levels; k++ {
		v := f.At(col, k)
		frac := 0.5
		if span > 0 {
			frac = (v - lo) / span
		}
		bar := strings.Repeat("▊", 1+int(frac*19))
		fmt.Fprintf(&b, "%6.2fm %10.3g %s\n", g.Depth(k), v, bar)
	}
	return b.String()
}
