// Package forcing provides the input sources that refresh a simulation's
// input fields each step: fixed values, a diurnal cycle, and time series
// loaded from CSV.
package forcing

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
)

// Constant holds one input field at a fixed value.
type Constant struct {
	Name  string // qualified variable name
	Value float64
}

func (c Constant) Refresh(s *state.Container, clock *field.Clock) error {
	f, err := s.Resolve(c.Name)
	if err != nil {
		return err
	}
	f.Fill(c.Value)
	return nil
}

// Diurnal drives one input with a daily cosine cycle peaking at the Peak
// hour of day.
type Diurnal struct {
	Name      string
	Mean      float64
	Amplitude float64
	Peak      float64 // hour of day of the maximum, e.g. 14
}

func (d Diurnal) Refresh(s *state.Container, clock *field.Clock) error {
	f, err := s.Resolve(d.Name)
	if err != nil {
		return err
	}
	now := clock.Now()
	hour := float64(now.Hour()) + float64(now.Minute())/60
	f.Fill(d.Mean + d.Amplitude*math.Cos(2*math.Pi*(hour-d.Peak)/24))
	return nil
}

// Series replays a piecewise-linear time series keyed by elapsed seconds.
// Before the first sample the first value holds; after the last, the last.
type Series struct {
	Name   string
	Times  []float64 // elapsed seconds, strictly increasing
	Values []float64
}

func (ts *Series) Refresh(s *state.Container, clock *field.Clock) error {
	f, err := s.Resolve(ts.Name)
	if err != nil {
		return err
	}
	f.Fill(ts.At(clock.Elapsed()))
	return nil
}

// At interpolates the series at elapsed seconds t.
func (ts *Series) At(t float64) float64 {
	n := len(ts.Times)
	if n == 0 {
		return 0
	}
	if t <= ts.Times[0] {
		return ts.Values[0]
	}
	if t >= ts.Times[n-1] {
		return ts.Values[n-1]
	}
	i := sort.SearchFloat64s(ts.Times, t)
	// Times[i-1] < t <= Times[i]
	t0, t1 := ts.Times[i-1], ts.Times[i]
	v0, v1 := ts.Values[i-1], ts.Values[i]
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

// LoadSeries reads a two-column CSV of (elapsed seconds, value) rows. A
// header row is skipped when its first cell is not numeric.
func LoadSeries(path, name string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("forcing: reading %s: %w", path, err)
	}

	ts := &Series{Name: name}
	for rowNum, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("forcing: %s row %d: need two columns", path, rowNum+1)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			if rowNum == 0 {
				continue // header
			}
			return nil, fmt.Errorf("forcing: %s row %d: bad time %q", path, rowNum+1, row[0])
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("forcing: %s row %d: bad value %q", path, rowNum+1, row[1])
		}
		if n := len(ts.Times); n > 0 && t <= ts.Times[n-1] {
			return nil, fmt.Errorf("forcing: %s row %d: times must increase", path, rowNum+1)
		}
		ts.Times = append(ts.Times, t)
		ts.Values = append(ts.Values, v)
	}
	if len(ts.Times) == 0 {
		return nil, fmt.Errorf("forcing: %s holds no samples", path)
	}
	return ts, nil
}
