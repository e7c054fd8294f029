package forcing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esmtools/terrago/internal/engine"
	"github.com/esmtools/terrago/internal/field"
	"github.com/esmtools/terrago/internal/state"
	"github.com/esmtools/terrago/internal/vars"
)

type inputOnly struct {
	engine.UnimplementedComponent
}

func (inputOnly) DeclareVariables() []vars.Descriptor {
	return []vars.Descriptor{
		{Name: "air_temperature", Shape: field.Lateral, Unit: "degC", Role: vars.Input},
	}
}

func inputContainer(t *testing.T) (*state.Container, *field.Clock) {
	t.Helper()
	reg, err := engine.BuildRegistry([]engine.Named{{Name: "f", Component: inputOnly{}}})
	require.NoError(t, err)

	g, err := field.UniformGrid(2, 1, 0.1)
	require.NoError(t, err)

	clock := field.NewClock(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), 3600)
	c, err := state.New(reg, g, clock, state.Options{})
	require.NoError(t, err)
	return c, clock
}

func TestConstantRefresh(t *testing.T) {
	c, clock := inputContainer(t)

	src := Constant{Name: "air_temperature", Value: 12.5}
	require.NoError(t, src.Refresh(c, clock))

	f, err := c.Field("air_temperature")
	require.NoError(t, err)
	assert.Equal(t, 12.5, f.Data[0])
	assert.Equal(t, 12.5, f.Data[1])
}

func TestDiurnalPeaksAtPeakHour(t *testing.T) {
	c, clock := inputContainer(t)
	src := Diurnal{Name: "air_temperature", Mean: 10, Amplitude: 5, Peak: 14}
	f, err := c.Field("air_temperature")
	require.NoError(t, err)

	// Starting at midnight with hourly steps, hour 14 is the maximum.
	maxVal, maxHour := -1e9, -1
	for h := 0; h < 24; h++ {
		require.NoError(t, src.Refresh(c, clock))
		if f.Data[0] > maxVal {
			maxVal, maxHour = f.Data[0], h
		}
		clock.Advance()
	}
	assert.Equal(t, 14, maxHour)
	assert.InDelta(t, 15.0, maxVal, 1e-9)
}

func TestSeriesInterpolation(t *testing.T) {
	ts := &Series{
		Name:   "air_temperature",
		Times:  []float64{0, 100, 200},
		Values: []float64{1, 3, 3},
	}

	assert.Equal(t, 1.0, ts.At(-50), "holds first value before start")
	assert.Equal(t, 2.0, ts.At(50), "interpolates linearly")
	assert.Equal(t, 3.0, ts.At(150))
	assert.Equal(t, 3.0, ts.At(500), "holds last value after end")
}

func TestLoadSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "air.csv")
	data := "time,value\n0,5.0\n3600,7.5\n7200,6.0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	ts, err := LoadSeries(path, "air_temperature")
	require.NoError(t, err)
	assert.Len(t, ts.Times, 3)
	assert.InDelta(t, 6.25, ts.At(1800), 1e-9)

	c, clock := inputContainer(t)
	clock.Advance() // elapsed 3600
	require.NoError(t, ts.Refresh(c, clock))
	f, _ := c.Field("air_temperature")
	assert.InDelta(t, 7.5, f.Data[0], 1e-9)
}

func TestLoadSeriesRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"short_row.csv":  "0\n",
		"bad_value.csv":  "0,x\n",
		"decreasing.csv": "0,1\n100,2\n50,3\n",
		"empty.csv":      "time,value\n",
	}
	for name, data := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		_, err := LoadSeries(path, "x")
		assert.Error(t, err, name)
	}
}
