package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esmtools/terrago/internal/engine"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Steps: 2,
		Times: []float64{0, 1800, 3600},
		Series: map[string][]float64{
			"soil.temperature": {5.0, 5.2, 5.5},
			"soil.saturation":  {0.5, 0.49, 0.48},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save("temperate", "heun", 4, 10, 1800, sampleResult())
	require.NoError(t, err)
	assert.Contains(t, runID, "temperate_")

	meta, err := store.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "temperate", meta.Scenario)
	assert.Equal(t, "heun", meta.Integrator)
	assert.Equal(t, 2, meta.Steps)
	assert.Equal(t, 4, meta.Columns)
	assert.Equal(t, 5.5, meta.Final["soil.temperature"])

	times, series, err := store.LoadSeries(runID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1800, 3600}, times)
	assert.Equal(t, []float64{0.5, 0.49, 0.48}, series["soil.saturation"])
	assert.Equal(t, []float64{5.0, 5.2, 5.5}, series["soil.temperature"])
}

func TestListRuns(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := store.Save("drought", "euler", 2, 5, 600, sampleResult())
	require.NoError(t, err)
	second, err := store.Save("monsoon", "heun", 2, 5, 600, sampleResult())
	require.NoError(t, err)

	runs, err = store.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := New("/nonexistent/terrago-store")
	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRunFails(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())
	_, err := store.Load("no_such_run")
	assert.Error(t, err)
	_, _, err = store.LoadSeries("no_such_run")
	assert.Error(t, err)
}
