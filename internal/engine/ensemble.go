package engine

import (
	"context"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Ensemble runs independent simulation members in parallel. Members are
// built by the factory, one per goroutine, and should share one registry
// via NewFromRegistry; containers are per-member so no state is shared.
type Ensemble struct {
	Members int
	Build   func(member int) (*Simulator, error)
}

// Run executes all members concurrently and collects their results in
// member order. The first member error aborts the whole ensemble.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.Members)
	errs := make([]error, e.Members)

	var wg sync.WaitGroup
	for i := 0; i < e.Members; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim, err := e.Build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = sim.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary holds across-member statistics of the final recorded value of
// each series.
type Summary struct {
	Mean map[string]float64
	Std  map[string]float64
}

// Summarize computes the ensemble mean and standard deviation of the last
// recorded sample of every series present in all results.
func Summarize(results []*Result) Summary {
	sum := Summary{
		Mean: make(map[string]float64),
		Std:  make(map[string]float64),
	}
	if len(results) == 0 {
		return sum
	}

	for name := range results[0].Series {
		finals := make([]float64, 0, len(results))
		for _, r := range results {
			series, ok := r.Series[name]
			if !ok || len(series) == 0 {
				continue
			}
			finals = append(finals, series[len(series)-1])
		}
		if len(finals) == 0 {
			continue
		}
		sum.Mean[name] = stat.Mean(finals, nil)
		sum.Std[name] = stat.StdDev(finals, nil)
	}
	return sum
}
