package field

import (
	"runtime"
	"sync"
)

// ParallelFor executes a kernel in parallel over the cell range [0, n),
// splitting it into contiguous chunks. Kernels must write disjoint cells;
// the chunking guarantees no two workers share an index. Ranges below
// minChunk run inline on the calling goroutine.
func ParallelFor(n, minChunk int, kernel func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if n <= minChunk || numWorkers <= 1 {
		kernel(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			kernel(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ForEachColumn runs a kernel once per column in parallel.
func ForEachColumn(g *Grid, kernel func(col int)) {
	ParallelFor(g.Columns, 32, func(start, end int) {
		for col := start; col < end; col++ {
			kernel(col)
		}
	})
}
