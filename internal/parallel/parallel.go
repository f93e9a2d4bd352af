package parallel

import (
	"runtime"
	"sync"
)

// Grain is the smallest range handed to a worker. Loops shorter than this
// run on the calling goroutine.
const Grain = 2048

// For splits [0, n) into contiguous chunks and runs fn on each chunk,
// returning once all chunks are done.
func For(n int, fn func(start, end int)) {
	ForGrain(n, Grain, fn)
}

// ForGrain is For with an explicit minimum chunk size.
func ForGrain(n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if grain < 1 {
		grain = 1
	}
	workers := runtime.GOMAXPROCS(0)
	if limit := (n + grain - 1) / grain; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
