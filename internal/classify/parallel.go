package classify

import (
	"runtime"
	"sync"

	"github.com/proteovis/proteovis/internal/data"
)

// workItem holds one differential row queued for classification.
type workItem struct {
	seq int
	row data.Row
}

// workResult holds the per-row classification output.
type workResult struct {
	seq int
	rc  rowClass
}

// parallelClassify classifies work items using a pool of workers.
// Results arrive on the returned channel in completion order; use
// orderedCollect to consume them in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (e *Engine) parallelClassify(items <-chan workItem, form data.DifferentialForm, settings data.Settings) <-chan workResult {
	workers := e.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- workResult{
					seq: item.seq,
					rc:  e.classifyRow(item.row, form, settings),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until the next expected sequence
// number is available. Blocks until the results channel is closed.
func orderedCollect(results <-chan workResult, fn func(rowClass)) {
	pending := make(map[int]workResult)
	nextSeq := 0

	for r := range results {
		pending[r.seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr.rc)
		}
	}
}
