package probe

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Result is one file's frame count.
type Result struct {
	Index    int
	Filename string
	Frames   int
}

type countJob struct {
	index int
	path  string
}

type countResult struct {
	Result
	err error
}

// CountAll probes every file with a bounded worker pool and returns results
// in input order. The first failure aborts the run; a partial counts table
// would silently corrupt downstream label alignment.
func CountAll(ctx context.Context, files []string, concurrency int) ([]Result, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if concurrency <= 0 {
		concurrency = 60
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	workChan := make(chan countJob, len(files))
	resultChan := make(chan countResult, len(files))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range workChan {
				select {
				case <-ctx.Done():
					resultChan <- countResult{err: ctx.Err()}
					continue
				default:
				}

				frames, err := CountFrames(job.path)
				resultChan <- countResult{
					Result: Result{Index: job.index, Filename: job.path, Frames: frames},
					err:    err,
				}
			}
		}()
	}

	for i, path := range files {
		workChan <- countJob{index: i, path: path}
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(files))
	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("frame counting failed: %w", result.err)
		}
		if result.err == nil {
			results = append(results, result.Result)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// restore input order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results, nil
}
