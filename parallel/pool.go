package parallel

import (
	"runtime"
	"sync"
)

// DefaultWorkers is used when the runtime cannot report its parallelism.
const DefaultWorkers = 8

type (
	WorkerFunc func(func())
	CancelFunc func()
)

// Pool is a fixed set of long-lived worker goroutines. Start it once and
// hand it batches with Run; the workers are reused for every batch.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Close   CancelFunc
}

// Start launches numWorkers goroutines. Values below 1 select
// runtime.GOMAXPROCS, or DefaultWorkers if that is unusable. A single worker
// pool runs work inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers < 1 {
		numWorkers = DefaultWorkers
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Close: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Close = sync.OnceFunc(func() {
			close(workChan)
			pool.wg.Wait()
		})
	}

	return pool
}

// Workers returns the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every task on the pool, waits for all of them and reports
// whether all returned true. Run may be called from several goroutines at
// once; each call waits only for its own tasks. Run must not be called
// after Close.
func (p *Pool) Run(tasks ...func() bool) bool {
	results := make([]bool, len(tasks))

	var batch sync.WaitGroup
	for i, task := range tasks {
		batch.Add(1)
		p.Do(func() {
			defer batch.Done()
			results[i] = task()
		})
	}
	batch.Wait()

	ok := true
	for _, r := range results {
		ok = ok && r
	}
	return ok
}
