// Package parallel runs independent render jobs across a fixed set of
// workers. One job is one file; the pipeline inside a job stays
// single-threaded.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits one job to the pool.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted jobs finish; done also closes the pool.
	WaitFunc func(done bool)
	// CancelFunc closes the pool so workers drain and exit.
	CancelFunc func()
)

// Pool distributes jobs over numWorkers goroutines. A pool of one worker
// runs jobs inline on the submitting goroutine.
type Pool struct {
	wg     sync.WaitGroup
	jobs   chan func()
	cancel func()
}

// Start launches the workers. numWorkers below 1 means one worker per
// available CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if numWorkers == 1 {
		return p
	}

	p.jobs = make(chan func(), numWorkers)
	p.cancel = sync.OnceFunc(func() { close(p.jobs) })
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.jobs {
				f()
			}
		})
	}

	return p
}

// Do submits one job, blocking while the queue is full.
func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.jobs <- f
}

// Wait blocks until every submitted job has run. done closes the pool first,
// so no further jobs can be submitted after a Wait(true).
func (p *Pool) Wait(done bool) {
	if p.jobs == nil {
		return
	}
	if done {
		p.Cancel()
	}
	p.wg.Wait()
}

// Cancel closes the pool. Workers finish the jobs already queued and exit.
func (p *Pool) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}
