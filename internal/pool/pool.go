// Package pool implements a fixed set of workers executing jobs from a shared unbounded queue.
package pool

import (
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoWorkers = errors.New("pool: workers count must be positive")
	ErrClosed    = errors.New("pool: submission to a closed pool")
)

// Job is a unit of work. It is owned by the queue until a worker claims it.
type Job func()

// Stats is a snapshot of the pool counters. Every submitted job eventually contributes
// exactly once either to Completed or to Panicked.
type Stats struct {
	Workers   int
	Queued    int
	Submitted uint64
	Completed uint64
	Panicked  uint64
}

// Pool runs submitted jobs on a fixed number of goroutines. Jobs are claimed in FIFO order,
// however there are no ordering guarantees between jobs running on different workers.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Job
	closed  bool
	workers int
	wg      sync.WaitGroup
	log     logrus.FieldLogger

	submitted, completed, panicked atomic.Uint64
}

// New starts the workers. Nil logger results in the logrus standard one.
func New(workers int, log logrus.FieldLogger) (*Pool, error) {
	if workers <= 0 {
		return nil, ErrNoWorkers
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	p := &Pool{
		workers: workers,
		log:     log,
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)

	for i := range workers {
		go p.worker(i)
	}

	return p, nil
}

// Submit enqueues the job and returns immediately.
func (p *Pool) Submit(job Job) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}

	p.queue = append(p.queue, job)
	p.submitted.Add(1)
	p.mu.Unlock()
	p.cond.Signal()

	return nil
}

// Close stops accepting new jobs, waits until every already queued job is done and joins
// the workers. Calling it more than once is fine, however it must never be called from
// inside a job, as it would wait for itself.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	queued := len(p.queue)
	p.mu.Unlock()

	return Stats{
		Workers:   p.workers,
		Queued:    queued,
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		job, ok := p.next()
		if !ok {
			return
		}

		p.run(id, job)
	}
}

// next blocks until there's a job to run. The queue is drained before a closed pool lets
// the workers go.
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 {
		if p.closed {
			return nil, false
		}

		p.cond.Wait()
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	return job, true
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Add(1)
			p.log.WithFields(logrus.Fields{
				"worker": id,
				"panic":  r,
				"stack":  string(debug.Stack()),
			}).Error("job panicked")
			return
		}

		p.completed.Add(1)
	}()

	job()
}
