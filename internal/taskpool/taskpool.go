// Package taskpool implements the fixed-size worker pool that multiplexes
// session ticks (and any other background work) onto a small set of OS
// threads: a mutex-and-condition-variable pool fed by a growable
// ring-buffer queue of closures, per spec.
package taskpool

import (
	"runtime"
	"sync"

	"emberd/internal/ringbuffer"
)

// Task is one unit of work submitted to the pool. A task that panics or
// returns is the task's own responsibility to recover from: the pool never
// observes task failures, it only dequeues and invokes.
type Task func()

// Pool is a fixed-size set of worker goroutines pulling Tasks FIFO off a
// shared queue. The queue and the running flag are guarded by one mutex;
// the condition variable is used strictly with that mutex and tolerates
// spurious wake-ups, since the worker loop re-tests the queue on every
// iteration.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   *ringbuffer.Buffer[Task]
	running bool
	wg      sync.WaitGroup
}

// New spawns n worker goroutines, each blocked on the pool's condition
// variable until work arrives. n <= 0 defaults to runtime.NumCPU().
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{
		queue:   ringbuffer.New[Task](0),
		running: true,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// Add enqueues fn to be run by some worker, FIFO relative to other Add
// calls, and wakes one waiting worker.
func (p *Pool) Add(fn Task) {
	p.mu.Lock()
	p.queue.PushBack(fn)
	p.mu.Unlock()
	p.cond.Signal()
}

// worker is the pool mutex-guarded loop: pop front if nonempty, release
// the mutex, invoke, reacquire; otherwise wait on the condition if still
// running, else return.
func (p *Pool) worker() {
	defer p.wg.Done()
	p.mu.Lock()
	for {
		task, ok := p.queue.PopFront()
		if ok {
			p.mu.Unlock()
			task()
			p.mu.Lock()
			continue
		}
		if !p.running {
			p.mu.Unlock()
			return
		}
		p.cond.Wait()
	}
}

// Close stops the pool: sets running false, broadcasts to wake every
// worker, and joins them all before returning. Each worker checks running
// only after its queue has gone empty, so every task queued before Close
// is called is still run; Close only guarantees no further task accepted
// by Add after that point will run.
func (p *Pool) Close() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

// QueueLen reports the number of tasks currently queued but not yet picked
// up by a worker. Intended for diagnostics/tests, not control flow.
func (p *Pool) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}
