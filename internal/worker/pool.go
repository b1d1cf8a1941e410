package worker

import (
	"sync"

	"github.com/bic-devsphere/devsphere-backend/internal/metrics"
)

type task func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

// Submit queues f without blocking. It reports false when the queue is full.
func (p *Pool) Submit(f task) bool {
	select {
	case p.jobs <- f:
		metrics.WorkerQueueDepth.Inc()
		return true
	default:
		return false
	}
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
