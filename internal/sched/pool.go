package sched

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vk/strand/internal/ctxlog"
	"github.com/vk/strand/internal/wsq"
)

// DefaultQueueCapacity is the per-worker ring size used when the config
// leaves it zero.
const DefaultQueueCapacity = 256

// Config sizes a pool. Workers must be positive; QueueCapacity must be a
// power of two (zero means DefaultQueueCapacity); StackSize is the per-task
// stack reservation request (zero means the architecture default).
type Config struct {
	Workers       int
	QueueCapacity int
	StackSize     int
}

// Pool runs tasks over a fixed set of workers with work stealing between
// their run queues.
type Pool struct {
	workers   []*worker
	overflow  overflowQueue
	stackSize int

	// pending counts submitted-but-not-completed tasks; the pool is
	// drained when it reaches zero.
	pending atomic.Int64
	stats   stats
}

type stats struct {
	executed   atomic.Uint64
	stolen     atomic.Uint64
	overflowed atomic.Uint64
	switches   atomic.Uint64
	yields     atomic.Uint64
}

// Stats is a point-in-time snapshot of the pool's counters. All values are
// advisory; they are read without coordination.
type Stats struct {
	Executed   uint64
	Stolen     uint64
	Overflowed uint64
	Switches   uint64
	Yields     uint64
}

// New builds a pool. The per-worker run queues are allocated here, so an
// invalid queue capacity surfaces immediately rather than on first dispatch.
func New(cfg Config) (*Pool, error) {
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("sched: worker count must be positive, got %d", cfg.Workers)
	}
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}

	p := &Pool{stackSize: cfg.StackSize}
	for i := 0; i < cfg.Workers; i++ {
		q, err := wsq.New[*Task](cfg.QueueCapacity)
		if err != nil {
			return nil, fmt.Errorf("sched: worker %d run queue: %w", i, err)
		}
		p.workers = append(p.workers, &worker{id: i, pool: p, q: q})
	}
	return p, nil
}

// Submit registers a task body for execution and returns its handle.
// Submit may be called before Run, or from inside a running task body;
// submitting from outside after the pool has drained is a race with
// worker shutdown and will not be picked up.
func (p *Pool) Submit(name string, fn func(*Fiber)) *Task {
	t := &Task{
		ID:        uuid.New(),
		Name:      name,
		fn:        fn,
		stackSize: p.stackSize,
	}
	p.pending.Add(1)
	p.overflow.put(t)
	return t
}

// Run dispatches until every submitted task has completed or ctx is
// cancelled. On cancellation it returns the context error; fibers that were
// suspended at that moment are abandoned.
func (p *Pool) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Pool starting.", "workers", len(p.workers), "queued", p.overflow.size())

	g, ctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		w := w
		g.Go(func() error { return w.run(ctx) })
	}
	err := g.Wait()

	logger.Debug("Pool stopped.", "pending", p.pending.Load())
	return err
}

// Workers reports the number of workers in the pool.
func (p *Pool) Workers() int {
	return len(p.workers)
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Executed:   p.stats.executed.Load(),
		Stolen:     p.stats.stolen.Load(),
		Overflowed: p.stats.overflowed.Load(),
		Switches:   p.stats.switches.Load(),
		Yields:     p.stats.yields.Load(),
	}
}
