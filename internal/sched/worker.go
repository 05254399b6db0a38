package sched

import (
	"context"
	"runtime"
	"time"

	"github.com/vk/strand/internal/ctxlog"
	"github.com/vk/strand/internal/fctx"
	"github.com/vk/strand/internal/wsq"
)

const (
	// spinPasses empty dispatch attempts before a worker starts sleeping
	// between scans instead of just rescheduling.
	spinPasses = 64
	idleSleep  = 50 * time.Microsecond
)

// worker is one dispatch loop. It owns its run queue's Push/Pop end and
// its own fctx suspension slot.
type worker struct {
	id   int
	pool *Pool
	q    *wsq.Queue[*Task]
	slot fctx.Context
}

func (w *worker) run(ctx context.Context) error {
	ctx = ctxlog.With(ctx, "workerID", w.id)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.")

	idle := 0
	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("Worker cancelled.")
			return err
		}

		t, ok := w.next()
		if !ok {
			if w.pool.pending.Load() == 0 {
				logger.Debug("Worker finished.")
				return nil
			}
			// Runnable work exists somewhere but not for us yet.
			idle++
			if idle > spinPasses {
				time.Sleep(idleSleep)
			} else {
				runtime.Gosched()
			}
			continue
		}
		idle = 0
		w.resume(t)
	}
}

// refillBatch caps how many overflow tasks a worker claims per dry scan.
const refillBatch = 32

// next finds the next runnable task: own queue first, then victims, then
// the shared overflow.
func (w *worker) next() (*Task, bool) {
	if t, ok := w.q.Pop(); ok {
		return t, true
	}
	if t, ok := w.steal(); ok {
		return t, true
	}
	return w.refill()
}

// refill pulls a batch from the shared overflow queue, keeping the first
// task for immediate dispatch and parking the rest on our own ring where
// other workers can steal them back.
func (w *worker) refill() (*Task, bool) {
	first, ok := w.pool.overflow.take()
	if !ok {
		return nil, false
	}
	for i := 1; i < refillBatch; i++ {
		t, ok := w.pool.overflow.take()
		if !ok {
			break
		}
		if !w.q.Push(t) {
			w.pool.overflow.put(t)
			break
		}
	}
	return first, true
}

// steal scans the other workers round-robin starting past our own id. The
// advisory Len check skips victims that look empty; a false negative just
// costs one missed steal attempt.
func (w *worker) steal() (*Task, bool) {
	n := len(w.pool.workers)
	for i := 1; i < n; i++ {
		victim := w.pool.workers[(w.id+i)%n]
		if victim.q.Len() == 0 {
			continue
		}
		if t, ok := victim.q.Steal(); ok {
			w.pool.stats.stolen.Add(1)
			return t, true
		}
	}
	return nil, false
}

// resume runs one rendezvous with the task's fiber and acts on the status
// word it hands back.
func (w *worker) resume(t *Task) {
	f := t.fiber()
	f.worker = w
	w.pool.stats.switches.Add(1)

	switch fctx.Jump(&w.slot, f.slot, 0) {
	case statusYielded:
		w.pool.stats.yields.Add(1)
		if !w.q.Push(t) {
			// Ring is full; fall back to the shared queue rather than
			// losing the task.
			w.pool.stats.overflowed.Add(1)
			w.pool.overflow.put(t)
		}
	case statusDone:
		w.pool.stats.executed.Add(1)
		w.pool.pending.Add(-1)
	}
}
