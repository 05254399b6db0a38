package sched

import "sync"

// overflowQueue is the shared fallback behind the per-worker rings: it
// takes external submissions and items refused by a full owner Push. Steals
// from it are rare relative to local pops, so a mutex is acceptable here;
// the hot path never touches it.
type overflowQueue struct {
	mu    sync.Mutex
	items []*Task
}

func (o *overflowQueue) put(t *Task) {
	o.mu.Lock()
	o.items = append(o.items, t)
	o.mu.Unlock()
}

func (o *overflowQueue) take() (*Task, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.items) == 0 {
		return nil, false
	}
	t := o.items[0]
	o.items = o.items[1:]
	return t, true
}

func (o *overflowQueue) size() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}
