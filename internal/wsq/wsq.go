package wsq

import (
	"errors"
	"sync/atomic"
)

// Initialization failures reported by Init.
var (
	ErrAlreadyInitialized = errors.New("wsq: already initialized")
	ErrInvalidCapacity    = errors.New("wsq: capacity must be a non-zero power of two")
)

const cacheLineSize = 64

// Queue is a fixed-capacity Chase–Lev deque. One owner goroutine operates
// the LIFO end via Push and Pop; any number of other goroutines may
// concurrently take from the FIFO end via Steal.
//
// bottom and top are monotonically increasing counters; the live items
// occupy ring slots [top mod cap, bottom mod cap). The counters are wide
// enough that wraparound is not a practical concern. Go's atomics are
// sequentially consistent, which subsumes the relaxed/acquire/release mix
// the original algorithm is specified with; the ordering-sensitive spots
// are commented where they matter.
//
// Push and Pop must never run concurrently with each other or with
// themselves: that is the single-owner discipline, and violating it is a
// programming error this type does not detect. Steal is safe against
// everything.
type Queue[T any] struct {
	bottom atomic.Uint64
	buffer []T
	mask   uint64

	// Keep top away from bottom so thieves hammering top with CAS do not
	// invalidate the owner's cache line.
	_   [cacheLineSize]byte
	top atomic.Uint64
}

// New allocates and initializes a queue in one step.
func New[T any](capacity int) (*Queue[T], error) {
	q := &Queue[T]{}
	if err := q.Init(capacity); err != nil {
		return nil, err
	}
	return q, nil
}

// Init allocates the ring. It may be called exactly once; capacity must be
// a non-zero power of two. A failed Init leaves the queue untouched.
func (q *Queue[T]) Init(capacity int) error {
	if q.buffer != nil {
		return ErrAlreadyInitialized
	}
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return ErrInvalidCapacity
	}
	q.buffer = make([]T, capacity)
	q.mask = uint64(capacity - 1)
	return nil
}

// Push enqueues x at the owner end. It returns false, leaving the queue
// unchanged, when the queue is full. Owner-only; may run in parallel with
// Steal but never with Pop or another Push.
func (q *Queue[T]) Push(x T) bool {
	b := q.bottom.Load()
	t := q.top.Load()
	if b >= t+q.mask+1 {
		return false
	}
	q.buffer[b&q.mask] = x
	// Publishing the new bottom after the slot write is what makes the
	// item visible to thieves.
	q.bottom.Store(b + 1)
	return true
}

// Pop dequeues the most recently pushed item. Owner-only; may run in
// parallel with Steal but never with Push or another Pop.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	b := q.bottom.Load()
	t := q.top.Load()
	if t >= b {
		// Fast path: the scheduler calls Pop on every dispatch, so the
		// empty case must stay a pair of loads.
		return zero, false
	}
	newb := b - 1
	// Optimistically take the slot, then re-read top. The seq-cst store
	// acts as the full fence the algorithm needs here: without it a thief
	// could observe the old bottom after we read its old top, and both
	// sides would claim the same item.
	q.bottom.Store(newb)
	t = q.top.Load()
	if t > newb {
		// Lost everything to thieves while we hesitated.
		q.bottom.Store(b)
		return zero, false
	}
	x := q.buffer[newb&q.mask]
	if t != newb {
		return x, true
	}
	// Exactly one item left: compete with in-flight stealers for it. The
	// value was read above; it is only surrendered if the CAS wins.
	won := q.top.CompareAndSwap(t, t+1)
	q.bottom.Store(b)
	if !won {
		return zero, false
	}
	return x, true
}

// Steal dequeues the oldest item. Callable from any goroutine, concurrently
// with Push, Pop and other Steals. A false return may be a false negative
// against an in-flight Push; it is never a false positive.
func (q *Queue[T]) Steal() (T, bool) {
	var zero T
	t := q.top.Load()
	b := q.bottom.Load()
	if t >= b {
		return zero, false
	}
	for {
		// Re-validate emptiness every iteration so a queue drained by
		// competitors terminates the loop instead of spinning.
		b = q.bottom.Load()
		if t >= b {
			return zero, false
		}
		x := q.buffer[t&q.mask]
		if q.top.CompareAndSwap(t, t+1) {
			return x, true
		}
		// Another thief or the owner won this slot; retry from their top.
		t = q.top.Load()
	}
}

// Len reports a momentarily stale snapshot of the logical size. It is
// advisory only, e.g. for deciding whether a victim is worth stealing from,
// and must not be used for correctness decisions.
func (q *Queue[T]) Len() int {
	b := q.bottom.Load()
	t := q.top.Load()
	if b <= t {
		return 0
	}
	return int(b - t)
}

// Cap returns the fixed capacity, or 0 before Init.
func (q *Queue[T]) Cap() int {
	return len(q.buffer)
}
