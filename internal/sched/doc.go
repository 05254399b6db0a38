// Package sched composes the two substrate primitives into a running
// worker pool: every worker owns one wsq run queue and a context-switch
// slot, drains its own queue LIFO, steals from victims FIFO when idle, and
// resumes runnable fibers through fctx.
//
// # Queue Discipline
//
// A worker is the sole owner of its queue's Push/Pop end; everything that
// enters a run queue is pushed by its owner. External submissions therefore
// land in a shared overflow queue first, and workers pull from it when
// their own queue and every victim are dry. The overflow queue is also the
// fallback when an owner Push finds the ring full, so a full run queue is
// a slow path, never a dropped task.
//
// # Fiber Lifecycle
//
// A Task's fiber context is created lazily on first dispatch. Each resume
// is one fctx rendezvous: the worker suspends into its own slot and the
// fiber wakes; the fiber hands back a status word when it yields or
// finishes. A yielded task is requeued on whichever worker resumed it, so
// stolen tasks migrate between workers across suspensions.
//
// Cancelling the pool's context stops dispatching; fibers suspended at
// that moment are abandoned, not resumed.
package sched
