package sched

import (
	"github.com/google/uuid"

	"github.com/vk/strand/internal/fctx"
)

// Status words a fiber transfers back to its worker on suspension.
const (
	statusYielded uintptr = iota + 1
	statusDone
)

// Task is one schedulable unit: a body function bound to a lazily created
// fiber context. A task runs on exactly one worker at a time but may
// migrate between workers across suspensions when it gets stolen.
type Task struct {
	ID   uuid.UUID
	Name string

	fn        func(*Fiber)
	stackSize int
	fib       *Fiber
}

// Fiber is the handle a task body receives while running. It is only valid
// on the fiber's own flow of control, between entry and return.
type Fiber struct {
	task *Task

	// worker is whoever is resuming us right now; rewritten by the
	// dispatcher before every resume, read by the fiber after every wake.
	worker *worker

	slot *fctx.Context
}

// fiber builds the task's execution context on first dispatch. Only the
// worker currently holding the task calls this.
func (t *Task) fiber() *Fiber {
	if t.fib == nil {
		f := &Fiber{task: t}
		f.slot = fctx.Make(t.stackSize, func(uintptr) {
			t.fn(f)
			fctx.Exit(&f.worker.slot, statusDone)
		})
		t.fib = f
	}
	return t.fib
}

// Task returns the task this fiber is running.
func (f *Fiber) Task() *Task {
	return f.task
}

// Worker reports the id of the worker currently running the fiber.
func (f *Fiber) Worker() int {
	return f.worker.id
}

// Yield suspends the fiber and hands control back to its current worker.
// The task is requeued and the call returns when some worker next resumes
// it, possibly a different one than it yielded on.
func (f *Fiber) Yield() {
	fctx.Jump(f.slot, &f.worker.slot, statusYielded)
}
