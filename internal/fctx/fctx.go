package fctx

// Entry is the routine a context created by Make begins life in. It
// receives the word transferred by the first Jump into the context. An
// Entry must leave through Jump or Exit; returning normally also ends the
// context, but only Exit hands control somewhere on the way out.
type Entry func(arg uintptr)

// Context is an opaque handle to a suspended execution context. Its state
// is overwritten in place on every switch, so one long-lived Context
// variable per logical fiber is the normal usage: each side suspends into
// its own slot and resumes the other's.
//
// A Context is in one of three states: fresh (created by Make, never
// resumed), parked (written by a Jump whose caller is now suspended in it),
// or consumed (already resumed; dead until the next Jump overwrites it).
// Resuming a consumed context is undefined behavior.
type Context struct {
	// resume carries the wake word to the suspended side. It is created
	// lazily on first suspension and reused for the lifetime of the slot.
	resume chan uintptr

	// entry is non-nil only while fresh.
	entry Entry

	stackSize int
}

// Make creates a suspended context that will enter entry on its first
// resume, with the transferred word as entry's argument. stackSize is the
// stack reservation request for the context; it is clamped to the
// architecture minimum and rounded to the architecture's stack alignment
// (pass 0 for the default). The returned handle doubles as the context's
// own suspension slot once entry starts jumping.
func Make(stackSize int, entry Entry) *Context {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}
	if stackSize < MinStackSize {
		stackSize = MinStackSize
	}
	stackSize = (stackSize + stackAlign - 1) &^ (stackAlign - 1)
	return &Context{entry: entry, stackSize: stackSize}
}

// StackSize reports the rounded stack reservation of a context created by
// Make, and 0 for a slot minted by Jump.
func (c *Context) StackSize() int {
	return c.stackSize
}

// Jump suspends the caller into prev, resumes target delivering v, and
// returns the word carried by whichever future switch resumes prev. prev
// is overwritten in place; passing the same slot on every switch of a
// fiber is both allowed and intended.
//
// prev and target must be distinct. Jumping into a consumed context, or
// into a fresh context from two threads at once, is undefined behavior.
func Jump(prev, target *Context, v uintptr) uintptr {
	if prev.resume == nil {
		prev.resume = make(chan uintptr)
	}
	prev.entry = nil
	target.deliver(v)
	return <-prev.resume
}

// Exit resumes target delivering v and abandons the calling context
// instead of suspending it. It is the terminal counterpart of Jump, used
// by an entry that has finished its work; it returns to its caller, which
// should then fall off the end of the entry function.
func Exit(target *Context, v uintptr) {
	target.deliver(v)
}

// deliver hands v to the context: a fresh context starts entry in its own
// flow of control, a parked one is woken where it suspended.
func (c *Context) deliver(v uintptr) {
	if c.entry != nil {
		entry := c.entry
		c.entry = nil
		go entry(v)
		return
	}
	c.resume <- v
}
