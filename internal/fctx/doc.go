// Package fctx provides the execution-context switch primitive underneath
// the fiber scheduler: creation of suspended contexts and symmetric
// transfer of control, plus one machine word of data, between them.
//
// # Why fctx Exists
//
// An M:N runtime multiplexes many independent call stacks over a pool of
// OS threads. The scheduler built on top of this package decides what runs
// next; fctx is only the mechanism that suspends the current flow of
// control and resumes another, handing a single word across the boundary.
//
// # The Transfer Contract
//
// Every switch is a two-way rendezvous. Jump(prev, target, v) suspends the
// caller into prev and wakes target with v; the caller sleeps until some
// future Jump (or Exit) names prev as its target, and the word that jump
// carries becomes the caller's return value. On a context's very first
// resume the word is delivered as the entry function's argument instead.
//
// No error, panic or language-level call stack crosses a switch. Anything
// richer than one word travels out of band, through memory both sides can
// see, arranged before the switch.
//
// # Safety
//
// The primitive trades all safety for minimal overhead, matching its role
// as the innermost layer of the runtime. Resuming a context twice, resuming
// a context nothing is suspended in, or operating on one context from two
// threads at once is undefined behavior, not a reported error. The caller
// owns the discipline.
package fctx
