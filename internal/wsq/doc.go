// Package wsq implements the work-stealing deque that backs each worker's
// run queue. Its primary role is to let one owner thread push and pop
// runnable items cheaply at its own end while any number of other threads
// concurrently steal from the opposite end, without any lock.
package wsq
