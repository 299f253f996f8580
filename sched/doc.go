// Package sched provides the deferred execution queue that moves work off
// the interrupt-side producer and onto a single cooperative consumer.
//
// The Scheduler contract is small but strict: posted tasks run later, one at
// a time, in FIFO posting order, on a context that never overlaps the
// producer's call to Post. Post itself never blocks, so it is safe from
// bounded non-blocking contexts.
//
// Runner is the default implementation: a buffered channel drained by a
// single worker goroutine. A task that panics is recovered and logged; a
// misbehaving handler can neither crash the worker nor stall the queue
// behind it.
package sched
