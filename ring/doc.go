// Package ring implements the fixed-depth slot pool that carries inbound
// radio frames from the interrupt-side producer to the deferred consumer.
//
// The pool holds Depth reusable slots, each owning a fixed address buffer and
// a fixed payload buffer sized to the maximum radio frame. A producer write
// copies the frame into the next slot round-robin and hands out a descriptor
// aliasing the slot's buffers; nothing on the write path allocates or blocks.
//
// The pool deliberately applies overwrite-oldest: once Depth frames sit
// unread, the next write silently reuses the oldest slot. A descriptor is
// therefore valid only until Depth further writes wrap back to its slot; a
// consumer that falls further behind observes the newer frame's bytes in
// place of the old ones. That is silent staleness, never corruption, because
// every copy is bounds-checked against the slot's capacity.
package ring
