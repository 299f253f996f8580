package ring

import (
	"sync/atomic"

	"github.com/opd-ai/espnow/limits"
)

// Depth is the number of slots in a Pool. A frame handed to the consumer
// stays intact until Depth further frames arrive.
const Depth = 32

// Frame is one reusable slot. Its accessors alias the slot's backing buffers,
// so the bytes are only stable until the pool wraps back to this slot.
type Frame struct {
	addr    [limits.AddrLen]byte
	payload [limits.MaxPayload]byte
	n       int
}

// Addr returns the sender address of the frame currently in the slot.
func (f *Frame) Addr() []byte {
	return f.addr[:]
}

// Payload returns the payload of the frame currently in the slot.
func (f *Frame) Payload() []byte {
	return f.payload[:f.n]
}

// Pool is a single-producer pool of Depth slots reused in fixed round-robin
// order. Write is the only mutating entry point and must be called from one
// producer at a time; readers are handed *Frame descriptors and synchronize
// through the deferred scheduler, not through the pool.
type Pool struct {
	slots    [Depth]Frame
	next     int
	rejected atomic.Uint64
}

// NewPool creates a Pool with all slot buffers allocated up front. No further
// allocation happens for the pool's lifetime.
func NewPool() *Pool {
	return &Pool{}
}

// Write copies addr and payload into the next slot and returns its index.
// It never allocates and never blocks.
//
// A payload longer than the slot's capacity is a protocol violation: the
// whole frame is rejected before any byte is copied, the rejection counter is
// bumped, and the slot cursor does not advance. Partial copies never happen.
func (p *Pool) Write(addr, payload []byte) (int, error) {
	if len(addr) != limits.AddrLen {
		p.rejected.Add(1)
		return 0, limits.ErrBadAddressLength
	}
	if len(payload) > limits.MaxPayload {
		p.rejected.Add(1)
		return 0, limits.ErrPayloadTooLarge
	}

	i := p.next
	f := &p.slots[i]
	copy(f.addr[:], addr)
	f.n = copy(f.payload[:], payload)

	p.next = (i + 1) % Depth
	return i, nil
}

// Frame returns the descriptor for slot i. Descriptors are fixed for the
// pool's lifetime, which lets callers pre-bind per-slot work at setup time.
func (p *Pool) Frame(i int) *Frame {
	return &p.slots[i]
}

// Rejected returns how many frames were rejected for violating the fixed
// width contracts.
func (p *Pool) Rejected() uint64 {
	return p.rejected.Load()
}
