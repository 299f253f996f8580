package espnow

import (
	"sync/atomic"

	"github.com/opd-ai/espnow/peer"
)

// ReceiveCallback handles one inbound frame on the deferred scheduler. Both
// slices alias a reusable pool slot: they are valid during the call and until
// ring.Depth further frames arrive, after which the slot is overwritten.
// Handlers that keep the data longer must copy it.
type ReceiveCallback func(senderAddr, payload []byte)

// SendStatusCallback handles one send-status event on the deferred scheduler.
type SendStatusCallback func(peerAddr peer.Addr, success bool)

// callbackSlots holds at most one receive handler and one status handler,
// readable lock-free from the interrupt-side producer.
type callbackSlots struct {
	recv   atomic.Pointer[ReceiveCallback]
	status atomic.Pointer[SendStatusCallback]
}

func (c *callbackSlots) receive() ReceiveCallback {
	if p := c.recv.Load(); p != nil {
		return *p
	}
	return nil
}

func (c *callbackSlots) sendStatus() SendStatusCallback {
	if p := c.status.Load(); p != nil {
		return *p
	}
	return nil
}

// OnReceive installs the handler for inbound frames; nil clears it. With no
// handler installed, inbound frames are dropped with no side effect.
func (e *ESPNow) OnReceive(fn ReceiveCallback) {
	if fn == nil {
		e.callbacks.recv.Store(nil)
		return
	}
	e.callbacks.recv.Store(&fn)
}

// OnSendStatus installs the handler for send-status events; nil clears it.
func (e *ESPNow) OnSendStatus(fn SendStatusCallback) {
	if fn == nil {
		e.callbacks.status.Store(nil)
		return
	}
	e.callbacks.status.Store(&fn)
}

// handleReceive is the driver's receive sink. It runs in interrupt context:
// bounded work, no blocking, no allocation. The frame is copied into the next
// pool slot and that slot's pre-built task is posted; an oversize or
// malformed frame is rejected whole and counted by the pool.
func (e *ESPNow) handleReceive(senderAddr, payload []byte) {
	if e.callbacks.receive() == nil {
		return
	}
	idx, err := e.pool.Write(senderAddr, payload)
	if err != nil {
		return
	}
	e.scheduler.Post(e.tasks[idx])
}

// handleSendStatus is the driver's status sink. Status events are rare, so
// each one is an independent record rather than a pooled slot; it is posted
// and discarded after the handler consumes it.
func (e *ESPNow) handleSendStatus(peerAddr []byte, success bool) {
	if e.callbacks.sendStatus() == nil {
		return
	}
	addr, err := peer.ParseAddr(peerAddr)
	if err != nil {
		return
	}
	e.scheduler.Post(func() {
		if cb := e.callbacks.sendStatus(); cb != nil {
			cb(addr, success)
		}
	})
}
