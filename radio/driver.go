package radio

import "github.com/opd-ai/espnow/peer"

// ReceiveSink is invoked by the radio layer, in interrupt context, for every
// inbound frame. Implementations must be bounded, non-blocking, and must not
// allocate; the bytes are only valid for the duration of the call.
type ReceiveSink func(senderAddr, payload []byte)

// StatusSink is invoked by the radio layer, in interrupt context, once per
// completed transmit with the outcome. Same constraints as ReceiveSink.
type StatusSink func(peerAddr []byte, success bool)

// Transmitter is the transmit primitive of the radio layer. Transmit may
// block and runs in normal context only.
type Transmitter interface {
	Transmit(addr peer.Addr, payload []byte) error
}

// Driver is the full radio-layer contract. Real hardware bindings and the
// in-memory Sim both satisfy it.
type Driver interface {
	Transmitter

	// SetPrimaryKey provisions the network-wide primary key. The key is
	// opaque; the driver hands it to the radio layer unchanged.
	SetPrimaryKey(key peer.Key) error

	// Version returns the radio protocol version.
	Version() (uint32, error)

	// AttachSinks enables interrupt delivery into the given sinks. Callers
	// attach only after everything the sinks touch is constructed.
	AttachSinks(recv ReceiveSink, status StatusSink)

	// DetachSinks disables interrupt delivery. Callers detach before tearing
	// anything down that the sinks touch.
	DetachSinks()

	// Close releases the driver. Sinks must already be detached.
	Close() error
}
