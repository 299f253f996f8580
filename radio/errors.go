package radio

import (
	"errors"
	"fmt"

	"github.com/opd-ai/espnow/peer"
)

// Code is a raw numeric error code reported by the radio layer. The values
// follow the ESP-IDF convention of a wifi error base plus a per-condition
// offset.
type Code uint32

const (
	codeBase Code = 0x3064

	// CodeNotInit: the radio layer was used before initialization.
	CodeNotInit Code = codeBase + 1
	// CodeInvalidArg: a malformed argument reached the radio layer.
	CodeInvalidArg Code = codeBase + 2
	// CodeNoMemory: the radio layer ran out of memory.
	CodeNoMemory Code = codeBase + 3
	// CodePeerListFull: the hardware peer registry is at capacity.
	CodePeerListFull Code = codeBase + 4
	// CodePeerNotFound: the hardware peer registry has no such peer.
	CodePeerNotFound Code = codeBase + 5
	// CodeInternal: an unspecified internal radio failure.
	CodeInternal Code = codeBase + 6
	// CodePeerExists: the peer is already in the hardware registry.
	CodePeerExists Code = codeBase + 7
	// CodeInterface: the peer's interface does not match the current mode.
	CodeInterface Code = codeBase + 8
)

// Common errors for radio operations.
var (
	// ErrNotInitialized indicates the radio layer was not initialized.
	ErrNotInitialized = errors.New("radio not initialized")

	// ErrInvalidArgument indicates a malformed argument at the radio layer.
	ErrInvalidArgument = errors.New("invalid radio argument")

	// ErrNoMemory indicates the radio layer is out of memory.
	ErrNoMemory = errors.New("radio out of memory")

	// ErrInternal indicates an unspecified internal radio failure.
	ErrInternal = errors.New("internal radio error")

	// ErrNoActiveInterface indicates no radio interface is currently active,
	// so nothing can be transmitted.
	ErrNoActiveInterface = errors.New("no active radio interface")
)

// UnknownCodeError wraps a hardware code that maps to no known condition.
// The raw code is preserved for diagnostics.
type UnknownCodeError struct {
	Code Code
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown radio error 0x%04x", uint32(e.Code))
}

// CodeError maps a raw hardware code to the error taxonomy. A zero code is
// success and maps to nil. Peer-registry codes map to the peer package's
// sentinels so errors.Is works uniformly regardless of which layer reported
// the condition.
func CodeError(c Code) error {
	switch c {
	case 0:
		return nil
	case CodeNotInit:
		return ErrNotInitialized
	case CodeInvalidArg:
		return ErrInvalidArgument
	case CodeNoMemory:
		return ErrNoMemory
	case CodePeerListFull:
		return peer.ErrTableFull
	case CodePeerNotFound:
		return peer.ErrNotFound
	case CodeInternal:
		return ErrInternal
	case CodePeerExists:
		return peer.ErrExists
	case CodeInterface:
		return ErrNoActiveInterface
	default:
		return &UnknownCodeError{Code: c}
	}
}

// TransmitError reports a failed transmit with the peer address and the
// underlying cause preserved.
type TransmitError struct {
	Addr peer.Addr
	Err  error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("transmit to %s: %v", e.Addr, e.Err)
}

func (e *TransmitError) Unwrap() error {
	return e.Err
}
