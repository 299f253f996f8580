package limits

import (
	"errors"
	"fmt"
)

const (
	// AddrLen is the exact length of a peer MAC address in bytes.
	AddrLen = 6

	// KeyLen is the exact length of primary and local key material in bytes.
	KeyLen = 16

	// MaxPayload is the largest datagram the radio layer carries in one frame.
	MaxPayload = 250

	// MaxPeers is the capacity of the peer registry.
	MaxPeers = 20
)

var (
	// ErrBadAddressLength indicates an address that is not exactly AddrLen bytes.
	ErrBadAddressLength = errors.New("address must be exactly 6 bytes")

	// ErrBadKeyLength indicates key material that is not exactly KeyLen bytes.
	ErrBadKeyLength = errors.New("key must be exactly 16 bytes")

	// ErrPayloadTooLarge indicates a payload exceeding MaxPayload bytes.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum frame size")
)

// ValidateAddress checks that addr is exactly AddrLen bytes.
func ValidateAddress(addr []byte) error {
	if len(addr) != AddrLen {
		return fmt.Errorf("%w: got %d", ErrBadAddressLength, len(addr))
	}
	return nil
}

// ValidateKey checks that key is exactly KeyLen bytes.
func ValidateKey(key []byte) error {
	if len(key) != KeyLen {
		return fmt.Errorf("%w: got %d", ErrBadKeyLength, len(key))
	}
	return nil
}

// ValidatePayload checks that payload fits in a single radio frame.
func ValidatePayload(payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("%w: got %d, limit %d", ErrPayloadTooLarge, len(payload), MaxPayload)
	}
	return nil
}
