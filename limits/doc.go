// Package limits provides centralized wire-size constants and validation
// functions for the ESP-NOW datagram surface. This package ensures consistent
// size enforcement across all components of the espnow implementation.
//
// The limits mirror the fixed-width contracts of the underlying radio layer:
//
//   - AddrLen (6 bytes): peer MAC addresses are exactly six bytes.
//
//   - KeyLen (16 bytes): primary and per-peer local keys are exactly sixteen
//     bytes of opaque key material.
//
//   - MaxPayload (250 bytes): the largest datagram the radio layer will carry
//     in a single frame. Enforced before any peer lookup or transmit attempt.
//
//   - MaxPeers (20): the capacity of the hardware peer registry.
//
// Each validation function returns a sentinel error suitable for errors.Is:
//
//	if err := limits.ValidatePayload(msg); err != nil {
//	    // limits.ErrPayloadTooLarge
//	}
package limits
