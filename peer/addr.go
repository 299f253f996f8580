package peer

import (
	"fmt"

	"github.com/opd-ai/espnow/limits"
)

// Addr is a radio peer MAC address.
type Addr [limits.AddrLen]byte

// Key is opaque symmetric key material, either the network-wide primary key
// or a per-peer local key. Its contents are never interpreted here.
type Key [limits.KeyLen]byte

// Broadcast is the address that fans a send out to every registered peer.
var Broadcast = Addr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseAddr converts a raw byte slice into an Addr, enforcing the exact
// six-byte width.
func ParseAddr(b []byte) (Addr, error) {
	var a Addr
	if err := limits.ValidateAddress(b); err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// ParseKey converts a raw byte slice into a Key, enforcing the exact
// sixteen-byte width.
func ParseKey(b []byte) (Key, error) {
	var k Key
	if err := limits.ValidateKey(b); err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// IsBroadcast reports whether the address is the broadcast address.
func (a Addr) IsBroadcast() bool {
	return a == Broadcast
}

// String formats the address as colon-separated hex.
func (a Addr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}
