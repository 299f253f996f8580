// Package peer implements the peer table for the espnow bridge.
//
// This package handles peer registration, per-peer encryption state, and the
// interface assignment that the send path repairs lazily.
//
// The Directory is the policy layer: it validates operations, decides when an
// encryption-state change forces a delete-and-re-add cycle, and keeps count
// bookkeeping. It talks to the registry through the narrow Table interface so
// the hardware-backed registry stays swappable; MemoryTable is the default
// in-process implementation.
//
// Example:
//
//	dir := peer.NewDirectory(peer.NewMemoryTable())
//	addr, _ := peer.ParseAddr([]byte{0x24, 0x0a, 0xc4, 0x01, 0x02, 0x03})
//	if err := dir.Add(addr, nil); err != nil {
//	    log.Fatal(err)
//	}
package peer
