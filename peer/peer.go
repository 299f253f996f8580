package peer

import (
	"time"

	"github.com/opd-ai/espnow/wifi"
)

// Peer is one entry in the peer table.
type Peer struct {
	Addr      Addr
	LocalKey  Key
	Encrypted bool
	Iface     wifi.Interface
	AddedAt   time.Time
	LastSend  time.Time
}
