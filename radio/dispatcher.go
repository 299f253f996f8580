package radio

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/espnow/limits"
	"github.com/opd-ai/espnow/peer"
	"github.com/opd-ai/espnow/wifi"
)

// Dispatcher implements the unicast and broadcast send paths over a peer
// directory, a transmit primitive, and an interface activity source.
type Dispatcher struct {
	dir      *peer.Directory
	tx       Transmitter
	activity wifi.ActivitySource
}

// NewDispatcher wires a Dispatcher. All three collaborators are required.
func NewDispatcher(dir *peer.Directory, tx Transmitter, activity wifi.ActivitySource) *Dispatcher {
	return &Dispatcher{
		dir:      dir,
		tx:       tx,
		activity: activity,
	}
}

// Send transmits payload to the peer registered under addr.
//
// The peer's assigned interface is checked against the interface set active
// right now. A stale assignment is repaired to the preferred active interface
// and the repair is persisted before transmitting; if no interface is active
// the call fails without touching the peer table or the radio.
func (d *Dispatcher) Send(addr peer.Addr, payload []byte) error {
	if err := limits.ValidatePayload(payload); err != nil {
		return err
	}

	p, err := d.dir.Get(addr)
	if err != nil {
		return err
	}

	mode := d.activity.ActiveInterfaces()
	if !mode.Has(p.Iface) {
		fallback, ok := wifi.Fallback(mode)
		if !ok {
			return ErrNoActiveInterface
		}
		if err := d.dir.PatchInterface(addr, fallback); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"function":  "Dispatcher.Send",
			"peer_addr": addr.String(),
			"interface": fallback.String(),
		}).Debug("Repaired stale peer interface")
	}

	if err := d.tx.Transmit(addr, payload); err != nil {
		return &TransmitError{Addr: addr, Err: err}
	}
	d.dir.MarkSend(addr)
	return nil
}

// Broadcast transmits payload to every registered peer, in registration
// order. The active interface set is read once for the whole call, and the
// fallback interface is computed at most once, when the first stale peer is
// met. The first transmit failure aborts the remaining fan-out and is
// returned; there is no partial-success aggregation.
func (d *Dispatcher) Broadcast(payload []byte) error {
	if err := limits.ValidatePayload(payload); err != nil {
		return err
	}

	peers := d.dir.Peers()
	if len(peers) == 0 {
		return peer.ErrNotFound
	}

	mode := d.activity.ActiveInterfaces()
	var (
		fallback   wifi.Interface
		fallbackOK bool
		computed   bool
	)

	for _, p := range peers {
		if !mode.Has(p.Iface) {
			if !computed {
				fallback, fallbackOK = wifi.Fallback(mode)
				computed = true
			}
			if !fallbackOK {
				return ErrNoActiveInterface
			}
			if err := d.dir.PatchInterface(p.Addr, fallback); err != nil {
				return err
			}
		}
		if err := d.tx.Transmit(p.Addr, payload); err != nil {
			logrus.WithFields(logrus.Fields{
				"function":  "Dispatcher.Broadcast",
				"peer_addr": p.Addr.String(),
				"error":     err.Error(),
			}).Warn("Broadcast aborted on transmit failure")
			return &TransmitError{Addr: p.Addr, Err: err}
		}
		d.dir.MarkSend(p.Addr)
	}
	return nil
}
