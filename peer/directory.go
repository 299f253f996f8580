package peer

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/espnow/wifi"
)

// Directory owns the peer table and enforces its mutation rules. All methods
// are safe for concurrent use.
type Directory struct {
	mu    sync.RWMutex
	table Table
	clk   clock.Clock
}

// NewDirectory creates a Directory over the given table using the wall clock.
func NewDirectory(table Table) *Directory {
	return NewDirectoryWithClock(table, clock.New())
}

// NewDirectoryWithClock creates a Directory with an injected clock, used by
// tests to control timestamps.
func NewDirectoryWithClock(table Table, clk clock.Clock) *Directory {
	if clk == nil {
		clk = clock.New()
	}
	return &Directory{
		table: table,
		clk:   clk,
	}
}

// Add registers a new peer. A non-nil key marks the peer encrypted from the
// start. New peers are assigned the station interface until the send path
// repairs them against the live mode.
func (d *Directory) Add(addr Addr, key *Key) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := Peer{
		Addr:    addr,
		Iface:   wifi.Station,
		AddedAt: d.clk.Now(),
	}
	if key != nil {
		p.LocalKey = *key
		p.Encrypted = true
	}

	if err := d.table.Insert(p); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Directory.Add",
		"peer_addr": addr.String(),
		"encrypted": p.Encrypted,
	}).Debug("Peer registered")

	return nil
}

// Remove deletes the peer for addr.
func (d *Directory) Remove(addr Addr) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.table.Delete(addr); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Directory.Remove",
		"peer_addr": addr.String(),
	}).Debug("Peer removed")

	return nil
}

// Get returns a copy of the peer for addr.
func (d *Directory) Get(addr Addr) (Peer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.table.Get(addr)
	if !ok {
		return Peer{}, ErrNotFound
	}
	return p, nil
}

// SetLocalKey installs, replaces, or clears (nil key) the peer's local key.
//
// When the change flips the encrypted flag the entry is deleted and
// re-inserted rather than updated: flipping the flag with an in-place modify
// is unreliable on the hardware registry, so the flag never changes in place.
// The delete/insert pair is not atomic; if the insert fails the peer is gone
// from the table and the error says so. An unchanged flag is a single
// in-place update.
func (d *Directory) SetLocalKey(addr Addr, key *Key) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.table.Get(addr)
	if !ok {
		return ErrNotFound
	}

	encrypted := key != nil
	if encrypted {
		p.LocalKey = *key
	} else {
		p.LocalKey = Key{}
	}

	if p.Encrypted == encrypted {
		return d.table.Update(p)
	}

	p.Encrypted = encrypted
	if err := d.table.Delete(addr); err != nil {
		return err
	}
	if err := d.table.Insert(p); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "Directory.SetLocalKey",
			"peer_addr": addr.String(),
			"error":     err.Error(),
		}).Error("Re-add after encryption change failed, peer dropped from table")
		return fmt.Errorf("re-adding peer %s after encryption change: %w", addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Directory.SetLocalKey",
		"peer_addr": addr.String(),
		"encrypted": encrypted,
	}).Debug("Peer encryption state changed")

	return nil
}

// PatchInterface rewrites the peer's assigned interface. The patch is sticky:
// it persists for future sends and is never reverted automatically.
func (d *Directory) PatchInterface(addr Addr, iface wifi.Interface) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.table.Get(addr)
	if !ok {
		return ErrNotFound
	}
	p.Iface = iface
	if err := d.table.Update(p); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Directory.PatchInterface",
		"peer_addr": addr.String(),
		"interface": iface.String(),
	}).Debug("Peer interface repaired")

	return nil
}

// MarkSend stamps the peer's last transmit time. Missing peers are ignored;
// the send already happened.
func (d *Directory) MarkSend(addr Addr) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.table.Get(addr)
	if !ok {
		return
	}
	p.LastSend = d.clk.Now()
	_ = d.table.Update(p)
}

// Peers returns a snapshot of every peer in insertion order.
func (d *Directory) Peers() []Peer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.table.All()
}

// Count returns the number of registered peers and how many of them are
// encrypted, counted directly from the table.
func (d *Directory) Count() (total, encrypted int) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, p := range d.table.All() {
		total++
		if p.Encrypted {
			encrypted++
		}
	}
	return total, encrypted
}

// Clear empties the table. Used on teardown after interrupt delivery is
// already detached.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.table.Clear()
}
