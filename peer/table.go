package peer

import (
	"errors"

	"github.com/opd-ai/espnow/limits"
)

// Common errors for peer table operations.
var (
	// ErrNotFound indicates the address has no entry in the table.
	ErrNotFound = errors.New("peer not found")

	// ErrExists indicates the address is already registered.
	ErrExists = errors.New("peer already exists")

	// ErrTableFull indicates the table reached its capacity.
	ErrTableFull = errors.New("peer table full")
)

// Table is the registry the Directory drives. Implementations are not
// required to be safe for concurrent use; the Directory serializes all
// access. Iteration order of All is insertion order, oldest first.
type Table interface {
	// Insert adds a new entry. ErrExists on duplicate address,
	// ErrTableFull at capacity.
	Insert(p Peer) error

	// Delete removes the entry for addr. ErrNotFound if absent.
	Delete(addr Addr) error

	// Update replaces the entry for p.Addr in place. ErrNotFound if absent.
	Update(p Peer) error

	// Get returns the entry for addr.
	Get(addr Addr) (Peer, bool)

	// All returns a snapshot of every entry in insertion order.
	All() []Peer

	// Len returns the number of entries.
	Len() int

	// Clear removes every entry.
	Clear()
}

// MemoryTable is the default in-process Table. Entries keep insertion order
// so broadcast fan-out walks peers oldest first, and capacity is capped at
// limits.MaxPeers to match the hardware registry.
type MemoryTable struct {
	order []Peer
	index map[Addr]int
}

// NewMemoryTable creates an empty MemoryTable.
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{
		index: make(map[Addr]int, limits.MaxPeers),
	}
}

// Insert adds a new entry.
func (t *MemoryTable) Insert(p Peer) error {
	if _, ok := t.index[p.Addr]; ok {
		return ErrExists
	}
	if len(t.order) >= limits.MaxPeers {
		return ErrTableFull
	}
	t.index[p.Addr] = len(t.order)
	t.order = append(t.order, p)
	return nil
}

// Delete removes the entry for addr.
func (t *MemoryTable) Delete(addr Addr) error {
	i, ok := t.index[addr]
	if !ok {
		return ErrNotFound
	}
	t.order = append(t.order[:i], t.order[i+1:]...)
	delete(t.index, addr)
	for j := i; j < len(t.order); j++ {
		t.index[t.order[j].Addr] = j
	}
	return nil
}

// Update replaces the entry for p.Addr in place.
func (t *MemoryTable) Update(p Peer) error {
	i, ok := t.index[p.Addr]
	if !ok {
		return ErrNotFound
	}
	t.order[i] = p
	return nil
}

// Get returns the entry for addr.
func (t *MemoryTable) Get(addr Addr) (Peer, bool) {
	i, ok := t.index[addr]
	if !ok {
		return Peer{}, false
	}
	return t.order[i], true
}

// All returns a snapshot of every entry in insertion order.
func (t *MemoryTable) All() []Peer {
	out := make([]Peer, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of entries.
func (t *MemoryTable) Len() int {
	return len(t.order)
}

// Clear removes every entry.
func (t *MemoryTable) Clear() {
	t.order = nil
	t.index = make(map[Addr]int, limits.MaxPeers)
}
