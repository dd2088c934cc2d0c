// Package neighbor implements the bounded table of recently heard source
// addresses the MAC engine uses for forward admission, forward-bit and
// coding-rate decisions.
package neighbor

import "github.com/scottyob/FANET/pkg/link"

// MaxTimeoutMs is the age, in milliseconds, after which an entry is
// considered stale and eligible for opportunistic removal.
const MaxTimeoutMs uint32 = 250000

// DefaultCapacity is the table size NewDefault uses; the MAC engine always
// builds its table with NewDefault.
const DefaultCapacity = 30

type entry struct {
	address  link.Address
	lastSeen uint32
	used     bool
}

// Table is a fixed-capacity set of (address, last_seen_ms) pairs. When full,
// inserting a new address evicts the entry with the smallest last_seen.
type Table struct {
	entries []entry
	size    int
}

// New creates a Table with the given capacity.
func New(capacity int) *Table {
	return &Table{entries: make([]entry, capacity)}
}

// NewDefault creates a Table sized to DefaultCapacity.
func NewDefault() *Table {
	return New(DefaultCapacity)
}

// Len returns the number of addresses currently tracked.
func (t *Table) Len() int {
	return t.size
}

// Clear removes every entry.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.size = 0
}

// AddOrUpdate records addr as seen at time lastSeen. If addr is already
// present, its timestamp is refreshed. Otherwise it is inserted, evicting
// the minimum-last_seen entry first if the table is full.
func (t *Table) AddOrUpdate(addr link.Address, lastSeen uint32) {
	for i := range t.entries {
		if t.entries[i].used && t.entries[i].address == addr {
			t.entries[i].lastSeen = lastSeen
			return
		}
	}

	slot := t.freeSlot()
	if slot < 0 {
		slot = t.oldestSlot()
		t.size--
	}

	t.entries[slot] = entry{address: addr, lastSeen: lastSeen, used: true}
	t.size++
}

// Remove drops addr from the table, if present.
func (t *Table) Remove(addr link.Address) {
	for i := range t.entries {
		if t.entries[i].used && t.entries[i].address == addr {
			t.entries[i] = entry{}
			t.size--
			return
		}
	}
}

// LastSeen returns the last-seen timestamp for addr, or 0 if it is not
// tracked.
func (t *Table) LastSeen(addr link.Address) uint32 {
	for i := range t.entries {
		if t.entries[i].used && t.entries[i].address == addr {
			return t.entries[i].lastSeen
		}
	}
	return 0
}

// RemoveOutdated drops every entry whose age relative to now exceeds
// MaxTimeoutMs, using wrap-safe 32-bit timestamp arithmetic.
func (t *Table) RemoveOutdated(now uint32) {
	for i := range t.entries {
		if !t.entries[i].used {
			continue
		}
		diff := now - t.entries[i].lastSeen
		if diff > MaxTimeoutMs {
			t.entries[i] = entry{}
			t.size--
		}
	}
}

// Each calls fn for every tracked entry; iteration order is unspecified.
func (t *Table) Each(fn func(addr link.Address, lastSeen uint32)) {
	for i := range t.entries {
		if t.entries[i].used {
			fn(t.entries[i].address, t.entries[i].lastSeen)
		}
	}
}

func (t *Table) freeSlot() int {
	for i := range t.entries {
		if !t.entries[i].used {
			return i
		}
	}
	return -1
}

func (t *Table) oldestSlot() int {
	oldest := -1
	var oldestSeen uint32
	for i := range t.entries {
		if !t.entries[i].used {
			continue
		}
		if oldest < 0 || t.entries[i].lastSeen < oldestSeen {
			oldest = i
			oldestSeen = t.entries[i].lastSeen
		}
	}
	return oldest
}
