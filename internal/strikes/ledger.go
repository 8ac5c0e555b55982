package strikes

import (
	"slices"
	"sync"
	"time"
)

// Entry is a snapshot of one ledger row.
type Entry struct {
	ItemID    int64     `json:"item_id"`
	Strikes   int       `json:"strikes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ledger maps queue item ids to strike counts. It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	entries map[int64]Entry
	now     func() time.Time
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[int64]Entry), now: time.Now}
}

// Ensure returns the count for id, creating a zero entry on first sight.
func (l *Ledger) Ensure(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	if !ok {
		entry = Entry{ItemID: id, UpdatedAt: l.now().UTC()}
		l.entries[id] = entry
	}
	return entry.Strikes
}

// Strikes reports the count for id and whether an entry exists.
func (l *Ledger) Strikes(id int64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[id]
	return entry.Strikes, ok
}

func (l *Ledger) Set(id int64, strikes int) {
	if strikes < 0 {
		strikes = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[id] = Entry{ItemID: id, Strikes: strikes, UpdatedAt: l.now().UTC()}
}

// Delete removes id and reports whether it was present.
func (l *Ledger) Delete(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.entries[id]
	delete(l.entries, id)
	return ok
}

// Prune drops every entry whose id is not in seen and returns the dropped
// ids in ascending order.
func (l *Ledger) Prune(seen []int64) []int64 {
	keep := make(map[int64]struct{}, len(seen))
	for _, id := range seen {
		keep[id] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	var pruned []int64
	for id := range l.entries {
		if _, ok := keep[id]; !ok {
			pruned = append(pruned, id)
			delete(l.entries, id)
		}
	}
	slices.Sort(pruned)
	return pruned
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the ledger ordered by item id.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		out = append(out, entry)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.ItemID < b.ItemID:
			return -1
		case a.ItemID > b.ItemID:
			return 1
		}
		return 0
	})
	return out
}

// Reset drops every entry.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
}

// restore inserts an entry loaded from storage, keeping its timestamp.
func (l *Ledger) restore(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[entry.ItemID] = entry
}
