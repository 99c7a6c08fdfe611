// Package dispatch defines the function table exchanged between the
// library core and providers. Both directions use the same representation:
// an ordered, immutable sequence of (function id, function) pairs.
//
// Function ids are small dense integers scoped per direction. Provider base
// functions (teardown, query-operation) form one scope; each operation
// category numbers its own functions starting at 1, so a table is always
// interpreted relative to the operation it was published for. Consumers
// must tolerate absent optional ids; the registry checks the mandatory
// subset for an operation at fetch time.
package dispatch

// FuncID identifies one function within a dispatch table.
type FuncID int

// Entry is a single (function id, function) pair. The function is stored
// untyped; consumers assert it to the named signature type documented for
// the id.
type Entry struct {
	ID FuncID
	Fn any
}

// Table is an immutable dispatch table. The zero value is an empty table.
type Table struct {
	entries []Entry
	index   map[FuncID]any
}

// New builds a Table from entries. Entries with a nil function are skipped.
// If an id appears more than once, the first occurrence wins; providers
// publish tables once and first-wins keeps resolution deterministic.
func New(entries ...Entry) Table {
	t := Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[FuncID]any, len(entries)),
	}
	for _, e := range entries {
		if e.Fn == nil {
			continue
		}
		if _, ok := t.index[e.ID]; ok {
			continue
		}
		t.entries = append(t.entries, e)
		t.index[e.ID] = e.Fn
	}
	return t
}

// Get returns the function registered for id, or (nil, false) if absent.
func (t Table) Get(id FuncID) (any, bool) {
	fn, ok := t.index[id]
	return fn, ok
}

// Has reports whether a function is registered for id.
func (t Table) Has(id FuncID) bool {
	_, ok := t.index[id]
	return ok
}

// HasAll reports whether every id in ids is registered.
func (t Table) HasAll(ids ...FuncID) bool {
	for _, id := range ids {
		if !t.Has(id) {
			return false
		}
	}
	return true
}

// Missing returns the subset of ids that have no registered function,
// in the order given.
func (t Table) Missing(ids ...FuncID) []FuncID {
	var missing []FuncID
	for _, id := range ids {
		if !t.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// Len returns the number of registered functions.
func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table's entries in publication order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
