package domain

import (
	"iter"
	"slices"
)

// Table is the transition relation of a machine.
// It is immutable once built and safe for concurrent readers.
//
// Entries are grouped by (direction, source state) and kept in insertion
// order, which is the order the runtime examines them in.
type Table struct {
	states   map[Direction]map[string][]Transition
	sources  map[Direction][]string
	shadowed []Transition
	size     int
}

// TableBuilder accumulates transitions into a Table.
// A later transition with the exact same Key overwrites the earlier one in place.
type TableBuilder struct {
	t     *Table
	built bool
}

// NewTableBuilder creates an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{t: &Table{
		states:  map[Direction]map[string][]Transition{Forward: {}, Backward: {}},
		sources: map[Direction][]string{},
	}}
}

// Add inserts a transition. Adding after Build panics.
func (b *TableBuilder) Add(tr Transition) *TableBuilder {
	if b.built {
		panic("domain: TableBuilder used after Build")
	}
	byState := b.t.states[tr.Direction]
	entries, seen := byState[tr.State]
	if !seen {
		b.t.sources[tr.Direction] = append(b.t.sources[tr.Direction], tr.State)
	}
	for i, e := range entries {
		if e.Key == tr.Key {
			b.t.shadowed = append(b.t.shadowed, e)
			entries[i] = tr
			return b
		}
	}
	byState[tr.State] = append(entries, tr)
	b.t.size++
	return b
}

// Build freezes the builder and returns the table.
func (b *TableBuilder) Build() *Table {
	b.built = true
	return b.t
}

// NewTable builds a table from records, failing on the first malformed one.
// No partial table is returned on error.
func NewTable(records []Record) (*Table, error) {
	b := NewTableBuilder()
	for i, r := range records {
		tr, err := r.Transition()
		if err != nil {
			if mre, ok := err.(*MalformedRecordError); ok {
				mre.Record = i + 1
				mre.Line = r.Line
			}
			return nil, err
		}
		b.Add(tr)
	}
	return b.Build(), nil
}

// Entries yields the transitions leaving state in the given direction, in insertion order.
func (t *Table) Entries(dir Direction, state string) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for _, tr := range t.states[dir][state] {
			if !yield(tr) {
				return
			}
		}
	}
}

// Lookup returns the value stored under an exact key.
func (t *Table) Lookup(k Key) (Value, bool) {
	for _, tr := range t.states[k.Direction][k.State] {
		if tr.Key == k {
			return tr.Value, true
		}
	}
	return Value{}, false
}

// HasEpsilon reports whether state has any transition that requires no input.
func (t *Table) HasEpsilon(dir Direction, state string) bool {
	for _, tr := range t.states[dir][state] {
		if tr.Input.IsEpsilon() {
			return true
		}
	}
	return false
}

// Transitions yields every transition of one direction, grouped by source state
// in order of first appearance.
func (t *Table) Transitions(dir Direction) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for _, src := range t.sources[dir] {
			for _, tr := range t.states[dir][src] {
				if !yield(tr) {
					return
				}
			}
		}
	}
}

// Sources returns the states with outgoing transitions in dir.
func (t *Table) Sources(dir Direction) []string {
	return slices.Clone(t.sources[dir])
}

// States returns the sorted state universe: every source and destination in both directions.
func (t *Table) States() []string {
	set := t.stateSet()
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// HasState reports whether s appears anywhere in the table.
func (t *Table) HasState(s string) bool {
	_, ok := t.stateSet()[s]
	return ok
}

func (t *Table) stateSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, dir := range Directions {
		for tr := range t.Transitions(dir) {
			set[tr.State] = struct{}{}
			set[tr.To] = struct{}{}
		}
	}
	return set
}

// Shadowed returns the transitions that were overwritten by a later entry with
// an identical key while the table was built.
func (t *Table) Shadowed() []Transition {
	return slices.Clone(t.shadowed)
}

// Len is the number of distinct transitions.
func (t *Table) Len() int {
	return t.size
}
