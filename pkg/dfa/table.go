package dfa

import (
	"fmt"
	"sort"
	"strings"
)

// State identifies a state of the automaton. It carries no meaning beyond identity.
type State int

// Table maps (state, symbol) pairs to successor states.
// The table does not need to be total: a missing pair means there is no transition.
type Table struct {
	rows map[State]map[rune]State
}

// NewTable creates an empty transition table.
func NewTable() *Table {
	return &Table{rows: make(map[State]map[rune]State)}
}

// Add inserts the transition from --symbol--> to.
// A later Add for the same (from, symbol) pair replaces the earlier one.
func (t *Table) Add(from State, symbol rune, to State) {
	row, ok := t.rows[from]
	if !ok {
		row = make(map[rune]State)
		t.rows[from] = row
	}
	row[symbol] = to
}

// AddAll adds one transition per symbol, in order.
func (t *Table) AddAll(from State, symbols []rune, to State) {
	for _, symbol := range symbols {
		t.Add(from, symbol, to)
	}
}

// AddRange adds a transition for every code point in [lo, hi].
func (t *Table) AddRange(from State, lo, hi rune, to State) {
	for r := lo; r <= hi; r++ {
		t.Add(from, r, to)
	}
}

// Lookup returns the successor of state on symbol.
// The second result is false when no transition exists, whether or not the
// state has any outgoing transitions at all.
func (t *Table) Lookup(state State, symbol rune) (State, bool) {
	row, ok := t.rows[state]
	if !ok {
		return 0, false
	}
	next, ok := row[symbol]
	return next, ok
}

// Len returns the number of (state, symbol) entries in the table.
func (t *Table) Len() int {
	n := 0
	for _, row := range t.rows {
		n += len(row)
	}
	return n
}

// Edge groups every symbol leading from one state to another.
type Edge struct {
	From    State
	To      State
	Symbols []rune // sorted ascending
}

// Edges returns the transitions grouped by (from, to), ordered by source state,
// then by smallest symbol.
func (t *Table) Edges() []Edge {
	var edges []Edge
	for _, from := range sortedKeys(t.rows) {
		byTarget := make(map[State][]rune)
		for symbol, to := range t.rows[from] {
			byTarget[to] = append(byTarget[to], symbol)
		}
		start := len(edges)
		for to, symbols := range byTarget {
			sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
			edges = append(edges, Edge{From: from, To: to, Symbols: symbols})
		}
		group := edges[start:]
		sort.Slice(group, func(i, j int) bool { return group[i].Symbols[0] < group[j].Symbols[0] })
	}
	return edges
}

// Ranges collapses the edge's symbols into inclusive [lo, hi] runs.
func (e Edge) Ranges() [][2]rune {
	var ranges [][2]rune
	for _, r := range e.Symbols {
		if n := len(ranges); n > 0 && ranges[n-1][1]+1 == r {
			ranges[n-1][1] = r
			continue
		}
		ranges = append(ranges, [2]rune{r, r})
	}
	return ranges
}

// Label formats the edge's symbols for display, e.g. "0-9, _".
func (e Edge) Label() string {
	parts := make([]string, 0, len(e.Symbols))
	for _, rg := range e.Ranges() {
		switch {
		case rg[0] == rg[1]:
			parts = append(parts, quoteSymbol(rg[0]))
		case rg[0]+1 == rg[1]:
			parts = append(parts, quoteSymbol(rg[0]), quoteSymbol(rg[1]))
		default:
			parts = append(parts, quoteSymbol(rg[0])+"-"+quoteSymbol(rg[1]))
		}
	}
	return strings.Join(parts, ", ")
}

func quoteSymbol(r rune) string {
	switch {
	case r == '-' || r == ',' || r == '\\':
		return `\` + string(r)
	case r > ' ' && r < 0x7f:
		return string(r)
	}
	return fmt.Sprintf("%q", r)
}

func sortedKeys[V any](m map[State]V) []State {
	keys := make([]State, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
