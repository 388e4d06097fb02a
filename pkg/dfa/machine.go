// Package dfa implements a table-driven deterministic finite automaton that finds
// substrings of a text accepted by the automaton.
//
// The automaton is built once, by calling Add, AddAll or AddRange after New, or from a
// YAML definition, and is read-only afterwards. Matching is greedy: starting at an
// offset the automaton consumes symbols for as long as transitions exist and reports a
// match if it stops in an accepting state.
//
//	m := dfa.New(0, 1)
//	m.AddRange(0, '0', '9', 1)
//	m.AddRange(1, '0', '9', 1)
//	m.FindAll("01.01.2017", -1) // ["01" "01" "2017"]
//
// A Machine is safe for concurrent matching once construction has finished.
package dfa

import (
	"fmt"
	"unicode/utf8"
)

// NoMatch is returned by Match when no match starts at the given offset.
const NoMatch = -1

// Machine is a deterministic finite automaton over runes.
type Machine struct {
	start     State
	accepting map[State]struct{}
	table     *Table
	labels    map[State]string
}

// New creates a machine with the given start state and accepting states.
// Transitions are added afterwards.
func New(start State, accepting ...State) *Machine {
	m := &Machine{
		start:     start,
		accepting: make(map[State]struct{}, len(accepting)),
		table:     NewTable(),
	}
	for _, s := range accepting {
		m.accepting[s] = struct{}{}
	}
	return m
}

// Add inserts a single transition, replacing any previous one for (from, symbol).
func (m *Machine) Add(from State, symbol rune, to State) {
	m.table.Add(from, symbol, to)
}

// AddAll inserts one transition per symbol.
func (m *Machine) AddAll(from State, symbols []rune, to State) {
	m.table.AddAll(from, symbols, to)
}

// AddRange inserts a transition for every code point in [lo, hi].
func (m *Machine) AddRange(from State, lo, hi rune, to State) {
	m.table.AddRange(from, lo, hi, to)
}

// Lookup returns the successor of state on symbol, or false if there is none.
func (m *Machine) Lookup(state State, symbol rune) (State, bool) {
	return m.table.Lookup(state, symbol)
}

// Start returns the start state.
func (m *Machine) Start() State {
	return m.start
}

// Accepting reports whether s is an accepting state.
func (m *Machine) Accepting(s State) bool {
	_, ok := m.accepting[s]
	return ok
}

// AcceptingStates returns the accepting states in ascending order.
func (m *Machine) AcceptingStates() []State {
	return sortedKeys(m.accepting)
}

// Edges returns the grouped transitions of the machine.
func (m *Machine) Edges() []Edge {
	return m.table.Edges()
}

// NumTransitions returns the number of (state, symbol) entries.
func (m *Machine) NumTransitions() int {
	return m.table.Len()
}

// States returns every state mentioned by the machine, in ascending order.
func (m *Machine) States() []State {
	seen := map[State]struct{}{m.start: {}}
	for s := range m.accepting {
		seen[s] = struct{}{}
	}
	for from, row := range m.table.rows {
		seen[from] = struct{}{}
		for _, to := range row {
			seen[to] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// SetLabel attaches a display name to a state. Labels never affect matching.
func (m *Machine) SetLabel(s State, label string) {
	if m.labels == nil {
		m.labels = make(map[State]string)
	}
	m.labels[s] = label
}

// Label returns the display name of s, or "s<id>" if none was set.
func (m *Machine) Label(s State) string {
	if label, ok := m.labels[s]; ok {
		return label
	}
	return fmt.Sprintf("s%d", s)
}

// Match runs the machine on text starting at byte offset from.
// It returns the offset just past the longest prefix the transitions allow when the
// machine stops in an accepting state, and NoMatch otherwise. An offset outside
// [0, len(text)] yields NoMatch.
func (m *Machine) Match(text string, from int) int {
	if from < 0 || from > len(text) {
		return NoMatch
	}
	state, i := m.start, from
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		next, ok := m.table.Lookup(state, r)
		if !ok {
			break
		}
		state = next
		i += size
	}
	if m.Accepting(state) {
		return i
	}
	return NoMatch
}

// MatchBytes is like Match but operates on a byte slice.
func (m *Machine) MatchBytes(b []byte, from int) int {
	if from < 0 || from > len(b) {
		return NoMatch
	}
	end, state := m.Run(b, from)
	if m.Accepting(state) {
		return end
	}
	return NoMatch
}

// Run walks the machine over b from offset from until a symbol has no transition or
// the input ends. It returns where the walk stopped and the state reached, without
// deciding acceptance. An offset outside [0, len(b)] yields NoMatch and the start
// state.
func (m *Machine) Run(b []byte, from int) (end int, state State) {
	if from < 0 || from > len(b) {
		return NoMatch, m.start
	}
	state, end = m.start, from
	for end < len(b) {
		r, size := utf8.DecodeRune(b[end:])
		next, ok := m.table.Lookup(state, r)
		if !ok {
			break
		}
		state = next
		end += size
	}
	return end, state
}

// FindAllIndex returns the [start, end) offsets of successive non-overlapping
// matches, leftmost first and longest at each start. If n >= 0 at most n matches are
// returned; n == 0 returns nil.
func (m *Machine) FindAllIndex(text string, n int) [][]int {
	if n == 0 {
		return nil
	}
	var result [][]int
	for i := 0; i < len(text); {
		end := m.Match(text, i)
		if end < 0 {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		result = append(result, []int{i, end})
		if n > 0 && len(result) >= n {
			break
		}
		if end == i {
			// empty match, step over one rune so the scan terminates
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		} else {
			i = end
		}
	}
	return result
}

// FindAll returns the text of successive non-overlapping matches.
// See FindAllIndex for the meaning of n.
func (m *Machine) FindAll(text string, n int) []string {
	idx := m.FindAllIndex(text, n)
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx))
	for i, loc := range idx {
		out[i] = text[loc[0]:loc[1]]
	}
	return out
}

// FindAllBytes is like FindAll but operates on a byte slice. The returned slices
// alias b.
func (m *Machine) FindAllBytes(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	var result [][]byte
	for i := 0; i < len(b); {
		end := m.MatchBytes(b, i)
		if end < 0 || end == i {
			if end == i {
				result = append(result, b[i:i:i])
			}
			_, size := utf8.DecodeRune(b[i:])
			i += size
		} else {
			result = append(result, b[i:end:end])
			i = end
		}
		if n > 0 && len(result) >= n {
			break
		}
	}
	return result
}

