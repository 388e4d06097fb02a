package dfa

import (
	"reflect"
	"testing"
)

func TestTableLookup(t *testing.T) {
	tab := NewTable()
	tab.Add(0, 'a', 1)
	tab.AddAll(1, []rune("xyz"), 2)

	tests := []struct {
		name   string
		state  State
		symbol rune
		want   State
		wantOK bool
	}{
		{name: "single transition", state: 0, symbol: 'a', want: 1, wantOK: true},
		{name: "multi symbol transition", state: 1, symbol: 'y', want: 2, wantOK: true},
		{name: "known state, unknown symbol", state: 0, symbol: 'b', wantOK: false},
		{name: "unknown state", state: 7, symbol: 'a', wantOK: false},
		{name: "target-only state", state: 2, symbol: 'x', wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tab.Lookup(tt.state, tt.symbol)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%d, %q) ok = %v, want %v", tt.state, tt.symbol, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%d, %q) = %d, want %d", tt.state, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestTableLastWriteWins(t *testing.T) {
	tab := NewTable()
	tab.Add(3, 'c', 4)
	tab.Add(3, 'c', 9)

	got, ok := tab.Lookup(3, 'c')
	if !ok || got != 9 {
		t.Errorf("Lookup(3, 'c') = %d, %v, want 9, true", got, ok)
	}
	if tab.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tab.Len())
	}

	// AddAll applies in order, so a repeated symbol keeps its last target
	tab.AddAll(3, []rune("cc"), 5)
	if got, _ := tab.Lookup(3, 'c'); got != 5 {
		t.Errorf("Lookup(3, 'c') after AddAll = %d, want 5", got)
	}
}

func TestTableAddRange(t *testing.T) {
	tab := NewTable()
	tab.AddRange(0, 'a', 'e', 1)
	if tab.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tab.Len())
	}
	tab.AddRange(0, 'z', 'a', 1) // empty range
	if tab.Len() != 5 {
		t.Errorf("Len() after reversed range = %d, want 5", tab.Len())
	}
}

func TestTableEdges(t *testing.T) {
	tab := NewTable()
	tab.AddRange(0, '0', '9', 1)
	tab.Add(0, '_', 2)
	tab.Add(0, '-', 2)
	tab.AddRange(1, '0', '9', 1)
	tab.AddAll(1, []rune("ac"), 1)

	edges := tab.Edges()
	want := []struct {
		from, to State
		label    string
	}{
		{0, 2, `\-, _`},
		{0, 1, "0-9"},
		{1, 1, "0-9, a, c"},
	}
	if len(edges) != len(want) {
		t.Fatalf("Edges() returned %d edges, want %d: %+v", len(edges), len(want), edges)
	}
	for i, w := range want {
		e := edges[i]
		if e.From != w.from || e.To != w.to || e.Label() != w.label {
			t.Errorf("Edges()[%d] = %d -> %d %q, want %d -> %d %q", i, e.From, e.To, e.Label(), w.from, w.to, w.label)
		}
	}
}

func TestEdgeRanges(t *testing.T) {
	e := Edge{Symbols: []rune("abcxz")}
	want := [][2]rune{{'a', 'c'}, {'x', 'x'}, {'z', 'z'}}
	if got := e.Ranges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ranges() = %q, want %q", got, want)
	}
	if got := (Edge{Symbols: []rune{'\n', ' '}}).Label(); got != `'\n', ' '` {
		t.Errorf("Label() = %q", got)
	}
}
