// Package render describes a machine as Graphviz, Mermaid or HTML.
package render

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

// DotOpts controls Dot output.
type DotOpts struct {
	// Name is the graph name. Defaults to "dfa".
	Name string

	// RankDir is the Graphviz layout direction. Defaults to "LR".
	RankDir string

	// Highlight lists states drawn in red, e.g. the states a trace went through.
	Highlight []dfa.State
}

// Dot writes a Graphviz digraph for m. The start state is bold and accepting states
// are double circles; every edge is labelled with its symbols.
func Dot(w io.Writer, m *dfa.Machine, opts *DotOpts) error {
	if opts == nil {
		opts = &DotOpts{}
	}
	name := opts.Name
	if name == "" {
		name = "dfa"
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}
	highlight := make(map[dfa.State]bool, len(opts.Highlight))
	for _, s := range opts.Highlight {
		highlight[s] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotQuote(name))
	fmt.Fprintf(&b, "  graph [rankdir=%s]\n", rankdir)
	fmt.Fprintf(&b, "  node [shape=\"circle\" style=\"filled\" fillcolor=\"#99ddc8\"]\n")
	fmt.Fprintf(&b, "  edge [fontsize=\"12\"]\n")
	fmt.Fprintf(&b, "  __start [shape=\"point\" label=\"\"]\n")

	for _, s := range m.States() {
		shape := "circle"
		if m.Accepting(s) {
			shape = "doublecircle"
		}
		style := "filled"
		if s == m.Start() {
			style += ",bold"
		}
		color, fill := "black", "#99ddc8"
		if highlight[s] {
			color, fill = "red", "#f98b8b"
		}
		fmt.Fprintf(&b, "  s%d [shape=\"%s\", style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=%s]\n",
			s, shape, style, color, fill, dotQuote(m.Label(s)))
	}

	fmt.Fprintf(&b, "  __start -> s%d\n", m.Start())
	for _, e := range m.Edges() {
		fmt.Fprintf(&b, "  s%d -> s%d [label=%s]\n", e.From, e.To, dotQuote(e.Label()))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
