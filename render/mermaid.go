package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

// MermaidOpts controls Mermaid output. A nil *MermaidOpts means LR direction,
// a green fill for accepting states and symbol labels on edges.
type MermaidOpts struct {
	// Direction is the flowchart direction (LR, TB, ...). Defaults to LR.
	Direction string

	// AcceptFill is the fill color of accepting states. Empty means no style line.
	AcceptFill string

	// ShowSymbols labels edges with their symbols.
	ShowSymbols bool
}

// Mermaid makes a Mermaid (https://mermaid.js.org/) flowchart for m.
func Mermaid(w io.Writer, m *dfa.Machine, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			Direction:   "LR",
			AcceptFill:  "#bcf2db",
			ShowSymbols: true,
		}
	}
	dir := opts.Direction
	if dir == "" {
		dir = "LR"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", dir)
	for _, s := range m.States() {
		label := mermaidQuote(m.Label(s))
		if m.Accepting(s) {
			fmt.Fprintf(&b, "  s%d(((%s)))\n", s, label)
			if opts.AcceptFill != "" {
				fmt.Fprintf(&b, "  style s%d fill:%s\n", s, opts.AcceptFill)
			}
		} else {
			fmt.Fprintf(&b, "  s%d((%s))\n", s, label)
		}
	}
	fmt.Fprintf(&b, "  begin([start]) --> s%d\n", m.Start())
	for _, e := range m.Edges() {
		if opts.ShowSymbols {
			fmt.Fprintf(&b, "  s%d -- %s --> s%d\n", e.From, mermaidQuote(e.Label()), e.To)
		} else {
			fmt.Fprintf(&b, "  s%d --> s%d\n", e.From, e.To)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mermaidQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}
