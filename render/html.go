package render

import (
	"fmt"
	"html"
	"io"

	md "github.com/russross/blackfriday/v2"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

// HTML writes a description of m: the markdown doc rendered to HTML, then one
// table row per state listing its outgoing transitions.
func HTML(w io.Writer, m *dfa.Machine, doc string) error {
	var err error
	f := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format+"\n", args...)
	}

	if doc != "" {
		f(`<div class="machineDoc doc">%s</div>`, md.Run([]byte(doc)))
	}

	outgoing := make(map[dfa.State][]dfa.Edge)
	for _, e := range m.Edges() {
		outgoing[e.From] = append(outgoing[e.From], e)
	}

	f(`<div class="states"><table>`)
	for _, s := range m.States() {
		id := fmt.Sprintf("s%d", s)
		class := "state"
		if m.Accepting(s) {
			class += " accepting"
		}
		if s == m.Start() {
			class += " start"
		}
		f(`<tr class="%s"><td><span id="%s" class="stateName">%s</span></td><td>`, class, id, html.EscapeString(m.Label(s)))
		if edges := outgoing[s]; len(edges) > 0 {
			f(`<table class="transitions">`)
			for _, e := range edges {
				f(`<tr><td><code>%s</code></td><td><a href="#s%d">%s</a></td></tr>`,
					html.EscapeString(e.Label()), e.To, html.EscapeString(m.Label(e.To)))
			}
			f(`</table>`)
		}
		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return err
}
