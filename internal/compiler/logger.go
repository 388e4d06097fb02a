package compiler

import (
	"fmt"
	"io"
	"os"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

const logPrefix = "[dfamatch] "

// Logger reports generation decisions when verbose output is enabled.
// A nil *Logger discards everything.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger returns a logger writing to stderr when enabled.
func NewLogger(enabled bool) *Logger {
	return &Logger{enabled: enabled, out: os.Stderr}
}

// SetOutput redirects the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Enabled returns whether messages are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log writes one formatted line.
func (l *Logger) Log(format string, args ...any) {
	if l.Enabled() {
		fmt.Fprintf(l.out, logPrefix+format+"\n", args...)
	}
}

// Section starts a titled block of lines.
func (l *Logger) Section(name string) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "\n%s=== %s ===\n", logPrefix, name)
	}
}

// Automaton logs the shape of m: its states, where matching starts and the
// outgoing symbol runs of every state.
func (l *Logger) Automaton(source string, m *dfa.Machine) {
	if !l.Enabled() {
		return
	}
	l.Section("Automaton")
	l.Log("Source: %s", source)
	l.Log("States: %d, accepting %v", len(m.States()), m.AcceptingStates())
	l.Log("Start state: %d (%s)", m.Start(), m.Label(m.Start()))
	if m.Accepting(m.Start()) {
		l.Log("Start state is accepting: empty matches possible")
	}
	edges := m.Edges()
	l.Log("Transitions: %d symbols in %d edges", m.NumTransitions(), len(edges))
	for _, e := range edges {
		l.Log("  %s -> %s on %s", m.Label(e.From), m.Label(e.To), e.Label())
	}
}
