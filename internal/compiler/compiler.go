// Package compiler generates direct-coded Go matchers from a built automaton.
package compiler

import (
	"fmt"
	"go/format"
	"os"

	"github.com/KromDaniel/dfamatch/internal/codegen"
	"github.com/KromDaniel/dfamatch/pkg/dfa"
	"github.com/dave/jennifer/jen"
	"github.com/dustin/go-humanize"
)

// Config holds the configuration for code generation.
type Config struct {
	Machine          *dfa.Machine
	Source           string   // Description of where the machine came from, for the header comment
	Name             string   // Generated type name
	OutputFile       string
	Package          string
	GenerateTestFile bool     // Generate test file with tests and benchmarks
	TestFileInputs   []string // Test inputs for generated test file
	Verbose          bool     // Enable verbose logging of generation decisions
}

// Compiler generates Go code from an automaton.
type Compiler struct {
	config    Config
	file      *jen.File
	logger    *Logger
	states    []dfa.State
	edges     map[dfa.State][]dfa.Edge // outgoing edges by source state
	accepting []dfa.State
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	c := &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
		edges:  make(map[dfa.State][]dfa.Edge),
	}

	if config.Machine != nil {
		c.states = config.Machine.States()
		c.accepting = config.Machine.AcceptingStates()
		for _, e := range config.Machine.Edges() {
			c.edges[e.From] = append(c.edges[e.From], e)
		}
	}

	return c
}

// analyzeAndLog logs machine statistics if verbose mode is enabled.
func (c *Compiler) analyzeAndLog() {
	c.logger.Automaton(c.config.Source, c.config.Machine)

	c.logger.Section("Code Layout")
	checks, dropped := 0, 0
	for _, edges := range c.edges {
		for _, e := range edges {
			runs := e.Ranges()
			kept := decodableRuns(runs)
			checks += len(kept)
			dropped += len(runs) - len(kept)
		}
	}
	c.logger.Log("Range checks in next(): %d", checks)
	if dropped > 0 {
		c.logger.Log("Dropped %d symbol runs utf8 decoding never yields", dropped)
	}
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// SetLogger replaces the verbose logger.
func (c *Compiler) SetLogger(l *Logger) {
	c.logger = l
}

// method returns a jen.Statement for declaring a method on the generated struct.
func (c *Compiler) method(name string) *jen.Statement {
	return c.file.Func().
		Params(jen.Id(codegen.ReceiverName).Id(c.config.Name)).
		Id(name)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if c.config.Machine == nil {
		return fmt.Errorf("no machine to generate")
	}
	c.analyzeAndLog()

	c.file.HeaderComment(fmt.Sprintf("Code generated by dfamatch for automaton: %s. DO NOT EDIT.", c.config.Source))

	// Generate the main struct type
	c.file.Commentf("%s matches text with a deterministic finite automaton of %d states.", c.config.Name, len(c.states))
	c.file.Type().Id(c.config.Name).Struct()
	c.file.Line()

	// Generate convenience variable for direct usage
	c.file.Var().Id(codegen.CompiledVarName(c.config.Name)).Op("=").Id(c.config.Name).Values()
	c.file.Line()

	c.generateNextFunction()
	c.generateAcceptingFunction()
	c.generateMatchStringFunction()
	c.generateFindAllStringIndexFunction()
	c.generateFindAllStringFunction()

	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	size, err := formatFile(c.config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	c.logger.Log("Wrote %s (%s)", c.config.OutputFile, humanize.Bytes(uint64(size)))

	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
// It returns the size of the formatted file.
func formatFile(path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return 0, err
	}

	return len(formatted), os.WriteFile(path, formatted, 0644)
}
