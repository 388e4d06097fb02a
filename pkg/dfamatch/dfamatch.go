// Package dfamatch provides automaton-to-Go code generation functionality.
// It turns a deterministic finite automaton into a direct-coded Go matcher at build time.
package dfamatch

import (
	"fmt"
	"go/token"

	"github.com/KromDaniel/dfamatch/internal/codegen"
	"github.com/KromDaniel/dfamatch/internal/compiler"
	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

// Options configures the code generation process.
type Options struct {
	// Machine is the automaton to compile. If nil, DefinitionFile is loaded instead.
	Machine *dfa.Machine

	// DefinitionFile is the path of a YAML automaton definition
	DefinitionFile string

	// Name is the generated type name (e.g., "Digits" generates "Digits" and "CompiledDigits")
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// GenerateTestFile generates a test file asserting today's matches for TestFileInputs (default: true if TestFileInputs provided)
	GenerateTestFile bool

	// TestFileInputs is a list of test inputs for the generated test file. If empty and GenerateTestFile is true, defaults to []string{"example"}
	TestFileInputs []string

	// Verbose logs generation decisions to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Machine == nil && o.DefinitionFile == "" {
		return fmt.Errorf("machine or definition file is required")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("name %q is not a valid Go identifier", o.Name)
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", o.Package)
	}
	return nil
}

// Compile generates a Go matcher for the configured automaton.
// It returns an error if the definition is invalid or code generation fails.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	machine := opts.Machine
	source := "builder"
	if machine == nil {
		def, err := dfa.LoadDefinition(opts.DefinitionFile)
		if err != nil {
			return fmt.Errorf("failed to load definition: %w", err)
		}
		machine, err = def.Build()
		if err != nil {
			return fmt.Errorf("failed to build machine: %w", err)
		}
		source = opts.DefinitionFile
		if def.Name != "" {
			source = def.Name
		}
	}

	// Set default for GenerateTestFile
	generateTestFile := opts.GenerateTestFile || len(opts.TestFileInputs) > 0

	config := compiler.Config{
		Machine:          machine,
		Source:           source,
		Name:             codegen.UpperFirst(opts.Name),
		Package:          opts.Package,
		GenerateTestFile: generateTestFile,
		TestFileInputs:   opts.TestFileInputs,
		Verbose:          opts.Verbose,
	}

	c := compiler.New(config)
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}
