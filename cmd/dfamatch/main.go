// Command dfamatch runs, compiles and draws automata described by YAML definitions.
//
//	dfamatch find -def digits.yaml -text "abba 01.01.2017"
//	dfamatch gen -def digits.yaml -name Digits -output digits.go
//	dfamatch dot -def digits.yaml | dot -Tpng > digits.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
	"github.com/KromDaniel/dfamatch/pkg/dfamatch"
	"github.com/KromDaniel/dfamatch/render"
	"github.com/KromDaniel/dfamatch/stream"
)

const usage = `Usage: dfamatch <command> -def <definition.yaml> [flags]

Commands:
  find     print every match in the input
  gen      generate a Go matcher
  dot      write a Graphviz description
  mermaid  write a Mermaid flowchart
  html     write an HTML description

Run "dfamatch <command> -h" for the flags of a command.
`

var errUsage = errors.New("missing or unknown command")

// ANSI bold red
const (
	markStart = "\x1b[1;31m"
	markEnd   = "\x1b[0m"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (i arrayFlags) String() string {
	return strings.Join(i, ", ")
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch cmd := args[0]; cmd {
	case "find":
		return runFind(args[1:], stdin, stdout)
	case "gen":
		return runGen(args[1:])
	case "dot", "mermaid", "html":
		return runRender(cmd, args[1:], stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: %q", errUsage, cmd)
	}
}

func loadMachine(path string) (*dfa.Definition, *dfa.Machine, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("-def is required")
	}
	def, err := dfa.LoadDefinition(path)
	if err != nil {
		return nil, nil, err
	}
	m, err := def.Build()
	if err != nil {
		return nil, nil, err
	}
	return def, m, nil
}

func runFind(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	defFile := fs.String("def", "", "automaton definition (YAML)")
	text := fs.String("text", "", "text to search; overrides -in")
	in := fs.String("in", "", "file to search (default stdin)")
	n := fs.Int("n", -1, "maximum number of matches, -1 for all")
	index := fs.Bool("index", false, "print start and end offsets with each match")
	useStream := fs.Bool("stream", false, "scan the input in chunks instead of reading it whole")
	bufferSize := fs.Int("buffer", stream.DefaultBufferSize, "chunk size for -stream")
	maxLeftover := fs.Int("max-leftover", 0, "bytes kept for one undecided match with -stream (0 default, -1 unlimited)")
	lines := fs.Bool("lines", false, "print the lines containing a match instead of the matches")
	mark := fs.Bool("mark", false, "print the input with every match highlighted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, m, err := loadMachine(*defFile)
	if err != nil {
		return err
	}

	var r io.Reader = stdin
	switch {
	case *text != "":
		r = strings.NewReader(*text)
	case *in != "":
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if *lines || *mark {
		if *lines {
			r = stream.MatchingLines(r, m)
		}
		if *mark {
			r = stream.MarkMatches(r, m, markStart, markEnd)
		}
		_, err := io.Copy(stdout, r)
		return err
	}

	emit := func(start, end int64, match []byte) {
		if *index {
			fmt.Fprintf(stdout, "%d\t%d\t%s\n", start, end, match)
		} else {
			fmt.Fprintf(stdout, "%s\n", match)
		}
	}

	if *useStream {
		if *n == 0 {
			return nil
		}
		found := 0
		cfg := stream.Config{BufferSize: *bufferSize, MaxLeftover: *maxLeftover}
		return stream.FindReader(r, m, cfg, func(match stream.Match) bool {
			emit(match.StreamOffset, match.StreamOffset+int64(len(match.Text)), match.Text)
			found++
			return *n < 0 || found < *n
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	input := string(data)
	for _, loc := range m.FindAllIndex(input, *n) {
		emit(int64(loc[0]), int64(loc[1]), []byte(input[loc[0]:loc[1]]))
	}
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	defFile := fs.String("def", "", "automaton definition (YAML)")
	name := fs.String("name", "", "generated type name")
	pkg := fs.String("package", "generated", "package of the generated file")
	output := fs.String("output", "", "generated file path")
	withTest := fs.Bool("test", false, "also generate a _test.go file")
	verbose := fs.Bool("verbose", false, "log generation decisions")
	var testInputs arrayFlags
	fs.Var(&testInputs, "test-input", "input for the generated test (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *defFile == "" {
		return fmt.Errorf("-def is required")
	}
	opts := dfamatch.Options{
		DefinitionFile:   *defFile,
		Name:             *name,
		OutputFile:       *output,
		Package:          *pkg,
		GenerateTestFile: *withTest,
		TestFileInputs:   testInputs,
		Verbose:          *verbose,
	}
	if opts.Name == "" {
		def, err := dfa.LoadDefinition(*defFile)
		if err != nil {
			return err
		}
		opts.Name = def.Name
	}
	if opts.OutputFile == "" && opts.Name != "" {
		opts.OutputFile = strings.ToLower(opts.Name) + ".go"
	}

	return dfamatch.Compile(opts)
}

func runRender(format string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(format, flag.ContinueOnError)
	defFile := fs.String("def", "", "automaton definition (YAML)")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	def, m, err := loadMachine(*defFile)
	if err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "dot":
		return render.Dot(w, m, &render.DotOpts{Name: def.Name})
	case "mermaid":
		return render.Mermaid(w, m, nil)
	default:
		return render.HTML(w, m, def.Doc)
	}
}
