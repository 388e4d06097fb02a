package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/KromDaniel/dfamatch/internal/codegen"
)

// testCase pairs an input with the matches the machine reported for it at
// generation time.
type testCase struct {
	Input string
	Want  []string
}

var testTemplate = template.Must(template.New("test").Funcs(template.FuncMap{
	"quote":   strconv.Quote,
	"strings": stringSliceLiteral,
}).Parse(`// Code generated by dfamatch for automaton: {{ .Source }}. DO NOT EDIT.

package {{ .Package }}

import (
	"reflect"
	"testing"
)

func Test{{ .Name }}FindAllString(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
{{- range .Cases }}
		{input: {{ quote .Input }}, want: {{ strings .Want }}},
{{- end }}
	}

	for _, tt := range tests {
		got := {{ .Compiled }}.FindAllString(tt.input, -1)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindAllString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func Test{{ .Name }}MatchStringBounds(t *testing.T) {
	for _, input := range []string{ {{- range .Cases }}{{ quote .Input }}, {{ end -}} } {
		for from := 0; from <= len(input); from++ {
			end := {{ .Compiled }}.MatchString(input, from)
			if end != -1 && (end < from || end > len(input)) {
				t.Errorf("MatchString(%q, %d) = %d, out of range", input, from, end)
			}
		}
	}
}

func Benchmark{{ .Name }}FindAllString(b *testing.B) {
{{- range $index, $case := .Cases }}
	b.Run("input {{ $index }}", func(b *testing.B) {
		input := {{ quote $case.Input }}
		b.ReportAllocs()
		for b.Loop() {
			{{ $.Compiled }}.FindAllString(input, -1)
		}
	})
{{- end }}
}
`))

// generateTestFile writes a _test.go next to the output file asserting the matches
// the machine produces for each configured input.
func (c *Compiler) generateTestFile() error {
	inputs := c.config.TestFileInputs
	if len(inputs) == 0 {
		inputs = []string{"example"}
	}

	cases := make([]testCase, len(inputs))
	for i, input := range inputs {
		cases[i] = testCase{Input: input, Want: c.config.Machine.FindAll(input, -1)}
	}

	var buf bytes.Buffer
	err := testTemplate.Execute(&buf, map[string]interface{}{
		"Source":   c.config.Source,
		"Package":  c.config.Package,
		"Name":     c.config.Name,
		"Compiled": codegen.CompiledVarName(c.config.Name),
		"Cases":    cases,
	})
	if err != nil {
		return fmt.Errorf("failed to execute test template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format test file: %w", err)
	}

	path := codegen.TestFileName(c.config.OutputFile)
	if err := os.WriteFile(path, formatted, 0644); err != nil {
		return err
	}
	c.logger.Log("Wrote %s with %d cases", path, len(cases))
	return nil
}

// stringSliceLiteral renders want as a Go literal, nil for no matches.
func stringSliceLiteral(want []string) string {
	if want == nil {
		return "nil"
	}
	quoted := make([]string, len(want))
	for i, s := range want {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
