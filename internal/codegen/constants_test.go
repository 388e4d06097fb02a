package codegen

import "testing"

func TestCompiledVarName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Digits", "CompiledDigits"},
		{"X", "CompiledX"},
	}

	for _, tt := range tests {
		got := CompiledVarName(tt.name)
		if got != tt.want {
			t.Errorf("CompiledVarName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTestFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"digits.go", "digits_test.go"},
		{"out/dfa/words.go", "out/dfa/words_test.go"},
		{"noext", "noext_test.go"},
	}

	for _, tt := range tests {
		got := TestFileName(tt.input)
		if got != tt.want {
			t.Errorf("TestFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
		{"_x", "_x"},
		{"éa", "éa"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
