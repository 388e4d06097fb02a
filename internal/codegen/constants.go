// Package codegen provides code generation helpers and constants.
package codegen

import "strings"

// Variable names used in generated code
const (
	InputName    = "input"
	OffsetName   = "offset"
	FromName     = "from"
	StateName    = "state"
	SymbolName   = "c"
	SizeName     = "size"
	ReceiverName = "r"
	LimitName    = "n"
	ResultName   = "result"
	NextFuncName = "next"
	AcceptName   = "accepting"
)

// NoMatchValue is returned by generated MatchString when nothing matches.
const NoMatchValue = -1

// CompiledPrefix prefixes the ready-to-use value generated for each matcher type.
const CompiledPrefix = "Compiled"

// CompiledVarName returns the name of the ready-to-use value generated for a matcher type.
func CompiledVarName(name string) string {
	return CompiledPrefix + name
}

// TestFileName returns the _test.go path that accompanies a generated file.
func TestFileName(outputFile string) string {
	return strings.TrimSuffix(outputFile, ".go") + "_test.go"
}

// UpperFirst converts a leading ASCII lowercase letter to uppercase.
func UpperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
