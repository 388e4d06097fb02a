package compiler

import (
	"unicode/utf8"

	"github.com/KromDaniel/dfamatch/internal/codegen"
	"github.com/KromDaniel/dfamatch/pkg/dfa"
	"github.com/dave/jennifer/jen"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// generateNextFunction generates the direct-coded transition function:
//
//	func (r Name) next(state int, c rune) (int, bool) {
//		switch state {
//		case 0:
//			switch {
//			case c >= '0' && c <= '9':
//				return 1, true
//			}
//		}
//		return 0, false
//	}
func (c *Compiler) generateNextFunction() {
	var stateCases []jen.Code
	for _, s := range c.states {
		edges := c.edges[s]
		if len(edges) == 0 {
			continue
		}
		symbolCases := make([]jen.Code, 0, len(edges))
		for _, e := range edges {
			conds := rangeConditions(e)
			if len(conds) == 0 {
				continue
			}
			symbolCases = append(symbolCases,
				jen.Case(conds...).Block(
					jen.Return(jen.Lit(int(e.To)), jen.True()),
				),
			)
		}
		if len(symbolCases) == 0 {
			continue
		}
		stateCases = append(stateCases,
			jen.Case(jen.Lit(int(s))).Block(
				jen.Switch().Block(symbolCases...),
			),
		)
	}

	var body []jen.Code
	if len(stateCases) > 0 {
		body = append(body, jen.Switch(jen.Id(codegen.StateName)).Block(stateCases...))
	}
	body = append(body, jen.Return(jen.Lit(0), jen.False()))

	c.file.Comment("next returns the successor of state on c, or false if there is no transition.")
	c.method(codegen.NextFuncName).
		Params(jen.Id(codegen.StateName).Int(), jen.Id(codegen.SymbolName).Rune()).
		Params(jen.Int(), jen.Bool()).
		Block(body...)
	c.file.Line()
}

// rangeConditions returns one boolean case expression per decodable symbol run of e.
func rangeConditions(e dfa.Edge) []jen.Code {
	sym := jen.Id(codegen.SymbolName)
	ranges := decodableRuns(e.Ranges())
	conds := make([]jen.Code, 0, len(ranges))
	for _, rg := range ranges {
		if rg[0] == rg[1] {
			conds = append(conds, sym.Clone().Op("==").LitRune(rg[0]))
			continue
		}
		conds = append(conds,
			sym.Clone().Op(">=").LitRune(rg[0]).Op("&&").Add(sym.Clone()).Op("<=").LitRune(rg[1]),
		)
	}
	return conds
}

// decodableRuns clamps runs to the code points utf8 decoding can produce.
// Surrogates and values outside [0, utf8.MaxRune] never reach next, and they
// have no rune literal.
func decodableRuns(ranges [][2]rune) [][2]rune {
	out := make([][2]rune, 0, len(ranges))
	for _, rg := range ranges {
		lo, hi := max(rg[0], 0), min(rg[1], utf8.MaxRune)
		if lo >= surrogateMin && lo <= surrogateMax {
			lo = surrogateMax + 1
		}
		if hi >= surrogateMin && hi <= surrogateMax {
			hi = surrogateMin - 1
		}
		if lo > hi {
			continue
		}
		out = append(out, [2]rune{lo, hi})
	}
	return out
}

// generateAcceptingFunction generates the accepting-state check.
func (c *Compiler) generateAcceptingFunction() {
	var body []jen.Code
	if len(c.accepting) > 0 {
		lits := make([]jen.Code, len(c.accepting))
		for i, s := range c.accepting {
			lits[i] = jen.Lit(int(s))
		}
		body = append(body,
			jen.Switch(jen.Id(codegen.StateName)).Block(
				jen.Case(lits...).Block(jen.Return(jen.True())),
			),
		)
	}
	body = append(body, jen.Return(jen.False()))

	c.file.Comment("accepting reports whether state is an accepting state.")
	c.method(codegen.AcceptName).
		Params(jen.Id(codegen.StateName).Int()).
		Params(jen.Bool()).
		Block(body...)
	c.file.Line()
}

// generateMatchStringFunction generates MatchString, the anchored greedy match.
func (c *Compiler) generateMatchStringFunction() {
	input := jen.Id(codegen.InputName)
	offset := jen.Id(codegen.OffsetName)
	state := jen.Id(codegen.StateName)
	from := jen.Id(codegen.FromName)

	c.file.Commentf("MatchString returns the offset just past the longest match starting at from, or %d.", codegen.NoMatchValue)
	c.method("MatchString").
		Params(input.Clone().String(), from.Clone().Int()).
		Params(jen.Int()).
		Block(
			jen.If(from.Clone().Op("<").Lit(0).Op("||").Add(from.Clone()).Op(">").Len(input.Clone())).Block(
				jen.Return(jen.Lit(codegen.NoMatchValue)),
			),
			jen.List(state.Clone(), offset.Clone()).Op(":=").List(jen.Lit(int(c.config.Machine.Start())), from.Clone()),
			jen.For(offset.Clone().Op("<").Len(input.Clone())).Block(
				jen.List(jen.Id(codegen.SymbolName), jen.Id(codegen.SizeName)).Op(":=").
					Qual("unicode/utf8", "DecodeRuneInString").Call(input.Clone().Index(offset.Clone().Op(":"))),
				jen.List(jen.Id("nextState"), jen.Id("ok")).Op(":=").
					Id(codegen.ReceiverName).Dot(codegen.NextFuncName).Call(state.Clone(), jen.Id(codegen.SymbolName)),
				jen.If(jen.Op("!").Id("ok")).Block(jen.Break()),
				state.Clone().Op("=").Id("nextState"),
				offset.Clone().Op("+=").Id(codegen.SizeName),
			),
			jen.If(jen.Id(codegen.ReceiverName).Dot(codegen.AcceptName).Call(state.Clone())).Block(
				jen.Return(offset.Clone()),
			),
			jen.Return(jen.Lit(codegen.NoMatchValue)),
		)
	c.file.Line()
}

// generateFindAllStringIndexFunction generates FindAllStringIndex with the
// one-rune advance after empty matches.
func (c *Compiler) generateFindAllStringIndexFunction() {
	input := jen.Id(codegen.InputName)
	offset := jen.Id(codegen.OffsetName)
	limit := jen.Id(codegen.LimitName)
	result := jen.Id(codegen.ResultName)

	skipRune := []jen.Code{
		jen.List(jen.Id("_"), jen.Id(codegen.SizeName)).Op(":=").
			Qual("unicode/utf8", "DecodeRuneInString").Call(input.Clone().Index(offset.Clone().Op(":"))),
		offset.Clone().Op("+=").Id(codegen.SizeName),
	}

	c.file.Comment("FindAllStringIndex returns the [start, end) offsets of successive non-overlapping matches.")
	c.file.Comment("If n >= 0, at most n matches are returned.")
	c.method("FindAllStringIndex").
		Params(input.Clone().String(), limit.Clone().Int()).
		Params(jen.Index().Index().Int()).
		Block(
			jen.If(limit.Clone().Op("==").Lit(0)).Block(
				jen.Return(jen.Nil()),
			),
			jen.Var().Add(result.Clone()).Index().Index().Int(),
			jen.For(
				offset.Clone().Op(":=").Lit(0),
				offset.Clone().Op("<").Len(input.Clone()),
				jen.Empty(),
			).Block(
				jen.Id("end").Op(":=").Id(codegen.ReceiverName).Dot("MatchString").Call(input.Clone(), offset.Clone()),
				jen.If(jen.Id("end").Op("<").Lit(0)).Block(
					append(append([]jen.Code{}, skipRune...), jen.Continue())...,
				),
				result.Clone().Op("=").Append(result.Clone(), jen.Index().Int().Values(offset.Clone(), jen.Id("end"))),
				jen.If(limit.Clone().Op(">").Lit(0).Op("&&").Len(result.Clone()).Op(">=").Add(limit.Clone())).Block(
					jen.Break(),
				),
				jen.Comment("Move past this match, or one rune past an empty match"),
				jen.If(jen.Id("end").Op("==").Add(offset.Clone())).Block(skipRune...).Else().Block(
					offset.Clone().Op("=").Id("end"),
				),
			),
			jen.Return(result.Clone()),
		)
	c.file.Line()
}

// generateFindAllStringFunction generates FindAllString on top of FindAllStringIndex.
func (c *Compiler) generateFindAllStringFunction() {
	input := jen.Id(codegen.InputName)

	c.file.Comment("FindAllString returns the text of successive non-overlapping matches.")
	c.method("FindAllString").
		Params(input.Clone().String(), jen.Id(codegen.LimitName).Int()).
		Params(jen.Index().String()).
		Block(
			jen.Id("locs").Op(":=").Id(codegen.ReceiverName).Dot("FindAllStringIndex").Call(input.Clone(), jen.Id(codegen.LimitName)),
			jen.If(jen.Id("locs").Op("==").Nil()).Block(
				jen.Return(jen.Nil()),
			),
			jen.Id("out").Op(":=").Make(jen.Index().String(), jen.Len(jen.Id("locs"))),
			jen.For(jen.List(jen.Id("i"), jen.Id("loc")).Op(":=").Range().Id("locs")).Block(
				jen.Id("out").Index(jen.Id("i")).Op("=").Add(input.Clone()).Index(
					jen.Id("loc").Index(jen.Lit(0)).Op(":").Id("loc").Index(jen.Lit(1)),
				),
			),
			jen.Return(jen.Id("out")),
		)
	c.file.Line()
}
