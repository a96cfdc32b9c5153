package bnf

import (
	"strconv"
	"testing"

	"github.com/ava12/gevo"
	"github.com/ava12/gevo/grammar"
	. "github.com/ava12/gevo/internal/test"
)

func checkErrorCode(t *testing.T, samples []string, code int) {
	eCode := strconv.Itoa(code)
	for index, src := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := ParseString("string", src)

		if code == 0 {
			if e != nil {
				t.Error(errPrefix + ": unexpected error: " + e.Error())
			}
			continue
		}

		if e == nil {
			t.Error(errPrefix + ": error expected, got success")
			continue
		}

		pe, is := e.(*gevo.Error)
		if !is {
			t.Error(errPrefix + ": *gevo.Error expected, got \"" + e.Error() + "\"")
			continue
		}

		if pe.Code != code {
			t.Error(errPrefix + ": expected error code " + eCode + ", got " + strconv.Itoa(pe.Code) + " (" + pe.Message + ")")
		}
	}
}

func TestValidGrammars(t *testing.T) {
	samples := []string{
		"<s> ::= a",
		"<s> ::= a | b",
		"# comment\n\n<s> ::= <a>b\n<a> ::= a\n",
		"<s> ::= x ::= y",
		"  \t\r\n<s> ::= <s>c | d\r\n",
		"<s> ::= |",
	}
	checkErrorCode(t, samples, 0)
}

func TestMalformedLine(t *testing.T) {
	samples := []string{
		"<s> = a",
		"<s> ::= a\n<b> a | b",
		" # not a comment",
	}
	checkErrorCode(t, samples, MalformedLineError)
}

func TestNotNonterminal(t *testing.T) {
	samples := []string{
		"s ::= a",
		" ::= a",
		"<s><a> ::= a",
		"<s> x ::= a",
	}
	checkErrorCode(t, samples, NotNonterminalError)
}

func TestRuleDefined(t *testing.T) {
	samples := []string{
		"<s> ::= a\n<s> ::= b",
		"<s> ::= <a>\n<a> ::= a\n  <a>  ::= b",
	}
	checkErrorCode(t, samples, RuleDefinedError)
}

func TestUndefinedNonterminal(t *testing.T) {
	samples := []string{
		"<s> ::= <a>",
		"<s> ::= a | b<s><b>",
	}
	checkErrorCode(t, samples, UndefinedNonterminalError)
}

func TestMissingStartRule(t *testing.T) {
	samples := []string{
		"",
		"# only comments\n\n   \n",
	}
	checkErrorCode(t, samples, MissingStartRuleError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("test.bnf", "<s> ::= a\n\n<s> ::= <a> | b<foo>")
	ExpectErrorCode(t, RuleDefinedError, e)
	ee := e.(*gevo.Error)
	ExpectString(t, "test.bnf", ee.SourceName)
	ExpectInt(t, 3, ee.Line)
	ExpectInt(t, 1, ee.Col)

	_, e = ParseString("test.bnf", "<s> ::= a | <b>\n<b> ::= x | y<foo>")
	ExpectErrorCode(t, UndefinedNonterminalError, e)
	ee = e.(*gevo.Error)
	ExpectInt(t, 2, ee.Line)
	ExpectInt(t, 14, ee.Col)
	Assert(t, IsFormatError(e), "expecting format error")
}

func TestIsFormatError(t *testing.T) {
	_, e := ParseString("", "")
	Assert(t, !IsFormatError(e), "missing start rule is not a format error")
	_, e = ParseString("", "<s> a")
	Assert(t, IsFormatError(e), "malformed line is a format error")
}

func TestProductionSymbols(t *testing.T) {
	g, e := ParseString("string", "<s> ::= <a> + <b>(<a>) | x y \n<a> ::= a\n<b> ::= <a><a>")
	ExpectNoError(t, e)

	s := g.Start()
	ExpectString(t, "<s>", s.Name)
	ExpectInt(t, 2, s.BFactor)

	p := s.Productions[0]
	expected := []struct {
		text    string
		nonterm int
	}{
		{"<a>", 1},
		{" + ", -1},
		{"<b>", 2},
		{"(", -1},
		{"<a>", 1},
		{")", -1},
	}
	ExpectInt(t, len(expected), len(p.Symbols))
	ExpectInt(t, 3, p.Nonterms)
	for i, sym := range p.Symbols {
		ExpectString(t, expected[i].text, sym.Text)
		ExpectInt(t, expected[i].nonterm, sym.Nonterm)
		ExpectBool(t, expected[i].nonterm < 0, sym.IsTerminal())
	}

	p = s.Productions[1]
	ExpectInt(t, 1, len(p.Symbols))
	ExpectString(t, "x y", p.Symbols[0].Text)
	Assert(t, p.IsTerminal(), "expecting terminal-only production")

	for _, text := range []string{" + ", "(", ")", "x y", "a"} {
		Assert(t, g.IsTerminal(text), "expecting %q to be a terminal", text)
	}
	Assert(t, !g.IsTerminal("<a>"), "<a> is not a terminal")
	ExpectInt(t, 5, len(g.Terminals))
}

func TestProductionIndexes(t *testing.T) {
	g, e := ParseString("string", "<s> ::= <a> | <a><a> | x\n<a> ::= a | b")
	ExpectNoError(t, e)
	ExpectInt(t, 5, g.Productions())

	index := 0
	for _, nt := range g.Nonterms {
		for _, p := range nt.Productions {
			ExpectInt(t, index, p.Index)
			index++
		}
	}
}

func TestDialect(t *testing.T) {
	samples := map[string]grammar.Dialect{
		"grammar.bnf":      grammar.StandardDialect,
		"grammar.pybnf":    grammar.BlockDialect,
		"grammar.pybnf.gz": grammar.StandardDialect,
		"":                 grammar.StandardDialect,
	}

	for name, dialect := range samples {
		g, e := ParseString(name, "<s> ::= x")
		ExpectNoError(t, e)
		Expect(t, g.Dialect == dialect, dialect, g.Dialect)
		ExpectString(t, name, g.Name)
	}
}
