// Package bnf parses BNF grammar description and builds analyzed grammar.
//
// Grammar description contains one rule per line:
//
//	<expr> ::= <expr><op><expr> | (<expr>) | x
//	<op>   ::= + | - | *
//
// Lines starting with # and blank lines are ignored. Non-terminals are enclosed
// in angle brackets, everything else (spaces included) is terminal text.
// The first defined non-terminal is the start one.
package bnf

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ava12/gevo/grammar"
	"github.com/ava12/gevo/source"
)

const (
	ruleSeparator       = "::="
	productionSeparator = "|"
	commentPrefix       = "#"
)

// AltDialectSuffix is the source name suffix selecting grammar.BlockDialect.
const AltDialectSuffix = ".pybnf"

var (
	nontermRe = regexp.MustCompile(`<.+?>`)
	spanRe    = regexp.MustCompile(`<.+?>|[^<>]*`)
)

// Options control grammar analysis.
type Options struct {
	// Strict makes non-terminals that cannot be expanded to terminals an error.
	// Otherwise they are left unexpanded and listed by Grammar.Unresolved.
	Strict bool
	// Window is the number of depths counted by Grammar.CountWindow, grammar.DefaultWindow if 0.
	Window int
	// CountMode is assigned to the grammar before counting.
	CountMode grammar.CountMode
}

type rawSymbol struct {
	text    string
	nonterm int
	pos     source.Pos
}

func (s rawSymbol) isTerminal() bool {
	return s.nonterm < 0
}

type rawProduction []rawSymbol

type rawRule struct {
	name        string
	productions []rawProduction
}

type parseResult struct {
	src       *source.Source
	rules     []rawRule
	index     map[string]int
	terminals []string
}

// ParseString parses grammar description and returns analyzed grammar on success.
// Returns nil and *gevo.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes parses grammar description and returns analyzed grammar on success.
// Returns nil and *gevo.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses grammar description using default options.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	return ParseOptions(s, Options{})
}

// ParseOptions parses grammar description, analyzes it, and counts derivation trees
// for grammar window. Returns nil and *gevo.Error on error.
func ParseOptions(s *source.Source, opts Options) (*grammar.Grammar, error) {
	pr, e := parseRules(s)
	e = resolveNames(pr, e)
	if e != nil {
		return nil, e
	}

	a := newAnalysis(pr)
	e = a.resolveDepths(e)
	e = a.resolveRecursions(e)
	e = a.checkResolved(opts.Strict, e)
	return buildGrammar(a, opts, e)
}

func parseRules(s *source.Source) (*parseResult, error) {
	pr := &parseResult{src: s, index: make(map[string]int)}
	for _, line := range s.Lines() {
		if strings.HasPrefix(line.Text, commentPrefix) || strings.TrimSpace(line.Text) == "" {
			continue
		}

		e := pr.parseLine(line)
		if e != nil {
			return nil, e
		}
	}

	if len(pr.rules) == 0 {
		return nil, missingStartRuleError(s.Name())
	}

	return pr, nil
}

func (pr *parseResult) parseLine(line source.Line) error {
	lhs, rhs, found := strings.Cut(line.Text, ruleSeparator)
	if !found {
		return malformedLineError(pr.src.Pos(line.Start))
	}

	lhsPos := pr.src.Pos(line.Start + leadingSpaces(lhs))
	name := strings.TrimSpace(lhs)
	if name == "" || nontermRe.FindString(name) != name {
		return notNonterminalError(lhsPos, name)
	}

	if _, has := pr.index[name]; has {
		return ruleDefinedError(lhsPos, name)
	}

	rule := rawRule{name: name}
	offset := line.Start + len(lhs) + len(ruleSeparator)
	for _, text := range strings.Split(rhs, productionSeparator) {
		start := offset + leadingSpaces(text)
		rule.productions = append(rule.productions, pr.parseProduction(strings.TrimSpace(text), start))
		offset += len(text) + len(productionSeparator)
	}

	pr.index[name] = len(pr.rules)
	pr.rules = append(pr.rules, rule)
	return nil
}

func (pr *parseResult) parseProduction(text string, offset int) rawProduction {
	if !nontermRe.MatchString(text) {
		pr.terminals = append(pr.terminals, text)
		return rawProduction{{text, -1, pr.src.Pos(offset)}}
	}

	var result rawProduction
	for _, span := range spanRe.FindAllStringIndex(text, -1) {
		if span[0] == span[1] {
			continue
		}

		value := text[span[0]:span[1]]
		symbol := rawSymbol{value, -1, pr.src.Pos(offset + span[0])}
		if nontermRe.MatchString(value) {
			symbol.nonterm = 0
		} else {
			pr.terminals = append(pr.terminals, value)
		}
		result = append(result, symbol)
	}
	return result
}

func leadingSpaces(text string) int {
	return len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
}

// resolveNames replaces non-terminal names with rule indexes.
func resolveNames(pr *parseResult, e error) error {
	if e != nil {
		return e
	}

	for _, r := range pr.rules {
		for _, p := range r.productions {
			for i, s := range p {
				if s.isTerminal() {
					continue
				}

				index, has := pr.index[s.text]
				if !has {
					return undefinedNonterminalError(s.pos, s.text)
				}
				p[i].nonterm = index
			}
		}
	}
	return nil
}

func dialectOf(name string) grammar.Dialect {
	if strings.HasSuffix(name, AltDialectSuffix) {
		return grammar.BlockDialect
	}
	return grammar.StandardDialect
}
