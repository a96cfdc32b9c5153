// Package grammar defines analyzed context-free grammar used by mapper.
// Grammars are built by bnf package and are read-only afterwards,
// except for permutation counter cache which is guarded internally.
package grammar

import (
	"math"
)

// Unreachable is MinSteps value of a non-terminal that cannot be expanded to terminals.
const Unreachable = math.MaxInt

// StartNonterm is the index of start non-terminal (the first defined one).
const StartNonterm = 0

// SymbolKind tells terminal and non-terminal symbols apart.
type SymbolKind int

const (
	TerminalSymbol SymbolKind = iota
	NonterminalSymbol
)

// Symbol is an element of a production.
// Nonterm, MinSteps, and Recursive are used only by non-terminal symbols.
type Symbol struct {
	Kind SymbolKind
	// Text is either terminal text or non-terminal name including angle brackets.
	Text      string
	Nonterm   int
	MinSteps  int
	Recursive bool
}

func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalSymbol
}

// Production is one alternative of a rule.
type Production struct {
	// Index is a handle unique among all productions of a grammar.
	Index   int
	Symbols []Symbol
	// Nonterms is the number of non-terminal symbols.
	Nonterms int
}

// IsTerminal reports whether production contains terminals only.
func (p Production) IsTerminal() bool {
	return p.Nonterms == 0
}

// Nonterm describes a non-terminal together with its rule.
type Nonterm struct {
	Name string
	// MinSteps is the minimum derivation depth needed to expand this non-terminal to terminals.
	MinSteps int
	// Expanded is false if the non-terminal never expands to terminals.
	Expanded  bool
	Recursive bool
	// BFactor is the branching factor, the number of productions.
	BFactor     int
	Productions []Production
}

// Dialect defines phenotype post-processing.
type Dialect int

const (
	StandardDialect Dialect = iota
	// BlockDialect phenotypes use {: and :} as block markers and need filtering.
	BlockDialect
)

// Grammar is an analyzed grammar.
type Grammar struct {
	Name    string
	Dialect Dialect
	// Nonterms are listed in definition order, start non-terminal goes first.
	Nonterms []Nonterm
	// Terminals lists all terminal spans in order of appearance, duplicates included.
	Terminals []string
	// MinPath is MinSteps of start non-terminal.
	MinPath int
	// MaxArity is the maximum MinSteps among expanded non-terminals.
	MaxArity  int
	CountMode CountMode

	nindex      map[string]int
	terms       map[string]bool
	productions int
	counter     counter
}

// New creates grammar from analyzed non-terminals. Production indexes are
// (re)assigned in definition order. Called by bnf package.
func New(name string, dialect Dialect, nts []Nonterm, terminals []string) *Grammar {
	g := &Grammar{
		Name:      name,
		Dialect:   dialect,
		Nonterms:  nts,
		Terminals: terminals,
		nindex:    make(map[string]int, len(nts)),
		terms:     make(map[string]bool, len(terminals)),
	}

	for i := range nts {
		nt := &nts[i]
		g.nindex[nt.Name] = i
		for j := range nt.Productions {
			nt.Productions[j].Index = g.productions
			g.productions++
		}
		if nt.Expanded && nt.MinSteps > g.MaxArity {
			g.MaxArity = nt.MinSteps
		}
	}
	for _, t := range terminals {
		g.terms[t] = true
	}
	if len(nts) > 0 {
		g.MinPath = nts[StartNonterm].MinSteps
	}
	return g
}

// Start returns start non-terminal.
func (g *Grammar) Start() *Nonterm {
	return &g.Nonterms[StartNonterm]
}

// StartSymbol returns a symbol referencing start non-terminal.
func (g *Grammar) StartSymbol() Symbol {
	nt := g.Start()
	return Symbol{
		Kind:      NonterminalSymbol,
		Text:      nt.Name,
		Nonterm:   StartNonterm,
		MinSteps:  nt.MinSteps,
		Recursive: nt.Recursive,
	}
}

// Nonterm returns non-terminal by name (including angle brackets).
func (g *Grammar) Nonterm(name string) (*Nonterm, bool) {
	i, has := g.nindex[name]
	if !has {
		return nil, false
	}
	return &g.Nonterms[i], true
}

// Rule returns productions of a non-terminal.
func (g *Grammar) Rule(name string) ([]Production, bool) {
	nt, has := g.Nonterm(name)
	if !has {
		return nil, false
	}
	return nt.Productions, true
}

// IsTerminal reports whether text was registered as a terminal span.
func (g *Grammar) IsTerminal(text string) bool {
	return g.terms[text]
}

// Productions returns total number of productions.
func (g *Grammar) Productions() int {
	return g.productions
}

// CrossoverNonterms returns names of non-terminals having more than one production,
// these are usable pivot points for subtree crossover.
func (g *Grammar) CrossoverNonterms() []string {
	var result []string
	for _, nt := range g.Nonterms {
		if nt.BFactor > 1 {
			result = append(result, nt.Name)
		}
	}
	return result
}

// Unresolved returns names of non-terminals that cannot be expanded to terminals.
func (g *Grammar) Unresolved() []string {
	var result []string
	for _, nt := range g.Nonterms {
		if !nt.Expanded {
			result = append(result, nt.Name)
		}
	}
	return result
}
