// Package mapper implements genotype to phenotype mapping.
//
// A genotype is a sequence of codons (non-negative integers). Mapping starts with
// grammar start symbol and always expands the leftmost unexpanded non-terminal
// choosing production number codon % BFactor. Non-terminals having a single
// production do not consume codons. When codons run out they are reused from
// the beginning ("wrapping").
package mapper

import (
	"strings"

	"github.com/ava12/gevo/filter"
	"github.com/ava12/gevo/grammar"
	"github.com/ava12/gevo/internal/queue"
)

// Default configuration values.
const (
	DefaultCodonSize = 256
	DefaultMaxDepth  = 90
	DefaultMaxWraps  = 0
)

// Config holds mapping limits.
type Config struct {
	// CodonSize is the exclusive upper bound of codon values; used to generate genomes,
	// mapping itself accepts any codon value.
	CodonSize int
	// MaxDepth is the maximum derivation tree depth. Mapping stops as soon as
	// a symbol deeper than MaxDepth is expanded.
	MaxDepth int
	// MaxWraps is the number of times codons may be reused from the beginning.
	MaxWraps int
	// Filter is applied to phenotypes of grammar.BlockDialect grammars, if set.
	Filter func(string) string
}

// DefaultConfig returns configuration with default limits and filter.Blocks filter.
func DefaultConfig() Config {
	return Config{
		CodonSize: DefaultCodonSize,
		MaxDepth:  DefaultMaxDepth,
		MaxWraps:  DefaultMaxWraps,
		Filter:    filter.Blocks,
	}
}

// Result describes mapping outcome.
type Result struct {
	// Phenotype is the derived text. Contains partial output if Invalid is set.
	Phenotype string
	// Output lists terminal texts in derivation order.
	Output []string
	// Invalid is set when depth or wrap limit was hit before full derivation.
	Invalid bool
	// Used is the number of consumed codons, including wrapped ones.
	Used int
	// Nodes is the number of derivation tree nodes.
	// Terminals are counted with their parent's production, not when popped.
	Nodes int
	// Depth is the maximum depth reached plus one.
	Depth int
	// Wraps is the number of wraps counted.
	Wraps int
}

type item struct {
	symbol grammar.Symbol
	depth  int
}

// Mapper maps genomes using the same grammar and configuration.
// Mapper is safe for concurrent use.
type Mapper struct {
	g   *grammar.Grammar
	cfg Config
}

// New creates mapper.
func New(g *grammar.Grammar, cfg Config) *Mapper {
	return &Mapper{g, cfg}
}

func (m *Mapper) Grammar() *grammar.Grammar {
	return m.g
}

func (m *Mapper) Config() Config {
	return m.cfg
}

// Map maps a genome. Identical inputs always give identical results.
func (m *Mapper) Map(codons []int) Result {
	return Map(m.g, codons, m.cfg)
}

// Map maps a genome to a phenotype using grammar g.
func Map(g *grammar.Grammar, codons []int, cfg Config) Result {
	var (
		res      = Result{Nodes: 1}
		maxDepth int
		pending  = 1
		l        = len(codons)
	)
	frontier := queue.New(item{g.StartSymbol(), 0})

	for res.Wraps <= cfg.MaxWraps && !frontier.IsEmpty() && maxDepth <= cfg.MaxDepth {
		if l > 0 && res.Used > 0 && res.Used%l == 0 && pending > 0 {
			res.Wraps++
		}

		current, _ := frontier.First()
		if current.depth > maxDepth {
			maxDepth = current.depth
		}

		if current.symbol.IsTerminal() {
			res.Output = append(res.Output, current.symbol.Text)
			continue
		}

		productions := g.Nonterms[current.symbol.Nonterm].Productions
		choice := 0
		if len(productions) > 1 {
			if l == 0 {
				frontier.Prepend(current)
				break
			}

			choice = choose(codons[res.Used%l], len(productions))
			res.Used++
		}

		pending--
		p := productions[choice]
		children := make([]item, len(p.Symbols))
		for i, s := range p.Symbols {
			children[i] = item{s, current.depth + 1}
		}
		frontier.PrependAll(children...)
		pending += p.Nonterms

		if p.Nonterms > 0 {
			res.Nodes += p.Nonterms
		} else {
			res.Nodes++
		}
	}

	res.Depth = maxDepth + 1
	res.Phenotype = strings.Join(res.Output, "")
	if !frontier.IsEmpty() {
		res.Invalid = true
		return res
	}

	if g.Dialect == grammar.BlockDialect && cfg.Filter != nil {
		res.Phenotype = cfg.Filter(res.Phenotype)
	}
	return res
}

// choose returns production index for codon c, negative codons are wrapped into range.
func choose(c, n int) int {
	c %= n
	if c < 0 {
		c += n
	}
	return c
}
