package bnf

import (
	"github.com/ava12/gevo/grammar"
	"github.com/ava12/gevo/internal/ints"
	"github.com/ava12/gevo/internal/queue"
)

type ntInfo struct {
	minSteps  int
	expanded  bool
	recursive bool
	dependsOn *ints.Set
	// affects lists non-terminals referencing this one.
	affects []int
}

type analysis struct {
	pr  *parseResult
	nts []ntInfo
}

func newAnalysis(pr *parseResult) *analysis {
	a := &analysis{pr: pr, nts: make([]ntInfo, len(pr.rules))}
	for i, r := range pr.rules {
		nt := &a.nts[i]
		nt.minSteps = grammar.Unreachable
		nt.recursive = true
		nt.dependsOn = ints.NewSet()
		for _, p := range r.productions {
			for _, s := range p {
				if !s.isTerminal() {
					nt.dependsOn.Add(s.nonterm)
				}
			}
		}
	}

	for i := range a.nts {
		for _, k := range a.nts[i].dependsOn.ToSlice() {
			a.nts[k].affects = append(a.nts[k].affects, i)
		}
	}
	return a
}

// walk processes non-terminals from the worklist until it is empty.
// update returns true if the non-terminal has changed, then all non-terminals
// referencing it are queued again. Returns false if step limit is exceeded.
func (a *analysis) walk(update func(index int) bool) bool {
	n := len(a.nts)
	wl := queue.New[int]()
	queued := ints.NewSet()
	for i := 0; i < n; i++ {
		wl.Append(i)
		queued.Add(i)
	}

	limit := n * (n + 1)
	for steps := 0; ; steps++ {
		index, fetched := wl.First()
		if !fetched {
			return true
		}
		if steps >= limit {
			return false
		}

		queued.Remove(index)
		if !update(index) {
			continue
		}

		for _, k := range a.nts[index].affects {
			if !queued.Contains(k) {
				queued.Add(k)
				wl.Append(k)
			}
		}
	}
}

// resolveDepths computes the least fixpoint of non-terminal minimum depths:
// 1 for a non-terminal having terminal-only production, otherwise
// 1 + max(children depths) minimized over productions with expanded children only.
func (a *analysis) resolveDepths(e error) error {
	if e != nil {
		return e
	}

	converged := a.walk(func(index int) bool {
		nt := &a.nts[index]
		steps := a.productionSteps(index)
		if steps >= nt.minSteps {
			return false
		}

		nt.minSteps = steps
		nt.expanded = true
		return true
	})
	if !converged {
		return unresolvedError(a.names(a.unexpanded()))
	}
	return nil
}

func (a *analysis) productionSteps(index int) int {
	result := grammar.Unreachable
	for _, p := range a.pr.rules[index].productions {
		steps := 1
		for _, s := range p {
			if s.isTerminal() {
				continue
			}

			child := a.nts[s.nonterm]
			if !child.expanded {
				steps = grammar.Unreachable
				break
			}
			if child.minSteps+1 > steps {
				steps = child.minSteps + 1
			}
		}
		if steps < result {
			result = steps
		}
	}
	return result
}

// resolveRecursions clears recursive flag of non-terminals whose every production
// is either terminal-only or references non-recursive non-terminals only.
func (a *analysis) resolveRecursions(e error) error {
	if e != nil {
		return e
	}

	a.walk(func(index int) bool {
		nt := &a.nts[index]
		if !nt.recursive {
			return false
		}

		for _, k := range nt.dependsOn.ToSlice() {
			if a.nts[k].recursive {
				return false
			}
		}

		nt.recursive = false
		return true
	})
	return nil
}

func (a *analysis) unexpanded() []int {
	var result []int
	for i, nt := range a.nts {
		if !nt.expanded {
			result = append(result, i)
		}
	}
	return result
}

func (a *analysis) names(indexes []int) []string {
	result := make([]string, len(indexes))
	for i, index := range indexes {
		result[i] = a.pr.rules[index].name
	}
	return result
}

func (a *analysis) checkResolved(strict bool, e error) error {
	if e != nil {
		return e
	}

	if !a.nts[grammar.StartNonterm].expanded {
		return unresolvedError([]string{a.pr.rules[grammar.StartNonterm].name})
	}

	if strict {
		unexpanded := a.unexpanded()
		if len(unexpanded) > 0 {
			return unresolvedError(a.names(unexpanded))
		}
	}
	return nil
}

func buildGrammar(a *analysis, opts Options, e error) (*grammar.Grammar, error) {
	if e != nil {
		return nil, e
	}

	pr := a.pr
	nts := make([]grammar.Nonterm, len(pr.rules))
	for i, r := range pr.rules {
		info := a.nts[i]
		nt := grammar.Nonterm{
			Name:        r.name,
			MinSteps:    info.minSteps,
			Expanded:    info.expanded,
			Recursive:   info.recursive,
			BFactor:     len(r.productions),
			Productions: make([]grammar.Production, len(r.productions)),
		}

		for j, p := range r.productions {
			gp := grammar.Production{Symbols: make([]grammar.Symbol, len(p))}
			for k, s := range p {
				if s.isTerminal() {
					gp.Symbols[k] = grammar.Symbol{Kind: grammar.TerminalSymbol, Text: s.text, Nonterm: -1}
					continue
				}

				child := a.nts[s.nonterm]
				gp.Symbols[k] = grammar.Symbol{
					Kind:      grammar.NonterminalSymbol,
					Text:      s.text,
					Nonterm:   s.nonterm,
					MinSteps:  child.minSteps,
					Recursive: child.recursive,
				}
				gp.Nonterms++
			}
			nt.Productions[j] = gp
		}
		nts[i] = nt
	}

	g := grammar.New(pr.src.Name(), dialectOf(pr.src.Name()), nts, pr.terminals)
	g.CountMode = opts.CountMode
	_, e = g.CountWindow(opts.Window)
	if e != nil {
		return nil, e
	}
	return g, nil
}
