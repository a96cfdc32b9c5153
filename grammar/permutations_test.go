package grammar_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ava12/gevo/bnf"
	"github.com/ava12/gevo/grammar"
	. "github.com/ava12/gevo/internal/test"
	"github.com/ava12/gevo/source"
)

func parse(t *testing.T, src string, opts bnf.Options) *grammar.Grammar {
	t.Helper()
	g, e := bnf.ParseOptions(source.New("string", []byte(src)), opts)
	ExpectNoError(t, e)
	return g
}

func expectCounts(t *testing.T, expected []int64, got []*big.Int) {
	t.Helper()
	ExpectInt(t, len(expected), len(got))
	for i, n := range got {
		Assert(t, n.IsInt64() && n.Int64() == expected[i], "depth #%d: expecting %d, got %s", i, expected[i], n)
	}
}

func TestTerminalChoice(t *testing.T) {
	g := parse(t, "<S> ::= a | b", bnf.Options{})
	n, e := g.CountTrees(1)
	ExpectNoError(t, e)
	ExpectInt(t, 2, int(n.Int64()))

	n, has := g.Permutations(1)
	Assert(t, has, "expecting cached count")
	ExpectInt(t, 2, int(n.Int64()))
	n, _ = g.Permutations(2)
	ExpectInt(t, 0, int(n.Int64()))
}

func TestDepthError(t *testing.T) {
	g := parse(t, "<s> ::= <a>\n<a> ::= <b>\n<b> ::= b", bnf.Options{})
	ExpectInt(t, 3, g.MinPath)
	for _, depth := range []int{-1, 0, 2} {
		_, e := g.CountTrees(depth)
		ExpectErrorCode(t, grammar.PermutationDepthError, e)
	}
	_, e := g.CountTrees(3)
	ExpectNoError(t, e)
}

func TestRecursiveCounts(t *testing.T) {
	g := parse(t, "<S> ::= a<S> | b", bnf.Options{})
	counts, e := g.CountWindow(5)
	ExpectNoError(t, e)
	expectCounts(t, []int64{1, 1, 1, 1, 1}, counts)

	n, e := g.CountTrees(4)
	ExpectNoError(t, e)
	ExpectInt(t, 4, int(n.Int64()))
}

func TestBinaryTreeCounts(t *testing.T) {
	g := parse(t, "<e> ::= <e><op><e> | x\n<op> ::= + | -", bnf.Options{})
	counts, e := g.CountWindow(4)
	ExpectNoError(t, e)
	// depth <= 1: x; depth <= 2: x, x+x, x-x; depth <= 3: x plus 2 * 3 * 3.
	expectCounts(t, []int64{1, 2, 16, 2*19*19 + 1 - 19}, counts)

	n, e := g.CountTrees(3)
	ExpectNoError(t, e)
	ExpectInt(t, 19, int(n.Int64()))
}

func TestCountModes(t *testing.T) {
	src := "<s> ::= <a> | z\n<a> ::= a | b"
	g := parse(t, src, bnf.Options{})
	n, e := g.CountTrees(1)
	ExpectNoError(t, e)
	ExpectInt(t, 1, int(n.Int64()))
	n, _ = g.CountTrees(2)
	ExpectInt(t, 3, int(n.Int64()))

	g = parse(t, src, bnf.Options{CountMode: grammar.OptimisticCount})
	n, e = g.CountTrees(1)
	ExpectNoError(t, e)
	ExpectInt(t, 2, int(n.Int64()))
	n, _ = g.CountTrees(2)
	ExpectInt(t, 3, int(n.Int64()))
}

func TestWindowWidening(t *testing.T) {
	src := "<s> ::= x | <a>\n<a> ::= <b>\n<b> ::= <c>\n<c> ::= <d>\n<d> ::= <e>\n<e> ::= <f>\n<f> ::= f"
	g := parse(t, src, bnf.Options{})
	ExpectInt(t, 1, g.MinPath)
	ExpectInt(t, 6, g.MaxArity)
	counts, e := g.CountWindow(2)
	ExpectNoError(t, e)
	expectCounts(t, []int64{1, 0, 0, 0, 0, 0}, counts)

	n, e := g.CountTrees(7)
	ExpectNoError(t, e)
	ExpectInt(t, 2, int(n.Int64()))
}

func TestConcurrentCount(t *testing.T) {
	g := parse(t, "<e> ::= <e><op><e> | (<e>) | x | y\n<op> ::= + | - | * | /", bnf.Options{})
	expected := make([]*big.Int, 8)
	var wg sync.WaitGroup
	results := make([][]*big.Int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = make([]*big.Int, len(expected))
			for d := range expected {
				results[i][d], _ = g.CountTrees(d + 1)
			}
		}(i)
	}
	wg.Wait()

	for d := range expected {
		expected[d], _ = g.CountTrees(d + 1)
	}
	for _, r := range results {
		for d, n := range r {
			Assert(t, n.Cmp(expected[d]) == 0, "depth %d: expecting %s, got %s", d+1, expected[d], n)
		}
	}
}

func TestCountResultsAreCopies(t *testing.T) {
	g := parse(t, "<S> ::= a | b", bnf.Options{})
	n, _ := g.CountTrees(1)
	n.SetInt64(100)
	n, _ = g.CountTrees(1)
	ExpectInt(t, 2, int(n.Int64()))
}
