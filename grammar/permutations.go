package grammar

import (
	"math/big"
	"sync"

	"github.com/ava12/gevo"
)

// DefaultWindow is the default number of depths counted by CountWindow.
const DefaultWindow = 5

// Error codes returned by permutation counter.
const (
	PermutationDepthError = gevo.CountErrors + iota
)

// CountMode defines how start productions lacking a per-depth count contribute to the total.
type CountMode int

const (
	// ApproxCount: a terminal-only start production adds 1 at any depth,
	// a production with non-terminals adds its count or nothing if it has no count for this depth.
	ApproxCount CountMode = iota
	// OptimisticCount: any start production without a count for this depth adds 1.
	OptimisticCount
)

var one = big.NewInt(1)

type counter struct {
	mu sync.Mutex
	// cumulative[d] is the number of trees with depth <= d.
	cumulative map[int]*big.Int
	// exact[d] is the number of trees with depth == d, filled by CountWindow.
	exact map[int]*big.Int
	// levels[d][p] is the number of trees of depth <= d rooted at production with index p;
	// nil for terminal-only productions and for depths below 2.
	levels [][]*big.Int
}

func depthError(depth, minPath int) error {
	return gevo.FormatError(PermutationDepthError, "cannot count trees of depth %d, minimum depth is %d", depth, minPath)
}

// CountTrees returns the number of distinct derivation trees of depth up to depth.
// Results are memoized. Returns PermutationDepthError if depth is less than MinPath.
func (g *Grammar) CountTrees(depth int) (*big.Int, error) {
	if depth < g.MinPath {
		return nil, depthError(depth, g.MinPath)
	}

	c := &g.counter
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.countTrees(g, depth)), nil
}

// CountWindow computes numbers of trees having exactly depth MinPath, MinPath + 1, etc.
// At least window depths are counted, or MaxArity - MinPath + 1 if it is larger.
// Counts are cached and available via Permutations.
func (g *Grammar) CountWindow(window int) ([]*big.Int, error) {
	if g.MinPath == Unreachable || g.MinPath < 1 {
		return nil, depthError(1, g.MinPath)
	}

	if window < 1 {
		window = DefaultWindow
	}
	if g.MaxArity > g.MinPath && g.MaxArity-g.MinPath+1 > window {
		window = g.MaxArity - g.MinPath + 1
	}

	c := &g.counter
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exact == nil {
		c.exact = make(map[int]*big.Int)
	}
	result := make([]*big.Int, window)
	shallower := new(big.Int)
	for i := range result {
		depth := g.MinPath + i
		n := new(big.Int).Sub(c.countTrees(g, depth), shallower)
		shallower.Add(shallower, n)
		c.exact[depth] = n
		result[i] = new(big.Int).Set(n)
	}
	return result, nil
}

// Permutations returns the number of trees of exactly given depth computed by CountWindow.
func (g *Grammar) Permutations(depth int) (*big.Int, bool) {
	c := &g.counter
	c.mu.Lock()
	defer c.mu.Unlock()

	n, has := c.exact[depth]
	if !has {
		return nil, false
	}
	return new(big.Int).Set(n), true
}

func (c *counter) countTrees(g *Grammar, depth int) *big.Int {
	if n, has := c.cumulative[depth]; has {
		return n
	}

	level := c.level(g, depth)
	total := new(big.Int)
	for _, p := range g.Start().Productions {
		switch {
		case p.IsTerminal():
			total.Add(total, one)
		case level != nil && level[p.Index] != nil:
			total.Add(total, level[p.Index])
		case g.CountMode == OptimisticCount:
			total.Add(total, one)
		}
	}

	if c.cumulative == nil {
		c.cumulative = make(map[int]*big.Int)
	}
	c.cumulative[depth] = total
	return total
}

func (c *counter) level(g *Grammar, depth int) []*big.Int {
	for len(c.levels) <= depth {
		d := len(c.levels)
		if d < 2 {
			c.levels = append(c.levels, nil)
			continue
		}

		prev := c.levels[d-1]
		current := make([]*big.Int, g.productions)
		for _, nt := range g.Nonterms {
			for _, p := range nt.Productions {
				if p.IsTerminal() {
					continue
				}

				n := big.NewInt(1)
				for _, s := range p.Symbols {
					if !s.IsTerminal() {
						n.Mul(n, g.choices(s.Nonterm, prev))
					}
				}
				current[p.Index] = n
			}
		}
		c.levels = append(c.levels, current)
	}
	return c.levels[depth]
}

// choices returns the number of ways to expand non-terminal using trees counted in level.
func (g *Grammar) choices(nt int, level []*big.Int) *big.Int {
	result := new(big.Int)
	for _, p := range g.Nonterms[nt].Productions {
		if p.IsTerminal() {
			result.Add(result, one)
		} else if level != nil && level[p.Index] != nil {
			result.Add(result, level[p.Index])
		}
	}
	return result
}
