package mapper

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// MapPopulation maps genomes concurrently using at most workers goroutines
// (GOMAXPROCS if workers is not positive). Results are in genome order.
// Returns context error if ctx is cancelled before all genomes are mapped.
func (m *Mapper) MapPopulation(ctx context.Context, genomes [][]int, workers int) ([]Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(genomes))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, genome := range genomes {
		i, genome := i, genome
		p.Go(func(ctx context.Context) error {
			if e := ctx.Err(); e != nil {
				return e
			}

			results[i] = m.Map(genome)
			return nil
		})
	}

	if e := p.Wait(); e != nil {
		return nil, e
	}
	return results, nil
}

// RandomGenome generates length codons in range [0, CodonSize).
func (cfg Config) RandomGenome(r *rand.Rand, length int) []int {
	size := cfg.CodonSize
	if size < 1 {
		size = DefaultCodonSize
	}

	result := make([]int, length)
	for i := range result {
		result[i] = r.Intn(size)
	}
	return result
}
