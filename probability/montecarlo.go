package probability

import (
	"math"
	"runtime"
	"sync"
	"time"

	mpb "github.com/vbauerster/mpb/v7"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantforge/mcpricer/models"
)

const defaultChunkSize = 1 << 20

// Config tunes a pricing run. The zero value means: one worker per logical
// CPU, a wall-clock seed, the default chunk size and no progress bar.
type Config struct {
	Workers   int
	Seed      uint64 // base RNG seed; 0 derives one from the clock
	ChunkSize int64  // paths per unit of work handed to a worker
	Bar       *mpb.Bar
}

// accumulators are the only cross-path state: three running sums plus the
// path count. Merging is a plain sum, so partials from any partitioning of
// the paths combine to the same totals regardless of order.
type accumulators struct {
	sumPayoff   float64
	sumSqPayoff float64
	sumTerminal float64
	paths       int64
}

func (a *accumulators) merge(b accumulators) {
	a.sumPayoff += b.sumPayoff
	a.sumSqPayoff += b.sumSqPayoff
	a.sumTerminal += b.sumTerminal
	a.paths += b.paths
}

// simulateChunk runs n independent paths drawing from normal and returns the
// chunk's local sums. This is the hot loop: no branches beyond the payoff
// max, no shared state, no allocation.
func simulateChunk(g models.GBM, n int64, normal distuv.Normal) accumulators {
	acc := accumulators{paths: n}
	for i := int64(0); i < n; i++ {
		terminal := g.Terminal(normal.Rand())
		payoff := g.Payoff(terminal)

		acc.sumPayoff += payoff
		acc.sumSqPayoff += payoff * payoff
		acc.sumTerminal += terminal
	}
	return acc
}

// PriceOption estimates the fair value of a European call by direct Monte
// Carlo simulation under GBM, using defaults for worker count and seeding.
func PriceOption(params models.SimulationParameters) (models.SimulationResult, error) {
	return PriceOptionWithConfig(params, Config{})
}

// PriceOptionWithConfig runs the simulation with explicit tuning. The path
// count is split into one contiguous partition per worker; each worker owns
// its generator (seeded base+index, never shared) and folds chunk sums into
// a private accumulator slot. The per-worker partials are merged serially
// after all workers finish, so the hot path touches no atomics and no locks,
// and a fixed seed with a fixed worker count reproduces the result exactly.
//
// Parameters are validated up front; a *models.InvalidParameterError means
// no simulation work was started. The call blocks until all paths complete.
func PriceOptionWithConfig(params models.SimulationParameters, cfg Config) (models.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return models.SimulationResult{}, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if int64(workers) > params.Paths {
		workers = int(params.Paths)
	}
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := models.NewGBM(params)

	perWorker := params.Paths / int64(workers)
	remainder := params.Paths % int64(workers)

	partials := make([]accumulators, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		n := perWorker
		if int64(w) < remainder {
			n++
		}

		wg.Add(1)
		go func(idx int, n int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + uint64(idx)))
			normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}

			var local accumulators
			for n > 0 {
				chunk := chunkSize
				if n < chunkSize {
					chunk = n
				}
				local.merge(simulateChunk(g, chunk, normal))
				if cfg.Bar != nil {
					cfg.Bar.IncrInt64(chunk)
				}
				n -= chunk
			}
			partials[idx] = local
		}(w, n)
	}
	wg.Wait()

	var total accumulators
	for _, p := range partials {
		total.merge(p)
	}

	return deriveResult(g, total), nil
}

// deriveResult turns the merged sums into the price estimate. The population
// variance of payoffs is clamped at zero: floating-point cancellation can
// leave a tiny negative value when all payoffs are (nearly) equal.
func deriveResult(g models.GBM, total accumulators) models.SimulationResult {
	n := float64(total.paths)
	meanPayoff := total.sumPayoff / n

	variance := total.sumSqPayoff/n - meanPayoff*meanPayoff
	if variance < 0 {
		variance = 0
	}

	return models.SimulationResult{
		FairValue:        meanPayoff * g.Discount,
		StdError:         math.Sqrt(variance/n) * g.Discount,
		AvgTerminalPrice: total.sumTerminal / n,
	}
}
