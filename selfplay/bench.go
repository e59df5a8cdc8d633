package selfplay

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gridquest/gridquest/game"
)

// BenchmarkConfig describes one benchmark run: a strategy evaluated
// over Episodes boards generated from Seed, Seed+1, ...
type BenchmarkConfig struct {
	RunID    string
	Strategy string

	// NewPolicy builds the policy for one episode. It receives the
	// episode's rng so stochastic policies stay reproducible per seed.
	NewPolicy func(rng *rand.Rand) Policy

	Game     game.Config
	Episodes int
	Workers  int
	Seed     int64

	// OnEpisode, if non-nil, is called from the collector goroutine
	// (never concurrently) as episodes complete, in completion order.
	OnEpisode func(*EpisodeResult)
}

// BenchmarkResult aggregates the scores of all completed episodes.
type BenchmarkResult struct {
	Episodes  int
	MeanScore float64
	MinScore  int64
	MaxScore  int64
	Elapsed   time.Duration
}

// RunBenchmark plays cfg.Episodes episodes across cfg.Workers
// goroutines. Each episode gets its own rng seeded with Seed+index, so
// results are reproducible regardless of worker scheduling. Returns
// early with the context error if cancelled.
func RunBenchmark(ctx context.Context, cfg BenchmarkConfig) (*BenchmarkResult, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	jobs := make(chan int)
	results := make(chan *EpisodeResult, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				seed := cfg.Seed + int64(idx)
				rng := rand.New(rand.NewSource(seed))
				state := game.NewState(cfg.Game, rng)
				policy := cfg.NewPolicy(rng)

				res, err := PlayEpisode(ctx, state, policy, EpisodeOptions{
					RunID:    cfg.RunID,
					Strategy: cfg.Strategy,
					Episode:  int32(idx),
					Seed:     seed,
				})
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				results <- res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Episodes; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	agg := &BenchmarkResult{}
	var total int64
	for res := range results {
		if agg.Episodes == 0 || res.FinalScore < agg.MinScore {
			agg.MinScore = res.FinalScore
		}
		if res.FinalScore > agg.MaxScore {
			agg.MaxScore = res.FinalScore
		}
		total += res.FinalScore
		agg.Episodes++
		if cfg.OnEpisode != nil {
			cfg.OnEpisode(res)
		}
	}

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if agg.Episodes > 0 {
		agg.MeanScore = float64(total) / float64(agg.Episodes)
	}
	agg.Elapsed = time.Since(start)
	return agg, nil
}
