package selfplay

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gridquest/gridquest/game"
)

// PlacementStrategy optimizes the character placement on an auto-move
// board and returns the chosen placement with EvaluatedScore set to
// its rollout score.
type PlacementStrategy func(*game.AutoState, *rand.Rand) *game.AutoState

// PlacementBenchmarkConfig describes a local-search benchmark run.
type PlacementBenchmarkConfig struct {
	RunID    string
	Strategy string
	Optimize PlacementStrategy

	Game     game.Config
	Episodes int
	Workers  int
	Seed     int64
}

// RunPlacementBenchmark is RunBenchmark for the local-search family:
// each episode generates a fresh board from Seed+index, optimizes the
// placement, and scores the deterministic rollout of the result.
func RunPlacementBenchmark(ctx context.Context, cfg PlacementBenchmarkConfig) (*BenchmarkResult, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	jobs := make(chan int)
	scores := make(chan int64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rng := rand.New(rand.NewSource(cfg.Seed + int64(idx)))
				state := game.NewAutoState(cfg.Game, rng)
				best := cfg.Optimize(state, rng)
				scores <- best.EvaluatedScore
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
		close(scores)
	}()

	agg := &BenchmarkResult{}
	var total int64
	for score := range scores {
		if agg.Episodes == 0 || score < agg.MinScore {
			agg.MinScore = score
		}
		if score > agg.MaxScore {
			agg.MaxScore = score
		}
		total += score
		agg.Episodes++
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
