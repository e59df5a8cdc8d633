package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/localsearch"
	"github.com/gridquest/gridquest/logging"
	"github.com/gridquest/gridquest/selfplay"
	"github.com/gridquest/gridquest/store"
)

type benchFlags struct {
	strategy string
	episodes int
	workers  int

	width      int
	height     int
	endTurn    int
	characters int
	seed       int64

	outDir        string
	dbPath        string
	flushEpisodes int

	beamWidth  int
	beamDepth  int
	passes     int
	budget     time.Duration
	iterations int
	startTemp  float64
	endTemp    float64
}

func parseFlags() benchFlags {
	var f benchFlags
	flag.StringVar(&f.strategy, "strategy", "greedy", "Strategy: random, greedy, beam, beam-timed, chokudai, chokudai-timed, hillclimb, anneal")
	flag.IntVar(&f.episodes, "episodes", 100, "Number of episodes to play")
	flag.IntVar(&f.workers, "workers", 4, "Number of episode workers")
	flag.IntVar(&f.width, "width", 30, "Board width")
	flag.IntVar(&f.height, "height", 30, "Board height")
	flag.IntVar(&f.endTurn, "end-turn", 100, "Episode length in turns")
	flag.IntVar(&f.characters, "characters", 3, "Number of characters (local-search strategies only)")
	flag.Int64Var(&f.seed, "seed", 1, "Base seed; episode i uses seed+i")
	flag.StringVar(&f.outDir, "out-dir", filepath.Join("data", "episodes"), "Output directory for episode parquet batches")
	flag.StringVar(&f.dbPath, "db", filepath.Join("data", "runs.db"), "Path to the run registry database")
	flag.IntVar(&f.flushEpisodes, "episodes-per-flush", 50, "Number of episodes to buffer per parquet flush")
	flag.IntVar(&f.beamWidth, "beam-width", 5, "Beam width")
	flag.IntVar(&f.beamDepth, "beam-depth", 100, "Beam / chokudai depth")
	flag.IntVar(&f.passes, "passes", 2, "Chokudai pass count")
	flag.DurationVar(&f.budget, "budget", 10*time.Millisecond, "Per-move time budget for the timed strategies")
	flag.IntVar(&f.iterations, "iterations", 10000, "Local search iterations")
	flag.Float64Var(&f.startTemp, "start-temp", 500, "Annealing start temperature")
	flag.Float64Var(&f.endTemp, "end-temp", 10, "Annealing end temperature (must be > 0)")
	flag.Parse()
	return f
}

func newPolicyFactory(f benchFlags) (func(rng *rand.Rand) selfplay.Policy, error) {
	switch f.strategy {
	case "random":
		return func(rng *rand.Rand) selfplay.Policy { return selfplay.RandomPolicy(rng) }, nil
	case "greedy":
		return func(*rand.Rand) selfplay.Policy { return selfplay.GreedyPolicy() }, nil
	case "beam":
		return func(*rand.Rand) selfplay.Policy { return selfplay.BeamPolicy(f.beamWidth, f.beamDepth) }, nil
	case "beam-timed":
		return func(*rand.Rand) selfplay.Policy { return selfplay.BeamTimedPolicy(f.beamWidth, f.budget) }, nil
	case "chokudai":
		return func(*rand.Rand) selfplay.Policy {
			return selfplay.ChokudaiPolicy(f.beamWidth, f.beamDepth, f.passes)
		}, nil
	case "chokudai-timed":
		return func(*rand.Rand) selfplay.Policy {
			return selfplay.ChokudaiTimedPolicy(f.beamWidth, f.beamDepth, f.budget)
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", f.strategy)
	}
}

func placementStrategy(f benchFlags) (selfplay.PlacementStrategy, bool) {
	switch f.strategy {
	case "hillclimb":
		return func(s *game.AutoState, rng *rand.Rand) *game.AutoState {
			return localsearch.HillClimb(s, f.iterations, rng)
		}, true
	case "anneal":
		return func(s *game.AutoState, rng *rand.Rand) *game.AutoState {
			return localsearch.Anneal(s, localsearch.AnnealConfig{
				Iterations: f.iterations,
				StartTemp:  f.startTemp,
				EndTemp:    f.endTemp,
			}, rng)
		}, true
	default:
		return nil, false
	}
}

func main() {
	f := parseFlags()

	logger := slog.New(logging.NewPrettyJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameCfg := game.Config{
		Width:      int32(f.width),
		Height:     int32(f.height),
		EndTurn:    int32(f.endTurn),
		Characters: int32(f.characters),
	}

	runID := fmt.Sprintf("%s_%d", f.strategy, time.Now().UnixNano())
	startedAt := time.Now()

	cfgJSON, err := json.Marshal(map[string]any{
		"strategy":   f.strategy,
		"episodes":   f.episodes,
		"width":      f.width,
		"height":     f.height,
		"end_turn":   f.endTurn,
		"characters": f.characters,
		"seed":       f.seed,
		"beam_width": f.beamWidth,
		"beam_depth": f.beamDepth,
		"passes":     f.passes,
		"budget_ms":  f.budget.Milliseconds(),
		"iterations": f.iterations,
		"start_temp": f.startTemp,
		"end_temp":   f.endTemp,
	})
	if err != nil {
		log.Fatalf("Failed to encode run config: %v", err)
	}

	slog.Info("starting benchmark",
		"run_id", runID,
		"strategy", f.strategy,
		"episodes", f.episodes,
		"workers", f.workers,
		"board", fmt.Sprintf("%dx%d", f.width, f.height),
		"end_turn", f.endTurn,
	)

	var result *selfplay.BenchmarkResult

	if optimize, ok := placementStrategy(f); ok {
		result, err = selfplay.RunPlacementBenchmark(ctx, selfplay.PlacementBenchmarkConfig{
			RunID:    runID,
			Strategy: f.strategy,
			Optimize: optimize,
			Game:     gameCfg,
			Episodes: f.episodes,
			Workers:  f.workers,
			Seed:     f.seed,
		})
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		newPolicy, perr := newPolicyFactory(f)
		if perr != nil {
			log.Fatalf("%v", perr)
		}

		writeReqs := make(chan []store.TurnRow, f.workers*4)
		writerDone := make(chan struct{})
		go func() {
			parquetWriterLoop(f.outDir, f.flushEpisodes, writeReqs)
			close(writerDone)
		}()

		result, err = selfplay.RunBenchmark(ctx, selfplay.BenchmarkConfig{
			RunID:     runID,
			Strategy:  f.strategy,
			NewPolicy: newPolicy,
			Game:      gameCfg,
			Episodes:  f.episodes,
			Workers:   f.workers,
			Seed:      f.seed,
			OnEpisode: func(res *selfplay.EpisodeResult) {
				writeReqs <- res.Rows
			},
		})
		close(writeReqs)
		<-writerDone
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	}

	slog.Info("benchmark complete",
		"run_id", runID,
		"episodes", result.Episodes,
		"mean_score", result.MeanScore,
		"min_score", result.MinScore,
		"max_score", result.MaxScore,
		"elapsed", result.Elapsed.String(),
	)

	db, err := store.OpenDB(f.dbPath)
	if err != nil {
		log.Fatalf("Failed to open run registry: %v", err)
	}
	defer db.Close()

	if err := db.RecordRun(store.Run{
		ID:         runID,
		Strategy:   f.strategy,
		ConfigJSON: string(cfgJSON),
		Episodes:   int64(result.Episodes),
		MeanScore:  result.MeanScore,
		MinScore:   result.MinScore,
		MaxScore:   result.MaxScore,
		ElapsedMs:  result.Elapsed.Milliseconds(),
		StartedAt:  startedAt,
	}); err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}
}

func parquetWriterLoop(outDir string, episodesPerFlush int, in <-chan []store.TurnRow) {
	if episodesPerFlush <= 0 {
		episodesPerFlush = 50
	}

	pendingRows := make([]store.TurnRow, 0, 128*episodesPerFlush)
	pendingEpisodes := 0

	flush := func(final bool) {
		if len(pendingRows) == 0 {
			return
		}
		outPath, err := store.WriteTurnsBatchAtomic(outDir, pendingRows)
		if err != nil {
			slog.Error("parquet flush failed", "episodes", pendingEpisodes, "rows", len(pendingRows), "err", err.Error())
		} else {
			slog.Info("parquet flush ok", "path", outPath, "episodes", pendingEpisodes, "rows", len(pendingRows), "final", final)
		}
		pendingRows = pendingRows[:0]
		pendingEpisodes = 0
	}

	for rows := range in {
		if len(rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, rows...)
		pendingEpisodes++
		if pendingEpisodes >= episodesPerFlush {
			flush(false)
		}
	}
	flush(true)
}
