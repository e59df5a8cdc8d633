package selfplay

import (
	"context"
	"fmt"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
	"github.com/gridquest/gridquest/store"
)

// EpisodeOptions identifies an episode inside a benchmark run and
// carries the optional per-step hook.
type EpisodeOptions struct {
	RunID    string
	Strategy string
	Episode  int32
	Seed     int64

	// OnStep, if non-nil, is called after every advanced turn with the
	// current state.
	OnStep func(*game.State)
}

// EpisodeResult is a completed episode plus its archive rows.
type EpisodeResult struct {
	Episode    int32
	Seed       int64
	FinalScore int64
	Turns      int32
	Rows       []store.TurnRow
}

func turnRow(s *game.State, move int, opts EpisodeOptions) store.TurnRow {
	row := store.TurnRow{
		RunID:     opts.RunID,
		Strategy:  opts.Strategy,
		Episode:   opts.Episode,
		Seed:      opts.Seed,
		Turn:      s.Turn,
		Width:     s.Width,
		Height:    s.Height,
		AgentX:    s.Agent.X,
		AgentY:    s.Agent.Y,
		Move:      int32(move),
		GameScore: s.GameScore,
	}
	row.Cells = make([]int32, 0, int(s.Width)*int(s.Height))
	for y := int32(0); y < s.Height; y++ {
		for x := int32(0); x < s.Width; x++ {
			row.Cells = append(row.Cells, int32(s.Points[y][x]))
		}
	}
	return row
}

// PlayEpisode runs one episode to termination. Each loop iteration
// records a snapshot row with the move chosen from it, then advances;
// a final row with Move=-1 captures the terminal position. The caller
// owns state and should not reuse it afterwards.
func PlayEpisode(ctx context.Context, state *game.State, policy Policy, opts EpisodeOptions) (*EpisodeResult, error) {
	rows := make([]store.TurnRow, 0, state.EndTurn+1)

	for !state.IsDone() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		move, err := policy(state)
		if err != nil {
			return nil, fmt.Errorf("policy at turn %d: %w", state.Turn, err)
		}

		rows = append(rows, turnRow(state, move, opts))
		rules.Advance(state, move)

		if opts.OnStep != nil {
			opts.OnStep(state)
		}
	}

	rows = append(rows, turnRow(state, -1, opts))

	return &EpisodeResult{
		Episode:    opts.Episode,
		Seed:       opts.Seed,
		FinalScore: state.GameScore,
		Turns:      state.Turn,
		Rows:       rows,
	}, nil
}
