// Package game defines the core board state types for the grid
// collection game.
//
// These types carry the minimal state needed for move generation,
// scoring, and search. Both variants are designed to be efficiently
// clonable: every search expansion works on an owned copy, so nothing
// is ever shared between frontier nodes.
package game

import "math/rand"

// Point is a board coordinate. (0,0) is the top-left cell; x grows
// right and y grows down.
type Point struct {
	X int32
	Y int32
}

// MaxCellValue is the largest point value a cell can hold.
const MaxCellValue = 9

// Config holds the instance parameters for a board.
type Config struct {
	Width   int32
	Height  int32
	EndTurn int32
	// Characters is the number of agents on an AutoState board.
	// Ignored by NewState.
	Characters int32
}

// State is the single-agent, action-driven board: the agent moves one
// cell per turn and collects the destination cell's value.
type State struct {
	Width   int32
	Height  int32
	EndTurn int32

	// Points holds the remaining cell values, indexed [y][x].
	// A value is zeroed the first time the agent occupies the cell.
	Points [][]int64

	Agent Point
	Turn  int32

	// GameScore is the cumulative collected value.
	GameScore int64

	// EvaluatedScore is set only by rules.Evaluate and is the sole
	// ordering key for search frontiers.
	EvaluatedScore int64

	// FirstMove records the move applied at search depth 0 on the path
	// to this node, so deep search can recover the root decision.
	// -1 means unset.
	FirstMove int
}

// NewState builds a randomized board: every cell gets a uniform value
// in [0, MaxCellValue], the agent starts on a uniform random cell, and
// the starting cell is left at 0 so nothing is collected for free.
func NewState(cfg Config, rng *rand.Rand) *State {
	s := &State{
		Width:     cfg.Width,
		Height:    cfg.Height,
		EndTurn:   cfg.EndTurn,
		Agent:     Point{X: rng.Int31n(cfg.Width), Y: rng.Int31n(cfg.Height)},
		FirstMove: -1,
	}
	s.Points = make([][]int64, cfg.Height)
	for y := int32(0); y < cfg.Height; y++ {
		s.Points[y] = make([]int64, cfg.Width)
		for x := int32(0); x < cfg.Width; x++ {
			if y == s.Agent.Y && x == s.Agent.X {
				continue
			}
			s.Points[y][x] = int64(rng.Intn(MaxCellValue + 1))
		}
	}
	return s
}

// IsDone reports whether the episode is over.
func (s *State) IsDone() bool {
	return s.Turn == s.EndTurn
}

// Clone performs a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Width:          s.Width,
		Height:         s.Height,
		EndTurn:        s.EndTurn,
		Agent:          s.Agent,
		Turn:           s.Turn,
		GameScore:      s.GameScore,
		EvaluatedScore: s.EvaluatedScore,
		FirstMove:      s.FirstMove,
	}
	out.Points = make([][]int64, len(s.Points))
	for y := range s.Points {
		out.Points[y] = make([]int64, len(s.Points[y]))
		copy(out.Points[y], s.Points[y])
	}
	return out
}

// InBounds reports whether p lies on the board.
func (s *State) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}
