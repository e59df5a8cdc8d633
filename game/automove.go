package game

import "math/rand"

// AutoState is the multi-agent, transition-driven board. The only
// decision is where the characters start: once a placement is
// committed, every character greedy-steps to its best adjacent cell
// each turn, so the remaining trajectory is fully determined.
type AutoState struct {
	Width   int32
	Height  int32
	EndTurn int32

	// Points holds the remaining cell values, indexed [y][x].
	Points [][]int64

	Characters []Point
	Turn       int32

	GameScore int64

	// EvaluatedScore mirrors State.EvaluatedScore; local search orders
	// candidate placements by it.
	EvaluatedScore int64
}

// NewAutoState builds a randomized board with cfg.Characters agents,
// all initially at (0,0). Call rules.PlaceCharacters before scoring.
func NewAutoState(cfg Config, rng *rand.Rand) *AutoState {
	s := &AutoState{
		Width:      cfg.Width,
		Height:     cfg.Height,
		EndTurn:    cfg.EndTurn,
		Characters: make([]Point, cfg.Characters),
	}
	s.Points = make([][]int64, cfg.Height)
	for y := int32(0); y < cfg.Height; y++ {
		s.Points[y] = make([]int64, cfg.Width)
		for x := int32(0); x < cfg.Width; x++ {
			s.Points[y][x] = int64(rng.Intn(MaxCellValue + 1))
		}
	}
	return s
}

// IsDone reports whether the episode is over.
func (s *AutoState) IsDone() bool {
	return s.Turn == s.EndTurn
}

// Clone performs a deep copy of the state.
func (s *AutoState) Clone() *AutoState {
	if s == nil {
		return nil
	}
	out := &AutoState{
		Width:          s.Width,
		Height:         s.Height,
		EndTurn:        s.EndTurn,
		Turn:           s.Turn,
		GameScore:      s.GameScore,
		EvaluatedScore: s.EvaluatedScore,
	}
	out.Characters = make([]Point, len(s.Characters))
	copy(out.Characters, s.Characters)
	out.Points = make([][]int64, len(s.Points))
	for y := range s.Points {
		out.Points[y] = make([]int64, len(s.Points[y]))
		copy(out.Points[y], s.Points[y])
	}
	return out
}

// InBounds reports whether p lies on the board.
func (s *AutoState) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}
