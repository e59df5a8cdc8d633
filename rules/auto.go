package rules

import (
	"math/rand"

	"github.com/gridquest/gridquest/game"
)

// PlaceCharacters assigns every character an independent uniform
// random cell, overwriting whatever placement was there before.
func PlaceCharacters(s *game.AutoState, rng *rand.Rand) {
	for i := range s.Characters {
		s.Characters[i] = game.Point{
			X: rng.Int31n(s.Width),
			Y: rng.Int31n(s.Height),
		}
	}
}

// PerturbCharacter reassigns one uniformly chosen character to a new
// uniform random cell. This is the sole move operator for local
// search.
func PerturbCharacter(s *game.AutoState, rng *rand.Rand) {
	i := rng.Intn(len(s.Characters))
	s.Characters[i] = game.Point{
		X: rng.Int31n(s.Width),
		Y: rng.Int31n(s.Height),
	}
}

// stepCharacter moves one character to its best-valued adjacent cell.
// Ties keep the first move in the fixed move-constant order; a
// character on a board corner still has two in-bounds moves, so a best
// move always exists.
func stepCharacter(s *game.AutoState, i int) {
	bestPoint := int64(-1)
	bestMove := 0
	for move := 0; move < 4; move++ {
		t := Destination(s.Characters[i], move)
		if !s.InBounds(t) {
			continue
		}
		if p := s.Points[t.Y][t.X]; p > bestPoint {
			bestPoint = p
			bestMove = move
		}
	}
	s.Characters[i] = Destination(s.Characters[i], bestMove)
}

// AdvanceAuto advances the board one turn: every character
// greedy-steps (no coordination), then all characters collect the
// values of their cells.
func AdvanceAuto(s *game.AutoState) {
	for i := range s.Characters {
		stepCharacter(s, i)
	}
	for _, c := range s.Characters {
		if p := &s.Points[c.Y][c.X]; *p > 0 {
			s.GameScore += *p
			*p = 0
		}
	}
	s.Turn++
}

// Rollout plays a placement out to the end of the episode and returns
// the final score. The cells the characters start on are zeroed first
// (pre-collected, not scored). The receiver is cloned internally and
// never mutated, so Rollout is a pure function of the placement.
//
// onStep, if non-nil, is called with the working copy after every
// advanced turn.
func Rollout(s *game.AutoState, onStep func(*game.AutoState)) int64 {
	work := s.Clone()
	for _, c := range work.Characters {
		work.Points[c.Y][c.X] = 0
	}
	for !work.IsDone() {
		AdvanceAuto(work)
		if onStep != nil {
			onStep(work)
		}
	}
	return work.GameScore
}
