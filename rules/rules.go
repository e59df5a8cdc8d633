// Package rules implements the transition logic for both board
// variants: move generation, advancing, and evaluation.
package rules

import (
	"github.com/gridquest/gridquest/game"
)

// Moves are enumerated in the fixed order +x, -x, +y, -y. This order
// is the implicit tie-break everywhere: greedy argmax keeps the
// first-seen best move, and frontier insertion follows it.
const (
	MoveRight = 0
	MoveLeft  = 1
	MoveDown  = 2
	MoveUp    = 3
)

var (
	dx = [4]int32{1, -1, 0, 0}
	dy = [4]int32{0, 0, 1, -1}

	moveNames = [4]string{"Right", "Left", "Down", "Up"}
)

// MoveName returns a human-readable name for a move.
func MoveName(move int) string {
	if move < 0 || move >= len(moveNames) {
		return "None"
	}
	return moveNames[move]
}

// Destination returns the cell the agent would occupy after move.
// The result may be out of bounds; callers check with InBounds.
func Destination(p game.Point, move int) game.Point {
	return game.Point{X: p.X + dx[move], Y: p.Y + dy[move]}
}

// LegalMoves returns every move whose destination lies on the board,
// in the fixed move-constant order.
func LegalMoves(s *game.State) []int {
	moves := make([]int, 0, 4)
	for move := 0; move < 4; move++ {
		if s.InBounds(Destination(s.Agent, move)) {
			moves = append(moves, move)
		}
	}
	return moves
}

// Advance applies a legal move in place: the agent steps to the
// destination, collects its value (zeroing the cell), and the turn
// counter increments. Callers must only pass moves from LegalMoves.
func Advance(s *game.State, move int) {
	s.Agent = Destination(s.Agent, move)
	if p := &s.Points[s.Agent.Y][s.Agent.X]; *p > 0 {
		s.GameScore += *p
		*p = 0
	}
	s.Turn++
}

// NextState clones the state and applies a move. This is the frontier
// expansion helper: the input is never mutated.
func NextState(s *game.State, move int) *game.State {
	next := s.Clone()
	Advance(next, move)
	return next
}

// Evaluate sets the frontier ordering key from the raw score.
//
// It must be called exactly once per generated node, before insertion
// into any frontier; the search algorithms assume the key never
// changes afterward.
func Evaluate(s *game.State) {
	s.EvaluatedScore = s.GameScore
}
