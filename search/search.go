// Package search implements the action-selection strategies for the
// single-agent board: random, one-step greedy, fixed and time-bounded
// beam search, and fixed and time-bounded chokudai search.
//
// Every function returns the move to make now. The deeper searches
// recover that decision from the FirstMove tag written onto depth-0
// children during expansion.
//
// All of these are deterministic given their inputs (random takes an
// explicit rng); none of them mutate the state they are given.
package search

import (
	"errors"
	"math/rand"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
)

var (
	// ErrNoLegalMove means a search was asked for a move from a state
	// with no legal moves. The board geometry guarantees at least two
	// in-bounds moves from any cell, so this is an invariant violation,
	// not a normal game condition.
	ErrNoLegalMove = errors.New("search: no legal move from state")

	// ErrNoMoveFound means a search finished without a single tagged
	// frontier node to answer from (degenerate configuration, e.g. a
	// zero beam width).
	ErrNoMoveFound = errors.New("search: no move found")
)

// RandomMove picks a uniform random legal move.
//
// Precondition: the state has at least one legal move.
func RandomMove(s *game.State, rng *rand.Rand) int {
	moves := rules.LegalMoves(s)
	return moves[rng.Intn(len(moves))]
}

// GreedyMove does a one-step lookahead and returns the move whose
// resulting state evaluates highest. Ties keep the first-seen move in
// move-constant order.
func GreedyMove(s *game.State) (int, error) {
	bestMove := -1
	var bestScore int64 = -1
	for _, move := range rules.LegalMoves(s) {
		next := rules.NextState(s, move)
		rules.Evaluate(next)
		if next.EvaluatedScore > bestScore {
			bestScore = next.EvaluatedScore
			bestMove = move
		}
	}
	if bestMove < 0 {
		return 0, ErrNoLegalMove
	}
	return bestMove, nil
}

// expand pushes every legal successor of cur into next, tagging
// depth-0 children with the move that produced them.
func expand(next *frontier, cur *game.State, depthZero bool) {
	for _, move := range rules.LegalMoves(cur) {
		child := rules.NextState(cur, move)
		rules.Evaluate(child)
		if depthZero {
			child.FirstMove = move
		}
		next.push(child)
	}
}
