// Package selfplay drives complete episodes: it repeatedly asks a
// strategy for a move, advances the board, and records one archive row
// per turn. It also runs whole benchmarks of many episodes across a
// worker pool.
package selfplay

import (
	"math/rand"
	"time"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/search"
)

// Policy picks the move to make now from a state. Implementations must
// not mutate the state.
type Policy func(*game.State) (int, error)

// RandomPolicy wraps search.RandomMove with an owned rng.
func RandomPolicy(rng *rand.Rand) Policy {
	return func(s *game.State) (int, error) {
		return search.RandomMove(s, rng), nil
	}
}

// GreedyPolicy wraps search.GreedyMove.
func GreedyPolicy() Policy {
	return func(s *game.State) (int, error) {
		return search.GreedyMove(s)
	}
}

// BeamPolicy wraps search.BeamMove with a fixed width and depth.
func BeamPolicy(width, depth int) Policy {
	return func(s *game.State) (int, error) {
		return search.BeamMove(s, width, depth)
	}
}

// BeamTimedPolicy wraps search.BeamMoveTimed with a per-move budget.
func BeamTimedPolicy(width int, budget time.Duration) Policy {
	return func(s *game.State) (int, error) {
		return search.BeamMoveTimed(s, width, budget)
	}
}

// ChokudaiPolicy wraps search.ChokudaiMove with fixed passes.
func ChokudaiPolicy(width, depth, passes int) Policy {
	return func(s *game.State) (int, error) {
		return search.ChokudaiMove(s, width, depth, passes)
	}
}

// ChokudaiTimedPolicy wraps search.ChokudaiMoveTimed with a per-move
// budget.
func ChokudaiTimedPolicy(width, depth int, budget time.Duration) Policy {
	return func(s *game.State) (int, error) {
		return search.ChokudaiMoveTimed(s, width, depth, budget)
	}
}
