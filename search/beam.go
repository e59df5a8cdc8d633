package search

import (
	"time"

	"github.com/gridquest/gridquest/game"
)

// BeamMove runs a fixed-width, fixed-depth beam search and returns the
// FirstMove of the best node in the final frontier.
//
// width bounds how many parents are popped per round, not how many
// children are produced (branching factor is up to 4 per parent).
// Stops early once the best node in a freshly built frontier is
// terminal.
func BeamMove(s *game.State, width, depth int) (int, error) {
	root := s.Clone()
	root.FirstMove = -1
	now := frontier{root}
	var best *game.State
	for d := 0; d < depth; d++ {
		next := frontier{}
		for i := 0; i < width; i++ {
			if now.Len() == 0 {
				break
			}
			expand(&next, now.pop(), d == 0)
		}
		now = next
		if now.Len() == 0 {
			break
		}
		best = now.peek()
		if best.IsDone() {
			break
		}
	}
	if best == nil || best.FirstMove < 0 {
		return 0, ErrNoMoveFound
	}
	return best.FirstMove, nil
}

// BeamMoveTimed is BeamMove without a depth bound: rounds run until
// the best frontier node is terminal or the budget expires. The
// deadline is polled once per candidate pop; on expiry the answer is
// the best state of the last fully completed round, so spending more
// time never regresses to an earlier, worse move.
//
// The budget must be large enough for at least one round to complete;
// a budget that expires before then is a caller contract violation and
// yields ErrNoMoveFound.
func BeamMoveTimed(s *game.State, width int, budget time.Duration) (int, error) {
	tk := NewTimeKeeper(budget)
	root := s.Clone()
	root.FirstMove = -1
	now := frontier{root}
	var best *game.State
	for d := 0; ; d++ {
		next := frontier{}
		for i := 0; i < width; i++ {
			if tk.IsExpired() {
				if best == nil || best.FirstMove < 0 {
					return 0, ErrNoMoveFound
				}
				return best.FirstMove, nil
			}
			if now.Len() == 0 {
				break
			}
			expand(&next, now.pop(), d == 0)
		}
		now = next
		if now.Len() == 0 {
			break
		}
		best = now.peek()
		if best.IsDone() {
			break
		}
	}
	if best == nil || best.FirstMove < 0 {
		return 0, ErrNoMoveFound
	}
	return best.FirstMove, nil
}
