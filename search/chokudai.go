package search

import (
	"time"

	"github.com/gridquest/gridquest/game"
)

// sweep runs one depth-interleaved pass: for every depth in order, pop
// up to width nodes from that depth's frontier and push their
// expansions into the next depth's frontier. Terminal nodes are never
// re-expanded; they stay in their frontier as candidate answers.
func sweep(beams []frontier, width, depth int) {
	for t := 0; t < depth; t++ {
		for i := 0; i < width; i++ {
			if beams[t].Len() == 0 {
				break
			}
			cur := beams[t].peek()
			if cur.IsDone() {
				break
			}
			beams[t].pop()
			expand(&beams[t+1], cur, t == 0)
		}
	}
}

// deepestMove scans the frontiers from deepest to shallowest and
// returns the FirstMove of the best node at the first non-empty depth.
// The shallowest frontier can still hold the untagged root, in which
// case no move was ever found.
func deepestMove(beams []frontier) (int, error) {
	for t := len(beams) - 1; t >= 0; t-- {
		if beams[t].Len() == 0 {
			continue
		}
		if move := beams[t].peek().FirstMove; move >= 0 {
			return move, nil
		}
		return 0, ErrNoMoveFound
	}
	return 0, ErrNoMoveFound
}

// ChokudaiMove runs the depth-interleaved anytime beam variant for a
// fixed number of passes. Each pass refines every depth a little, so
// shallow progress is never wasted on an early exit; the answer comes
// from the deepest frontier that holds anything.
func ChokudaiMove(s *game.State, width, depth, passes int) (int, error) {
	beams := make([]frontier, depth+1)
	root := s.Clone()
	root.FirstMove = -1
	beams[0].push(root)
	for p := 0; p < passes; p++ {
		sweep(beams, width, depth)
	}
	return deepestMove(beams)
}

// ChokudaiMoveTimed runs passes until the budget expires. The deadline
// is checked once per pass: a full depth-sweep is the unit of useful
// progress here, unlike beam search's per-pop check. At least one pass
// always completes, and frontier 0 is seeded before the loop, so the
// answer scan is well-defined even for a zero budget.
func ChokudaiMoveTimed(s *game.State, width, depth int, budget time.Duration) (int, error) {
	tk := NewTimeKeeper(budget)
	beams := make([]frontier, depth+1)
	root := s.Clone()
	root.FirstMove = -1
	beams[0].push(root)
	for {
		sweep(beams, width, depth)
		if tk.IsExpired() {
			break
		}
	}
	return deepestMove(beams)
}
