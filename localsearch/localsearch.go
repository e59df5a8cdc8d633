// Package localsearch implements placement optimization for the
// auto-move board: hill climbing and simulated annealing.
//
// Both strategies share the same structure: start from a random
// placement, then repeatedly perturb one character and re-roll the
// deterministic playout, keeping or discarding the perturbation by
// score. They differ only in the acceptance rule.
package localsearch

import (
	"math"
	"math/rand"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
)

// HillClimb accepts a perturbation only when it strictly improves the
// rollout score, so the accepted score sequence is non-decreasing and
// the current state is also the best state.
func HillClimb(s *game.AutoState, iterations int, rng *rand.Rand) *game.AutoState {
	now := s.Clone()
	rules.PlaceCharacters(now, rng)
	bestScore := rules.Rollout(now, nil)
	for i := 0; i < iterations; i++ {
		next := now.Clone()
		rules.PerturbCharacter(next, rng)
		if score := rules.Rollout(next, nil); score > bestScore {
			bestScore = score
			now = next
		}
	}
	now.EvaluatedScore = bestScore
	return now
}

// AnnealConfig holds the simulated annealing schedule.
//
// EndTemp must be greater than zero: the acceptance probability
// divides by the temperature for the full schedule.
type AnnealConfig struct {
	Iterations int
	StartTemp  float64
	EndTemp    float64
}

// acceptProbability is the Metropolis rule for a candidate whose
// rollout score differs from the current one by delta.
func acceptProbability(delta int64, temp float64) float64 {
	return math.Exp(float64(delta) / temp)
}

// Anneal runs simulated annealing over placements. The temperature
// interpolates linearly from StartTemp to EndTemp across the
// iterations; a worse candidate is accepted with probability
// exp(delta/temp). The best placement ever seen is tracked separately
// from the walk and returned, since the walk can end somewhere worse.
func Anneal(s *game.AutoState, cfg AnnealConfig, rng *rand.Rand) *game.AutoState {
	now := s.Clone()
	rules.PlaceCharacters(now, rng)
	nowScore := rules.Rollout(now, nil)

	best := now
	bestScore := nowScore

	for i := 0; i < cfg.Iterations; i++ {
		next := now.Clone()
		rules.PerturbCharacter(next, rng)
		nextScore := rules.Rollout(next, nil)

		temp := cfg.StartTemp + (cfg.EndTemp-cfg.StartTemp)*(float64(i)/float64(cfg.Iterations))
		forceNext := acceptProbability(nextScore-nowScore, temp) > rng.Float64()
		if nextScore > nowScore || forceNext {
			nowScore = nextScore
			now = next
		}
		if nextScore > bestScore {
			bestScore = nextScore
			best = next
		}
	}
	best.EvaluatedScore = bestScore
	return best
}
