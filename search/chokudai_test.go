package search

import (
	"errors"
	"testing"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
)

func TestChokudaiMove_SeesPastGreedyTrap(t *testing.T) {
	move, err := ChokudaiMove(trapBoard(), 2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveRight {
		t.Fatalf("move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveRight))
	}
}

func TestChokudaiMove_SecondPassRefinesAnswer(t *testing.T) {
	// Width 1: the first pass only deepens the greedy branch (score 2),
	// the second pass deepens the branch that reaches the 9.
	s := trapBoard()

	move, err := ChokudaiMove(s, 1, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveLeft {
		t.Fatalf("one pass: move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveLeft))
	}

	move, err = ChokudaiMove(s, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveRight {
		t.Fatalf("two passes: move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveRight))
	}
}

func TestChokudaiMove_TerminalNodesStayAsAnswers(t *testing.T) {
	// One-turn horizon: depth-1 nodes are terminal and must survive
	// repeated passes as candidate answers.
	s := newBoard([][]int64{
		{0, 9},
	}, game.Point{X: 0, Y: 0}, 1)

	move, err := ChokudaiMove(s, 2, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveRight {
		t.Fatalf("move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveRight))
	}
}

func TestChokudaiMove_ZeroPassesFindsNothing(t *testing.T) {
	if _, err := ChokudaiMove(trapBoard(), 2, 2, 0); !errors.Is(err, ErrNoMoveFound) {
		t.Fatalf("err=%v want=%v", err, ErrNoMoveFound)
	}
}

func TestChokudaiMove_DoesNotMutateState(t *testing.T) {
	s := trapBoard()
	if _, err := ChokudaiMove(s, 2, 2, 3); err != nil {
		t.Fatal(err)
	}
	if s.Turn != 0 || s.GameScore != 0 || s.FirstMove != -1 {
		t.Fatalf("state mutated: turn=%d score=%d firstMove=%d", s.Turn, s.GameScore, s.FirstMove)
	}
}

func TestChokudaiMoveTimed_ZeroBudgetStillCompletesOnePass(t *testing.T) {
	move, err := ChokudaiMoveTimed(trapBoard(), 2, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveRight {
		t.Fatalf("move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveRight))
	}
}
