package search

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
)

// newBoard builds a single-agent board from literal cell values.
func newBoard(points [][]int64, agent game.Point, endTurn int32) *game.State {
	s := &game.State{
		Width:     int32(len(points[0])),
		Height:    int32(len(points)),
		EndTurn:   endTurn,
		Agent:     agent,
		FirstMove: -1,
	}
	s.Points = make([][]int64, len(points))
	for y := range points {
		s.Points[y] = append([]int64(nil), points[y]...)
	}
	return s
}

func TestGreedyMove_PicksHighestNeighbor(t *testing.T) {
	s := newBoard([][]int64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}, game.Point{X: 0, Y: 0}, 2)

	move, err := GreedyMove(s)
	if err != nil {
		t.Fatal(err)
	}
	// right collects 1, down collects 3.
	if move != rules.MoveDown {
		t.Fatalf("move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveDown))
	}
}

func TestGreedyMove_TieKeepsFirstMoveOrder(t *testing.T) {
	s := newBoard([][]int64{
		{0, 6},
		{6, 1},
	}, game.Point{X: 0, Y: 0}, 2)

	move, err := GreedyMove(s)
	if err != nil {
		t.Fatal(err)
	}
	if move != rules.MoveRight {
		t.Fatalf("move=%s want=%s", rules.MoveName(move), rules.MoveName(rules.MoveRight))
	}
}

func TestGreedyMove_DoesNotMutateState(t *testing.T) {
	s := newBoard([][]int64{
		{0, 1},
		{3, 4},
	}, game.Point{X: 0, Y: 0}, 2)

	if _, err := GreedyMove(s); err != nil {
		t.Fatal(err)
	}
	if s.Turn != 0 || s.GameScore != 0 || s.Points[1][0] != 3 {
		t.Fatalf("state mutated: turn=%d score=%d", s.Turn, s.GameScore)
	}
}

func TestRandomMove_AlwaysLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := newBoard([][]int64{
		{0, 1, 2},
		{3, 4, 5},
	}, game.Point{X: 0, Y: 0}, 100)

	legal := map[int]bool{rules.MoveRight: true, rules.MoveDown: true}
	for i := 0; i < 100; i++ {
		if move := RandomMove(s, rng); !legal[move] {
			t.Fatalf("illegal move %s from corner", rules.MoveName(move))
		}
	}
}

func TestTimeKeeper_ZeroBudgetExpiresImmediately(t *testing.T) {
	tk := NewTimeKeeper(0)
	if !tk.IsExpired() {
		t.Fatal("zero budget not expired")
	}
}

func TestTimeKeeper_LargeBudgetDoesNotExpire(t *testing.T) {
	tk := NewTimeKeeper(time.Hour)
	if tk.IsExpired() {
		t.Fatal("hour budget expired immediately")
	}
}

func TestFrontier_PopsByEvaluatedScoreDescending(t *testing.T) {
	var f frontier
	for _, score := range []int64{3, 9, 1, 7} {
		s := &game.State{EvaluatedScore: score}
		f.push(s)
	}

	want := []int64{9, 7, 3, 1}
	for _, w := range want {
		if got := f.pop().EvaluatedScore; got != w {
			t.Fatalf("pop=%d want=%d", got, w)
		}
	}
	if f.Len() != 0 {
		t.Fatalf("frontier not empty: %d", f.Len())
	}
}
