package rules

import (
	"strings"
	"testing"

	"github.com/gridquest/gridquest/game"
)

// newTestState builds a single-agent board from literal cell values.
func newTestState(points [][]int64, agent game.Point, endTurn int32) *game.State {
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

// dumpState is a test helper to visualize board state.
func dumpState(s *game.State) string {
	var sb strings.Builder
	for y := int32(0); y < s.Height; y++ {
		for x := int32(0); x < s.Width; x++ {
			switch {
			case s.Agent.X == x && s.Agent.Y == y:
				sb.WriteByte('@')
			case s.Points[y][x] > 0:
				sb.WriteByte(byte('0' + s.Points[y][x]))
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func logAdvance(t *testing.T, label string, before *game.State, move int, after *game.State) {
	t.Logf("%s\n  BEFORE (move=%s):\n%s  AFTER:\n%s", label, MoveName(move), dumpState(before), dumpState(after))
}

func TestLegalMoves_CornerHasTwo(t *testing.T) {
	s := newTestState([][]int64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}, game.Point{X: 0, Y: 0}, 10)

	got := LegalMoves(s)
	want := []int{MoveRight, MoveDown}
	if len(got) != len(want) {
		t.Fatalf("moves=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moves=%v want=%v", got, want)
		}
	}
}

func TestLegalMoves_CenterHasAllFourInOrder(t *testing.T) {
	s := newTestState([][]int64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}, game.Point{X: 1, Y: 1}, 10)

	got := LegalMoves(s)
	want := []int{MoveRight, MoveLeft, MoveDown, MoveUp}
	if len(got) != len(want) {
		t.Fatalf("moves=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moves=%v want=%v", got, want)
		}
	}
}

func TestAdvance_CollectsCellExactlyOnce(t *testing.T) {
	s := newTestState([][]int64{
		{0, 5, 0},
	}, game.Point{X: 0, Y: 0}, 10)

	before := s.Clone()
	Advance(s, MoveRight)
	logAdvance(t, "first visit collects", before, MoveRight, s)

	if s.GameScore != 5 {
		t.Fatalf("score=%d want=5", s.GameScore)
	}
	if s.Points[0][1] != 0 {
		t.Fatalf("cell not zeroed: %d", s.Points[0][1])
	}
	if s.Turn != 1 {
		t.Fatalf("turn=%d want=1", s.Turn)
	}

	// Leave and come back; the cell stays empty.
	Advance(s, MoveLeft)
	Advance(s, MoveRight)
	if s.GameScore != 5 {
		t.Fatalf("revisit collected again: score=%d want=5", s.GameScore)
	}
	if s.Turn != 3 {
		t.Fatalf("turn=%d want=3", s.Turn)
	}
}

func TestNextState_LeavesInputUntouched(t *testing.T) {
	s := newTestState([][]int64{
		{0, 7},
		{3, 1},
	}, game.Point{X: 0, Y: 0}, 10)

	next := NextState(s, MoveRight)

	if s.Turn != 0 || s.GameScore != 0 || s.Agent != (game.Point{X: 0, Y: 0}) {
		t.Fatalf("input mutated: turn=%d score=%d agent=%v", s.Turn, s.GameScore, s.Agent)
	}
	if s.Points[0][1] != 7 {
		t.Fatalf("input cell zeroed: %d", s.Points[0][1])
	}
	if next.GameScore != 7 || next.Turn != 1 {
		t.Fatalf("next score=%d turn=%d want=7,1", next.GameScore, next.Turn)
	}
}

func TestEvaluate_SetsOrderingKeyFromScore(t *testing.T) {
	s := newTestState([][]int64{{0, 4}}, game.Point{X: 0, Y: 0}, 10)
	Advance(s, MoveRight)
	Evaluate(s)
	if s.EvaluatedScore != s.GameScore {
		t.Fatalf("evaluated=%d score=%d", s.EvaluatedScore, s.GameScore)
	}
}

func TestIsDone_AtEndTurn(t *testing.T) {
	s := newTestState([][]int64{{0, 1, 1}}, game.Point{X: 0, Y: 0}, 2)
	if s.IsDone() {
		t.Fatal("done before any move")
	}
	Advance(s, MoveRight)
	Advance(s, MoveRight)
	if !s.IsDone() {
		t.Fatalf("not done at turn=%d endTurn=%d", s.Turn, s.EndTurn)
	}
}
