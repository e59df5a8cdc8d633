package game

import (
	"math/rand"
	"testing"
)

func TestNewState_AgentCellStartsEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		s := NewState(Config{Width: 5, Height: 4, EndTurn: 10}, rng)
		if !s.InBounds(s.Agent) {
			t.Fatalf("agent out of bounds: %v", s.Agent)
		}
		if v := s.Points[s.Agent.Y][s.Agent.X]; v != 0 {
			t.Fatalf("agent cell holds %d, want 0", v)
		}
		for y := range s.Points {
			for x, v := range s.Points[y] {
				if v < 0 || v > MaxCellValue {
					t.Fatalf("cell (%d,%d)=%d outside [0,%d]", x, y, v, MaxCellValue)
				}
			}
		}
	}
}

func TestState_CloneIsDeep(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := NewState(Config{Width: 4, Height: 4, EndTurn: 10}, rng)
	s.FirstMove = 2

	c := s.Clone()
	c.Points[0][0] = 99
	c.Agent = Point{X: 3, Y: 3}
	c.Turn = 5

	if s.Points[0][0] == 99 {
		t.Fatal("clone shares Points")
	}
	if s.Turn != 0 {
		t.Fatalf("turn=%d want=0", s.Turn)
	}
	if c.FirstMove != 2 {
		t.Fatalf("clone firstMove=%d want=2", c.FirstMove)
	}
}

func TestAutoState_CloneIsDeep(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewAutoState(Config{Width: 4, Height: 4, EndTurn: 10, Characters: 3}, rng)

	c := s.Clone()
	c.Points[1][1] = 99
	c.Characters[0] = Point{X: 2, Y: 2}

	if s.Points[1][1] == 99 {
		t.Fatal("clone shares Points")
	}
	if s.Characters[0] != (Point{X: 0, Y: 0}) {
		t.Fatal("clone shares Characters")
	}
	if len(c.Characters) != 3 {
		t.Fatalf("characters=%d want=3", len(c.Characters))
	}
}
