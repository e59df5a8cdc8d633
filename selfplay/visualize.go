package selfplay

import (
	"fmt"
	"strings"

	"github.com/gridquest/gridquest/game"
)

func renderCell(value int64, occupied bool) byte {
	switch {
	case occupied:
		return '@'
	case value > 0:
		return byte('0' + value)
	default:
		return '.'
	}
}

// RenderBoard returns a human-readable view of a single-agent board:
// a turn/score header, then one row per board row with remaining cell
// values as digits, '.' for empty, '@' for the agent.
func RenderBoard(s *game.State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn:\t%d\n", s.Turn)
	fmt.Fprintf(&sb, "score:\t%d\n", s.GameScore)
	for y := int32(0); y < s.Height; y++ {
		for x := int32(0); x < s.Width; x++ {
			occupied := s.Agent.Y == y && s.Agent.X == x
			sb.WriteByte(renderCell(s.Points[y][x], occupied))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderAutoBoard is RenderBoard for the multi-agent board; every
// character renders as '@'.
func RenderAutoBoard(s *game.AutoState) string {
	occ := make(map[game.Point]bool, len(s.Characters))
	for _, c := range s.Characters {
		occ[c] = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "turn:\t%d\n", s.Turn)
	fmt.Fprintf(&sb, "score:\t%d\n", s.GameScore)
	for y := int32(0); y < s.Height; y++ {
		for x := int32(0); x < s.Width; x++ {
			sb.WriteByte(renderCell(s.Points[y][x], occ[game.Point{X: x, Y: y}]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
