package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridquest/gridquest/game"
	"github.com/gridquest/gridquest/rules"
	"github.com/gridquest/gridquest/selfplay"
)

type model struct {
	state    *game.State
	policy   selfplay.Policy
	strategy string
	interval time.Duration

	lastMove int
	err      error
	done     bool
}

type TickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		if m.done || m.err != nil {
			return m, nil
		}
		move, err := m.policy(m.state)
		if err != nil {
			m.err = err
			return m, nil
		}
		rules.Advance(m.state, move)
		m.lastMove = move
		if m.state.IsDone() {
			m.done = true
			return m, nil
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	s := fmt.Sprintf("strategy: %s\n", m.strategy)
	s += fmt.Sprintf("move:     %s\n", rules.MoveName(m.lastMove))
	s += selfplay.RenderBoard(m.state)
	if m.err != nil {
		s += fmt.Sprintf("\nerror: %v\n", m.err)
	}
	if m.done {
		s += fmt.Sprintf("\nepisode over, final score %d\n", m.state.GameScore)
	}
	s += "\nPress q to quit.\n"
	return s
}

func main() {
	strategy := flag.String("strategy", "chokudai-timed", "Strategy: random, greedy, beam, beam-timed, chokudai, chokudai-timed")
	width := flag.Int("width", 30, "Board width")
	height := flag.Int("height", 30, "Board height")
	endTurn := flag.Int("end-turn", 100, "Episode length in turns")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Board seed")
	beamWidth := flag.Int("beam-width", 5, "Beam width")
	beamDepth := flag.Int("beam-depth", 100, "Beam / chokudai depth")
	passes := flag.Int("passes", 2, "Chokudai pass count")
	budget := flag.Duration("budget", 10*time.Millisecond, "Per-move budget for the timed strategies")
	interval := flag.Duration("interval", 100*time.Millisecond, "Delay between rendered turns")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	var policy selfplay.Policy
	switch *strategy {
	case "random":
		policy = selfplay.RandomPolicy(rng)
	case "greedy":
		policy = selfplay.GreedyPolicy()
	case "beam":
		policy = selfplay.BeamPolicy(*beamWidth, *beamDepth)
	case "beam-timed":
		policy = selfplay.BeamTimedPolicy(*beamWidth, *budget)
	case "chokudai":
		policy = selfplay.ChokudaiPolicy(*beamWidth, *beamDepth, *passes)
	case "chokudai-timed":
		policy = selfplay.ChokudaiTimedPolicy(*beamWidth, *beamDepth, *budget)
	default:
		log.Fatalf("unknown strategy %q", *strategy)
	}

	state := game.NewState(game.Config{
		Width:   int32(*width),
		Height:  int32(*height),
		EndTurn: int32(*endTurn),
	}, rng)

	m := model{
		state:    state,
		policy:   policy,
		strategy: *strategy,
		interval: *interval,
		lastMove: -1,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
