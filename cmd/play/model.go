package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/executor/selfplay"
	"github.com/brensch/tile2048/game"
)

type model struct {
	session *game.Session
	engine  *search.Engine
	status  string
}

func newModel(session *game.Session, engine *search.Engine) model {
	return model{session: session, engine: engine}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.status = m.hint()
		return m, nil
	default:
		if m.session.Lost() {
			return m, tea.Quit
		}
		dir, ok := keyDirection(k)
		if !ok {
			return m, nil
		}
		m.status = m.play(dir)
		if m.session.Lost() {
			return m, tea.Quit
		}
		return m, nil
	}
}

// play applies dir to the session and mirrors the slide and the spawn into
// the engine's tree.
func (m *model) play(dir game.Direction) string {
	if !m.session.HumanMove(dir) {
		return fmt.Sprintf("%v does not move anything", dir)
	}
	spawn, _ := m.session.RandomMove()
	if m.engine == nil {
		return ""
	}
	if !m.engine.CommitHuman(dir) || !m.engine.CommitRandom(spawn) || m.engine.Root().Board != m.session.Board {
		// The session is canonical; rebuild the tree from it.
		m.engine.Reset(m.session.Board)
	}
	return ""
}

func (m model) hint() string {
	if m.engine == nil {
		return "hints are disabled"
	}
	res, err := m.engine.Suggest()
	if err != nil {
		return fmt.Sprintf("no hint: %v", err)
	}
	return fmt.Sprintf("hint: %v (score %d, %d nodes)", res.Move.Dir, res.Score, res.Stats.Total)
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(selfplay.RenderBoard(int(m.session.MoveCount()), m.session.Board))
	if m.session.Lost() {
		fmt.Fprintf(&s, "\nYou lost. Score: %d  Max tile: %d  Moves: %d\n",
			m.session.Score(), m.session.MaxCell(), m.session.MoveCount())
		return s.String()
	}
	if m.status != "" {
		s.WriteString("\n" + m.status + "\n")
	}
	s.WriteString("\nwasd / hjkl / arrows to slide, ? for a hint, q to quit.\n")
	return s.String()
}
