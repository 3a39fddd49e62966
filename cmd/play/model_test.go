package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/game"
	"github.com/brensch/tile2048/rules"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, seed int64) model {
	t.Helper()
	s := game.NewSession(seed)
	cfg := search.DefaultConfig()
	cfg.Depth = 2
	e, err := search.New(rules.Build(), s.Board, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return newModel(s, e)
}

func press(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestModel_KeysKeepEngineInSync(t *testing.T) {
	m := newTestModel(t, 3)
	keys := []tea.KeyMsg{
		runes("a"), runes("s"), {Type: tea.KeyRight}, runes("k"),
		runes("h"), runes("↓"), runes("d"), {Type: tea.KeyUp},
	}
	for i := 0; i < 40 && !m.session.Lost(); i++ {
		m, _ = press(m, keys[i%len(keys)])
		if m.engine.Root().Board != m.session.Board {
			t.Fatalf("key %d: engine\n%v\nsession\n%v", i, m.engine.Root().Board, m.session.Board)
		}
	}
	t.Logf("after keys: score=%d moves=%d", m.session.Score(), m.session.MoveCount())
}

func TestModel_UnboundKeyIsNoop(t *testing.T) {
	m := newTestModel(t, 5)
	before := m.session.Board
	m, cmd := press(m, runes("x"))
	if cmd != nil || m.session.Board != before || m.status != "" {
		t.Fatalf("unbound key changed state: status=%q", m.status)
	}
}

func TestModel_HintThenFollow(t *testing.T) {
	m := newTestModel(t, 9)
	m, _ = press(m, runes("?"))
	if !strings.HasPrefix(m.status, "hint: ") {
		t.Fatalf("status = %q", m.status)
	}
	if !m.engine.Root().HumanTurn() || m.engine.Root().Board != m.session.Board {
		t.Fatalf("hint moved the engine root")
	}

	dir := strings.Fields(strings.TrimPrefix(m.status, "hint: "))[0]
	var key string
	for k, d := range keyDirections {
		if d.String() == dir && len(k) == 1 && k >= "a" {
			key = k
			break
		}
	}
	m, _ = press(m, runes(key))
	if m.engine.Root().Board != m.session.Board || m.session.MoveCount() != 1 {
		t.Fatalf("following the hint (%s via %q) left the engine out of sync", dir, key)
	}
}

func TestModel_LossMessage(t *testing.T) {
	m := newTestModel(t, 1)
	m.session.Board = game.FromCells([4][4]uint8{
		{1, 2, 1, 2},
		{2, 1, 2, 1},
		{1, 2, 1, 2},
		{2, 1, 2, 1},
	})
	m.session.Board.State = game.Lose
	m.session.Board.Score = 1234
	view := m.View()
	if !strings.Contains(view, "You lost. Score: 1234") || !strings.Contains(view, "Max tile: 4") {
		t.Fatalf("loss view:\n%s", view)
	}
	if _, cmd := press(m, runes("a")); cmd == nil {
		t.Fatalf("a key after the loss should quit")
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t, 1)
	if _, cmd := press(m, runes("q")); cmd == nil {
		t.Fatalf("q should quit")
	}
}
