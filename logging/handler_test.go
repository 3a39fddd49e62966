package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/brensch/tile2048/game"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	return m
}

func TestHandler_Compact(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, Options{}))
	log.Info("search done", "nodes", 42, "err", errors.New("boom"))

	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("compact output should be one line: %q", buf.String())
	}
	m := decode(t, &buf)
	if m["msg"] != "search done" || m["level"] != "INFO" {
		t.Fatalf("payload %v", m)
	}
	if m["nodes"] != float64(42) || m["err"] != "boom" {
		t.Fatalf("attrs %v", m)
	}
}

func TestHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, Options{Level: slog.LevelWarn}))
	log.Info("hidden")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("filtered records written: %q", buf.String())
	}
	log.Warn("shown")
	if decode(t, &buf)["msg"] != "shown" {
		t.Fatalf("warn not written")
	}
}

func TestHandler_GroupsAndBoards(t *testing.T) {
	var buf bytes.Buffer
	b := game.FromCells([4][4]uint8{{1, 2}, {}, {}, {0, 0, 0, 3}})
	log := slog.New(NewHandler(&buf, Options{Indent: true})).
		With("worker", 3).
		WithGroup("game").
		With("seed", 7)
	log.Info("turn", "board", b)

	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("indented output expected: %q", buf.String())
	}
	m := decode(t, &buf)
	if m["worker"] != float64(3) {
		t.Fatalf("root attr lost: %v", m)
	}
	g, ok := m["game"].(map[string]any)
	if !ok {
		t.Fatalf("missing group: %v", m)
	}
	if g["seed"] != float64(7) {
		t.Fatalf("grouped attr lost: %v", g)
	}
	board, ok := g["board"].(map[string]any)
	if !ok {
		t.Fatalf("board should log as an object: %v", g)
	}
	if board["max"] != float64(8) || board["state"] != "InGame" {
		t.Fatalf("board attrs %v", board)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("unknown level should fail")
	}
}
