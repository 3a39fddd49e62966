package main

import (
	"testing"

	"github.com/brensch/tile2048/game"
)

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		keys []string
		want game.Direction
	}{
		{[]string{"w", "W", "k", "up", "↑"}, game.Up},
		{[]string{"a", "A", "h", "left", "←"}, game.Left},
		{[]string{"s", "S", "j", "down", "↓"}, game.Down},
		{[]string{"d", "D", "l", "right", "→"}, game.Right},
	}
	for _, tt := range tests {
		for _, k := range tt.keys {
			got, ok := keyDirection(k)
			if !ok || got != tt.want {
				t.Errorf("keyDirection(%q) = %v, %v; want %v", k, got, ok, tt.want)
			}
		}
	}

	for _, k := range []string{"x", "?", "q", " ", "enter", ""} {
		if d, ok := keyDirection(k); ok {
			t.Errorf("keyDirection(%q) = %v, want unbound", k, d)
		}
	}
}
