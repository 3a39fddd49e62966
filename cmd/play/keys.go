package main

import "github.com/brensch/tile2048/game"

// keyDirections maps bubbletea key names to slides. WASD, vi-style hjkl, the
// arrow keys and literal arrow glyphs are synonyms.
var keyDirections = map[string]game.Direction{
	"w": game.Up, "a": game.Left, "s": game.Down, "d": game.Right,
	"W": game.Up, "A": game.Left, "S": game.Down, "D": game.Right,
	"k": game.Up, "h": game.Left, "j": game.Down, "l": game.Right,
	"up": game.Up, "left": game.Left, "down": game.Down, "right": game.Right,
	"↑": game.Up, "←": game.Left, "↓": game.Down, "→": game.Right,
}

// keyDirection reports the slide bound to key. Unbound keys are ignored by
// the caller, never treated as errors.
func keyDirection(key string) (game.Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}
