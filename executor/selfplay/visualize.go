package selfplay

import (
	"fmt"
	"io"
	"strings"

	"github.com/brensch/tile2048/game"
)

// PrintBoard writes a boxed grid of displayed tile values for one turn.
func PrintBoard(w io.Writer, turn int, b game.Board) {
	fmt.Fprint(w, RenderBoard(turn, b))
}

func RenderBoard(turn int, b game.Board) string {
	const cell = 6
	rule := "+" + strings.Repeat(strings.Repeat("-", cell)+"+", game.Size) + "\n"

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== turn %d  score %d  max %d  %s ===\n", turn, b.Score, b.MaxCell(), b.State)
	sb.WriteString(rule)
	for r := 0; r < game.Size; r++ {
		sb.WriteByte('|')
		for c := 0; c < game.Size; c++ {
			if e := b.Cells[r][c]; e == 0 {
				fmt.Fprintf(&sb, "%*s|", cell, ".")
			} else {
				fmt.Fprintf(&sb, "%*d|", cell, game.TileValue(e))
			}
		}
		sb.WriteByte('\n')
		sb.WriteString(rule)
	}
	return sb.String()
}
