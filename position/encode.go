package position

import (
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/reversi/board"
)

// Encode writes the board as a position string. Opcodes are written in
// sorted order; pass nil for none.
func Encode(b *board.Board, opcodes map[string]string) string {
	rows := make([]string, board.Dim)
	for y := 0; y < board.Dim; y++ {
		var sb strings.Builder
		empties := 0
		for x := 0; x < board.Dim; x++ {
			c := b.Get(x, y)
			if c == board.Empty {
				empties++
				continue
			}
			if empties > 0 {
				sb.WriteString(strconv.Itoa(empties))
				empties = 0
			}
			sb.WriteRune(c.DisplayRune())
		}
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
		}
		rows[y] = sb.String()
	}
	s := strings.Join(rows, "/") + " " + string(b.SideToMove().DisplayRune())
	if len(opcodes) == 0 {
		return s
	}
	keys := make([]string, 0, len(opcodes))
	for k := range opcodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ops := make([]string, len(keys))
	for i, k := range keys {
		ops[i] = k + " " + opcodes[k]
	}
	return s + " " + strings.Join(ops, ";") + ";"
}
