package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board with column letters across the top and
// row numbers down the side, followed by disc counts and the side to move.
func (b *Board) ToDisplayText() string {
	var str strings.Builder
	row := "   "
	for i := 0; i < Dim; i++ {
		row = row + fmt.Sprintf("%c", 'a'+i) + " "
	}
	str.WriteString(row + "\n")
	str.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	for y := 0; y < Dim; y++ {
		row := fmt.Sprintf("%2d|", y+1)
		for x := 0; x < Dim; x++ {
			row = row + string(b.Get(x, y).DisplayRune()) + " "
		}
		row = row + "|"
		str.WriteString(row + "\n")
	}
	str.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	str.WriteString(fmt.Sprintf("   X: %d  O: %d  to move: %c\n",
		b.Count(First), b.Count(Second), b.onturn.DisplayRune()))
	return "\n" + str.String()
}

// SetFromRows sets the board cells from eight strings of X, O and '.'
// characters, top row first. The undo stack is cleared; the side to move is
// not changed.
func (b *Board) SetFromRows(rows []string) error {
	if len(rows) != Dim {
		return fmt.Errorf("need %d rows, got %d", Dim, len(rows))
	}
	squares := [Dim * Dim]Color{}
	for y, r := range rows {
		r = strings.ReplaceAll(r, " ", "")
		if len(r) != Dim {
			return fmt.Errorf("row %d has %d cells", y+1, len(r))
		}
		for x, ch := range r {
			c, err := ColorFromRune(ch)
			if err != nil {
				return fmt.Errorf("row %d: %w", y+1, err)
			}
			squares[idx(x, y)] = c
		}
	}
	b.squares = squares
	b.stateStack = b.stateStack[:0]
	return nil
}
