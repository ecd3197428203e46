package evaluation

import "github.com/domino14/reversi/board"

var corners = [4]board.Location{{X: 0, Y: 0}, {X: 0, Y: 7}, {X: 7, Y: 0}, {X: 7, Y: 7}}

// CountStable approximates the number of discs of color that can never be
// flipped. From each corner it walks the row, the column and the diagonal
// inward, counting the unbroken run of color starting at the corner.
//
// Discs reached from more than one corner, and the corner disc itself
// (which starts all three runs), are counted more than once.
func CountStable(b *board.Board, color board.Color) int {
	count := 0
	for _, c := range corners {
		cx, cy := c.X, c.Y
		dx, dy := 1, 1
		if cx != 0 {
			dx = -1
		}
		if cy != 0 {
			dy = -1
		}

		for x := cx; x >= 0 && x < board.Dim; x += dx {
			if b.Get(x, cy) != color {
				break
			}
			count++
		}
		for y := cy; y >= 0 && y < board.Dim; y += dy {
			if b.Get(cx, y) != color {
				break
			}
			count++
		}
		for x, y := cx, cy; x >= 0 && x < board.Dim && y >= 0 && y < board.Dim; x, y = x+dx, y+dy {
			if b.Get(x, y) != color {
				break
			}
			count++
		}
	}
	return count
}
