// Package evaluation scores reversi positions statically.
package evaluation

import "github.com/domino14/reversi/board"

// Evaluator is a static evaluator of positions. Score is from the point of
// view of color; higher is better for color. Implementations may mutate b
// while scoring but must leave it exactly as they found it.
type Evaluator interface {
	Score(b *board.Board, color board.Color) int
}
