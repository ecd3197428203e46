package turnplayer

import (
	"context"
	"time"

	"github.com/domino14/reversi/board"
)

// MoveEngine picks a move for the side to move. The board must be left
// exactly as it was passed in.
type MoveEngine interface {
	Compute(ctx context.Context, b *board.Board) (board.Location, error)
}

// Host is what an engine needs to know about its seat in the game: which
// color it plays, and how much of its time budget has gone by this turn.
type Host interface {
	Color() board.Color
	TimeLimited() bool
	// Elapsed is the time since the current turn started.
	Elapsed() time.Duration
	// TimeLimit is the total budget for one turn. It only matters if
	// TimeLimited is true.
	TimeLimit() time.Duration
}
