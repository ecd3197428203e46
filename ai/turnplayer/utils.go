package turnplayer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
)

// PlayTurn lets engine play one turn on b. If the side to move has no
// legal move it passes instead, since engines don't handle that at the top
// level. It returns the location played, or nil for a pass.
func PlayTurn(ctx context.Context, b *board.Board, engine MoveEngine) (*board.Location, error) {
	if !b.IsLegal() {
		log.Debug().Str("side", b.SideToMove().String()).Msg("forced-pass")
		b.Pass()
		return nil, nil
	}
	loc, err := engine.Compute(ctx, b)
	if err != nil {
		return nil, err
	}
	if err := b.Put(loc); err != nil {
		return nil, fmt.Errorf("engine returned a bad move: %w", err)
	}
	return &loc, nil
}
