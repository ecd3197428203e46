package turnplayer

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
)

type firstMoveEngine struct {
	calls int
}

func (e *firstMoveEngine) Compute(ctx context.Context, b *board.Board) (board.Location, error) {
	e.calls++
	return b.EnumerateLegalLocations()[0], nil
}

type badEngine struct{}

func (badEngine) Compute(ctx context.Context, b *board.Board) (board.Location, error) {
	return board.Location{X: 0, Y: 0}, nil
}

func TestTurnClock(t *testing.T) {
	is := is.New(t)
	now := time.Unix(1000, 0)
	c := NewTurnClock(board.Second, true, 5*time.Second)
	c.SetNow(func() time.Time { return now })
	is.Equal(c.Elapsed(), time.Duration(0))
	now = now.Add(3 * time.Second)
	is.Equal(c.Elapsed(), 3*time.Second)
	c.StartTurn()
	is.Equal(c.Elapsed(), time.Duration(0))
	is.Equal(c.Color(), board.Second)
	is.True(c.TimeLimited())
	is.Equal(c.TimeLimit(), 5*time.Second)
}

func TestPlayTurn(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	e := &firstMoveEngine{}
	loc, err := PlayTurn(context.Background(), b, e)
	is.NoErr(err)
	is.Equal(*loc, board.Location{X: 3, Y: 2})
	is.Equal(b.SideToMove(), board.Second)
	is.Equal(e.calls, 1)
}

func TestPlayTurnForcedPass(t *testing.T) {
	is := is.New(t)
	b := board.NewEmptyBoard()
	b.Set(board.Location{X: 0, Y: 0}, board.First)
	b.Set(board.Location{X: 1, Y: 0}, board.First)
	b.SetSideToMove(board.First)
	// No Second discs to flank.
	e := &firstMoveEngine{}
	loc, err := PlayTurn(context.Background(), b, e)
	is.NoErr(err)
	is.True(loc == nil)
	is.Equal(e.calls, 0)
	is.Equal(b.SideToMove(), board.Second)
}

func TestPlayTurnBadEngine(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	_, err := PlayTurn(context.Background(), b, badEngine{})
	is.True(err != nil)
	is.True(b.Equals(board.NewBoard()))
}
