package turnplayer

import (
	"time"

	"github.com/domino14/reversi/board"
)

// TurnClock is a Host backed by the wall clock. Call StartTurn at the start
// of every turn.
type TurnClock struct {
	color       board.Color
	timeLimited bool
	limit       time.Duration

	start time.Time
	now   func() time.Time
}

func NewTurnClock(color board.Color, timeLimited bool, limit time.Duration) *TurnClock {
	c := &TurnClock{
		color:       color,
		timeLimited: timeLimited,
		limit:       limit,
		now:         time.Now,
	}
	c.start = c.now()
	return c
}

// SetNow replaces the time source. For tests.
func (c *TurnClock) SetNow(now func() time.Time) {
	c.now = now
	c.start = now()
}

func (c *TurnClock) StartTurn() {
	c.start = c.now()
}

func (c *TurnClock) SetColor(color board.Color) {
	c.color = color
}

func (c *TurnClock) SetTimeLimit(timeLimited bool, limit time.Duration) {
	c.timeLimited = timeLimited
	c.limit = limit
}

func (c *TurnClock) Color() board.Color       { return c.color }
func (c *TurnClock) TimeLimited() bool        { return c.timeLimited }
func (c *TurnClock) TimeLimit() time.Duration { return c.limit }

func (c *TurnClock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}
