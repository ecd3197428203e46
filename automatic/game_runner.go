// Package automatic plays engine-vs-engine reversi games, for comparing
// settings and for checking that nothing breaks over many full games.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/alphabeta"
	"github.com/domino14/reversi/ai/turnplayer"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
)

// MaxTurns bounds a single game. A real game is over well before this;
// hitting it means something is broken.
const MaxTurns = 2 * board.Dim * board.Dim

// GameResult is the final tally of one game.
type GameResult struct {
	GameID      string
	Turns       int
	FirstDiscs  int
	SecondDiscs int
	Winner      board.Color
}

// Margin is the first player's disc count minus the second player's.
func (g GameResult) Margin() int {
	return g.FirstDiscs - g.SecondDiscs
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	board   *board.Board
	solvers [2]*alphabeta.Solver
	clocks  [2]*turnplayer.TurnClock
	config  *config.Config
	logchan chan string
	gameID  string
	turn    int
}

// NewGameRunner sets up two solvers from cfg, one per color. Each game
// reseeds them; see PlayGame.
func NewGameRunner(logchan chan string, cfg *config.Config) *GameRunner {
	r := &GameRunner{logchan: logchan, config: cfg, board: board.NewBoard()}
	for idx, color := range []board.Color{board.First, board.Second} {
		r.clocks[idx] = turnplayer.NewTurnClock(color,
			cfg.GetBool(config.ConfigTimeLimited), cfg.GetDuration(config.ConfigTimeLimit))
	}
	r.reseed(0)
	return r
}

func (r *GameRunner) reseed(seed uint64) {
	for idx := range r.solvers {
		var s uint64
		if seed != 0 {
			s = deriveSeed(seed, "player", idx)
		}
		r.solvers[idx] = alphabeta.NewSolver(r.clocks[idx], alphabeta.NewRNG(s))
		r.solvers[idx].SetDepthLimit(r.config.GetInt(config.ConfigDepthLimit))
	}
}

func playerIndex(c board.Color) int {
	if c == board.Second {
		return 1
	}
	return 0
}

// PlayGame plays one game from the starting position to the end. A zero
// seed picks entropy-seeded solvers.
func (r *GameRunner) PlayGame(ctx context.Context, gameID string, seed uint64) (GameResult, error) {
	r.board = board.NewBoard()
	r.gameID = gameID
	r.turn = 0
	r.reseed(seed)

	for !r.board.GameOver() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if r.turn >= MaxTurns {
			return GameResult{}, fmt.Errorf("game %v did not finish in %d turns", gameID, MaxTurns)
		}
		if err := r.playTurn(ctx); err != nil {
			return GameResult{}, err
		}
	}
	res := GameResult{
		GameID:      gameID,
		Turns:       r.turn,
		FirstDiscs:  r.board.Count(board.First),
		SecondDiscs: r.board.Count(board.Second),
		Winner:      r.board.Winner(),
	}
	log.Debug().Str("game-id", gameID).Int("first", res.FirstDiscs).
		Int("second", res.SecondDiscs).Msg("game-over")
	return res, nil
}

func (r *GameRunner) playTurn(ctx context.Context) error {
	side := r.board.SideToMove()
	idx := playerIndex(side)
	r.clocks[idx].StartTurn()
	loc, err := turnplayer.PlayTurn(ctx, r.board, r.solvers[idx])
	if err != nil {
		return fmt.Errorf("game %v turn %d: %w", r.gameID, r.turn, err)
	}
	r.turn++

	if r.logchan != nil {
		moveStr, score, outcome := "pass", 0, ""
		var nodes uint64
		var elapsed time.Duration
		if loc != nil {
			res := r.solvers[idx].LastResult()
			moveStr, score, outcome = loc.String(), res.Score, res.Outcome.String()
			nodes, elapsed = res.Nodes, res.Elapsed
		}
		r.logchan <- fmt.Sprintf("%v,%v,%c,%v,%v,%v,%v,%v,%v,%v\n",
			r.gameID,
			r.turn,
			side.DisplayRune(),
			moveStr,
			score,
			outcome,
			nodes,
			elapsed.Milliseconds(),
			r.board.Count(board.First),
			r.board.Count(board.Second))
	}
	return nil
}

// Board is the board of the game in progress, or of the last game played.
func (r *GameRunner) Board() *board.Board {
	return r.board
}
