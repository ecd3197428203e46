// Package alphabeta picks reversi moves using depth-limited minimax with
// alpha-beta pruning.
package alphabeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/reversi/ai/turnplayer"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluation"
	"github.com/domino14/reversi/position"
	"github.com/domino14/reversi/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	DefaultDepthLimit = 6
	// TimeBudgetFraction is how much of the turn's time budget may go by
	// before the search stops looking at new candidates.
	TimeBudgetFraction = 0.95
)

var ErrNoLegalMoves = errors.New("side to move has no legal moves")

// Solver implements the minimax + alphabeta algorithm for the color its
// host says it plays.
type Solver struct {
	host       turnplayer.Host
	evaluator  evaluation.Evaluator
	orderer    *Orderer
	rng        *frand.RNG
	zobrist    zobrist.Zobrist
	depthLimit int
	logStream  io.Writer

	// Per-Compute state.
	ctx            context.Context
	color          board.Color
	bestMove       *board.Location
	nodes          uint64
	cutoffs        int
	timedOut       bool
	rootCandidates []RootCandidate
	lastResult     SearchResult
}

// NewSolver creates a solver for host. The rng drives move ordering and the
// emergency fallback move; pass a seeded one for reproducible play, or nil
// for an entropy-seeded one.
func NewSolver(host turnplayer.Host, rng *frand.RNG) *Solver {
	if rng == nil {
		rng = frand.New()
	}
	s := &Solver{
		host:       host,
		evaluator:  evaluation.Heuristic{},
		orderer:    NewOrderer(rng),
		rng:        rng,
		depthLimit: DefaultDepthLimit,
	}
	s.zobrist.Initialize(rng)
	return s
}

func (s *Solver) SetDepthLimit(d int) {
	if d < 1 {
		d = 1
	}
	s.depthLimit = d
}

func (s *Solver) DepthLimit() int {
	return s.depthLimit
}

func (s *Solver) SetEvaluator(e evaluation.Evaluator) {
	s.evaluator = e
}

// SetLogStream makes every Compute write a YAML document describing the
// root candidates to w. Pass nil to turn it off.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// LastResult describes the most recent Compute.
func (s *Solver) LastResult() SearchResult {
	return s.lastResult
}

// Compute returns the move to play on b for the host's color. b is mutated
// during the search and restored before Compute returns. It is an error to
// call Compute when the side to move has no legal move; passing is up to
// the caller.
func (s *Solver) Compute(ctx context.Context, b *board.Board) (board.Location, error) {
	s.bestMove = nil
	s.ctx = ctx
	s.color = s.host.Color()
	s.nodes = 0
	s.cutoffs = 0
	s.timedOut = false
	s.rootCandidates = s.rootCandidates[:0]

	if !b.IsLegal() {
		return board.Location{}, ErrNoLegalMoves
	}
	rootHash := s.zobrist.Hash(b)
	log.Debug().
		Int("depth-limit", s.depthLimit).
		Str("color", s.color.String()).
		Bool("time-limited", s.host.TimeLimited()).
		Dur("time-limit", s.host.TimeLimit()).
		Uint64("position-hash", rootHash).
		Msg("alphabeta-compute")

	tstart := time.Now()
	score := s.maximize(b, s.depthLimit, math.MinInt, math.MaxInt)

	fallback := false
	if s.bestMove == nil {
		locs := b.EnumerateLegalLocations()
		loc := locs[s.rng.Intn(len(locs))]
		s.bestMove = &loc
		fallback = true
		log.Info().Str("move", loc.String()).Msg("fallback-random-move")
	}
	if h := s.zobrist.Hash(b); h != rootHash {
		panic(fmt.Sprintf("alphabeta: board not restored after search (%x != %x)", h, rootHash))
	}

	outcome := DepthExhausted
	if s.timedOut {
		outcome = TimedOut
	} else if s.cutoffs > 0 {
		outcome = Pruned
	}
	s.lastResult = SearchResult{
		Move:         *s.bestMove,
		Score:        score,
		Fallback:     fallback,
		Outcome:      outcome,
		Nodes:        s.nodes,
		Elapsed:      time.Since(tstart),
		PositionHash: rootHash,
		Candidates:   append([]RootCandidate(nil), s.rootCandidates...),
	}
	log.Debug().
		Str("move", s.bestMove.String()).
		Int("score", score).
		Str("outcome", outcome.String()).
		Uint64("nodes", s.nodes).
		Dur("elapsed", s.lastResult.Elapsed).
		Msg("alphabeta-done")
	if outcome == TimedOut {
		log.Info().Int("candidates-done", len(s.rootCandidates)).Msg("search-timed-out")
	}
	if s.logStream != nil {
		if err := s.writeLog(b); err != nil {
			log.Err(err).Msg("search-log-write")
		}
	}
	return *s.bestMove, nil
}

func (s *Solver) writeLog(b *board.Board) error {
	r := s.lastResult
	entry := searchLog{
		Position:   position.Encode(b, nil),
		Color:      s.color.String(),
		DepthLimit: s.depthLimit,
		Move:       r.Move.String(),
		Score:      r.Score,
		Fallback:   r.Fallback,
		Outcome:    r.Outcome.String(),
		Nodes:      r.Nodes,
		ElapsedMs:  r.Elapsed.Milliseconds(),
	}
	for _, c := range r.Candidates {
		entry.Candidates = append(entry.Candidates, candidateLog{Move: c.Move.String(), Score: c.Score})
	}
	out, err := yaml.Marshal([]searchLog{entry})
	if err != nil {
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}

// outOfTime is polled once per candidate. It never interrupts a candidate
// that is already being searched.
func (s *Solver) outOfTime() bool {
	if s.ctx != nil && s.ctx.Err() != nil {
		s.timedOut = true
		return true
	}
	if s.host.TimeLimited() &&
		float64(s.host.Elapsed()) > TimeBudgetFraction*float64(s.host.TimeLimit()) {
		s.timedOut = true
		return true
	}
	return false
}

// descend plays loc, searches the resulting position with f, and takes loc
// back again on every way out.
func (s *Solver) descend(b *board.Board, loc board.Location, f func() int) int {
	if err := b.Put(loc); err != nil {
		// loc came from EnumerateLegalLocations on this very position.
		panic(err)
	}
	defer b.Undo()
	s.nodes++
	return f()
}

// passAndSearch passes, then continues with f if the other side can move,
// or scores the position if the game is over.
func (s *Solver) passAndSearch(b *board.Board, f func() int) int {
	b.Pass()
	defer b.Undo()
	s.nodes++
	if b.IsLegal() {
		return f()
	}
	return s.evaluator.Score(b, s.color)
}

// maximize searches as if the solver's color is to move.
func (s *Solver) maximize(b *board.Board, remainingDepth int, α, β int) int {
	if remainingDepth == 0 {
		return s.evaluator.Score(b, s.color)
	}

	locs := b.EnumerateLegalLocations()
	s.orderer.Shuffle(locs)

	if len(locs) == 0 {
		return s.passAndSearch(b, func() int {
			return s.minimize(b, remainingDepth-1, α, β)
		})
	}

	best := math.MinInt
	for _, loc := range locs {
		score := s.descend(b, loc, func() int {
			return s.minimize(b, remainingDepth-1, α, β)
		})
		atRoot := remainingDepth == s.depthLimit
		if atRoot {
			s.rootCandidates = append(s.rootCandidates, RootCandidate{Move: loc, Score: score})
		}
		if score > best {
			best = score
			if atRoot {
				s.bestMove = &loc
			}
		}

		α = max(α, best)
		if α >= β {
			s.cutoffs++
			break // β cut-off
		}
		if s.outOfTime() {
			break
		}
	}
	return best
}

// minimize searches as if the opponent is to move.
func (s *Solver) minimize(b *board.Board, remainingDepth int, α, β int) int {
	if remainingDepth == 0 {
		return s.evaluator.Score(b, s.color)
	}

	locs := b.EnumerateLegalLocations()
	s.orderer.Shuffle(locs)

	if len(locs) == 0 {
		return s.passAndSearch(b, func() int {
			return s.maximize(b, remainingDepth-1, α, β)
		})
	}

	best := math.MaxInt
	for _, loc := range locs {
		score := s.descend(b, loc, func() int {
			return s.maximize(b, remainingDepth-1, α, β)
		})
		if score < best {
			best = score
		}

		β = min(β, best)
		if β <= α {
			s.cutoffs++
			break // α cut-off
		}
		if s.outOfTime() {
			break
		}
	}
	return best
}
