package alphabeta

import (
	"time"

	"github.com/domino14/reversi/board"
)

// Outcome is how a search ended.
type Outcome int

const (
	// DepthExhausted means every branch was searched to the depth limit.
	DepthExhausted Outcome = iota
	// Pruned means the search finished, but some branches were cut off.
	Pruned
	// TimedOut means the time budget ran out (or the context was
	// cancelled) and some candidates were never looked at.
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case DepthExhausted:
		return "depth-exhausted"
	case Pruned:
		return "pruned"
	case TimedOut:
		return "timed-out"
	}
	return "unknown"
}

// RootCandidate is a root move with the value the search gave it.
type RootCandidate struct {
	Move  board.Location
	Score int
}

// SearchResult describes the last call to Compute.
type SearchResult struct {
	Move  board.Location
	Score int
	// Fallback is true if no root move finished and Move was picked at
	// random.
	Fallback bool
	Outcome  Outcome
	Nodes    uint64
	Elapsed  time.Duration
	// PositionHash is the zobrist key of the root position.
	PositionHash uint64
	Candidates   []RootCandidate
}

// searchLog is what gets written to the log stream every Compute.
type searchLog struct {
	Position   string         `yaml:"position"`
	Color      string         `yaml:"color"`
	DepthLimit int            `yaml:"depth_limit"`
	Move       string         `yaml:"move"`
	Score      int            `yaml:"score"`
	Fallback   bool           `yaml:"fallback"`
	Outcome    string         `yaml:"outcome"`
	Nodes      uint64         `yaml:"nodes"`
	ElapsedMs  int64          `yaml:"elapsed_ms"`
	Candidates []candidateLog `yaml:"candidates"`
}

type candidateLog struct {
	Move  string `yaml:"move"`
	Score int    `yaml:"score"`
}
