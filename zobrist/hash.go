package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a reversi position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	secondToMove uint64

	// posTable[square][color]; Empty squares are never hashed.
	posTable [board.Dim * board.Dim][3]uint64
}

// Initialize fills the key tables from the given RNG. A nil rng uses
// frand's global entropy source.
func (z *Zobrist) Initialize(rng *frand.RNG) {
	next := func() uint64 {
		if rng == nil {
			return frand.Uint64n(bignum) + 1
		}
		return rng.Uint64n(bignum) + 1
	}
	for i := range z.posTable {
		z.posTable[i][board.First] = next()
		z.posTable[i][board.Second] = next()
	}
	z.secondToMove = next()
}

// Hash computes the full key of a position.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for i, c := range b.Squares() {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][c]
	}
	if b.SideToMove() == board.Second {
		key ^= z.secondToMove
	}
	return key
}
