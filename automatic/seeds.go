package automatic

import (
	"fmt"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// deriveSeed hashes a parent seed together with a label and an index, so
// that a single base seed fixes every game and every player in a run.
// The result is never zero, since zero means "use entropy".
func deriveSeed(parent uint64, label string, idx int) uint64 {
	s := xxhash.Sum64String(fmt.Sprintf("%d/%s/%d", parent, label, idx))
	if s == 0 {
		s = 1
	}
	return s
}

// GameSeed is the seed for game number idx of a run started with base.
func GameSeed(base uint64, idx int) uint64 {
	return deriveSeed(base, "game", idx)
}

// baseSeed returns seed, or a fresh random one if seed is zero.
func baseSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = frand.Uint64n(^uint64(0))
	}
	return seed
}
