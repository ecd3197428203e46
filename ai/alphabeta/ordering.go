package alphabeta

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
)

// NewRNG returns a ChaCha-based RNG. A zero seed draws the seed from system
// entropy; any other seed gives a reproducible stream.
func NewRNG(seed uint64) *frand.RNG {
	if seed == 0 {
		return frand.New()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// Orderer puts candidate moves into a uniformly random order. It knows
// nothing about move quality; it only keeps equal-scoring moves from always
// being decided by enumeration order.
type Orderer struct {
	rng *frand.RNG
}

func NewOrderer(rng *frand.RNG) *Orderer {
	return &Orderer{rng: rng}
}

// Shuffle permutes locs in place.
func (o *Orderer) Shuffle(locs []board.Location) {
	o.rng.Shuffle(len(locs), func(i, j int) {
		locs[i], locs[j] = locs[j], locs[i]
	})
}
