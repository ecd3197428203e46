package evaluation

// Phase is the stage of the game, decided by how many discs are on the
// board.
type Phase int

const (
	Opening Phase = iota
	Midgame
	Endgame
)

const (
	// OpeningDiscLimit and MidgameDiscLimit are exclusive upper bounds on
	// the total number of discs for the first two phases.
	OpeningDiscLimit = 20
	MidgameDiscLimit = 50
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	case Endgame:
		return "endgame"
	}
	return "unknown"
}

// Weights are the coefficients of each evaluation term.
type Weights struct {
	Stone      int `yaml:"stone"`
	Corner     int `yaml:"corner"`
	NearCorner int `yaml:"near_corner"`
	Edge       int `yaml:"edge"`
	Mobility   int `yaml:"mobility"`
	Stability  int `yaml:"stability"`
}

var (
	OpeningWeights = Weights{Stone: 5, Corner: 1200, NearCorner: 500, Edge: 100, Mobility: 10, Stability: 20}
	MidgameWeights = Weights{Stone: 10, Corner: 1000, NearCorner: 300, Edge: 75, Mobility: 5, Stability: 50}
	EndgameWeights = Weights{Stone: 20, Corner: 800, NearCorner: 300, Edge: 50, Mobility: 2, Stability: 100}
)

// PhaseFor returns the game phase for the given total number of discs.
func PhaseFor(totalDiscs int) Phase {
	if totalDiscs < OpeningDiscLimit {
		return Opening
	} else if totalDiscs < MidgameDiscLimit {
		return Midgame
	}
	return Endgame
}

// WeightsFor returns the weights used when totalDiscs discs are on the board.
func WeightsFor(totalDiscs int) Weights {
	switch PhaseFor(totalDiscs) {
	case Opening:
		return OpeningWeights
	case Midgame:
		return MidgameWeights
	}
	return EndgameWeights
}
