package evaluation

import "github.com/domino14/reversi/board"

// Terms is a score broken down by evaluation term. Each term already has its
// weight applied; Total is their sum.
type Terms struct {
	Phase   Phase   `yaml:"phase"`
	Weights Weights `yaml:"weights"`

	Stones      int `yaml:"stones"`
	Corners     int `yaml:"corners"`
	NearCorners int `yaml:"near_corners"`
	Edges       int `yaml:"edges"`
	Mobility    int `yaml:"mobility"`
	Stability   int `yaml:"stability"`

	Total int `yaml:"total"`
}

// Heuristic is the phase-aware evaluator: disc difference, corners, squares
// next to corners, edges, mobility and stable discs.
type Heuristic struct{}

// Score implements Evaluator.
func (Heuristic) Score(b *board.Board, color board.Color) int {
	return Explain(b, color).Total
}

// Score evaluates b for color with the default heuristic.
func Score(b *board.Board, color board.Color) int {
	return Explain(b, color).Total
}

// Explain computes every evaluation term for color.
//
// The mobility term passes and undoes on b, so b is mutated during the call
// and restored before it returns.
func Explain(b *board.Board, color board.Color) Terms {
	opp := board.Opposite(color)
	mine, theirs := b.Count(color), b.Count(opp)
	totalDiscs := mine + theirs

	t := Terms{Phase: PhaseFor(totalDiscs), Weights: WeightsFor(totalDiscs)}
	w := t.Weights

	t.Stones = w.Stone * (mine - theirs)

	for _, c := range corners {
		switch b.Get(c.X, c.Y) {
		case color:
			t.Corners += w.Corner
		case opp:
			t.Corners -= w.Corner
		}
		// Owning a square next to a corner is a liability; the opponent
		// owning one is an asset.
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				x, y := c.X+dx, c.Y+dy
				if x < 0 || x >= board.Dim || y < 0 || y >= board.Dim {
					continue
				}
				if x == c.X && y == c.Y {
					continue
				}
				switch b.Get(x, y) {
				case color:
					t.NearCorners -= w.NearCorner
				case opp:
					t.NearCorners += w.NearCorner
				}
			}
		}
	}

	// Corner and X-adjacent edge squares are counted here again.
	for i := 0; i < board.Dim; i++ {
		for _, p := range [4]board.Color{b.Get(i, 0), b.Get(i, 7), b.Get(0, i), b.Get(7, i)} {
			switch p {
			case color:
				t.Edges += w.Edge
			case opp:
				t.Edges -= w.Edge
			}
		}
	}

	// Mobility is measured for whoever is to move, then for the other side
	// after a pass.
	myMoves := len(b.EnumerateLegalLocations())
	b.Pass()
	oppMoves := len(b.EnumerateLegalLocations())
	b.Undo()
	t.Mobility = w.Mobility * (myMoves - oppMoves)

	t.Stability = w.Stability * (CountStable(b, color) - CountStable(b, opp))

	t.Total = t.Stones + t.Corners + t.NearCorners + t.Edges + t.Mobility + t.Stability
	return t
}
