package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestStartingPosition(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.Count(First), 2)
	is.Equal(b.Count(Second), 2)
	is.Equal(b.SideToMove(), First)
	is.Equal(b.EnumerateLegalLocations(), []Location{{3, 2}, {2, 3}, {5, 4}, {4, 5}})
	is.True(b.IsLegal())
	is.True(!b.GameOver())
}

func TestPutFlipsAndUndo(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	orig := b.Copy()

	err := b.Put(Location{3, 2}) // d3
	is.NoErr(err)
	is.Equal(b.Get(3, 2), First)
	is.Equal(b.Get(3, 3), First) // d4 flipped
	is.Equal(b.Count(First), 4)
	is.Equal(b.Count(Second), 1)
	is.Equal(b.SideToMove(), Second)
	is.Equal(b.StackDepth(), 1)

	b.Undo()
	is.True(b.Equals(orig))
	is.Equal(b.StackDepth(), 0)
}

func TestIllegalPut(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	err := b.Put(Location{0, 0})
	is.True(err != nil)
	is.Equal(b.StackDepth(), 0)
	is.Equal(b.Count(First), 2)
}

func TestPassUndo(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.Pass()
	is.Equal(b.SideToMove(), Second)
	is.Equal(b.EnumerateLegalLocations(), []Location{{4, 2}, {5, 3}, {2, 4}, {3, 5}})
	b.Undo()
	is.Equal(b.SideToMove(), First)
}

func TestUndoEmptyPanics(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	NewBoard().Undo()
}

func TestBalancedSequenceRestores(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	orig := b.Copy()
	for i := 0; i < 20; i++ {
		locs := b.EnumerateLegalLocations()
		if len(locs) == 0 {
			b.Pass()
			continue
		}
		is.NoErr(b.Put(locs[len(locs)-1]))
	}
	for b.StackDepth() > 0 {
		b.Undo()
	}
	is.True(b.Equals(orig))
}

func TestGameOverFullBoard(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			b.Set(Location{x, y}, First)
		}
	}
	is.True(b.GameOver())
	is.True(!b.IsLegal())
	is.Equal(b.Winner(), First)
}

func TestParseLocation(t *testing.T) {
	is := is.New(t)
	loc, err := ParseLocation("D3")
	is.NoErr(err)
	is.Equal(loc, Location{3, 2})
	is.Equal(loc.String(), "d3")

	_, err = ParseLocation("i9")
	is.True(err != nil)
	_, err = ParseLocation("a")
	is.True(err != nil)
}

func TestSetFromRows(t *testing.T) {
	is := is.New(t)
	b := NewEmptyBoard()
	err := b.SetFromRows([]string{
		"X.......",
		"........",
		"........",
		"...OX...",
		"...XO...",
		"........",
		"........",
		".......O",
	})
	is.NoErr(err)
	is.Equal(b.Get(0, 0), First)
	is.Equal(b.Get(7, 7), Second)
	is.Equal(b.Count(First), 3)
	is.Equal(b.Count(Second), 3)

	is.True(b.SetFromRows([]string{"X"}) != nil)
}

func TestOpposite(t *testing.T) {
	is := is.New(t)
	is.Equal(Opposite(First), Second)
	is.Equal(Opposite(Second), First)
	is.Equal(Opposite(Empty), Empty)
}

func BenchmarkEnumerateLegal(b *testing.B) {
	bd := NewBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bd.EnumerateLegalLocations()
	}
}
