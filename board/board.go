// Package board implements the 8x8 reversi board: cell queries, legal move
// enumeration, and move/pass mutation with an exact undo stack.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Dim is the width and height of the board.
const Dim = 8

// Color is the state of a single cell, and also identifies a side.
type Color uint8

const (
	Empty Color = iota
	// First moves first from the standard starting position (black).
	First
	// Second is white.
	Second
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrLocationOffGrid = errors.New("location is off the board")
)

// Opposite returns the other side. Empty has no opposite and is returned
// as-is.
func Opposite(c Color) Color {
	switch c {
	case First:
		return Second
	case Second:
		return First
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return "empty"
}

// DisplayRune is the rune used for this color in text boards and position
// strings.
func (c Color) DisplayRune() rune {
	switch c {
	case First:
		return 'X'
	case Second:
		return 'O'
	}
	return '.'
}

// ColorFromRune is the inverse of DisplayRune. Lowercase is accepted.
func ColorFromRune(r rune) (Color, error) {
	switch r {
	case 'X', 'x':
		return First, nil
	case 'O', 'o':
		return Second, nil
	case '.', '-':
		return Empty, nil
	}
	return Empty, fmt.Errorf("unrecognized color %q", r)
}

// Location is a cell coordinate. X is the column and Y is the row.
type Location struct {
	X, Y int
}

func (l Location) OnBoard() bool {
	return l.X >= 0 && l.X < Dim && l.Y >= 0 && l.Y < Dim
}

// String renders the location in the usual a1..h8 notation; the column
// letter is X and the row number is Y+1.
func (l Location) String() string {
	return fmt.Sprintf("%c%d", 'a'+l.X, l.Y+1)
}

// ParseLocation parses a1..h8 notation. Case is ignored.
func ParseLocation(s string) (Location, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Location{}, fmt.Errorf("bad location %q", s)
	}
	loc := Location{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
	if !loc.OnBoard() {
		return Location{}, fmt.Errorf("%w: %q", ErrLocationOffGrid, s)
	}
	return loc, nil
}

var directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// stateBackup is what we need to restore a board after a Put or Pass.
type stateBackup struct {
	squares [Dim * Dim]Color
	onturn  Color
}

// Board is the main board structure. The zero value is not usable; use
// NewBoard or NewEmptyBoard.
type Board struct {
	squares [Dim * Dim]Color
	onturn  Color

	stateStack []stateBackup
}

// DefaultStackLength is enough for a full game of pushes plus passes.
const DefaultStackLength = 128

// NewEmptyBoard returns a board with no discs and First to move.
func NewEmptyBoard() *Board {
	return &Board{
		onturn:     First,
		stateStack: make([]stateBackup, 0, DefaultStackLength),
	}
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	b.squares[idx(3, 3)] = Second
	b.squares[idx(4, 4)] = Second
	b.squares[idx(3, 4)] = First
	b.squares[idx(4, 3)] = First
	return b
}

func idx(x, y int) int {
	return y*Dim + x
}

// Get returns the state of cell (x, y).
func (b *Board) Get(x, y int) Color {
	return b.squares[idx(x, y)]
}

// Set writes a cell directly, bypassing the rules. It is meant for setting
// up positions and does not touch the undo stack.
func (b *Board) Set(loc Location, c Color) {
	b.squares[idx(loc.X, loc.Y)] = c
}

func (b *Board) SideToMove() Color {
	return b.onturn
}

func (b *Board) SetSideToMove(c Color) {
	b.onturn = c
}

// Squares returns a copy of all cells in row-major order.
func (b *Board) Squares() [Dim * Dim]Color {
	return b.squares
}

// Count returns the number of discs of color c.
func (b *Board) Count(c Color) int {
	n := 0
	for _, sq := range b.squares {
		if sq == c {
			n++
		}
	}
	return n
}

// flipsInDirection returns how many opponent discs would be flipped along
// one direction if c were put at (x, y).
func (b *Board) flipsInDirection(x, y, dx, dy int, c Color) int {
	opp := Opposite(c)
	n := 0
	x, y = x+dx, y+dy
	for x >= 0 && x < Dim && y >= 0 && y < Dim {
		switch b.squares[idx(x, y)] {
		case opp:
			n++
		case c:
			return n
		default:
			return 0
		}
		x, y = x+dx, y+dy
	}
	return 0
}

func (b *Board) legalFor(loc Location, c Color) bool {
	if !loc.OnBoard() || b.squares[idx(loc.X, loc.Y)] != Empty {
		return false
	}
	for _, d := range directions {
		if b.flipsInDirection(loc.X, loc.Y, d[0], d[1], c) > 0 {
			return true
		}
	}
	return false
}

// LegalFor reports whether the side to move may put a disc at loc.
func (b *Board) LegalFor(loc Location) bool {
	return b.legalFor(loc, b.onturn)
}

// EnumerateLegalLocations returns the legal moves of the side to move, in
// row-major order.
func (b *Board) EnumerateLegalLocations() []Location {
	locs := []Location{}
	for y := 0; y < Dim; y++ {
		for x := 0; x < Dim; x++ {
			loc := Location{x, y}
			if b.legalFor(loc, b.onturn) {
				locs = append(locs, loc)
			}
		}
	}
	return locs
}

// IsLegal reports whether the side to move has at least one legal move.
func (b *Board) IsLegal() bool {
	for i := range b.squares {
		if b.legalFor(Location{i % Dim, i / Dim}, b.onturn) {
			return true
		}
	}
	return false
}

func (b *Board) backupState() {
	b.stateStack = append(b.stateStack, stateBackup{
		squares: b.squares,
		onturn:  b.onturn,
	})
}

// Put places a disc for the side to move at loc, flips the flanked discs,
// and gives the turn to the other side. An illegal loc returns
// ErrIllegalMove and leaves the board untouched.
func (b *Board) Put(loc Location) error {
	if !b.legalFor(loc, b.onturn) {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, loc, b.onturn)
	}
	b.backupState()
	c := b.onturn
	for _, d := range directions {
		n := b.flipsInDirection(loc.X, loc.Y, d[0], d[1], c)
		x, y := loc.X, loc.Y
		for i := 0; i < n; i++ {
			x, y = x+d[0], y+d[1]
			b.squares[idx(x, y)] = c
		}
	}
	b.squares[idx(loc.X, loc.Y)] = c
	b.onturn = Opposite(c)
	return nil
}

// Pass gives the turn to the other side without placing a disc.
func (b *Board) Pass() {
	b.backupState()
	b.onturn = Opposite(b.onturn)
}

// Undo reverts the most recent Put or Pass. Calling it with nothing to
// undo is a programming error and panics.
func (b *Board) Undo() {
	if len(b.stateStack) == 0 {
		panic("board: undo with empty state stack")
	}
	st := &b.stateStack[len(b.stateStack)-1]
	b.squares = st.squares
	b.onturn = st.onturn
	b.stateStack = b.stateStack[:len(b.stateStack)-1]
}

// StackDepth is the number of mutations that can currently be undone.
func (b *Board) StackDepth() int {
	return len(b.stateStack)
}

// GameOver is true when neither side has a legal move.
func (b *Board) GameOver() bool {
	if b.legalForAny(b.onturn) {
		return false
	}
	return !b.legalForAny(Opposite(b.onturn))
}

func (b *Board) legalForAny(c Color) bool {
	for i := range b.squares {
		if b.legalFor(Location{i % Dim, i / Dim}, c) {
			return true
		}
	}
	return false
}

// Winner returns the side with more discs, or Empty for a draw. It does not
// check whether the game is actually over.
func (b *Board) Winner() Color {
	f, s := b.Count(First), b.Count(Second)
	switch {
	case f > s:
		return First
	case s > f:
		return Second
	}
	return Empty
}

// Copy returns a deep copy of the board. The undo history is not copied.
func (b *Board) Copy() *Board {
	c := NewEmptyBoard()
	c.squares = b.squares
	c.onturn = b.onturn
	return c
}

// Equals compares cells and side to move; the undo stack is ignored.
func (b *Board) Equals(o *Board) bool {
	return b.squares == o.squares && b.onturn == o.onturn
}
