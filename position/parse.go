// Package position reads and writes compact reversi position strings.
//
// A position string has the form
//
//	<row1>/<row2>/.../<row8> <side> [op1 arg;op2 arg;...]
//
// where each row lists cells left to right using X for the first player, O
// for the second player, and a decimal number for a run of empty cells. The
// side is X or O. The optional opcodes carry search settings.
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
)

// Starting is the standard initial position with the first player to move.
const Starting = "8/8/8/3OX3/3XO3/8/8/8 X"

var ErrBadPosition = errors.New("bad position string")

// ParsedPosition is a board plus whatever opcodes came along with it.
type ParsedPosition struct {
	*board.Board
	Opcodes map[string]string

	// DepthLimit and TimeLimit are zero unless set by the depth and tl
	// opcodes.
	DepthLimit int
	TimeLimit  time.Duration
}

// Parse returns a board set up from the given position string.
func Parse(posstr string) (*ParsedPosition, error) {
	fields := strings.SplitN(strings.TrimSpace(posstr), " ", 3)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: must have at least 2 space-separated fields", ErrBadPosition)
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != board.Dim {
		return nil, fmt.Errorf("%w: need %d rows, got %d", ErrBadPosition, board.Dim, len(rows))
	}
	fullRows := make([]string, len(rows))
	for i, row := range rows {
		expanded, err := expandRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadPosition, i+1, err)
		}
		fullRows[i] = expanded
	}

	b := board.NewEmptyBoard()
	if err := b.SetFromRows(fullRows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPosition, err)
	}
	if len(fields[1]) != 1 {
		return nil, fmt.Errorf("%w: bad side to move %q", ErrBadPosition, fields[1])
	}
	side, err := board.ColorFromRune(rune(fields[1][0]))
	if err != nil || side == board.Empty {
		return nil, fmt.Errorf("%w: bad side to move %q", ErrBadPosition, fields[1])
	}
	b.SetSideToMove(side)

	pp := &ParsedPosition{Board: b, Opcodes: map[string]string{}}
	if len(fields) == 3 {
		if err := pp.parseOps(strings.Split(fields[2], ";")); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("position", posstr).Int("discs", b.Count(board.First)+b.Count(board.Second)).
		Msg("parsed-position")
	return pp, nil
}

func (pp *ParsedPosition) parseOps(ops []string) error {
	for _, op := range ops {
		op := strings.TrimSpace(op)
		if len(op) == 0 {
			continue
		}
		opWithParams := strings.SplitN(op, " ", 2)
		if len(opWithParams) != 2 {
			return fmt.Errorf("%w: wrong number of arguments for %s operation",
				ErrBadPosition, opWithParams[0])
		}
		arg := strings.TrimSpace(opWithParams[1])
		switch opWithParams[0] {
		case "depth":
			d, err := strconv.Atoi(arg)
			if err != nil || d < 1 {
				return fmt.Errorf("%w: bad depth %q", ErrBadPosition, arg)
			}
			pp.DepthLimit = d
		case "tl":
			secs, err := strconv.ParseFloat(arg, 64)
			if err != nil || secs <= 0 {
				return fmt.Errorf("%w: bad time limit %q", ErrBadPosition, arg)
			}
			pp.TimeLimit = time.Duration(secs * float64(time.Second))
		}
		// Unknown opcodes are kept so that they survive a round trip.
		pp.Opcodes[opWithParams[0]] = arg
	}
	return nil
}

func expandRow(row string) (string, error) {
	var sb strings.Builder
	lastN := ""
	flush := func() error {
		if lastN == "" {
			return nil
		}
		n, err := strconv.Atoi(lastN)
		if err != nil {
			return err
		}
		sb.WriteString(strings.Repeat(".", n))
		lastN = ""
		return nil
	}
	for _, rn := range row {
		if rn >= '0' && rn <= '9' {
			lastN += string(rn)
			continue
		}
		if err := flush(); err != nil {
			return "", err
		}
		c, err := board.ColorFromRune(rn)
		if err != nil {
			return "", err
		}
		sb.WriteRune(c.DisplayRune())
	}
	if err := flush(); err != nil {
		return "", err
	}
	if sb.Len() != board.Dim {
		return "", fmt.Errorf("row %q has %d cells", row, sb.Len())
	}
	return sb.String(), nil
}
