package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/stats"
)

// Summary aggregates a set of finished games.
type Summary struct {
	Games      int
	FirstWins  int
	SecondWins int
	Draws      int
	// Margin is the first player's disc margin.
	Margin  stats.Statistic
	Turns   stats.Statistic
	margins []float64
}

func Summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results)}
	s.FirstWins = lo.CountBy(results, func(r GameResult) bool { return r.Winner == board.First })
	s.SecondWins = lo.CountBy(results, func(r GameResult) bool { return r.Winner == board.Second })
	s.Draws = s.Games - s.FirstWins - s.SecondWins
	s.margins = lo.Map(results, func(r GameResult, _ int) float64 { return float64(r.Margin()) })
	for i, r := range results {
		s.Margin.Push(s.margins[i])
		s.Turns.Push(float64(r.Turns))
	}
	return s
}

// FirstWinRate counts a draw as half a win.
func (s *Summary) FirstWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.FirstWins) + 0.5*float64(s.Draws)) / float64(s.Games)
}

func (s *Summary) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		return ss.String()
	}
	fmt.Fprintf(&ss, "X wins: %d (%.3f%%)\n", s.FirstWins, 100.0*float64(s.FirstWins)/float64(s.Games))
	fmt.Fprintf(&ss, "O wins: %d (%.3f%%)\n", s.SecondWins, 100.0*float64(s.SecondWins)/float64(s.Games))
	fmt.Fprintf(&ss, "Draws: %d\n", s.Draws)
	fmt.Fprintf(&ss, "X win rate (draws count half): %.3f%%\n", 100.0*s.FirstWinRate())
	fmt.Fprintf(&ss, "X disc margin: %.3f ± %.3f (95%% CI)  Stdev: %.3f  Min: %.0f  Max: %.0f\n",
		s.Margin.Mean(), s.Margin.ConfidenceInterval(95), s.Margin.Stdev(),
		s.Margin.Min(), s.Margin.Max())
	fmt.Fprintf(&ss, "Mean turns per game: %.2f\n", s.Turns.Mean())
	if s.Margin.Min() != s.Margin.Max() {
		ss.WriteString("\nX disc margin histogram:\n")
		hist := histogram.Hist(10, s.margins)
		if err := histogram.Fprint(&ss, hist, histogram.Linear(40)); err != nil {
			fmt.Fprintf(&ss, "(histogram error: %v)\n", err)
		}
	}
	return ss.String()
}

// AnalyzeLogFile summarizes a games CSV written by PlayGames.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turns,first,second,winner
	var results []GameResult
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		res, err := parseGameRecord(record)
		if err != nil {
			return nil, fmt.Errorf("game %v: %w", record[0], err)
		}
		results = append(results, res)
	}
	return Summarize(results), nil
}

func parseGameRecord(record []string) (GameResult, error) {
	if len(record) != 5 {
		return GameResult{}, fmt.Errorf("expected 5 fields, got %d", len(record))
	}
	var res GameResult
	var err error
	res.GameID = record[0]
	if res.Turns, err = strconv.Atoi(record[1]); err != nil {
		return res, err
	}
	if res.FirstDiscs, err = strconv.Atoi(record[2]); err != nil {
		return res, err
	}
	if res.SecondDiscs, err = strconv.Atoi(record[3]); err != nil {
		return res, err
	}
	if len(record[4]) != 1 {
		return res, fmt.Errorf("bad winner %q", record[4])
	}
	res.Winner, err = board.ColorFromRune(rune(record[4][0]))
	return res, err
}
