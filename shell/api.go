package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/reversi/ai/turnplayer"
	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/evaluation"
	"github.com/domino14/reversi/position"
)

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func msg(message string) *Response {
	return &Response{message: message}
}

var (
	errAutoplaying  = errors.New("autoplay is running; use autoplay stop first")
	errNothingUndo  = errors.New("nothing to undo")
	errPassNotAllow = errors.New("there is a legal move; you may only pass without one")
)

func (sc *ShellController) autoplaying() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) boardText() string {
	text := sc.board.ToDisplayText()
	if sc.board.GameOver() {
		text += gameOverText(sc.board)
	}
	return text
}

func gameOverText(b *board.Board) string {
	w := "draw"
	if c := b.Winner(); c != board.Empty {
		w = string(c.DisplayRune()) + " wins"
	}
	return fmt.Sprintf("Game over: %d-%d, %s\n", b.Count(board.First), b.Count(board.Second), w)
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.board = board.NewBoard()
	sc.history = nil
	return msg(sc.boardText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: load <rows> <side> [opcodes]")
	}
	pp, err := position.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.board = pp.Board
	sc.history = nil
	if pp.DepthLimit > 0 {
		sc.config.Set(config.ConfigDepthLimit, pp.DepthLimit)
		sc.solver.SetDepthLimit(pp.DepthLimit)
	}
	if pp.TimeLimit > 0 {
		sc.config.Set(config.ConfigTimeLimited, true)
		sc.config.Set(config.ConfigTimeLimit, pp.TimeLimit)
		sc.clock.SetTimeLimit(true, pp.TimeLimit)
	}
	return msg(sc.boardText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	text := sc.boardText()
	if len(sc.history) > 0 {
		text += "Moves: " + strings.Join(sc.history, " ") + "\n"
	}
	return msg(text), nil
}

func (sc *ShellController) pos(cmd *shellcmd) (*Response, error) {
	return msg(position.Encode(sc.board, nil)), nil
}

type genRow struct {
	loc   board.Location
	terms evaluation.Terms
}

// generate lists the legal moves with the static evaluation of the position
// each one leads to, for the side making the move.
func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	locs := sc.board.EnumerateLegalLocations()
	if len(locs) == 0 {
		return msg("No legal moves; pass."), nil
	}
	numPlays := len(locs)
	if cmd.args != nil {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		numPlays = min(n, numPlays)
	}
	mover := sc.board.SideToMove()
	rows := lo.Map(locs, func(loc board.Location, _ int) genRow {
		if err := sc.board.Put(loc); err != nil {
			panic(err)
		}
		defer sc.board.Undo()
		return genRow{loc: loc, terms: evaluation.Explain(sc.board, mover)}
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].terms.Total > rows[j].terms.Total
	})

	var ss strings.Builder
	fmt.Fprintf(&ss, "%-6s%-8s%-8s%-8s%-8s%-8s%-8s%-8s\n",
		"Move", "Total", "Stones", "Corner", "XSq", "Edge", "Mob", "Stable")
	for _, r := range rows[:numPlays] {
		t := r.terms
		fmt.Fprintf(&ss, "%-6s%-8d%-8d%-8d%-8d%-8d%-8d%-8d\n",
			r.loc.String(), t.Total, t.Stones, t.Corners, t.NearCorners,
			t.Edges, t.Mobility, t.Stability)
	}
	return msg(ss.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <location>")
	}
	loc, err := board.ParseLocation(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.board.Put(loc); err != nil {
		return nil, err
	}
	sc.history = append(sc.history, loc.String())
	return msg(sc.boardText()), nil
}

func (sc *ShellController) pass(cmd *shellcmd) (*Response, error) {
	if sc.board.IsLegal() {
		return nil, errPassNotAllow
	}
	sc.board.Pass()
	sc.history = append(sc.history, "pass")
	return msg(sc.boardText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.board.StackDepth() == 0 {
		return nil, errNothingUndo
	}
	sc.board.Undo()
	if len(sc.history) > 0 {
		sc.history = sc.history[:len(sc.history)-1]
	}
	return msg(sc.boardText()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.board.GameOver() {
		return nil, errors.New("the game is over")
	}
	sc.clock.SetColor(sc.board.SideToMove())
	sc.clock.StartTurn()
	mover := sc.board.SideToMove()
	loc, err := turnplayer.PlayTurn(context.Background(), sc.board, sc.solver)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		sc.history = append(sc.history, "pass")
		return msg(fmt.Sprintf("%c has no legal move and passes.\n%s",
			mover.DisplayRune(), sc.boardText())), nil
	}
	sc.history = append(sc.history, loc.String())
	res := sc.solver.LastResult()
	summary := fmt.Sprintf("%c plays %v (value %d, %v, %d nodes, %v)",
		mover.DisplayRune(), loc, res.Score, res.Outcome, res.Nodes,
		res.Elapsed.Round(time.Millisecond))
	if res.Fallback {
		summary += " [random fallback]"
	}
	return msg(summary + "\n" + sc.boardText()), nil
}

func (sc *ShellController) settingsText() string {
	return fmt.Sprintf("depth: %d\ntimelimited: %v\ntimelimit: %v\nseed: %d\n",
		sc.solver.DepthLimit(),
		sc.config.GetBool(config.ConfigTimeLimited),
		sc.config.GetDuration(config.ConfigTimeLimit),
		sc.config.GetUint64(config.ConfigSeed))
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.settingsText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <depth|timelimit|timelimited|seed> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	switch opt {
	case "depth":
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if d < 1 {
			return nil, errors.New("depth must be at least 1")
		}
		sc.config.Set(config.ConfigDepthLimit, d)
		sc.solver.SetDepthLimit(d)
	case "timelimit":
		d, err := time.ParseDuration(val)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, errors.New("time limit must be positive")
		}
		sc.config.Set(config.ConfigTimeLimit, d)
		sc.config.Set(config.ConfigTimeLimited, true)
		sc.clock.SetTimeLimit(true, d)
	case "timelimited":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, err
		}
		sc.config.Set(config.ConfigTimeLimited, b)
		sc.clock.SetTimeLimit(b, sc.config.GetDuration(config.ConfigTimeLimit))
	case "seed":
		s, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return nil, err
		}
		sc.config.Set(config.ConfigSeed, s)
		sc.resetSolver()
	default:
		return nil, fmt.Errorf("unknown setting %q", opt)
	}
	log.Debug().Str("option", opt).Str("value", val).Msg("set-option")
	return msg("set " + opt + " to " + val), nil
}

// autoplay starts engine-vs-engine games in the background. The summary is
// printed when they finish.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 && cmd.args[0] == "stop" {
		if !sc.autoplaying() {
			return nil, errors.New("autoplay is not running")
		}
		sc.autoplayCancel()
		<-sc.autoplayDone
		return msg("autoplay stopped"), nil
	}
	if sc.autoplaying() {
		return nil, errAutoplaying
	}
	numGames := sc.config.GetInt(config.ConfigAutoplayGames)
	if cmd.args != nil {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		numGames = n
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	outputFile := cmd.options.String("file")
	if outputFile == "" {
		outputFile = sc.config.GetString(config.ConfigAutoplayOutput)
	}

	cfg := sc.autoplayConfig()
	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	sc.autoplayDone = make(chan struct{})
	go func() {
		defer close(sc.autoplayDone)
		defer cancel()
		summary, err := automatic.PlayGames(ctx, cfg, numGames, threads, outputFile)
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(summary.String())
	}()
	return msg(fmt.Sprintf("Playing %d games on %d threads; logging to %v and %v",
		numGames, threads, outputFile, automatic.GamesFilename(outputFile))), nil
}

// autoplayConfig copies the search settings, so the shell can keep changing
// its own while games run.
func (sc *ShellController) autoplayConfig() *config.Config {
	cfg := config.DefaultConfig()
	for _, k := range []string{config.ConfigDepthLimit, config.ConfigTimeLimited,
		config.ConfigTimeLimit, config.ConfigSeed} {
		cfg.Set(k, sc.config.Get(k))
	}
	return cfg
}
