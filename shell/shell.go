package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/alphabeta"
	"github.com/domino14/reversi/ai/turnplayer"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("quit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	board   *board.Board
	history []string
	clock   *turnplayer.TurnClock
	solver  *alphabeta.Solver

	searchLog *os.File

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController returns a controller that reads commands with
// readline.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mreversi>\033[0m ",
		HistoryFile:     "/tmp/reversi-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{
		out:    out,
		config: cfg,
		board:  board.NewBoard(),
	}
	sc.clock = turnplayer.NewTurnClock(board.First,
		cfg.GetBool(config.ConfigTimeLimited), cfg.GetDuration(config.ConfigTimeLimit))
	if fn := cfg.GetString(config.ConfigSearchLog); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Err(err).Str("file", fn).Msg("cannot-open-search-log")
		} else {
			sc.searchLog = f
		}
	}
	sc.resetSolver()
	return sc
}

// resetSolver builds a fresh solver from the current settings.
func (sc *ShellController) resetSolver() {
	rng := alphabeta.NewRNG(sc.config.GetUint64(config.ConfigSeed))
	sc.solver = alphabeta.NewSolver(sc.clock, rng)
	sc.solver.SetDepthLimit(sc.config.GetInt(config.ConfigDepthLimit))
	if sc.searchLog != nil {
		sc.solver.SetLogStream(sc.searchLog)
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) executeCommand(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "pos":
		return sc.pos(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "pass":
		return sc.pass(cmd)
	case "undo":
		return sc.undo(cmd)
	case "ai":
		return sc.aiplay(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("command %q not recognized; try help", cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line of the
// shell binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.executeCommand(line)
	if err == errQuit {
		sig <- syscall.SIGINT
		return
	}
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := sc.executeCommand(line)
		if err == errQuit {
			sig <- syscall.SIGINT
			break
		} else if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops any autoplay run and closes open files.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
	}
	if sc.searchLog != nil {
		sc.searchLog.Close()
	}
}
