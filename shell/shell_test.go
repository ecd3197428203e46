package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/position"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	return newController(config.DefaultConfig(), &buf), &buf
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"file": "/path/to/log.txt"}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"autoplay 20 -threads 4 -file 'foo bar.txt' ",
			&shellcmd{"autoplay",
				[]string{"20"},
				CmdOptions{"threads": "4", "file": "foo bar.txt"}},
			nil,
		},
		{"autoplay 20 -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestPlayAndUndo(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("play d3")
	is.NoErr(err)
	is.Equal(sc.board.Get(3, 2), board.First)
	is.Equal(sc.board.SideToMove(), board.Second)

	resp, err := sc.executeCommand("show")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Moves: d3"))

	_, err = sc.executeCommand("play a1")
	is.True(err != nil)

	_, err = sc.executeCommand("undo")
	is.NoErr(err)
	is.True(sc.board.Equals(board.NewBoard()))
	_, err = sc.executeCommand("undo")
	is.Equal(err, errNothingUndo)
}

func TestPass(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("pass")
	is.Equal(err, errPassNotAllow)

	// O has nothing to flank.
	_, err = sc.executeCommand("load XOOOOOO1/8/8/8/8/8/8/8 O")
	is.NoErr(err)
	_, err = sc.executeCommand("pass")
	is.NoErr(err)
	is.Equal(sc.board.SideToMove(), board.First)
}

func TestLoadAndPos(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("load 8/8/3X4/3XX3/3XO3/8/8/8 O depth 3; tl 2;")
	is.NoErr(err)
	is.Equal(sc.solver.DepthLimit(), 3)
	is.True(sc.clock.TimeLimited())
	is.Equal(sc.clock.TimeLimit(), 2*time.Second)

	resp, err := sc.executeCommand("pos")
	is.NoErr(err)
	is.Equal(resp.message, "8/8/3X4/3XX3/3XO3/8/8/8 O")

	_, err = sc.executeCommand("load 8/8 X")
	is.True(err != nil)
}

func TestGen(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.executeCommand("gen")
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(resp.message), "\n")
	is.Equal(len(lines), 5)
	is.True(strings.HasPrefix(lines[0], "Move"))

	resp, err = sc.executeCommand("gen 2")
	is.NoErr(err)
	lines = strings.Split(strings.TrimSpace(resp.message), "\n")
	is.Equal(len(lines), 3)
	// gen must leave the board alone.
	is.True(sc.board.Equals(board.NewBoard()))
	is.Equal(sc.board.StackDepth(), 0)
}

func TestGenShowsBestFirst(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("load 8/8/2O5/3X4/5OX1/8/8/8 X")
	is.NoErr(err)
	resp, err := sc.executeCommand("gen")
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(resp.message), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.HasPrefix(lines[1], "e5"))
	is.True(strings.HasPrefix(lines[2], "b2"))
}

func TestAI(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("set seed 5")
	is.NoErr(err)
	_, err = sc.executeCommand("set depth 2")
	is.NoErr(err)
	is.Equal(sc.solver.DepthLimit(), 2)

	resp, err := sc.executeCommand("ai")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "X plays "))
	is.Equal(sc.board.SideToMove(), board.Second)
	is.Equal(len(sc.history), 1)
	is.Equal(sc.board.StackDepth(), 1)
}

func TestAIPasses(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("load XOOOOOO1/8/8/8/8/8/8/8 O")
	is.NoErr(err)
	resp, err := sc.executeCommand("ai")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "O has no legal move"))
	is.Equal(sc.board.SideToMove(), board.First)

	// X takes h1 and the game is over.
	resp, err = sc.executeCommand("ai")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Game over: 8-0, X wins"))
	_, err = sc.executeCommand("ai")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("set depth 0")
	is.True(err != nil)
	_, err = sc.executeCommand("set timelimit 1500ms")
	is.NoErr(err)
	is.True(sc.clock.TimeLimited())
	is.Equal(sc.clock.TimeLimit(), 1500*time.Millisecond)
	_, err = sc.executeCommand("set timelimited false")
	is.NoErr(err)
	is.True(!sc.clock.TimeLimited())
	_, err = sc.executeCommand("set colour blue")
	is.True(err != nil)

	resp, err := sc.executeCommand("set")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "timelimit: 1.5s"))
	is.True(strings.Contains(resp.message, "depth: 6"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	resp, err := sc.executeCommand("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))
	for _, topic := range commandMetadata["help"].Args {
		_, err = sc.executeCommand("help " + topic)
		is.NoErr(err)
	}
	_, err = sc.executeCommand("help nosuchtopic")
	is.True(err != nil)
}

func TestUnknownCommandAndExit(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("frobnicate")
	is.True(err != nil)
	_, err = sc.executeCommand("exit")
	is.Equal(err, errQuit)
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, buf := testController()
	_, err := sc.executeCommand("set depth 1")
	is.NoErr(err)
	_, err = sc.executeCommand("set seed 3")
	is.NoErr(err)
	out := filepath.Join(t.TempDir(), "games.txt")
	resp, err := sc.executeCommand("autoplay 3 -threads 2 -file " + out)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Playing 3 games on 2 threads"))
	<-sc.autoplayDone
	is.True(strings.Contains(buf.String(), "Games played: 3"))
	is.True(!sc.autoplaying())

	_, err = os.Stat(out)
	is.NoErr(err)
	_, err = sc.executeCommand("autoplay stop")
	is.True(err != nil)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	c := NewShellCompleter(sc)

	matches, n := c.Do([]rune("pl"), 2)
	is.Equal(n, 2)
	is.Equal(matches, [][]rune{[]rune("ay")})

	matches, n = c.Do([]rune("play "), 5)
	is.Equal(n, 0)
	is.Equal(len(matches), 4)

	matches, _ = c.Do([]rune("autoplay -t"), 11)
	is.Equal(matches, [][]rune{[]rune("hreads")})

	matches, _ = c.Do([]rune("set ti"), 6)
	is.Equal(len(matches), 2)
}

func TestPositionRoundTripThroughShell(t *testing.T) {
	is := is.New(t)
	sc, _ := testController()
	_, err := sc.executeCommand("play d3")
	is.NoErr(err)
	resp, err := sc.executeCommand("pos")
	is.NoErr(err)
	pp, err := position.Parse(resp.message)
	is.NoErr(err)
	is.True(pp.Board.Equals(sc.board))
}
