package automatic

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/stats"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testConfig(depth int, seed uint64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDepthLimit, depth)
	cfg.Set(config.ConfigSeed, seed)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string)
	runner := NewGameRunner(logchan, testConfig(2, 0))

	var lines []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range logchan {
			lines = append(lines, msg)
		}
	}()

	res, err := runner.PlayGame(context.Background(), "g1", 12345)
	close(logchan)
	wg.Wait()
	is.NoErr(err)

	is.True(runner.Board().GameOver())
	is.Equal(res.FirstDiscs, runner.Board().Count(board.First))
	is.Equal(res.SecondDiscs, runner.Board().Count(board.Second))
	is.True(res.FirstDiscs+res.SecondDiscs <= 64)
	is.Equal(res.Winner, runner.Board().Winner())
	is.Equal(len(lines), res.Turns)
	is.True(strings.HasPrefix(lines[0], "g1,1,X,"))
	for _, l := range lines {
		is.Equal(strings.Count(l, ","), 9)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(2, 0)
	r1 := NewGameRunner(nil, cfg)
	r2 := NewGameRunner(nil, cfg)
	for i := 0; i < 3; i++ {
		seed := GameSeed(77, i)
		a, err := r1.PlayGame(context.Background(), "a", seed)
		is.NoErr(err)
		b, err := r2.PlayGame(context.Background(), "a", seed)
		is.NoErr(err)
		is.Equal(a, b)
		is.True(r1.Board().Equals(r2.Board()))
	}
}

func TestGameSeed(t *testing.T) {
	is := is.New(t)
	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		s := GameSeed(1, i)
		is.True(s != 0)
		is.True(!seen[s])
		seen[s] = true
	}
	is.Equal(GameSeed(1, 5), GameSeed(1, 5))
	is.True(GameSeed(1, 5) != GameSeed(2, 5))
	is.True(baseSeed(0) != 0)
	is.Equal(baseSeed(9), uint64(9))
}

func TestPlayGames(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "autoplay.txt")
	summary, err := PlayGames(context.Background(), testConfig(1, 11), 6, 3, out)
	is.NoErr(err)
	is.Equal(summary.Games, 6)
	is.Equal(summary.FirstWins+summary.SecondWins+summary.Draws, 6)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	analyzed, err := AnalyzeLogFile(GamesFilename(out))
	is.NoErr(err)
	is.Equal(analyzed.Games, 6)
	is.Equal(analyzed.FirstWins, summary.FirstWins)
	is.True(stats.FuzzyEqual(analyzed.Margin.Mean(), summary.Margin.Mean()))

	f, err := os.Open(out)
	is.NoErr(err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		lines++
	}
	is.NoErr(sc.Err())
	is.True(stats.FuzzyEqual(float64(lines-1), summary.Turns.Mean()*6))

	// Same base seed, same games.
	again, err := PlayGames(context.Background(), testConfig(1, 11), 6, 2, out)
	is.NoErr(err)
	is.Equal(again.FirstWins, summary.FirstWins)
	is.True(stats.FuzzyEqual(again.Margin.Mean(), summary.Margin.Mean()))
}

func TestPlayGamesCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "autoplay.txt")
	summary, err := PlayGames(ctx, testConfig(1, 3), 20, 2, out)
	is.NoErr(err)
	is.Equal(summary.Games, 0)
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestPlayGamesFullDisk(t *testing.T) {
	is := is.New(t)
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	out := filepath.Join(t.TempDir(), "autoplay.txt")
	is.NoErr(os.Symlink("/dev/full", out))

	type result struct {
		summary *Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := PlayGames(context.Background(), testConfig(1, 7), 200, 2, out)
		done <- result{summary, err}
	}()
	select {
	case r := <-done:
		is.True(errors.Is(r.err, syscall.ENOSPC))
		is.True(r.summary.Games < 200)
	case <-time.After(30 * time.Second):
		t.Fatal("PlayGames did not return after the turn log write failed")
	}
	is.Equal(IsPlaying.Value(), int64(0))

	// The failed run released the guard.
	summary, err := PlayGames(context.Background(), testConfig(1, 7), 2, 1,
		filepath.Join(t.TempDir(), "again.txt"))
	is.NoErr(err)
	is.Equal(summary.Games, 2)
}

func TestPlayGamesAlreadyPlaying(t *testing.T) {
	is := is.New(t)
	running.Store(true)
	defer running.Store(false)
	out := filepath.Join(t.TempDir(), "autoplay.txt")
	_, err := PlayGames(context.Background(), testConfig(1, 3), 2, 1, out)
	is.Equal(err, ErrAlreadyPlaying)
	_, err = os.Stat(out)
	is.True(os.IsNotExist(err))
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	s := Summarize([]GameResult{
		{GameID: "a", Turns: 60, FirstDiscs: 40, SecondDiscs: 24, Winner: board.First},
		{GameID: "b", Turns: 58, FirstDiscs: 20, SecondDiscs: 44, Winner: board.Second},
		{GameID: "c", Turns: 60, FirstDiscs: 32, SecondDiscs: 32, Winner: board.Empty},
		{GameID: "d", Turns: 61, FirstDiscs: 50, SecondDiscs: 14, Winner: board.First},
	})
	is.Equal(s.Games, 4)
	is.Equal(s.FirstWins, 2)
	is.Equal(s.SecondWins, 1)
	is.Equal(s.Draws, 1)
	is.Equal(s.FirstWinRate(), 0.625)
	is.True(stats.FuzzyEqual(s.Margin.Mean(), 7))
	is.Equal(s.Margin.Min(), -24.0)
	is.Equal(s.Margin.Max(), 36.0)
	str := s.String()
	is.True(strings.Contains(str, "Games played: 4"))
	is.True(strings.Contains(str, "X wins: 2"))
	is.True(strings.Contains(str, "histogram"))
}

func TestAnalyzeLogFileBadRecord(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "games.csv")
	is.NoErr(os.WriteFile(path, []byte(gameLogHeader+"g,60,x,30,X\n"), 0644))
	_, err := AnalyzeLogFile(path)
	is.True(err != nil)
}

func TestGamesFilename(t *testing.T) {
	is := is.New(t)
	is.Equal(GamesFilename("/tmp/out.txt"), "/tmp/out_games.csv")
	is.Equal(GamesFilename("run"), "run_games.csv")
}

func BenchmarkPlayGameDepth2(b *testing.B) {
	runner := NewGameRunner(nil, testConfig(2, 0))
	for i := 0; i < b.N; i++ {
		runner.PlayGame(context.Background(), "bench", uint64(i+1))
	}
}
