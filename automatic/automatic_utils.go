package automatic

// Data collection for automatic games.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const (
	turnLogHeader = "gameID,turn,side,move,score,outcome,nodes,elapsedms,first,second\n"
	gameLogHeader = "gameID,turns,first,second,winner\n"
)

// running is set for the whole of a PlayGames call.
var running atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// GamesFilename is where the per-game results of a run that logs turns to
// turnLog end up.
func GamesFilename(turnLog string) string {
	ext := filepath.Ext(turnLog)
	return strings.TrimSuffix(turnLog, ext) + "_games.csv"
}

// PlayGames plays numGames games across threads workers and returns a
// summary of the finished ones. Every turn is logged as CSV to
// outputFilename and every game result to GamesFilename(outputFilename).
// The games are reproducible if cfg sets a nonzero seed. Cancelling ctx
// stops the run early; that is not an error.
func PlayGames(ctx context.Context, cfg *config.Config, numGames, threads int,
	outputFilename string) (*Summary, error) {

	if !running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer running.Store(false)
	if threads < 1 {
		threads = 1
	}
	base := baseSeed(cfg.GetUint64(config.ConfigSeed))
	log.Info().Int("games", numGames).Int("threads", threads).
		Uint64("seed", base).Msg("starting-autoplay")

	turnFile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	gameFile, err := os.Create(GamesFilename(outputFilename))
	if err != nil {
		turnFile.Close()
		return nil, err
	}

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)
	gameChan := make(chan string, 100)
	results := make([]GameResult, numGames)
	finished := make([]bool, numGames)

	// A failed write stops the games, but the writers keep draining their
	// channels so no worker blocks on a send.
	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	writer := errgroup.Group{}
	writer.Go(func() error {
		return writeLog(turnFile, turnLogHeader, logChan, stop)
	})
	writer.Go(func() error {
		return writeLog(gameFile, gameLogHeader, gameChan, stop)
	})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		log.Debug().Msg("finished-queueing-jobs")
		return nil
	})
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(logChan, cfg)
			for i := range jobs {
				res, err := r.PlayGame(gctx, fmt.Sprintf("game-%d", i), GameSeed(base, i))
				if err != nil {
					return err
				}
				results[i] = res
				finished[i] = true
				gameChan <- fmt.Sprintf("%v,%v,%v,%v,%c\n", res.GameID, res.Turns,
					res.FirstDiscs, res.SecondDiscs, res.Winner.DisplayRune())
				CVCCounter.Add(1)
				if n := CVCCounter.Value(); n%100 == 0 {
					log.Info().Int64("games", n).Msg("autoplay-progress")
				}
			}
			return nil
		})
	}

	err = g.Wait()
	close(logChan)
	close(gameChan)
	if werr := writer.Wait(); werr != nil {
		err = werr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Info().Err(err).Msg("autoplay-stopped-early")
		err = nil
	}

	done := make([]GameResult, 0, numGames)
	for i, ok := range finished {
		if ok {
			done = append(done, results[i])
		}
	}
	log.Info().Int("games", len(done)).Msg("autoplay-done")
	return Summarize(done), err
}

// writeLog writes header and then every line from lines to f. After the
// first failed write it calls onErr and discards the rest of the lines.
func writeLog(f *os.File, header string, lines <-chan string, onErr func()) error {
	defer f.Close()
	w := bufio.NewWriter(f)
	_, werr := w.WriteString(header)
	for line := range lines {
		if werr != nil {
			continue
		}
		if _, werr = w.WriteString(line); werr != nil {
			log.Err(werr).Str("file", f.Name()).Msg("autoplay-log-write")
			onErr()
		}
	}
	if werr != nil {
		return werr
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Debug().Str("file", f.Name()).Msg("exiting-logger")
	return nil
}
