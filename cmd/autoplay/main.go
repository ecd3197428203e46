// Command autoplay plays the engine against itself and prints a summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/config"
)

func setUpLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level, err := zerolog.ParseLevel(cfg.GetString(config.ConfigLogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setUpLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A games CSV from an earlier run can be summarized without playing.
	if args := cfg.Args(); len(args) == 2 && args[0] == "analyze" {
		summary, err := automatic.AnalyzeLogFile(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("analyze-failed")
		}
		fmt.Print(summary.String())
		return
	}

	summary, err := automatic.PlayGames(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetString(config.ConfigAutoplayOutput))
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay-failed")
	}
	fmt.Print(summary.String())
}
