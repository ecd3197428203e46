package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	*viper.Viper
	// args are the command-line arguments left over after the flags.
	args []string
}

const (
	ConfigDepthLimit      = "depth-limit"
	ConfigTimeLimited     = "time-limited"
	ConfigTimeLimit       = "time-limit"
	ConfigSeed            = "seed"
	ConfigLogLevel        = "log-level"
	ConfigDebug           = "debug"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayOutput  = "autoplay-output"
	ConfigSearchLog       = "search-log"
	ConfigCPUProfile      = "cpu-profile"
	ConfigFile            = "config"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDepthLimit, 6)
	v.SetDefault(ConfigTimeLimited, false)
	v.SetDefault(ConfigTimeLimit, 5*time.Second)
	v.SetDefault(ConfigSeed, 0)
	v.SetDefault(ConfigLogLevel, "info")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigAutoplayThreads, 1)
	v.SetDefault(ConfigAutoplayOutput, "/tmp/reversi-autoplay.txt")
	v.SetDefault(ConfigSearchLog, "")
	v.SetDefault(ConfigCPUProfile, "")
}

// Load reads settings from, in increasing order of priority, the defaults,
// an optional YAML config file, REVERSI_* environment variables, and args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.Int(ConfigDepthLimit, 6, "maximum search depth in plies")
	fs.Bool(ConfigTimeLimited, false, "stop searching once most of the time limit is used")
	fs.Duration(ConfigTimeLimit, 5*time.Second, "time budget per turn")
	fs.Uint64(ConfigSeed, 0, "random seed for move ordering; 0 uses entropy")
	fs.String(ConfigLogLevel, "info", "log level: debug, info, warn, error")
	fs.Bool(ConfigDebug, false, "turn on debug logging")
	fs.Int(ConfigAutoplayGames, 100, "number of games to autoplay")
	fs.Int(ConfigAutoplayThreads, 1, "number of autoplay workers")
	fs.String(ConfigAutoplayOutput, "/tmp/reversi-autoplay.txt", "autoplay game log file")
	fs.String(ConfigSearchLog, "", "if set, write a YAML search log to this file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigFile, "", "path of a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("reversi")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigFile); cf != "" {
		c.SetConfigFile(cf)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		log.Debug().Str("file", cf).Msg("read-config-file")
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.GetInt(ConfigDepthLimit) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigDepthLimit)
	}
	if c.GetDuration(ConfigTimeLimit) <= 0 {
		return fmt.Errorf("%s must be positive", ConfigTimeLimit)
	}
	if c.GetInt(ConfigAutoplayThreads) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigAutoplayThreads)
	}
	return nil
}

// Args returns the non-flag arguments given to Load.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is every setting, fit for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

func DefaultConfig() *Config {
	c := &Config{}
	c.Viper = viper.New()
	setDefaults(c.Viper)
	return c
}
