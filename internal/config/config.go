package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every deployment knob of the generator. Nothing in the
// pipeline hardcodes these; observed deployments disagree even on the
// hard-vs-soft priority cutoff.
type Config struct {
	Hours          HourBounds
	Weights        Weights
	Blocks         BlockRange
	PriorityCutoff int
	Solver         SolverConfig
	Log            LogConfig
}

// HourBounds clamp per-course weekly hours at ingestion.
type HourBounds struct {
	Min int
	Max int
}

// Weights scale the objective terms.
type Weights struct {
	Gap     int
	Balance int
	Block   int
	Soft    int
}

// BlockRange is the preferred contiguous same-subject run length.
type BlockRange struct {
	Min int
	Max int
}

type SolverConfig struct {
	TimeLimit time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults are statically valid, decoding them cannot fail
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads an optional config file over the defaults; environment
// variables prefixed SCHOOLSCHED_ override both.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCHOOLSCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hours.min", 1)
	v.SetDefault("hours.max", 6)
	v.SetDefault("weights.gap", 5)
	v.SetDefault("weights.balance", 2)
	v.SetDefault("weights.block", 1)
	v.SetDefault("weights.soft", 3)
	v.SetDefault("blocks.min", 1)
	v.SetDefault("blocks.max", 2)
	v.SetDefault("prioritycutoff", 1)
	v.SetDefault("solver.timelimit", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
