// Package config loads kotoba's settings from an optional config file,
// KOTOBA_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/abhisek/kotoba/internal/llm"
)

const envPrefix = "KOTOBA"

type Config struct {
	// DB is the SQLite file. Empty means the XDG data path.
	DB string `mapstructure:"db"`

	// WordsDir holds day-N.json files read when the database has no words.
	WordsDir string `mapstructure:"words_dir"`

	UserID string `mapstructure:"user"`

	Log      LogConfig      `mapstructure:"log"`
	Exercise ExerciseConfig `mapstructure:"exercise"`
	Session  SessionConfig  `mapstructure:"session"`
	LLM      llm.Config     `mapstructure:"llm"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type ExerciseConfig struct {
	Count      int    `mapstructure:"count"`
	Difficulty int    `mapstructure:"difficulty"`
	HistoryCap int    `mapstructure:"history_cap"`
	TTSURL     string `mapstructure:"tts_url"`
}

type SessionConfig struct {
	MaxIdle time.Duration `mapstructure:"max_idle"`

	// KeepSnapshots is how many completed sessions per user survive a prune.
	KeepSnapshots int `mapstructure:"keep_snapshots"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("words_dir", "")
	v.SetDefault("user", "default")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("exercise.count", 10)
	v.SetDefault("exercise.difficulty", 1)
	v.SetDefault("exercise.history_cap", 100)
	v.SetDefault("exercise.tts_url", "https://translate.google.com/translate_tts?ie=UTF-8&client=tw-ob&tl=ja")

	v.SetDefault("session.max_idle", 24*time.Hour)
	v.SetDefault("session.keep_snapshots", 20)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	// Keys without a default must still be known to viper for
	// AutomaticEnv to populate them on Unmarshal.
	for _, k := range []string{
		"llm.anthropic.api_key", "llm.anthropic.base_url",
		"llm.openai.api_key", "llm.openai.base_url",
		"llm.gemini.api_key",
		"llm.openrouter.api_key", "llm.openrouter.base_url",
	} {
		v.SetDefault(k, "")
	}
}

// New returns a viper instance wired for kotoba: defaults, KOTOBA_ env
// vars with "." mapped to "_", and an optional config file. An explicit
// file must exist; the default locations may be empty.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "kotoba"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes v into a Config. An unset LLM provider is discovered from
// the vendors' standard API key variables.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM = cfg.LLM.Discover()

	if cfg.Exercise.Count < 1 {
		return nil, fmt.Errorf("exercise.count must be positive, got %d", cfg.Exercise.Count)
	}
	if cfg.Exercise.Difficulty < 1 || cfg.Exercise.Difficulty > 5 {
		return nil, fmt.Errorf("exercise.difficulty must be between 1 and 5, got %d", cfg.Exercise.Difficulty)
	}
	return &cfg, nil
}

// NewLogger builds the logger described by cfg, writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return logger, nil
}
