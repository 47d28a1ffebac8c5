package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/kotoba/internal/app"
	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/store"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Japanese vocabulary practice in the terminal",
	Long: `Kotoba builds varied exercises from your daily word lists and checks
your answers with forgiving matching for typos, kana and punctuation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, args)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/kotoba/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides KOTOBA_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("user", "", "Learner ID used for saved sessions")

	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger. Flags override the
// config file and KOTOBA_* variables.
func setup(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	v, err := config.New(file)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	l, err := config.NewLogger(c.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, log = c, l
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"db":        "db",
		"log.level": "log-level",
		"user":      "user",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// resolveDBPath returns the database path using --db or KOTOBA_DB first,
// then the db config key, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openApp wires the application over the resolved database.
func openApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	log.WithField("db", dbPath).Debug("opening database")
	return app.New(cmd.Context(), cfg, dbPath, log, app.Options{})
}

// openStore opens the database without building the exercise pipeline.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
