// Package app wires kotoba's components from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/distractor"
	"github.com/abhisek/kotoba/internal/enrich"
	"github.com/abhisek/kotoba/internal/exercise"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/vocab"
)

// App holds the dependencies shared by the CLI commands.
type App struct {
	Config *config.Config
	Log    logrus.FieldLogger
	Store  *store.Store

	Bank        *vocab.Bank
	Distractors *distractor.Generator
	Generator   *exercise.Generator
	Sessions    *session.Manager
	Practice    *Practice
}

// Options overrides parts of the wiring, mostly for tests.
type Options struct {
	// Words replaces the word source picked from configuration.
	Words vocab.Provider

	Exercise exercise.Config
	Session  session.Config
}

// New opens the store at dbPath and builds every component. The caller
// must Close the App.
func New(ctx context.Context, cfg *config.Config, dbPath string, log logrus.FieldLogger, opts Options) (*App, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	words := opts.Words
	if words == nil {
		words, err = wordSource(ctx, cfg, st, log)
		if err != nil {
			st.Close()
			return nil, err
		}
	}

	bank := vocab.NewBank(words, log.WithField("component", "bank"))
	distractors := distractor.New(bank, distractor.DefaultConfig(), log.WithField("component", "distractor"))

	exCfg := opts.Exercise
	if exCfg.HistoryCap == 0 {
		exCfg.HistoryCap = cfg.Exercise.HistoryCap
	}
	if exCfg.TTSURL == "" {
		exCfg.TTSURL = cfg.Exercise.TTSURL
	}
	gen := exercise.NewGenerator(bank, vocab.StaticKana{}, distractors, exCfg, log.WithField("component", "exercise"))

	sessCfg := opts.Session
	if sessCfg.MaxIdle == 0 {
		sessCfg.MaxIdle = cfg.Session.MaxIdle
	}
	sessions := session.NewManager(sessCfg, log.WithField("component", "session"))

	a := &App{
		Config:      cfg,
		Log:         log,
		Store:       st,
		Bank:        bank,
		Distractors: distractors,
		Generator:   gen,
		Sessions:    sessions,
	}
	a.Practice = &Practice{
		Generator: gen,
		Sessions:  sessions,
		Snapshots: st.SnapshotRepo(),
		Events:    st.EventRepo(),
		UserID:    cfg.UserID,
		Keep:      cfg.Session.KeepSnapshots,
		Log:       log.WithField("component", "practice"),
	}
	return a, nil
}

// wordSource prefers words imported into the database and falls back to
// the configured directory of day files.
func wordSource(ctx context.Context, cfg *config.Config, st *store.Store, log logrus.FieldLogger) (vocab.Provider, error) {
	days, err := st.WordRepo().Days(ctx)
	if err != nil {
		return nil, err
	}
	if len(days) > 0 || cfg.WordsDir == "" {
		return st.WordRepo(), nil
	}
	log.WithField("dir", cfg.WordsDir).Debug("database has no words, reading day files")
	return vocab.NewDirProvider(cfg.WordsDir), nil
}

// LLM builds the configured provider with request logging into the
// store. It returns llm.ErrDisabled when no provider is configured.
func (a *App) LLM(ctx context.Context) (llm.Provider, error) {
	return llm.NewProvider(ctx, a.Config.LLM, a.Store.EventRepo(), a.Log)
}

// Enricher returns a sentence enricher over the configured provider.
func (a *App) Enricher(ctx context.Context) (*enrich.Enricher, error) {
	p, err := a.LLM(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrDisabled) {
			return nil, fmt.Errorf("%w: set KOTOBA_LLM_PROVIDER or a vendor API key", err)
		}
		return nil, err
	}
	cfg := enrich.DefaultConfig()
	if a.Config.LLM.Timeout > 0 {
		cfg.Timeout = a.Config.LLM.Timeout
	}
	return enrich.New(p, cfg, a.Log), nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
