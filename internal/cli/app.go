package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/remote"
	"codeberg.org/snonux/wordlens/internal/translation"
)

// app bundles the dependencies every command needs
type app struct {
	cfg        Config
	store      credential.Store
	gen        remote.Generator
	translator *translation.Translator
	logger     *slog.Logger
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newApp opens the credential store and builds the generator
func newApp(cfg Config, logOutput io.Writer) (*app, error) {
	logger := newLogger(logOutput, cfg.Verbose)

	store, err := credential.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	rc := cfg.RemoteConfig()
	gen, err := remote.NewGenerator(rc)
	if err != nil {
		store.Close()
		return nil, err
	}

	logger.Debug("configured",
		"provider", cfg.Provider,
		"model", rc.Model,
		"store", cfg.StoreDriver,
	)

	return &app{
		cfg:        cfg,
		store:      credential.WithEnv(store, cfg.APIKeyEnv()),
		gen:        gen,
		translator: translation.NewTranslator(gen),
		logger:     logger,
	}, nil
}

// withBreaker swaps the generator for one behind a circuit breaker
func (a *app) withBreaker(name string) {
	a.gen = remote.NewBreaker(a.gen, name)
	a.translator = translation.NewTranslator(a.gen)
}

func (a *app) Close() error {
	return a.store.Close()
}

func newServerLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
