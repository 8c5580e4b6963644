package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/resume-assistant/internal/assistant"
	"github.com/jonathan/resume-assistant/internal/config"
	"github.com/jonathan/resume-assistant/internal/generator"
	"github.com/jonathan/resume-assistant/internal/llm"
	"github.com/jonathan/resume-assistant/internal/observability"
	"github.com/jonathan/resume-assistant/internal/parsing"
	"github.com/jonathan/resume-assistant/internal/rendering"
	"github.com/jonathan/resume-assistant/internal/store"
)

// app holds the collaborators shared by every command.
type app struct {
	service *assistant.Service
	printer *observability.Printer
	closers []func() error
}

// Close releases the storage backend and the completion client.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newApp wires storage, generation and rendering from cfg.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	a := &app{printer: observability.NewPrinter(out)}

	var backend store.Backend
	switch cfg.Storage {
	case config.StoragePostgres:
		pg, err := store.NewPostgresBackend(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		backend = pg
	default:
		backend = store.NewFileBackend(cfg.DataDir)
	}
	a.closers = append(a.closers, backend.Close)
	logger.Debug("storage ready", "backend", cfg.Storage, "data_dir", cfg.DataDir)

	// A nil completer makes the generator use templates only.
	var completer generator.Completer
	if cfg.APIKey != "" {
		llmCfg, err := cfg.LLMConfig()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to create %s client: %w", llmCfg.Provider, err)
		}
		a.closers = append(a.closers, client.Close)
		completer = client
		logger.Debug("remote generation enabled", "provider", llmCfg.Provider, "model", client.Model())
	} else {
		logger.Debug("no API key configured; using template generation")
	}

	normalizer := parsing.NewNormalizer(nil, logger)
	storeOpts := store.Options{Logger: logger}
	a.service = assistant.New(assistant.Deps{
		Profiles:     store.NewProfileStore(backend, storeOpts),
		Applications: store.NewApplicationStore(backend, storeOpts),
		Generator: generator.New(completer, generator.Options{
			Timeout:    cfg.Timeout(),
			Normalizer: normalizer,
			Logger:     logger,
		}),
		Renderer: rendering.New(rendering.Options{
			ColorScheme: cfg.ColorScheme,
			ChromePath:  cfg.ChromePath,
		}),
		Normalizer: normalizer,
		Logger:     logger,
	})
	return a, nil
}

// openApp builds the app for a command from the loaded configuration.
func openApp(ctx context.Context, out io.Writer) (*app, error) {
	if appConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	return newApp(ctx, appConfig, logger, out)
}

// newLogger returns a text or JSON slog logger; verbose enables debug level.
func newLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
