// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/spyglass/spyglass/internal/client"
	"github.com/spyglass/spyglass/internal/config"
	"github.com/spyglass/spyglass/internal/i18n"
	"github.com/spyglass/spyglass/internal/metrics"
	"github.com/spyglass/spyglass/internal/render"
	"github.com/spyglass/spyglass/internal/resource"
)

// env carries the collaborators shared by every command.
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	client  *client.Client
	tr      *i18n.Translator
	lib     *render.Library
	holder  *config.Holder
	aliases *config.Aliases
	metrics *metrics.Collector
	closers []io.Closer
}

// bootstrap loads the settings and builds the shared collaborators. The
// interactive UI owns the terminal so it always logs to a file.
func bootstrap(interactive bool) (*env, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		return nil, err
	}
	if err := cfg.Refine(spyglassFlags); err != nil {
		return nil, err
	}
	s := cfg.Spyglass

	e := env{cfg: cfg}
	var out io.Writer = os.Stderr
	if s.Logger.File != "" || interactive {
		path := s.Logger.File
		if path == "" {
			path = config.AppLogFile
		}
		f, err := config.OpenLogFile(path)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f)
		out = f
	}
	e.logger = config.NewLogger(s.Logger, out).With().Str("app", config.AppName).Logger()
	e.logger.Info().Str("version", version).Msg("Spyglass starting")

	timeout, err := s.GetAPITimeout()
	if err != nil {
		return nil, err
	}
	if e.client, err = client.New(s.BackendURL, client.WithTimeout(timeout), client.WithLogger(e.logger)); err != nil {
		if errors.Is(err, client.ErrNoBackend) {
			return nil, fmt.Errorf("%w: use --backend or set spyglass.backendURL in %s", err, config.AppConfigFile)
		}
		return nil, err
	}
	if s.KubeContext == "" {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		name, err := e.client.GetDefaultContext(ctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("resolve default context: %w", err)
		}
		s.KubeContext = name
	}

	e.tr = i18n.New(s.ActiveLanguage(), nil)
	e.lib = render.NewLibrary(e.tr.Translate)
	e.metrics = metrics.NewWithRegistry(registry())

	if e.holder, err = config.NewHolder(
		overridesPath(s.OverridesFile),
		e.lib,
		config.WithHolderLogger(e.logger),
		config.WithReloadRecorder(e.metrics),
	); err != nil {
		return nil, err
	}
	if interactive {
		if err := e.holder.WatchFile(); err != nil {
			e.logger.Warn().Err(err).Msg("Unable to watch overrides")
		}
		e.holder.WatchSignals()
	}

	e.aliases = config.NewAliases(resource.DefaultTaxonomy)
	if err := e.aliases.Load(config.AppAliasesFile); err != nil {
		e.logger.Warn().Err(err).Msg("Unable to load aliases")
	}

	return &e, nil
}

// Close stops watching and releases the log file.
func (e *env) Close() {
	if e.holder != nil {
		e.holder.Stop()
	}
	for _, c := range e.closers {
		_ = c.Close()
	}
}

// overridesPath prefers the configured file, then the default one when it
// exists. An empty result serves the built-in overrides.
func overridesPath(configured string) string {
	if configured != "" {
		return configured
	}
	if _, err := os.Stat(config.AppOverridesFile); err == nil {
		return config.AppOverridesFile
	}

	return ""
}
