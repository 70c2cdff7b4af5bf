// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/spyglass/spyglass/internal/config"
	"github.com/spyglass/spyglass/internal/config/data"
	"github.com/spyglass/spyglass/internal/model"
	"github.com/spyglass/spyglass/internal/server"
	"github.com/spyglass/spyglass/internal/table"
	"github.com/spyglass/spyglass/internal/view"
)

const appName = config.AppName

// Set at link time.
var (
	version = "dev"
	commit  = "none"
)

var (
	spyglassFlags *data.Flags
	rootCmd       = &cobra.Command{
		Use:           appName,
		Short:         "A terminal dashboard for Kubernetes clusters",
		Long:          `spyglass browses Kubernetes resources served by a dashboard backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s)\n", appName, version, commit)
		},
	}
)

func init() {
	spyglassFlags = config.NewFlags()
	initSpyglassFlags()
	rootCmd.AddCommand(versionCmd, newGetCmd(), newResourcesCmd())
}

func initSpyglassFlags() {
	f := rootCmd.PersistentFlags()
	f.Float32VarP(spyglassFlags.RefreshRate, "refresh", "r", 0, "Refresh rate in seconds")
	f.StringVar(spyglassFlags.Backend, "backend", "", "Dashboard backend url")
	f.StringVar(spyglassFlags.KubeContext, "context", "", "Kubernetes context to browse")
	f.StringVarP(spyglassFlags.Namespace, "namespace", "n", "", "Namespace to browse, all for every namespace")
	f.StringVar(spyglassFlags.Language, "lang", "", "UI language tag, e.g. en or en-GB")
	f.StringVar(spyglassFlags.Theme, "theme", "", "Color theme (auto, light, dark)")
	f.StringVarP(spyglassFlags.LogLevel, "logLevel", "l", "", "Log level (debug, info, warn, error)")
	f.StringVar(spyglassFlags.LogFile, "logFile", "", "Log file path")
	f.StringVar(spyglassFlags.Overrides, "overrides", "", "Table overrides file")
	f.StringVar(spyglassFlags.MetricsAddr, "metrics-addr", "", "Listen address of the debug server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(*cobra.Command, []string) error {
	e, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cfg.Spyglass
	app := view.NewApp(view.Deps{
		Config:     e.cfg,
		Resolver:   e.holder,
		Aliases:    e.aliases,
		Translator: e.tr,
		Library:    e.lib,
		Sessions: func(kubeContext string) model.Source {
			return e.client.Session(kubeContext)
		},
		Contexts: e.client,
		States:   data.NewDir(config.AppContextsDir),
		Metrics:  e.metrics,
		Logger:   e.logger,
	}, version)
	e.holder.OnChange(func(*table.Registry) {
		app.QueueUpdateDraw(app.Reload)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.MetricsAddr != "" {
		srv := server.New(server.Options{
			Resolver: e.holder,
			Lookup:   e.aliases.Resolve,
			Metrics:  e.metrics.Handler(),
			Tables:   app.Tables,
			Logger:   e.logger,
		})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.MetricsAddr); err != nil {
				e.logger.Error().Err(err).Msg("Debug server failed")
			}
		}()
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			app.Stop()
		case <-ctx.Done():
		}
	}()

	if err := app.Init(); err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// registry returns the process wide prometheus registry pair.
func registry() (prometheus.Registerer, prometheus.Gatherer) {
	return prometheus.DefaultRegisterer, prometheus.DefaultGatherer
}

// quietErr reports whether err is the expected result of an interrupt.
func quietErr(err error) bool {
	return errors.Is(err, context.Canceled)
}
