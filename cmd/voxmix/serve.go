// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/internal/server"
	"github.com/ik5/voxmix/speech"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mixing API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	orch := newOrchestrator()

	var studio *voxmix.Studio
	if cfg.SynthURL != "" {
		synth := speech.NewHTTPClient(cfg.SynthURL, cfg.SynthAPIKey)
		synth.MaxBytes = cfg.MaxAssetBytes
		studio = voxmix.NewStudio(orch, synth)
	} else {
		logger.Warn().Msg("VOXMIX_SYNTH_URL not set, /v1/generate disabled")
	}

	opts := server.Options{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		DefaultGain:    cfg.MusicGain,
	}
	if cfg.MetricsEnabled {
		opts.Gatherer = prometheus.Gatherers{reg, prometheus.DefaultGatherer}
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(orch, studio, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Bool("metrics", cfg.MetricsEnabled).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
