// SPDX-License-Identifier: EPL-2.0

// Command voxmix mixes narration with a background music bed.
//
//	voxmix mix --speech narration.wav --music lofi --out clip.wav
//	voxmix say --text "Welcome back" --emotion Cheerful --music ambient --out clip.wav
//	voxmix serve
//	voxmix catalog
//
// Settings come from VOXMIX_* environment variables or a .env file.
package main

import (
	"fmt"
	"os"

	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/blob"
	"github.com/ik5/voxmix/internal/config"
	"github.com/ik5/voxmix/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at link time.
var Version = "dev"

var (
	cfg     *config.Config
	logger  zerolog.Logger
	reg     *prometheus.Registry
	metrics *observability.Metrics

	rootCmd = &cobra.Command{
		Use:           "voxmix",
		Short:         "Mix narration with a looped music bed into a WAV clip",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setup()
		},
	}
)

func setup() error {
	c, err := config.Load()
	if err != nil {
		return err
	}

	cfg = c
	logger = observability.NewLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	reg = prometheus.NewRegistry()
	metrics = observability.NewMetrics(reg)

	return nil
}

// newOrchestrator builds the shared pipeline from the loaded settings.
func newOrchestrator() *voxmix.Orchestrator {
	store := blob.NewStore()

	return voxmix.New(
		voxmix.WithStore(store),
		voxmix.WithFetcher(voxmix.DefaultFetcher(store, cfg.MaxAssetBytes)),
		voxmix.WithLogger(logger),
		voxmix.WithMetrics(metrics),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "voxmix:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(mixCmd, sayCmd, serveCmd, catalogCmd)
}
