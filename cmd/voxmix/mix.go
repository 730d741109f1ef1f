// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/catalog"
	"github.com/ik5/voxmix/speech"
	"github.com/spf13/cobra"
)

var (
	speechRef string
	musicRef  string
	gain      float64
	outPath   string

	text    string
	voice   string
	emotion string

	mixCmd = &cobra.Command{
		Use:   "mix",
		Short: "Mix a speech file or URL with a catalog track or music reference",
		Args:  cobra.NoArgs,
		RunE:  runMix,
	}

	sayCmd = &cobra.Command{
		Use:   "say",
		Short: "Synthesize text and mix it with music",
		Args:  cobra.NoArgs,
		RunE:  runSay,
	}
)

func runMix(cmd *cobra.Command, _ []string) error {
	music, ok := catalog.ResolveMusic(musicRef)
	if !ok {
		return fmt.Errorf("%w: %q", voxmix.ErrUnknownTrack, musicRef)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	orch := newOrchestrator()
	res, err := orch.Mix(ctx, voxmix.Request{
		Speech:    speechRef,
		Music:     music,
		MusicGain: musicGain(cmd),
	})
	if err != nil {
		return err
	}
	defer orch.Release(res.Output.URI)

	return writeClip(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
}

func runSay(cmd *cobra.Command, _ []string) error {
	if cfg.SynthURL == "" {
		return errors.New("say needs a synthesis endpoint; set VOXMIX_SYNTH_URL")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	orch := newOrchestrator()
	synth := speech.NewHTTPClient(cfg.SynthURL, cfg.SynthAPIKey)
	synth.MaxBytes = cfg.MaxAssetBytes
	studio := voxmix.NewStudio(orch, synth)

	res, err := studio.Generate(ctx, voxmix.GenerateRequest{
		Text:      text,
		Voice:     voice,
		Emotion:   emotion,
		Track:     musicRef,
		MusicGain: musicGain(cmd),
	})
	if err != nil {
		return err
	}
	defer orch.Release(res.Output.URI)

	return writeClip(cmd.OutOrStdout(), cmd.ErrOrStderr(), res)
}

// musicGain prefers the flag and falls back to the configured default.
func musicGain(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("gain") {
		return voxmix.ClampMusicGain(gain)
	}
	return voxmix.ClampMusicGain(cfg.MusicGain)
}

// writeClip saves the output and reports it; warnings go to errw.
func writeClip(w, errw io.Writer, res *voxmix.Result) error {
	if err := os.WriteFile(outPath, res.Output.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if res.Warning != nil {
		fmt.Fprintln(errw, res.Warning)
	}
	fmt.Fprintln(w, summary(outPath, res))

	return nil
}

func summary(path string, res *voxmix.Result) string {
	kind := "voice only"
	if res.Mixed {
		kind = "mixed"
	}

	return fmt.Sprintf("wrote %s (%s, %s, %s)",
		path, humanize.Bytes(uint64(res.Output.Size())), res.Duration, kind)
}

func init() {
	mixCmd.Flags().StringVarP(&speechRef, "speech", "s", "", "speech file, URL or blob handle")
	mixCmd.Flags().StringVarP(&musicRef, "music", "m", "", "catalog track id or music file/URL (empty for none)")
	_ = mixCmd.MarkFlagRequired("speech")

	sayCmd.Flags().StringVarP(&text, "text", "t", "", "text to speak")
	sayCmd.Flags().StringVar(&voice, "voice", catalog.DefaultVoice, "voice id")
	sayCmd.Flags().StringVarP(&emotion, "emotion", "e", "", "speaking style label")
	sayCmd.Flags().StringVarP(&musicRef, "music", "m", "", "catalog track id or music file/URL (empty for none)")
	_ = sayCmd.MarkFlagRequired("text")

	for _, c := range []*cobra.Command{mixCmd, sayCmd} {
		c.Flags().Float64VarP(&gain, "gain", "g", voxmix.DefaultMusicGain, "music gain, 0 to 0.5")
		c.Flags().StringVarP(&outPath, "out", "o", "voxmix.wav", "output WAV path")
	}
}
