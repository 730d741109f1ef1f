// SPDX-License-Identifier: EPL-2.0

package voxmix

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/blob"
	"github.com/ik5/voxmix/fetch"
	"github.com/ik5/voxmix/formats"
	"github.com/ik5/voxmix/formats/wav"
	"github.com/ik5/voxmix/internal/observability"
	"github.com/ik5/voxmix/mix"
	"github.com/rs/zerolog"
)

// ContentType is the media type of every clip Mix produces.
const ContentType = "audio/wav"

// Request names the two assets to combine. Music may be empty for a
// voice-only clip. MusicGain is pinned to [0, 1]; callers should apply
// ClampMusicGain first.
type Request struct {
	Speech    string
	Music     string
	MusicGain float64
}

type Result struct {
	// Output is the encoded clip, live until released.
	Output *blob.Blob
	// Warning is set when music was requested but could not be mixed.
	Warning *MixFailure
	// Mixed reports whether the music bed made it into Output.
	Mixed bool
	// Duration is the clip length, always equal to the speech length.
	Duration time.Duration
}

type Orchestrator struct {
	fetcher  fetch.Fetcher
	registry *audio.Registry
	store    *blob.Store
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

type Option func(*Orchestrator)

// WithFetcher replaces the default scheme router. The fetcher must resolve
// blob: handles if the orchestrator is used through a Studio.
func WithFetcher(f fetch.Fetcher) Option {
	return func(o *Orchestrator) { o.fetcher = f }
}

func WithRegistry(r *audio.Registry) Option {
	return func(o *Orchestrator) { o.registry = r }
}

func WithStore(s *blob.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New builds an orchestrator. Without options it decodes every supported
// format, fetches http(s), file and blob references, stores output in a
// private store and logs nothing.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	if o.registry == nil {
		o.registry = formats.NewRegistry()
	}
	if o.store == nil {
		o.store = blob.NewStore()
	}
	if o.fetcher == nil {
		o.fetcher = DefaultFetcher(o.store, fetch.DefaultMaxBytes)
	}

	return o
}

// DefaultFetcher routes http and https to the network, blob: handles to
// store and everything else to the local filesystem.
func DefaultFetcher(store *blob.Store, maxBytes int64) *fetch.Mux {
	web := fetch.NewHTTP(maxBytes)

	mux := fetch.NewMux()
	mux.Handle("http", web)
	mux.Handle("https", web)
	mux.Handle("file", fetch.File{MaxBytes: maxBytes})
	mux.Handle("blob", fetch.Blob{Store: store})

	return mux
}

// Store is where outputs are kept.
func (o *Orchestrator) Store() *blob.Store { return o.store }

// Release frees an output handle. It reports whether the handle was live.
func (o *Orchestrator) Release(uri string) bool { return o.store.Release(uri) }

type fetched struct {
	asset *fetch.Asset
	err   error
	took  time.Duration
}

type decoded struct {
	buf  *audio.Buffer
	err  error
	took time.Duration
}

// Mix fetches, decodes, renders and encodes one clip.
//
// The only errors returned are *SpeechError values; music failures produce
// a voice-only Result with Warning set. Cancelling ctx stops fetches that
// have not finished; work past the fetch stage always runs to completion.
func (o *Orchestrator) Mix(ctx context.Context, req Request) (*Result, error) {
	logger := o.logger.With().Str("speech", req.Speech).Str("music", req.Music).Logger()

	if req.Speech == "" {
		return nil, o.fail(logger, &SpeechError{Stage: StageFetch, Err: ErrNoSpeech})
	}
	withMusic := req.Music != ""

	var sp, mu fetched
	var wg sync.WaitGroup
	wg.Go(func() { sp = o.fetch(ctx, req.Speech) })
	if withMusic {
		wg.Go(func() { mu = o.fetch(ctx, req.Music) })
	}
	wg.Wait()

	logger.Debug().Dur("speech_fetch", sp.took).Dur("music_fetch", mu.took).Msg("assets fetched")

	if sp.err != nil {
		return nil, o.fail(logger, &SpeechError{Stage: StageFetch, Err: sp.err})
	}

	var spBuf, muBuf decoded
	wg.Go(func() { spBuf = o.decode(sp.asset) })
	if withMusic && mu.err == nil {
		wg.Go(func() { muBuf = o.decode(mu.asset) })
	}
	wg.Wait()

	logger.Debug().Dur("speech_decode", spBuf.took).Dur("music_decode", muBuf.took).Msg("assets decoded")

	if spBuf.err != nil {
		return nil, o.fail(logger, &SpeechError{Stage: StageDecode, Err: spBuf.err})
	}
	speech := spBuf.buf

	if !withMusic {
		res, err := o.voiceOnly(speech)
		if err != nil {
			return nil, o.fail(logger, err)
		}
		o.metrics.RecordMix(observability.OutcomeVoiceOnly)
		logger.Info().Str("output", res.Output.URI).Dur("duration", res.Duration).Msg("voice-only clip ready")
		return res, nil
	}

	if mu.err != nil {
		return o.fallback(logger, speech, &MixFailure{Stage: StageFetch, Ref: req.Music, Err: mu.err})
	}
	if muBuf.err != nil {
		return o.fallback(logger, speech, &MixFailure{Stage: StageDecode, Ref: req.Music, Err: muBuf.err})
	}

	start := time.Now()
	rendered, err := mix.Render(mix.Request{Speech: speech, Music: muBuf.buf, MusicGain: unitGain(req.MusicGain)})
	if err != nil {
		return o.fallback(logger, speech, &MixFailure{Stage: StageRender, Ref: req.Music, Err: err})
	}

	data, err := wav.EncodeBytes(rendered)
	if err != nil {
		return o.fallback(logger, speech, &MixFailure{Stage: StageEncode, Ref: req.Music, Err: err})
	}
	o.metrics.ObserveRender(time.Since(start))

	out := o.store.Put(data, ContentType)
	o.metrics.RecordMix(observability.OutcomeMixed)
	logger.Info().
		Str("output", out.URI).
		Dur("duration", rendered.Duration()).
		Int("channels", rendered.Channels()).
		Int("sample_rate", rendered.SampleRate).
		Msg("mixed clip ready")

	return &Result{Output: out, Mixed: true, Duration: rendered.Duration()}, nil
}

func (o *Orchestrator) fetch(ctx context.Context, ref string) fetched {
	start := time.Now()
	asset, err := o.fetcher.Fetch(ctx, ref)
	if err != nil {
		reason := fetch.Other.String()
		var fe *fetch.Error
		if errors.As(err, &fe) {
			reason = fe.Reason.String()
		}
		o.metrics.RecordFetchFailure(reason)
	}

	return fetched{asset: asset, err: err, took: time.Since(start)}
}

func (o *Orchestrator) decode(asset *fetch.Asset) decoded {
	start := time.Now()
	buf, err := o.registry.DecodeBytes(asset.Data)

	return decoded{buf: buf, err: err, took: time.Since(start)}
}

// voiceOnly re-encodes the decoded speech unchanged: same rate, same
// channel count, no upmix.
func (o *Orchestrator) voiceOnly(speech *audio.Buffer) (*Result, error) {
	data, err := wav.EncodeBytes(speech)
	if err != nil {
		return nil, &SpeechError{Stage: StageEncode, Err: err}
	}

	return &Result{Output: o.store.Put(data, ContentType), Duration: speech.Duration()}, nil
}

func (o *Orchestrator) fallback(logger zerolog.Logger, speech *audio.Buffer, mf *MixFailure) (*Result, error) {
	res, err := o.voiceOnly(speech)
	if err != nil {
		return nil, o.fail(logger, err)
	}
	res.Warning = mf

	o.metrics.RecordMix(observability.OutcomeFallback)
	logger.Warn().
		Str("stage", string(mf.Stage)).
		Str("cause", mf.Cause()).
		Str("warning", mf.Error()).
		Str("output", res.Output.URI).
		Msg("falling back to voice-only clip")

	return res, nil
}

func (o *Orchestrator) fail(logger zerolog.Logger, err error) error {
	o.metrics.RecordMix(observability.OutcomeFailed)
	logger.Error().Err(err).Msg("mix failed")
	return err
}
