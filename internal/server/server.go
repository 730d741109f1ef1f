// SPDX-License-Identifier: EPL-2.0

// Package server exposes the orchestrator over HTTP.
//
//	POST   /v1/mix           {"speech", "music", "gain"}
//	POST   /v1/generate      {"text", "voice", "emotion", "track", "gain"}
//	GET    /v1/blobs/{id}    the encoded clip
//	DELETE /v1/blobs/{id}    release it
//	GET    /v1/catalog       tracks, voices and styles
//	GET    /metrics          Prometheus, when a gatherer is configured
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/blob"
	"github.com/ik5/voxmix/catalog"
	"github.com/ik5/voxmix/internal/observability"
	"github.com/ik5/voxmix/speech"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const blobPrefix = "/v1/blobs"

type Options struct {
	Logger zerolog.Logger
	// RequestTimeout bounds each mix or generate call; zero means none.
	RequestTimeout time.Duration
	// DefaultGain applies when a request leaves gain out.
	DefaultGain float64
	// Gatherer enables /metrics when set.
	Gatherer prometheus.Gatherer
}

type server struct {
	orch   *voxmix.Orchestrator
	studio *voxmix.Studio
	opts   Options
}

// New builds the handler. studio may be nil, in which case /v1/generate
// answers 501.
func New(orch *voxmix.Orchestrator, studio *voxmix.Studio, opts Options) http.Handler {
	s := &server{orch: orch, studio: studio, opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/mix", s.handleMix)
	mux.HandleFunc("POST /v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.Handle(blobPrefix+"/", http.StripPrefix(blobPrefix, blob.Handler(orch.Store())))

	if opts.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

type mixRequest struct {
	Speech string   `json:"speech"`
	Music  string   `json:"music"`
	Gain   *float64 `json:"gain"`
}

type generateRequest struct {
	Text    string   `json:"text"`
	Voice   string   `json:"voice"`
	Emotion string   `json:"emotion"`
	Track   string   `json:"track"`
	Gain    *float64 `json:"gain"`
}

type clipResponse struct {
	Handle  string  `json:"handle"`
	URL     string  `json:"url"`
	Bytes   int     `json:"bytes"`
	Seconds float64 `json:"duration_seconds"`
	Mixed   bool    `json:"mixed"`
	Warning string  `json:"warning,omitempty"`
	Cause   string  `json:"cause,omitempty"`
	Request string  `json:"request_id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Request string `json:"request_id,omitempty"`
}

func (s *server) handleMix(w http.ResponseWriter, r *http.Request) {
	logger, id := observability.WithRequestID(s.opts.Logger, r.Header.Get("X-Request-ID"))

	var req mixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", id)
		return
	}
	if strings.TrimSpace(req.Speech) == "" {
		writeError(w, http.StatusBadRequest, "speech is required", id)
		return
	}

	music, ok := catalog.ResolveMusic(req.Music)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown music track "+req.Music, id)
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	res, err := s.orch.Mix(ctx, voxmix.Request{
		Speech:    req.Speech,
		Music:     music,
		MusicGain: s.gain(req.Gain),
	})
	s.respond(w, logger, id, res, err)
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger, id := observability.WithRequestID(s.opts.Logger, r.Header.Get("X-Request-ID"))

	if s.studio == nil {
		writeError(w, http.StatusNotImplemented, "speech synthesis is not configured", id)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", id)
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()

	res, err := s.studio.Generate(ctx, voxmix.GenerateRequest{
		Text:      req.Text,
		Voice:     req.Voice,
		Emotion:   req.Emotion,
		Track:     req.Track,
		MusicGain: s.gain(req.Gain),
	})
	s.respond(w, logger, id, res, err)
}

func (s *server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tracks": catalog.Tracks(),
		"voices": catalog.Voices(),
		"styles": catalog.Styles(),
	})
}

func (s *server) respond(w http.ResponseWriter, logger zerolog.Logger, id string, res *voxmix.Result, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		var se *voxmix.SpeechError
		switch {
		case errors.Is(err, voxmix.ErrUnknownTrack), errors.Is(err, speech.ErrEmptyText):
			status = http.StatusBadRequest
		case errors.As(err, &se) && se.Stage == voxmix.StageSynthesize:
			status = http.StatusBadGateway
		case errors.As(err, &se):
			status = http.StatusUnprocessableEntity
		}

		logger.Error().Err(err).Int("status", status).Msg("request failed")
		writeError(w, status, err.Error(), id)
		return
	}

	out := clipResponse{
		Handle:  res.Output.URI,
		URL:     blobPrefix + "/" + res.Output.ID.String(),
		Bytes:   res.Output.Size(),
		Seconds: res.Duration.Seconds(),
		Mixed:   res.Mixed,
		Request: id,
	}
	if res.Warning != nil {
		out.Warning = res.Warning.Error()
		out.Cause = res.Warning.Cause()
	}

	logger.Info().Str("handle", out.Handle).Bool("mixed", out.Mixed).Msg("clip served")
	writeJSON(w, http.StatusCreated, out)
}

// gain applies the default and clamps to the supported envelope.
func (s *server) gain(g *float64) float64 {
	if g == nil {
		return voxmix.ClampMusicGain(s.opts.DefaultGain)
	}
	return voxmix.ClampMusicGain(*g)
}

func (s *server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.RequestTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, id string) {
	writeJSON(w, status, errorResponse{Error: msg, Request: id})
}
