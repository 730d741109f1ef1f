// SPDX-License-Identifier: EPL-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("warn", false, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("track", "lofi").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var event map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	if event["message"] != "shown" || event["track"] != "lofi" || event["level"] != "warn" {
		t.Errorf("event = %v", event)
	}
	if _, ok := event["time"]; !ok {
		t.Error("event has no timestamp")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"error", false, false},
		{"bogus", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := NewLogger(tt.level, false, &buf)

		logger.Debug().Msg("d")
		if got := buf.Len() > 0; got != tt.debugSeen {
			t.Errorf("level %q: debug logged = %v, want %v", tt.level, got, tt.debugSeen)
		}

		buf.Reset()
		logger.Info().Msg("i")
		if got := buf.Len() > 0; got != tt.infoSeen {
			t.Errorf("level %q: info logged = %v, want %v", tt.level, got, tt.infoSeen)
		}
	}
}

func TestNewLogger_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("info", true, &buf)
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), "hello") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("pretty output = %q", buf.String())
	}
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, id := WithRequestID(NewLogger("info", false, &buf), "")
	if id == "" {
		t.Fatal("no id generated")
	}

	logger.Info().Msg("x")
	if !strings.Contains(buf.String(), `"request_id":"`+id+`"`) {
		t.Errorf("output %q lacks request_id", buf.String())
	}

	if _, got := WithRequestID(logger, "fixed"); got != "fixed" {
		t.Errorf("id = %q, want fixed", got)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if hasLabel(m, label, value) {
				return m.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordMix(OutcomeMixed)
	m.RecordMix(OutcomeMixed)
	m.RecordMix(OutcomeFallback)
	m.RecordFetchFailure("forbidden")
	m.ObserveRender(20 * time.Millisecond)

	if got := counterValue(t, reg, "voxmix_mix_total", "outcome", OutcomeMixed); got != 2 {
		t.Errorf("mixed = %v, want 2", got)
	}
	if got := counterValue(t, reg, "voxmix_mix_total", "outcome", OutcomeFallback); got != 1 {
		t.Errorf("fallback = %v, want 1", got)
	}
	if got := counterValue(t, reg, "voxmix_fetch_failures_total", "reason", "forbidden"); got != 1 {
		t.Errorf("forbidden = %v, want 1", got)
	}

	families, _ := reg.Gather()
	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "voxmix_render_seconds" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	if samples != 1 {
		t.Errorf("render samples = %d, want 1", samples)
	}
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordMix(OutcomeFailed)
	m.RecordFetchFailure("network")
	m.ObserveRender(time.Second)
}
