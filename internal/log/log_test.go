package log_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/log"
)

func TestNew(t *testing.T) {
	if err := log.SetLevel("debug"); err != nil {
		t.Fatalf("log.SetLevel(debug) error = %v, want nil", err)
	}
	t.Cleanup(func() { log.Level.Set(slog.LevelInfo) })

	var buf bytes.Buffer
	logger := log.New(&buf, false)
	logger.Debug("parsed",
		slog.Any("urn", urn.MustParse("urn:example:a%2Fb?=k=v")),
		slog.Any("query", urn.Params{{Key: "k", Value: "v"}}),
		slog.Any("error", errors.New("boom")),
		slog.Any("raw", log.StringValue([]byte("urn:x"))),
	)

	out := buf.String()
	for _, want := range []string{"parsed", "urn:example:a%2fb?=k=v", "example", "a/b", "k=v", "boom", "urn:x"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { log.Level.Set(slog.LevelInfo) })

	if err := log.SetLevel("WARN"); err != nil {
		t.Fatalf("log.SetLevel(WARN) error = %v, want nil", err)
	}
	if got := log.Level.Level(); got != slog.LevelWarn {
		t.Errorf("log.Level = %v, want %v", got, slog.LevelWarn)
	}
	if err := log.SetLevel("loud"); err == nil {
		t.Error("log.SetLevel(loud) error = nil, want error")
	}

	var buf bytes.Buffer
	log.New(&buf, false).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(t.Context(), slog.LevelError) {
		t.Error("log.Noop is enabled")
	}
	log.Noop.With("k", "v").WithGroup("g").Error("dropped")
}
