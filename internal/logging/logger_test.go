package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "bogus", Output: &buf})

	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}

	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output should be suppressed at info level: %q", buf.String())
	}
}

func TestWithContextCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	SetGlobalLogger(New(Config{Level: "debug", Format: "json", Output: &buf}))

	ctx := ContextWithRequestID(context.Background(), "req-42")
	WithContext(ctx).Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("expected request_id req-42, got %v", entry["request_id"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
