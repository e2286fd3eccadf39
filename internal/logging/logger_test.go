package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"miso/internal/config"
	"miso/internal/logging"
)

func TestNewFromSettingsConsole(t *testing.T) {
	settings := config.Default()
	var buf bytes.Buffer

	logger, err := logging.NewFromSettings(&settings, &buf)
	if err != nil {
		t.Fatalf("NewFromSettings returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "resolver").Info("resolved options", logging.String("output_dir", "/tmp/out dir"))
	logger.Debug("hidden at info level")

	out := buf.String()
	if !strings.Contains(out, "INFO resolver: resolved options") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, `output_dir="/tmp/out dir"`) {
		t.Fatalf("expected quoted value, got %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug line should be filtered, got %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no source information at info level, got %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("skipped")
	logger.Warn("kept", logging.Int("overhang_len", 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if payload["level"] != "warn" || payload["msg"] != "kept" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logging.WarnWithContext(logger, "overhang ignored", "option_override", logging.String(logging.FieldImpact, "overhang forced to 1"))

	out := buf.String()
	for _, want := range []string{"WARN overhang ignored", "event_type=option_override", "error_hint=", `impact="overhang forced to 1"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected no-op logger to be disabled")
	}
}

func TestDebugLevelAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with source")

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	source, _ := payload["source"].(string)
	if !strings.HasPrefix(source, "logger_test.go:") {
		t.Fatalf("unexpected source: got %q", source)
	}
}
