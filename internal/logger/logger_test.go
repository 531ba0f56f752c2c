package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.out {
			t.Errorf("parseLevel(%q)=%v want %v", tt.in, got, tt.out)
		}
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")

	ctx := WithRunID(context.Background(), "run-abc")
	WithContext(ctx).Info("scored product", "grade", "A")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["run_id"] != "run-abc" {
		t.Errorf("run_id=%v want run-abc", rec["run_id"])
	}
	if rec["grade"] != "A" {
		t.Errorf("grade=%v want A", rec["grade"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", "text")

	Info("hidden")
	Debug("hidden too")
	Warn("model fallback", "stage", "classify")
	Error("recovered")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info/debug to be filtered, got %q", out)
	}
	if !strings.Contains(out, "model fallback") || !strings.Contains(out, "recovered") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestWithContext_NoValues(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "text")

	Component("stats").Info("published")
	WithContext(context.Background()).Info("plain")

	out := buf.String()
	if !strings.Contains(out, "component=stats") {
		t.Errorf("expected component attribute, got %q", out)
	}
	if strings.Contains(out, "request_id") {
		t.Errorf("did not expect request_id without context value, got %q", out)
	}
}
