package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("extract").Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=extract") {
		t.Errorf("expected component=extract in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "JSON", &buf)

	New("pipeline").Info("claim processed", "route", "Fast-track")

	output := buf.String()
	for _, want := range []string{`"level":"INFO"`, `"component":"pipeline"`, `"route":"Fast-track"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in JSON output, got: %s", want, output)
		}
	}
}

func TestInit_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	logger := New("gate")
	logger.Info("should be suppressed")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should be suppressed") {
		t.Error("Info message should be suppressed at Warn level")
	}
	if !strings.Contains(output, "should appear") {
		t.Error("Warn message should appear at Warn level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tc.in, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup("debug", "text", &buf); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	New("x").Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug line missing: %s", buf.String())
	}

	if err := Setup("info", "xml", &buf); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := Setup("chatty", "text", &buf); err == nil {
		t.Error("expected error for unknown level")
	}
}
