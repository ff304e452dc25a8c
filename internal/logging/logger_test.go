//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("Warn message missing from output: %s", out)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "chatty"}, &buf)

	logger.Debug().Msg("debug line")
	logger.Info().Msg("info line")

	out := buf.String()
	if strings.Contains(out, "debug line") {
		t.Error("Debug should be filtered when level falls back to info")
	}
	if !strings.Contains(out, "info line") {
		t.Error("Info line missing")
	}
}

func TestNewWritesLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "textilegen.log")
	logger := New(Config{Level: "info", File: path}, &buf)

	logger.Info().Str("table", "sales").Msg("flushed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"table":"sales"`) {
		t.Errorf("Log file should contain JSON fields, got: %s", data)
	}
	if !strings.Contains(buf.String(), "flushed") {
		t.Error("Console output should still receive the message")
	}
}
