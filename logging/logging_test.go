package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetupJSON(t *testing.T) {
	prev := log.Default()
	defer log.SetDefault(prev)

	var buf bytes.Buffer
	if _, err := Setup(Options{Level: "info", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	log.Debug("hidden")
	log.Info("Marked drop", "track", "A - Alpha", "drop", 60.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one line at info level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if entry["msg"] != "Marked drop" || entry["track"] != "A - Alpha" {
		t.Errorf("Unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected a timestamp in structured output")
	}
}

func TestSetupLogfmtDebug(t *testing.T) {
	prev := log.Default()
	defer log.SetDefault(prev)

	var buf bytes.Buffer
	logger, err := Setup(Options{Level: "debug", Format: "logfmt", Output: &buf})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("Expected debug level, got %v", logger.GetLevel())
	}

	log.Debug("staged", "drop", 12)
	if !strings.Contains(buf.String(), "msg=staged") || !strings.Contains(buf.String(), "drop=12") {
		t.Errorf("Unexpected logfmt output %q", buf.String())
	}
}

func TestSetupRejectsBadInput(t *testing.T) {
	if _, err := Setup(Options{Level: "chatty"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
	if _, err := Setup(Options{Format: "yaml"}); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("A buffer is never a terminal")
	}
}
