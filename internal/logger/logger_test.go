package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Service: "booking-backend", Output: &buf})

	log.Debug("hidden")
	log.Info("booking created", "booking_id", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["service"] != "booking-backend" || entry["msg"] != "booking created" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Format: "text", Output: &buf}).Debug("visible")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}
