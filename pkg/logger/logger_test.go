//go:build !integration

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	out := map[string]any{}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return out
}

func TestKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug")

	Info("catalog_search", "query", "Marvel OR DC", "limit", 100, "cached", false)

	got := decodeLine(t, &buf)
	if got["message"] != "catalog_search" {
		t.Fatalf("message = %v", got["message"])
	}
	if got["query"] != "Marvel OR DC" {
		t.Fatalf("query = %v", got["query"])
	}
	if got["limit"] != float64(100) {
		t.Fatalf("limit = %v", got["limit"])
	}
	if got["cached"] != false {
		t.Fatalf("cached = %v", got["cached"])
	}
}

func TestErrorInKeyPosition(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug")

	Error("store failed", errors.New("boom"), "user_id", uint(7))

	got := decodeLine(t, &buf)
	if got["error"] != "boom" {
		t.Fatalf("error = %v", got["error"])
	}
	if got["user_id"] != float64(7) {
		t.Fatalf("user_id = %v", got["user_id"])
	}
	if got["level"] != "error" {
		t.Fatalf("level = %v", got["level"])
	}
}

func TestSlogAttrAndDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug")

	Warn("degraded", slog.Any("parts", []string{"preferences"}), "orphan")

	got := decodeLine(t, &buf)
	parts, ok := got["parts"].([]any)
	if !ok || len(parts) != 1 || parts[0] != "preferences" {
		t.Fatalf("parts = %v", got["parts"])
	}
	if got["arg_1"] != "orphan" {
		t.Fatalf("dangling key not kept: %v", got)
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")

	Debug("hidden")
	Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}
