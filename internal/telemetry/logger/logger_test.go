package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf})
	return l, &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("parse log entry: %v\n%s", err, buf.String())
	}
	return entry
}

func TestJSONOutput(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("session restored", "path", "/admin")

	entry := lastEntry(t, buf)
	if entry["msg"] != "session restored" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["path"] != "/admin" {
		t.Errorf("path = %v", entry["path"])
	}
}

func TestCredentialKeysRedacted(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Info("login attempt", "credentials", "hunter2", "password", "pw")

	out := buf.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, `"pw"`) {
		t.Errorf("credential values leaked: %s", out)
	}
	if !strings.Contains(out, "***REDACTED***") {
		t.Errorf("expected redaction placeholder: %s", out)
	}
}

func TestSessionHandleMasked(t *testing.T) {
	l, buf := newTestLogger(t)

	handle := "rgss-01hgw2n7ehqbj4mnwy1r3f0dpx"
	l.Info("restored", "session", handle)

	out := buf.String()
	if strings.Contains(out, handle) {
		t.Errorf("full session handle leaked: %s", out)
	}
	if !strings.Contains(out, "rgss-01h") {
		t.Errorf("masked handle should keep a hint: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Format: "json", Output: &buf})

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level entries should be dropped: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestWithAttachesFields(t *testing.T) {
	l, buf := newTestLogger(t)

	l.With("component", "subject").Info("state change")

	entry := lastEntry(t, buf)
	if entry["component"] != "subject" {
		t.Errorf("component = %v", entry["component"])
	}
}

func TestContextLogger(t *testing.T) {
	l, buf := newTestLogger(t)

	ctx := WithLogger(context.Background(), l)
	ctx = WithNavID(ctx, "nav-42")

	L(ctx).Info("navigating")

	entry := lastEntry(t, buf)
	if entry["nav_id"] != "nav-42" {
		t.Errorf("nav_id = %v", entry["nav_id"])
	}
}

func TestFromContextFallsBack(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext should fall back to the default logger")
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for key, want := range map[string]bool{
		"password":     true,
		"Credentials":  true,
		"bearer_token": true,
		"path":         false,
		"principal":    false,
	} {
		if got := IsSensitiveKey(key); got != want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
