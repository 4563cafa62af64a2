package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestBusinessErrorLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.BusinessError("assignment rejected", errors.New("staff unavailable"), "order_id", "o-1")

	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) {
		t.Fatalf("expected warn level, got %s", out)
	}
	if !strings.Contains(out, `"err":"staff unavailable"`) || !strings.Contains(out, `"order_id":"o-1"`) {
		t.Fatalf("missing attributes: %s", out)
	}
}

func TestNilErrorsAreIgnored(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("noop", nil)
	log.InternalError("noop", nil)

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "json").Critical("store unreachable")

	if !strings.Contains(buf.String(), `"level":"CRITICAL"`) {
		t.Fatalf("expected CRITICAL level, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value, env string
		want       slog.Level
	}{
		{"debug", "", slog.LevelDebug},
		{"", "development", slog.LevelDebug},
		{"", "production", slog.LevelInfo},
		{"WARNING", "", slog.LevelWarn},
		{"fatal", "", LevelCritical},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.value, tc.env); got != tc.want {
			t.Errorf("parseLevel(%q, %q) = %v, want %v", tc.value, tc.env, got, tc.want)
		}
	}
}
