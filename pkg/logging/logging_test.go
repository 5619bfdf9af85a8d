package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var text, js bytes.Buffer
		logger := slog.New(NewHandler(&text, &js, slog.LevelInfo, "json"))
		logger.Info("Expense recorded", "expense_id", "e1")
		logger.Debug("dropped")

		if text.Len() != 0 {
			t.Errorf("expected nothing on the text writer, got %q", text.String())
		}
		var line map[string]any
		if err := json.Unmarshal(js.Bytes(), &line); err != nil {
			t.Fatalf("expected one JSON line, got %q: %v", js.String(), err)
		}
		if line["msg"] != "Expense recorded" || line["expense_id"] != "e1" {
			t.Errorf("unexpected record: %v", line)
		}
	})

	t.Run("text", func(t *testing.T) {
		var text, js bytes.Buffer
		logger := slog.New(NewHandler(&text, &js, slog.LevelWarn, "text"))
		logger.Info("dropped")
		logger.Warn("Skipping split", "user_id", "u1")

		if js.Len() != 0 {
			t.Errorf("expected nothing on the json writer, got %q", js.String())
		}
		out := text.String()
		if strings.Contains(out, "dropped") || !strings.Contains(out, "Skipping split") {
			t.Errorf("unexpected text output: %q", out)
		}
	})
}
