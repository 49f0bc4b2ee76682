package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "executor", map[string]bool{"executor": true}},
		{"multiple", "executor,relay", map[string]bool{"executor": true, "relay": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " executor , relay ", map[string]bool{"executor": true, "relay": true}},
		{"uppercase normalized", "EXECUTOR,Relay", map[string]bool{"executor": true, "relay": true}},
		{"empty segments", "executor,,relay", map[string]bool{"executor": true, "relay": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("executor,providers")

	if !Enabled("executor") {
		t.Error("executor should be enabled")
	}
	if !Enabled("providers") {
		t.Error("providers should be enabled")
	}
	if Enabled("mcp") {
		t.Error("mcp should not be enabled")
	}

	categories = parseCategories("all")
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("0123456789abc", 10); got != "0123456789..." {
		t.Errorf("Truncate = %q", got)
	}
}

func TestInitWriterJSON(t *testing.T) {
	t.Setenv("AUTOBOT_DEBUG", "")
	t.Setenv("AUTOBOT_LOG_LEVEL", "")
	orig := slog.Default()
	origCats := categories
	defer func() {
		slog.SetDefault(orig)
		categories = origCats
	}()

	var buf bytes.Buffer
	InitWriter(&buf, "executor", "DEBUG", "json")

	Log("executor", "spawn", "cmd", "python3")
	Log("relay", "hidden")

	out := buf.String()
	if !strings.Contains(out, `"msg":"spawn"`) {
		t.Errorf("expected JSON debug line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("disabled category was logged: %q", out)
	}
}

func TestInitWriterEnvOverridesConfig(t *testing.T) {
	t.Setenv("AUTOBOT_DEBUG", "relay")
	t.Setenv("AUTOBOT_LOG_LEVEL", "ERROR")
	orig := slog.Default()
	origCats := categories
	defer func() {
		slog.SetDefault(orig)
		categories = origCats
	}()

	var buf bytes.Buffer
	InitWriter(&buf, "executor", "DEBUG", "text")

	if Enabled("executor") {
		t.Error("env categories should replace config categories")
	}
	if !Enabled("relay") {
		t.Error("relay should be enabled from env")
	}
	Log("relay", "below threshold")
	if buf.Len() != 0 {
		t.Errorf("debug line should be filtered at ERROR level, got %q", buf.String())
	}
}
