package api

import (
	"strings"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"python", LanguagePython, false},
		{"Python", LanguagePython, false},
		{" PY ", LanguagePython, false},
		{"java", LanguageJava, false},
		{"Java", LanguageJava, false},
		{"", "", true},
		{"cpp", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLanguageValid(t *testing.T) {
	for _, l := range Languages {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Language("ruby").Valid() {
		t.Error("ruby should not be valid")
	}
}

func TestLanguageDisplayName(t *testing.T) {
	if got := LanguagePython.DisplayName(); got != "Python" {
		t.Errorf("DisplayName = %q, want Python", got)
	}
	if got := LanguageJava.DisplayName(); got != "Java" {
		t.Errorf("DisplayName = %q, want Java", got)
	}
}

func TestRunStatusTerminal(t *testing.T) {
	if RunStatusRunning.Terminal() {
		t.Error("running must not be terminal")
	}
	for _, s := range []RunStatus{RunStatusCompleted, RunStatusCompileError, RunStatusTimedOut, RunStatusCancelled, RunStatusError} {
		if !s.Terminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
}

func TestFormatOutput(t *testing.T) {
	r := &RunResult{Status: RunStatusCompleted, Stdout: "Hello, World!\n", Stderr: ""}
	want := "Output:\nHello, World!\n\n\nErrors:\n"
	if got := r.FormatOutput(); got != want {
		t.Errorf("FormatOutput = %q, want %q", got, want)
	}

	compile := &RunResult{Status: RunStatusCompileError, CompileError: "Main.java:1: error"}
	want = "Output:\n\n\nErrors:\nMain.java:1: error"
	if got := compile.FormatOutput(); got != want {
		t.Errorf("FormatOutput = %q, want %q", got, want)
	}
}

func TestStarterProgram(t *testing.T) {
	for _, l := range Languages {
		if l.StarterProgram() == "" || l.StarterFilename() == "" {
			t.Errorf("%q has no starter program", l)
		}
	}
	if !strings.Contains(LanguagePython.StarterProgram(), `print("Hello world!")`) {
		t.Errorf("python starter = %q", LanguagePython.StarterProgram())
	}
	if !strings.Contains(LanguageJava.StarterProgram(), "public class HelloWorld") {
		t.Errorf("java starter = %q", LanguageJava.StarterProgram())
	}
	if Language("ruby").StarterProgram() != "" {
		t.Error("ruby should have no starter program")
	}
}
