package api

import (
	"strings"
	"testing"
)

func TestValidateRunRequest(t *testing.T) {
	cfg := ValidationConfig{MaxSourceSize: 16}

	tests := []struct {
		name      string
		req       CreateRunRequest
		wantLang  Language
		wantParam string
	}{
		{"python", CreateRunRequest{Language: "Python", Source: "print(1)"}, LanguagePython, ""},
		{"empty source allowed", CreateRunRequest{Language: "java"}, LanguageJava, ""},
		{"missing language", CreateRunRequest{Source: "x"}, "", "language"},
		{"unknown language", CreateRunRequest{Language: "go"}, "", "language"},
		{"too large", CreateRunRequest{Language: "python", Source: strings.Repeat("x", 17)}, "", "source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := ValidateRunRequest(&tt.req, cfg)
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if lang != tt.wantLang {
					t.Errorf("language = %q, want %q", lang, tt.wantLang)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Param != tt.wantParam {
				t.Errorf("param = %q, want %q", err.Param, tt.wantParam)
			}
		})
	}
}

func TestValidatePromptSize(t *testing.T) {
	cfg := ValidationConfig{MaxPromptSize: 4}
	if err := ValidatePromptSize("abcd", cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePromptSize("abcde", cfg); err == nil {
		t.Error("expected error for oversized prompt")
	}
}
