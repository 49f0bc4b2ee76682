package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rhuss/autobot/pkg/provider"
	"github.com/rhuss/autobot/pkg/provider/gemini"
	"github.com/rhuss/autobot/pkg/provider/openaicompat"
	"github.com/rhuss/autobot/pkg/relay"
)

func TestAnswer(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"write hello world in Java", javaAnswer},
		{"write hello world", pythonAnswer},
		{"I have written the following code in Python:\n\nprint(1)", explainReply},
	}
	for _, tt := range tests {
		if got := answer(tt.prompt); got != tt.want {
			t.Errorf("answer(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

func TestProvidersAgainstMock(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	gem, err := gemini.New(gemini.Config{BaseURL: srv.URL, APIKey: "test"})
	if err != nil {
		t.Fatal(err)
	}
	chat, err := openaicompat.New(openaicompat.Config{BaseURL: srv.URL, Model: "mock-model"})
	if err != nil {
		t.Fatal(err)
	}

	for _, gen := range []provider.Generator{gem, chat} {
		t.Run(gen.Name(), func(t *testing.T) {
			resp, err := gen.Generate(context.Background(), &provider.Request{Prompt: "hello world in java"})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if resp.Text != javaAnswer {
				t.Errorf("text = %q", resp.Text)
			}
			if resp.Usage.InputTokens != 4 {
				t.Errorf("input tokens = %d, want 4", resp.Usage.InputTokens)
			}
			if !strings.Contains(relay.Sanitize(resp.Text), "public class Main") {
				t.Errorf("sanitized answer lost the class")
			}
		})
	}
}

func TestGenerateContentRequiresKey(t *testing.T) {
	srv := httptest.NewServer(newMux())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1beta/models/gemini-pro:generateContent", "application/json",
		strings.NewReader(`{"contents":[{"parts":[{"text":"hi"}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestChatCompletionsRejectsStreaming(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions",
		strings.NewReader(`{"model":"m","stream":true,"messages":[{"role":"user","content":"hi"}]}`))
	newMux().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
