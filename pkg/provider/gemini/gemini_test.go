package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(Config{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := New(Config{APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if p.cfg.Model != DefaultModel || p.cfg.BaseURL != DefaultBaseURL {
		t.Errorf("defaults not applied: %+v", p.cfg)
	}
}

func TestGenerate_TextResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-pro:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("x-goog-api-key = %q", got)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "say hi" {
			t.Errorf("contents = %+v", req.Contents)
		}
		if req.GenerationConfig != nil {
			t.Errorf("generationConfig = %+v, want omitted", req.GenerationConfig)
		}

		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "hi "}, {"text": "there"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 2, "candidatesTokenCount": 3, "totalTokenCount": 5}
		}`))
	})

	resp, err := p.Generate(context.Background(), &provider.Request{Prompt: "say hi"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Text != "hi there" {
		t.Errorf("Text = %q, want %q", resp.Text, "hi there")
	}
	if resp.Usage.InputTokens != 2 || resp.Usage.OutputTokens != 3 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestGenerate_ModelOverrideAndConfig(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig == nil || req.GenerationConfig.MaxOutputTokens != 128 {
			t.Errorf("generationConfig = %+v", req.GenerationConfig)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	if _, err := p.Generate(context.Background(), &provider.Request{Model: "gemini-1.5-flash", Prompt: "x", MaxTokens: 128}); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType api.ErrorType
		wantMsg  string
	}{
		{"blocked", 200, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`, api.ErrorTypeModelError, "prompt blocked: SAFETY"},
		{"no candidates", 200, `{}`, api.ErrorTypeModelError, "backend returned no candidates"},
		{"safety stop", 200, `{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`, api.ErrorTypeModelError, "generation stopped: SAFETY"},
		{"bad key", 400, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`, api.ErrorTypeModelError, "API key not valid. Please pass a valid API key."},
		{"unavailable", 503, ``, api.ErrorTypeServerError, "backend server error (HTTP 503)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := p.Generate(context.Background(), &provider.Request{Prompt: "x"})
			var apiErr *api.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want APIError", err)
			}
			if apiErr.Type != tt.wantType || apiErr.Message != tt.wantMsg {
				t.Errorf("err = %+v, want %s %q", apiErr, tt.wantType, tt.wantMsg)
			}
		})
	}
}
