package provider

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rhuss/autobot/pkg/api"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType api.ErrorType
		wantMsg  string
	}{
		{"bad request with message", 400, `{"error":{"message":"API key not valid"}}`, api.ErrorTypeModelError, "API key not valid"},
		{"bad request empty", 400, "", api.ErrorTypeModelError, "backend rejected the request"},
		{"unauthorized", 401, "", api.ErrorTypeServerError, "backend authentication failed"},
		{"forbidden", 403, `{"error":{"message":"permission denied"}}`, api.ErrorTypeServerError, "permission denied"},
		{"not found", 404, "", api.ErrorTypeModelError, "model not found on backend"},
		{"rate limited", 429, "", api.ErrorTypeModelError, "backend rate limit exceeded"},
		{"server error", 503, "not json", api.ErrorTypeServerError, "backend server error (HTTP 503)"},
		{"teapot", 418, "", api.ErrorTypeServerError, "unexpected backend error (HTTP 418)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(response(tt.status, tt.body))
			if err.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", err.Type, tt.wantType)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestMapNetworkError(t *testing.T) {
	err := MapNetworkError(errors.New("connection refused"))
	if err.Type != api.ErrorTypeServerError {
		t.Errorf("Type = %q, want server_error", err.Type)
	}
	if !strings.Contains(err.Message, "connection refused") {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestExtractErrorMessageNilBody(t *testing.T) {
	if got := ExtractErrorMessage(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
