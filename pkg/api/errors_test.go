package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestAPIErrorInterface(t *testing.T) {
	var _ error = &APIError{}
}

func TestAPIErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			"with param",
			&APIError{Type: ErrorTypeInvalidRequest, Param: "language", Message: "is required"},
			"invalid_request: is required (param: language)",
		},
		{
			"without param",
			&APIError{Type: ErrorTypeServerError, Message: "internal failure"},
			"server_error: internal failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		wantType  ErrorType
		wantParam string
	}{
		{"invalid request", NewInvalidRequestError("source", "too large"), ErrorTypeInvalidRequest, "source"},
		{"not found", NewNotFoundError("run not found"), ErrorTypeNotFound, ""},
		{"conflict", NewConflictError("run in progress"), ErrorTypeConflict, ""},
		{"server error", NewServerError("internal failure"), ErrorTypeServerError, ""},
		{"model error", NewModelError("model overloaded"), ErrorTypeModelError, ""},
		{"too many requests", NewTooManyRequestsError("rate limit exceeded"), ErrorTypeTooManyRequests, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tt.err.Type, tt.wantType)
			}
			if tt.err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", tt.err.Param, tt.wantParam)
			}
		})
	}
}

func TestErrorsIsMatchesCode(t *testing.T) {
	sentinel := NewConflictError("a run is already in progress").WithCode("run_in_progress")
	wrapped := fmt.Errorf("starting run: %w", sentinel.WithCode("run_in_progress"))

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match an APIError with the same type and code")
	}
	if errors.Is(wrapped, NewConflictError("other").WithCode("other")) {
		t.Error("errors.Is should not match a different code")
	}
	if errors.Is(NewServerError("x"), NewServerError("x")) {
		t.Error("errors.Is should not match sentinels without a code")
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := ErrorResponse{Error: NewInvalidRequestError("prompt", "prompt is required")}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"error":{"type":"invalid_request","param":"prompt","message":"prompt is required"}}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}
