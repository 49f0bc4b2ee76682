package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rhuss/autobot/pkg/api"
	"github.com/rhuss/autobot/pkg/executor"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		errType    api.ErrorType
		wantStatus int
	}{
		{"invalid_request -> 400", api.ErrorTypeInvalidRequest, http.StatusBadRequest},
		{"not_found -> 404", api.ErrorTypeNotFound, http.StatusNotFound},
		{"conflict -> 409", api.ErrorTypeConflict, http.StatusConflict},
		{"too_many_requests -> 429", api.ErrorTypeTooManyRequests, http.StatusTooManyRequests},
		{"server_error -> 500", api.ErrorTypeServerError, http.StatusInternalServerError},
		{"model_error -> 502", api.ErrorTypeModelError, http.StatusBadGateway},
		{"unknown type -> 500", api.ErrorType("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &api.APIError{Type: tt.errType, Message: "test"}
			if got := HTTPStatusFromError(err); got != tt.wantStatus {
				t.Errorf("HTTPStatusFromError(%q) = %d, want %d", tt.errType, got, tt.wantStatus)
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	apiErr := api.NewInvalidRequestError("language", "is required")
	rec := httptest.NewRecorder()

	WriteErrorResponse(rec, apiErr, http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Type != api.ErrorTypeInvalidRequest || resp.Error.Param != "language" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   api.ErrorType
	}{
		{"run in progress", executor.ErrRunInProgress, http.StatusConflict, api.ErrorTypeConflict},
		{"wrapped sentinel", fmt.Errorf("start: %w", executor.ErrNoPublicClass), http.StatusBadRequest, api.ErrorTypeInvalidRequest},
		{"plain error", errors.New("disk full"), http.StatusInternalServerError, api.ErrorTypeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp api.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error.Type != tt.wantType {
				t.Errorf("type = %q, want %q", resp.Error.Type, tt.wantType)
			}
		})
	}
}
