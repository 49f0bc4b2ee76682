package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rhuss/autobot/pkg/api"
)

// MapHTTPError converts a non-2xx backend response into an APIError.
// Backend failures are never attributed to the caller's input: they are
// reported as model_error or server_error with the backend's message.
func MapHTTPError(resp *http.Response) *api.APIError {
	message := ExtractErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		if message == "" {
			message = "backend rejected the request"
		}
		return api.NewModelError(message)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if message == "" {
			message = "backend authentication failed"
		}
		return api.NewServerError(message)

	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "model not found on backend"
		}
		return api.NewModelError(message)

	case resp.StatusCode == http.StatusTooManyRequests:
		if message == "" {
			message = "backend rate limit exceeded"
		}
		return api.NewModelError(message)

	case resp.StatusCode >= http.StatusInternalServerError:
		if message == "" {
			message = fmt.Sprintf("backend server error (HTTP %d)", resp.StatusCode)
		}
		return api.NewServerError(message)

	default:
		if message == "" {
			message = fmt.Sprintf("unexpected backend error (HTTP %d)", resp.StatusCode)
		}
		return api.NewServerError(message)
	}
}

// MapNetworkError converts a network-level error (connection refused, timeout,
// DNS resolution failure) into an APIError with a descriptive message.
func MapNetworkError(err error) *api.APIError {
	return api.NewServerError(fmt.Sprintf("backend connection error: %s", err.Error()))
}

// errorBody matches {"error": {"message": ...}}, which both the Gemini
// and the Chat Completions APIs use.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractErrorMessage reads at most 4 KiB of body and returns the error
// message it carries, if any.
func ExtractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp errorBody
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return ""
}
