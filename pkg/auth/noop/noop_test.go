package noop

import (
	"context"
	"net/http"
	"testing"

	"github.com/rhuss/autobot/pkg/auth"
)

func TestAuthenticateAlwaysYes(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	result := (&Authenticator{}).Authenticate(context.Background(), r)
	if result.Decision != auth.Yes {
		t.Fatalf("Decision = %d, want Yes", result.Decision)
	}
	if result.Identity.Subject != "anonymous" {
		t.Errorf("Subject = %q, want anonymous", result.Identity.Subject)
	}
}
