package apikey

import (
	"context"
	"net/http"
	"testing"

	"github.com/rhuss/autobot/pkg/auth"
)

func newTestAuth() *Authenticator {
	return New([]RawKeyEntry{
		{
			Key:      "sk-test-key-1",
			Identity: auth.Identity{Subject: "alice", ServiceTier: "standard"},
		},
		{
			Key:      "sk-test-key-2",
			Identity: auth.Identity{Subject: "bob", ServiceTier: "premium"},
		},
		{
			Key: "sk-anon",
		},
		{
			Key:      "",
			Identity: auth.Identity{Subject: "ghost"},
		},
	})
}

func request(header string) *http.Request {
	r, _ := http.NewRequest("GET", "/", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuth()

	tests := []struct {
		name        string
		header      string
		want        auth.AuthDecision
		wantSubject string
		wantTier    string
	}{
		{"valid key", "Bearer sk-test-key-1", auth.Yes, "alice", "standard"},
		{"second key", "Bearer sk-test-key-2", auth.Yes, "bob", "premium"},
		{"key without subject", "Bearer sk-anon", auth.Yes, "apikey", ""},
		{"invalid key", "Bearer sk-wrong-key", auth.No, "", ""},
		{"empty bearer", "Bearer ", auth.No, "", ""},
		{"no header", "", auth.Abstain, "", ""},
		{"basic auth", "Basic dXNlcjpwYXNz", auth.Abstain, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Authenticate(context.Background(), request(tt.header))
			if result.Decision != tt.want {
				t.Fatalf("Decision = %d, want %d", result.Decision, tt.want)
			}
			if tt.want != auth.Yes {
				return
			}
			if result.Identity.Subject != tt.wantSubject {
				t.Errorf("Subject = %q, want %q", result.Identity.Subject, tt.wantSubject)
			}
			if result.Identity.ServiceTier != tt.wantTier {
				t.Errorf("ServiceTier = %q, want %q", result.Identity.ServiceTier, tt.wantTier)
			}
		})
	}
}

func TestEmptyKeysSkipped(t *testing.T) {
	if got := newTestAuth().Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestIdentityNotShared(t *testing.T) {
	a := newTestAuth()
	first := a.Authenticate(context.Background(), request("Bearer sk-test-key-1"))
	first.Identity.Subject = "mallory"

	second := a.Authenticate(context.Background(), request("Bearer sk-test-key-1"))
	if second.Identity.Subject != "alice" {
		t.Errorf("Subject = %q after mutation, want alice", second.Identity.Subject)
	}
}
