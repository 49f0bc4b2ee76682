// Package noop provides an authenticator that accepts every request as
// the local operator. It backs auth.type "none".
package noop

import (
	"context"
	"net/http"

	"github.com/rhuss/autobot/pkg/auth"
)

// Authenticator always returns Yes with a default anonymous identity.
type Authenticator struct{}

func (a *Authenticator) Authenticate(_ context.Context, _ *http.Request) auth.AuthResult {
	return auth.AuthResult{
		Decision: auth.Yes,
		Identity: &auth.Identity{
			Subject:     "anonymous",
			ServiceTier: "default",
		},
	}
}
