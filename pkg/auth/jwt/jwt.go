// Package jwt authenticates HS256-signed bearer tokens issued with a
// shared secret. The subject comes from the "sub" claim, the rate
// limit tier from "tier" and authorization scopes from "scope".
package jwt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/rhuss/autobot/pkg/auth"
)

// Config holds the JWT authenticator configuration.
type Config struct {
	// Secret is the HMAC key tokens are signed with. Required.
	Secret []byte

	// Issuer is the expected iss claim. Empty disables the check.
	Issuer string

	// Audience is the expected aud claim. Empty disables the check.
	Audience string

	// UserClaim is the claim used as the identity subject. Default: "sub".
	UserClaim string

	// TierClaim is the claim used as service tier. Default: "tier".
	TierClaim string

	// ScopesClaim holds a space-separated string or array. Default: "scope".
	ScopesClaim string
}

func (c *Config) applyDefaults() {
	if c.UserClaim == "" {
		c.UserClaim = "sub"
	}
	if c.TierClaim == "" {
		c.TierClaim = "tier"
	}
	if c.ScopesClaim == "" {
		c.ScopesClaim = "scope"
	}
}

// Authenticator validates JWT bearer tokens.
type Authenticator struct {
	config Config
}

// New creates a JWT authenticator. It fails when no secret is set.
func New(cfg Config) (*Authenticator, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt: secret is required")
	}
	cfg.applyDefaults()
	return &Authenticator{config: cfg}, nil
}

// Authenticate extracts a bearer token from the Authorization header,
// validates it and returns an identity on success.
//
// Decision outcomes:
//   - Abstain: no Authorization header or not a Bearer scheme
//   - No: bearer token present but invalid (expired, wrong issuer, bad signature, etc.)
//   - Yes: valid JWT with populated Identity
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" {
		return auth.AuthResult{Decision: auth.No, Err: fmt.Errorf("empty bearer token")}
	}

	token, err := jwtlib.Parse(tokenStr, func(token *jwtlib.Token) (any, error) {
		return a.config.Secret, nil
	}, a.parserOptions()...)
	if err != nil {
		slog.Debug("JWT validation failed", "error", err)
		return auth.AuthResult{Decision: auth.No, Err: fmt.Errorf("invalid JWT: %w", err)}
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return auth.AuthResult{Decision: auth.No, Err: fmt.Errorf("invalid JWT claims")}
	}

	subject := claimString(claims, a.config.UserClaim)
	if subject == "" {
		return auth.AuthResult{
			Decision: auth.No,
			Err:      fmt.Errorf("JWT missing %q claim", a.config.UserClaim),
		}
	}

	return auth.AuthResult{
		Decision: auth.Yes,
		Identity: &auth.Identity{
			Subject:     subject,
			ServiceTier: claimString(claims, a.config.TierClaim),
			Scopes:      extractScopes(claims, a.config.ScopesClaim),
		},
	}
}

func (a *Authenticator) parserOptions() []jwtlib.ParserOption {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if a.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		opts = append(opts, jwtlib.WithAudience(a.config.Audience))
	}
	return opts
}

func claimString(claims jwtlib.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// extractScopes accepts "read write" as well as ["read", "write"].
func extractScopes(claims jwtlib.MapClaims, key string) []string {
	switch v := claims[key].(type) {
	case string:
		parts := strings.Fields(v)
		if len(parts) == 0 {
			return nil
		}
		return parts
	case []any:
		var scopes []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				scopes = append(scopes, s)
			}
		}
		return scopes
	}
	return nil
}
