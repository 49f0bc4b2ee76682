// Package apikey authenticates bearer tokens against a static key list.
// Keys are stored as SHA-256 digests and compared in constant time.
package apikey

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rhuss/autobot/pkg/auth"
)

type keyEntry struct {
	hash     [32]byte
	identity auth.Identity
}

// Authenticator validates bearer tokens against configured keys.
type Authenticator struct {
	keys []keyEntry
}

// RawKeyEntry is a plaintext key and the identity it grants.
type RawKeyEntry struct {
	Key      string
	Identity auth.Identity
}

// New hashes the given keys. Plaintext keys are not retained.
// Entries with an empty key are skipped.
func New(entries []RawKeyEntry) *Authenticator {
	a := &Authenticator{}
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		a.keys = append(a.keys, keyEntry{
			hash:     sha256.Sum256([]byte(e.Key)),
			identity: e.Identity,
		})
	}
	return a
}

// Len returns the number of usable keys.
func (a *Authenticator) Len() int {
	return len(a.keys)
}

// Authenticate returns Yes for a known key, No for an unknown bearer
// token and Abstain when there is no bearer token at all.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return auth.AuthResult{Decision: auth.No, Err: auth.ErrUnauthenticated}
	}

	tokenHash := sha256.Sum256([]byte(token))
	for _, entry := range a.keys {
		if subtle.ConstantTimeCompare(tokenHash[:], entry.hash[:]) == 1 {
			id := entry.identity
			if id.Subject == "" {
				id.Subject = "apikey"
			}
			return auth.AuthResult{Decision: auth.Yes, Identity: &id}
		}
	}

	return auth.AuthResult{Decision: auth.No, Err: auth.ErrUnauthenticated}
}
