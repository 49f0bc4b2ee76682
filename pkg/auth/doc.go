// Package auth provides pluggable authentication for the autobot HTTP
// surface.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity found), No (credentials
// invalid), or Abstain (can't handle). A configurable default voter decides
// when all authenticators abstain.
//
// Auth is HTTP middleware and stays out of the executor and relay. It
// also enforces per-tier request limits so a single caller cannot keep
// the run slot or the remote text-generation quota to itself.
package auth
