// Package auth resolves per-call identity for upstream Analytics access.
//
// An Identity is either ambient (process-default credential resolution)
// or tenant-scoped (built from credentials supplied with a single call).
// Identities live for the duration of one call and are never cached.
package auth

import "golang.org/x/oauth2"

// ReadOnlyScope is the only OAuth scope the gateway ever requests.
const ReadOnlyScope = "https://www.googleapis.com/auth/analytics.readonly"

// Identity is a resolved call identity. The zero value is the ambient
// identity.
type Identity struct {
	tenantID    string
	tokenSource oauth2.TokenSource
}

// Ambient returns the process-default identity.
func Ambient() Identity {
	return Identity{}
}

// IsTenant reports whether the identity carries tenant-scoped credentials.
func (id Identity) IsTenant() bool {
	return id.tokenSource != nil
}

// TenantID returns the caller-supplied tenant label. It is an opaque
// observability marker, never an authorization input.
func (id Identity) TenantID() string {
	return id.tenantID
}

// TokenSource returns the tenant token source, or nil for the ambient
// identity.
func (id Identity) TokenSource() oauth2.TokenSource {
	return id.tokenSource
}
