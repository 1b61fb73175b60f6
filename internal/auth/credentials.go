package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"

	"golang.org/x/oauth2/google"
)

// ErrInvalidCredential is returned for every credential decode failure.
// The message is deliberately uniform: it must not reveal which step of
// decoding failed, so callers cannot probe credential structure.
var ErrInvalidCredential = errors.New("invalid credential format")

// Decode turns a base64-encoded service account JSON document into a
// tenant-scoped Identity limited to the Analytics read-only scope.
//
// Key material is never logged; only the caller-supplied tenant label
// appears in diagnostics.
func Decode(ctx context.Context, tenantID, blob string) (Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return reject(tenantID)
	}

	cfg, err := google.JWTConfigFromJSON(raw, ReadOnlyScope)
	if err != nil {
		return reject(tenantID)
	}
	if cfg.Email == "" || len(cfg.PrivateKey) == 0 {
		return reject(tenantID)
	}

	return Identity{
		tenantID:    tenantID,
		tokenSource: cfg.TokenSource(ctx),
	}, nil
}

func reject(tenantID string) (Identity, error) {
	slog.Debug("credential decode failed", "tenant_id", tenantID)
	return Identity{}, ErrInvalidCredential
}
