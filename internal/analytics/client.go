package analytics

import (
	"context"
	"sync"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	analyticsadmin "google.golang.org/api/analyticsadmin/v1beta"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

// Factory builds upstream API clients scoped to one identity.
//
// Ambient clients use process-default credential resolution and are
// built once and shared; there is no isolation requirement between
// calls running as the default identity. Tenant clients are built fresh
// for every call and are never cached or pooled, so an authenticated
// session can never cross from one call to another.
type Factory struct {
	userAgent string

	ambientAdminOnce sync.Once
	ambientAdmin     *analyticsadmin.Service
	ambientAdminErr  error

	ambientDataOnce sync.Once
	ambientData     *analyticsdata.Service
	ambientDataErr  error
}

// NewFactory creates a client factory. userAgent identifies this
// process on outgoing calls; tenant calls get a per-tenant suffix.
func NewFactory(userAgent string) *Factory {
	return &Factory{userAgent: userAgent}
}

// Admin returns an Analytics Admin API client for the given identity.
func (f *Factory) Admin(ctx context.Context, id auth.Identity) (*analyticsadmin.Service, error) {
	if id.IsTenant() {
		return analyticsadmin.NewService(ctx,
			option.WithTokenSource(id.TokenSource()),
			option.WithUserAgent(f.tenantUserAgent(id)),
		)
	}
	f.ambientAdminOnce.Do(func() {
		f.ambientAdmin, f.ambientAdminErr = analyticsadmin.NewService(context.Background(),
			option.WithScopes(auth.ReadOnlyScope),
			option.WithUserAgent(f.userAgent),
		)
	})
	return f.ambientAdmin, f.ambientAdminErr
}

// Data returns an Analytics Data API client for the given identity.
func (f *Factory) Data(ctx context.Context, id auth.Identity) (*analyticsdata.Service, error) {
	if id.IsTenant() {
		return analyticsdata.NewService(ctx,
			option.WithTokenSource(id.TokenSource()),
			option.WithUserAgent(f.tenantUserAgent(id)),
		)
	}
	f.ambientDataOnce.Do(func() {
		f.ambientData, f.ambientDataErr = analyticsdata.NewService(context.Background(),
			option.WithScopes(auth.ReadOnlyScope),
			option.WithUserAgent(f.userAgent),
		)
	})
	return f.ambientData, f.ambientDataErr
}

// tenantUserAgent tags outgoing calls with the tenant label for
// upstream observability. It contains no secret material.
func (f *Factory) tenantUserAgent(id auth.Identity) string {
	return f.userAgent + "/tenant-" + id.TenantID()
}
