package analytics

import (
	"context"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	analyticsadmin "google.golang.org/api/analyticsadmin/v1beta"
)

// listPageSize is the page size requested from Admin API list calls.
const listPageSize = 200

// Google is the production Upstream backed by the Analytics Admin and
// Data APIs.
type Google struct {
	factory *Factory
}

// NewGoogle creates an Upstream over the given client factory.
func NewGoogle(factory *Factory) *Google {
	return &Google{factory: factory}
}

// ListAccountSummaries returns a pager over the caller's account
// summaries.
func (g *Google) ListAccountSummaries(id auth.Identity) PageSource[map[string]any] {
	var svc *analyticsadmin.Service
	var token string
	return PageFunc[map[string]any](func(ctx context.Context) ([]map[string]any, bool, error) {
		if svc == nil {
			s, err := g.factory.Admin(ctx, id)
			if err != nil {
				return nil, false, err
			}
			svc = s
		}
		call := svc.AccountSummaries.List().PageSize(listPageSize).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, false, err
		}
		items, err := NormalizeSlice(resp.AccountSummaries)
		if err != nil {
			return nil, false, err
		}
		token = resp.NextPageToken
		return items, token == "", nil
	})
}

// GetProperty fetches details for one property.
func (g *Google) GetProperty(ctx context.Context, id auth.Identity, property string) (map[string]any, error) {
	svc, err := g.factory.Admin(ctx, id)
	if err != nil {
		return nil, err
	}
	prop, err := svc.Properties.Get(property).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return Normalize(prop)
}

// ListGoogleAdsLinks returns a pager over a property's Google Ads links.
func (g *Google) ListGoogleAdsLinks(id auth.Identity, property string) PageSource[map[string]any] {
	var svc *analyticsadmin.Service
	var token string
	return PageFunc[map[string]any](func(ctx context.Context) ([]map[string]any, bool, error) {
		if svc == nil {
			s, err := g.factory.Admin(ctx, id)
			if err != nil {
				return nil, false, err
			}
			svc = s
		}
		call := svc.Properties.GoogleAdsLinks.List(property).PageSize(listPageSize).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, false, err
		}
		items, err := NormalizeSlice(resp.GoogleAdsLinks)
		if err != nil {
			return nil, false, err
		}
		token = resp.NextPageToken
		return items, token == "", nil
	})
}

// RunReport executes a historical report against the Data API.
func (g *Google) RunReport(ctx context.Context, id auth.Identity, property string, spec ReportSpec) (map[string]any, error) {
	req, err := spec.toRequest()
	if err != nil {
		return nil, err
	}
	svc, err := g.factory.Data(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Properties.RunReport(property, req).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return Normalize(resp)
}

// RunRealtimeReport executes a realtime report against the Data API.
func (g *Google) RunRealtimeReport(ctx context.Context, id auth.Identity, property string, spec RealtimeSpec) (map[string]any, error) {
	req, err := spec.toRequest()
	if err != nil {
		return nil, err
	}
	svc, err := g.factory.Data(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Properties.RunRealtimeReport(property, req).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return Normalize(resp)
}
