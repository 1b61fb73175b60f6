package analytics

import (
	"context"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
)

// Upstream is the analytics read capability consumed by tool handlers.
// All results are in normalized map form; paged resources are exposed
// as PageSource values for the caller to drain.
type Upstream interface {
	ListAccountSummaries(id auth.Identity) PageSource[map[string]any]
	GetProperty(ctx context.Context, id auth.Identity, property string) (map[string]any, error)
	ListGoogleAdsLinks(id auth.Identity, property string) PageSource[map[string]any]
	RunReport(ctx context.Context, id auth.Identity, property string, spec ReportSpec) (map[string]any, error)
	RunRealtimeReport(ctx context.Context, id auth.Identity, property string, spec RealtimeSpec) (map[string]any, error)
}
