package tools

import (
	"github.com/KEN-E-AI/google-analytics-mcp/internal/analytics"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
)

// RegisterAll registers every gateway tool against the given upstream.
// Registration order is fixed; the caller freezes the registry once
// startup is complete.
func RegisterAll(reg *tool.Registry, up analytics.Upstream) error {
	defs := []tool.Definition{
		getAccountSummaries(up),
		getPropertyDetails(up),
		listGoogleAdsLinks(up),
		runReport(up),
		runRealtimeReport(up),
	}

	variants := []struct {
		base        tool.Definition
		name        string
		description string
	}{
		{getAccountSummaries(up), "get_account_summaries_mt", "Retrieves Google Analytics account and property information using tenant credentials."},
		{getPropertyDetails(up), "get_property_details_mt", "Returns details about a property using tenant-specific credentials."},
		{runReport(up), "run_report_mt", "Runs a Google Analytics report using tenant-specific credentials."},
		{runRealtimeReport(up), "run_realtime_report_mt", "Runs a Google Analytics realtime report using tenant-specific credentials."},
	}
	for _, v := range variants {
		def, err := tenantVariant(v.base, v.name, v.description)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
