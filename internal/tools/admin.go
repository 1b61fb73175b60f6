// Package tools defines the gateway's Google Analytics tools: the
// single-tenant set running as the ambient identity, and the
// multi-tenant variants that take per-call credentials.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/analytics"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
)

const propertyIDDescription = "The Google Analytics property ID. Accepted formats are a number or a string consisting of 'properties/' followed by a number."

func accountSummariesHandler(up analytics.Upstream) tool.Handler {
	return func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error) {
		return analytics.Drain(ctx, up.ListAccountSummaries(id))
	}
}

func propertyDetailsHandler(up analytics.Upstream) tool.Handler {
	return func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error) {
		property, err := propertyFromArgs(args)
		if err != nil {
			return nil, err
		}
		return up.GetProperty(ctx, id, property)
	}
}

func googleAdsLinksHandler(up analytics.Upstream) tool.Handler {
	return func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error) {
		property, err := propertyFromArgs(args)
		if err != nil {
			return nil, err
		}
		return analytics.Drain(ctx, up.ListGoogleAdsLinks(id, property))
	}
}

func propertyFromArgs(args json.RawMessage) (string, error) {
	var p struct {
		PropertyID any `json:"property_id"`
	}
	if err := unmarshalArgs(args, &p); err != nil {
		return "", err
	}
	return analytics.NormalizePropertyID(p.PropertyID)
}

func unmarshalArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func getAccountSummaries(up analytics.Upstream) tool.Definition {
	return tool.Definition{
		Name:        "get_account_summaries",
		Description: "Retrieves information about the user's Google Analytics accounts and properties.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
		Handler: accountSummariesHandler(up),
	}
}

func getPropertyDetails(up analytics.Upstream) tool.Definition {
	return tool.Definition{
		Name:        "get_property_details",
		Description: "Returns details about a Google Analytics property.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"property_id": {"type": ["integer", "string"], "description": "` + propertyIDDescription + `"}
			},
			"required": ["property_id"]
		}`),
		Handler: propertyDetailsHandler(up),
	}
}

func listGoogleAdsLinks(up analytics.Upstream) tool.Definition {
	return tool.Definition{
		Name:        "list_google_ads_links",
		Description: "Returns a list of links to Google Ads accounts for a property.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"property_id": {"type": ["integer", "string"], "description": "` + propertyIDDescription + `"}
			},
			"required": ["property_id"]
		}`),
		Handler: googleAdsLinksHandler(up),
	}
}
