package tools

import (
	"context"
	"encoding/json"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/analytics"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
)

const (
	dateRangesSchema = `{
		"type": "array",
		"description": "Date ranges for the report. Dates are ISO dates or relative forms like '7daysAgo' and 'today'.",
		"items": {
			"type": "object",
			"properties": {
				"start_date": {"type": "string"},
				"end_date": {"type": "string"},
				"name": {"type": "string"}
			},
			"required": ["start_date", "end_date"]
		},
		"minItems": 1
	}`
	filterSchema = `{"type": "object", "description": "A Data API FilterExpression document (camelCase field names)."}`
)

func runReportHandler(up analytics.Upstream) tool.Handler {
	return func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error) {
		var p struct {
			PropertyID any `json:"property_id"`
			analytics.ReportSpec
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return nil, err
		}
		property, err := analytics.NormalizePropertyID(p.PropertyID)
		if err != nil {
			return nil, err
		}
		return up.RunReport(ctx, id, property, p.ReportSpec)
	}
}

func runRealtimeReportHandler(up analytics.Upstream) tool.Handler {
	return func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error) {
		var p struct {
			PropertyID any `json:"property_id"`
			analytics.RealtimeSpec
		}
		if err := unmarshalArgs(args, &p); err != nil {
			return nil, err
		}
		property, err := analytics.NormalizePropertyID(p.PropertyID)
		if err != nil {
			return nil, err
		}
		return up.RunRealtimeReport(ctx, id, property, p.RealtimeSpec)
	}
}

func runReport(up analytics.Upstream) tool.Definition {
	return tool.Definition{
		Name:        "run_report",
		Description: "Runs a Google Analytics report for a property over one or more date ranges.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"property_id": {"type": ["integer", "string"], "description": "` + propertyIDDescription + `"},
				"date_ranges": ` + dateRangesSchema + `,
				"dimensions": {"type": "array", "items": {"type": "string"}},
				"metrics": {"type": "array", "items": {"type": "string"}},
				"dimension_filter": ` + filterSchema + `,
				"metric_filter": ` + filterSchema + `,
				"order_bys": {"type": "array", "items": {"type": "object"}},
				"limit": {"type": "integer", "minimum": 0},
				"offset": {"type": "integer", "minimum": 0}
			},
			"required": ["property_id", "date_ranges"]
		}`),
		Handler: runReportHandler(up),
	}
}

func runRealtimeReport(up analytics.Upstream) tool.Definition {
	return tool.Definition{
		Name:        "run_realtime_report",
		Description: "Runs a Google Analytics realtime report for a property.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"property_id": {"type": ["integer", "string"], "description": "` + propertyIDDescription + `"},
				"dimensions": {"type": "array", "items": {"type": "string"}},
				"metrics": {"type": "array", "items": {"type": "string"}},
				"dimension_filter": ` + filterSchema + `,
				"metric_filter": ` + filterSchema + `,
				"limit": {"type": "integer", "minimum": 0}
			},
			"required": ["property_id"]
		}`),
		Handler: runRealtimeReportHandler(up),
	}
}
