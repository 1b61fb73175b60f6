package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/analytics"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullUpstream struct{}

func (nullUpstream) ListAccountSummaries(id auth.Identity) analytics.PageSource[map[string]any] {
	return analytics.PageFunc[map[string]any](func(ctx context.Context) ([]map[string]any, bool, error) {
		return nil, true, nil
	})
}

func (nullUpstream) GetProperty(ctx context.Context, id auth.Identity, property string) (map[string]any, error) {
	return map[string]any{"name": property}, nil
}

func (nullUpstream) ListGoogleAdsLinks(id auth.Identity, property string) analytics.PageSource[map[string]any] {
	return analytics.PageFunc[map[string]any](func(ctx context.Context) ([]map[string]any, bool, error) {
		return nil, true, nil
	})
}

func (nullUpstream) RunReport(ctx context.Context, id auth.Identity, property string, spec analytics.ReportSpec) (map[string]any, error) {
	return map[string]any{}, nil
}

func (nullUpstream) RunRealtimeReport(ctx context.Context, id auth.Identity, property string, spec analytics.RealtimeSpec) (map[string]any, error) {
	return map[string]any{}, nil
}

func TestRegisterAll(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, RegisterAll(reg, nullUpstream{}))
	reg.Freeze()

	assert.Equal(t, []string{
		"get_account_summaries",
		"get_property_details",
		"list_google_ads_links",
		"run_report",
		"run_realtime_report",
		"get_account_summaries_mt",
		"get_property_details_mt",
		"run_report_mt",
		"run_realtime_report_mt",
	}, reg.Names())

	for _, name := range reg.Names() {
		def, ok := reg.Resolve(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, def.Description, name)
		assert.NotEmpty(t, def.InputSchema, name)
	}
}

func TestRegisterAll_TenantVariantsRequireCredentials(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, RegisterAll(reg, nullUpstream{}))

	for _, name := range []string{"get_account_summaries_mt", "get_property_details_mt", "run_report_mt", "run_realtime_report_mt"} {
		def, ok := reg.Resolve(name)
		require.True(t, ok, name)
		assert.True(t, def.Tenant, name)

		var schema struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		}
		require.NoError(t, json.Unmarshal(def.InputSchema, &schema))
		assert.Contains(t, schema.Properties, "tenant_id", name)
		assert.Contains(t, schema.Properties, "tenant_credentials", name)
		assert.Contains(t, schema.Required, "tenant_id", name)
		assert.Contains(t, schema.Required, "tenant_credentials", name)
	}
}

func TestSingleTenantToolsAreNotTenant(t *testing.T) {
	reg := tool.NewRegistry()
	require.NoError(t, RegisterAll(reg, nullUpstream{}))

	for _, name := range []string{"get_account_summaries", "get_property_details", "list_google_ads_links", "run_report", "run_realtime_report"} {
		def, ok := reg.Resolve(name)
		require.True(t, ok, name)
		assert.False(t, def.Tenant, name)
	}
}

func TestWithTenantParams_PreservesBaseRequirements(t *testing.T) {
	base := json.RawMessage(`{
		"type": "object",
		"properties": {"property_id": {"type": ["integer", "string"]}},
		"required": ["property_id"]
	}`)

	out, err := withTenantParams(base)
	require.NoError(t, err)

	var schema struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(out, &schema))
	assert.ElementsMatch(t, []string{"tenant_id", "tenant_credentials", "property_id"}, schema.Required)
}

func TestPropertyHandlers_NormalizeBeforeUpstream(t *testing.T) {
	h := propertyDetailsHandler(nullUpstream{})

	result, err := h(context.Background(), auth.Ambient(), json.RawMessage(`{"property_id": 42}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "properties/42"}, result)

	_, err = h(context.Background(), auth.Ambient(), json.RawMessage(`{"property_id": "abc"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid property ID")
}
