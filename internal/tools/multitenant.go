package tools

import (
	"encoding/json"
	"fmt"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
)

// tenantVariant derives the multi-tenant form of a tool: same handler,
// plus required tenant_id and tenant_credentials params. The dispatcher
// consumes and strips the credential params before the handler runs, so
// the handler body is shared with the single-tenant tool.
func tenantVariant(base tool.Definition, name, description string) (tool.Definition, error) {
	schema, err := withTenantParams(base.InputSchema)
	if err != nil {
		return tool.Definition{}, fmt.Errorf("building %s schema: %w", name, err)
	}
	base.Name = name
	base.Description = description
	base.Tenant = true
	base.InputSchema = schema
	return base, nil
}

func withTenantParams(schema json.RawMessage) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(schema, &doc); err != nil {
		return nil, err
	}

	props, _ := doc["properties"].(map[string]any)
	if props == nil {
		props = map[string]any{}
	}
	props["tenant_id"] = map[string]any{
		"type":        "string",
		"description": "Unique identifier for the tenant. Used for observability only, never for authorization.",
	}
	props["tenant_credentials"] = map[string]any{
		"type":        "string",
		"description": "Base64-encoded service account JSON credentials.",
	}
	doc["properties"] = props

	required := []any{"tenant_id", "tenant_credentials"}
	if existing, ok := doc["required"].([]any); ok {
		required = append(required, existing...)
	}
	doc["required"] = required

	return json.Marshal(doc)
}
