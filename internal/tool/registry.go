// Package tool holds the gateway's tool registry. Tools are registered
// during startup and the registry is frozen before any request is
// served, so concurrent lookups need no synchronization.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	"github.com/KEN-E-AI/google-analytics-mcp/pkg/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Handler executes one tool call. args are the request params with any
// credential fields already stripped; id is the resolved call identity.
type Handler func(ctx context.Context, id auth.Identity, args json.RawMessage) (any, error)

// Definition describes a registered tool: its stable name, the JSON
// Schema contract for its params, and the handler that executes it.
type Definition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	// Tenant marks tools that take per-call credentials in their params.
	Tenant  bool
	Handler Handler

	compiled *jsonschema.Schema
}

// ValidateArgs checks args against the tool's parameter contract.
func (d *Definition) ValidateArgs(args json.RawMessage) error {
	if d.compiled == nil {
		return nil
	}
	var v any
	if len(args) == 0 {
		v = map[string]any{}
	} else if err := json.Unmarshal(args, &v); err != nil {
		return fmt.Errorf("params are not valid JSON: %w", err)
	}
	if err := d.compiled.Validate(v); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := firstLeaf(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("invalid params for %s at %s: %s", d.Name, loc, leaf.Message)
		}
		return fmt.Errorf("invalid params for %s: %v", d.Name, err)
	}
	return nil
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return err
	}
	return firstLeaf(err.Causes[0])
}

// Registry maps tool names to definitions. It is mutable only between
// NewRegistry and Freeze.
type Registry struct {
	defs   map[string]*Definition
	order  []string
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a tool definition. A duplicate name or a registration
// after Freeze is a startup invariant violation and fails loudly rather
// than silently winning.
func (r *Registry) Register(def Definition) error {
	if r.frozen {
		return fmt.Errorf("registry is frozen: cannot register %q", def.Name)
	}
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("duplicate tool name %q", def.Name)
	}

	if len(def.InputSchema) > 0 {
		compiled, err := jsonschema.CompileString(def.Name+".json", string(def.InputSchema))
		if err != nil {
			return fmt.Errorf("invalid input schema for %q: %w", def.Name, err)
		}
		def.compiled = compiled
	}

	r.defs[def.Name] = &def
	r.order = append(r.order, def.Name)
	return nil
}

// Freeze makes the registry immutable. Call it once startup
// registration is complete and before serving requests.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Resolve looks up a tool by exact name. Absence is reported, never
// substituted.
func (r *Registry) Resolve(name string) (*Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// List returns tool descriptors in registration order.
func (r *Registry) List() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		out = append(out, mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return out
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
