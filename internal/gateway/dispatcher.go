// Package gateway dispatches decoded request envelopes to registered
// tools. Each dispatch runs independently: the only state shared
// between concurrent dispatches is the frozen tool registry, which is
// what makes per-call credential isolation hold under load.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/audit"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/auth"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
	"github.com/KEN-E-AI/google-analytics-mcp/pkg/mcp"
	"github.com/google/uuid"
)

// Param names reserved for tenant resolution. They are consumed by the
// dispatcher and stripped before the handler runs.
const (
	tenantCredentialsParam = "tenant_credentials"
	tenantIDParam          = "tenant_id"
)

// Dispatcher routes request envelopes through resolve, authorize, and
// execute, and always produces exactly one response per request.
type Dispatcher struct {
	registry *tool.Registry
	auditLog *audit.Log
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithAuditLog records invocation outcomes to the given log.
func WithAuditLog(l *audit.Log) Option {
	return func(d *Dispatcher) { d.auditLog = l }
}

// WithLogger sets the dispatch logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New creates a Dispatcher over a frozen registry.
func New(registry *tool.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes one request envelope and returns its response
// envelope. The request ID is echoed back verbatim. Dispatch never
// panics the process: every failure becomes an error response.
func (d *Dispatcher) Dispatch(ctx context.Context, req *mcp.Request) *mcp.Response {
	trace := uuid.New().String()
	start := time.Now()
	d.logger.Debug("dispatch received", "trace", trace, "method", req.Method)

	def, ok := d.registry.Resolve(req.Method)
	if !ok {
		d.logger.Debug("dispatch failed", "trace", trace, "method", req.Method, "reason", "method not found")
		return mcp.NewErrorResponse(req.ID, mcp.MethodNotFound, "Method not found: "+req.Method)
	}

	identity, args, authErr := d.authorize(ctx, def, req.Params)
	if authErr != nil {
		d.record(req.Method, identity, authErr.Code, start)
		d.logger.Debug("dispatch failed", "trace", trace, "method", req.Method, "reason", "credential rejected")
		return &mcp.Response{JSONRPC: "2.0", Error: authErr, ID: echoID(req.ID)}
	}

	// Params are validated against the tool's full contract (the one
	// advertised by tools/list), before any upstream call is issued.
	if err := def.ValidateArgs(req.Params); err != nil {
		d.record(req.Method, identity, mcp.InternalError, start)
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}

	result, err := def.Handler(ctx, identity, args)
	if err != nil {
		d.record(req.Method, identity, mcp.InternalError, start)
		d.logger.Debug("dispatch failed", "trace", trace, "method", req.Method, "error", err)
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}

	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		d.record(req.Method, identity, mcp.InternalError, start)
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}

	d.record(req.Method, identity, 0, start)
	d.logger.Debug("dispatch completed", "trace", trace, "method", req.Method, "duration", time.Since(start))
	return resp
}

// authorize resolves the call identity. Non-tenant tools run as the
// ambient identity with params untouched. Tenant tools must carry
// tenant_credentials; the credential params are stripped from the args
// passed on to the handler.
func (d *Dispatcher) authorize(ctx context.Context, def *tool.Definition, params json.RawMessage) (auth.Identity, json.RawMessage, *mcp.Error) {
	if !def.Tenant {
		return auth.Ambient(), params, nil
	}

	credentialFailure := &mcp.Error{Code: mcp.InternalError, Message: auth.ErrInvalidCredential.Error()}

	var fields map[string]json.RawMessage
	if len(params) > 0 {
		if err := json.Unmarshal(params, &fields); err != nil {
			return auth.Ambient(), nil, credentialFailure
		}
	}

	var tenantID string
	if raw, ok := fields[tenantIDParam]; ok {
		_ = json.Unmarshal(raw, &tenantID)
	}

	raw, ok := fields[tenantCredentialsParam]
	if !ok {
		return auth.Ambient(), nil, credentialFailure
	}
	var blob string
	if err := json.Unmarshal(raw, &blob); err != nil {
		return auth.Ambient(), nil, credentialFailure
	}

	identity, err := auth.Decode(ctx, tenantID, blob)
	if err != nil {
		return auth.Ambient(), nil, &mcp.Error{Code: mcp.InternalError, Message: err.Error()}
	}

	delete(fields, tenantCredentialsParam)
	delete(fields, tenantIDParam)
	stripped, err := json.Marshal(fields)
	if err != nil {
		return auth.Ambient(), nil, credentialFailure
	}
	return identity, stripped, nil
}

func (d *Dispatcher) record(method string, id auth.Identity, code int, start time.Time) {
	if d.auditLog == nil {
		return
	}
	status := "ok"
	if code != 0 {
		status = "error"
	}
	inv := audit.Invocation{
		Method:     method,
		TenantID:   id.TenantID(),
		Status:     status,
		ErrorCode:  code,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := d.auditLog.Record(context.Background(), inv); err != nil {
		d.logger.Warn("audit record failed", "method", method, "error", err)
	}
}

func echoID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
