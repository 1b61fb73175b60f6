// Package server provides the gateway's transport adapters: a
// line-oriented stdio loop and an HTTP front end. Both convert their
// wire format to dispatch envelopes; neither holds dispatch state.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/gateway"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
	"github.com/KEN-E-AI/google-analytics-mcp/pkg/mcp"
)

// protocolVersion is the MCP protocol revision advertised on initialize.
const protocolVersion = "2024-11-05"

// StdioServer serves MCP over a line-oriented stdio transport. Each
// request line is dispatched on its own goroutine; one request's
// upstream wait never blocks another's progress.
type StdioServer struct {
	transport  *mcp.Transport
	dispatcher *gateway.Dispatcher
	registry   *tool.Registry
	info       mcp.ServerInfo
	logger     *slog.Logger
}

// NewStdio creates a stdio server over the given transport.
func NewStdio(t *mcp.Transport, d *gateway.Dispatcher, reg *tool.Registry, info mcp.ServerInfo, logger *slog.Logger) *StdioServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StdioServer{transport: t, dispatcher: d, registry: reg, info: info, logger: logger}
}

// Run reads requests until EOF or ctx cancellation. Malformed lines get
// a ParseError response with a null id; the loop keeps going.
func (s *StdioServer) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := s.transport.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, mcp.ErrParse) {
				s.write(mcp.NewErrorResponse(nil, mcp.ParseError, "Parse error"))
				continue
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if resp := s.handle(ctx, req); resp != nil {
				s.write(resp)
			}
		}()
	}
}

func (s *StdioServer) write(resp *mcp.Response) {
	if err := s.transport.WriteResponse(resp); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// handle serves MCP session methods at the adapter and forwards
// everything else to the dispatcher. Unknown methods fall through to
// the dispatcher too, which lets callers invoke tools directly by name.
func (s *StdioServer) handle(ctx context.Context, req *mcp.Request) *mcp.Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	case "ping":
		resp, _ := mcp.NewResponse(req.ID, map[string]any{})
		return resp
	default:
		return s.dispatcher.Dispatch(ctx, req)
	}
}

func (s *StdioServer) handleInitialize(req *mcp.Request) *mcp.Response {
	result := mcp.InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: mcp.ServerCapabilities{
			Tools: &mcp.ToolsCapability{},
		},
		ServerInfo:   s.info,
		Instructions: s.instructions(),
	}
	resp, err := mcp.NewResponse(req.ID, result)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *StdioServer) handleListTools(req *mcp.Request) *mcp.Response {
	resp, err := mcp.NewResponse(req.ID, mcp.ListToolsResult{Tools: s.registry.List()})
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return resp
}

func (s *StdioServer) handleCallTool(ctx context.Context, req *mcp.Request) *mcp.Response {
	var params mcp.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, "Invalid params: "+err.Error())
	}

	envelope := &mcp.Request{
		JSONRPC: "2.0",
		Method:  params.Name,
		Params:  params.Arguments,
		ID:      req.ID,
	}
	resp := s.dispatcher.Dispatch(ctx, envelope)
	if resp.Error != nil {
		return resp
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Result, "", "  "); err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	wrapped, err := mcp.NewResponse(req.ID, mcp.CallToolResult{
		Content: []mcp.ContentBlock{{Type: "text", Text: buf.String()}},
	})
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.InternalError, err.Error())
	}
	return wrapped
}

func (s *StdioServer) instructions() string {
	names := s.registry.Names()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Google Analytics MCP gateway. %d tools are available:\n", len(names))
	for _, name := range names {
		fmt.Fprintf(&buf, "- %s\n", name)
	}
	buf.WriteString("\nTools ending in _mt take tenant_id and tenant_credentials for per-call tenant isolation.\n")
	return buf.String()
}
