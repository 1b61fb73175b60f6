package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/gateway"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
	"github.com/KEN-E-AI/google-analytics-mcp/pkg/mcp"
)

// HTTPServer serves JSON-RPC tool calls over HTTP. The transport status
// is always 200: RPC success or failure lives in the body's
// result/error discriminant, so callers must inspect the body.
type HTTPServer struct {
	dispatcher *gateway.Dispatcher
	registry   *tool.Registry
	info       mcp.ServerInfo
	logger     *slog.Logger
}

// NewHTTP creates an HTTP transport adapter.
func NewHTTP(d *gateway.Dispatcher, reg *tool.Registry, info mcp.ServerInfo, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPServer{dispatcher: d, registry: reg, info: info, logger: logger}
}

// Handler returns the HTTP routes: POST / for JSON-RPC, GET / for
// service info, GET /health for health checks.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http transport listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]any{
			"service": s.info.Name,
			"version": s.info.Version,
			"status":  "running",
			"tools":   s.registry.Names(),
		})
	case http.MethodPost:
		s.handleRPC(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "healthy"})
}

func (s *HTTPServer) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeJSON(w, mcp.NewErrorResponse(nil, mcp.ParseError, "Parse error"))
		return
	}

	var req mcp.Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeJSON(w, mcp.NewErrorResponse(nil, mcp.ParseError, "Parse error"))
		return
	}

	s.writeJSON(w, s.dispatcher.Dispatch(r.Context(), &req))
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
